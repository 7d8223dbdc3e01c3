package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		s = a.session.User.Name + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to jrnl CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.restoreSession(ctx)

	go func() {
		a.StartSessionWatcher(ctx, a.config.ExpiryCheckInterval)
	}()

	for {
		fmt.Printf("jrnl %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: add, list, show <id>, search <text> [tag:<name>] [rating:<1-5>], insights, delete <id>, deleteall, signin [token], signout, whoami, exit")

		case "signin":
			if len(args) > 0 && args[0] == "token" {
				a.signInWithToken(ctx)
			} else {
				a.signIn(ctx)
			}
		case "signout":
			a.signOut(ctx)
		case "whoami":
			a.whoami()
		case "add":
			a.add(ctx)
		case "list":
			a.list(ctx)
		case "show":
			if len(args) == 0 {
				fmt.Println("Usage: show <id>")
				continue
			}
			a.show(ctx, args[0])
		case "search":
			if len(args) == 0 {
				fmt.Println("Usage: search <text> [tag:<name>] [rating:<1-5>]")
				continue
			}
			a.search(ctx, args)
		case "insights":
			a.insights(ctx)
		case "delete":
			if len(args) == 0 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			a.delete(ctx, args[0])
		case "deleteall":
			a.deleteAll(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
