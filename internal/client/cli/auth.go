package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// getSecret is an indirection used to facilitate testing.
var getSecret = GetSecret

// restoreSession picks up a persisted, unexpired session on startup so the
// user does not have to sign in again between runs.
func (a *App) restoreSession(ctx context.Context) {
	sess, err := a.authService.Restore(ctx)
	if err != nil {
		log.Printf("could not restore session: %s", err.Error())
		return
	}
	if sess == nil {
		return
	}

	if err := a.applySession(ctx, sess); err != nil {
		log.Printf("could not resume session: %s", err.Error())
		a.dropSession()
	}
}

// signIn runs the browser-based authorization flow.
func (a *App) signIn(ctx context.Context) {
	sess, err := a.authService.SignIn(ctx)
	if err != nil {
		log.Printf("Sign-in unsuccessful: %s", err.Error())
		return
	}

	if err := a.applySession(ctx, sess); err != nil {
		log.Printf("error loading entries: %s", err.Error())
		a.dropSession()
	}
}

// signInWithToken completes a session from a token obtained out of band,
// for machines where a browser flow is not possible.
func (a *App) signInWithToken(ctx context.Context) {
	token, err := getSecret("Enter access token", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if token == "" {
		fmt.Println("No token entered")
		return
	}

	sess, err := a.authService.SignInWithToken(ctx, token)
	if err != nil {
		log.Printf("Sign-in unsuccessful: %s", err.Error())
		return
	}

	if err := a.applySession(ctx, sess); err != nil {
		log.Printf("error loading entries: %s", err.Error())
		a.dropSession()
	}
}

// signOut destroys the session. Already-synced entries stay remote; the
// local cache keeps serving reads until the next sign-in.
func (a *App) signOut(ctx context.Context) {
	if !a.isSignedIn() {
		fmt.Println("Not signed in")
		return
	}

	if err := a.authService.SignOut(ctx); err != nil {
		log.Printf("error: %v", err)
		return
	}
	a.dropSession()
	fmt.Println("Signed out")
}

func (a *App) whoami() {
	if !a.isSignedIn() {
		fmt.Println("Not signed in")
		return
	}
	fmt.Printf("%s <%s>\n", a.session.User.Name, a.session.User.Email)
}
