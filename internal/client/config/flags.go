package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/jrnl/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   remote folder name (default from Config)
//	-d string   local database path (default from Config)
//	-b string   remote backend, "drive" or "s3" (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-d", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.FolderName, "f", cfg.FolderName, "remote folder name")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database path")
	fs.StringVar(&cfg.RemoteBackend, "b", cfg.RemoteBackend, "remote backend (drive or s3)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
