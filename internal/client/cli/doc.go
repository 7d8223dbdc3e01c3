// Package cli provides the interactive jrnl command-line client.
//
// It wires configuration, the local database, authentication, and the entry
// service into an interactive REPL. Entries are kept locally until the user
// signs in; after sign-in they live in the remote backend (Drive-style REST
// or S3), with the local database acting as a cache.
//
// Key features:
//   - Sign in via browser flow or a manually supplied token
//   - Add / list / show / search / delete entries
//   - Aggregated insights over the collection
//   - One-shot migration of pre-sign-in entries to remote storage
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
