// Package cli implements the interactive Stockly shell.
//
// The REPL (see runREPL) parses one command per line and dispatches to
// methods on App. Commands talk to the backend through client.Client;
// product and customer listings fall back to the local SQLite cache when
// the server is unreachable.
package cli
