// Copyright 2025 The kbserve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the kbserve suggestion server and its CLI [DBG] tools.

Note: This is a BETA release. APIs and functionality may rapidly change.

kbserve gives a soft keyboard two kinds of contextual suggestions: values
previously typed into form fields of the same kind (emails, phone numbers,
addresses, ...) and emoji matching the word being typed. It runs as a
MessagePack IPC server for the keyboard host, or as an interactive console
for testing and debugging.

# Usage

Start the server with default settings:

	kbserve

Enable debug logs and keep history in sqlite:

	kbserve -d --store sqlite serve

Drive the engine by hand:

	kbserve repl

Inspect or clear learned field values:

	kbserve history list
	kbserve history clear email

# Configuration

Runtime configuration is read from kbserve.toml in the platform config dir
and created with defaults when missing:

	[store]
	backend = "file"     # memory | file | sqlite
	path = ""            # data dir, relative to the config dir
	max_entries = 8

	[emoji]
	keywords_file = ""   # .toml, .json or .yaml keyword table
	builtin = true       # layer the file over the builtin table
	default_limit = 0

	[server]
	max_text = 1000
	reload = true

With reload enabled the server watches the config and keyword files and
swaps the keyword table in between requests.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. See package
server for the event and action formats. Logs go to stderr.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "kbserve"
	gh      = "https://github.com/bastiangx/kbserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only builds the command tree and runs it; commands live in cli.go.
func main() {
	sigHandler()

	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}
