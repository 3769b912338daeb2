/*
records - fetch records from a configured provider or serve them over HTTP

Usage:

	records fetch                                  # use provider.kind from config
	records fetch --provider file --file data.json # read a JSON fixture
	records fetch --provider remote --timeout 5s   # call the remote endpoint
	records serve                                  # run the HTTP API
*/
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bassista/go_records/internal/provider"
)

const (
	exitError             = 1
	exitSourceUnavailable = 2
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, provider.ErrSourceUnavailable) {
		return exitSourceUnavailable
	}
	return exitError
}
