package main

// Exit codes shared by all subcommands.
const (
	ExitSuccess  = 0 // Success
	ExitError    = 1 // General error, including health reports with failures
	ExitNotFound = 2 // Node ID not present in the taxonomy
)
