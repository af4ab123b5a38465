package main

import "flag"

// newFlagSet returns a FlagSet that reports parse errors to the caller
// instead of exiting the process, so subcommands can return their own exit
// codes.
func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}
