// Package sierraemu is the public entry point for the typed libfunc
// interpreter: construct a Registry and GasMetadata from an already-parsed
// Program, wire a syscall Handler, then run a function and inspect the
// resulting trace.
//
// Parsing programs from a textual or on-disk form, command-line argument
// handling, and logging setup are all out of scope here — those are I/O
// shells layered on top in cmd/sierra-emu, not part of this package's
// contract.
package sierraemu
