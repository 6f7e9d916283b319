// Package migrate drives one confirmation-and-rewrite pass over a project
// file.
//
// A format package parses raw project bytes into a Document that can list
// candidate plugin occurrences and apply confirmed identifier replacements.
// Run enforces the safety preconditions (accepted extension, no migrated
// marker, free output path), asks the injected decision function once per
// distinct legacy identifier, broadcasts each answer to every occurrence of
// that identifier, and writes the rewritten bytes to the derived output path
// with an exclusive create so the original file and any concurrent migration
// are never clobbered.
//
// The decision function is the only interactive collaborator; substituting a
// scripted one makes the whole pass testable without a terminal.
package migrate
