// Package presets replicates confirmed identifier replacements into the
// .vstpreset files Bitwig extracts from a project.
//
// Replication is the second phase of a Bitwig migration and runs against an
// immutable mapping produced by phase one, persisted as a TOML file next to
// the migrated project so the two phases can run in separate invocations.
// Preset files follow the VST 3 preset interchange layout: an 8-byte header
// immediately followed by the class ID as 32 uppercase hexadecimal ASCII
// bytes. A file is rewritten only when those 32 bytes exactly equal a
// legacy key in the mapping, and the replacement is the same length, so
// mutation happens in place and running replication twice is a no-op.
package presets
