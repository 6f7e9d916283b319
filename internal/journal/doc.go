// Package journal records completed migration runs in SQLite.
//
// Every run stores its identifiers, paths, and per-identifier decisions so
// an operator can later answer "did I already migrate this project, and
// what did I answer". The journal is advisory history only: migration
// safety never depends on it, and a missing or disabled journal changes
// nothing about a run. Schema changes bump schemaVersion; a mismatched
// database is refused rather than migrated.
package journal
