// Package reaper locates VST3 plugin entries in REAPER project files.
//
// .RPP projects are line-oriented text with base64 plugin state blocks in
// between; a plugin's header line names it and carries its class ID inside
// braces. The matcher tolerates quotes inside vendor or plugin names since
// the non-greedy name capture stops at the `" ` boundary REAPER emits.
package reaper

import (
	"regexp"

	"uidmigrate/internal/linescan"
	"uidmigrate/internal/migrate"
)

// Extension is the accepted project file extension, matched without regard
// to case since REAPER itself writes `.RPP`.
const Extension = ".rpp"

var vst3Line = regexp.MustCompile(`<VST "(VST3.+?)" .+\{([0-9a-zA-Z]{32})\}`)

// Format describes REAPER projects to the migration orchestrator.
var Format = migrate.Format{
	Name:      "REAPER",
	Extension: Extension,
	Parse:     parse,
}

func parse(content []byte) (migrate.Document, error) {
	return linescan.Parse(content, matchLine)
}

func matchLine(line []byte) (linescan.Match, bool) {
	loc := vst3Line.FindSubmatchIndex(line)
	if loc == nil {
		return linescan.Match{}, false
	}
	return linescan.Match{
		Label: string(line[loc[2]:loc[3]]),
		Start: loc[4],
		End:   loc[5],
	}, true
}
