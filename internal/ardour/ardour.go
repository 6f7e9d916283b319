// Package ardour locates VST3 plugin entries in Ardour session files.
//
// An .ardour session is an XML document, but the processor entries we care
// about keep their name, type, and unique-id attributes on a single line,
// so a narrow line matcher is both sufficient and far safer than rewriting
// the document through an XML round trip. The matcher assumes plugin names
// contain no double quotes and that Ardour's attribute order is stable,
// which holds for the sessions this tool targets.
package ardour

import (
	"regexp"

	"uidmigrate/internal/linescan"
	"uidmigrate/internal/migrate"
)

// Extension is the accepted session file extension.
const Extension = ".ardour"

var vst3Line = regexp.MustCompile(`name="([^"]+)".+type="vst3".+unique-id="([0-9a-zA-Z]{32})"`)

// Format describes Ardour sessions to the migration orchestrator.
var Format = migrate.Format{
	Name:      "Ardour",
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
