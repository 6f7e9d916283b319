// Package bitwig locates VST3 plugin entries in Bitwig Studio project files.
//
// .bwproject is an undocumented flat binary format, but Bitwig stores the
// path to a plugin's VST3 bundle directly before the class ID, which gives
// us both a display label and a structural anchor for discovery. The class
// ID itself recurs at unrelated offsets all over the file, so accepted
// identifiers are replaced globally by value rather than by position; every
// stored ID is followed by a two-null-byte terminator, and requiring that
// terminator on every replacement is what keeps a 32-character hex run in,
// say, a base64 blob from being clobbered. The terminator is a best-effort
// guard, not a proven unique anchor; it matches how Bitwig writes every
// project we have seen.
package bitwig

import (
	"bytes"
	"regexp"

	"uidmigrate/internal/migrate"
	"uidmigrate/internal/uid"
)

// Extension is the accepted project file extension.
const Extension = ".bwproject"

// uidTerminator trails every class ID stored in a .bwproject file.
// Replacements match identifier plus terminator so arbitrary hex substrings
// elsewhere in the binary are never rewritten.
var uidTerminator = []byte{0x00, 0x00}

var bundlePathUID = regexp.MustCompile(`(/home/[^/]+/\.vst3/yabridge/.+\.vst3)\n([0-9a-zA-Z]{32})`)

// Format describes Bitwig projects to the migration orchestrator.
var Format = migrate.Format{
	Name:      "Bitwig",
	Extension: Extension,
	Parse:     parse,
}

type document struct {
	content    []byte
	candidates []migrate.Candidate
}

func parse(content []byte) (migrate.Document, error) {
	doc := &document{content: content}

	// The same plugin shows up once per instance; the operator should be
	// asked once per distinct class ID, so duplicates collapse here in
	// first-seen order.
	seen := make(map[uid.ClassID]bool)
	for _, match := range bundlePathUID.FindAllSubmatch(content, -1) {
		legacy, err := uid.ParseBytes(match[2])
		if err != nil {
			continue
		}
		if seen[legacy] {
			continue
		}
		seen[legacy] = true
		doc.candidates = append(doc.candidates, migrate.Candidate{
			Label:  string(match[1]),
			Legacy: legacy,
		})
	}
	return doc, nil
}

func (d *document) Candidates() []migrate.Candidate {
	return d.candidates
}

// Rewrite replaces every terminator-anchored occurrence of each accepted
// identifier, in candidate order. Identifiers without a decision, and hex
// runs not followed by the terminator, come through byte for byte.
func (d *document) Rewrite(accepted map[uid.ClassID]uid.ClassID) ([]byte, error) {
	rewritten := d.content
	for _, candidate := range d.candidates {
		current, ok := accepted[candidate.Legacy]
		if !ok {
			continue
		}
		old := append(candidate.Legacy.HexBytes(), uidTerminator...)
		repl := append(current.HexBytes(), uidTerminator...)
		rewritten = bytes.ReplaceAll(rewritten, old, repl)
	}
	return rewritten, nil
}
