// Package linescan implements the shared line-oriented scanning strategy
// used by the Ardour and REAPER formats: both store one plugin entry per
// line, so a candidate is a byte span on a single line and a rewrite swaps
// exactly that span while every other byte, including the original line
// terminator, is carried through untouched.
package linescan

import (
	"bytes"
	"fmt"

	"uidmigrate/internal/migrate"
	"uidmigrate/internal/uid"
)

// Match reports one identifier occurrence found on a line. Start and End
// delimit the 32-character hexadecimal span within the line.
type Match struct {
	Label string
	Start int
	End   int
}

// MatchFunc inspects a single line (terminator included) and reports the
// identifier occurrence on it, if any.
type MatchFunc func(line []byte) (Match, bool)

type occurrence struct {
	line   int
	start  int
	end    int
	label  string
	legacy uid.ClassID
}

// Document is a line-split project file with located identifier spans.
type Document struct {
	lines [][]byte
	occs  []occurrence
}

// Parse splits content into terminator-preserving lines and applies match
// to each. Lines whose matched span does not hex-decode to 16 bytes are
// skipped; the structural pattern already constrains the field, so a
// non-decoding span simply is not a candidate.
func Parse(content []byte, match MatchFunc) (*Document, error) {
	doc := &Document{lines: splitLines(content)}
	for i, line := range doc.lines {
		m, ok := match(line)
		if !ok {
			continue
		}
		if m.Start < 0 || m.End > len(line) || m.End-m.Start != uid.HexLen {
			return nil, fmt.Errorf("line %d: matched span [%d:%d) is not a %d-character identifier", i+1, m.Start, m.End, uid.HexLen)
		}
		legacy, err := uid.ParseBytes(line[m.Start:m.End])
		if err != nil {
			continue
		}
		doc.occs = append(doc.occs, occurrence{
			line:   i,
			start:  m.Start,
			end:    m.End,
			label:  m.Label,
			legacy: legacy,
		})
	}
	return doc, nil
}

// Candidates lists the located occurrences in file order.
func (d *Document) Candidates() []migrate.Candidate {
	candidates := make([]migrate.Candidate, 0, len(d.occs))
	for _, occ := range d.occs {
		candidates = append(candidates, migrate.Candidate{Label: occ.label, Legacy: occ.legacy})
	}
	return candidates
}

// Rewrite replaces the identifier span of every occurrence whose legacy
// value was accepted, leaving all other bytes of every line intact.
func (d *Document) Rewrite(accepted map[uid.ClassID]uid.ClassID) ([]byte, error) {
	rewritten := make([][]byte, len(d.lines))
	copy(rewritten, d.lines)

	for _, occ := range d.occs {
		current, ok := accepted[occ.legacy]
		if !ok {
			continue
		}
		line := rewritten[occ.line]
		replaced := make([]byte, 0, len(line))
		replaced = append(replaced, line[:occ.start]...)
		replaced = append(replaced, current.HexBytes()...)
		replaced = append(replaced, line[occ.end:]...)
		rewritten[occ.line] = replaced
	}

	return bytes.Join(rewritten, nil), nil
}

// splitLines cuts content after every newline, keeping the newline on the
// line it terminates. A final line without a terminator is preserved as is.
func splitLines(content []byte) [][]byte {
	var lines [][]byte
	for len(content) > 0 {
		idx := bytes.IndexByte(content, '\n')
		if idx < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:idx+1])
		content = content[idx+1:]
	}
	return lines
}
