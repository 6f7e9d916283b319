package linescan

import (
	"bytes"
	"regexp"
	"testing"

	"uidmigrate/internal/uid"
)

var testPattern = regexp.MustCompile(`id=([0-9A-Fa-f]{32})`)

func testMatch(line []byte) (Match, bool) {
	loc := testPattern.FindSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}
	return Match{Label: "plugin", Start: loc[2], End: loc[3]}, true
}

func TestSplitPreservesTerminators(t *testing.T) {
	content := []byte("one\r\ntwo\nthree")
	lines := splitLines(content)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if string(lines[0]) != "one\r\n" {
		t.Fatalf("CRLF not preserved: %q", lines[0])
	}
	if string(lines[2]) != "three" {
		t.Fatalf("unterminated final line mangled: %q", lines[2])
	}
	if !bytes.Equal(bytes.Join(lines, nil), content) {
		t.Fatal("joined lines differ from input")
	}
}

func TestParseAndRewrite(t *testing.T) {
	legacy, err := uid.Parse("0123456789ABCDEF0011223344556677")
	if err != nil {
		t.Fatal(err)
	}
	content := []byte("header\r\nid=0123456789ABCDEF0011223344556677 tail\r\nfooter\n")

	doc, err := Parse(content, testMatch)
	if err != nil {
		t.Fatal(err)
	}
	candidates := doc.Candidates()
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].Legacy != legacy {
		t.Fatalf("candidate legacy = %s", candidates[0].Legacy.Hex())
	}

	out, err := doc.Rewrite(map[uid.ClassID]uid.ClassID{legacy: legacy.ToCurrent()})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte("header\r\nid=67452301AB89EFCD0011223344556677 tail\r\nfooter\n")
	if !bytes.Equal(out, want) {
		t.Fatalf("rewrite mismatch:\ngot  %q\nwant %q", out, want)
	}
}

func TestRewriteWithoutDecisionsIsIdentity(t *testing.T) {
	content := []byte("id=0123456789ABCDEF0011223344556677\nplain line\n")
	doc, err := Parse(content, testMatch)
	if err != nil {
		t.Fatal(err)
	}
	out, err := doc.Rewrite(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, content) {
		t.Fatal("rewrite with no accepted identifiers changed the content")
	}
}
