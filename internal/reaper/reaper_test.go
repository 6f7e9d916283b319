package reaper

import (
	"bytes"
	"testing"

	"uidmigrate/internal/uid"
)

const pluginLine = `    <VST "VST3: Surge XT (Surge Synth Team)" Surge XT.vst3 0 "" 1234567890{0123456789ABCDEF0011223344556677}` + "\n"

func TestScanFindsVST3Entry(t *testing.T) {
	content := []byte("<REAPER_PROJECT 0.1\n" + pluginLine + "    aGVsbG8gd29ybGQ=\n  >\n")

	doc, err := parse(content)
	if err != nil {
		t.Fatal(err)
	}
	candidates := doc.Candidates()
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].Label != "VST3: Surge XT (Surge Synth Team)" {
		t.Fatalf("label = %q", candidates[0].Label)
	}
	if candidates[0].Legacy.Hex() != "0123456789ABCDEF0011223344556677" {
		t.Fatalf("legacy = %s", candidates[0].Legacy.Hex())
	}
}

func TestVST2EntriesIgnored(t *testing.T) {
	content := []byte(`    <VST "VST: TAL Reverb" TAL-Reverb.dll 0 "" 1234567890` + "\n")
	doc, err := parse(content)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(doc.Candidates()); got != 0 {
		t.Fatalf("got %d candidates, want 0", got)
	}
}

func TestRewritePreservesStateBlocks(t *testing.T) {
	header := "<REAPER_PROJECT 0.1\n"
	state := "    aGVsbG8gd29ybGQ=\n"
	content := []byte(header + pluginLine + state + "  >\n")

	doc, err := parse(content)
	if err != nil {
		t.Fatal(err)
	}
	legacy := doc.Candidates()[0].Legacy
	out, err := doc.Rewrite(map[uid.ClassID]uid.ClassID{legacy: legacy.ToCurrent()})
	if err != nil {
		t.Fatal(err)
	}

	want := []byte(header +
		`    <VST "VST3: Surge XT (Surge Synth Team)" Surge XT.vst3 0 "" 1234567890{67452301AB89EFCD0011223344556677}` + "\n" +
		state + "  >\n")
	if !bytes.Equal(out, want) {
		t.Fatalf("rewrite mismatch:\ngot  %q\nwant %q", out, want)
	}
}

func TestRejectedIdentifierLeftAlone(t *testing.T) {
	content := []byte(pluginLine)
	doc, err := parse(content)
	if err != nil {
		t.Fatal(err)
	}
	out, err := doc.Rewrite(map[uid.ClassID]uid.ClassID{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, content) {
		t.Fatal("content changed without an accepted identifier")
	}
}
