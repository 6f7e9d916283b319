package renoise

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"uidmigrate/internal/uid"
)

const songXML = `<?xml version="1.0" encoding="UTF-8"?>
<RenoiseSong doc_version="75">
  <Tracks>
    <SequencerTrack type="SequencerTrack">
      <FilterDevices>
        <Devices>
          <AudioPluginDevice type="AudioPluginDevice">
            <PluginDisplayName>Surge XT</PluginDisplayName>
            <PluginType>VST3</PluginType>
            <PluginIdentifier>0123456789ABCDEF0011223344556677</PluginIdentifier>
          </AudioPluginDevice>
          <AudioPluginDevice type="AudioPluginDevice">
            <PluginDisplayName>TAL Reverb</PluginDisplayName>
            <PluginType>VST</PluginType>
            <PluginIdentifier>54616C52</PluginIdentifier>
          </AudioPluginDevice>
        </Devices>
      </FilterDevices>
    </SequencerTrack>
  </Tracks>
</RenoiseSong>
`

func buildSong(t *testing.T, comment string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if err := w.SetComment(comment); err != nil {
		t.Fatal(err)
	}
	f, err := w.Create(songXMLName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(songXML)); err != nil {
		t.Fatal(err)
	}
	sample, err := w.Create("SampleData/Instrument00/Sample00.flac")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sample.Write([]byte("\x66\x4C\x61\x43 fake sample data")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func readAll(t *testing.T, archive *zip.Reader, name string) []byte {
	t.Helper()
	for _, member := range archive.File {
		if member.Name != name {
			continue
		}
		r, err := member.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}
	t.Fatalf("member %s not found", name)
	return nil
}

func TestScanMatchesOnlyVST3Devices(t *testing.T) {
	doc, err := parse(buildSong(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	candidates := doc.Candidates()
	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}
	if candidates[0].Label != "Surge XT" {
		t.Fatalf("label = %q", candidates[0].Label)
	}
	if candidates[0].Legacy.Hex() != "0123456789ABCDEF0011223344556677" {
		t.Fatalf("legacy = %s", candidates[0].Legacy.Hex())
	}
}

func TestRewritePreservesCommentAndMembers(t *testing.T) {
	source := buildSong(t, "written by Renoise 3.4")
	doc, err := parse(source)
	if err != nil {
		t.Fatal(err)
	}
	legacy := doc.Candidates()[0].Legacy

	out, err := doc.Rewrite(map[uid.ClassID]uid.ClassID{legacy: legacy.ToCurrent()})
	if err != nil {
		t.Fatal(err)
	}

	migrated, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatal(err)
	}
	if migrated.Comment != "written by Renoise 3.4" {
		t.Fatalf("comment = %q", migrated.Comment)
	}

	original, err := zip.NewReader(bytes.NewReader(source), int64(len(source)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(
		readAll(t, migrated, "SampleData/Instrument00/Sample00.flac"),
		readAll(t, original, "SampleData/Instrument00/Sample00.flac"),
	) {
		t.Fatal("unrelated archive member changed")
	}

	song := string(readAll(t, migrated, songXMLName))
	if !strings.Contains(song, "<PluginIdentifier>67452301AB89EFCD0011223344556677</PluginIdentifier>") {
		t.Fatal("identifier field was not rewritten")
	}
	if strings.Contains(song, "0123456789ABCDEF0011223344556677") {
		t.Fatal("legacy identifier still present")
	}
	if !strings.Contains(song, "<PluginDisplayName>Surge XT</PluginDisplayName>") {
		t.Fatal("display name field changed")
	}
	if !strings.Contains(song, "<PluginIdentifier>54616C52</PluginIdentifier>") {
		t.Fatal("non-VST3 identifier changed")
	}
}

func TestRejectedIdentifierUnchanged(t *testing.T) {
	doc, err := parse(buildSong(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	out, err := doc.Rewrite(nil)
	if err != nil {
		t.Fatal(err)
	}
	migrated, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatal(err)
	}
	song := string(readAll(t, migrated, songXMLName))
	if !strings.Contains(song, "0123456789ABCDEF0011223344556677") {
		t.Fatal("identifier changed without an accepted decision")
	}
}

func TestMissingSongMember(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := parse(buf.Bytes()); err == nil {
		t.Fatal("parse succeeded on an archive without Song.xml")
	}
}
