// Package renoise locates VST3 plugin entries in Renoise song files.
//
// An .xrns file is a zip archive whose Song.xml member describes the whole
// song. Renoise writes every XML attribute and value on its own line, which
// rules out the line matching the other text formats use; instead the XML
// is parsed into a tree, plugin devices are identified by their
// PluginDisplayName/PluginType/PluginIdentifier children, and accepted
// identifiers are mutated in place before the tree is serialized back into
// a fresh archive. All other archive members and the archive comment are
// carried over byte for byte.
package renoise

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"

	"uidmigrate/internal/migrate"
	"uidmigrate/internal/uid"
)

// Extension is the accepted song file extension.
const Extension = ".xrns"

// songXMLName is the archive member holding the song document.
const songXMLName = "Song.xml"

// pluginTypeVST3 is the PluginType sentinel marking a VST3 device.
const pluginTypeVST3 = "VST3"

// Format describes Renoise songs to the migration orchestrator.
var Format = migrate.Format{
	Name:      "Renoise",
	Extension: Extension,
	Parse:     parse,
}

type occurrence struct {
	label  string
	idElem *etree.Element
	legacy uid.ClassID
}

type document struct {
	archive *zip.Reader
	song    *etree.Document
	occs    []occurrence
}

func parse(content []byte) (migrate.Document, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open song archive: %w", err)
	}

	songXML, err := readMember(archive, songXMLName)
	if err != nil {
		return nil, err
	}

	song := etree.NewDocument()
	if err := song.ReadFromBytes(songXML); err != nil {
		return nil, fmt.Errorf("parse %s: %w", songXMLName, err)
	}

	doc := &document{archive: archive, song: song}
	if root := song.Root(); root != nil {
		doc.collect(root)
	}
	return doc, nil
}

// collect walks the song tree. Renoise uses different device tags per
// plugin slot, so VST3 devices are recognized by their child fields rather
// than the element name.
func (d *document) collect(elem *etree.Element) {
	name := elem.SelectElement("PluginDisplayName")
	pluginType := elem.SelectElement("PluginType")
	pluginUID := elem.SelectElement("PluginIdentifier")
	if name != nil && pluginType != nil && pluginUID != nil && pluginType.Text() == pluginTypeVST3 {
		if legacy, err := uid.Parse(pluginUID.Text()); err == nil {
			d.occs = append(d.occs, occurrence{
				label:  name.Text(),
				idElem: pluginUID,
				legacy: legacy,
			})
		}
	}

	for _, child := range elem.ChildElements() {
		d.collect(child)
	}
}

func (d *document) Candidates() []migrate.Candidate {
	candidates := make([]migrate.Candidate, 0, len(d.occs))
	for _, occ := range d.occs {
		candidates = append(candidates, migrate.Candidate{Label: occ.label, Legacy: occ.legacy})
	}
	return candidates
}

// Rewrite mutates accepted identifier fields in the parsed tree and
// re-serializes it into a new archive. The source archive's comment and
// every member other than Song.xml are copied verbatim.
func (d *document) Rewrite(accepted map[uid.ClassID]uid.ClassID) ([]byte, error) {
	for _, occ := range d.occs {
		if current, ok := accepted[occ.legacy]; ok {
			occ.idElem.SetText(current.Hex())
		}
	}

	songXML, err := d.song.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", songXMLName, err)
	}

	var buf bytes.Buffer
	out := zip.NewWriter(&buf)
	if err := out.SetComment(d.archive.Comment); err != nil {
		_ = out.Close()
		return nil, fmt.Errorf("copy archive comment: %w", err)
	}

	for _, member := range d.archive.File {
		if member.Name == songXMLName {
			w, err := out.CreateHeader(&zip.FileHeader{
				Name:     songXMLName,
				Method:   zip.Deflate,
				Modified: member.Modified,
			})
			if err != nil {
				_ = out.Close()
				return nil, fmt.Errorf("create %s: %w", songXMLName, err)
			}
			if _, err := w.Write(songXML); err != nil {
				_ = out.Close()
				return nil, fmt.Errorf("write %s: %w", songXMLName, err)
			}
			continue
		}
		if err := out.Copy(member); err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("copy archive member %s: %w", member.Name, err)
		}
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("finalize song archive: %w", err)
	}
	return buf.Bytes(), nil
}

func readMember(archive *zip.Reader, name string) ([]byte, error) {
	for _, member := range archive.File {
		if member.Name != name {
			continue
		}
		r, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("open archive member %s: %w", name, err)
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read archive member %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("song archive has no %s member", name)
}
