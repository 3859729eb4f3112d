package opc

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Relationship type URIs used by presentation documents.
const (
	RelTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelTypeSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RelTypeSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	RelTypeSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	RelTypeNotesSlide     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	RelTypeNotesMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"
	RelTypeImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelTypeHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	RelTypeTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	RelTypeCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelTypeExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
)

const nsPackageRels = "http://schemas.openxmlformats.org/package/2006/relationships"

// Relationship is one entry in a part's relationship table. Target is
// either a part path relative to the owning part's directory, or an
// external URI when TargetMode is "External".
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// External reports whether the relationship points outside the package.
func (r Relationship) External() bool {
	return r.TargetMode == "External"
}

// Relationships is an ordered relationship table owned by a single
// part. IDs are unique within the table only; they carry no meaning in
// any other table.
type Relationships struct {
	items []Relationship
}

// Add appends an internal relationship with a freshly minted ID and
// returns it.
func (rs *Relationships) Add(relType, target string) Relationship {
	rel := Relationship{ID: rs.nextID(), Type: relType, Target: target}
	rs.items = append(rs.items, rel)
	return rel
}

// AddExternal appends an external relationship with a freshly minted ID.
func (rs *Relationships) AddExternal(relType, target string) Relationship {
	rel := Relationship{ID: rs.nextID(), Type: relType, Target: target, TargetMode: "External"}
	rs.items = append(rs.items, rel)
	return rel
}

// AddWithID appends a relationship under the caller's ID. It fails if
// the ID is already present in this table.
func (rs *Relationships) AddWithID(rel Relationship) error {
	if _, ok := rs.ByID(rel.ID); ok {
		return fmt.Errorf("relationship id %q already present", rel.ID)
	}
	rs.items = append(rs.items, rel)
	return nil
}

// ByID looks up a relationship by its ID within this table.
func (rs *Relationships) ByID(id string) (Relationship, bool) {
	for _, r := range rs.items {
		if r.ID == id {
			return r, true
		}
	}
	return Relationship{}, false
}

// ByType returns every relationship of the given type, in table order.
func (rs *Relationships) ByType(relType string) []Relationship {
	var out []Relationship
	for _, r := range rs.items {
		if r.Type == relType {
			out = append(out, r)
		}
	}
	return out
}

// FirstOfType returns the first relationship of the given type.
func (rs *Relationships) FirstOfType(relType string) (Relationship, bool) {
	for _, r := range rs.items {
		if r.Type == relType {
			return r, true
		}
	}
	return Relationship{}, false
}

// All returns a copy of the table in order.
func (rs *Relationships) All() []Relationship {
	out := make([]Relationship, len(rs.items))
	copy(out, rs.items)
	return out
}

// Len returns the number of entries in the table.
func (rs *Relationships) Len() int {
	return len(rs.items)
}

// nextID mints the next "rIdN" ID, one past the highest numeric suffix
// already in the table.
func (rs *Relationships) nextID() string {
	max := 0
	for _, r := range rs.items {
		if n, ok := ridNumber(r.ID); ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("rId%d", max+1)
}

func ridNumber(id string) (int, bool) {
	if !strings.HasPrefix(id, "rId") {
		return 0, false
	}
	n, err := strconv.Atoi(id[3:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// relsPartName returns the path of the .rels part that stores the
// relationship table for source. The package root uses "_rels/.rels".
func relsPartName(source string) string {
	if source == "" {
		return "_rels/.rels"
	}
	slash := strings.LastIndex(source, "/")
	if slash < 0 {
		return "_rels/" + source + ".rels"
	}
	return source[:slash] + "/_rels/" + source[slash+1:] + ".rels"
}

// relationshipsXML mirrors the on-disk .rels format.
type relationshipsXML struct {
	XMLName xml.Name          `xml:"Relationships"`
	Xmlns   string            `xml:"xmlns,attr"`
	Rels    []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

func parseRelationships(data []byte) (*Relationships, error) {
	var raw relationshipsXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}
	rs := &Relationships{}
	for _, r := range raw.Rels {
		rs.items = append(rs.items, Relationship{
			ID:         r.ID,
			Type:       r.Type,
			Target:     r.Target,
			TargetMode: r.TargetMode,
		})
	}
	return rs, nil
}

func (rs *Relationships) marshal() ([]byte, error) {
	raw := relationshipsXML{Xmlns: nsPackageRels}
	for _, r := range rs.items {
		raw.Rels = append(raw.Rels, relationshipXML{
			ID:         r.ID,
			Type:       r.Type,
			Target:     r.Target,
			TargetMode: r.TargetMode,
		})
	}
	body, err := xml.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
