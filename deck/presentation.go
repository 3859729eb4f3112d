// Package deck builds PPTX presentations by duplicating and decorating
// the slides of a pre-authored template.
//
// A template carries exactly two archetype slides: slot 0 is the title
// unit, slot 1 the content unit. Additional content slides are made by
// cloning slot 1 inside the same document, re-minting the clone's
// relationship IDs so every embedded resource reference stays valid,
// then layering generated text and accent graphics on top.
package deck

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/slidesmith/slidesmith/internal/xmltree"
	"github.com/slidesmith/slidesmith/opc"
)

// Slot positions fixed by the template contract.
const (
	TitleSlot   = 0
	ContentSlot = 1
)

var (
	// ErrTemplateUnavailable reports a missing or unreadable template
	// resource. Callers recover by building on the fallback theme.
	ErrTemplateUnavailable = errors.New("template unavailable")

	// ErrMalformedTemplate reports a defective template asset: fewer
	// than two slides, or a reference attribute with no matching
	// relationship entry. Not recoverable for the request.
	ErrMalformedTemplate = errors.New("malformed template")
)

// Presentation is an in-memory deck: an OPC package plus the parsed
// slide list in presentation order. A Presentation belongs to a single
// generation request and must not be shared across goroutines.
type Presentation struct {
	pkg      *opc.Package
	presPath string
	presDoc  *xmltree.Document
	slides   []*Slide
}

// Slide is one presentation unit: its shape tree and the relationship
// table local to it. The layout is referenced through the table, never
// owned.
type Slide struct {
	path string
	doc  *xmltree.Document
	rels *opc.Relationships
}

// Path returns the slide's part name inside the package.
func (s *Slide) Path() string { return s.path }

// Rels returns the slide's own relationship table.
func (s *Slide) Rels() *opc.Relationships { return s.rels }

// Tree returns the root of the slide's shape tree (the spTree
// element), or nil if the slide part has none.
func (s *Slide) Tree() *xmltree.Node {
	return s.doc.Root.Find(nsPresentationML, "spTree")
}

// OpenTemplate opens a template file. A missing or unreadable file
// yields ErrTemplateUnavailable.
func OpenTemplate(filename string) (*Presentation, error) {
	pkg, err := opc.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnavailable, err)
	}
	return fromPackage(pkg, true)
}

// Load opens a template from bytes already in memory.
func Load(data []byte) (*Presentation, error) {
	pkg, err := opc.Read(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnavailable, err)
	}
	return fromPackage(pkg, true)
}

// Open opens any presentation file without enforcing the template
// contract: no minimum slide count, no reference validation. Meant for
// inspection tooling, not for building decks.
func Open(filename string) (*Presentation, error) {
	pkg, err := opc.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnavailable, err)
	}
	return fromPackage(pkg, false)
}

func fromPackage(pkg *opc.Package, strict bool) (*Presentation, error) {
	presPath := "ppt/presentation.xml"
	if rel, ok := pkg.Rels("").FirstOfType(opc.RelTypeOfficeDocument); ok {
		presPath = opc.ResolveTarget("", rel.Target)
	}

	presPart := pkg.Part(presPath)
	if presPart == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedTemplate, presPath)
	}
	presDoc, err := xmltree.Parse(presPart.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTemplate, err)
	}

	p := &Presentation{pkg: pkg, presPath: presPath, presDoc: presDoc}

	idList := presDoc.Root.Find(nsPresentationML, "sldIdLst")
	if idList == nil {
		return nil, fmt.Errorf("%w: presentation has no slide list", ErrMalformedTemplate)
	}

	presRels := pkg.Rels(presPath)
	for _, sldID := range idList.Children {
		if sldID.Local != "sldId" {
			continue
		}
		rid, ok := sldID.Attr(nsRelationships, "id")
		if !ok {
			return nil, fmt.Errorf("%w: slide entry without relationship id", ErrMalformedTemplate)
		}
		rel, ok := presRels.ByID(rid)
		if !ok {
			return nil, fmt.Errorf("%w: dangling slide reference %s", ErrMalformedTemplate, rid)
		}
		path := opc.ResolveTarget(presPath, rel.Target)
		part := pkg.Part(path)
		if part == nil {
			return nil, fmt.Errorf("%w: missing slide part %s", ErrMalformedTemplate, path)
		}
		doc, err := xmltree.Parse(part.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: slide %s: %v", ErrMalformedTemplate, path, err)
		}
		p.slides = append(p.slides, &Slide{path: path, doc: doc, rels: pkg.Rels(path)})
	}

	if strict {
		if len(p.slides) < 2 {
			return nil, fmt.Errorf("%w: template has %d slides, need at least 2", ErrMalformedTemplate, len(p.slides))
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SlideCount returns the number of slides in presentation order.
func (p *Presentation) SlideCount() int { return len(p.slides) }

// Slide returns the slide at the given slot (0-indexed).
func (p *Presentation) Slide(slot int) (*Slide, error) {
	if slot < 0 || slot >= len(p.slides) {
		return nil, fmt.Errorf("slide slot %d out of range (0-%d)", slot, len(p.slides)-1)
	}
	return p.slides[slot], nil
}

// Validate checks that every reference attribute in every slide's
// shape tree resolves inside that slide's own relationship table.
func (p *Presentation) Validate() error {
	for i, s := range p.slides {
		var dangling string
		s.doc.Root.Walk(func(n *xmltree.Node) {
			for _, a := range n.Attrs {
				if a.Space != nsRelationships || a.Value == "" {
					continue
				}
				if _, ok := s.rels.ByID(a.Value); !ok && dangling == "" {
					dangling = a.Value
				}
			}
		})
		if dangling != "" {
			return fmt.Errorf("%w: slide %d references %s with no relationship entry", ErrMalformedTemplate, i, dangling)
		}
	}
	return nil
}

// flush re-serializes every parsed document back into its package part.
func (p *Presentation) flush() {
	if part := p.pkg.Part(p.presPath); part != nil {
		part.Data = p.presDoc.Marshal()
	}
	for _, s := range p.slides {
		if part := p.pkg.Part(s.path); part != nil {
			part.Data = s.doc.Marshal()
		}
	}
}

// Write serializes the finished presentation. The output is a pure
// function of the presentation state.
func (p *Presentation) Write(w io.Writer) error {
	p.flush()
	return p.pkg.Write(w)
}

// Bytes serializes the finished presentation into a byte slice.
func (p *Presentation) Bytes() ([]byte, error) {
	p.flush()
	return p.pkg.Bytes()
}

// WriteFile serializes the finished presentation to disk.
func (p *Presentation) WriteFile(filename string) error {
	p.flush()
	return p.pkg.WriteFile(filename)
}

// Package exposes the underlying container, used by inspection tooling.
func (p *Presentation) Package() *opc.Package { return p.pkg }

// nextSlidePath returns the first unused ppt/slides/slideN.xml name.
func (p *Presentation) nextSlidePath() string {
	max := 0
	for _, part := range p.pkg.Parts() {
		n, ok := slideNumber(part.Name)
		if ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("ppt/slides/slide%d.xml", max+1)
}

func slideNumber(partName string) (int, bool) {
	const prefix = "ppt/slides/slide"
	if !strings.HasPrefix(partName, prefix) || !strings.HasSuffix(partName, ".xml") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(partName, prefix), ".xml"))
	if err != nil {
		return 0, false
	}
	return n, true
}

// registerSlide appends a new slide part to the package, the slide id
// list, and the presentation's relationship table.
func (p *Presentation) registerSlide(s *Slide) error {
	if _, err := p.pkg.AddPart(s.path, opc.ContentTypeSlide, nil); err != nil {
		return err
	}

	rel := p.pkg.Rels(p.presPath).Add(opc.RelTypeSlide, opc.RelativeTarget(p.presPath, s.path))

	idList := p.presDoc.Root.Find(nsPresentationML, "sldIdLst")
	if idList == nil {
		return fmt.Errorf("%w: presentation has no slide list", ErrMalformedTemplate)
	}
	maxID := 255 // slide ids start at 256 by convention
	for _, c := range idList.Children {
		if v, ok := c.Attr("", "id"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > maxID {
				maxID = n
			}
		}
	}
	entry := &xmltree.Node{Space: nsPresentationML, Local: "sldId"}
	entry.SetAttr("", "id", strconv.Itoa(maxID+1))
	entry.SetAttr(nsRelationships, "id", rel.ID)
	idList.AppendChild(entry)

	p.slides = append(p.slides, s)
	return nil
}
