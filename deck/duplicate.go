package deck

import (
	"fmt"

	"github.com/slidesmith/slidesmith/internal/xmltree"
	"github.com/slidesmith/slidesmith/opc"
)

// structuralRelTypes are inherited or shared relationships that must
// never be copied into a duplicate's own table: the layout and master
// are reachable through the new slide's layout reference, and speaker
// notes belong to the source slide alone.
var structuralRelTypes = map[string]bool{
	opc.RelTypeSlideLayout: true,
	opc.RelTypeSlideMaster: true,
	opc.RelTypeNotesSlide:  true,
	opc.RelTypeNotesMaster: true,
}

// DuplicateSlide clones the slide at srcSlot and appends the copy at
// the end of the presentation. The copy shares the source's layout and
// every underlying resource part; only the relationship entries and the
// shape tree are duplicated. The source slide is never modified, so it
// stays valid as the archetype for further duplications.
//
// The remap runs in two discrete stages: first the old->new ID mapping
// is built while the copy's relationship table is populated, then the
// mapping is applied in a single pass over the copied shape tree.
func (p *Presentation) DuplicateSlide(srcSlot int) (*Slide, error) {
	src, err := p.Slide(srcSlot)
	if err != nil {
		return nil, err
	}

	path := p.nextSlidePath()
	newSlide := &Slide{path: path, rels: p.pkg.Rels(path)}

	// Stage 1: build the table and the ID mapping.
	//
	// External relationships keep their IDs verbatim: their targets are
	// location-independent URIs, so the copied reference attributes are
	// already valid. Copying them first means the minting below can
	// never collide with a preserved ID.
	for _, rel := range src.rels.All() {
		if !rel.External() || structuralRelTypes[rel.Type] {
			continue
		}
		if err := newSlide.rels.AddWithID(rel); err != nil {
			return nil, fmt.Errorf("copying external relationship: %w", err)
		}
	}

	layout, ok := src.rels.FirstOfType(opc.RelTypeSlideLayout)
	if !ok {
		return nil, fmt.Errorf("%w: slide %d has no layout relationship", ErrMalformedTemplate, srcSlot)
	}
	newSlide.rels.Add(opc.RelTypeSlideLayout, layout.Target)

	idMap := make(map[string]string)
	for _, rel := range src.rels.All() {
		if rel.External() || structuralRelTypes[rel.Type] {
			continue
		}
		// Same underlying resource part, fresh ID in the new table. The
		// resource itself is shared, not re-embedded.
		minted := newSlide.rels.Add(rel.Type, rel.Target)
		idMap[rel.ID] = minted.ID
	}

	// Stage 2: deep-copy the shape tree, then apply the mapping in one
	// pass. Attribute values outside the map (external IDs) are left
	// untouched.
	newSlide.doc = src.doc.Clone()
	newSlide.doc.Root.Walk(func(n *xmltree.Node) {
		for _, a := range n.Attrs {
			if a.Space != nsRelationships {
				continue
			}
			if newID, ok := idMap[a.Value]; ok {
				n.SetAttr(a.Space, a.Local, newID)
			}
		}
	})

	if err := p.registerSlide(newSlide); err != nil {
		return nil, err
	}
	return newSlide, nil
}
