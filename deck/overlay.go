package deck

import (
	"fmt"
	"strconv"

	"github.com/slidesmith/slidesmith/internal/xmltree"
)

// Content is the payload for one content slide.
type Content struct {
	Heading string
	Bullets []string
}

// DecorateTitle layers the deck title onto the slide: a heading, a
// short accent mark under it, and a tagline. Existing shapes are never
// touched; decoration is purely additive.
func (s *Slide) DecorateTitle(title string) error {
	tree := s.Tree()
	if tree == nil {
		return fmt.Errorf("slide %s has no shape tree", s.path)
	}
	ids := newShapeIDs(tree)

	tree.AppendChild(textShape(ids.next(), "Deck Title", box{inches(0.8), inches(2.5), inches(8), inches(1.8)},
		title, textStyle{size: 52, bold: true, color: colorWhite}))
	tree.AppendChild(rectShape(ids.next(), "Title Accent", box{inches(0.8), inches(4.35), inches(3), points(3)}, colorAccentA))
	tree.AppendChild(textShape(ids.next(), "Tagline", box{inches(0.8), inches(4.5), inches(7), inches(0.6)},
		"AI-Powered Presentation", textStyle{size: 18, italic: true, color: colorTagline}))
	return nil
}

// DecorateContent layers a content payload onto the slide: heading,
// divider, slot badge, and up to MaxBullets bullet rows. slot is the
// 1-based content slot number and selects the accent color by parity.
// Bullets past the cap are dropped silently, first MaxBullets kept in
// input order. Append order is fixed (background before marker before
// text, bullet 0 before bullet 1) so stacking order is reproducible.
func (s *Slide) DecorateContent(c Content, slot int) error {
	tree := s.Tree()
	if tree == nil {
		return fmt.Errorf("slide %s has no shape tree", s.path)
	}
	ids := newShapeIDs(tree)
	accent := AccentForSlot(slot)

	tree.AppendChild(rectShape(ids.next(), "Top Bar", box{0, 0, slideWidthEMU, inches(0.08)}, accent))
	tree.AppendChild(rectShape(ids.next(), "Sidebar", box{0, 0, inches(0.4), slideHeightEMU}, accent))
	tree.AppendChild(textShape(ids.next(), "Heading", box{inches(0.7), inches(0.25), inches(12.3), inches(0.9)},
		c.Heading, textStyle{size: 34, bold: true, color: colorWhite}))
	tree.AppendChild(rectShape(ids.next(), "Divider", box{inches(0.7), inches(1.15), inches(11.5), points(2)}, accent))

	badge := fmt.Sprintf("%02d", slot)
	badgeBox := box{inches(12.3), inches(0.25), inches(0.8), inches(0.6)}
	tree.AppendChild(rectShape(ids.next(), "Badge", badgeBox, accent))
	tree.AppendChild(textShape(ids.next(), "Badge Number", badgeBox,
		badge, textStyle{size: 16, bold: true, color: colorWhite, align: "ctr"}))

	bullets := c.Bullets
	if len(bullets) > MaxBullets {
		bullets = bullets[:MaxBullets]
	}
	for i, bullet := range bullets {
		y := inches(1.4) + int64(i)*inches(0.7)
		name := fmt.Sprintf("Bullet %d", i+1)
		tree.AppendChild(rectShape(ids.next(), name+" Panel", box{inches(0.7), y, inches(11.5), inches(0.58)}, colorBulletPanel))
		tree.AppendChild(rectShape(ids.next(), name+" Marker", box{inches(0.85), y + inches(0.2), inches(0.12), inches(0.18)}, accent))
		tree.AppendChild(textShape(ids.next(), name, box{inches(1.15), y + points(2), inches(11), inches(0.55)},
			bullet, textStyle{size: 18, color: colorLightGray}))
	}
	return nil
}

// shapeIDs allocates drawing object IDs above the highest one already
// present in the tree.
type shapeIDs struct{ n int }

func newShapeIDs(tree *xmltree.Node) *shapeIDs {
	max := 1
	tree.Walk(func(n *xmltree.Node) {
		if n.Space != nsPresentationML || n.Local != "cNvPr" {
			return
		}
		if v, ok := n.Attr("", "id"); ok {
			if id, err := strconv.Atoi(v); err == nil && id > max {
				max = id
			}
		}
	})
	return &shapeIDs{n: max + 1}
}

func (s *shapeIDs) next() int {
	id := s.n
	s.n++
	return id
}

// box is a shape frame in EMUs.
type box struct{ x, y, w, h int64 }

type textStyle struct {
	size   int // points
	bold   bool
	italic bool
	color  string
	align  string // "" means left
}

// pEl and aEl build elements in the presentationml and drawingml
// namespaces.
func pEl(local string, children ...*xmltree.Node) *xmltree.Node {
	return &xmltree.Node{Space: nsPresentationML, Local: local, Children: children}
}

func aEl(local string, children ...*xmltree.Node) *xmltree.Node {
	return &xmltree.Node{Space: nsDrawingML, Local: local, Children: children}
}

func xfrm(b box) *xmltree.Node {
	off := aEl("off")
	off.SetAttr("", "x", strconv.FormatInt(b.x, 10))
	off.SetAttr("", "y", strconv.FormatInt(b.y, 10))
	ext := aEl("ext")
	ext.SetAttr("", "cx", strconv.FormatInt(b.w, 10))
	ext.SetAttr("", "cy", strconv.FormatInt(b.h, 10))
	return aEl("xfrm", off, ext)
}

func solidFill(color string) *xmltree.Node {
	clr := aEl("srgbClr")
	clr.SetAttr("", "val", color)
	return aEl("solidFill", clr)
}

func prstGeom(preset string) *xmltree.Node {
	g := aEl("prstGeom", aEl("avLst"))
	g.SetAttr("", "prst", preset)
	return g
}

func nvSpPr(id int, name string) *xmltree.Node {
	cNvPr := pEl("cNvPr")
	cNvPr.SetAttr("", "id", strconv.Itoa(id))
	cNvPr.SetAttr("", "name", name)
	return pEl("nvSpPr", cNvPr, pEl("cNvSpPr"), pEl("nvPr"))
}

// rectShape builds a borderless solid-filled rectangle.
func rectShape(id int, name string, b box, color string) *xmltree.Node {
	spPr := pEl("spPr", xfrm(b), prstGeom("rect"), solidFill(color), aEl("ln", aEl("noFill")))
	txBody := pEl("txBody", aEl("bodyPr"), aEl("lstStyle"), aEl("p"))
	return pEl("sp", nvSpPr(id, name), spPr, txBody)
}

// textShape builds a transparent text box with a single styled run.
func textShape(id int, name string, b box, text string, style textStyle) *xmltree.Node {
	spPr := pEl("spPr", xfrm(b), prstGeom("rect"), aEl("noFill"))

	rPr := aEl("rPr")
	rPr.SetAttr("", "lang", "en-US")
	rPr.SetAttr("", "sz", strconv.Itoa(style.size*100))
	if style.bold {
		rPr.SetAttr("", "b", "1")
	}
	if style.italic {
		rPr.SetAttr("", "i", "1")
	}
	rPr.AppendChild(solidFill(style.color))

	runText := aEl("t")
	runText.Text = text
	run := aEl("r", rPr, runText)

	para := aEl("p")
	if style.align != "" {
		pPr := aEl("pPr")
		pPr.SetAttr("", "algn", style.align)
		para.AppendChild(pPr)
	}
	para.AppendChild(run)

	bodyPr := aEl("bodyPr")
	bodyPr.SetAttr("", "wrap", "square")
	txBody := pEl("txBody", bodyPr, aEl("lstStyle"), para)

	return pEl("sp", nvSpPr(id, name), spPr, txBody)
}
