package deck

import (
	"fmt"
	"io"
	"strconv"

	"github.com/slidesmith/slidesmith/internal/xmltree"
)

// DescribeShapes writes a human-readable dump of a shape tree: one
// block per shape with its frame and any text runs. Used by the
// inspect command to audit templates.
func DescribeShapes(w io.Writer, tree *xmltree.Node) {
	shapeIdx := 0
	for _, n := range tree.Children {
		if n.Space != nsPresentationML {
			continue
		}
		switch n.Local {
		case "sp", "pic", "graphicFrame", "grpSp", "cxnSp":
		default:
			continue
		}

		name := ""
		if cNvPr := n.Find(nsPresentationML, "cNvPr"); cNvPr != nil {
			name, _ = cNvPr.Attr("", "name")
		}
		fmt.Fprintf(w, "  shape [%d] <%s> name=%q%s\n", shapeIdx, n.Local, name, describeFrame(n))
		describeText(w, n)
		shapeIdx++
	}
	if shapeIdx == 0 {
		fmt.Fprintln(w, "  no shapes")
	}
}

func describeFrame(n *xmltree.Node) string {
	frame := n.Find(nsDrawingML, "xfrm")
	if frame == nil {
		return ""
	}
	off := frame.Find(nsDrawingML, "off")
	ext := frame.Find(nsDrawingML, "ext")
	if off == nil || ext == nil {
		return ""
	}
	x, _ := off.Attr("", "x")
	y, _ := off.Attr("", "y")
	cx, _ := ext.Attr("", "cx")
	cy, _ := ext.Attr("", "cy")
	return fmt.Sprintf(" at %s,%s size %sx%s", x, y, cx, cy)
}

func describeText(w io.Writer, n *xmltree.Node) {
	txBody := n.Find(nsPresentationML, "txBody")
	if txBody == nil {
		return
	}
	for _, para := range txBody.Children {
		if para.Space != nsDrawingML || para.Local != "p" {
			continue
		}
		for _, run := range para.Children {
			if run.Space != nsDrawingML || run.Local != "r" {
				continue
			}
			text := ""
			if t := run.Find(nsDrawingML, "t"); t != nil {
				text = t.Text
			}
			if text == "" {
				continue
			}
			detail := ""
			if rPr := run.Find(nsDrawingML, "rPr"); rPr != nil {
				if sz, ok := rPr.Attr("", "sz"); ok {
					if hundredths, err := strconv.Atoi(sz); err == nil {
						detail += fmt.Sprintf(" %dpt", hundredths/100)
					}
				}
				if b, ok := rPr.Attr("", "b"); ok && b == "1" {
					detail += " bold"
				}
			}
			if len(text) > 80 {
				text = text[:80]
			}
			fmt.Fprintf(w, "    text %q%s\n", text, detail)
		}
	}
}
