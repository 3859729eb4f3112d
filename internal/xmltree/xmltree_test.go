package xmltree

import (
	"strings"
	"testing"
)

const sampleSlide = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <p:cSld>
    <p:spTree>
      <p:pic>
        <p:blipFill>
          <a:blip r:embed="rId2"/>
        </p:blipFill>
      </p:pic>
      <p:sp>
        <p:txBody>
          <a:p>
            <a:r>
              <a:t>Hello &amp; goodbye</a:t>
            </a:r>
          </a:p>
        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
</p:sld>`

const (
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(sampleSlide))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestParseResolvesNamespaces(t *testing.T) {
	doc := parseSample(t)

	if doc.Root.Space != nsP || doc.Root.Local != "sld" {
		t.Errorf("root = {%s}%s, want {%s}sld", doc.Root.Space, doc.Root.Local, nsP)
	}

	blip := doc.Root.Find(nsA, "blip")
	if blip == nil {
		t.Fatal("a:blip not found")
	}
	embed, ok := blip.Attr(nsR, "embed")
	if !ok || embed != "rId2" {
		t.Errorf("r:embed = %q (found=%v), want rId2", embed, ok)
	}
}

func TestParsePreservesText(t *testing.T) {
	doc := parseSample(t)

	text := doc.Root.Find(nsA, "t")
	if text == nil {
		t.Fatal("a:t not found")
	}
	if text.Text != "Hello & goodbye" {
		t.Errorf("text = %q, want %q", text.Text, "Hello & goodbye")
	}

	// Whitespace-only text on container elements is dropped.
	tree := doc.Root.Find(nsP, "spTree")
	if tree == nil {
		t.Fatal("p:spTree not found")
	}
	if tree.Text != "" {
		t.Errorf("container text = %q, want empty", tree.Text)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	doc := parseSample(t)
	out := doc.Marshal()

	redoc, err := Parse(out)
	if err != nil {
		t.Fatalf("re-parsing marshalled output: %v", err)
	}

	blip := redoc.Root.Find(nsA, "blip")
	if blip == nil {
		t.Fatal("a:blip lost in round trip")
	}
	if embed, _ := blip.Attr(nsR, "embed"); embed != "rId2" {
		t.Errorf("r:embed after round trip = %q, want rId2", embed)
	}
	if txt := redoc.Root.Find(nsA, "t"); txt == nil || txt.Text != "Hello & goodbye" {
		t.Error("text content lost in round trip")
	}

	s := string(out)
	if !strings.Contains(s, `xmlns:p=`) || !strings.Contains(s, `xmlns:r=`) {
		t.Error("namespace declarations missing from output root")
	}
	if !strings.Contains(s, "&amp;") {
		t.Error("text not escaped in output")
	}
}

func TestMarshalDeterministic(t *testing.T) {
	doc := parseSample(t)
	a := doc.Marshal()
	b := doc.Marshal()
	if string(a) != string(b) {
		t.Error("Marshal is not deterministic for identical trees")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc := parseSample(t)
	clone := doc.Clone()

	blip := clone.Root.Find(nsA, "blip")
	blip.SetAttr(nsR, "embed", "rId99")
	clone.Root.Find(nsA, "t").Text = "mutated"

	orig := doc.Root.Find(nsA, "blip")
	if embed, _ := orig.Attr(nsR, "embed"); embed != "rId2" {
		t.Errorf("mutating clone changed original attr: %q", embed)
	}
	if doc.Root.Find(nsA, "t").Text != "Hello & goodbye" {
		t.Error("mutating clone changed original text")
	}
}

func TestCloneAddChildDoesNotAffectOriginal(t *testing.T) {
	doc := parseSample(t)
	before := len(doc.Root.Find(nsP, "spTree").Children)

	clone := doc.Clone()
	clone.Root.Find(nsP, "spTree").AppendChild(&Node{Space: nsP, Local: "sp"})

	after := len(doc.Root.Find(nsP, "spTree").Children)
	if before != after {
		t.Errorf("original child count changed from %d to %d", before, after)
	}
}

func TestWalkOrder(t *testing.T) {
	doc := parseSample(t)

	var locals []string
	doc.Root.Walk(func(n *Node) {
		locals = append(locals, n.Local)
	})

	// pic precedes sp because document order is preserved.
	picAt, spAt := -1, -1
	for i, l := range locals {
		if l == "pic" && picAt < 0 {
			picAt = i
		}
		if l == "sp" && spAt < 0 {
			spAt = i
		}
	}
	if picAt < 0 || spAt < 0 || picAt > spAt {
		t.Errorf("walk order wrong: pic at %d, sp at %d", picAt, spAt)
	}
}

func TestSetAttrReplaces(t *testing.T) {
	n := &Node{Local: "blip"}
	n.SetAttr(nsR, "embed", "rId1")
	n.SetAttr(nsR, "embed", "rId2")
	if len(n.Attrs) != 1 {
		t.Fatalf("expected 1 attr, got %d", len(n.Attrs))
	}
	if v, _ := n.Attr(nsR, "embed"); v != "rId2" {
		t.Errorf("attr = %q, want rId2", v)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unclosed", "<a><b></a>"},
		{"no root", "<?xml version=\"1.0\"?>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.input)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tc.input)
			}
		})
	}
}

func TestUndeclaredPrefixSurvives(t *testing.T) {
	in := `<a:t xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xml:space="preserve"> padded </a:t>`
	doc, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out := string(doc.Marshal())
	if !strings.Contains(out, `xml:space="preserve"`) {
		t.Errorf("xml:space attribute lost: %s", out)
	}
	if strings.Contains(out, "http://www.w3.org/XML/1998/namespace") {
		t.Errorf("reserved xml namespace must never be declared: %s", out)
	}
	if !strings.Contains(out, " padded ") {
		t.Errorf("padded text lost: %s", out)
	}
}
