package opc

import "testing"

func TestAddMintsSequentialIDs(t *testing.T) {
	rs := &Relationships{}
	r1 := rs.Add(RelTypeImage, "../media/image1.png")
	r2 := rs.Add(RelTypeImage, "../media/image2.png")

	if r1.ID != "rId1" || r2.ID != "rId2" {
		t.Errorf("minted IDs = %q, %q; want rId1, rId2", r1.ID, r2.ID)
	}
}

func TestAddSkipsPastForeignIDs(t *testing.T) {
	rs := &Relationships{}
	if err := rs.AddWithID(Relationship{ID: "rId7", Type: RelTypeSlideLayout, Target: "../slideLayouts/slideLayout1.xml"}); err != nil {
		t.Fatalf("AddWithID failed: %v", err)
	}

	r := rs.Add(RelTypeImage, "../media/image1.png")
	if r.ID != "rId8" {
		t.Errorf("minted ID = %q, want rId8", r.ID)
	}
}

func TestAddWithIDRejectsDuplicate(t *testing.T) {
	rs := &Relationships{}
	rel := Relationship{ID: "rId1", Type: RelTypeHyperlink, Target: "https://example.com", TargetMode: "External"}
	if err := rs.AddWithID(rel); err != nil {
		t.Fatalf("first AddWithID failed: %v", err)
	}
	if err := rs.AddWithID(rel); err == nil {
		t.Error("duplicate AddWithID succeeded, want error")
	}
}

func TestIDsAreTableLocal(t *testing.T) {
	a := &Relationships{}
	b := &Relationships{}

	ra := a.Add(RelTypeImage, "../media/image1.png")
	rb := b.Add(RelTypeImage, "../media/other.png")

	// Both tables legitimately mint rId1; resolution only makes sense
	// against the owning table.
	if ra.ID != rb.ID {
		t.Fatalf("expected both tables to mint the same first ID, got %q and %q", ra.ID, rb.ID)
	}
	got, ok := a.ByID("rId1")
	if !ok || got.Target != "../media/image1.png" {
		t.Errorf("table a resolved rId1 to %q", got.Target)
	}
	got, ok = b.ByID("rId1")
	if !ok || got.Target != "../media/other.png" {
		t.Errorf("table b resolved rId1 to %q", got.Target)
	}
}

func TestExternal(t *testing.T) {
	rs := &Relationships{}
	link := rs.AddExternal(RelTypeHyperlink, "https://example.com")
	img := rs.Add(RelTypeImage, "../media/image1.png")

	if !link.External() {
		t.Error("hyperlink not reported external")
	}
	if img.External() {
		t.Error("image reported external")
	}
}

func TestRelationshipsRoundTrip(t *testing.T) {
	rs := &Relationships{}
	rs.Add(RelTypeSlideLayout, "../slideLayouts/slideLayout1.xml")
	rs.Add(RelTypeImage, "../media/image1.png")
	rs.AddExternal(RelTypeHyperlink, "https://example.com")

	data, err := rs.marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	back, err := parseRelationships(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if back.Len() != 3 {
		t.Fatalf("round trip lost entries: %d, want 3", back.Len())
	}
	link, ok := back.ByID("rId3")
	if !ok || !link.External() || link.Target != "https://example.com" {
		t.Errorf("external entry damaged in round trip: %+v", link)
	}
}

func TestRelsPartName(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"", "_rels/.rels"},
		{"ppt/presentation.xml", "ppt/_rels/presentation.xml.rels"},
		{"ppt/slides/slide1.xml", "ppt/slides/_rels/slide1.xml.rels"},
	}
	for _, tc := range cases {
		if got := relsPartName(tc.source); got != tc.want {
			t.Errorf("relsPartName(%q) = %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	cases := []struct {
		source, target, want string
	}{
		{"ppt/presentation.xml", "slides/slide1.xml", "ppt/slides/slide1.xml"},
		{"ppt/slides/slide1.xml", "../slideLayouts/slideLayout1.xml", "ppt/slideLayouts/slideLayout1.xml"},
		{"ppt/slides/slide1.xml", "../media/image1.png", "ppt/media/image1.png"},
		{"", "ppt/presentation.xml", "ppt/presentation.xml"},
		{"ppt/slides/slide1.xml", "https://example.com/x", "https://example.com/x"},
		{"ppt/slides/slide1.xml", "/docProps/thumbnail.jpeg", "docProps/thumbnail.jpeg"},
	}
	for _, tc := range cases {
		if got := ResolveTarget(tc.source, tc.target); got != tc.want {
			t.Errorf("ResolveTarget(%q, %q) = %q, want %q", tc.source, tc.target, got, tc.want)
		}
	}
}

func TestRelativeTarget(t *testing.T) {
	cases := []struct {
		source, part, want string
	}{
		{"ppt/presentation.xml", "ppt/slides/slide1.xml", "slides/slide1.xml"},
		{"ppt/slides/slide1.xml", "ppt/slideLayouts/slideLayout1.xml", "../slideLayouts/slideLayout1.xml"},
		{"ppt/slides/slide1.xml", "ppt/media/image1.png", "../media/image1.png"},
	}
	for _, tc := range cases {
		if got := RelativeTarget(tc.source, tc.part); got != tc.want {
			t.Errorf("RelativeTarget(%q, %q) = %q, want %q", tc.source, tc.part, got, tc.want)
		}
	}
}
