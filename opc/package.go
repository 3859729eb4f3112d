package opc

import (
	"encoding/xml"
	"fmt"
	"path"
	"sort"
	"strings"
)

// Content types used by presentation packages.
const (
	ContentTypeRels         = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML          = "application/xml"
	ContentTypePresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ContentTypeSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ContentTypeSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ContentTypeSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ContentTypeTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ContentTypeCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeAppProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	// MIMEType is the media type of a finished presentation file.
	MIMEType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// Part is one named resource inside the package.
type Part struct {
	Name        string // package path, no leading slash, e.g. "ppt/slides/slide1.xml"
	ContentType string
	Data        []byte
}

// Package is an in-memory OPC container: an ordered part list, a
// content type map, and one relationship table per part. The zero
// value is not usable; construct with NewPackage or Read.
type Package struct {
	parts []*Part
	index map[string]*Part
	rels  map[string]*Relationships // keyed by source part name, "" = package root
	types *contentTypes
}

// NewPackage returns an empty package with the standard defaults for
// .rels and .xml registered.
func NewPackage() *Package {
	p := &Package{
		index: make(map[string]*Part),
		rels:  make(map[string]*Relationships),
		types: newContentTypes(),
	}
	p.types.setDefault("rels", ContentTypeRels)
	p.types.setDefault("xml", ContentTypeXML)
	return p
}

// Part returns the named part, or nil if absent.
func (p *Package) Part(name string) *Part {
	return p.index[strings.TrimPrefix(name, "/")]
}

// Parts returns the parts in package order.
func (p *Package) Parts() []*Part {
	out := make([]*Part, len(p.parts))
	copy(out, p.parts)
	return out
}

// AddPart registers a new part with an explicit content type override.
func (p *Package) AddPart(name, contentType string, data []byte) (*Part, error) {
	name = strings.TrimPrefix(name, "/")
	if _, exists := p.index[name]; exists {
		return nil, fmt.Errorf("part %q already present", name)
	}
	part := &Part{Name: name, ContentType: contentType, Data: data}
	p.parts = append(p.parts, part)
	p.index[name] = part
	p.types.setOverride("/"+name, contentType)
	return part, nil
}

// AddImagePart registers a binary part whose content type is covered by
// an extension default instead of an override.
func (p *Package) AddImagePart(name, extension, contentType string, data []byte) (*Part, error) {
	name = strings.TrimPrefix(name, "/")
	if _, exists := p.index[name]; exists {
		return nil, fmt.Errorf("part %q already present", name)
	}
	part := &Part{Name: name, ContentType: contentType, Data: data}
	p.parts = append(p.parts, part)
	p.index[name] = part
	p.types.setDefault(extension, contentType)
	return part, nil
}

// Rels returns the relationship table owned by the named part,
// creating an empty one on first use. The empty string addresses the
// package root table.
func (p *Package) Rels(source string) *Relationships {
	source = strings.TrimPrefix(source, "/")
	rs, ok := p.rels[source]
	if !ok {
		rs = &Relationships{}
		p.rels[source] = rs
	}
	return rs
}

// HasRels reports whether the named part owns a non-empty table.
func (p *Package) HasRels(source string) bool {
	rs, ok := p.rels[strings.TrimPrefix(source, "/")]
	return ok && rs.Len() > 0
}

// ContentType reports the effective content type of the named part.
func (p *Package) ContentType(name string) string {
	return p.types.lookup("/" + strings.TrimPrefix(name, "/"))
}

// ResolveTarget resolves a relationship target against the directory of
// the source part, yielding a package part name. External targets are
// returned unchanged.
func ResolveTarget(source, target string) string {
	if strings.Contains(target, "://") {
		return target
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(path.Dir(source), target))
}

// RelativeTarget converts a package part name into a target path
// relative to the source part's directory, the form stored in .rels
// files.
func RelativeTarget(source, partName string) string {
	dir := path.Dir(source)
	if dir == "." || dir == "" {
		return partName
	}
	up := ""
	for !strings.HasPrefix(partName, dir+"/") {
		parent := path.Dir(dir)
		up += "../"
		if parent == "." || parent == "/" || parent == dir {
			return up + partName
		}
		dir = parent
	}
	return up + strings.TrimPrefix(partName, dir+"/")
}

// contentTypes models [Content_Types].xml.
type contentTypes struct {
	defaults  map[string]string // extension -> content type
	overrides map[string]string // "/part/name" -> content type
}

func newContentTypes() *contentTypes {
	return &contentTypes{
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}
}

func (ct *contentTypes) setDefault(extension, contentType string) {
	ct.defaults[strings.ToLower(extension)] = contentType
}

func (ct *contentTypes) setOverride(partName, contentType string) {
	ct.overrides[partName] = contentType
}

func (ct *contentTypes) lookup(partName string) string {
	if t, ok := ct.overrides[partName]; ok {
		return t
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(partName), "."))
	return ct.defaults[ext]
}

const nsContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"

type typesXML struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []defaultXML  `xml:"Default"`
	Overrides []overrideXML `xml:"Override"`
}

type defaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func parseContentTypes(data []byte) (*contentTypes, error) {
	var raw typesXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing content types: %w", err)
	}
	ct := newContentTypes()
	for _, d := range raw.Defaults {
		ct.setDefault(d.Extension, d.ContentType)
	}
	for _, o := range raw.Overrides {
		ct.setOverride(o.PartName, o.ContentType)
	}
	return ct, nil
}

// marshal serializes the content type map with sorted entries so
// output bytes are stable across runs.
func (ct *contentTypes) marshal() ([]byte, error) {
	raw := typesXML{Xmlns: nsContentTypes}

	exts := make([]string, 0, len(ct.defaults))
	for ext := range ct.defaults {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		raw.Defaults = append(raw.Defaults, defaultXML{Extension: ext, ContentType: ct.defaults[ext]})
	}

	names := make([]string, 0, len(ct.overrides))
	for name := range ct.overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		raw.Overrides = append(raw.Overrides, overrideXML{PartName: name, ContentType: ct.overrides[name]})
	}

	body, err := xml.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
