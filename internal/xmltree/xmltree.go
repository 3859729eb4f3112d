// Package xmltree provides a generic, order-preserving XML element tree.
//
// Unlike struct-based unmarshalling, the tree keeps every element and
// attribute it encounters, so a document can be parsed, selectively
// rewritten, and serialized again without losing markup the caller
// never modelled. Namespace prefixes are recorded at parse time and
// re-applied on output.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// xmlNamespace is the reserved namespace bound to the implicit xml
// prefix. The decoder resolves xml:space and friends to this URI.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// Attr is a single attribute on a Node. Space holds the namespace URI
// for prefixed attributes, or the raw prefix when the document never
// declared it, or "" for unprefixed attributes.
type Attr struct {
	Space string
	Local string
	Value string
}

// Node is one element in the tree. Text holds character data directly
// inside the element; OOXML parts never mix character data with child
// elements, so a single field is sufficient.
type Node struct {
	Space    string
	Local    string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Document is a parsed XML part: the root element plus the namespace
// declarations seen while parsing, so Marshal can emit the same
// prefixes the source used.
type Document struct {
	Root *Node

	// prefix -> namespace URI, in declaration order
	decls      []nsDecl
	defaultNS  string
	hasDefault bool
}

type nsDecl struct {
	prefix string
	uri    string
}

// Parse reads a well-formed XML document into a Document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	dec := xml.NewDecoder(bytes.NewReader(data))

	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Space: t.Name.Space, Local: t.Name.Local}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" {
					doc.addDecl(a.Name.Local, a.Value)
					continue
				}
				if a.Name.Space == "" && a.Name.Local == "xmlns" {
					doc.defaultNS = a.Value
					doc.hasDefault = true
					continue
				}
				n.Attrs = append(n.Attrs, Attr{Space: a.Name.Space, Local: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, fmt.Errorf("multiple root elements")
				}
				doc.Root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unbalanced end element </%s>", t.Name.Local)
			}
			top := stack[len(stack)-1]
			// Drop whitespace-only text on container elements.
			if len(top.Children) > 0 && strings.TrimSpace(top.Text) == "" {
				top.Text = ""
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if doc.Root == nil {
		return nil, fmt.Errorf("no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unbalanced document: %d unclosed elements", len(stack))
	}
	return doc, nil
}

func (d *Document) addDecl(prefix, uri string) {
	for _, nd := range d.decls {
		if nd.prefix == prefix {
			return
		}
	}
	d.decls = append(d.decls, nsDecl{prefix: prefix, uri: uri})
}

// Clone returns a deep copy of the document. Mutating the copy never
// affects the original.
func (d *Document) Clone() *Document {
	out := &Document{
		defaultNS:  d.defaultNS,
		hasDefault: d.hasDefault,
	}
	out.decls = append(out.decls, d.decls...)
	out.Root = d.Root.Clone()
	return out
}

// Clone returns a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	out := &Node{Space: n.Space, Local: n.Local, Text: n.Text}
	if len(n.Attrs) > 0 {
		out.Attrs = make([]Attr, len(n.Attrs))
		copy(out.Attrs, n.Attrs)
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first descendant (or n itself) matching the given
// namespace URI and local name, or nil.
func (n *Node) Find(space, local string) *Node {
	if n.Space == space && n.Local == local {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(space, local); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant (including n) matching space/local
// in document order.
func (n *Node) FindAll(space, local string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) {
		if c.Space == space && c.Local == local {
			out = append(out, c)
		}
	})
	return out
}

// Child returns the first direct child matching space/local, or nil.
func (n *Node) Child(space, local string) *Node {
	for _, c := range n.Children {
		if c.Space == space && c.Local == local {
			return c
		}
	}
	return nil
}

// Attr returns the value of the named attribute and whether it exists.
func (n *Node) Attr(space, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Space == space && a.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing any existing value.
func (n *Node) SetAttr(space, local, value string) {
	for i, a := range n.Attrs {
		if a.Space == space && a.Local == local {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Space: space, Local: local, Value: value})
}

// AppendChild appends c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	n.Children = append(n.Children, c)
}

// Marshal serializes the document with an XML declaration, re-applying
// the namespace declarations recorded at parse time. Output is
// deterministic for identical trees.
func (d *Document) Marshal() []byte {
	d.ensurePrefixes()
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	buf.WriteString("\r\n")
	d.writeNode(&buf, d.Root, true)
	return buf.Bytes()
}

// ensurePrefixes mints declarations for any namespace URI the tree
// uses that was never declared, so the root element can carry every
// declaration the body needs.
func (d *Document) ensurePrefixes() {
	d.Root.Walk(func(n *Node) {
		d.ensurePrefix(n.Space, false)
		for _, a := range n.Attrs {
			d.ensurePrefix(a.Space, true)
		}
	})
}

func (d *Document) ensurePrefix(space string, attr bool) {
	if space == "" || space == xmlNamespace {
		return
	}
	if !attr && d.hasDefault && space == d.defaultNS {
		return
	}
	for _, nd := range d.decls {
		if nd.uri == space {
			return
		}
	}
	// Bare prefixes (never declared in the source) pass through as-is.
	if !strings.ContainsAny(space, "/:") {
		return
	}
	d.decls = append(d.decls, nsDecl{prefix: fmt.Sprintf("ns%d", len(d.decls)+1), uri: space})
}

func (d *Document) writeNode(buf *bytes.Buffer, n *Node, root bool) {
	name := d.qualify(n.Space, n.Local, false)
	buf.WriteByte('<')
	buf.WriteString(name)

	if root {
		if d.hasDefault {
			fmt.Fprintf(buf, ` xmlns=%q`, d.defaultNS)
		}
		for _, nd := range d.decls {
			fmt.Fprintf(buf, ` xmlns:%s=%q`, nd.prefix, nd.uri)
		}
	}

	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(d.qualify(a.Space, a.Local, true))
		buf.WriteString(`="`)
		escape(buf, a.Value)
		buf.WriteByte('"')
	}

	if len(n.Children) == 0 && n.Text == "" {
		buf.WriteString("/>")
		return
	}

	buf.WriteByte('>')
	if n.Text != "" {
		escape(buf, n.Text)
	}
	for _, c := range n.Children {
		d.writeNode(buf, c, false)
	}
	buf.WriteString("</")
	buf.WriteString(name)
	buf.WriteByte('>')
}

// qualify maps a namespace URI back to a prefixed name. Attributes
// cannot use the default namespace, so attr names in the default URI
// still need a prefix.
func (d *Document) qualify(space, local string, attr bool) string {
	if space == "" {
		return local
	}
	// Names in the reserved XML namespace always use the implicit xml
	// prefix; it must never be re-declared.
	if space == xmlNamespace {
		return "xml:" + local
	}
	if !attr && d.hasDefault && space == d.defaultNS {
		return local
	}
	for _, nd := range d.decls {
		if nd.uri == space {
			return nd.prefix + ":" + local
		}
	}
	// An undeclared prefix survives parsing verbatim; anything without
	// URI separators is such a prefix.
	if !strings.ContainsAny(space, "/:") {
		return space + ":" + local
	}
	// ensurePrefixes has already minted a declaration for every URI in
	// the tree, so this is unreachable for marshalled documents.
	return local
}

// DeclaredURIs returns the namespace URIs declared in the document,
// sorted, for diagnostics.
func (d *Document) DeclaredURIs() []string {
	var out []string
	if d.hasDefault {
		out = append(out, d.defaultNS)
	}
	for _, nd := range d.decls {
		out = append(out, nd.uri)
	}
	sort.Strings(out)
	return out
}

func escape(buf *bytes.Buffer, s string) {
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&apos;")
		default:
			buf.WriteRune(r)
		}
	}
}
