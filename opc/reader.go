package opc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

const contentTypesPart = "[Content_Types].xml"

// Read parses an OPC package from a byte slice.
func Read(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return readZip(zr)
}

// ReadFile parses an OPC package from a file on disk.
func ReadFile(filename string) (*Package, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return Read(data)
}

func readZip(zr *zip.Reader) (*Package, error) {
	p := NewPackage()

	var sawTypes bool
	for _, f := range zr.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}

		switch {
		case f.Name == contentTypesPart:
			ct, err := parseContentTypes(data)
			if err != nil {
				return nil, err
			}
			p.types = ct
			sawTypes = true

		case isRelsPart(f.Name):
			rs, err := parseRelationships(data)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", f.Name, err)
			}
			p.rels[relsSource(f.Name)] = rs

		default:
			part := &Part{Name: f.Name, Data: data}
			p.parts = append(p.parts, part)
			p.index[f.Name] = part
		}
	}

	if !sawTypes {
		return nil, fmt.Errorf("missing required file: %s", contentTypesPart)
	}

	// Content types are only known once [Content_Types].xml has been
	// seen; zip entry order does not guarantee it comes first.
	for _, part := range p.parts {
		part.ContentType = p.types.lookup("/" + part.Name)
	}

	return p, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func isRelsPart(name string) bool {
	if !strings.HasSuffix(name, ".rels") {
		return false
	}
	return name == "_rels/.rels" || strings.Contains(name, "/_rels/")
}

// relsSource recovers the source part name a .rels part belongs to.
func relsSource(name string) string {
	if name == "_rels/.rels" {
		return ""
	}
	idx := strings.Index(name, "/_rels/")
	dir := name[:idx]
	base := strings.TrimSuffix(name[idx+len("/_rels/"):], ".rels")
	return dir + "/" + base
}
