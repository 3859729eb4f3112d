package opc

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Write flattens the package into zip form. The output is a pure
// function of package state: parts are written in package order with
// each part's relationship table directly after it, and map-backed
// sections ([Content_Types].xml) are sorted before serialization.
func (p *Package) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	ctData, err := p.types.marshal()
	if err != nil {
		return fmt.Errorf("serializing content types: %w", err)
	}
	if err := writeZipEntry(zw, contentTypesPart, ctData); err != nil {
		return err
	}

	if err := p.writeRels(zw, ""); err != nil {
		return err
	}

	for _, part := range p.parts {
		if err := writeZipEntry(zw, part.Name, part.Data); err != nil {
			return err
		}
		if err := p.writeRels(zw, part.Name); err != nil {
			return err
		}
	}

	return zw.Close()
}

func (p *Package) writeRels(zw *zip.Writer, source string) error {
	rs, ok := p.rels[source]
	if !ok || rs.Len() == 0 {
		return nil
	}
	data, err := rs.marshal()
	if err != nil {
		return fmt.Errorf("serializing relationships for %q: %w", source, err)
	}
	return writeZipEntry(zw, relsPartName(source), data)
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Bytes serializes the package into a byte slice.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile serializes the package to a file on disk.
func (p *Package) WriteFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer f.Close()
	if err := p.Write(f); err != nil {
		return err
	}
	return f.Close()
}
