// Package opc implements the Open Packaging Conventions container that
// underlies OOXML documents: a zip archive of named parts, a content
// type map, and a relationship table per part.
//
// Relationship IDs are scoped to the table that owns them. Two parts
// may both hold an "rId1" pointing at different targets; resolving an
// ID is only meaningful against the owning part's table. The
// Relationships type keeps that property enforceable by construction:
// it mints IDs locally and never exposes a global registry.
package opc
