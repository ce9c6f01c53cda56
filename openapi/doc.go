// Package openapi describes form shapes from OpenAPI 3 documents.
//
// Documents are loaded with kin-openapi, which resolves local references, so
// the returned describers walk the loaded schema graph directly. Shapes are
// computed lazily, which keeps recursive component schemas finite.
package openapi
