// Package changelog manages the Markdown changelog that autochangelog appends to.
//
// This package implements:
//   - Document: the full changelog text with its insertion marker
//   - Excerpt: a bounded slice of recent history for the generation context
//   - Splice: insertion of a new entry before the marker (or appending it)
//   - ParseResponse: validation and repair of untrusted generated text
//   - Loader and Source: reading the changelog from a remote reference,
//     the local file, or starting a new document
//
// The marker line <!-- AI_APPEND_HERE --> is the stable insertion anchor:
// the entry directly above it is always the newest one.
package changelog
