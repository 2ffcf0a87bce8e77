// Package format reads and writes art and palette files.
//
// Art files:
//
//   - .txt: plain text, one row per line, a single imported layer
//   - .aaf, .json: structured document with per-layer rows (JSON)
//   - .yaml, .yml: the same structured document encoded as YAML
//
// Palette files:
//
//   - .txt: every character in file order; line breaks separate
//   - .json, .yaml, .yml: a {name, characters} record
//
// Transparent cells are written as [art.EmptyGlyph] in every text form, so
// a space and an empty cell stay distinct after a round trip.
package format
