// Package art provides the layered character-grid model of the editor.
//
// The package defines the types every other package draws on, filters,
// snapshots or serializes:
//
//   - [Layer]: a bounded grid of optional characters placed at an offset
//   - [Canvas]: a fixed-size, ordered stack of layers
//   - [Point] and [Rect]: integer geometry shared by canvas and layer space
//
// A cell holds either a rune or [Transparent]. Transparent cells show the
// layers below; the space character is an ordinary, opaque glyph.
//
// # Coordinate spaces
//
// Canvas space is absolute and shared by all layers. Layer space has its
// origin at the layer's offset:
//
//	layerPoint  = canvasPoint - offset
//	canvasPoint = layerPoint + offset
//
// # Thread Safety
//
// Layers and canvases are NOT safe for concurrent use. The editor assumes
// a single mutator per subject; callers that import or export on another
// goroutine must not touch the same layer at the same time.
package art
