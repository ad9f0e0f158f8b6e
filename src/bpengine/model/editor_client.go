package model

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Notifications sent to the editor to draw breakpoints.
const (
	MethodPlaceInlineGlyph     = "bpengine/placeInlineGlyph"
	MethodRemoveGlyphsInRange  = "bpengine/removeGlyphsInRange"
	MethodPlaceLineHighlighter = "bpengine/placeLineHighlighter"
)

// PlaceInlineGlyphParams draws an inline glyph at Offset. Position is the same point in UTF-16 LSP
// coordinates. Either side of the match may be absent.
type PlaceInlineGlyphParams struct {
	URI        uri.URI           `json:"uri"`
	Line       int               `json:"line"`
	Offset     int               `json:"offset"`
	Position   protocol.Position `json:"position"`
	Variant    *Variant          `json:"variant,omitempty"`
	Breakpoint *Breakpoint       `json:"breakpoint,omitempty"`
}

// RemoveGlyphsInRangeParams clears the glyphs within a range of the document.
type RemoveGlyphsInRangeParams struct {
	URI   uri.URI   `json:"uri"`
	Range TextRange `json:"range"`
}

// PlaceLineHighlighterParams highlights the line or range of a breakpoint.
type PlaceLineHighlighterParams struct {
	URI        uri.URI    `json:"uri"`
	Line       int        `json:"line"`
	Breakpoint Breakpoint `json:"breakpoint"`
}
