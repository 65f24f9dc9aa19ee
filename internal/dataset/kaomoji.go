package dataset

import (
	"encoding/json"
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

type kaomojiRecord struct {
	Kaomoji  string   `json:"kaomoji"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
}

// KaomojiParser reads the kaomoji JSON array. Kaomoji have wildly varying
// display widths, so each item carries intrinsic dimensions for the masonry
// layout; records without explicit dimensions fall back to the payload's
// terminal cell width and a height of one row.
type KaomojiParser struct{}

// Parse implements Parser.
func (KaomojiParser) Parse(raw []byte) ([]Item, error) {
	var records []kaomojiRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse kaomoji dataset: %w", err)
	}
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Kaomoji) == "" {
			continue
		}
		width := rec.Width
		if width <= 0 {
			width = float64(runewidth.StringWidth(rec.Kaomoji))
		}
		height := rec.Height
		if height <= 0 {
			height = 1
		}
		items = append(items, Item{
			Attrs:    map[string]string{CategoryAttr: rec.Category},
			Keywords: rec.Keywords,
			Payload:  rec.Kaomoji,
			Width:    width,
			Height:   height,
		})
	}
	return items, nil
}
