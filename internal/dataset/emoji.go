package dataset

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CategoryAttr is the attribute name under which parsers store an item's
// grouping key.
const CategoryAttr = "category"

type emojiRecord struct {
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Aliases     []string `json:"aliases"`
	Tags        []string `json:"tags"`
}

// EmojiParser reads the gemoji-style JSON array shipped with the emoji
// dataset.
type EmojiParser struct{}

// Parse implements Parser.
func (EmojiParser) Parse(raw []byte) ([]Item, error) {
	var records []emojiRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse emoji dataset: %w", err)
	}
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		if strings.TrimSpace(rec.Emoji) == "" {
			continue
		}
		keywords := make([]string, 0, len(rec.Aliases)+len(rec.Tags)+1)
		if rec.Description != "" {
			keywords = append(keywords, rec.Description)
		}
		keywords = append(keywords, rec.Aliases...)
		keywords = append(keywords, rec.Tags...)
		items = append(items, Item{
			Attrs:    map[string]string{CategoryAttr: rec.Category},
			Keywords: keywords,
			Payload:  rec.Emoji,
		})
	}
	return items, nil
}
