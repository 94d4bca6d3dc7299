// Package editor models the structured rich-text document posts are
// written in: an ordered list of typed blocks (paragraph, header, list,
// quote, image, ...).
package editor

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const wordsPerMinute = 225

type BlockData struct {
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
	URL   string   `json:"url,omitempty"`
	Level int      `json:"level,omitempty"`
}

type Block struct {
	Type string    `json:"type"`
	Data BlockData `json:"data"`
}

type Document struct {
	Blocks []Block `json:"blocks"`
}

// Parse decodes a raw JSON document. An empty or null payload yields an
// empty document, which callers treat as "no content saved yet".
func Parse(raw []byte) (Document, error) {
	var doc Document
	if len(raw) == 0 || string(raw) == "null" {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (d Document) IsEmpty() bool {
	return len(d.Blocks) == 0
}

// PlainText joins the readable text of all text-bearing blocks.
func (d Document) PlainText() string {
	var parts []string
	for _, block := range d.Blocks {
		switch block.Type {
		case "paragraph", "header", "quote":
			if block.Data.Text != "" {
				parts = append(parts, block.Data.Text)
			}
		case "list":
			parts = append(parts, block.Data.Items...)
		}
	}
	return strings.Join(parts, " ")
}

// ReadTime estimates reading time in whole minutes, minimum 1.
func (d Document) ReadTime() int {
	words := len(strings.Fields(d.PlainText()))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

var sanitizePolicy = bluemonday.UGCPolicy()

// Sanitize strips unsafe markup from every text-bearing block in place.
func (d *Document) Sanitize() {
	for i := range d.Blocks {
		d.Blocks[i].Data.Text = sanitizePolicy.Sanitize(d.Blocks[i].Data.Text)
		for j, item := range d.Blocks[i].Data.Items {
			d.Blocks[i].Data.Items[j] = sanitizePolicy.Sanitize(item)
		}
	}
}

// SanitizeText strips unsafe markup from a free-text field (comments, bios).
func SanitizeText(s string) string {
	return sanitizePolicy.Sanitize(s)
}
