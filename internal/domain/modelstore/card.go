package modelstore

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var cardRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderCard converts a markdown model card to HTML. Raw HTML in the card is
// omitted by the renderer.
func RenderCard(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := cardRenderer.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render model card: %w", err)
	}
	return buf.String(), nil
}
