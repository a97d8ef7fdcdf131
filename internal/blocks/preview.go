package blocks

import "strings"

const (
	previewBlocks = 3
	previewLimit  = 100
)

// PlainText flattens the inline runs of a block into unstyled text.
func PlainText(block Block) string {
	return inlineText(block.InlineContent())
}

func inlineText(inlines []Inline) string {
	var sb strings.Builder
	for _, inline := range inlines {
		switch item := inline.(type) {
		case Text:
			sb.WriteString(item.Text)
		case Link:
			sb.WriteString(inlineText(item.Content))
		}
	}
	return sb.String()
}

// Preview extracts a short text summary from raw block JSON for version
// listings. It reads at most the first three blocks and caps the result at
// a hundred characters, appending an ellipsis when truncated. Content that
// fails to parse previews as empty.
func Preview(data []byte) string {
	decoded, err := Decode(data)
	if err != nil {
		return ""
	}

	var parts []string
	for i, block := range decoded {
		if i >= previewBlocks {
			break
		}
		if text := PlainText(block); text != "" {
			parts = append(parts, text)
		}
	}

	preview := []rune(strings.Join(parts, " "))
	if len(preview) > previewLimit {
		return string(preview[:previewLimit]) + "..."
	}
	return string(preview)
}
