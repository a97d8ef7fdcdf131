package blocks

import (
	"encoding/json"
	"fmt"
)

// wire shapes mirror the editor's JSON. Content is raw because tables
// carry an object where every other block carries an inline array.
type wireBlock struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Props   json.RawMessage `json:"props,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

type wireInline struct {
	Type    string          `json:"type"`
	Text    string          `json:"text,omitempty"`
	Styles  *Styles         `json:"styles,omitempty"`
	Href    string          `json:"href,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

type wireTableContent struct {
	Type string `json:"type"`
	Rows []struct {
		Cells []json.RawMessage `json:"cells"`
	} `json:"rows"`
}

// Decode parses and validates a block tree. Unknown block or inline types
// and out-of-range heading levels are rejected rather than passed through.
func Decode(data []byte) ([]Block, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw []wireBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode blocks: %w", err)
	}

	out := make([]Block, 0, len(raw))
	for i, wb := range raw {
		block, err := decodeBlock(wb)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		out = append(out, block)
	}
	return out, nil
}

func decodeBlock(wb wireBlock) (Block, error) {
	switch wb.Type {
	case TypeParagraph:
		content, err := decodeInlines(wb.Content)
		if err != nil {
			return nil, err
		}
		return Paragraph{ID: wb.ID, Content: content}, nil
	case TypeHeading:
		var props struct {
			Level int `json:"level"`
		}
		if err := decodeProps(wb.Props, &props); err != nil {
			return nil, err
		}
		if props.Level == 0 {
			props.Level = 1
		}
		if props.Level < 1 || props.Level > 3 {
			return nil, fmt.Errorf("heading level %d out of range", props.Level)
		}
		content, err := decodeInlines(wb.Content)
		if err != nil {
			return nil, err
		}
		return Heading{ID: wb.ID, Level: props.Level, Content: content}, nil
	case TypeBulletListItem:
		content, err := decodeInlines(wb.Content)
		if err != nil {
			return nil, err
		}
		return BulletListItem{ID: wb.ID, Content: content}, nil
	case TypeNumberedListItem:
		content, err := decodeInlines(wb.Content)
		if err != nil {
			return nil, err
		}
		return NumberedListItem{ID: wb.ID, Content: content}, nil
	case TypeCheckListItem:
		var props struct {
			Checked bool `json:"checked"`
		}
		if err := decodeProps(wb.Props, &props); err != nil {
			return nil, err
		}
		content, err := decodeInlines(wb.Content)
		if err != nil {
			return nil, err
		}
		return CheckListItem{ID: wb.ID, Checked: props.Checked, Content: content}, nil
	case TypeImage:
		var props struct {
			URL     string `json:"url"`
			Caption string `json:"caption"`
		}
		if err := decodeProps(wb.Props, &props); err != nil {
			return nil, err
		}
		return Image{ID: wb.ID, URL: props.URL, Caption: props.Caption}, nil
	case TypeTable:
		return decodeTable(wb)
	case TypeCodeBlock:
		var props struct {
			Language string `json:"language"`
		}
		if err := decodeProps(wb.Props, &props); err != nil {
			return nil, err
		}
		content, err := decodeInlines(wb.Content)
		if err != nil {
			return nil, err
		}
		return CodeBlock{ID: wb.ID, Language: props.Language, Content: content}, nil
	default:
		return nil, fmt.Errorf("unknown block type %q", wb.Type)
	}
}

func decodeProps(raw json.RawMessage, into any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode props: %w", err)
	}
	return nil
}

func decodeTable(wb wireBlock) (Block, error) {
	if len(wb.Content) == 0 {
		return Table{ID: wb.ID}, nil
	}
	var content wireTableContent
	if err := json.Unmarshal(wb.Content, &content); err != nil {
		return nil, fmt.Errorf("decode table content: %w", err)
	}
	rows := make([]TableRow, 0, len(content.Rows))
	for _, row := range content.Rows {
		cells := make([][]Inline, 0, len(row.Cells))
		for _, cell := range row.Cells {
			inlines, err := decodeInlines(cell)
			if err != nil {
				return nil, err
			}
			cells = append(cells, inlines)
		}
		rows = append(rows, TableRow{Cells: cells})
	}
	return Table{ID: wb.ID, Rows: rows}, nil
}

func decodeInlines(raw json.RawMessage) ([]Inline, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []wireInline
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode inline content: %w", err)
	}

	out := make([]Inline, 0, len(items))
	for _, item := range items {
		switch item.Type {
		case "text":
			text := Text{Text: item.Text}
			if item.Styles != nil {
				text.Styles = *item.Styles
			}
			out = append(out, text)
		case "link":
			content, err := decodeInlines(item.Content)
			if err != nil {
				return nil, err
			}
			out = append(out, Link{Href: item.Href, Content: content})
		default:
			return nil, fmt.Errorf("unknown inline type %q", item.Type)
		}
	}
	return out, nil
}

// Encode renders a block tree back to the editor's JSON.
func Encode(blocks []Block) ([]byte, error) {
	raw := make([]wireBlock, 0, len(blocks))
	for _, block := range blocks {
		wb, err := encodeBlock(block)
		if err != nil {
			return nil, err
		}
		raw = append(raw, wb)
	}
	return json.Marshal(raw)
}

func encodeBlock(block Block) (wireBlock, error) {
	wb := wireBlock{Type: block.Type()}

	var props any
	switch b := block.(type) {
	case Paragraph:
		wb.ID = b.ID
	case Heading:
		wb.ID = b.ID
		props = map[string]any{"level": b.Level}
	case BulletListItem:
		wb.ID = b.ID
	case NumberedListItem:
		wb.ID = b.ID
	case CheckListItem:
		wb.ID = b.ID
		props = map[string]any{"checked": b.Checked}
	case Image:
		wb.ID = b.ID
		props = map[string]any{"url": b.URL, "caption": b.Caption}
	case CodeBlock:
		wb.ID = b.ID
		props = map[string]any{"language": b.Language}
	case Table:
		wb.ID = b.ID
		content, err := encodeTableContent(b)
		if err != nil {
			return wireBlock{}, err
		}
		wb.Content = content
		return wb, nil
	default:
		return wireBlock{}, fmt.Errorf("unknown block type %T", block)
	}

	if props != nil {
		data, err := json.Marshal(props)
		if err != nil {
			return wireBlock{}, err
		}
		wb.Props = data
	}
	if inlines := block.InlineContent(); inlines != nil {
		data, err := encodeInlines(inlines)
		if err != nil {
			return wireBlock{}, err
		}
		wb.Content = data
	}
	return wb, nil
}

func encodeTableContent(table Table) (json.RawMessage, error) {
	rows := make([]map[string]any, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells := make([]json.RawMessage, 0, len(row.Cells))
		for _, cell := range row.Cells {
			data, err := encodeInlines(cell)
			if err != nil {
				return nil, err
			}
			cells = append(cells, data)
		}
		rows = append(rows, map[string]any{"cells": cells})
	}
	return json.Marshal(map[string]any{"type": "tableContent", "rows": rows})
}

func encodeInlines(inlines []Inline) (json.RawMessage, error) {
	raw := make([]wireInline, 0, len(inlines))
	for _, inline := range inlines {
		switch item := inline.(type) {
		case Text:
			wi := wireInline{Type: "text", Text: item.Text}
			if item.Styles != (Styles{}) {
				styles := item.Styles
				wi.Styles = &styles
			}
			raw = append(raw, wi)
		case Link:
			content, err := encodeInlines(item.Content)
			if err != nil {
				return nil, err
			}
			raw = append(raw, wireInline{Type: "link", Href: item.Href, Content: content})
		default:
			return nil, fmt.Errorf("unknown inline type %T", inline)
		}
	}
	return json.Marshal(raw)
}
