package export

import (
	"fmt"
	"strings"

	"github.com/courseforge/courseforge/internal/blocks"
	"github.com/courseforge/courseforge/internal/model"
)

// Markdown renders a whole course tree into a single markdown document.
// Courses map to H1, curriculums to H2, pages to H3.
func Markdown(course *model.Course) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", course.Title))
	if course.Description != nil && *course.Description != "" {
		sb.WriteString(*course.Description)
		sb.WriteString("\n\n")
	}

	for _, cur := range course.Curriculums {
		sb.WriteString(fmt.Sprintf("## %s\n\n", cur.Title))
		for _, page := range cur.Pages {
			content, err := blocks.Decode(page.Content)
			if err != nil {
				return "", fmt.Errorf("page %s: %w", page.ID, err)
			}
			sb.WriteString(fmt.Sprintf("### %s\n\n", page.Title))
			sb.WriteString(BlocksMarkdown(content))
			sb.WriteString("\n\n")
		}
	}

	return sb.String(), nil
}

// BlocksMarkdown renders a block list as markdown, one block per line.
func BlocksMarkdown(list []blocks.Block) string {
	lines := make([]string, 0, len(list))
	for _, block := range list {
		lines = append(lines, blockMarkdown(block))
	}
	return strings.Join(lines, "\n")
}

func blockMarkdown(block blocks.Block) string {
	content := inlineMarkdown(block.InlineContent())

	switch b := block.(type) {
	case blocks.Paragraph:
		return content
	case blocks.Heading:
		return strings.Repeat("#", b.Level) + " " + content
	case blocks.BulletListItem:
		return "- " + content
	case blocks.NumberedListItem:
		return "1. " + content
	case blocks.CheckListItem:
		checked := " "
		if b.Checked {
			checked = "x"
		}
		return fmt.Sprintf("- [%s] %s", checked, content)
	case blocks.Image:
		return fmt.Sprintf("![%s](%s)", b.Caption, b.URL)
	case blocks.Table:
		return tableMarkdown(b)
	case blocks.CodeBlock:
		return "```" + b.Language + "\n" + blocks.PlainText(b) + "\n```"
	default:
		return content
	}
}

func tableMarkdown(table blocks.Table) string {
	if len(table.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, row := range table.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, inlineMarkdown(cell))
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		if i == 0 {
			seps := make([]string, len(row.Cells))
			for j := range seps {
				seps[j] = "---"
			}
			sb.WriteString("| " + strings.Join(seps, " | ") + " |\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func inlineMarkdown(inlines []blocks.Inline) string {
	var sb strings.Builder
	for _, inline := range inlines {
		switch item := inline.(type) {
		case blocks.Text:
			text := item.Text
			if item.Styles.Bold {
				text = "**" + text + "**"
			}
			if item.Styles.Italic {
				text = "*" + text + "*"
			}
			if item.Styles.Strikethrough {
				text = "~~" + text + "~~"
			}
			if item.Styles.Code {
				text = "`" + text + "`"
			}
			sb.WriteString(text)
		case blocks.Link:
			sb.WriteString(fmt.Sprintf("[%s](%s)", inlineMarkdown(item.Content), item.Href))
		}
	}
	return sb.String()
}
