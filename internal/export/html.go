package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/courseforge/courseforge/internal/blocks"
	"github.com/courseforge/courseforge/internal/model"
)

const htmlHeader = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      max-width: 800px;
      margin: 0 auto;
      padding: 2rem;
      line-height: 1.6;
      color: #333;
    }
    h1 { color: #1a1a1a; border-bottom: 2px solid #eee; padding-bottom: 0.5rem; }
    h2 { color: #333; margin-top: 2rem; }
    h3 { color: #555; }
    .curriculum { margin: 2rem 0; padding: 1rem; background: #f9f9f9; border-radius: 8px; }
    .page { margin: 1rem 0; padding: 1rem; background: white; border: 1px solid #eee; border-radius: 4px; }
    .page-title { font-weight: bold; margin-bottom: 0.5rem; }
    ul, ol { padding-left: 1.5rem; }
    img { max-width: 100%%; height: auto; }
    blockquote { border-left: 4px solid #ddd; margin: 1rem 0; padding-left: 1rem; color: #666; }
    code { background: #f4f4f4; padding: 0.2rem 0.4rem; border-radius: 3px; font-family: monospace; }
    pre { background: #f4f4f4; padding: 1rem; border-radius: 4px; overflow-x: auto; }
    pre code { background: none; padding: 0; }
  </style>
</head>
<body>
`

// HTML renders a whole course tree into a standalone HTML document.
func HTML(course *model.Course) (string, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(htmlHeader, html.EscapeString(course.Title)))
	sb.WriteString(fmt.Sprintf("  <h1>%s</h1>\n", html.EscapeString(course.Title)))
	if course.Description != nil && *course.Description != "" {
		sb.WriteString(fmt.Sprintf("  <p>%s</p>\n", html.EscapeString(*course.Description)))
	}

	for _, cur := range course.Curriculums {
		sb.WriteString("  <div class=\"curriculum\">\n")
		sb.WriteString(fmt.Sprintf("    <h2>%s</h2>\n", html.EscapeString(cur.Title)))
		for _, page := range cur.Pages {
			content, err := blocks.Decode(page.Content)
			if err != nil {
				return "", fmt.Errorf("page %s: %w", page.ID, err)
			}
			sb.WriteString("    <div class=\"page\">\n")
			sb.WriteString(fmt.Sprintf("      <div class=\"page-title\">%s</div>\n", html.EscapeString(page.Title)))
			sb.WriteString("      <div class=\"page-content\">\n")
			sb.WriteString(BlocksHTML(content))
			sb.WriteString("      </div>\n    </div>\n")
		}
		sb.WriteString("  </div>\n")
	}

	sb.WriteString("</body>\n</html>")
	return sb.String(), nil
}

// BlocksHTML renders a block list as HTML fragments, one block per line.
func BlocksHTML(list []blocks.Block) string {
	var sb strings.Builder
	for _, block := range list {
		sb.WriteString(blockHTML(block))
		sb.WriteString("\n")
	}
	return sb.String()
}

func blockHTML(block blocks.Block) string {
	content := inlineHTML(block.InlineContent())

	switch b := block.(type) {
	case blocks.Paragraph:
		return fmt.Sprintf("<p>%s</p>", content)
	case blocks.Heading:
		return fmt.Sprintf("<h%d>%s</h%d>", b.Level, content, b.Level)
	case blocks.BulletListItem:
		return fmt.Sprintf("<ul><li>%s</li></ul>", content)
	case blocks.NumberedListItem:
		return fmt.Sprintf("<ol><li>%s</li></ol>", content)
	case blocks.CheckListItem:
		checked := ""
		if b.Checked {
			checked = "checked "
		}
		return fmt.Sprintf("<ul><li><input type=\"checkbox\" %sdisabled> %s</li></ul>", checked, content)
	case blocks.Image:
		return fmt.Sprintf("<figure><img src=\"%s\" alt=\"%s\"><figcaption>%s</figcaption></figure>",
			html.EscapeString(b.URL), html.EscapeString(b.Caption), html.EscapeString(b.Caption))
	case blocks.Table:
		return tableHTML(b)
	case blocks.CodeBlock:
		return fmt.Sprintf("<pre><code class=\"language-%s\">%s</code></pre>",
			html.EscapeString(b.Language), html.EscapeString(blocks.PlainText(b)))
	default:
		if content == "" {
			return ""
		}
		return fmt.Sprintf("<p>%s</p>", content)
	}
}

func tableHTML(table blocks.Table) string {
	if len(table.Rows) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<table border=\"1\" cellpadding=\"8\" cellspacing=\"0\">")
	for i, row := range table.Rows {
		sb.WriteString("<tr>")
		tag := "td"
		if i == 0 {
			tag = "th"
		}
		for _, cell := range row.Cells {
			sb.WriteString(fmt.Sprintf("<%s>%s</%s>", tag, inlineHTML(cell), tag))
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table>")
	return sb.String()
}

func inlineHTML(inlines []blocks.Inline) string {
	var sb strings.Builder
	for _, inline := range inlines {
		switch item := inline.(type) {
		case blocks.Text:
			text := html.EscapeString(item.Text)
			if item.Styles.Bold {
				text = "<strong>" + text + "</strong>"
			}
			if item.Styles.Italic {
				text = "<em>" + text + "</em>"
			}
			if item.Styles.Underline {
				text = "<u>" + text + "</u>"
			}
			if item.Styles.Strikethrough {
				text = "<del>" + text + "</del>"
			}
			if item.Styles.Code {
				text = "<code>" + text + "</code>"
			}
			sb.WriteString(text)
		case blocks.Link:
			sb.WriteString(fmt.Sprintf("<a href=\"%s\">%s</a>", html.EscapeString(item.Href), inlineHTML(item.Content)))
		}
	}
	return sb.String()
}
