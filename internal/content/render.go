package content

import (
	"html"
	"strings"

	"github.com/tartampluch/go-fortune/internal/config"
)

// RenderHTML renders c as <p> and <ul><li> markup. Text is escaped and
// line breaks inside a paragraph become <br>.
func RenderHTML(c Content) string {
	var sb strings.Builder
	for _, b := range c {
		switch b.Kind {
		case List:
			sb.WriteString("<ul>")
			for _, item := range b.Items {
				sb.WriteString("<li>")
				sb.WriteString(html.EscapeString(item))
				sb.WriteString("</li>")
			}
			sb.WriteString("</ul>")
		default:
			sb.WriteString("<p>")
			lines := strings.Split(b.Text, config.LineSeparator)
			for i, line := range lines {
				if i > 0 {
					sb.WriteString("<br>")
				}
				sb.WriteString(html.EscapeString(line))
			}
			sb.WriteString("</p>")
		}
	}
	return sb.String()
}

// PlainText extracts c back to source lines: paragraphs as their lines, list
// items prefixed with the bullet marker, a blank line between blocks.
// Formatting the result yields the same block structure.
func PlainText(c Content) string {
	blocks := make([]string, 0, len(c))
	for _, b := range c {
		if b.Kind == List {
			lines := make([]string, len(b.Items))
			for i, item := range b.Items {
				lines[i] = config.BulletMarker + item
			}
			blocks = append(blocks, strings.Join(lines, config.LineSeparator))
			continue
		}
		blocks = append(blocks, b.Text)
	}
	return strings.Join(blocks, config.BlockSeparator)
}
