// Package content turns the loosely structured text returned by the prediction
// backend into paragraphs and lists.
package content

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tartampluch/go-fortune/internal/config"
)

// BlockKind tells a paragraph from a list.
type BlockKind int

const (
	// Paragraph holds one or more consecutive plain lines.
	Paragraph BlockKind = iota
	// List holds consecutive bullet or numbered items.
	List
)

// Block is one node of formatted content.
// Text is set for paragraphs (lines joined by "\n"), Items for lists.
type Block struct {
	Kind  BlockKind
	Text  string
	Items []string
}

// Content is the ordered sequence of blocks produced by Format.
type Content []Block

// IsPlaceholder reports whether c is the single block produced for empty input.
func (c Content) IsPlaceholder(placeholder string) bool {
	return len(c) == 1 && c[0].Kind == Paragraph && c[0].Text == placeholder
}

// listMarker matches a leading "•" or "12." once indentation is removed.
var listMarker = regexp.MustCompile(`^(?:•|\d+\.)(.*)$`)

// listItem reports the item text of "• text" or "12. text". Indentation and
// the separator after the marker may be any Unicode space, the same set
// strings.TrimSpace removes from plain lines.
func listItem(line string) (string, bool) {
	m := listMarker.FindStringSubmatch(strings.TrimLeftFunc(line, unicode.IsSpace))
	if m == nil {
		return "", false
	}
	if r, _ := utf8.DecodeRuneInString(m[1]); !unicode.IsSpace(r) {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// Formatter formats raw text. The zero value uses config.PlaceholderNoData.
type Formatter struct {
	// Placeholder is the paragraph text emitted for empty input.
	Placeholder string
}

// Format formats raw with the default placeholder.
func Format(raw string) Content {
	return Formatter{}.Format(raw)
}

// Format scans raw line by line. Adjacent list items merge into one List block,
// adjacent plain lines into one Paragraph. Blank lines produce no block and
// end the current run. Empty input yields a single placeholder paragraph.
func (f Formatter) Format(raw string) Content {
	if strings.TrimSpace(raw) == "" {
		return Content{{Kind: Paragraph, Text: f.placeholder()}}
	}

	var (
		out   Content
		lines []string
		items []string
	)

	flushParagraph := func() {
		if len(lines) > 0 {
			out = append(out, Block{Kind: Paragraph, Text: strings.Join(lines, config.LineSeparator)})
			lines = nil
		}
	}
	flushList := func() {
		if len(items) > 0 {
			out = append(out, Block{Kind: List, Items: items})
			items = nil
		}
	}

	for _, line := range strings.Split(raw, config.LineSeparator) {
		line = strings.TrimSuffix(line, "\r")

		if strings.TrimSpace(line) == "" {
			flushParagraph()
			flushList()
			continue
		}

		if item, ok := listItem(line); ok {
			flushParagraph()
			items = append(items, item)
			continue
		}

		flushList()
		lines = append(lines, strings.TrimSpace(line))
	}
	flushParagraph()
	flushList()

	return out
}

func (f Formatter) placeholder() string {
	if f.Placeholder == "" {
		return config.PlaceholderNoData
	}
	return f.Placeholder
}
