package export

import (
	"errors"
	"log/slog"
	"os"

	"github.com/tartampluch/go-fortune/internal/config"
	"golang.org/x/text/encoding/charmap"
)

// ErrFontRequired is returned by PDF when the report holds text the core
// font cannot encode and no UTF-8 font was given.
var ErrFontRequired = errors.New(config.ErrPDFFontRequired)

// FindFont returns configured when set, otherwise the first candidate that
// is a regular file. It returns "" when nothing is found.
func FindFont(configured string, candidates []string) string {
	if configured != "" {
		return configured
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			slog.Debug(config.MsgFontResolved,
				config.LogKeyComponent, config.CompExport,
				config.LogKeyFile, path)
			return path
		}
	}
	return ""
}

// needsUTF8Font reports whether some text of r is outside cp1252, the
// encoding of the core fonts.
func needsUTF8Font(r *Report) bool {
	texts := []string{r.Title}
	for _, f := range r.Facts {
		texts = append(texts, f.Label, f.Value)
	}
	for _, s := range r.Sections {
		texts = append(texts, s.Title)
		for _, b := range s.Body {
			texts = append(texts, b.Text)
			texts = append(texts, b.Items...)
		}
	}

	for _, s := range texts {
		for _, c := range s {
			if _, ok := charmap.Windows1252.EncodeRune(c); !ok {
				return true
			}
		}
	}
	return false
}
