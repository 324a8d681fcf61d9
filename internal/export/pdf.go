package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-pdf/fpdf"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/content"
)

// PDFOptions controls PDF rendering.
type PDFOptions struct {
	// FontPath is a UTF-8 TrueType font able to draw CJK text. When empty the
	// core Helvetica font is used, which only works for cp1252 text.
	FontPath string
	// Margin in millimetres. Zero means config.PDFMarginMM.
	Margin float64
}

// pdfWriter keeps the font switching in one place.
type pdfWriter struct {
	doc    *fpdf.Fpdf
	family string
	utf8   bool
	tr     func(string) string
}

func (w *pdfWriter) font(bold bool, size float64) {
	style := ""
	// Only the regular face of the UTF-8 font is registered.
	if bold && !w.utf8 {
		style = "B"
	}
	w.doc.SetFont(w.family, style, size)
}

func (w *pdfWriter) text(s string) string {
	if w.tr == nil {
		return s
	}
	return w.tr(s)
}

// PDF renders r as an A4 portrait document. Without a font path it fails
// with ErrFontRequired when r has text outside cp1252, and writes nothing.
func PDF(out io.Writer, r *Report, opts PDFOptions) error {
	if r == nil {
		return fmt.Errorf("%s: %s", config.ErrPDFRender, config.ErrNoPrediction)
	}
	if opts.FontPath == "" && needsUTF8Font(r) {
		return fmt.Errorf("%s: %w", config.ErrPDFRender, ErrFontRequired)
	}
	margin := opts.Margin
	if margin <= 0 {
		margin = config.PDFMarginMM
	}

	doc := fpdf.New(config.PDFOrientation, config.PDFUnit, config.PDFPageFormat, "")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(true, margin)
	doc.SetTitle(r.Title, true)
	doc.SetCreator(config.AppName, true)
	if !r.Generated.IsZero() {
		doc.SetCreationDate(r.Generated)
	}

	w := &pdfWriter{doc: doc, family: config.PDFCoreFont}
	if opts.FontPath != "" {
		doc.AddUTF8Font(config.PDFFontFamily, "", opts.FontPath)
		w.family = config.PDFFontFamily
		w.utf8 = true
	} else {
		slog.Warn(config.MsgNoUTF8Font, config.LogKeyComponent, config.CompExport)
		w.tr = doc.UnicodeTranslatorFromDescriptor("")
	}

	doc.AddPage()

	w.font(true, config.PDFTitleSize)
	doc.CellFormat(0, config.PDFLineHeight*1.5, w.text(r.Title), "", 1, "C", false, 0, "")
	if !r.Generated.IsZero() {
		w.font(false, config.PDFBodySize)
		doc.SetTextColor(120, 120, 120)
		doc.CellFormat(0, config.PDFLineHeight, r.Generated.Format(config.DateFormatReport), "", 1, "C", false, 0, "")
		doc.SetTextColor(0, 0, 0)
	}
	doc.Ln(config.PDFLineHeight / 2)

	labelWidth := 0.0
	w.font(true, config.PDFBodySize)
	for _, f := range r.Facts {
		if lw := doc.GetStringWidth(w.text(f.Label)); lw > labelWidth {
			labelWidth = lw
		}
	}
	labelWidth += config.PDFListIndent

	for _, f := range r.Facts {
		w.font(true, config.PDFBodySize)
		doc.CellFormat(labelWidth, config.PDFLineHeight, w.text(f.Label), "", 0, "L", false, 0, "")
		w.font(false, config.PDFBodySize)
		doc.MultiCell(0, config.PDFLineHeight, w.text(f.Value), "", "L", false)
	}

	for _, s := range r.Sections {
		doc.Ln(config.PDFLineHeight / 2)
		w.font(true, config.PDFHeadingSize)
		doc.CellFormat(0, config.PDFLineHeight*1.3, w.text(s.Title), "B", 1, "L", false, 0, "")
		doc.Ln(config.PDFLineHeight / 3)

		w.font(false, config.PDFBodySize)
		writeBlocks(w, s.Body, margin)
	}

	if err := doc.Output(out); err != nil {
		return fmt.Errorf("%s: %w", config.ErrPDFRender, err)
	}
	return nil
}

func writeBlocks(w *pdfWriter, c content.Content, margin float64) {
	doc := w.doc
	for _, b := range c {
		switch b.Kind {
		case content.List:
			for _, item := range b.Items {
				doc.SetX(margin + config.PDFListIndent)
				doc.MultiCell(0, config.PDFLineHeight, w.text(config.BulletMarker+item), "", "L", false)
			}
		default:
			doc.SetX(margin)
			doc.MultiCell(0, config.PDFLineHeight, w.text(b.Text), "", "L", false)
		}
		doc.Ln(config.PDFLineHeight / 3)
	}
}
