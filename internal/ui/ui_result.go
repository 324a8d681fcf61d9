package ui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/content"
	"github.com/tartampluch/go-fortune/internal/engine"
	"github.com/tartampluch/go-fortune/internal/export"
)

// ShowResult displays p in the result window, opening it if needed, and publishes the preview.
func (app *FortuneApp) ShowResult(p *engine.Prediction) {
	if p != nil && p.Enhanced.Error != "" {
		slog.Warn(config.MsgBasicFallback,
			config.LogKeyComponent, config.CompUIResult,
			config.LogKeyError, p.Enhanced.Error)
	}
	app.setCurrent(p)
	app.publishPreview()

	if w := app.resultWindow; w != nil {
		w.SetContent(app.resultContent(w))
		w.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinResult))
	app.resultWindow = w
	w.SetContent(app.resultContent(w))
	w.SetOnClosed(func() { app.resultWindow = nil })
	w.Resize(fyne.NewSize(config.ResultWindowWidth, config.ResultWindowHeight))
	w.Show()
}

// resultContent lays out the current prediction: basic facts, the formatted sections and the actions.
func (app *FortuneApp) resultContent(w fyne.Window) fyne.CanvasObject {
	r, err := app.buildReport()
	if err != nil {
		return widget.NewLabel(app.GetMsg(config.TKeyNoData))
	}
	cards := app.resultCards(r)

	actions := container.NewGridWithColumns(config.LayoutColumnsTriple,
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnShare), theme.MailForwardIcon(), func() { app.sharePrediction(w) }),
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnPDF), theme.DocumentSaveIcon(), func() {
			app.showSaveDialog(w, config.PDFFileName, config.ExtPDF)
		}),
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnXLSX), theme.DocumentSaveIcon(), func() {
			app.showSaveDialog(w, config.XLSXFileName, config.ExtXLSX)
		}),
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnICS), theme.HistoryIcon(), func() {
			app.showSaveDialog(w, config.ICSFileName, config.ExtICS)
		}),
		widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnPreview), theme.ComputerIcon(), func() { app.openPreview(w) }),
	)

	return container.NewBorder(nil, container.NewPadded(actions), nil, nil,
		container.NewVScroll(container.NewPadded(container.NewVBox(cards...))))
}

// resultCards builds the notice, when there is one, the basic facts card and one card per section.
func (app *FortuneApp) resultCards(r *export.Report) []fyne.CanvasObject {
	var cards []fyne.CanvasObject
	if r.Notice != "" {
		notice := widget.NewLabelWithStyle(r.Notice, fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
		notice.Importance = widget.WarningImportance
		notice.Wrapping = fyne.TextWrapWord
		cards = append(cards, notice)
	}

	facts := make([]fyne.CanvasObject, 0, len(r.Facts)*2)
	for _, f := range r.Facts {
		value := widget.NewLabel(f.Value)
		value.Wrapping = fyne.TextWrapWord
		facts = append(facts,
			widget.NewLabelWithStyle(f.Label, fyne.TextAlignTrailing, fyne.TextStyle{Bold: true}),
			value,
		)
	}
	cards = append(cards,
		widget.NewCard(app.GetMsg(config.TKeySecBasic), "", container.New(layout.NewFormLayout(), facts...)))
	for _, s := range r.Sections {
		cards = append(cards, widget.NewCard(s.Title, "", newContentText(s.Body)))
	}
	return cards
}

// newContentText renders formatted content as rich text: paragraphs and bullet lists.
func newContentText(c content.Content) *widget.RichText {
	segments := make([]widget.RichTextSegment, 0, len(c))
	for _, b := range c {
		switch b.Kind {
		case content.List:
			items := make([]widget.RichTextSegment, len(b.Items))
			for i, item := range b.Items {
				items[i] = &widget.TextSegment{Style: widget.RichTextStyleInline, Text: item}
			}
			segments = append(segments, &widget.ListSegment{Items: items})
		default:
			segments = append(segments, &widget.TextSegment{Style: widget.RichTextStyleParagraph, Text: b.Text})
		}
	}

	rt := widget.NewRichText(segments...)
	rt.Wrapping = fyne.TextWrapWord
	return rt
}

// showSaveDialog asks where to write an export of the current prediction.
func (app *FortuneApp) showSaveDialog(w fyne.Window, fileName, ext string) {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			app.showError(w, config.TKeyErrExport, err)
			return
		}
		if wc == nil {
			return
		}
		app.exportTo(w, wc, wc.URI().Name(), ext)
	}, w)
	d.SetFileName(fileName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

// exportTo writes the export behind the loading modal and closes out.
func (app *FortuneApp) exportTo(w fyne.Window, out io.WriteCloser, name, ext string) {
	loading := newLoadingModal(w.Canvas(), app.GetMsg(config.TKeyLoadPDF))
	loading.Show()

	app.Async(func() {
		err := app.writeExport(out, ext)
		if cerr := out.Close(); err == nil {
			err = cerr
		}

		if err != nil {
			slog.Error(config.MsgExportFailed,
				config.LogKeyComponent, config.CompExport,
				config.LogKeyFormat, ext,
				config.LogKeyError, err)
		} else {
			slog.Info(config.MsgExportDone,
				config.LogKeyComponent, config.CompExport,
				config.LogKeyFormat, ext,
				config.LogKeyFile, name)
		}

		fyne.Do(func() {
			loading.Hide()
			if err != nil {
				key := exportErrorKey(err)
				if key == config.TKeyErrPDFFont {
					err = nil
				}
				app.showError(w, key, err)
				return
			}
			app.newMessageModal(w.Canvas(), app.GetMsg(config.TKeyWinResult),
				app.GetMsgValue(config.TKeyMsgExported, name)).Show()
		})
	})
}

// exportErrorKey picks the message for a failed export. A missing font has
// its own explanation since the user can fix it.
func exportErrorKey(err error) string {
	if errors.Is(err, export.ErrFontRequired) {
		return config.TKeyErrPDFFont
	}
	return config.TKeyErrExport
}

// writeExport encodes the current prediction in the format named by its file extension.
func (app *FortuneApp) writeExport(out io.Writer, ext string) error {
	if ext == config.ExtICS {
		data, err := engine.BirthdayCalendar(app.Current(), app.Clock.Now())
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	r, err := app.buildReport()
	if err != nil {
		return err
	}
	switch ext {
	case config.ExtPDF:
		font := export.FindFont(app.Settings.PDFFontPath, app.FontCandidates)
		return export.PDF(out, r, export.PDFOptions{FontPath: font})
	case config.ExtXLSX:
		return export.XLSX(out, r)
	}
	return fmt.Errorf("%s: %s", config.ErrExportFormat, ext)
}
