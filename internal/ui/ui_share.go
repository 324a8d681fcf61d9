package ui

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/engine"
)

// sharePrediction creates (or reuses) the share link of the current prediction
// and shows it in the share modal.
func (app *FortuneApp) sharePrediction(w fyne.Window) {
	p := app.Current()
	if p == nil || strings.TrimSpace(p.ID) == "" {
		dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrShareNoID)), w)
		return
	}
	if link := app.ShareLink(); link != nil {
		app.newShareModal(w.Canvas(), *link).Show()
		return
	}

	api, err := app.API()
	if err != nil {
		app.showError(w, config.TKeyErrShare, err)
		return
	}

	loading := newLoadingModal(w.Canvas(), app.GetMsg(config.TKeyLoadShare))
	loading.Show()

	app.Async(func() {
		link, err := api.Share(app.Ctx, p.ID)
		fyne.Do(func() {
			loading.Hide()
			if err != nil {
				app.showError(w, config.TKeyErrShare, err)
				return
			}
			// The user may have submitted again while the request was running.
			if app.Current() == p {
				app.setShareLink(link)
				app.publishPreview()
			}
			app.newShareModal(w.Canvas(), *link).Show()
		})
	})
}

// showOpenSharedDialog asks for a share link or ID and loads the shared prediction.
func (app *FortuneApp) showOpenSharedDialog(w fyne.Window) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(app.GetMsg(config.TKeyOpenHint))

	item := widget.NewFormItem("", entry)
	item.HintText = app.GetMsg(config.TKeyOpenHint)

	d := dialog.NewForm(app.GetMsg(config.TKeyOpenTitle), app.GetMsg(config.TKeyBtnOpen), app.GetMsg(config.TKeyBtnCancel),
		[]*widget.FormItem{item},
		func(ok bool) {
			if ok {
				app.openShared(w, entry.Text)
			}
		}, w)
	d.Resize(fyne.NewSize(config.ShareModalWidth, d.MinSize().Height))
	d.Show()
}

// openShared fetches the prediction behind a share link and shows it.
func (app *FortuneApp) openShared(w fyne.Window, input string) {
	id, err := engine.ParseShareID(input)
	if err != nil {
		app.showError(w, config.TKeyErrOpenShared, err)
		return
	}

	api, err := app.API()
	if err != nil {
		app.showError(w, config.TKeyErrOpenShared, err)
		return
	}

	loading := newLoadingModal(w.Canvas(), app.GetMsg(config.TKeyLoadPredict))
	loading.Show()

	app.Async(func() {
		p, err := api.SharedPrediction(app.Ctx, id)
		fyne.Do(func() {
			loading.Hide()
			if err != nil {
				app.showError(w, config.TKeyErrOpenShared, err)
				return
			}
			app.ShowResult(p)

			// A pasted link is already the public URL of this prediction.
			if raw := strings.TrimSpace(input); strings.Contains(raw, "://") {
				app.setShareLink(&engine.ShareLink{ShareID: id, ShareURL: raw})
				app.publishPreview()
			}
		})
	})
}
