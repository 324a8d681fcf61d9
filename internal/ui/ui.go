package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-fortune/internal/calendar"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/content"
	"github.com/tartampluch/go-fortune/internal/engine"
	"github.com/tartampluch/go-fortune/internal/export"
	"github.com/tartampluch/go-fortune/internal/server"
)

// FortuneApp encapsulates the UI state, preferences, and background calls.
type FortuneApp struct {
	App         fyne.App
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server   *server.PreviewServer
	Settings config.Settings
	Clock    calendar.Clock // Injected clock for testability

	// Client overrides the backend client built from the API URL preference.
	Client engine.FortuneAPI

	// Async runs blocking work off the UI goroutine. Tests replace it with a synchronous call.
	Async func(func())

	// FontCandidates are searched for a CJK font when Settings.PDFFontPath is empty.
	FontCandidates []string

	SupportedLanguages []string

	formWindow     fyne.Window
	form           *formView
	resultWindow   fyne.Window
	settingsWindow fyne.Window

	// Result State
	mu        sync.RWMutex
	current   *engine.Prediction
	shareLink *engine.ShareLink
}

// NewFortuneApp constructs the application and wires dependencies.
func NewFortuneApp(a fyne.App, ctx context.Context, srv *server.PreviewServer, settings config.Settings) *FortuneApp {
	return &FortuneApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Settings:           settings,
		Clock:              calendar.RealClock{},
		Async:              func(fn func()) { go fn() },
		FontCandidates:     config.PDFFontCandidates,
		SupportedLanguages: config.SupportedLanguages,
	}
}

// Run launches the preview server and the main UI loop.
func (app *FortuneApp) Run() {
	app.SetupI18n()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	app.ShowFormWindow()
	app.App.Run()
}

// APIBaseURL returns the backend address: the saved preference, then the environment default.
func (app *FortuneApp) APIBaseURL() string {
	fallback := app.Settings.APIBaseURL
	if fallback == "" {
		fallback = config.DefaultAPIBaseURL
	}
	return app.Preferences.StringWithFallback(config.PrefAPIBaseURL, fallback)
}

// API returns the backend client, built from the current preferences unless one was injected.
func (app *FortuneApp) API() (engine.FortuneAPI, error) {
	if app.Client != nil {
		return app.Client, nil
	}
	return engine.NewHTTPClient(app.APIBaseURL())
}

// Current returns the prediction shown in the result window, if any.
func (app *FortuneApp) Current() *engine.Prediction {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.current
}

// ShareLink returns the link created for the current prediction, if any.
func (app *FortuneApp) ShareLink() *engine.ShareLink {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.shareLink
}

func (app *FortuneApp) setCurrent(p *engine.Prediction) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.current = p
	app.shareLink = nil
}

func (app *FortuneApp) setShareLink(link *engine.ShareLink) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.shareLink = link
}

// buildReport turns the current prediction into the localized report used by every export.
func (app *FortuneApp) buildReport() (*export.Report, error) {
	f := content.Formatter{Placeholder: app.GetMsg(config.TKeyNoData)}
	r, err := export.NewReport(app.Current(), f, app.reportLabels())
	if err != nil {
		return nil, err
	}
	r.Generated = app.Clock.Now()
	return r, nil
}

// publishPreview pushes the current result to the local preview server.
// Failures are logged only: the preview is optional.
func (app *FortuneApp) publishPreview() {
	if app.Server == nil {
		return
	}
	r, err := app.buildReport()
	if err != nil {
		slog.Warn(config.MsgPreviewPartial,
			config.LogKeyComponent, config.CompUIResult,
			config.LogKeyError, err)
		return
	}

	pv := server.Preview{Report: r, Prediction: app.Current()}
	if link := app.ShareLink(); link != nil {
		pv.ShareURL = link.ShareURL
	}
	if err := app.Server.Update(pv); err != nil {
		slog.Warn(config.MsgPreviewPartial,
			config.LogKeyComponent, config.CompUIResult,
			config.LogKeyError, err)
	}
}

// openPreview opens the preview page in the default browser.
func (app *FortuneApp) openPreview(w fyne.Window) {
	u, err := url.Parse(app.Server.URL())
	if err == nil {
		err = app.App.OpenURL(u)
	}
	if err != nil {
		app.showError(w, config.TKeyErrExport, err)
	}
}

// showError surfaces one localized error dialog and logs the cause.
func (app *FortuneApp) showError(w fyne.Window, key string, err error) {
	slog.Error(app.GetMsg(key),
		config.LogKeyComponent, config.CompUI,
		config.LogKeyKey, key,
		config.LogKeyError, err,
	)
	msg := app.GetMsg(key)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	dialog.ShowError(fmt.Errorf("%s", msg), w)
}

// relabel rebuilds the open windows after a language change.
func (app *FortuneApp) relabel() {
	if app.formWindow != nil {
		app.formWindow.SetTitle(app.GetMsg(config.TKeyWinForm))
		app.buildForm(app.formWindow)
	}
	if app.resultWindow != nil && app.Current() != nil {
		app.resultWindow.SetTitle(app.GetMsg(config.TKeyWinResult))
		app.resultWindow.SetContent(app.resultContent(app.resultWindow))
		app.publishPreview()
	}
}
