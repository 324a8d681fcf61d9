package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/engine"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	urlEntry   *widget.Entry
	entryPort  *NumericalEntry
}

// ShowSettingsWindow displays the configuration dialog allowing users to manage settings.
func (app *FortuneApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Settings window already open, requesting focus", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Opening settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblAPIURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpAPIURL)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	saveAction := func() {
		if err := sw.validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		widget.NewForm(itemLang, itemURL, itemPort),
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Resize(fyne.NewSize(config.SettingsWinWidth, paddedContent.MinSize().Height))
	w.Show()
}

// newSettingsWidgets creates the inputs prefilled from preferences, with their validators.
func (app *FortuneApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Language())

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.APIBaseURL())
	sw.urlEntry.PlaceHolder = config.DefaultAPIBaseURL
	sw.urlEntry.Validator = func(s string) error {
		if err := engine.ValidateBaseURL(strings.TrimSpace(s)); err != nil {
			return errors.New(app.GetMsg(config.TKeyErrURL))
		}
		return nil
	}

	// Port: Numerical only, but requires strict Validation (Range 1-65535).
	fallbackPort := app.Settings.PreviewPort
	if fallbackPort == "" {
		fallbackPort = config.DefaultPort
	}
	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefPreviewPort, fallbackPort))
	sw.entryPort.Validator = func(s string) error {
		if s == "" {
			return errors.New(app.GetMsg(config.TKeyErrPortReq))
		}
		port, err := sw.entryPort.Int()
		if err != nil {
			return errors.New(app.GetMsg(config.TKeyErrPortNum))
		}
		if port < config.MinPort || port > config.MaxPort {
			return errors.New(app.GetMsg(config.TKeyErrPortRange))
		}
		return nil
	}

	return sw
}

// validate returns the first field error, URL first.
func (sw *settingsWidgets) validate() error {
	if err := sw.urlEntry.Validate(); err != nil {
		return err
	}
	return sw.entryPort.Validate()
}

// saveSettings persists the values and relabels the open windows.
// The preview port takes effect on the next start.
func (app *FortuneApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSavingSettings, config.LogKeyComponent, config.CompUISet)

	langChanged := sw.langSelect.Selected != "" && sw.langSelect.Selected != app.Language()
	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}
	app.Preferences.SetString(config.PrefAPIBaseURL, strings.TrimRight(strings.TrimSpace(sw.urlEntry.Text), "/"))
	app.Preferences.SetString(config.PrefPreviewPort, sw.entryPort.Text)

	app.UpdateLocalizer()
	if langChanged {
		app.relabel()
	}
}
