package ui

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-fortune/internal/calendar"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/engine"
)

// formView holds the form widgets and the day picker they drive.
type formView struct {
	app     *FortuneApp
	builder *calendar.OptionBuilder
	picker  *calendar.DayPicker

	name       *widget.Entry
	gender     *widget.Select
	year       *widget.Select
	month      *widget.Select
	day        *widget.Select
	hour       *widget.Select
	dateType   *widget.RadioGroup
	purpose    *widget.Select
	religion   *widget.Select
	birthPlace *widget.Entry
	submit     *widget.Button

	mounted bool
}

// ShowFormWindow opens the main window. Closing it quits the application.
func (app *FortuneApp) ShowFormWindow() {
	if app.formWindow != nil {
		app.formWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinForm))
	app.formWindow = w
	app.buildForm(w)

	w.SetMaster()
	w.SetOnClosed(func() {
		if app.form != nil {
			app.form.unmount()
		}
		app.formWindow = nil
	})
	w.Resize(fyne.NewSize(config.FormWindowWidth, w.Content().MinSize().Height))
	w.Show()
}

// buildForm replaces the window content with a fresh, mounted form.
func (app *FortuneApp) buildForm(w fyne.Window) {
	if app.form != nil {
		app.form.unmount()
	}
	f := app.newFormView()
	app.form = f

	w.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu(app.GetMsg(config.TKeyMenuFile),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuImport), func() { app.showImportDialog(w) }),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOpenShare), func() { app.showOpenSharedDialog(w) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow),
	)))

	w.SetContent(f.layout())
	f.mount()
}

// newFormView creates the widgets with their initial options. No listener is attached until mount.
func (app *FortuneApp) newFormView() *formView {
	builder := calendar.NewOptionBuilder(app.Clock)
	f := &formView{
		app:     app,
		builder: builder,
		picker:  calendar.NewDayPicker(builder),
	}

	f.name = widget.NewEntry()

	f.gender = widget.NewSelect(app.optionLabels(config.GenderOptions), nil)
	f.gender.SetSelectedIndex(0)

	years := builder.Years()
	yearLabels := make([]string, len(years))
	for i, y := range years {
		yearLabels[i] = app.GetMsgValue(config.TKeyFmtYear, y)
	}
	f.year = widget.NewSelect(yearLabels, nil)

	months := calendar.Months()
	monthLabels := make([]string, len(months))
	for i, m := range months {
		monthLabels[i] = app.GetMsgValue(config.TKeyFmtMonth, m)
	}
	f.month = widget.NewSelect(monthLabels, nil)

	f.day = widget.NewSelect(nil, nil)
	f.day.PlaceHolder = app.GetMsg(config.TKeyPlaceholder)

	hours := calendar.Hours()
	hourLabels := make([]string, len(hours))
	for i, h := range hours {
		hourLabels[i] = app.GetMsgValue(config.TKeyFmtHour, h)
	}
	f.hour = widget.NewSelect(hourLabels, nil)
	f.hour.SetSelectedIndex(config.DefaultBirthHour)

	f.dateType = widget.NewRadioGroup([]string{
		app.GetMsg(config.TKeyDateSolar),
		app.GetMsg(config.TKeyDateLunar),
	}, nil)
	f.dateType.Horizontal = true
	f.dateType.Required = true

	f.purpose = widget.NewSelect(app.optionLabels(config.PurposeOptions), nil)
	f.purpose.SetSelectedIndex(optionIndex(config.PurposeOptions, config.DefaultPurpose))

	f.religion = widget.NewSelect(app.optionLabels(config.ReligionOptions), nil)
	f.religion.SetSelectedIndex(optionIndex(config.ReligionOptions, config.DefaultReligion))

	f.birthPlace = widget.NewEntry()

	f.submit = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSubmit), theme.ConfirmIcon(), f.onSubmit)
	f.submit.Importance = widget.HighImportance

	// Initial state mirrors the picker: current year, January, solar.
	sel := f.picker.Selection()
	f.year.SetSelected(app.GetMsgValue(config.TKeyFmtYear, sel.Year))
	f.month.SetSelected(app.GetMsgValue(config.TKeyFmtMonth, sel.Month))
	f.dateType.SetSelected(app.GetMsg(config.TKeyDateSolar))

	return f
}

func (f *formView) layout() fyne.CanvasObject {
	app := f.app
	date := container.NewGridWithColumns(config.LayoutColumnsTriple, f.year, f.month, f.day)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblName), f.name),
		widget.NewFormItem(app.GetMsg(config.TKeyLblGender), f.gender),
		widget.NewFormItem(app.GetMsg(config.TKeyLblDateType), f.dateType),
		widget.NewFormItem(app.GetMsg(config.TKeyLblBirthDate), date),
		widget.NewFormItem(app.GetMsg(config.TKeyLblBirthHour), f.hour),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPurpose), f.purpose),
		widget.NewFormItem(app.GetMsg(config.TKeyLblReligion), f.religion),
		widget.NewFormItem(app.GetMsg(config.TKeyLblBirthPlace), f.birthPlace),
	)

	return container.NewPadded(container.NewVBox(form, f.submit))
}

// mount registers the change listeners. Each change of year, month or
// calendar type regenerates the day options from the current widget values.
func (f *formView) mount() {
	if f.mounted {
		return
	}
	f.picker.OnDaysChanged(f.setDays)
	f.year.OnChanged = func(string) { f.syncSelection() }
	f.month.OnChanged = func(string) { f.syncSelection() }
	f.dateType.OnChanged = func(string) { f.syncSelection() }
	f.day.OnChanged = func(string) {
		if i := f.day.SelectedIndex(); i >= 0 {
			f.picker.SelectDay(i + 1)
		} else {
			f.picker.ClearDay()
		}
	}
	f.mounted = true

	slog.Debug(config.MsgFormMounted, config.LogKeyComponent, config.CompUIForm)
	f.syncSelection()
}

// unmount removes every listener registered by mount.
func (f *formView) unmount() {
	if !f.mounted {
		return
	}
	f.picker.OnDaysChanged(nil)
	f.year.OnChanged = nil
	f.month.OnChanged = nil
	f.dateType.OnChanged = nil
	f.day.OnChanged = nil
	f.mounted = false

	slog.Debug(config.MsgFormUnmounted, config.LogKeyComponent, config.CompUIForm)
}

func (f *formView) isLunar() bool {
	return f.dateType.Selected == f.app.GetMsg(config.TKeyDateLunar)
}

// syncSelection reads the year, month and calendar widgets and hands them to the picker.
func (f *formView) syncSelection() {
	f.picker.SetSelection(f.builder.ParseSelection(f.year.Selected, f.month.Selected, f.isLunar()))
}

// setDays replaces the day options. Any previous day selection is cleared.
func (f *formView) setDays(days []int) {
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = f.app.GetMsgValue(config.TKeyFmtDay, d)
	}
	onChanged := f.day.OnChanged
	f.day.OnChanged = nil
	f.day.Options = labels
	f.day.ClearSelected()
	f.day.OnChanged = onChanged
	f.day.Refresh()
}

// request validates the form and builds the backend request.
func (f *formView) request() (engine.FortuneRequest, error) {
	app := f.app
	name := strings.TrimSpace(f.name.Text)
	if name == "" {
		return engine.FortuneRequest{}, errors.New(app.GetMsg(config.TKeyErrNameReq))
	}
	day, ok := f.picker.Day()
	if !ok {
		return engine.FortuneRequest{}, errors.New(app.GetMsg(config.TKeyErrDayReq))
	}

	sel := f.picker.Selection()
	hour := f.hour.SelectedIndex()
	if hour < 0 {
		hour = config.DefaultBirthHour
	}

	return engine.FortuneRequest{
		Name:        name,
		Gender:      optionValue(config.GenderOptions, f.gender.SelectedIndex(), config.GenderOptions[0].Value),
		BirthYear:   sel.Year,
		BirthMonth:  sel.Month,
		BirthDay:    day,
		BirthHour:   hour,
		IsLunarDate: sel.Calendar == calendar.Lunar,
		Purpose:     optionValue(config.PurposeOptions, f.purpose.SelectedIndex(), config.DefaultPurpose),
		Religion:    optionValue(config.ReligionOptions, f.religion.SelectedIndex(), config.DefaultReligion),
		BirthPlace:  strings.TrimSpace(f.birthPlace.Text),
	}, nil
}

// onSubmit runs the prediction behind the loading modal. The modal is always
// hidden before the result window or the error dialog appears.
func (f *formView) onSubmit() {
	app := f.app
	w := app.formWindow
	if w == nil {
		return
	}

	req, err := f.request()
	if err != nil {
		dialog.ShowError(err, w)
		return
	}

	api, err := app.API()
	if err != nil {
		app.showError(w, config.TKeyErrSubmit, err)
		return
	}

	loading := newLoadingModal(w.Canvas(), app.GetMsg(config.TKeyLoadPredict))
	loading.Show()
	f.submit.Disable()

	app.Async(func() {
		p, err := api.Predict(app.Ctx, req)
		fyne.Do(func() {
			loading.Hide()
			f.submit.Enable()
			if err != nil {
				app.showError(w, config.TKeyErrSubmit, err)
				return
			}
			app.ShowResult(p)
		})
	})
}

// applyContact prefills the name and birth date from an imported contact.
// vCard birthdays are Gregorian, so the solar calendar is selected.
// A birth year the picker does not offer leaves the day empty, so submit is
// blocked until the user picks a year.
func (f *formView) applyContact(c engine.Contact) {
	app := f.app
	f.name.SetText(c.Name)
	f.dateType.SetSelected(app.GetMsg(config.TKeyDateSolar))

	year := c.BirthDate.Year()
	yearOK := !c.YearKnown || slices.Contains(f.builder.Years(), year)
	if c.YearKnown && yearOK {
		f.year.SetSelected(app.GetMsgValue(config.TKeyFmtYear, year))
	}
	f.month.SetSelected(app.GetMsgValue(config.TKeyFmtMonth, int(c.BirthDate.Month())))
	f.syncSelection()

	if !yearOK {
		slog.Warn(config.MsgYearOutOfRange,
			config.LogKeyComponent, config.CompUIForm,
			config.LogKeyYear, year)
		if app.formWindow != nil {
			dialog.ShowError(errors.New(app.GetMsgValue(config.TKeyErrImportYear, year)), app.formWindow)
		}
		return
	}

	if day := c.BirthDate.Day(); day <= len(f.day.Options) {
		f.day.SetSelectedIndex(day - 1)
	}
}

// showImportDialog lets the user pick a vCard file and prefill the form from one of its contacts.
func (app *FortuneApp) showImportDialog(w fyne.Window) {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			app.showError(w, config.TKeyErrImport, err)
			return
		}
		if r == nil {
			return
		}
		defer func() { _ = r.Close() }()

		contacts, err := engine.ImportContacts(r)
		if err != nil {
			app.showError(w, config.TKeyErrImport, err)
			return
		}
		app.chooseContact(w, contacts)
	}, w)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// chooseContact applies the only contact directly, or asks which one to use.
func (app *FortuneApp) chooseContact(w fyne.Window, contacts []engine.Contact) {
	if app.form == nil {
		return
	}
	switch len(contacts) {
	case 0:
		dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrImportNone)), w)
		return
	case 1:
		app.form.applyContact(contacts[0])
		return
	}

	names := make([]string, len(contacts))
	for i, c := range contacts {
		layout := config.DateFormatFullDash
		if !c.YearKnown {
			layout = config.DateFormatNoYearD
		}
		names[i] = c.Name + " (" + c.BirthDate.Format(layout) + ")"
	}
	pick := widget.NewSelect(names, nil)
	pick.SetSelectedIndex(0)

	dialog.ShowForm(app.GetMsg(config.TKeyImportTitle), app.GetMsg(config.TKeyBtnOpen), app.GetMsg(config.TKeyBtnCancel),
		[]*widget.FormItem{widget.NewFormItem(app.GetMsg(config.TKeyLblName), pick)},
		func(ok bool) {
			if i := pick.SelectedIndex(); ok && i >= 0 && app.form != nil {
				app.form.applyContact(contacts[i])
			}
		}, w)
}

func optionIndex(opts []config.Option, value string) int {
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return 0
}

func optionValue(opts []config.Option, index int, fallback string) string {
	if index < 0 || index >= len(opts) {
		return fallback
	}
	return opts[index].Value
}
