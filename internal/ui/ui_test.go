package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-fortune/internal/calendar"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/content"
	"github.com/tartampluch/go-fortune/internal/engine"
	"github.com/tartampluch/go-fortune/internal/export"
	"github.com/tartampluch/go-fortune/internal/server"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockAPI simulates the engine.FortuneAPI interface using testify/mock.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Predict(ctx context.Context, req engine.FortuneRequest) (*engine.Prediction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Prediction), args.Error(1)
}

func (m *MockAPI) Share(ctx context.Context, predictionID string) (*engine.ShareLink, error) {
	args := m.Called(ctx, predictionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.ShareLink), args.Error(1)
}

func (m *MockAPI) SharedPrediction(ctx context.Context, shareID string) (*engine.Prediction, error) {
	args := m.Called(ctx, shareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Prediction), args.Error(1)
}

// closeRecorder is an io.WriteCloser over a buffer that remembers Close.
type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// setupTestApp initializes a headless Fyne app with mocked dependencies.
// Background work runs synchronously so assertions can follow each action directly.
func setupTestApp(t *testing.T) (*FortuneApp, *MockAPI) {
	a := test.NewApp()

	// Use port "0"; the server is never started, only updated.
	srv := server.NewPreviewServer("0")
	api := new(MockAPI)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewFortuneApp(a, ctx, srv, config.Settings{})
	app.Client = api
	app.Clock = calendar.FixedClock(testNow)
	app.Async = func(fn func()) { fn() }
	app.FontCandidates = nil

	// Force EN locale for predictable strings
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.SetupI18n()

	return app, api
}

func samplePrediction() *engine.Prediction {
	return &engine.Prediction{
		ID: "pred-1",
		Basic: engine.BasicPrediction{
			Name:            "Alice",
			Gender:          "女",
			BirthDate:       "1990-07-15",
			BirthTime:       "12:00",
			Zodiac:          "马",
			EightCharacters: engine.EightCharacters{Year: "庚午", Month: "癸未", Day: "丙子", Hour: "甲午"},
			LuckyNumbers:    []int{3, 8},
			LuckyColors:     []string{"红色"},
		},
		Enhanced: engine.EnhancedPrediction{
			YearlyFortune: "Good year.\n• Spring\n• Autumn",
		},
	}
}

// overlayCount returns how many pop-ups are currently shown on w.
func overlayCount(w fyne.Window) int {
	return len(w.Canvas().Overlays().List())
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _ := setupTestApp(t)

	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))
	assert.Equal(t, "1990", app.GetMsgValue(config.TKeyFmtYear, 1990))

	app.Preferences.SetString(config.PrefLanguage, "zh")
	app.UpdateLocalizer()
	assert.Equal(t, "设置...", app.GetMsg(config.TKeyMenuSettings))
	assert.Equal(t, "1990年", app.GetMsgValue(config.TKeyFmtYear, 1990))
	assert.Equal(t, "暂无数据", app.GetMsg(config.TKeyNoData))
}

func TestLocalization_Fallbacks(t *testing.T) {
	app, _ := setupTestApp(t)
	assert.ElementsMatch(t, []string{"en", "zh"}, app.SupportedLanguages)

	assert.Equal(t, "missing_key", app.GetMsg("missing_key"), "Unknown keys are returned as-is")
	assert.Equal(t, "7", app.GetMsgValue("missing_key", 7), "Unknown value templates fall back to the value")

	app.Localizer = nil
	assert.Equal(t, config.TKeyBtnSave, app.GetMsg(config.TKeyBtnSave))
}

func TestLocalization_DefaultLanguage(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Preferences.RemoveValue(config.PrefLanguage)

	assert.Equal(t, config.DefaultLanguage, app.Language())

	app.Settings.Language = "en"
	assert.Equal(t, "en", app.Language(), "The environment default applies without a saved preference")
}

func TestReportLabels(t *testing.T) {
	app, _ := setupTestApp(t)
	l := app.reportLabels()

	assert.Equal(t, "Prediction Result", l.Title)
	assert.Equal(t, "Eight characters", l.EightCharacters)
	assert.Equal(t, "Unknown", l.Unknown)
}

// -----------------------------------------------------------------------------
// Form Tests
// -----------------------------------------------------------------------------

func TestForm_InitialState(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowFormWindow()
	f := app.form
	require.NotNil(t, f)

	assert.True(t, f.mounted)
	assert.Equal(t, "2025", f.year.Selected)
	assert.Equal(t, "1", f.month.Selected)
	assert.Equal(t, "Solar", f.dateType.Selected)
	assert.Len(t, f.day.Options, 31)
	assert.Empty(t, f.day.Selected)
	assert.Equal(t, "12:00", f.hour.Selected)
	assert.Equal(t, "Wealth", f.purpose.Selected)
	assert.Equal(t, "None", f.religion.Selected)
	assert.Len(t, f.year.Options, 2025-config.MinBirthYear+1)
}

func TestForm_ChangesRegenerateDays(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowFormWindow()
	f := app.form

	f.day.SetSelectedIndex(14)
	day, ok := f.picker.Day()
	require.True(t, ok)
	assert.Equal(t, 15, day)

	steps := []struct {
		name   string
		change func()
		days   int
	}{
		{"February of a common year", func() { f.month.SetSelected("2") }, 28},
		{"February of a leap year", func() { f.year.SetSelected("2024") }, 29},
		{"Lunar month", func() { f.dateType.SetSelected("Lunar") }, 30},
		{"Back to solar", func() { f.dateType.SetSelected("Solar") }, 29},
		{"April", func() { f.month.SetSelected("4") }, 30},
	}

	for _, s := range steps {
		f.day.SetSelectedIndex(0)
		s.change()

		assert.Lenf(t, f.day.Options, s.days, s.name)
		assert.Emptyf(t, f.day.Selected, "%s: the day is reset", s.name)
		_, ok := f.picker.Day()
		assert.Falsef(t, ok, "%s: the picker has no day", s.name)
	}
}

func TestForm_UnmountReleasesListeners(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowFormWindow()
	f := app.form

	f.unmount()
	assert.False(t, f.mounted)

	f.month.SetSelected("2")
	assert.Len(t, f.day.Options, 31, "An unmounted form does not react to changes")

	f.mount()
	assert.Len(t, f.day.Options, 28, "Mounting reads the current widget values")

	f.mount()
	assert.True(t, f.mounted, "Mount is idempotent")
}

func TestForm_CloseWindowUnmounts(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowFormWindow()
	f := app.form

	app.formWindow.Close()

	assert.False(t, f.mounted)
	assert.Nil(t, app.formWindow)
}

func TestForm_ApplyContact(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowFormWindow()
	f := app.form
	f.dateType.SetSelected("Lunar")

	f.applyContact(engine.Contact{
		Name:      "Bob",
		BirthDate: time.Date(1985, 2, 28, 0, 0, 0, 0, time.UTC),
		YearKnown: true,
	})

	assert.Equal(t, "Bob", f.name.Text)
	assert.Equal(t, "Solar", f.dateType.Selected, "vCard dates are Gregorian")
	assert.Equal(t, "1985", f.year.Selected)
	assert.Equal(t, "2", f.month.Selected)
	assert.Len(t, f.day.Options, 28)
	day, ok := f.picker.Day()
	require.True(t, ok)
	assert.Equal(t, 28, day)
}

func TestForm_ApplyContact_UnknownYear(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowFormWindow()
	f := app.form

	f.applyContact(engine.Contact{
		Name:      "Leap",
		BirthDate: time.Date(config.DefaultLeapYear, 2, 29, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, "2025", f.year.Selected, "The year is left untouched")
	assert.Equal(t, "2", f.month.Selected)
	_, ok := f.picker.Day()
	assert.False(t, ok, "February 29 does not exist in 2025")
}

func TestForm_ApplyContact_YearOutOfRange(t *testing.T) {
	for _, year := range []int{config.MinBirthYear - 5, testNow.Year() + 1} {
		t.Run(fmt.Sprint(year), func(t *testing.T) {
			app, _ := setupTestApp(t)
			app.ShowFormWindow()
			f := app.form
			f.year.SetSelected("1990")

			f.applyContact(engine.Contact{
				Name:      "Old",
				BirthDate: time.Date(year, 3, 4, 0, 0, 0, 0, time.UTC),
				YearKnown: true,
			})

			assert.Equal(t, "Old", f.name.Text)
			assert.Equal(t, "1990", f.year.Selected, "The previous year stays visible")
			assert.Equal(t, "3", f.month.Selected)
			assert.Equal(t, -1, f.day.SelectedIndex())
			_, ok := f.picker.Day()
			assert.False(t, ok, "No day is selected for a year the form cannot represent")
			assert.Equal(t, 1, overlayCount(app.formWindow), "The user is told to pick the year")

			_, err := f.request()
			assert.EqualError(t, err, app.GetMsg(config.TKeyErrDayReq))
		})
	}
}

func TestChooseContact(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowFormWindow()
	w := app.formWindow

	app.chooseContact(w, nil)
	assert.Equal(t, 1, overlayCount(w), "No contact shows an error")

	app.chooseContact(w, []engine.Contact{{Name: "Only", BirthDate: time.Date(1990, 3, 4, 0, 0, 0, 0, time.UTC), YearKnown: true}})
	assert.Equal(t, "Only", app.form.name.Text, "A single contact is applied directly")
}

// -----------------------------------------------------------------------------
// Submit Tests
// -----------------------------------------------------------------------------

func fillForm(f *formView) {
	f.name.SetText("  Alice ")
	f.gender.SetSelected("Female")
	f.year.SetSelected("1990")
	f.month.SetSelected("7")
	f.day.SetSelected("15")
	f.birthPlace.SetText("Hangzhou")
}

func TestSubmit_Success(t *testing.T) {
	app, api := setupTestApp(t)
	app.ShowFormWindow()
	f := app.form
	fillForm(f)

	p := samplePrediction()
	api.On("Predict", mock.Anything, engine.FortuneRequest{
		Name:       "Alice",
		Gender:     "女",
		BirthYear:  1990,
		BirthMonth: 7,
		BirthDay:   15,
		BirthHour:  12,
		Purpose:    "财运",
		Religion:   "无",
		BirthPlace: "Hangzhou",
	}).Return(p, nil).Once()

	test.Tap(f.submit)

	api.AssertExpectations(t)
	assert.Same(t, p, app.Current())
	require.NotNil(t, app.resultWindow, "The result window opens")
	assert.Equal(t, 0, overlayCount(app.formWindow), "The loading modal is hidden")
	assert.False(t, f.submit.Disabled())
	assert.True(t, app.Server.Ready(), "The preview is published")
}

func TestSubmit_Lunar(t *testing.T) {
	app, api := setupTestApp(t)
	app.ShowFormWindow()
	f := app.form
	fillForm(f)
	f.dateType.SetSelected("Lunar")
	f.day.SetSelected("30")

	api.On("Predict", mock.Anything, mock.MatchedBy(func(r engine.FortuneRequest) bool {
		return r.IsLunarDate && r.BirthDay == 30 && r.BirthMonth == 7
	})).Return(samplePrediction(), nil).Once()

	test.Tap(f.submit)
	api.AssertExpectations(t)
}

func TestSubmit_Validation(t *testing.T) {
	tests := []struct {
		name string
		fill func(f *formView)
	}{
		{"Missing name", func(f *formView) { f.day.SetSelected("1") }},
		{"Missing day", func(f *formView) { f.name.SetText("Alice") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, api := setupTestApp(t)
			app.ShowFormWindow()
			tt.fill(app.form)

			test.Tap(app.form.submit)

			api.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
			assert.Equal(t, 1, overlayCount(app.formWindow), "One error dialog")
			assert.Nil(t, app.resultWindow)
		})
	}
}

func TestSubmit_Failure(t *testing.T) {
	app, api := setupTestApp(t)
	app.ShowFormWindow()
	fillForm(app.form)

	api.On("Predict", mock.Anything, mock.Anything).
		Return(nil, &engine.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}).Once()

	test.Tap(app.form.submit)

	api.AssertExpectations(t)
	assert.Nil(t, app.resultWindow)
	assert.Nil(t, app.Current())
	assert.Equal(t, 1, overlayCount(app.formWindow), "Only the error dialog remains")
	assert.False(t, app.form.submit.Disabled())
}

// -----------------------------------------------------------------------------
// Result & Share Tests
// -----------------------------------------------------------------------------

func TestNewContentText(t *testing.T) {
	rt := newContentText(content.Content{
		{Kind: content.Paragraph, Text: "Intro"},
		{Kind: content.List, Items: []string{"a", "b"}},
	})

	require.Len(t, rt.Segments, 2)
	para, ok := rt.Segments[0].(*widget.TextSegment)
	require.True(t, ok)
	assert.Equal(t, "Intro", para.Text)

	list, ok := rt.Segments[1].(*widget.ListSegment)
	require.True(t, ok)
	assert.Len(t, list.Items, 2)
	assert.False(t, list.Ordered)
}

func TestResultCards_Notice(t *testing.T) {
	app, _ := setupTestApp(t)
	p := samplePrediction()
	p.Enhanced.Message = "使用基本预测结果"
	p.BraceletRecommendation.MissingElements = []string{"金", "木"}
	app.setCurrent(p)

	r, err := app.buildReport()
	require.NoError(t, err)
	cards := app.resultCards(r)
	require.Len(t, cards, len(r.Sections)+2)

	notice, ok := cards[0].(*widget.Label)
	require.True(t, ok, "The fallback notice comes first")
	assert.Equal(t, "使用基本预测结果", notice.Text)
	assert.Equal(t, widget.WarningImportance, notice.Importance)

	facts := make(map[string]string)
	for _, f := range r.Facts {
		facts[f.Label] = f.Value
	}
	assert.Equal(t, "金, 木", facts["Missing elements"])

	p.Enhanced.Enhanced = true
	r, err = app.buildReport()
	require.NoError(t, err)
	cards = app.resultCards(r)
	require.Len(t, cards, len(r.Sections)+1)
	_, ok = cards[0].(*widget.Card)
	assert.True(t, ok, "No notice for an enhanced result")
}

func TestShowResult_ReusesWindow(t *testing.T) {
	app, _ := setupTestApp(t)

	app.ShowResult(samplePrediction())
	first := app.resultWindow
	require.NotNil(t, first)

	second := samplePrediction()
	app.ShowResult(second)
	assert.Same(t, first, app.resultWindow)
	assert.Same(t, second, app.Current())

	first.Close()
	assert.Nil(t, app.resultWindow)
}

func TestShare_NoPrediction(t *testing.T) {
	app, api := setupTestApp(t)
	w := test.NewWindow(widget.NewLabel(""))
	defer w.Close()

	app.sharePrediction(w)

	api.AssertNotCalled(t, "Share", mock.Anything, mock.Anything)
	assert.Equal(t, 1, overlayCount(w))
}

func TestShare_Success(t *testing.T) {
	app, api := setupTestApp(t)
	app.ShowResult(samplePrediction())
	w := app.resultWindow

	link := &engine.ShareLink{ShareID: "abc", ShareURL: "http://fortune.example/share?id=abc"}
	api.On("Share", mock.Anything, "pred-1").Return(link, nil).Once()

	app.sharePrediction(w)
	assert.Equal(t, link, app.ShareLink())
	assert.Equal(t, 1, overlayCount(w), "The share modal replaces the loading modal")

	// The QR code of the link is now served by the preview.
	rec := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, config.RouteQRCode, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	app.sharePrediction(w)
	api.AssertNumberOfCalls(t, "Share", 1)
}

func TestShare_Failure(t *testing.T) {
	app, api := setupTestApp(t)
	app.ShowResult(samplePrediction())
	w := app.resultWindow

	api.On("Share", mock.Anything, "pred-1").Return(nil, errors.New("offline")).Once()

	app.sharePrediction(w)
	assert.Nil(t, app.ShareLink())
	assert.Equal(t, 1, overlayCount(w), "Only the error dialog remains")
}

func TestShareModal(t *testing.T) {
	app, _ := setupTestApp(t)
	w := test.NewWindow(widget.NewLabel(""))
	defer w.Close()

	link := engine.ShareLink{ShareID: "abc", ShareURL: "http://fortune.example/share?id=abc"}
	m := app.newShareModal(w.Canvas(), link)

	assert.Equal(t, link.ShareURL, m.URL.Text)
	assert.True(t, m.URL.Disabled(), "The URL is read-only")
	require.NotNil(t, m.QR)

	test.Tap(m.CopyBtn)
	assert.Equal(t, link.ShareURL, app.App.Clipboard().Content())
	assert.Equal(t, "Copied", m.CopyBtn.Text)

	dismissed := 0
	m.OnDismiss(func() { dismissed++ })
	m.Show()
	assert.Equal(t, 1, overlayCount(w))
	m.Hide()
	m.Hide()
	assert.Equal(t, 1, dismissed, "Dismiss fires once per close")
	assert.Equal(t, 0, overlayCount(w))
}

func TestOpenShared(t *testing.T) {
	app, api := setupTestApp(t)
	w := test.NewWindow(widget.NewLabel(""))
	defer w.Close()

	p := samplePrediction()
	api.On("SharedPrediction", mock.Anything, "abc").Return(p, nil).Once()

	app.openShared(w, " http://fortune.example/share?id=abc ")

	api.AssertExpectations(t)
	assert.Same(t, p, app.Current())
	require.NotNil(t, app.ShareLink())
	assert.Equal(t, "http://fortune.example/share?id=abc", app.ShareLink().ShareURL)
}

func TestOpenShared_Errors(t *testing.T) {
	app, api := setupTestApp(t)
	w := test.NewWindow(widget.NewLabel(""))
	defer w.Close()

	app.openShared(w, "   ")
	api.AssertNotCalled(t, "SharedPrediction", mock.Anything, mock.Anything)
	assert.Equal(t, 1, overlayCount(w))

	api.On("SharedPrediction", mock.Anything, "gone").
		Return(nil, &engine.APIError{StatusCode: http.StatusNotFound}).Once()
	app.openShared(w, "gone")
	api.AssertExpectations(t)
	assert.Nil(t, app.Current())
}

// -----------------------------------------------------------------------------
// Export Tests
// -----------------------------------------------------------------------------

func TestWriteExport(t *testing.T) {
	app, _ := setupTestApp(t)

	var buf bytes.Buffer
	assert.Error(t, app.writeExport(&buf, config.ExtPDF), "Nothing to export yet")

	app.ShowResult(samplePrediction())

	tests := []struct {
		ext    string
		prefix string
	}{
		{config.ExtXLSX, "PK"},
		{config.ExtICS, "BEGIN:VCALENDAR"},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, app.writeExport(&buf, tt.ext))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte(tt.prefix)))
		})
	}

	err := app.writeExport(&buf, ".doc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrExportFormat)
}

func TestWriteExport_PDFNeedsFont(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowResult(samplePrediction())

	var buf bytes.Buffer
	err := app.writeExport(&buf, config.ExtPDF)
	assert.ErrorIs(t, err, export.ErrFontRequired, "Chinese content cannot use the core font")
	assert.Zero(t, buf.Len())

	app.FontCandidates = []string{filepath.Join(t.TempDir(), "absent.ttf")}
	assert.ErrorIs(t, app.writeExport(&buf, config.ExtPDF), export.ErrFontRequired)

	assert.Equal(t, config.TKeyErrPDFFont, exportErrorKey(err))
	assert.Equal(t, config.TKeyErrExport, exportErrorKey(errors.New("disk full")))
}

func TestExportTo_PDFNeedsFont(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowResult(samplePrediction())
	w := app.resultWindow

	out := &closeRecorder{}
	app.exportTo(w, out, "result.pdf", config.ExtPDF)

	assert.True(t, out.closed)
	assert.Zero(t, out.Len(), "No unreadable PDF is written")
	assert.Equal(t, 1, overlayCount(w), "Only the error dialog remains")
}

func TestExportTo(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowResult(samplePrediction())
	w := app.resultWindow

	out := &closeRecorder{}
	app.exportTo(w, out, "result.xlsx", config.ExtXLSX)

	assert.True(t, out.closed)
	assert.NotZero(t, out.Len())
	assert.Equal(t, 1, overlayCount(w), "The confirmation replaces the loading modal")
}

// -----------------------------------------------------------------------------
// Settings & Configuration Tests
// -----------------------------------------------------------------------------

func TestSettings_Validation(t *testing.T) {
	app, _ := setupTestApp(t)
	sw := app.newSettingsWidgets()

	assert.Equal(t, config.DefaultAPIBaseURL, sw.urlEntry.Text)
	assert.Equal(t, config.DefaultPort, sw.entryPort.Text)
	require.NoError(t, sw.validate())

	tests := []struct {
		url, port, want string
	}{
		{"ftp://example.com", "8080", "Enter a valid http or https URL"},
		{"http://example.com", "", "Port is required"},
		{"http://example.com", "70000", "Port must be between 1 and 65535"},
		{"http://example.com", "0", "Port must be between 1 and 65535"},
		{"http://example.com", "12a", "Port must be a number"},
	}
	for _, tt := range tests {
		sw.urlEntry.SetText(tt.url)
		sw.entryPort.SetText(tt.port)
		err := sw.validate()
		if assert.Error(t, err) {
			assert.Equal(t, tt.want, err.Error())
		}
	}
}

func TestSettings_Save(t *testing.T) {
	app, _ := setupTestApp(t)
	app.ShowFormWindow()

	sw := app.newSettingsWidgets()
	sw.langSelect.SetSelected("zh")
	sw.urlEntry.SetText(" http://10.0.0.2:9000/ ")
	sw.entryPort.SetText("9090")
	require.NoError(t, sw.validate())

	app.saveSettings(sw)

	assert.Equal(t, "zh", app.Preferences.String(config.PrefLanguage))
	assert.Equal(t, "http://10.0.0.2:9000", app.APIBaseURL())
	assert.Equal(t, "9090", app.Preferences.String(config.PrefPreviewPort))

	assert.Equal(t, "设置...", app.GetMsg(config.TKeyMenuSettings))
	assert.Equal(t, "手串饰品预测", app.formWindow.Title(), "Open windows are relabelled")
	assert.Equal(t, "2025年", app.form.year.Selected)
	assert.True(t, app.form.mounted)
}

func TestSettingsWindow_Singleton(t *testing.T) {
	app, _ := setupTestApp(t)

	app.ShowSettingsWindow()
	first := app.settingsWindow
	require.NotNil(t, first)

	app.ShowSettingsWindow()
	assert.Same(t, first, app.settingsWindow)

	first.Close()
	assert.Nil(t, app.settingsWindow)
}

func TestAPI_FromPreferences(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Client = nil

	app.Preferences.SetString(config.PrefAPIBaseURL, "https://fortune.example/")
	api, err := app.API()
	require.NoError(t, err)
	client, ok := api.(*engine.HTTPClient)
	require.True(t, ok)
	assert.Equal(t, "https://fortune.example", client.BaseURL)

	app.Preferences.SetString(config.PrefAPIBaseURL, "ftp://fortune.example")
	_, err = app.API()
	assert.Error(t, err)
}

func TestAPI_InvalidURLFailsSubmit(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Client = nil
	app.Preferences.SetString(config.PrefAPIBaseURL, "not a url")
	app.ShowFormWindow()
	fillForm(app.form)

	test.Tap(app.form.submit)

	assert.Nil(t, app.resultWindow)
	assert.Equal(t, 1, overlayCount(app.formWindow))
}
