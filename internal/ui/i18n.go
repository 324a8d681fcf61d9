package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/export"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// SetupI18n initializes the translation bundle and detects available languages.
func (app *FortuneApp) SetupI18n() {
	bundle := i18n.NewBundle(language.Chinese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		detectedLangs = append(detectedLangs, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	app.SupportedLanguages = detectedLangs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// Language returns the active UI language: the saved preference, then the
// environment default, then config.DefaultLanguage.
func (app *FortuneApp) Language() string {
	fallback := app.Settings.Language
	if fallback == "" {
		fallback = config.DefaultLanguage
	}
	return app.Preferences.StringWithFallback(config.PrefLanguage, fallback)
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *FortuneApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, app.Language())
}

// GetMsg is a helper to translate a key safely.
func (app *FortuneApp) GetMsg(key string) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// GetMsgValue translates a key whose template expects {{.Value}}.
// The bare value is returned when the key cannot be localized.
func (app *FortuneApp) GetMsgValue(key string, value any) string {
	if app.Localizer == nil {
		return fmt.Sprint(value)
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: map[string]any{"Value": value},
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return fmt.Sprint(value)
	}
	return msg
}

// optionLabels translates the labels of a select's options, in order.
func (app *FortuneApp) optionLabels(opts []config.Option) []string {
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = app.GetMsg(o.TKey)
	}
	return labels
}

// reportLabels returns the captions used by exports and the preview page.
func (app *FortuneApp) reportLabels() export.Labels {
	return export.Labels{
		Title:           app.GetMsg(config.TKeyWinResult),
		Name:            app.GetMsg(config.TKeyLblName),
		Gender:          app.GetMsg(config.TKeyLblGender),
		BirthDate:       app.GetMsg(config.TKeyLblBirthDate),
		BirthTime:       app.GetMsg(config.TKeyLblBirthHour),
		BirthPlace:      app.GetMsg(config.TKeyLblBirthPlace),
		Zodiac:          app.GetMsg(config.TKeyLblZodiac),
		ZodiacSign:      app.GetMsg(config.TKeyLblZodiacSign),
		EightCharacters: app.GetMsg(config.TKeyLblEightChars),
		HourName:        app.GetMsg(config.TKeyLblHourName),
		FiveElements:    app.GetMsg(config.TKeyLblElements),
		LuckyNumbers:    app.GetMsg(config.TKeyLblNumbers),
		LuckyColors:     app.GetMsg(config.TKeyLblColors),
		MissingElements: app.GetMsg(config.TKeyLblMissing),
		Symbols:         app.GetMsg(config.TKeyLblSymbols),
		Purpose:         app.GetMsg(config.TKeyLblPurpose),
		Religion:        app.GetMsg(config.TKeyLblReligion),
		YearlyFortune:   app.GetMsg(config.TKeySecYearly),
		PurposeAdvice:   app.GetMsg(config.TKeySecPurpose),
		Bracelet:        app.GetMsg(config.TKeySecBracelet),
		UsageTips:       app.GetMsg(config.TKeySecUsage),
		Unknown:         app.GetMsg(config.TKeyUnknown),
	}
}
