// Package export writes a prediction as a PDF document or a spreadsheet.
package export

import (
	"strings"
	"time"

	"github.com/tartampluch/go-fortune/internal/calendar"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/content"
	"github.com/tartampluch/go-fortune/internal/engine"
)

// Fact is one label/value line of the basic information table.
type Fact struct {
	Label string
	Value string
}

// Section is a titled block of formatted text.
type Section struct {
	Title string
	Body  content.Content
}

// Report is the layout-independent view of a prediction shared by all exporters.
type Report struct {
	Title     string
	Generated time.Time
	Facts     []Fact
	Sections  []Section

	// Notice explains a degraded result, such as the basic prediction fallback.
	Notice string
}

// Labels are the localized captions used in a report.
type Labels struct {
	Title           string
	Name            string
	Gender          string
	BirthDate       string
	BirthTime       string
	BirthPlace      string
	Zodiac          string
	ZodiacSign      string
	EightCharacters string
	HourName        string
	FiveElements    string
	LuckyNumbers    string
	LuckyColors     string
	MissingElements string
	Symbols         string
	Purpose         string
	Religion        string
	YearlyFortune   string
	PurposeAdvice   string
	Bracelet        string
	UsageTips       string
	Unknown         string
}

// DefaultLabels returns the English captions.
func DefaultLabels() Labels {
	return Labels{
		Title:           config.ReportTitle,
		Name:            "Name",
		Gender:          "Gender",
		BirthDate:       "Birth date",
		BirthTime:       "Birth time",
		BirthPlace:      "Birth place",
		Zodiac:          "Chinese zodiac",
		ZodiacSign:      "Zodiac sign",
		EightCharacters: "Eight characters",
		HourName:        "Birth hour",
		FiveElements:    "Five elements",
		LuckyNumbers:    "Lucky numbers",
		LuckyColors:     "Lucky colors",
		MissingElements: "Missing elements",
		Symbols:         "Religious symbols",
		Purpose:         "Purpose",
		Religion:        "Religion",
		YearlyFortune:   "Yearly fortune",
		PurposeAdvice:   "Advice",
		Bracelet:        "Bracelet recommendation",
		UsageTips:       "Usage tips",
		Unknown:         config.PlaceholderUnknown,
	}
}

// NewReport assembles a report from p. Free-text fields go through f, so empty
// ones show f's placeholder. Facts without a value are left out.
func NewReport(p *engine.Prediction, f content.Formatter, l Labels) (*Report, error) {
	if p == nil {
		return nil, engine.ErrNoPrediction
	}
	b := p.Basic

	r := &Report{Title: l.Title, Notice: p.Notice()}
	br := p.BraceletRecommendation

	facts := []Fact{
		{l.Name, b.Name},
		{l.Gender, b.Gender},
		{l.BirthDate, b.BirthDate},
		{l.BirthTime, b.BirthTime},
		{l.BirthPlace, b.BirthPlace},
		{l.Zodiac, b.Zodiac},
		{l.ZodiacSign, b.ZodiacSign},
		{l.EightCharacters, b.EightCharacters.Format(l.Unknown)},
		{l.HourName, calendar.HourName(b.EightCharacters.Hour, l.Unknown)},
		{l.FiveElements, strings.Join(b.FiveElements, config.ListSeparator)},
		{l.LuckyNumbers, b.LuckyNumbersText()},
		{l.LuckyColors, strings.Join(b.LuckyColors, config.ListSeparator)},
		{l.Purpose, b.Purpose},
		{l.Religion, b.Religion},
		{l.MissingElements, strings.Join(br.MissingElements, config.ListSeparator)},
		{l.Symbols, strings.Join(br.ReligiousSymbols, config.ListSeparator)},
	}
	for _, fact := range facts {
		if strings.TrimSpace(fact.Value) != "" {
			r.Facts = append(r.Facts, fact)
		}
	}

	r.Sections = []Section{
		{l.YearlyFortune, f.Format(p.Enhanced.YearlyFortune.String())},
		{l.PurposeAdvice, f.Format(p.Enhanced.PurposeAdvice.String())},
		{l.Bracelet, f.Format(p.BraceletText())},
		{l.UsageTips, f.Format(p.Enhanced.UsageTips.String())},
	}
	return r, nil
}
