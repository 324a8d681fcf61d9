package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/tartampluch/go-fortune/internal/config"
)

// FortuneRequest is the body of POST /api/predict/fortune.
type FortuneRequest struct {
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	BirthYear   int    `json:"birth_year"`
	BirthMonth  int    `json:"birth_month"`
	BirthDay    int    `json:"birth_day"`
	BirthHour   int    `json:"birth_hour"`
	IsLunarDate bool   `json:"is_lunar_date"`
	Purpose     string `json:"purpose"`
	Religion    string `json:"religion"`
	BirthPlace  string `json:"birth_place"`
}

// Prediction is the backend response, also returned for shared links.
type Prediction struct {
	ID                     string                 `json:"id"`
	Basic                  BasicPrediction        `json:"basic_prediction"`
	Enhanced               EnhancedPrediction     `json:"enhanced_prediction"`
	BraceletRecommendation BraceletRecommendation `json:"bracelet_recommendation"`
}

// BasicPrediction holds the deterministic facts computed from the birth data.
type BasicPrediction struct {
	Name            string          `json:"name"`
	Gender          string          `json:"gender"`
	BirthDate       string          `json:"birth_date"`
	BirthTime       string          `json:"birth_time"`
	BirthPlace      string          `json:"birth_place"`
	Zodiac          string          `json:"zodiac"`
	ZodiacSign      string          `json:"zodiac_sign"`
	EightCharacters EightCharacters `json:"eight_characters"`
	FiveElements    []string        `json:"five_elements"`
	LuckyNumbers    []int           `json:"lucky_numbers"`
	LuckyColors     []string        `json:"lucky_colors"`
	Purpose         string          `json:"purpose"`
	Religion        string          `json:"religion"`
}

// EightCharacters are the four year/month/day/hour pillars.
type EightCharacters struct {
	Year  string `json:"year"`
	Month string `json:"month"`
	Day   string `json:"day"`
	Hour  string `json:"hour"`
}

// IsZero reports whether no pillar is known.
func (e EightCharacters) IsZero() bool {
	return e == EightCharacters{}
}

// Format joins the pillars with spaces, or returns unknown when none is set.
func (e EightCharacters) Format(unknown string) string {
	if e.IsZero() {
		if unknown == "" {
			return config.PlaceholderUnknown
		}
		return unknown
	}
	return strings.Join([]string{e.Year, e.Month, e.Day, e.Hour}, " ")
}

// EnhancedPrediction is the free-text part generated by the language model.
type EnhancedPrediction struct {
	Enhanced               bool   `json:"enhanced"`
	YearlyFortune          Text   `json:"yearly_fortune"`
	PurposeAdvice          Text   `json:"purpose_advice"`
	BraceletRecommendation Text   `json:"bracelet_recommendation"`
	UsageTips              Text   `json:"usage_tips"`
	Error                  string `json:"error"`
	Message                string `json:"message"`
}

// BraceletRecommendation is either the model's text (source "enhanced") or the
// rule based advice (source "basic"). The basic text already describes the
// recommended materials.
type BraceletRecommendation struct {
	Source           string   `json:"source"`
	Recommendation   Text     `json:"recommendation"`
	MissingElements  []string `json:"missing_elements"`
	ReligiousSymbols []string `json:"religious_symbols"`
}

// ShareLink is the response of POST /api/share.
type ShareLink struct {
	ShareID  string `json:"share_id"`
	ShareURL string `json:"share_url"`
}

// Notice returns the backend's explanation when the model text is missing,
// such as a fallback to the basic prediction. It is empty for enhanced results.
func (p *Prediction) Notice() string {
	if p.Enhanced.Enhanced {
		return ""
	}
	return strings.TrimSpace(p.Enhanced.Message)
}

// BraceletText returns the bracelet advice, preferring the model's text.
func (p *Prediction) BraceletText() string {
	if s := p.BraceletRecommendation.Recommendation.String(); s != "" {
		return s
	}
	return p.Enhanced.BraceletRecommendation.String()
}

// BirthDate parses basic_prediction.birth_date, which is always solar.
func (p *Prediction) BirthDate() (time.Time, error) {
	t, err := time.Parse(config.DateFormatFullDash, p.Basic.BirthDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return t, nil
}

// LuckyNumbersText joins the lucky numbers with the list separator.
func (b BasicPrediction) LuckyNumbersText() string {
	parts := make([]string, len(b.LuckyNumbers))
	for i, n := range b.LuckyNumbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, config.ListSeparator)
}

// Text is a free-text field. The model sometimes answers with an array or an
// object instead of a string; both are flattened into lines that the content
// formatter understands.
type Text string

// String returns the flattened text.
func (t Text) String() string {
	return string(t)
}

// UnmarshalJSON accepts strings, arrays, objects, numbers, booleans and null.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Text(strings.Join(flatten(v), config.LineSeparator))
	return nil
}

// flatten renders v as lines. Array elements become bullet items,
// object entries become "key: value" lines in key order.
func flatten(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []any:
		var lines []string
		for _, item := range val {
			for _, line := range flatten(item) {
				if line == "" {
					continue
				}
				lines = append(lines, config.BulletMarker+strings.TrimPrefix(line, config.BulletMarker))
			}
		}
		return lines
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		var lines []string
		for _, k := range keys {
			sub := flatten(val[k])
			switch len(sub) {
			case 0:
				continue
			case 1:
				lines = append(lines, k+": "+sub[0])
			default:
				lines = append(lines, k+":")
				lines = append(lines, sub...)
			}
		}
		return lines
	default:
		return []string{cast.ToString(val)}
	}
}
