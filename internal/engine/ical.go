package engine

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-fortune/internal/config"
)

// ErrNoPrediction is returned by exporters given a nil prediction.
var ErrNoPrediction = errors.New(config.ErrNoPrediction)

// BirthdayCalendar builds a calendar with one all-day event on the solar birth
// date, repeating every year. The description lists the lucky colors and numbers.
func BirthdayCalendar(p *Prediction, now time.Time) ([]byte, error) {
	if p == nil {
		return nil, ErrNoPrediction
	}
	birthDate, err := p.BirthDate()
	if err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	name := strings.TrimSpace(p.Basic.Name)
	if name == "" {
		name = config.FallbackName
	}

	// Deterministic UID so re-exports update the same event.
	input := fmt.Sprintf(config.FormatHashIn, name, birthDate.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uid := fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLen]), config.ICalDomain)

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, uid)
	event.Props.SetText(config.PropSummary, fmt.Sprintf(config.ICalSummary, name))

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(now.UTC())
	event.Props.Set(dtStamp)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(birthDate)
	event.Props.Set(dtStart)

	// Set RRULE manually to avoid a "VALUE=TEXT" param.
	rrule := ical.NewProp(config.PropRRule)
	rrule.Value = config.ICalRRule
	event.Props.Set(rrule)

	description := fmt.Sprintf(config.ICalLucky,
		strings.Join(p.Basic.LuckyColors, config.ListSeparator),
		p.Basic.LuckyNumbersText(),
	)
	event.Props.SetText(config.PropDescription, description)

	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}
