package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-fortune/internal/config"
)

// Contact is a vCard entry with a usable birthday, used to prefill the form.
type Contact struct {
	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// BirthDate is the parsed BDAY. When the year is unknown it is set to config.DefaultLeapYear.
	BirthDate time.Time

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool
}

// ImportContacts reads a vCard stream and returns the contacts that carry a
// parsable birthday, in file order. Cards without BDAY are skipped.
func ImportContacts(r io.Reader) ([]Contact, error) {
	log := slog.With(config.LogKeyComponent, config.CompContacts)

	decoder := vcard.NewDecoder(r)
	var contacts []Contact
	processed := 0

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The decoder cannot resynchronize after a broken card.
			if processed == 0 {
				return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			break
		}
		processed++

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthDate, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			log.Debug(config.MsgSkippedDate, config.LogKeyValue, bday.Value)
			continue
		}

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && strings.TrimSpace(fn.Value) != "" {
			name = strings.TrimSpace(fn.Value)
		} else if n := card.Name(); n != nil {
			if joined := strings.TrimSpace(n.GivenName + " " + n.FamilyName); joined != "" {
				name = joined
			}
		}

		contacts = append(contacts, Contact{
			Name:      name,
			BirthDate: birthDate,
			YearKnown: yearKnown,
		})
	}

	log.Info(config.MsgContactsRead,
		config.LogKeyCount, len(contacts),
		config.LogKeyValue, processed,
	)
	return contacts, nil
}

// parseDate handles various vCard date formats.
func parseDate(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)

	// Full dates (Year known)
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true, nil
		}
	}

	// Truncated dates (Year unknown) - vCard specific
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
