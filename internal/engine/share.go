package engine

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tartampluch/go-fortune/internal/config"
)

// ParseShareID extracts the share id from a raw id or a share URL
// such as "http://host/share?id=abc".
func ParseShareID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyShareID
	}

	if !strings.Contains(input, "://") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	id := strings.TrimSpace(u.Query().Get(config.ShareIDParam))
	if id == "" {
		return "", ErrEmptyShareID
	}
	return id, nil
}
