package calendar

import "github.com/tartampluch/go-fortune/internal/config"

var earthlyBranches = []rune("子丑寅卯辰巳午未申酉戌亥")

var hourPeriods = []string{
	"子时 (23:00-00:59)", "丑时 (01:00-02:59)", "寅时 (03:00-04:59)",
	"卯时 (05:00-06:59)", "辰时 (07:00-08:59)", "巳时 (09:00-10:59)",
	"午时 (11:00-12:59)", "未时 (13:00-14:59)", "申时 (15:00-16:59)",
	"酉时 (17:00-18:59)", "戌时 (19:00-20:59)", "亥时 (21:00-22:59)",
}

// HourName maps an hour pillar such as "甲子" to its two-hour period label.
// The branch is the second character. Unrecognized pillars are returned unchanged
// and an empty pillar yields the unknown placeholder.
func HourName(hourGanzhi, unknown string) string {
	if hourGanzhi == "" {
		if unknown == "" {
			return config.PlaceholderUnknown
		}
		return unknown
	}

	runes := []rune(hourGanzhi)
	if len(runes) < 2 {
		return hourGanzhi
	}
	for i, b := range earthlyBranches {
		if runes[1] == b {
			return hourPeriods[i]
		}
	}
	return hourGanzhi
}

// Hours lists the selectable birth hours 0 through 23.
func Hours() []int {
	hours := make([]int, config.HoursPerDay)
	for i := range hours {
		hours[i] = i
	}
	return hours
}
