package pdfexport

import (
	"strings"
	"unicode"

	"github.com/myrjola/fitplan/internal/workout"
)

const daysInWeek = 7

// Slot is one weekday of the weekly calendar. Focus is empty on rest days.
type Slot struct {
	Rest  bool
	Focus string
}

// WeeklySchedule maps the plan days onto the weekdays starting from Monday.
// Three days train Monday, Wednesday and Friday. Four days train Monday, Tuesday, Thursday and Friday.
// Any other count trains consecutive days from Monday.
func WeeklySchedule(days []workout.Day) [daysInWeek]Slot {
	var week [daysInWeek]Slot
	for i := range week {
		week[i] = Slot{Rest: true, Focus: ""}
	}
	var weekdays []int
	switch len(days) {
	case 3: //nolint:mnd // three-day split.
		weekdays = []int{0, 2, 4}
	case 4: //nolint:mnd // four-day split.
		weekdays = []int{0, 1, 3, 4}
	default:
		for i := range min(len(days), daysInWeek) {
			weekdays = append(weekdays, i)
		}
	}
	for i, weekday := range weekdays {
		week[weekday] = Slot{Rest: false, Focus: days[i].Focus}
	}
	return week
}

// Filename returns the download name of the plan PDF. Whitespace runs become a single underscore.
func Filename(planName string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range planName {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	b.WriteString(".pdf")
	return b.String()
}
