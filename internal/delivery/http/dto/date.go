package dto

import "time"

const DateLayout = "2006-01-02"

// FormatDate renders a calendar date, or nil when absent.
func FormatDate(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
