// ABOUTME: Timeline groups archive messages into a date-keyed browsing index
// ABOUTME: Messages without a usable timestamp land under the "unknown" bucket
package core

import (
	"github.com/zain/mindsearch/internal/models"
)

// UnknownDate is the bucket for records whose timestamp cannot be parsed.
const UnknownDate = "unknown"

// TimelineEntry is one message as it appears in the timeline index.
type TimelineEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildTimeline groups records by calendar day (YYYY-MM-DD), preserving the
// source order within each day.
func BuildTimeline(records []models.MessageRecord) map[string][]TimelineEntry {
	timeline := make(map[string][]TimelineEntry)
	for _, r := range records {
		date := UnknownDate
		if t, ok := r.Time(); ok {
			date = t.Format("2006-01-02")
		}
		timeline[date] = append(timeline[date], TimelineEntry{
			Role:    r.Role,
			Content: r.DisplayText(),
		})
	}
	return timeline
}
