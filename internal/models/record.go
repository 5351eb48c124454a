// ABOUTME: MessageRecord represents one chat message from the conversation archive
// ABOUTME: Tolerates loosely-typed source JSON (non-string content, mixed timestamp formats)
package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Role values recognized for display and filtering. Other role strings are
// stored verbatim and rendered as the assistant side.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MessageRecord is a single message as read from the archive source.
// Content and Timestamp keep their raw JSON so records round-trip unchanged
// through the metadata store even when the source data is malformed.
type MessageRecord struct {
	ConversationID string          `json:"conversation_id,omitempty"`
	MessageID      string          `json:"message_id,omitempty"`
	Role           string          `json:"role,omitempty"`
	Content        json.RawMessage `json:"content,omitempty"`
	Timestamp      json.RawMessage `json:"timestamp,omitempty"`
}

// Text returns the content as a string. The second return is false when
// content is absent or not a JSON string (such records are never embedded).
func (r MessageRecord) Text() (string, bool) {
	if len(r.Content) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(r.Content, &s); err != nil {
		return "", false
	}
	return s, true
}

// DisplayText returns the content for display purposes, falling back to the
// raw JSON for non-string content.
func (r MessageRecord) DisplayText() string {
	if s, ok := r.Text(); ok {
		return s
	}
	return strings.TrimSpace(string(r.Content))
}

// Time parses the timestamp into a sortable time. Accepted forms are a JSON
// number (epoch seconds, fractions allowed), a numeric string, or an
// ISO-8601 / RFC3339 string. The second return is false when the timestamp
// is missing or unparsable; such records are excluded from time-ordered
// operations.
func (r MessageRecord) Time() (time.Time, bool) {
	if len(r.Timestamp) == 0 {
		return time.Time{}, false
	}

	var epoch float64
	if err := json.Unmarshal(r.Timestamp, &epoch); err == nil {
		return epochToTime(epoch), true
	}

	var s string
	if err := json.Unmarshal(r.Timestamp, &s); err != nil {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if epoch, err := strconv.ParseFloat(s, 64); err == nil {
		return epochToTime(epoch), true
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func epochToTime(epoch float64) time.Time {
	sec := int64(epoch)
	nsec := int64((epoch - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// IsUser reports whether the record is a user-authored message.
func (r MessageRecord) IsUser() bool {
	return r.Role == RoleUser
}
