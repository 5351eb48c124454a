// ABOUTME: Unit tests for conversation export formatting
// ABOUTME: Covers attribution lines, insight appendices, and filename sanitization
package core

import (
	"strings"
	"testing"

	"github.com/zain/mindsearch/internal/models"
)

func TestFormatMessageHeader(t *testing.T) {
	user := record("c1", "m1", "user", "hi", "2024-05-01T15:04:00")
	got := FormatMessageHeader(user)
	if !strings.HasPrefix(got, "User asked on ") {
		t.Errorf("user header = %q", got)
	}
	if !strings.Contains(got, "WED - MAY 01 @ 03:04 PM") {
		t.Errorf("timestamp not formatted as expected: %q", got)
	}

	assistant := record("c1", "m2", "assistant", "hello", nil)
	got = FormatMessageHeader(assistant)
	if got != "Assistant responded on No Timestamp" {
		t.Errorf("assistant header = %q", got)
	}

	other := record("c1", "m3", "tool", "output", nil)
	if !strings.HasPrefix(FormatMessageHeader(other), "Assistant responded") {
		t.Error("non-user roles should render as the assistant side")
	}
}

func TestFormatThread(t *testing.T) {
	thread := []models.MessageRecord{
		record("c1", "m1", "user", "what is a vector index?", "2024-05-01T10:00:00"),
		record("c1", "m2", "assistant", "a structure for nearest-neighbor search", "2024-05-01T10:00:05"),
	}
	insight := &models.Insight{
		Summary:  "An explanation of vector indexes.",
		Keywords: []string{"vectors", "index", "search"},
	}

	text := FormatThread(thread, insight)

	if !strings.Contains(text, "what is a vector index?") {
		t.Error("user message missing from export")
	}
	if !strings.Contains(text, "--- SUMMARY ---\nAn explanation of vector indexes.") {
		t.Error("summary appendix missing")
	}
	if !strings.Contains(text, "--- KEYWORDS ---\nvectors, index, search") {
		t.Error("keywords appendix missing")
	}
}

func TestFormatThread_NoInsight(t *testing.T) {
	thread := []models.MessageRecord{
		record("c1", "m1", "user", "solo message", "2024-05-01T10:00:00"),
	}

	text := FormatThread(thread, nil)
	if strings.Contains(text, "--- SUMMARY ---") {
		t.Error("no summary appendix expected without an insight")
	}

	// Error markers are not worth exporting.
	text = FormatThread(thread, &models.Insight{Summary: models.InsightErrGenerate})
	if strings.Contains(text, "--- SUMMARY ---") {
		t.Error("error markers should not be exported")
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "conversation_abc123", "conversation_abc123.txt"},
		{"spaces to hyphens", "conv abc first  words", "conv-abc-first-words.txt"},
		{"strips punctuation", `conv_x_what's "this"? (test)`, "conv_x_whats-this-test.txt"},
		{"trims edge dashes", "-- weird start and end --", "weird-start-and-end.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeFilename(tt.in); got != tt.want {
				t.Errorf("SafeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	long := strings.Repeat("a", 80)
	got := SafeFilename(long)
	if len(got) != 54 { // 50 chars + ".txt"
		t.Errorf("long name = %q (len %d), want 50+4", got, len(got))
	}
}

func TestExportFilename(t *testing.T) {
	thread := []models.MessageRecord{
		record("c9", "m1", "assistant", "unprompted greeting", "2024-05-01T10:00:00"),
		record("c9", "m2", "user", "tell me about embeddings please", "2024-05-01T10:00:05"),
	}

	got := ExportFilename("c9", thread)
	if !strings.HasPrefix(got, "conv_c9_tell-me-about") {
		t.Errorf("ExportFilename = %q, want first user message in the name", got)
	}

	// No user message: falls back to the conversation id.
	noUser := thread[:1]
	if got := ExportFilename("c9", noUser); got != "conversation_c9.txt" {
		t.Errorf("fallback filename = %q", got)
	}
}
