// ABOUTME: Renders a reconstructed conversation to plain text for export
// ABOUTME: Includes the cached insight when available and builds safe filenames
package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zain/mindsearch/internal/models"
)

var (
	unsafeChars   = regexp.MustCompile(`[^\w\s-]`)
	dashCollapser = regexp.MustCompile(`[-\s]+`)
)

// FormatMessageHeader renders a message's attribution line, for example
// "User asked on MON - JAN 02 @ 03:04 PM". Roles other than user render as
// the assistant side.
func FormatMessageHeader(r models.MessageRecord) string {
	ts := "No Timestamp"
	if t, ok := r.Time(); ok {
		ts = strings.ToUpper(t.Format("Mon - Jan 02 @ 03:04 PM"))
	}
	if r.IsUser() {
		return fmt.Sprintf("User asked on %s", ts)
	}
	return fmt.Sprintf("Assistant responded on %s", ts)
}

// FormatThread renders a full thread for export, one attributed message per
// block, followed by the insight's summary and keywords when present.
func FormatThread(thread []models.MessageRecord, insight *models.Insight) string {
	blocks := make([]string, 0, len(thread))
	for _, r := range thread {
		blocks = append(blocks, fmt.Sprintf("%s:\n%s", FormatMessageHeader(r), r.DisplayText()))
	}
	text := strings.Join(blocks, "\n\n")

	if insight != nil && !insight.Failed() {
		if insight.Summary != "" {
			text += fmt.Sprintf("\n\n--- SUMMARY ---\n%s", insight.Summary)
		}
		if len(insight.Keywords) > 0 {
			text += fmt.Sprintf("\n\n--- KEYWORDS ---\n%s", strings.Join(insight.Keywords, ", "))
		}
	}
	return text
}

// ExportFilename builds a filesystem-safe .txt name for a thread, seeded
// with the conversation id and the first user message when one exists.
func ExportFilename(conversationID string, thread []models.MessageRecord) string {
	base := fmt.Sprintf("conversation_%s", conversationID)
	for _, r := range thread {
		if !r.IsUser() {
			continue
		}
		if text, ok := r.Text(); ok {
			snippet := []rune(text)
			if len(snippet) > 20 {
				snippet = snippet[:20]
			}
			base = fmt.Sprintf("conv_%s_%s", conversationID, string(snippet))
			break
		}
	}
	return SafeFilename(base)
}

// SafeFilename strips characters that are unsafe in filenames, collapses
// whitespace and hyphen runs to single hyphens, and truncates to 50 chars
// before appending the .txt extension.
func SafeFilename(base string) string {
	base = unsafeChars.ReplaceAllString(base, "")
	base = dashCollapser.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-_")
	if runes := []rune(base); len(runes) > 50 {
		base = string(runes[:50])
	}
	return base + ".txt"
}
