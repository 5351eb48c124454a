// ABOUTME: Unit tests for the insight response parser
// ABOUTME: Covers prefix case-insensitivity, partial responses, and failure detection
package llm

import (
	"strings"
	"testing"
)

func TestParseInsightResponse_WellFormed(t *testing.T) {
	content := "SUMMARY: The user debugged a Go deadlock with help from the assistant.\n" +
		"KEYWORDS: goroutines, deadlock, channels, mutex, debugging"

	in, err := ParseInsightResponse(content)
	if err != nil {
		t.Fatalf("ParseInsightResponse failed: %v", err)
	}
	if in.Summary != "The user debugged a Go deadlock with help from the assistant." {
		t.Errorf("Summary = %q", in.Summary)
	}
	want := []string{"goroutines", "deadlock", "channels", "mutex", "debugging"}
	if len(in.Keywords) != len(want) {
		t.Fatalf("Keywords = %v, want %v", in.Keywords, want)
	}
	for i := range want {
		if in.Keywords[i] != want[i] {
			t.Errorf("Keywords[%d] = %q, want %q", i, in.Keywords[i], want[i])
		}
	}
}

func TestParseInsightResponse_CaseInsensitivePrefixes(t *testing.T) {
	in, err := ParseInsightResponse("summary: Short chat.\nKeywords: a, b")
	if err != nil {
		t.Fatalf("ParseInsightResponse failed: %v", err)
	}
	if in.Summary != "Short chat." {
		t.Errorf("Summary = %q", in.Summary)
	}
	if len(in.Keywords) != 2 {
		t.Errorf("Keywords = %v", in.Keywords)
	}
}

func TestParseInsightResponse_SummaryOnly(t *testing.T) {
	in, err := ParseInsightResponse("SUMMARY: Only a summary came back.")
	if err != nil {
		t.Fatalf("summary-only response should parse: %v", err)
	}
	if in.Summary == "" || len(in.Keywords) != 0 {
		t.Errorf("got %+v", in)
	}
}

func TestParseInsightResponse_KeywordsOnly(t *testing.T) {
	in, err := ParseInsightResponse("KEYWORDS: one, two, three")
	if err != nil {
		t.Fatalf("keywords-only response should parse: %v", err)
	}
	if in.Summary != "" || len(in.Keywords) != 3 {
		t.Errorf("got %+v", in)
	}
}

func TestParseInsightResponse_NoRecognizedLines(t *testing.T) {
	if _, err := ParseInsightResponse("The conversation was about cooking."); err == nil {
		t.Error("expected failure when neither line is present")
	}
	if _, err := ParseInsightResponse(""); err == nil {
		t.Error("expected failure for empty response")
	}
}

func TestParseInsightResponse_TrimsAndDropsEmptyKeywords(t *testing.T) {
	in, err := ParseInsightResponse("SUMMARY: x\nKEYWORDS:  alpha , , beta ,")
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Keywords) != 2 || in.Keywords[0] != "alpha" || in.Keywords[1] != "beta" {
		t.Errorf("Keywords = %v", in.Keywords)
	}
}

func TestParseInsightResponse_CapsKeywordsAtFive(t *testing.T) {
	in, err := ParseInsightResponse("KEYWORDS: " + strings.Join([]string{"a", "b", "c", "d", "e", "f", "g"}, ", "))
	if err != nil {
		t.Fatal(err)
	}
	if len(in.Keywords) != 5 {
		t.Errorf("expected 5 keywords, got %d", len(in.Keywords))
	}
}

func TestParseInsightResponse_SurroundingChatter(t *testing.T) {
	content := "Sure! Here is the analysis you asked for:\n" +
		"SUMMARY: A planning discussion.\n" +
		"KEYWORDS: plans, goals\n" +
		"Let me know if you need anything else."

	in, err := ParseInsightResponse(content)
	if err != nil {
		t.Fatal(err)
	}
	if in.Summary != "A planning discussion." {
		t.Errorf("Summary = %q", in.Summary)
	}
}
