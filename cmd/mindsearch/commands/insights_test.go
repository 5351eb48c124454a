// ABOUTME: Tests for insights command structure and flag validation
// ABOUTME: Verifies limit flag defaults and rejection of negative limits

package commands

import (
	"testing"
)

func TestNewInsightsCmd(t *testing.T) {
	cmd := NewInsightsCmd()

	if cmd.Use != "insights" {
		t.Errorf("Use = %q, want %q", cmd.Use, "insights")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	flag := cmd.Flags().Lookup("limit")
	if flag == nil {
		t.Fatal("--limit flag not found")
	}
	if flag.DefValue != "0" {
		t.Errorf("--limit default = %q, want %q", flag.DefValue, "0")
	}
}

func TestInsightsCmd_RejectsNegativeLimit(t *testing.T) {
	origLimit := insightsLimit
	defer func() { insightsLimit = origLimit }()

	insightsLimit = -1
	if err := runInsights(NewInsightsCmd(), nil); err == nil {
		t.Error("negative limit should be rejected")
	}
}
