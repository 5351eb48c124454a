// ABOUTME: Tests for timeline command structure
// ABOUTME: Verifies command metadata and argument handling

package commands

import (
	"testing"
)

func TestNewTimelineCmd(t *testing.T) {
	cmd := NewTimelineCmd()

	if cmd.Use != "timeline" {
		t.Errorf("Use = %q, want %q", cmd.Use, "timeline")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if err := cmd.Args(cmd, []string{"extra"}); err == nil {
		t.Error("positional arguments should be rejected")
	}
}
