// ABOUTME: Tests for export command structure and argument validation
// ABOUTME: Verifies flags and the id-or-all requirement

package commands

import (
	"testing"
)

func TestNewExportCmd(t *testing.T) {
	cmd := NewExportCmd()

	if cmd.Use != "export [conversation-id]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "export [conversation-id]")
	}

	tests := []struct {
		flagName string
		defValue string
	}{
		{"out", "exports"},
		{"all", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.flagName)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.flagName, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestExportCmd_RequiresIDOrAll(t *testing.T) {
	origAll := exportAll
	defer func() { exportAll = origAll }()

	exportAll = false
	if err := runExport(NewExportCmd(), nil); err == nil {
		t.Error("export without id or --all should error")
	}

	exportAll = true
	if err := runExport(NewExportCmd(), []string{"some-id"}); err == nil {
		t.Error("export with both id and --all should error")
	}
}
