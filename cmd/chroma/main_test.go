package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/chroma/internal/app"
)

const records = `[
  {"retention_time": 60000, "mass_spectrum": [
    {"mass_to_charge": 101, "signal": 30},
    {"mass_to_charge": 100, "signal": 10}
  ]},
  {"retention_time": 120000, "mass_spectrum": [
    {"mass_to_charge": 100, "signal": 50}
  ]}
]`

func TestRun(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		settings     string
		args         []string
		expectedExit int
		expectedOut  string
	}{
		{
			name:         "Table as JSON",
			args:         []string{"chroma", "table", "records.json", "--format", "json"},
			expectedExit: 0,
			expectedOut:  `"sort": "retention_time"`,
		},
		{
			name:         "Plot with settings file",
			settings:     "plot:\n  stack: true\n",
			args:         []string{"chroma", "plot", "records.json", "-o", "json"},
			expectedExit: 0,
			expectedOut:  `"mean": 45`,
		},
		{
			name:         "Flag overrides settings file",
			settings:     "sort: rt\n",
			args:         []string{"chroma", "table", "records.json", "-o", "json", "--sort", "mz"},
			expectedExit: 0,
			expectedOut:  `"sort": "mass_to_charge"`,
		},
		{
			name:         "Missing records",
			args:         []string{"chroma", "table", "missing.json"},
			expectedExit: 1,
		},
		{
			name:         "Unknown settings key",
			settings:     "colour: red\n",
			args:         []string{"chroma", "table", "records.json"},
			expectedExit: 1,
		},
		{
			name:         "Invalid override",
			args:         []string{"chroma", "table", "records.json", "--min-periods", "0"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			err := os.WriteFile(filepath.Join(tmpDir, "records.json"), []byte(records), 0o600)
			if err != nil {
				t.Fatalf("failed to write records: %v", err)
			}
			if tt.settings != "" {
				err = os.WriteFile(filepath.Join(tmpDir, "chroma.yaml"), []byte(tt.settings), 0o600)
				if err != nil {
					t.Fatalf("failed to write settings: %v", err)
				}
			}

			// Change to tmpDir for relative path resolution
			originalWd, _ := os.Getwd()
			err = os.Chdir(tmpDir)
			if err != nil {
				t.Fatalf("failed to chdir: %v", err)
			}
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			os.Args = tt.args

			var out bytes.Buffer
			exitCode := run(func(a *app.App) {
				a.WithOutput(&out)
			})
			assert.Equal(t, tt.expectedExit, exitCode)
			assert.Contains(t, out.String(), tt.expectedOut)
		})
	}
}
