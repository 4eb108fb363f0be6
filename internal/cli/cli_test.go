package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"themepark/internal/config"
)

// run executes parkctl with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHistoryInspect_Text(t *testing.T) {
	path := writeCSV(t, "Zoe,30,V1,Gold,2\nBroken,abc,V2,Gold,1\n\nadam,25,V3,Silver\n")

	out, err := run(t, "history", "inspect", path, "--sort")
	require.NoError(t, err)

	assert.Contains(t, out, "Imported: 2")
	assert.Contains(t, out, "Skipped:  1")
	assert.Contains(t, out, "line 2")
	assert.Contains(t, out, "Visitors (sorted):")
	assert.Contains(t, out, "1. adam, age 25, id V3, Silver, 1 ticket(s)")
	assert.Contains(t, out, "2. Zoe, age 30, id V1, Gold, 2 ticket(s)")
}

func TestHistoryInspect_JSON(t *testing.T) {
	path := writeCSV(t, "Ann,30,V1,Gold,2\nBen,31,V2,Standard,1\n")

	out, err := run(t, "history", "inspect", path, "-o", "json")
	require.NoError(t, err)

	var result struct {
		File   string `json:"file"`
		Report struct {
			Imported int `json:"imported"`
			Skipped  int `json:"skipped"`
		} `json:"report"`
		Visitors []struct {
			Name    string `json:"name"`
			Tickets int    `json:"tickets"`
		} `json:"visitors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	assert.Equal(t, path, result.File)
	assert.Equal(t, 2, result.Report.Imported)
	assert.Equal(t, 0, result.Report.Skipped)
	require.Len(t, result.Visitors, 2)
	assert.Equal(t, "Ann", result.Visitors[0].Name)
	assert.Equal(t, 2, result.Visitors[0].Tickets)
}

func TestHistoryInspect_MissingFile(t *testing.T) {
	_, err := run(t, "history", "inspect", filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestHistoryInspect_RequiresFile(t *testing.T) {
	_, err := run(t, "history", "inspect")
	assert.Error(t, err)
}

func TestRunDemo(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.History.Dir = t.TempDir()

	var out bytes.Buffer
	err := RunDemo(context.Background(), cfg, &out, "text", []string{"one", "two", "three", "four"})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "arg 3: three")
	assert.NotContains(t, text, "arg 4")
	assert.Contains(t, text, "... and 1 more")
	assert.Contains(t, text, "no operator assigned")
	assert.Contains(t, text, "Cycle 4: Cycle Visitor 10 (0 still waiting)")
	assert.Contains(t, text, "Exported 10 visitor(s)")
	assert.Contains(t, text, "Imported: 10")
	assert.Contains(t, text, "file not found")
	assert.Contains(t, text, "Ride:       Thunderstorm")

	_, err = os.Stat(filepath.Join(cfg.History.Dir, "thunderstorm_history.csv"))
	assert.NoError(t, err)
}

func TestDemoCommand(t *testing.T) {
	out, err := run(t, "demo")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Final state ===")
}
