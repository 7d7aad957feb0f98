package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv keeps the user's profile and HOVERBAR_* variables out of tests.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, name := range []string{
		"HOVERBAR_Y_THRESHOLD",
		"HOVERBAR_POLL_MS",
		"HOVERBAR_HIDE_DELAY_MS",
		"HOVERBAR_SHOW_DELAY_MS",
		"HOVERBAR_BAR_COMMAND",
		"HOVERBAR_PID_FILE",
		"HOVERBAR_JOURNAL_PATH",
	} {
		t.Setenv(name, "")
	}
	return dir
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := executeWith(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecute_UsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing config",
			args:    []string{"-s", "style.css"},
			wantErr: "bar config path is required",
		},
		{
			name:    "missing style",
			args:    []string{"-c", "bar.json"},
			wantErr: "bar style path is required",
		},
		{
			name:    "unparseable poll interval",
			args:    []string{"-c", "bar.json", "-s", "style.css", "-p", "fast"},
			wantErr: "poll-ms",
		},
		{
			name:    "zero poll interval",
			args:    []string{"-c", "bar.json", "-s", "style.css", "-p", "0"},
			wantErr: "poll interval must be positive",
		},
		{
			name:    "negative hide delay",
			args:    []string{"-c", "bar.json", "-s", "style.css", "-d", "-5"},
			wantErr: "hide delay",
		},
		{
			name:    "unknown flag",
			args:    []string{"-c", "bar.json", "-s", "style.css", "--nope"},
			wantErr: "unknown flag",
		},
		{
			name:    "positional argument before dash",
			args:    []string{"-c", "bar.json", "-s", "style.css", "extra"},
			wantErr: "unexpected argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)

			code, _, stderr := run(t, tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Contains(t, stderr, tt.wantErr)
			assert.Contains(t, stderr, "Usage:")
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := isolateEnv(t)

	profile := filepath.Join(dir, "hoverbar.toml")
	require.NoError(t, os.WriteFile(profile, []byte(`
[hover]
y_threshold = 12
hide_delay = "1s"

[bar]
config = "/profile/bar.json"
style = "/profile/style.css"
`), 0644))
	t.Setenv("HOVERBAR_HIDE_DELAY_MS", "400")

	a := &app{}
	cmd := newRootCmd(a)
	require.NoError(t, cmd.ParseFlags([]string{
		"--profile", profile,
		"-c", "/flag/bar.json",
		"-y", "3",
		"-e", "100",
	}))

	cfg, err := a.loadConfig(cmd.Flags(), true)
	require.NoError(t, err)

	assert.Equal(t, "/flag/bar.json", cfg.Bar.ConfigPath, "flag beats profile")
	assert.Equal(t, "/profile/style.css", cfg.Bar.StylePath, "profile used when flag unset")
	assert.Equal(t, 3, cfg.Hover.YThreshold)
	assert.Equal(t, 400*time.Millisecond, cfg.Hover.HideDelay, "env beats profile")
	assert.Equal(t, 100*time.Millisecond, cfg.Hover.ShowDelay)
	assert.Equal(t, 75*time.Millisecond, cfg.Hover.PollInterval, "default kept")
}

func TestLoadConfig_MissingExplicitProfile(t *testing.T) {
	dir := isolateEnv(t)

	a := &app{}
	cmd := newRootCmd(a)
	require.NoError(t, cmd.ParseFlags([]string{
		"--profile", filepath.Join(dir, "absent.toml"),
		"-c", "bar.json", "-s", "style.css",
	}))

	_, err := a.loadConfig(cmd.Flags(), true)
	require.Error(t, err)
	var uerr *usageError
	assert.ErrorAs(t, err, &uerr)
}

func TestExtraBarArgs(t *testing.T) {
	isolateEnv(t)

	a := &app{}
	cmd := newRootCmd(a)
	require.NoError(t, cmd.ParseFlags([]string{"-c", "bar.json", "-s", "style.css", "--", "--log-level", "warning"}))

	assert.Equal(t, 0, cmd.ArgsLenAtDash())
	assert.NoError(t, extraBarArgs(cmd, cmd.Flags().Args()))
}

func TestVersionCommand(t *testing.T) {
	isolateEnv(t)

	code, stdout, _ := run(t, "version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "hoverbar version dev")
}

func TestStopCommand_NotRunning(t *testing.T) {
	dir := isolateEnv(t)

	code, _, stderr := run(t, "stop", "--pid-file", filepath.Join(dir, "hoverbar.pid"))
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "not running")
}

func TestHistoryCommand(t *testing.T) {
	dir := isolateEnv(t)
	journal := filepath.Join(dir, "journal.db")

	code, stdout, _ := run(t, "history", "--journal-path", journal)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "No transitions recorded.")

	code, stdout, _ = run(t, "history", "--journal-path", journal, "--format", "json")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, `"transitions"`)

	code, _, stderr := run(t, "history", "--journal-path", journal, "--format", "xml")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "invalid format")

	code, _, _ = run(t, "history", "--journal-path", journal, "--since", "soon")
	assert.Equal(t, exitUsage, code)

	code, stdout, _ = run(t, "history", "--journal-path", journal, "--clear")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Journal cleared")
}
