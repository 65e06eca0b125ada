package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Dicklesworthstone/autoflow/internal/testutil"
)

// isolateHome points HOME at a temp dir so a developer's real user config
// never leaks into the test.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load(LoadOptions{ProjectDir: t.TempDir()})
	testutil.RequireNoError(t, err, "load")

	testutil.RequireEqual(t, 7, cfg.Analysis.LookbackDays, "lookback days")
	testutil.RequireEqual(t, 300, cfg.Analysis.AFKThresholdSecs, "afk threshold")
	testutil.RequireEqual(t, 25, cfg.Analysis.MaxRecommendations, "max recommendations")
	testutil.RequireEqual(t, 5, cfg.Analysis.MaxExamplesPattern, "max examples")
	testutil.RequireEqual(t, 20, cfg.Analysis.MaxRawCommands, "max raw commands")

	if cfg.Paths.TranscriptsDir == "" || cfg.Paths.SettingsPath == "" || cfg.Paths.AuditDBPath == "" {
		t.Errorf("default paths incomplete: %+v", cfg.Paths)
	}
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	isolateHome(t)
	project := t.TempDir()

	cfgDir := filepath.Join(project, ".autoflow")
	testutil.RequireNoError(t, os.MkdirAll(cfgDir, 0o755), "mkdir")
	content := `[analysis]
lookback_days = 14
max_recommendations = 10
`
	testutil.RequireNoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(content), 0o644), "write config")

	cfg, err := Load(LoadOptions{ProjectDir: project})
	testutil.RequireNoError(t, err, "load")

	testutil.RequireEqual(t, 14, cfg.Analysis.LookbackDays, "overridden lookback")
	testutil.RequireEqual(t, 10, cfg.Analysis.MaxRecommendations, "overridden max recommendations")
	// Untouched keys keep their defaults.
	testutil.RequireEqual(t, 300, cfg.Analysis.AFKThresholdSecs, "default afk threshold")
}

func TestLoad_UserConfigBelowProjectConfig(t *testing.T) {
	home := isolateHome(t)
	project := t.TempDir()

	userDir := filepath.Join(home, ".autoflow")
	testutil.RequireNoError(t, os.MkdirAll(userDir, 0o755), "mkdir user")
	testutil.RequireNoError(t, os.WriteFile(filepath.Join(userDir, "config.toml"),
		[]byte("[analysis]\nlookback_days = 30\nmax_raw_commands = 50\n"), 0o644), "write user config")

	projDir := filepath.Join(project, ".autoflow")
	testutil.RequireNoError(t, os.MkdirAll(projDir, 0o755), "mkdir project")
	testutil.RequireNoError(t, os.WriteFile(filepath.Join(projDir, "config.toml"),
		[]byte("[analysis]\nlookback_days = 3\n"), 0o644), "write project config")

	cfg, err := Load(LoadOptions{ProjectDir: project})
	testutil.RequireNoError(t, err, "load")

	testutil.RequireEqual(t, 3, cfg.Analysis.LookbackDays, "project wins")
	testutil.RequireEqual(t, 50, cfg.Analysis.MaxRawCommands, "user value survives where project is silent")
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("AUTOFLOW_LOOKBACK_DAYS", "21")
	t.Setenv("AUTOFLOW_TRANSCRIPTS_DIR", "/data/transcripts")
	t.Setenv("AUTOFLOW_EXTRA_ALLOWED_TOOLS", "WebFetch, TodoWrite")

	cfg, err := Load(LoadOptions{ProjectDir: t.TempDir()})
	testutil.RequireNoError(t, err, "load")

	testutil.RequireEqual(t, 21, cfg.Analysis.LookbackDays, "env lookback")
	testutil.RequireEqual(t, "/data/transcripts", cfg.Paths.TranscriptsDir, "env transcripts dir")
	testutil.RequireLen(t, cfg.Patterns.ExtraAllowedTools, 2, "env tool list")
	testutil.RequireEqual(t, "WebFetch", cfg.Patterns.ExtraAllowedTools[0], "first tool trimmed")
}

func TestLoad_EnvBadIntFails(t *testing.T) {
	isolateHome(t)
	t.Setenv("AUTOFLOW_LOOKBACK_DAYS", "soon")

	if _, err := Load(LoadOptions{ProjectDir: t.TempDir()}); err == nil {
		t.Fatal("expected an error for a non-integer env override")
	}
}

func TestLoad_FlagOverridesWin(t *testing.T) {
	isolateHome(t)
	t.Setenv("AUTOFLOW_LOOKBACK_DAYS", "21")

	cfg, err := Load(LoadOptions{
		ProjectDir:    t.TempDir(),
		FlagOverrides: map[string]any{"analysis.lookback_days": 2},
	})
	testutil.RequireNoError(t, err, "load")
	testutil.RequireEqual(t, 2, cfg.Analysis.LookbackDays, "flag beats env")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	testutil.RequireNoError(t, Validate(cfg), "defaults validate")

	cfg.Analysis.LookbackDays = 0
	cfg.Paths.SettingsPath = ""
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation failure")
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "conf", "config.toml")

	want := DefaultConfig()
	want.Analysis.LookbackDays = 11
	testutil.RequireNoError(t, WriteFile(path, want), "write")

	cfg, err := Load(LoadOptions{ProjectDir: t.TempDir(), ConfigPath: path})
	testutil.RequireNoError(t, err, "load written config")
	testutil.RequireEqual(t, 11, cfg.Analysis.LookbackDays, "round-tripped value")
}
