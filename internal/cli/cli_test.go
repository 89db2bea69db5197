package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/shelfsync/pkg/config"
	"github.com/sdejongh/shelfsync/pkg/models"
)

// withGlobalFlags swaps the package flags for the duration of a test
func withGlobalFlags(t *testing.T, flags GlobalFlags) {
	t.Helper()
	saved := globalFlags
	globalFlags = flags
	t.Cleanup(func() { globalFlags = saved })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestResolveConfig(t *testing.T) {
	t.Run("RootsFromFlags", func(t *testing.T) {
		cfg, err := resolveConfig(&GlobalFlags{ConfigFile: "/does/not/exist.yaml"}, RootFlags{Source: "/a", Dest: "/b"})
		require.NoError(t, err)
		assert.Equal(t, "/a", cfg.Source)
		assert.Equal(t, "/b", cfg.Destination)
	})

	t.Run("OnlyOneRoot", func(t *testing.T) {
		_, err := resolveConfig(&GlobalFlags{}, RootFlags{Source: "/a"})
		assert.ErrorContains(t, err, "must be given together")
	})

	t.Run("FromConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		writeFile(t, path, "source: /books\ndestination: /reader\nlogging: {level: warn}\n")

		cfg, err := resolveConfig(&GlobalFlags{ConfigFile: path, LogFormat: "json"}, RootFlags{})
		require.NoError(t, err)
		assert.Equal(t, "/books", cfg.Source)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})

	t.Run("MissingConfigFile", func(t *testing.T) {
		_, err := resolveConfig(&GlobalFlags{ConfigFile: filepath.Join(t.TempDir(), "absent.yaml")}, RootFlags{})
		assert.ErrorContains(t, err, "failed to load config")
	})

	t.Run("VerboseRaisesLevel", func(t *testing.T) {
		cfg, err := resolveConfig(&GlobalFlags{Verbose: true}, RootFlags{Source: "/a", Dest: "/b"})
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)

		cfg, err = resolveConfig(&GlobalFlags{Verbose: true, LogLevel: "error"}, RootFlags{Source: "/a", Dest: "/b"})
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Logging.Level)
	})
}

func TestApplyRunFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Source, cfg.Destination = "/a", "/b"

	require.NoError(t, applyRunFlags(cfg, "json", "10M"))
	assert.Equal(t, "json", cfg.Output.Format)
	assert.EqualValues(t, 10<<20, cfg.BandwidthLimit)

	assert.ErrorContains(t, applyRunFlags(cfg, "", "fast"), "invalid bandwidth limit")
	assert.ErrorContains(t, applyRunFlags(cfg, "xml", ""), "output.format")
}

func TestValidateRoots(t *testing.T) {
	base := t.TempDir()
	local := filepath.Join(base, "library")
	foreign := filepath.Join(base, "reader")
	nested := filepath.Join(local, "inner")
	file := filepath.Join(base, "file.txt")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.MkdirAll(foreign, 0755))
	writeFile(t, file, "x")

	tests := []struct {
		name    string
		local   string
		foreign string
		wantErr string
	}{
		{"valid", local, foreign, ""},
		{"missing source", filepath.Join(base, "absent"), foreign, "source"},
		{"destination is a file", local, file, "not a directory"},
		{"same", local, local + string(filepath.Separator), "cannot be the same"},
		{"nested", local, nested, "inside one another"},
		{"nested reversed", nested, local, "inside one another"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, f, err := validateRoots(tt.local, tt.foreign)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(l))
			assert.True(t, filepath.IsAbs(f))
		})
	}
}

func TestSessionRun(t *testing.T) {
	local, foreign := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(local, "a.txt"), "alpha")
	writeFile(t, filepath.Join(foreign, "shelf", "b.txt"), "beta")
	failures := filepath.Join(t.TempDir(), "failures.txt")

	flags := &SyncFlags{
		RootFlags:      RootFlags{Source: local, Dest: foreign},
		Bandwidth:      "100M",
		FailuresReport: failures,
	}
	s, err := newSession(&GlobalFlags{}, flags)
	require.NoError(t, err)
	defer s.close()

	var buf bytes.Buffer
	report, err := s.run(context.Background(), &buf, []models.Mode{models.ModeBidirectional})
	require.NoError(t, err)

	assert.Equal(t, models.StatusSuccess, report.Status)
	assert.Equal(t, 2, report.Stats.FilesCopied)
	assert.Contains(t, buf.String(), "a.txt Copied => from: a.txt to: a.txt\n")
	assert.Contains(t, buf.String(), "b.txt Copied <= from: shelf/b.txt to: shelf/b.txt\n")
	assert.Contains(t, buf.String(), "Status: success")

	data, err := os.ReadFile(filepath.Join(local, "shelf", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "beta", string(data))

	_, err = os.Stat(failures)
	assert.True(t, os.IsNotExist(err), "no failures, no report")
}

func TestSessionRunQuiet(t *testing.T) {
	local, foreign := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(local, "a.txt"), "alpha")

	s, err := newSession(&GlobalFlags{Quiet: true}, &SyncFlags{RootFlags: RootFlags{Source: local, Dest: foreign}})
	require.NoError(t, err)
	defer s.close()

	var buf bytes.Buffer
	_, err = s.run(context.Background(), &buf, []models.Mode{models.ModeOnlyFromLocal})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestCompareCommand(t *testing.T) {
	withGlobalFlags(t, GlobalFlags{})
	local, foreign := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(local, "a.txt"), "a")
	writeFile(t, filepath.Join(local, "shared.txt"), "s")
	writeFile(t, filepath.Join(foreign, "sub", "shared.txt"), "s")
	writeFile(t, filepath.Join(foreign, "sub", "c.txt"), "c")

	cmd := NewCompareCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"-s", local, "-d", foreign, "-o", "json"})
	require.NoError(t, cmd.Execute())

	var got struct {
		OnlyLocal   []comparedEntry `json:"only_local"`
		OnlyForeign []comparedEntry `json:"only_foreign"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []comparedEntry{{Name: "a.txt", Path: "a.txt"}}, got.OnlyLocal)
	assert.Equal(t, []comparedEntry{{Name: "c.txt", Path: filepath.Join("sub", "c.txt")}}, got.OnlyForeign)

	// nothing was copied
	_, err := os.Stat(filepath.Join(foreign, "a.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelfsync", "config.yaml")
	withGlobalFlags(t, GlobalFlags{ConfigFile: path})

	execute := func(args ...string) (string, error) {
		cmd := NewConfigCommand()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return buf.String(), err
	}

	out, err := execute("init", "--source", "/books", "--dest", "/reader")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = execute("init", "--source", "/other", "--dest", "/reader")
	assert.ErrorContains(t, err, "already exists")

	_, err = execute("init", "--source", "/other", "--dest", "/reader", "--force")
	require.NoError(t, err)

	out, err = execute("show")
	require.NoError(t, err)
	assert.Contains(t, out, "Source:          /other")
	assert.Contains(t, out, "Bandwidth Limit: unlimited")

	out, err = execute("path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestVersionCommand(t *testing.T) {
	execute := func(args ...string) string {
		cmd := NewVersionCommand()
		var buf bytes.Buffer
		cmd.SetOut(&buf)
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())
		return buf.String()
	}

	info := currentBuild()
	assert.Equal(t, info.Version+"\n", execute("--short"))
	assert.Contains(t, execute(), "shelfsync "+info.Version+"\n")

	var got buildInfo
	require.NoError(t, json.Unmarshal([]byte(execute("--json")), &got))
	assert.Equal(t, info, got)
	assert.NotEmpty(t, got.GoVersion)
	assert.Contains(t, got.Platform, "/")
}

func TestGlobalFlags(t *testing.T) {
	t.Run("ConfigPath", func(t *testing.T) {
		assert.Equal(t, "/etc/shelf.yaml", (&GlobalFlags{ConfigFile: "/etc/shelf.yaml"}).configPath())
		assert.Equal(t, config.DefaultConfigPath(), (&GlobalFlags{}).configPath())
	})

	t.Run("ApplyLeavesUnsetValues", func(t *testing.T) {
		cfg := config.Default()
		cfg.Logging.File = "/var/log/shelfsync.log"
		(&GlobalFlags{}).apply(cfg)
		assert.Equal(t, "/var/log/shelfsync.log", cfg.Logging.File)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("ApplyOverrides", func(t *testing.T) {
		cfg := config.Default()
		(&GlobalFlags{LogFile: "/tmp/s.log", LogFormat: "json", Verbose: true}).apply(cfg)
		assert.Equal(t, "/tmp/s.log", cfg.Logging.File)
		assert.Equal(t, "json", cfg.Logging.Format)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})
}
