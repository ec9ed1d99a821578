package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/policygen/internal/config"
	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/outline"
	"git.home.luguber.info/inful/policygen/internal/validation"
)

func newTestGlobal() (*Global, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Global{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Stdout: out,
		Stderr: io.Discard,
	}, out
}

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "policy.yaml")
	require.NoError(t, RunInit(io.Discard, path, "", false))
	return path
}

func TestRunInit_WritesValidSettings(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "policy.yaml")
	cfgPath := filepath.Join(dir, "policygen.yaml")
	var out bytes.Buffer

	require.NoError(t, RunInit(&out, settings, cfgPath, false))
	assert.Contains(t, out.String(), "Initialized successfully")

	req, err := LoadSettings(settings)
	require.NoError(t, err)
	require.NoError(t, validation.New().Validate(req))
	assert.Equal(t, "My Shop", req.WebsiteName)

	_, err = config.Load(cfgPath)
	require.NoError(t, err)
}

func TestRunInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	settings := writeSample(t, dir)

	err := RunInit(io.Discard, settings, "", false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))

	require.NoError(t, RunInit(io.Discard, settings, "", true))
}

func TestLoadSettings_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.json")
	body := `{
  "websiteName": "Blog",
  "websiteUrl": "",
  "websiteType": "blog",
  "companyName": "Writer",
  "companyEmail": "me@example.com",
  "companyCountry": "Norway",
  "dataCollected": ["email"],
  "dataRetentionPeriod": "1_year"
}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	req, err := LoadSettings(path)
	require.NoError(t, err)
	require.NotNil(t, req.WebsiteURL)
	assert.Empty(t, *req.WebsiteURL)
	require.NoError(t, validation.New().Validate(req))
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("websiteName: [unclosed\n"), 0o600))
	_, err = LoadSettings(bad)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestGenerate_WritesFileAndPassesCheck(t *testing.T) {
	dir := t.TempDir()
	settings := writeSample(t, dir)
	g, out := newTestGlobal()

	for _, format := range []string{"md", "txt", "html"} {
		t.Run(format, func(t *testing.T) {
			target := filepath.Join(dir, "policy."+format)
			cmd := &GenerateCmd{Settings: settings, Output: target, Format: format, Date: "2026-03-14"}
			require.NoError(t, cmd.Run(g, &CLI{}))

			body, err := os.ReadFile(target)
			require.NoError(t, err)
			assert.Contains(t, string(body), "Privacy Policy for My Shop")
			assert.Contains(t, string(body), "March 14, 2026")

			out.Reset()
			require.NoError(t, (&CheckCmd{File: target}).Run(g, &CLI{}))
			assert.Contains(t, out.String(), "Title: Privacy Policy for My Shop")
			assert.Contains(t, out.String(), "1. Introduction")
			assert.Contains(t, out.String(), "No issues found")
		})
	}
}

func TestGenerate_DefaultFilename(t *testing.T) {
	dir := t.TempDir()
	settings := writeSample(t, dir)
	g, _ := newTestGlobal()
	t.Chdir(dir)

	require.NoError(t, (&GenerateCmd{Settings: settings}).Run(g, &CLI{}))
	_, err := os.Stat(filepath.Join(dir, "my-shop-privacy-policy.md"))
	require.NoError(t, err)
}

func TestGenerate_Stdout(t *testing.T) {
	settings := writeSample(t, t.TempDir())
	g, out := newTestGlobal()

	cmd := &GenerateCmd{Settings: settings, Output: stdoutTarget, Format: "txt"}
	require.NoError(t, cmd.Run(g, &CLI{}))
	assert.Contains(t, out.String(), "# Privacy Policy for My Shop")
}

func TestGenerate_ValidationFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("websiteName: Incomplete\n"), 0o600))
	g, _ := newTestGlobal()

	err := (&GenerateCmd{Settings: path, Output: stdoutTarget}).Run(g, &CLI{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Equal(t, 2, errors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestGenerate_UnsupportedFormat(t *testing.T) {
	settings := writeSample(t, t.TempDir())
	g, _ := newTestGlobal()

	err := (&GenerateCmd{Settings: settings, Output: stdoutTarget, Format: "pdf"}).Run(g, &CLI{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestCheck_ReportsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.md")
	doc := "# Privacy Policy for X\n\n## 1. Introduction\n\ntext\n\n## 3. Cookies\n\ntext\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	g, out := newTestGlobal()

	err := (&CheckCmd{File: path}).Run(g, &CLI{})
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.Contains(t, out.String(), "[gap]")
}

func TestCheck_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.md")
	doc := "# Privacy Policy for X\n\n## 1. Introduction\n\n## 2. Contact Us\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	g, out := newTestGlobal()

	require.NoError(t, (&CheckCmd{File: path, JSON: true}).Run(g, &CLI{}))
	var report outline.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "Privacy Policy for X", report.Title)
	assert.Len(t, report.Sections(), 2)
}

func TestCLI_Parse(t *testing.T) {
	cli := &CLI{}
	g, _ := newTestGlobal()
	parser, err := kong.New(cli, kong.Name("policygen"), kong.Vars{"version": "test"}, kong.Bind(g), kong.Exit(func(int) {}))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"-v", "generate", "-s", "policy.yaml", "-f", "txt", "--date", "2026-01-02", "--watch"})
	require.NoError(t, err)
	assert.Equal(t, "generate", ctx.Command())
	assert.True(t, cli.Verbose)
	assert.True(t, cli.Generate.Watch)
	assert.Equal(t, "txt", cli.Generate.Format)
	assert.Equal(t, "2026-01-02", cli.Generate.Date)
	assert.NotNil(t, g.Logger)

	ctx, err = parser.Parse([]string{"check", "policy.html", "--json"})
	require.NoError(t, err)
	assert.Equal(t, "check <file>", ctx.Command())
	assert.True(t, cli.Check.JSON)
}

func TestBuildStack_ServesAndStops(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Address = "127.0.0.1:0"
	cfg.Admin.Enabled = false
	cfg.History.Enabled = true
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := BuildStack(cfg, logger)
	require.NoError(t, err)
	assert.True(t, st.Service.HistoryEnabled())

	ctx := context.Background()
	require.NoError(t, st.Orchestrator.StartAll(ctx))

	resp, err := http.Get("http://" + st.Server.Addr("api") + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	components, ok := health["components"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "healthy", components[componentHistory])
	assert.Equal(t, "healthy", components[componentPruner])

	require.NoError(t, st.Orchestrator.StopAll(ctx))
	assert.False(t, st.Server.IsRunning())
}

func TestBuildStack_EventsUnreachable(t *testing.T) {
	cfg := config.Default()
	cfg.Events.Enabled = true
	cfg.Events.URL = "nats://127.0.0.1:1"
	cfg.History.Enabled = true
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	_, err := BuildStack(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryMessaging))
}
