package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/policygen/internal/config"
	"git.home.luguber.info/inful/policygen/internal/render"
)

// Global is bound into every command's Run method.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (built-in defaults when unset)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Render a privacy policy from a settings file"`
	Serve    ServeCmd    `cmd:"" help:"Run the HTTP API"`
	Init     InitCmd     `cmd:"" help:"Write a sample settings file"`
	Check    CheckCmd    `cmd:"" help:"Report the outline of a generated policy and check its numbering"`
}

// AfterApply runs after flag parsing and installs a bootstrap logger. Commands
// that load the configuration replace it with the configured one.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}
	if g.Stderr == nil {
		g.Stderr = os.Stderr
	}
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(g.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig reads --config, falling back to defaults, and switches the
// global logger to the configured handler.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(root.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = cfg.Logging.NewLogger(g.Stderr, root.Verbose)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

func newRenderer(cfg *config.Config) *render.Renderer {
	return render.New(render.Options{
		ProductName:    cfg.Branding.ProductName,
		FooterText:     cfg.Branding.FooterText,
		MarkdownHeader: cfg.Branding.MarkdownHeader,
	})
}
