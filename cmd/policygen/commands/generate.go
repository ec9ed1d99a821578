package commands

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/logfields"
	"git.home.luguber.info/inful/policygen/internal/render"
	"git.home.luguber.info/inful/policygen/internal/service"
	"git.home.luguber.info/inful/policygen/internal/validation"
	"git.home.luguber.info/inful/policygen/internal/watch"
)

// stdoutTarget selects standard output instead of a file.
const stdoutTarget = "-"

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Settings string `short:"s" required:"" help:"Settings file (YAML, or JSON with a .json extension)" type:"path"`
	Output   string `short:"o" help:"Output file, '-' for stdout; defaults to a name derived from the website name"`
	Format   string `short:"f" help:"Output format: md, txt or html (default: the settings file's format, else md)"`
	Date     string `help:"Effective date (YYYY-MM-DD); overrides the settings file"`
	Watch    bool   `short:"w" help:"Regenerate whenever the settings file changes"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	svc := service.New(service.Options{Renderer: newRenderer(cfg), Logger: g.Logger})
	gen := &generator{cmd: c, svc: svc, validator: validation.New(), global: g}

	if !c.Watch {
		_, err := gen.once(context.Background())
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return gen.watch(ctx)
}

type generator struct {
	cmd       *GenerateCmd
	svc       *service.PolicyService
	validator *validation.Validator
	global    *Global
}

// once renders the settings file and writes the result. It returns the path
// written, or stdoutTarget.
func (gen *generator) once(ctx context.Context) (string, error) {
	req, err := LoadSettings(gen.cmd.Settings)
	if err != nil {
		return "", err
	}
	if gen.cmd.Date != "" {
		req.EffectiveDate = gen.cmd.Date
	}
	if gen.cmd.Format != "" {
		req.Format = gen.cmd.Format
	}
	if err := gen.validator.Validate(req); err != nil {
		return "", err
	}

	f := render.FormatMarkdown
	if strings.TrimSpace(req.Format) != "" {
		if f, err = render.ParseFormat(req.Format); err != nil {
			return "", errors.ValidationError("unsupported format").WithContext("format", req.Format).Build()
		}
	}

	art, err := gen.svc.Render(ctx, req.Settings(), f)
	if err != nil {
		return "", err
	}

	target := gen.cmd.Output
	if target == "" {
		target = art.Filename
	}
	if target == stdoutTarget {
		if _, err := gen.global.Stdout.Write(art.Body); err != nil {
			return "", errors.WrapError(err, errors.CategoryFileSystem, "write policy to stdout").Build()
		}
		return target, nil
	}
	if err := os.WriteFile(target, art.Body, 0o644); err != nil { //nolint:gosec // generated policies are public documents
		return "", errors.WrapError(err, errors.CategoryFileSystem, "write policy file").
			WithContext("path", target).Build()
	}
	gen.global.Logger.Info("Policy written",
		logfields.File(target),
		logfields.Format(string(f)),
		logfields.Fingerprint(art.Fingerprint))
	return target, nil
}

// watch renders once, then again after every change to the settings file.
// Failures while watching are logged and do not stop the loop.
func (gen *generator) watch(ctx context.Context) error {
	if _, err := gen.once(ctx); err != nil {
		gen.global.Logger.Error("Generation failed", logfields.Error(err))
	}

	fw, err := watch.New(gen.cmd.Settings, 0, gen.global.Logger)
	if err != nil {
		return err
	}
	gen.global.Logger.Info("Watching settings file", logfields.File(fw.Path()))
	return fw.Run(ctx, func(ctx context.Context) {
		if _, err := gen.once(ctx); err != nil {
			gen.global.Logger.Error("Generation failed", logfields.Error(err))
		}
	})
}
