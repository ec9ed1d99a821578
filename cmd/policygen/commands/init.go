package commands

import (
	"fmt"
	"io"
	"os"

	"git.home.luguber.info/inful/policygen/internal/config"
	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Output     string `short:"o" help:"Path of the sample settings file" default:"policy.yaml" type:"path"`
	ConfigFile string `name:"config-file" help:"Also write a sample service configuration to this path" type:"path"`
	Force      bool   `help:"Overwrite existing files"`
}

func (i *InitCmd) Run(g *Global, _ *CLI) error {
	return RunInit(g.Stdout, i.Output, i.ConfigFile, i.Force)
}

func RunInit(out io.Writer, settingsPath, configPath string, force bool) error {
	_, _ = fmt.Fprintf(out, "Writing sample settings to %s\n", settingsPath)
	if err := writeSampleSettings(settingsPath, force); err != nil {
		_, _ = fmt.Fprintln(out, "Initialization failed")
		return err
	}
	if configPath != "" {
		_, _ = fmt.Fprintf(out, "Writing configuration to %s\n", configPath)
		if err := config.WriteExample(configPath, force); err != nil {
			_, _ = fmt.Fprintln(out, "Initialization failed")
			return err
		}
	}
	_, _ = fmt.Fprintln(out, "Initialized successfully")
	return nil
}

func writeSampleSettings(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.FileSystemError("settings file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}
	if err := os.WriteFile(path, fmt.Appendf(nil, sampleSettings, path), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write settings file").
			WithContext("path", path).Build()
	}
	return nil
}
