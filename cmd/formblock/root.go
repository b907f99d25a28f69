package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yosssi/gohtml"
	"go.uber.org/zap"

	"github.com/goliatone/go-formblock/internal/config"
	"github.com/goliatone/go-formblock/internal/observability"
	"github.com/goliatone/go-formblock/internal/prompt"
	"github.com/goliatone/go-formblock/pkg/decorator"
	"github.com/goliatone/go-formblock/pkg/sanitize"
)

// flag name -> config key
var flagBindings = map[string]string{
	"skip_markers":  "skip-marker",
	"wrapper":       "wrapper",
	"separator":     "separator",
	"strip_markup":  "strip-markup",
	"pretty":        "pretty",
	"id_key":        "id-key",
	"logger.level":  "log-level",
	"logger.format": "log-format",
	"logger.file":   "log-file",
}

type app struct {
	cfg    config.Config
	logger *zap.Logger
	driver prompt.Driver
}

func newRootCmd() *cobra.Command {
	driver := prompt.NewSurveyDriver(survey.WithStdio(os.Stdin, os.Stderr, os.Stderr))
	return newCommand(&app{logger: zap.NewNop(), driver: driver})
}

func newCommand(state *app) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "formblock",
		Short:         "Repeat a form fragment once per stored block",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.New(), cfgFile, cmd.Flags(), flagBindings)
			if err != nil {
				return err
			}
			state.cfg = cfg
			state.logger = observability.New(cfg.Logger, cmd.ErrOrStderr())
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = state.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	flags.StringSlice("skip-marker", nil, "id substrings of controls owned by other widgets (repeatable)")
	flags.String("id-key", "", "key holding each block's instance id in the data file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")
	flags.String("log-file", "", "also write JSON logs to this rotating file")

	root.AddCommand(newRenderCmd(state), newFieldsCmd(state), newPromptCmd(state))
	return root
}

func (a *app) decorator() *decorator.Decorator {
	options := []decorator.Option{
		decorator.WithSkipMarkers(a.cfg.SkipMarkers...),
		decorator.WithLogger(a.logger),
	}
	if a.cfg.StripMarkup {
		options = append(options, decorator.WithValueFilter(sanitize.StripMarkup))
	}
	return decorator.New(options...)
}

func readFragment(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("--fragment is required")
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read fragment %s: %w", path, err)
	}
	return string(data), nil
}

func (a *app) writeOutput(cmd *cobra.Command, output, markup string) error {
	if a.cfg.Pretty {
		markup = gohtml.Format(markup)
	}
	if output == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), markup)
		return err
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(output, []byte(markup), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info("output written", zap.String("path", output))
	return nil
}
