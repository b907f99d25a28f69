package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formblock"
	"github.com/goliatone/go-formblock/pkg/block"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/render/template/gotemplate"
)

func newRenderCmd(state *app) *cobra.Command {
	var (
		fragmentPath string
		dataPath     string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Decorate the fragment once per block of a data file",
		Example: `  formblock render --fragment form.html --data blocks.yaml
  formblock render --fragment form.html --data blocks.json --wrapper block.tpl --pretty`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fragment, err := readFragment(fragmentPath)
			if err != nil {
				return err
			}
			if strings.TrimSpace(dataPath) == "" {
				return errors.New("--data is required")
			}
			records, err := block.LoadFile(dataPath, block.WithIDKey(state.cfg.IDKey))
			if err != nil {
				return err
			}

			options := []render.Option{
				render.WithDecorator(state.decorator()),
				render.WithSeparator(state.cfg.Separator),
				render.WithLogger(state.logger),
			}
			if wrapper := strings.TrimSpace(state.cfg.Wrapper); wrapper != "" {
				engine, name, err := wrapperEngine(wrapper, state.cfg.Globals)
				if err != nil {
					return err
				}
				options = append(options, render.WithWrapper(engine, name))
			}

			markup, err := render.Blocks(cmd.Context(), fragment, records, options...)
			if err != nil {
				return err
			}
			state.logger.Info("blocks rendered",
				zap.String("fragment", fragmentPath),
				zap.String("data", dataPath),
				zap.Int("blocks", len(records)),
			)
			return state.writeOutput(cmd, output, markup)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&fragmentPath, "fragment", "", "form fragment file (- for stdin)")
	flags.StringVar(&dataPath, "data", "", "JSON or YAML file with the stored blocks")
	flags.StringVarP(&output, "output", "o", "", "write the result to this file instead of stdout")
	flags.String("wrapper", "", "template file wrapped around each decorated block (or a built-in: block, list-item)")
	flags.String("separator", "\n", "string placed between blocks")
	flags.Bool("pretty", false, "indent the rendered markup")
	flags.Bool("strip-markup", false, "strip HTML tags from stored values before writing them")
	return cmd
}

// wrapperEngine loads wrapper templates from the wrapper's own directory,
// falling back to the built-in templates ("block", "list-item"). globals
// come from the config file.
func wrapperEngine(path string, globals map[string]any) (*gotemplate.Engine, string, error) {
	options := []gotemplate.Option{
		gotemplate.WithBaseDir(filepath.Dir(path)),
		gotemplate.WithGlobalData(globals),
	}
	if ext := filepath.Ext(path); ext != "" {
		options = append(options, gotemplate.WithExtension(ext))
	}
	engine, err := formblock.NewTemplateEngine(options...)
	if err != nil {
		return nil, "", fmt.Errorf("wrapper %s: %w", path, err)
	}
	return engine, filepath.Base(path), nil
}
