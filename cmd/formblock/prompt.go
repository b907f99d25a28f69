package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formblock/internal/prompt"
	"github.com/goliatone/go-formblock/pkg/block"
)

func newPromptCmd(state *app) *cobra.Command {
	var (
		fragmentPath string
		instanceID   string
		dataPath     string
		valuesOut    string
		output       string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Ask for a block's values interactively and print the decorated fragment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fragment, err := readFragment(fragmentPath)
			if err != nil {
				return err
			}
			instanceID = strings.TrimSpace(instanceID)
			if instanceID == "" {
				return errors.New("--id is required")
			}

			defaults, err := storedDefaults(dataPath, instanceID, state.cfg.IDKey)
			if err != nil {
				return err
			}

			dec := state.decorator()
			fields, err := dec.Inspect(fragment)
			if err != nil {
				return err
			}
			values, err := prompt.Collect(cmd.Context(), state.driver, fields, defaults)
			if err != nil {
				return err
			}

			record := block.NewRecord(instanceID, values)
			if valuesOut != "" {
				if err := writeValues(valuesOut, state.cfg.IDKey, record); err != nil {
					return err
				}
				state.logger.Info("values written", zap.String("path", valuesOut))
			}

			markup, err := dec.Decorate(fragment, record)
			if err != nil {
				return err
			}
			return state.writeOutput(cmd, output, markup)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&fragmentPath, "fragment", "", "form fragment file (- for stdin)")
	flags.StringVar(&instanceID, "id", "", "instance id of the block being edited")
	flags.StringVar(&dataPath, "data", "", "data file whose matching block pre-fills the prompts")
	flags.StringVar(&valuesOut, "values-out", "", "write the answers as a one-block YAML data file")
	flags.StringVarP(&output, "output", "o", "", "write the result to this file instead of stdout")
	flags.Bool("pretty", false, "indent the rendered markup")
	flags.Bool("strip-markup", false, "strip HTML tags from stored values before writing them")
	return cmd
}

func storedDefaults(path, instanceID, idKey string) (map[string]any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	records, err := block.LoadFile(path, block.WithIDKey(idKey))
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if record.ID() == instanceID {
			return record.Values(), nil
		}
	}
	return nil, nil
}

func writeValues(path, idKey string, record block.Record) error {
	entry := make(map[string]any, len(record.Values())+1)
	for key, value := range record.Values() {
		entry[key] = value
	}
	entry[idKey] = record.ID()

	data, err := yaml.Marshal([]map[string]any{entry})
	if err != nil {
		return fmt.Errorf("encode values: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write values: %w", err)
	}
	return nil
}
