package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"hrbridge/internal/transform"
)

func previewCmd() *cobra.Command {
	var specs []string

	cmd := &cobra.Command{
		Use:   "preview <value>",
		Short: "Run a value through a chain of transformations",
		Example: `  hrbridge preview "+5511999998888" --spec '{"type":"phone_split","operation":"extract_area_code"}'
  hrbridge preview "José" --spec '{"type":"normalize","operation":"remove_accents"}' --spec '{"type":"normalize","operation":"upper_case"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			chain := make([]transform.Spec, 0, len(specs))

			for _, raw := range specs {
				var s transform.Spec
				if err := json.Unmarshal([]byte(raw), &s); err != nil {
					return fmt.Errorf("invalid --spec %s: %w", raw, err)
				}

				if !s.Kind().IsKnown() {
					log.Sugar().Warnf("unsupported transformation %q, value passes through", s.Type)
				}

				chain = append(chain, s)
			}

			p := newEngine().Preview(parseValue(args[0]), chain...)

			if v.GetBool("json") {
				return printJSON(p)
			}

			fmt.Printf("%s -> %s\n", p.Input, p.Output)

			return nil
		},
	}

	cmd.Flags().StringArrayVar(&specs, "spec", nil, "transformation as JSON, repeatable; applied in order")

	return cmd
}

// parseValue reads JSON literals (numbers, booleans, arrays) and falls back
// to the raw string.
func parseValue(raw string) any {
	var out any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return raw
	}

	return out
}
