package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zero-day-ai/graphchat/internal/schema"
	"gopkg.in/yaml.v3"
)

// Schema output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func newSchemaCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Discover and print the graph schema",
		Long: `Run schema discovery and print the result.

The text format is exactly what the model sees in its system message.
The json and yaml formats are structured dumps of the same data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatText, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unsupported format %q (must be one of: text, json, yaml)", format)
			}

			rt, err := a.start(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer rt.close()

			return writeSchema(cmd.OutOrStdout(), rt.schema, rt.rendered, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format (text|json|yaml)")
	return cmd
}

func writeSchema(w io.Writer, s *schema.GraphSchema, rendered, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Document())
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s.Document()); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, rendered)
		return err
	}
}
