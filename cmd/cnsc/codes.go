package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"expertap/internal/parser"
)

func newCodesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List the criticism code registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeCodes(cmd.OutOrStdout(), parser.Codes(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json or yaml")
	return cmd
}

func writeCodes(w io.Writer, codes []parser.CodeInfo, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(codes)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(codes)
	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CODE\tTYPE\tDESCRIPTION")
		for _, c := range codes {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Code, c.ContestType, c.Description)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported format %q (table, json or yaml)", format)
	}
}
