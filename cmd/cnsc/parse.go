package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"expertap/internal/parser"
	"expertap/internal/textenc"
)

func newParseCmd() *cobra.Command {
	var (
		format         string
		withSections   bool
		legacyEncoding string
	)

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse decision files and print their metadata",
		Long: `Parse one or more decision text files without touching the database.
The file name is decoded as a bulletin filename when it follows the
BO{year}_{number}_{codes}[_CPV_{code}]_{A|R|X}.txt convention. Use "-" to read stdin.

Examples:
  cnsc parse BO2025_3855_R2_CPV_55520000-1_A.txt
  cnsc parse --format yaml --sections data/*.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q (json or yaml)", format)
			}

			p := parser.New()
			results := make([]*parser.ParsedDecision, 0, len(args))
			for _, path := range args {
				d, err := parseFile(cmd.InOrStdin(), p, path, legacyEncoding)
				if err != nil {
					return err
				}
				results = append(results, d)
			}
			return writeParsed(cmd.OutOrStdout(), results, format, withSections)
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&withSections, "sections", false, "include section texts in the output")
	cmd.Flags().StringVar(&legacyEncoding, "legacy-encoding", "latin-1", "charset for files that are not valid UTF-8")
	return cmd
}

func parseFile(stdin io.Reader, p *parser.Parser, path, legacy string) (*parser.ParsedDecision, error) {
	var (
		raw      []byte
		err      error
		filename string
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
		filename = filepath.Base(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	text, err := textenc.Decode(raw, legacy)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	d, err := p.Parse(text, filename)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return d, nil
}

// parseOutput adds the derived labels to a parse result.
type parseOutput struct {
	parser.ParsedDecision `yaml:",inline"`
	ExternalID string `json:"external_id" yaml:"external_id"`
	Title      string `json:"title" yaml:"title"`
}

// writeParsed prints one document per result. JSON output is a single object
// for one file and an array otherwise; YAML output is a multi-document stream.
// Without withSections the section texts are blanked.
func writeParsed(w io.Writer, results []*parser.ParsedDecision, format string, withSections bool) error {
	out := make([]parseOutput, len(results))
	for i, d := range results {
		cp := *d
		if !withSections {
			cp.Sections = make([]parser.DecisionSection, len(d.Sections))
			for j, s := range d.Sections {
				s.Text = ""
				cp.Sections[j] = s
			}
		}
		out[i] = parseOutput{ParsedDecision: cp, ExternalID: d.ExternalID(), Title: d.Title()}
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, o := range out {
			if err := enc.Encode(o); err != nil {
				return err
			}
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if len(out) == 1 {
		return enc.Encode(out[0])
	}
	return enc.Encode(out)
}
