package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"hrbridge/internal/analyze"
	"hrbridge/internal/diagnostic"
	"hrbridge/internal/mapping"
	"hrbridge/internal/plan"
)

type suggestOptions struct {
	sourceID      string
	sourceSchema  string
	sourceSample  string
	destinationID string
	destSchema    string
	rules         string
	pinned        string
	out           string
}

func suggestCmd() *cobra.Command {
	var opts suggestOptions

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest mappings from a source schema to a destination schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := opts.request()
			if err != nil {
				return err
			}

			resolver, err := newResolver(cmd.Context())
			if err != nil {
				return err
			}

			p, err := resolver.Resolve(cmd.Context(), req)
			if err != nil {
				return err
			}

			if opts.out != "" {
				file := &mapping.File{Version: mapping.CurrentVersion, Source: opts.sourceID, Mappings: p.Mappings}
				if err := mapping.WriteFile(file, opts.out); err != nil {
					return err
				}
			}

			if v.GetBool("json") {
				return printJSON(p)
			}

			renderPlan(p)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.sourceID, "source", "", "source system id from the pattern catalog")
	f.StringVar(&opts.sourceSchema, "source-schema", "", "source schema or sample payload file")
	f.StringVar(&opts.sourceSample, "source-sample", "", "source sample payload file")
	f.StringVar(&opts.destinationID, "destination", "", "destination system id from the pattern catalog")
	f.StringVar(&opts.destSchema, "dest-schema", "", "destination schema or sample payload file")
	f.StringVar(&opts.rules, "rules", "", "semantic rules file")
	f.StringVar(&opts.pinned, "pinned", "", "mapping file whose entries are kept verbatim")
	f.StringVarP(&opts.out, "out", "o", "", "write the suggested mappings to this file (.yaml or .json)")

	return cmd
}

func (o *suggestOptions) request() (plan.Request, error) {
	var req plan.Request

	cat, err := loadPatterns()
	if err != nil {
		return req, err
	}

	switch {
	case o.sourceID != "":
		if cat == nil {
			return req, errors.New("--source needs a pattern catalog (--patterns)")
		}

		src, err := cat.Get(o.sourceID)
		if err != nil {
			return req, err
		}

		req.Source, req.SourceSample, req.Rules = src.Schema, src.SamplePayload, src.Rules
	case o.sourceSchema != "":
		if req.Source, err = analyze.LoadFile(o.sourceSchema); err != nil {
			return req, err
		}
	default:
		return req, errors.New("one of --source or --source-schema is required")
	}

	switch {
	case o.destinationID != "":
		if cat == nil {
			return req, errors.New("--destination needs a pattern catalog (--patterns)")
		}

		dst, err := cat.Destination(o.destinationID)
		if err != nil {
			return req, err
		}

		req.Destination = dst.Schema
	case o.destSchema != "":
		if req.Destination, err = analyze.LoadFile(o.destSchema); err != nil {
			return req, err
		}
	default:
		return req, errors.New("one of --destination or --dest-schema is required")
	}

	if o.sourceSample != "" {
		var sample map[string]any
		if err := readDocument(o.sourceSample, &sample); err != nil {
			return req, err
		}

		req.SourceSample = sample
	}

	if o.rules != "" {
		if err := readDocument(o.rules, &req.Rules); err != nil {
			return req, err
		}
	}

	if o.pinned != "" {
		file, err := mapping.LoadFile(o.pinned)
		if err != nil {
			return req, err
		}

		req.Pinned = file.Mappings
	}

	return req, nil
}

func renderPlan(p *plan.Plan) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Source", "Target", "Confidence", "Transformation", "Reasoning"})

	for _, m := range p.Mappings {
		tw.AppendRow(table.Row{m.SourceField.Path, m.TargetPath, confidence(m), transformation(m), m.Reasoning})
	}

	tw.AppendFooter(table.Row{"", "", "", "mapped by", p.Source})
	tw.Render()

	fmt.Printf("coverage: %.0f%%\n", p.Coverage()*100)

	if len(p.UnmappedTargets) > 0 {
		fmt.Printf("unmapped: %s\n", strings.Join(p.UnmappedTargets, ", "))
	}

	renderDiagnostics(p.Diagnostics)
}

func confidence(m mapping.Mapping) string {
	if m.Confidence == nil {
		return "-"
	}

	return fmt.Sprintf("%.2f", *m.Confidence)
}

func transformation(m mapping.Mapping) string {
	if m.Transformation == nil {
		return "direct"
	}

	t := m.Transformation
	label := t.Type

	for _, param := range []string{t.Operation, t.Pattern, t.OutputFormat} {
		if param != "" {
			label += "(" + param + ")"
			break
		}
	}

	if t.Preview != nil {
		label += fmt.Sprintf(" %q -> %q", t.Preview.Input, t.Preview.Output)
	}

	return label
}

func renderDiagnostics(d diagnostic.Diagnostics) {
	all := d.All()
	if len(all) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stderr)
	tw.AppendHeader(table.Row{"Severity", "Code", "Message", "Source", "Target"})

	for _, diag := range all {
		tw.AppendRow(table.Row{diag.Severity, diag.Code, diag.Message, diag.SourcePath, diag.TargetPath})
	}

	tw.Render()
}
