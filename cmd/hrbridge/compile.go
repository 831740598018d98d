package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"hrbridge/internal/gen"
	"hrbridge/internal/mapping"
	"hrbridge/internal/store"
)

type compileOptions struct {
	request  string
	mappings string
	payload  string
	email    string
	endpoint string
	name     string
	out      string
	save     bool
}

func compileCmd() *cobra.Command {
	var opts compileOptions

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile mappings into an integration artifact",
		Long: `Compile reads an integration request, either as one document (--request)
or assembled from a mapping file, a sample payload and flags, and writes
integration.json plus one script per transformed field to --out.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := opts.integrationRequest()
			if err != nil {
				return err
			}

			artifact, err := newCompiler().Compile(req)
			if err != nil {
				return err
			}

			files, err := artifact.Files()
			if err != nil {
				return err
			}

			if err := gen.WriteFiles(files, opts.out); err != nil {
				return err
			}

			if opts.save {
				hist, err := store.Open(cfg.Store.Path)
				if err != nil {
					return err
				}
				defer hist.Close()

				rec, err := hist.SaveIntegration(cmd.Context(), req, artifact)
				if err != nil {
					return err
				}

				fmt.Printf("saved integration %s\n", rec.ID)
			}

			if v.GetBool("json") {
				return printJSON(artifact)
			}

			renderArtifact(artifact, opts.out)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.request, "request", "r", "", "integration request file (YAML or JSON)")
	f.StringVarP(&opts.mappings, "mappings", "m", "", "mapping file")
	f.StringVar(&opts.payload, "payload", "", "source sample payload file")
	f.StringVar(&opts.email, "email", "", "customer email")
	f.StringVar(&opts.endpoint, "endpoint", "", "destination endpoint URL")
	f.StringVar(&opts.name, "name", "", "integration name")
	f.StringVarP(&opts.out, "out", "o", "./build", "output directory")
	f.BoolVar(&opts.save, "save", false, "record the artifact in the integration history")

	return cmd
}

// integrationRequest builds the request; flags override the document.
func (o *compileOptions) integrationRequest() (gen.IntegrationRequest, error) {
	var req gen.IntegrationRequest

	if o.request != "" {
		if err := readDocument(o.request, &req); err != nil {
			return req, err
		}
	}

	if o.mappings != "" {
		file, err := mapping.LoadFile(o.mappings)
		if err != nil {
			return req, err
		}

		req.Mappings = file.Mappings
	}

	if o.payload != "" {
		if err := readDocument(o.payload, &req.SourcePayload); err != nil {
			return req, err
		}
	}

	if o.request == "" && o.mappings == "" {
		return req, errors.New("one of --request or --mappings is required")
	}

	if o.email != "" {
		req.CustomerEmail = o.email
	}

	if o.endpoint != "" {
		req.DestinationEndpoint = o.endpoint
	}

	if o.name != "" {
		req.Name = o.name
	}

	return req, nil
}

func renderArtifact(a *gen.Artifact, dir string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle(a.Name)
	tw.AppendHeader(table.Row{"Task", "Kind", "Name", "Next"})

	for _, n := range a.Nodes {
		var next []string
		for _, t := range n.NextTasks {
			next = append(next, t.ID)
		}

		tw.AppendRow(table.Row{n.ID, n.Kind, n.Name, fmt.Sprint(next)})
	}

	tw.Render()

	fmt.Printf("wrote %s and %d scripts to %s\n", gen.ArtifactFilename, len(a.Snippets), dir)

	renderDiagnostics(a.Diagnostics)
}
