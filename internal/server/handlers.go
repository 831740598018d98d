package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"hrbridge/internal/analyze"
	"hrbridge/internal/gen"
	"hrbridge/internal/mapping"
	"hrbridge/internal/plan"
	"hrbridge/internal/store"
	"hrbridge/internal/transform"
)

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body map[string]string `json:"body"`
	}, error) {
		return &struct {
			Body map[string]string `json:"body"`
		}{Body: map[string]string{"status": "ok"}}, nil
	})
}

func (a *api) registerMappings(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "suggest-mappings",
		Method:      http.MethodPost,
		Path:        "/mappings/suggest",
		Summary:     "Suggest mappings between two schemas",
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusServiceUnavailable},
	}, func(ctx context.Context, input *struct {
		Body SuggestRequest `json:"body"`
	}) (*struct {
		Body SuggestResponse `json:"body"`
	}, error) {
		req, err := a.planRequest(&input.Body)
		if err != nil {
			return nil, err
		}

		if err := a.sem.Acquire(ctx, 1); err != nil {
			return nil, newAPIError(http.StatusServiceUnavailable, "", "request cancelled while waiting for a generation slot", nil)
		}
		defer a.sem.Release(1)

		p, err := a.cfg.Resolver.Resolve(ctx, req)
		if err != nil {
			return nil, handleError(err)
		}

		return &struct {
			Body SuggestResponse `json:"body"`
		}{Body: suggestResponse(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "preview-transformation",
		Method:      http.MethodPost,
		Path:        "/mappings/preview",
		Summary:     "Run a value through a chain of transformations",
	}, func(ctx context.Context, input *struct {
		Body PreviewRequest `json:"body"`
	}) (*struct {
		Body transform.Preview `json:"body"`
	}, error) {
		return &struct {
			Body transform.Preview `json:"body"`
		}{Body: a.cfg.Engine.Preview(input.Body.Value, input.Body.Transformations...)}, nil
	})
}

// planRequest resolves catalog ids and inline schemas into a resolver
// request.
func (a *api) planRequest(in *SuggestRequest) (plan.Request, error) {
	var req plan.Request

	switch {
	case in.SourceID != "":
		if a.cfg.Patterns == nil {
			return req, newAPIError(http.StatusBadRequest, "", "no pattern catalog configured, send sourceSchema", nil)
		}

		src, err := a.cfg.Patterns.Get(in.SourceID)
		if err != nil {
			return req, handleError(err)
		}

		req.Source, req.SourceSample, req.Rules = src.Schema, src.SamplePayload, src.Rules
	case in.SourceSchema != nil:
		s, err := analyze.FromValue(in.SourceSchema)
		if err != nil {
			return req, newAPIError(http.StatusBadRequest, "", "sourceSchema: "+err.Error(), nil)
		}

		req.Source = s
	default:
		return req, newAPIError(http.StatusBadRequest, "", "sourceId or sourceSchema is required",
			map[string]any{"field": "sourceSchema"})
	}

	switch {
	case in.DestinationID != "":
		if a.cfg.Patterns == nil {
			return req, newAPIError(http.StatusBadRequest, "", "no pattern catalog configured, send destinationSchema", nil)
		}

		dst, err := a.cfg.Patterns.Destination(in.DestinationID)
		if err != nil {
			return req, handleError(err)
		}

		req.Destination = dst.Schema
	case in.DestinationSchema != nil:
		s, err := analyze.FromValue(in.DestinationSchema)
		if err != nil {
			return req, newAPIError(http.StatusBadRequest, "", "destinationSchema: "+err.Error(), nil)
		}

		req.Destination = s
	default:
		return req, newAPIError(http.StatusBadRequest, "", "destinationId or destinationSchema is required",
			map[string]any{"field": "destinationSchema"})
	}

	if in.SourceSample != nil {
		req.SourceSample = in.SourceSample
	}

	if in.SemanticRules != nil {
		req.Rules = *in.SemanticRules
	}

	for i, m := range in.Pinned {
		if m.ID == "" {
			in.Pinned[i].ID = mapping.ID(m.SourceField.Path, m.TargetPath)
		}
	}

	req.Pinned = in.Pinned

	return req, nil
}

func (a *api) registerIntegrations(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "compile-integration",
		Method:      http.MethodPost,
		Path:        "/integrations/compile",
		Summary:     "Compile mappings into an integration artifact",
		Errors:      []int{http.StatusBadRequest},
	}, func(ctx context.Context, input *struct {
		Save bool                   `query:"save" doc:"Record the artifact in the integration history"`
		Body gen.IntegrationRequest `json:"body"`
	}) (*struct {
		Body CompileResponse `json:"body"`
	}, error) {
		if input.Save && a.cfg.Store == nil {
			return nil, newAPIError(http.StatusBadRequest, "", "integration history is not configured", nil)
		}

		artifact, err := a.cfg.Compiler.Compile(input.Body)
		if err != nil {
			return nil, handleError(err)
		}

		resp := CompileResponse{Artifact: artifact}

		if input.Save {
			rec, err := a.cfg.Store.SaveIntegration(ctx, input.Body, artifact)
			if err != nil {
				a.log.Error("saving integration failed", zap.Error(err))
				return nil, handleError(err)
			}

			resp.ID = rec.ID
		}

		return &struct {
			Body CompileResponse `json:"body"`
		}{Body: resp}, nil
	})

	if a.cfg.Store == nil {
		return
	}

	huma.Register(api, huma.Operation{
		OperationID: "get-integration",
		Method:      http.MethodGet,
		Path:        "/integrations/{id}",
		Summary:     "Fetch a stored integration",
		Errors:      []int{http.StatusNotFound},
	}, func(ctx context.Context, input *struct {
		ID string `path:"id"`
	}) (*struct {
		Body *store.Integration `json:"body"`
	}, error) {
		rec, err := a.cfg.Store.GetIntegration(ctx, input.ID)
		if err != nil {
			return nil, handleError(err)
		}

		return &struct {
			Body *store.Integration `json:"body"`
		}{Body: rec}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-integrations",
		Method:      http.MethodGet,
		Path:        "/integrations",
		Summary:     "List stored integrations, newest first",
	}, func(ctx context.Context, input *struct {
		Limit int `query:"limit" minimum:"0" default:"50"`
	}) (*struct {
		Body ListResponse `json:"body"`
	}, error) {
		list, err := a.cfg.Store.ListIntegrations(ctx, input.Limit)
		if err != nil {
			return nil, handleError(err)
		}

		return &struct {
			Body ListResponse `json:"body"`
		}{Body: ListResponse{Integrations: list}}, nil
	})
}
