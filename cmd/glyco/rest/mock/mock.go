package mock

import (
	"context"
	"testing"

	"github.com/glyco-ml/glyco/cmd/glyco/rest"
	"github.com/glyco-ml/glyco/pkg/api/types/endpoints"
	"github.com/glyco-ml/glyco/pkg/api/types/inference"
	"github.com/glyco-ml/glyco/pkg/api/types/models"
	"github.com/glyco-ml/glyco/pkg/api/types/resources"
)

type ScoreArgs struct {
	Workspace rest.Workspace
	Endpoint  string
	Request   inference.ScoreRequest
}

type GetEndpointArgs struct {
	Workspace rest.Workspace
	Name      string
}

func New(t *testing.T) *mockGlycoClient {
	return &mockGlycoClient{t: t}
}

type mockGlycoClient struct {
	t    *testing.T
	Impl struct {
		ListEndpoints  func(ctx context.Context, ws rest.Workspace) ([]endpoints.Summary, error)
		GetEndpoint    func(ctx context.Context, ws rest.Workspace, name string) (endpoints.Detail, error)
		Score          func(ctx context.Context, ws rest.Workspace, endpoint string, req inference.ScoreRequest) (inference.ScoreResponse, error)
		ListModels     func(ctx context.Context, ws rest.Workspace) ([]models.Summary, error)
		ApplyResources func(ctx context.Context, defs []resources.Definition) ([]resources.Detail, error)
	}
	Calls struct {
		ListEndpoints  []rest.Workspace
		GetEndpoint    []GetEndpointArgs
		Score          []ScoreArgs
		ListModels     []rest.Workspace
		ApplyResources [][]resources.Definition
	}
}

var _ rest.GlycoClient = &mockGlycoClient{}

func (m *mockGlycoClient) ListEndpoints(ctx context.Context, ws rest.Workspace) ([]endpoints.Summary, error) {
	m.Calls.ListEndpoints = append(m.Calls.ListEndpoints, ws)
	if m.Impl.ListEndpoints == nil {
		m.t.Fatal("ListEndpoints is not mocked")
	}
	return m.Impl.ListEndpoints(ctx, ws)
}

func (m *mockGlycoClient) GetEndpoint(ctx context.Context, ws rest.Workspace, name string) (endpoints.Detail, error) {
	m.Calls.GetEndpoint = append(m.Calls.GetEndpoint, GetEndpointArgs{Workspace: ws, Name: name})
	if m.Impl.GetEndpoint == nil {
		m.t.Fatal("GetEndpoint is not mocked")
	}
	return m.Impl.GetEndpoint(ctx, ws, name)
}

func (m *mockGlycoClient) Score(
	ctx context.Context, ws rest.Workspace, endpoint string, req inference.ScoreRequest,
) (inference.ScoreResponse, error) {
	m.Calls.Score = append(m.Calls.Score, ScoreArgs{Workspace: ws, Endpoint: endpoint, Request: req})
	if m.Impl.Score == nil {
		m.t.Fatal("Score is not mocked")
	}
	return m.Impl.Score(ctx, ws, endpoint, req)
}

func (m *mockGlycoClient) ListModels(ctx context.Context, ws rest.Workspace) ([]models.Summary, error) {
	m.Calls.ListModels = append(m.Calls.ListModels, ws)
	if m.Impl.ListModels == nil {
		m.t.Fatal("ListModels is not mocked")
	}
	return m.Impl.ListModels(ctx, ws)
}

func (m *mockGlycoClient) ApplyResources(ctx context.Context, defs []resources.Definition) ([]resources.Detail, error) {
	m.Calls.ApplyResources = append(m.Calls.ApplyResources, defs)
	if m.Impl.ApplyResources == nil {
		m.t.Fatal("ApplyResources is not mocked")
	}
	return m.Impl.ApplyResources(ctx, defs)
}
