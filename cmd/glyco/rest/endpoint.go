package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	cerr "github.com/glyco-ml/glyco/cmd/glyco/errors"
	"github.com/glyco-ml/glyco/pkg/api/types/endpoints"
	"github.com/glyco-ml/glyco/pkg/api/types/inference"
)

func (c *client) ListEndpoints(ctx context.Context, ws Workspace) ([]endpoints.Summary, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		c.apipath("resource-groups", ws.ResourceGroup, "workspaces", ws.Name, "endpoints"),
		nil,
	)
	if err != nil {
		return nil, err
	}
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	found := []endpoints.Summary{}
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot list endpoints in workspace %s", ws.Name),
			Status5xx: "something wrong at the control plane",
		},
	); err != nil {
		return nil, err
	}
	return found, nil
}

func (c *client) GetEndpoint(ctx context.Context, ws Workspace, name string) (endpoints.Detail, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		c.apipath("resource-groups", ws.ResourceGroup, "workspaces", ws.Name, "endpoints", name),
		nil,
	)
	if err != nil {
		return endpoints.Detail{}, err
	}
	if err := c.authorize(req); err != nil {
		return endpoints.Detail{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return endpoints.Detail{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return endpoints.Detail{}, endpointNotFound(name, ws)
	}

	detail := endpoints.Detail{}
	if err := unmarshalJsonResponse(
		resp, &detail,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot get endpoint %s", name),
			Status5xx: "something wrong at the control plane",
		},
	); err != nil {
		return endpoints.Detail{}, err
	}
	return detail, nil
}

func (c *client) Score(
	ctx context.Context, ws Workspace, endpoint string, sreq inference.ScoreRequest,
) (inference.ScoreResponse, error) {
	body, err := json.Marshal(sreq)
	if err != nil {
		return inference.ScoreResponse{}, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.apipath("resource-groups", ws.ResourceGroup, "workspaces", ws.Name, "endpoints", endpoint, "score"),
		bytes.NewReader(body),
	)
	if err != nil {
		return inference.ScoreResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.authorize(req); err != nil {
		return inference.ScoreResponse{}, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return inference.ScoreResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return inference.ScoreResponse{}, endpointNotFound(endpoint, ws)
	}

	sresp := inference.ScoreResponse{}
	if err := unmarshalJsonResponse(
		resp, &sresp,
		MessageFor{
			Status4xx: fmt.Sprintf("endpoint %s rejected the request", endpoint),
			Status5xx: fmt.Sprintf("endpoint %s failed while scoring", endpoint),
		},
	); err != nil {
		return inference.ScoreResponse{}, err
	}
	return sresp, nil
}

// endpointNotFound explains a remote 404 in terms the user can act on
// rather than surfacing a bare status code.
func endpointNotFound(name string, ws Workspace) error {
	return cerr.NewCuiError(
		fmt.Sprintf("endpoint %s is not found in workspace %s", name, ws.Name),
		cerr.WithAdvice(
			fmt.Sprintf(
				"check the endpoint name and whether its deployment has completed: `glyco endpoint list --resource-group %s --workspace-name %s`",
				ws.ResourceGroup, ws.Name,
			),
		),
	)
}
