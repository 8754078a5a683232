package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/glyco-ml/glyco/pkg/api/types/models"
)

func (c *client) ListModels(ctx context.Context, ws Workspace) ([]models.Summary, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		c.apipath("resource-groups", ws.ResourceGroup, "workspaces", ws.Name, "models"),
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

	found := []models.Summary{}
	if err := unmarshalJsonResponse(
		resp, &found,
		MessageFor{
			Status4xx: fmt.Sprintf("cannot list models in workspace %s", ws.Name),
			Status5xx: "something wrong at the control plane",
		},
	); err != nil {
		return nil, err
	}
	return found, nil
}
