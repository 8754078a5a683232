package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/glyco-ml/glyco/pkg/api/types/resources"
)

func (c *client) ApplyResources(ctx context.Context, defs []resources.Definition) ([]resources.Detail, error) {
	body, err := json.Marshal(defs)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.apipath("resources"), bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.authorize(req); err != nil {
		return nil, err
	}

	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	applied := []resources.Detail{}
	if err := unmarshalJsonResponse(
		resp, &applied,
		MessageFor{
			Status4xx: "the control plane rejected the resource definitions",
			Status5xx: "something wrong at the control plane",
		},
	); err != nil {
		return nil, err
	}
	return applied, nil
}
