package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	gprof "github.com/glyco-ml/glyco/cmd/glyco/config/profiles"
	"github.com/glyco-ml/glyco/pkg/api/types/endpoints"
	"github.com/glyco-ml/glyco/pkg/api/types/inference"
	"github.com/glyco-ml/glyco/pkg/api/types/models"
	"github.com/glyco-ml/glyco/pkg/api/types/resources"
	"github.com/glyco-ml/glyco/pkg/utils/slices"
)

// ErrTokenExpired is returned when the profile's bearer token is past
// its expiry. Detected locally, before the request leaves the host.
var ErrTokenExpired = errors.New("session token is expired")

// Workspace identifies the workspace that scoped operations act on.
type Workspace struct {
	ResourceGroup string
	Name          string
}

type GlycoClient interface {
	// ListEndpoints lists online endpoints in the workspace.
	ListEndpoints(ctx context.Context, ws Workspace) ([]endpoints.Summary, error)

	// GetEndpoint gets the detail of one online endpoint.
	GetEndpoint(ctx context.Context, ws Workspace, name string) (endpoints.Detail, error)

	// Score sends rows to an online endpoint and returns its predictions.
	Score(ctx context.Context, ws Workspace, endpoint string, req inference.ScoreRequest) (inference.ScoreResponse, error)

	// ListModels lists models registered in the workspace.
	ListModels(ctx context.Context, ws Workspace) ([]models.Summary, error)

	// ApplyResources submits declarative resource definitions and
	// returns the provisioning state per resource.
	ApplyResources(ctx context.Context, defs []resources.Definition) ([]resources.Detail, error)
}

type client struct {
	httpclient *http.Client
	api        string
	token      string
}

// create new glyco client for GlycoProfile
//
// # Args
//
// - *gprof.GlycoProfile
//
// # Return
//
// - GlycoClient: created client
//
// - error: If given profile is invalid, ErrProfileInvalid is returned.
func NewClient(prof *gprof.GlycoProfile) (GlycoClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}
	httpclient := new(http.Client)

	if prof.Cert.CA != "" {
		hc, err := trustCa(httpclient, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		httpclient = hc
	}

	c := &client{
		httpclient: httpclient,
		api:        strings.TrimSuffix(prof.ApiRoot, "/"),
		token:      prof.Token,
	}

	return c, nil
}

// build URL with path
func (c *client) apipath(path ...string) string {
	path = slices.Map(path, func(p string) string {
		return strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
	})

	return strings.Join(append([]string{c.api}, path...), "/")
}

// authorize puts the bearer token on the request.
//
// When the token carries an exp claim already in the past, the request
// is refused locally with ErrTokenExpired.
func (c *client) authorize(req *http.Request) error {
	if c.token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, claims); err == nil {
		exp, err := claims.GetExpirationTime()
		if err == nil && exp != nil && exp.Before(time.Now()) {
			return fmt.Errorf(
				"%w: get a fresh profile from your admin and run `glyco init` again",
				ErrTokenExpired,
			)
		}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	return nil
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
