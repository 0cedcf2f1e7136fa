package cdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Config controls how the client reaches a CDF project.
type Config struct {
	BaseURL      string
	Project      string
	Space        string
	ViewVersion  string
	RawDB        string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	// HTTPClient overrides the transport; OAuth is layered on top when credentials are set.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client lists data-model instances and RAW rows from CDF and maps them to
// league records.
type Client struct {
	baseURL    string
	project    string
	space      string
	version    string
	rawDB      string
	httpClient httpDoer
	logger     *slog.Logger
}

// NewClient constructs a CDF client. When client credentials are configured the
// HTTP client fetches and refreshes bearer tokens automatically.
func NewClient(cfg Config) *Client {
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{
			Timeout:   defaultHTTPTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	var doer httpDoer = base
	if cfg.TokenURL != "" && cfg.ClientID != "" {
		scopes := cfg.Scopes
		if len(scopes) == 0 {
			scopes = []string{strings.TrimRight(cfg.BaseURL, "/") + "/.default"}
		}
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       scopes,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		authed := cc.Client(ctx)
		authed.Timeout = base.Timeout
		doer = authed
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		project:    cfg.Project,
		space:      cfg.Space,
		version:    cfg.ViewVersion,
		rawDB:      cfg.RawDB,
		httpClient: doer,
		logger:     cfg.Logger,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// Project returns the CDF project the client reads from.
func (c *Client) Project() string { return c.project }

// Space returns the data-model space the client reads from.
func (c *Client) Space() string { return c.space }

// listInstances pages through nodes of a view until limit items are collected.
func (c *Client) listInstances(ctx context.Context, view, prefix string, limit int) ([]node, error) {
	endpoint := fmt.Sprintf("%s/api/v1/projects/%s/models/instances/list", c.baseURL, url.PathEscape(c.project))
	req := listInstancesRequest{
		InstanceType: "node",
		Sources: []sourceSelector{{Source: viewReference{
			Type:       "view",
			Space:      c.space,
			ExternalID: view,
			Version:    c.version,
		}}},
	}
	if prefix != "" {
		f := &prefixFilter{}
		f.Prefix.Property = []string{"node", "externalId"}
		f.Prefix.Value = prefix
		req.Filter = f
	}

	nodes := make([]node, 0)
	for len(nodes) < limit {
		req.Limit = min(limit-len(nodes), maxPageSize)

		var page listInstancesResponse
		if err := c.do(ctx, http.MethodPost, endpoint, req, &page); err != nil {
			return nil, fmt.Errorf("list %s instances: %w", view, err)
		}
		nodes = append(nodes, page.Items...)

		if page.NextCursor == "" || len(page.Items) == 0 {
			break
		}
		req.Cursor = page.NextCursor
	}
	if len(nodes) > limit {
		nodes = nodes[:limit]
	}
	return nodes, nil
}

// listRows pages through a RAW table until limit rows are collected.
func (c *Client) listRows(ctx context.Context, table string, limit int) ([]rawRow, error) {
	endpoint := fmt.Sprintf("%s/api/v1/projects/%s/raw/dbs/%s/tables/%s/rows",
		c.baseURL, url.PathEscape(c.project), url.PathEscape(c.rawDB), url.PathEscape(table))

	rows := make([]rawRow, 0)
	cursor := ""
	for len(rows) < limit {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(min(limit-len(rows), maxPageSize)))
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var page listRowsResponse
		if err := c.do(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil, &page); err != nil {
			return nil, fmt.Errorf("list raw rows %s: %w", table, err)
		}
		rows = append(rows, page.Items...)

		if page.NextCursor == "" || len(page.Items) == 0 {
			break
		}
		cursor = page.NextCursor
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	var (
		req *http.Request
		err error
	)
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(appHeader, appName)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// viewProperties extracts the property bag for view from a node.
func (c *Client) viewProperties(n node, view string) map[string]any {
	bySpace, ok := n.Properties[c.space]
	if !ok {
		return nil
	}
	return bySpace[view+"/"+c.version]
}
