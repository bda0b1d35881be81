package prism

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// APIVersion is the Prism REST API version the client speaks.
const APIVersion = "v2.0"

// RESTRoot is the path of the versioned REST API on a cluster.
const RESTRoot = "/PrismGateway/services/rest/" + APIVersion + "/"

// API paths relative to the v2.0 base URL.
const (
	pathContainers = "storage_containers"
	pathNetworks   = "networks"
	pathCluster    = "cluster"
	pathVMs        = "vms"
)

// PayloadSink receives raw response bodies for debugging.
type PayloadSink interface {
	Save(ctx context.Context, name string, data []byte) error
}

// Client talks to one Prism cluster with basic auth.
type Client struct {
	baseURL        string
	username       string
	password       string
	httpClient     *http.Client
	requestTimeout time.Duration
	submitTimeout  time.Duration
	sink           PayloadSink
	log            logr.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client (useful for testing and instrumentation).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeouts sets the deadline for read calls and for the create call.
func WithTimeouts(request, submit time.Duration) ClientOption {
	return func(c *Client) {
		c.requestTimeout = request
		c.submitTimeout = submit
	}
}

// WithPayloadSink mirrors every response body to sink.
func WithPayloadSink(sink PayloadSink) ClientOption {
	return func(c *Client) {
		c.sink = sink
	}
}

// WithLogger sets the client logger.
func WithLogger(log logr.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client for baseURL (the v2.0 REST root).
func NewClient(baseURL, username, password string, opts ...ClientOption) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &Client{
		baseURL:        baseURL,
		username:       username,
		password:       password,
		httpClient:     http.DefaultClient,
		requestTimeout: 30 * time.Second,
		submitTimeout:  2 * time.Minute,
		log:            logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTransport returns a clone of http.DefaultTransport, skipping TLS
// verification when insecure is set. Prism ships self-signed certificates.
func NewTransport(insecure bool) *http.Transport {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if insecure {
		// #nosec G402
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return transport
}

// ListContainers returns the cluster's storage containers.
func (c *Client) ListContainers(ctx context.Context) ([]Container, error) {
	entities, err := listEntities[containerEntity](ctx, c, pathContainers)
	if err != nil {
		return nil, err
	}
	containers := make([]Container, 0, len(entities))
	for _, e := range entities {
		containers = append(containers, e.toContainer())
	}
	return containers, nil
}

// ListNetworks returns the cluster's virtual networks.
func (c *Client) ListNetworks(ctx context.Context) ([]Network, error) {
	entities, err := listEntities[networkEntity](ctx, c, pathNetworks)
	if err != nil {
		return nil, err
	}
	networks := make([]Network, 0, len(entities))
	for _, e := range entities {
		networks = append(networks, e.toNetwork())
	}
	return networks, nil
}

// GetCluster returns the cluster summary.
func (c *Client) GetCluster(ctx context.Context) (*Cluster, error) {
	resp, err := c.do(ctx, http.MethodGet, pathCluster, nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	if !resp.Success() {
		return nil, apiError(http.MethodGet, pathCluster, resp)
	}

	var e clusterEntity
	if err := json.Unmarshal(resp.Body, &e); err != nil {
		return nil, fmt.Errorf("%w: failed to decode cluster: %v", ErrTransport, err)
	}
	return e.toCluster(), nil
}

// CreateVM submits spec once. The response is returned for any status;
// only a transport failure yields an error.
func (c *Client) CreateVM(ctx context.Context, spec VMCreateSpec) (*Response, error) {
	payload, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vm spec: %w", err)
	}
	c.savePayload(ctx, "vm_config_dto", payload)

	return c.do(ctx, http.MethodPost, pathVMs, payload, c.submitTimeout)
}

// listEntities fetches path and decodes its entities. A malformed body or a
// body without entities is treated as an empty inventory.
func listEntities[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil, c.requestTimeout)
	if err != nil {
		return nil, err
	}
	if !resp.Success() {
		return nil, apiError(http.MethodGet, path, resp)
	}

	var list entityList[T]
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		c.log.Info("Ignoring malformed list response", "path", path, "error", err.Error())
		return nil, nil
	}
	return list.Entities, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, timeout time.Duration) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s %s response: %v", ErrTransport, method, path, err)
	}

	c.log.V(1).Info("Prism call finished",
		"method", method,
		"path", path,
		"status", httpResp.StatusCode,
		"duration", time.Since(start).String(),
	)
	c.savePayload(ctx, path, data)

	return &Response{StatusCode: httpResp.StatusCode, Body: json.RawMessage(data)}, nil
}

// savePayload hands data to the sink; sink failures are logged and never fatal.
func (c *Client) savePayload(ctx context.Context, name string, data []byte) {
	if c.sink == nil {
		return
	}
	if err := c.sink.Save(ctx, name, data); err != nil {
		c.log.Error(err, "Failed to archive payload", "name", name)
	}
}

func apiError(method, path string, resp *Response) *APIError {
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(resp.Body)),
	}
}
