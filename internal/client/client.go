// Package client talks to the extract API: schema discovery, patient
// search, and extract submission. Transport policy (retries, caching) is
// deliberately out of scope; callers get one request per call.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mgrove/cohort/internal/extract"
	"github.com/mgrove/cohort/internal/schema"
)

const (
	schemaPath  = "/api/v0.1/schema/"
	extractPath = "/api/v0.1/extract/"
	searchPath  = "/api/v0.1/search/"

	requestTimeout = 60 * time.Second
)

// Options configures a Client.
type Options struct {
	// BaseURL is the extract server root, e.g. "https://opal.example.org".
	BaseURL string
	// Token is an optional API token sent as "Authorization: Token <t>".
	Token string
	// HTTPClient overrides the default client (mainly for tests).
	HTTPClient *http.Client
}

// Client is an extract API client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client for the given server.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("server base URL is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	return &Client{
		baseURL: base,
		token:   opts.Token,
		http:    httpClient,
	}, nil
}

// ExtractRequest is the payload an extract run submits: the finalized
// criteria plus the subrecord-grouped slice set.
type ExtractRequest struct {
	Criteria  []extract.FinalizedCriterion `json:"criteria"`
	DataSlice []extract.SliceGroup         `json:"data_slice"`
}

// Record is one subrecord instance as returned by the server.
type Record map[string]interface{}

// Episode is one matched episode: subrecord name to its extracted records.
type Episode map[string][]Record

// ExtractResult is the server's response to a submitted extract.
type ExtractResult struct {
	Episodes []Episode `json:"episodes"`
}

// Patient is one patient search hit.
type Patient struct {
	ID           int    `json:"id"`
	Demographics Record `json:"demographics"`
}

// SearchResult is the server's response to a patient search.
type SearchResult struct {
	Patients    []Patient         `json:"patients"`
	SearchTerms map[string]string `json:"search_terms"`
}

// FetchSchema retrieves the server's subrecord/field catalog.
func (c *Client) FetchSchema() (*schema.Schema, error) {
	body, err := c.get(c.baseURL + schemaPath)
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}

	sch, err := schema.ParseJSON(body)
	if err != nil {
		return nil, fmt.Errorf("fetch schema: %w", err)
	}
	return sch, nil
}

// Submit posts a compiled extract and returns the matched episodes.
func (c *Client) Submit(req ExtractRequest) (*ExtractResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode extract request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+extractPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build extract request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.authorize(httpReq)

	body, err := c.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit extract: %w", err)
	}

	var result ExtractResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse extract response: %w", err)
	}
	return &result, nil
}

// SearchPatients looks patients up by hospital number and/or name. Empty
// terms are omitted from the request.
func (c *Client) SearchPatients(hospitalNumber, name string) (*SearchResult, error) {
	params := url.Values{}
	if hospitalNumber != "" {
		params.Set("hospital_number", hospitalNumber)
	}
	if name != "" {
		params.Set("name", name)
	}
	if len(params) == 0 {
		return nil, fmt.Errorf("a hospital number or name is required")
	}

	body, err := c.get(c.baseURL + searchPath + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return &result, nil
}

func (c *Client) get(rawURL string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.authorize(req)
	return c.do(req)
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}
