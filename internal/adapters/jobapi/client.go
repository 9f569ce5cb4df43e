// Package jobapi implements ports.JobAPI over HTTP.
package jobapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/jobsync/internal/adapters/telemetry"
	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/jobsync/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// RequestIDHeader carries a unique id for every request sent.
const RequestIDHeader = "X-Request-ID"

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 8 << 20

// Client is a read-only job API client. Concurrent requests for the same URL
// share one round trip.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  ports.Tracer
	group   singleflight.Group
}

// NewClient creates a client for the API rooted at baseURL.
// A non-positive timeout selects domain.DefaultRequestTimeout; a nil tracer
// disables tracing.
func NewClient(baseURL string, timeout time.Duration, tracer ports.Tracer) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidBaseURL, "cannot create job API client"), "base_url", baseURL)
	}
	if timeout <= 0 {
		timeout = domain.DefaultRequestTimeout
	}
	if tracer == nil {
		tracer = telemetry.NewNoOpTracer()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tracer:  tracer,
	}, nil
}

// Messages used when a failed response carries no description.
const (
	fetchJobItemFailed  = "Failed to fetch job item"
	fetchJobItemsFailed = "Failed to fetch job items"
)

// FetchJobItem requests GET {base}/{id}.
func (c *Client) FetchJobItem(ctx context.Context, id int) (*domain.JobItemResponse, error) {
	if !domain.ValidJobID(id) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidJobID, "cannot fetch job item"), "id", id)
	}

	body, err := c.get(ctx, "jobapi.fetch_job_item", c.baseURL+"/"+strconv.Itoa(id), fetchJobItemFailed)
	if err != nil {
		return nil, err
	}

	var resp domain.JobItemResponse
	if err := decode(body, &resp); err != nil {
		return nil, zerr.With(err, "id", id)
	}
	return &resp, nil
}

// FetchJobItems requests GET {base}?search={text}. The text is query-escaped.
func (c *Client) FetchJobItems(ctx context.Context, searchText string) (*domain.JobItemsResponse, error) {
	if strings.TrimSpace(searchText) == "" {
		return nil, domain.ErrMissingSearchText
	}

	body, err := c.get(ctx, "jobapi.fetch_job_items", c.baseURL+"?search="+url.QueryEscape(searchText), fetchJobItemsFailed)
	if err != nil {
		return nil, err
	}

	var resp domain.JobItemsResponse
	if err := decode(body, &resp); err != nil {
		return nil, zerr.With(err, "search", searchText)
	}
	return &resp, nil
}

// get returns the body of a successful GET of rawURL. A failed response
// without a description is reported as fallback.
func (c *Client) get(ctx context.Context, spanName, rawURL, fallback string) ([]byte, error) {
	v, err, shared := c.group.Do(rawURL, func() (any, error) {
		return c.do(ctx, spanName, rawURL, fallback)
	})
	if err != nil {
		return nil, err
	}
	body, _ := v.([]byte)
	if shared {
		// Every caller decodes its own copy.
		body = append([]byte(nil), body...)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, spanName, rawURL, fallback string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, spanName)
	defer span.End()

	requestID := uuid.NewString()
	span.SetAttribute("http.method", http.MethodGet)
	span.SetAttribute("http.url", rawURL)
	span.SetAttribute("http.request_id", requestID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		netErr := &domain.NetworkError{Cause: err}
		span.RecordError(netErr)
		return nil, netErr
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		netErr := &domain.NetworkError{Cause: err}
		span.RecordError(netErr)
		return nil, netErr
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttribute("http.status_code", resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		netErr := &domain.NetworkError{StatusCode: resp.StatusCode, Cause: err}
		span.RecordError(netErr)
		return nil, netErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		netErr := &domain.NetworkError{
			StatusCode:  resp.StatusCode,
			Description: describe(body, fallback),
		}
		span.RecordError(netErr)
		return nil, netErr
	}

	return body, nil
}

// errorBody is the JSON body of a non-success response.
type errorBody struct {
	Description string `json:"description"`
}

// describe returns the description sent by the API, or fallback.
func describe(body []byte, fallback string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Description != "" {
		return eb.Description
	}
	return fallback
}

func decode(body []byte, target any) error {
	if err := json.Unmarshal(body, target); err != nil {
		return zerr.Wrap(err, domain.ErrJobAPIParseFailed.Error())
	}
	return nil
}
