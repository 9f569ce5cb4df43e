package jobapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/jobsync/internal/adapters/jobapi"
	"go.trai.ch/jobsync/internal/adapters/telemetry"
	"go.trai.ch/jobsync/internal/core/domain"
)

func newClient(t *testing.T, handler http.Handler) (*jobapi.Client, *tracetest.SpanRecorder) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	client, err := jobapi.NewClient(server.URL+"/data", time.Second, telemetry.NewOTelTracerFrom(provider, "test"))
	require.NoError(t, err)
	return client, recorder
}

func TestClient_FetchJobItem(t *testing.T) {
	var gotPath, gotRequestID string
	client, recorder := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get(jobapi.RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public":true,"jobItem":{"id":42,"title":"Go Engineer","company":"Trai","qualifications":["Go"],"salary":"$100k"}}`))
	}))

	resp, err := client.FetchJobItem(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "/data/42", gotPath)
	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err, "each request carries a uuid request id")

	assert.True(t, resp.Public)
	assert.Equal(t, 42, resp.JobItem.ID)
	assert.Equal(t, "Go Engineer", resp.JobItem.Title)
	assert.Equal(t, []string{"Go"}, resp.JobItem.Qualifications)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "jobapi.fetch_job_item", spans[0].Name())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestClient_FetchJobItems_EscapesSearch(t *testing.T) {
	var gotSearch, gotRawQuery string
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSearch = r.URL.Query().Get("search")
		gotRawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"public":true,"sorted":false,"jobItems":[{"id":1,"title":"A","relevanceScore":90,"daysAgo":2}]}`))
	}))

	resp, err := client.FetchJobItems(context.Background(), "c++ & go")
	require.NoError(t, err)

	assert.Equal(t, "c++ & go", gotSearch)
	assert.Equal(t, "search=c%2B%2B+%26+go", gotRawQuery)
	require.Len(t, resp.JobItems, 1)
	assert.Equal(t, 90, resp.JobItems[0].RelevanceScore)
}

func TestClient_NonSuccessUsesDescription(t *testing.T) {
	client, recorder := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"description":"Job item not found"}`))
	}))

	_, err := client.FetchJobItem(context.Background(), 7)
	require.Error(t, err)

	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusNotFound, netErr.StatusCode)
	assert.Equal(t, "Job item not found", err.Error())
	assert.ErrorIs(t, err, domain.ErrJobAPIRequestFailed)
	assert.Equal(t, "Job item not found", domain.UserMessage(err))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "Job item not found", spans[0].Status().Description)
}

func TestClient_NonSuccessWithoutDescription(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		fetch func(*jobapi.Client) error
		want  string
	}{
		{
			name: "job item, empty body",
			fetch: func(c *jobapi.Client) error {
				_, err := c.FetchJobItem(context.Background(), 1)
				return err
			},
			want: "Failed to fetch job item",
		},
		{
			name: "job items, empty body",
			fetch: func(c *jobapi.Client) error {
				_, err := c.FetchJobItems(context.Background(), "go")
				return err
			},
			want: "Failed to fetch job items",
		},
		{
			name: "job items, body without description",
			body: `{"error":"boom"}`,
			fetch: func(c *jobapi.Client) error {
				_, err := c.FetchJobItems(context.Background(), "go")
				return err
			},
			want: "Failed to fetch job items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(tt.body))
			}))

			err := tt.fetch(client)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.want, domain.UserMessage(err))

			var netErr *domain.NetworkError
			require.True(t, errors.As(err, &netErr))
			assert.Equal(t, http.StatusInternalServerError, netErr.StatusCode)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	client, err := jobapi.NewClient(base, time.Second, nil)
	require.NoError(t, err)

	_, err = client.FetchJobItem(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrJobAPIRequestFailed)

	var netErr *domain.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Zero(t, netErr.StatusCode)
	assert.Error(t, netErr.Cause)
}

func TestClient_MalformedBody(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jobItems":`))
	}))

	_, err := client.FetchJobItems(context.Background(), "go")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrJobAPIParseFailed.Error())
}

func TestClient_RejectsDisabledInput(t *testing.T) {
	var calls atomic.Int32
	client, _ := newClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	}))

	_, err := client.FetchJobItem(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidJobID)

	_, err = client.FetchJobItems(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrMissingSearchText)

	assert.Zero(t, calls.Load())
}

func TestClient_SharesConcurrentRequests(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"public":true,"jobItem":{"id":3,"title":"Shared"}}`))
	}))

	const callers = 5
	var wg sync.WaitGroup
	var started sync.WaitGroup
	results := make([]*domain.JobItemResponse, callers)
	started.Add(callers)
	for i := range callers {
		wg.Go(func() {
			started.Done()
			resp, err := client.FetchJobItem(context.Background(), 3)
			assert.NoError(t, err)
			results[i] = resp
		})
	}
	started.Wait()
	// Give every caller time to join the in-flight request.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, "Shared", r.JobItem.Title)
	}
	results[0].JobItem.Title = "mutated"
	assert.Equal(t, "Shared", results[1].JobItem.Title, "callers do not share decoded values")
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	_, err := jobapi.NewClient("not a url", time.Second, telemetry.NewNoOpTracer())
	assert.ErrorIs(t, err, domain.ErrInvalidBaseURL)
}
