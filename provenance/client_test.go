// api/provenance/client_test.go
package provenance_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/anish-goyal/finboard/api/logging"
	"github.com/anish-goyal/finboard/api/provenance"
)

func TestMain(m *testing.M) {
	logDir, err := os.MkdirTemp("", "provenance-test")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(logDir)
	code := m.Run()
	logger.Sync()
	os.RemoveAll(logDir)
	os.Exit(code)
}

// echoHandler returns 200 and echoes the request's correlation identifier
// back in the body, the way a well-behaved backend does.
func echoHandler(payload string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(provenance.CorrelationHeader)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"correlationId":"` + id + `",` + payload + `}`))
	}
}

func TestCallSuccess(t *testing.T) {
	server := httptest.NewServer(echoHandler(`"value":42`))
	defer server.Close()

	client := provenance.NewClient(server.Client())

	var out struct {
		Value int `json:"value"`
	}
	info, err := client.Call(context.Background(), http.MethodGet, server.URL, nil, &out)

	require.NoError(t, err)
	assert.Equal(t, 42, out.Value)
	assert.Equal(t, http.StatusOK, info.Status)
	assert.NotEmpty(t, info.CorrelationID)
	assert.Equal(t, info.CorrelationID, info.ResponseCorrelationID)
}

func TestCallRejectsOKWithoutCorrelationID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"value":42}`))
	}))
	defer server.Close()

	client := provenance.NewClient(server.Client())

	_, err := client.Call(context.Background(), http.MethodGet, server.URL, nil, nil)

	require.Error(t, err)
	assert.True(t, provenance.IsProvenanceViolation(err))

	var pe *provenance.ProvenanceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusOK, pe.Status)
	assert.NotEmpty(t, pe.CorrelationID)
}

func TestCallRejectsErrorStatusWithoutCorrelationID(t *testing.T) {
	// The provenance check runs before the status branch, so a 500 without
	// the identifier is a provenance violation, not an HTTPError.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer server.Close()

	client := provenance.NewClient(server.Client())

	_, err := client.Call(context.Background(), http.MethodGet, server.URL, nil, nil)

	assert.True(t, provenance.IsProvenanceViolation(err))
	var httpErr *provenance.HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestCallHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"correlation_id":"srv-1","message":"tenant suspended"}`))
	}))
	defer server.Close()

	client := provenance.NewClient(server.Client())

	info, err := client.Call(context.Background(), http.MethodGet, server.URL, nil, nil)

	require.Error(t, err)
	assert.False(t, provenance.IsProvenanceViolation(err))

	var httpErr *provenance.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
	assert.Equal(t, "tenant suspended", httpErr.Message)
	assert.Equal(t, "srv-1", httpErr.CorrelationID)
	assert.Equal(t, http.StatusForbidden, info.Status)
}

func TestCallMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := provenance.NewClient(server.Client())

	_, err := client.Call(context.Background(), http.MethodGet, server.URL, nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, provenance.ErrMalformedBody)
	assert.False(t, provenance.IsProvenanceViolation(err))
}

func TestCallTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close() // connection refused from here on

	client := provenance.NewClient(&http.Client{})

	_, err := client.Call(context.Background(), http.MethodGet, url, nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, provenance.ErrTransport)
}

func TestCallSendsCorrelationHeader(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get(provenance.CorrelationHeader)
		w.Write([]byte(`{"correlationId":"` + received + `"}`))
	}))
	defer server.Close()

	client := provenance.NewClient(server.Client())

	info, err := client.Call(context.Background(), http.MethodGet, server.URL, nil, nil,
		provenance.WithCorrelationID("fixed-id-1"))

	require.NoError(t, err)
	assert.Equal(t, "fixed-id-1", received)
	assert.Equal(t, "fixed-id-1", info.CorrelationID)
}

func TestCallAcceptsSnakeCaseIdentifier(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"correlation_id":"snake-1"}`))
	}))
	defer server.Close()

	client := provenance.NewClient(server.Client())

	info, err := client.Call(context.Background(), http.MethodGet, server.URL, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "snake-1", info.ResponseCorrelationID)
}

func TestCallForwardsCustomHeaders(t *testing.T) {
	var tenant string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenant = r.Header.Get("X-Tenant-ID")
		w.Write([]byte(`{"correlationId":"x"}`))
	}))
	defer server.Close()

	client := provenance.NewClient(server.Client())

	_, err := client.Call(context.Background(), http.MethodGet, server.URL, nil, nil,
		provenance.WithHeader("X-Tenant-ID", "tenant-7"))

	require.NoError(t, err)
	assert.Equal(t, "tenant-7", tenant)
}
