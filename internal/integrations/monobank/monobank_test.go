package monobank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarwatch/jarwatch/internal/config"
)

func testClient(t *testing.T, url string, retries int) *Client {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(&config.Config{
		MonobankToken:  "test-token",
		MonobankAPIURL: url,
		FetchRetries:   retries,
	}, logger)
}

func fastRetries(t *testing.T) {
	t.Helper()
	old := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = old })
}

func TestFetchJars(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/personal/client-info", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-Token"))
		w.Write([]byte(`{"name":"Owner","jars":[
			{"id":"jar-1","title":"Alpha","balance":50000,"goal":100000},
			{"id":"jar-2","title":"Beta","balance":2000,"goal":0}
		]}`))
	}))
	defer server.Close()

	jars, err := testClient(t, server.URL, 1).FetchJars(context.Background())
	require.NoError(t, err)
	require.Len(t, jars, 2)
	assert.Equal(t, Jar{ID: "jar-1", Title: "Alpha", Balance: 50000, Goal: 100000}, jars[0])
	assert.Equal(t, int64(0), jars[1].Goal)
}

func TestFetchJars_RetriesTransientFailures(t *testing.T) {
	fastRetries(t)

	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"jars":[{"id":"jar-1","title":"Alpha","balance":100}]}`))
	}))
	defer server.Close()

	jars, err := testClient(t, server.URL, 3).FetchJars(context.Background())
	require.NoError(t, err)
	assert.Len(t, jars, 1)
	assert.Equal(t, 3, attempts)
}

func TestFetchJars_GivesUpAfterRetries(t *testing.T) {
	fastRetries(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(t, server.URL, 2).FetchJars(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestFetchJars_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := testClient(t, server.URL, 1).FetchJars(context.Background())
	assert.Error(t, err)
}
