package http_test

import (
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkghttp "floodguard/pkg/http"
)

type echoPayload struct {
	Ok bool `json:"ok"`
}

func flakyServer(failures int32) (*httptest.Server, *int32) {
	var calls int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		n := atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		if n <= failures {
			w.WriteHeader(nethttp.StatusInternalServerError)
			fmt.Fprint(w, `{}`)
			return
		}
		fmt.Fprint(w, `{"ok": true}`)
	}))
	return server, &calls
}

func TestRequestWithoutBackoffIsSingleAttempt(t *testing.T) {
	server, calls := flakyServer(1)
	defer server.Close()

	client := pkghttp.NewHttpClient(server.URL, pkghttp.ClientOptions{})

	_, _, status, err := client.Request().
		WithMethod(pkghttp.GET).
		WithPath("/").
		WithSuccessResp(&echoPayload{}).
		Execute()

	require.Error(t, err)
	assert.Equal(t, nethttp.StatusInternalServerError, status)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestRequestWithBackoffRetriesServerErrors(t *testing.T) {
	server, calls := flakyServer(2)
	defer server.Close()

	client := pkghttp.NewHttpClient(server.URL, pkghttp.ClientOptions{})
	backoffConfig := pkghttp.NewBackoffConfig().
		WithMaxRetries(3).
		WithInitialInterval(time.Millisecond)

	successResp, _, status, err := client.Request().
		WithMethod(pkghttp.GET).
		WithPath("/").
		WithSuccessResp(&echoPayload{}).
		WithBackoff(backoffConfig).
		Execute()

	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, status)
	assert.EqualValues(t, 3, atomic.LoadInt32(calls))
	assert.True(t, successResp.(*echoPayload).Ok)
}

func TestRequestWithBackoffDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(nethttp.StatusUnauthorized)
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := pkghttp.NewHttpClient(server.URL, pkghttp.ClientOptions{})
	backoffConfig := pkghttp.NewBackoffConfig().
		WithMaxRetries(3).
		WithInitialInterval(time.Millisecond)

	_, _, status, err := client.Request().
		WithMethod(pkghttp.GET).
		WithPath("/").
		WithSuccessResp(&echoPayload{}).
		WithBackoff(backoffConfig).
		Execute()

	require.Error(t, err)
	assert.Equal(t, nethttp.StatusUnauthorized, status)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestClientGetDecodesJSON(t *testing.T) {
	server, _ := flakyServer(0)
	defer server.Close()

	client := pkghttp.NewHttpClient(server.URL, pkghttp.ClientOptions{})

	successResp, errResp, status, err := client.Get("/", nil, nil, &echoPayload{}, nil)
	require.NoError(t, err)
	assert.Nil(t, errResp)
	assert.Equal(t, nethttp.StatusOK, status)
	assert.True(t, successResp.(*echoPayload).Ok)
}
