package httptransport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	totalconnect "github.com/caarlos0/homekit-totalconnect"
)

func TestCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/GetSessionDetails", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req struct {
			Params []any `json:"params"`
		}
		require.NoError(t, sonic.Unmarshal(body, &req))
		require.Equal(t, []any{"token", float64(123)}, req.Params)

		_, _ = w.Write([]byte(`{"ResultCode":-102,"ResultData":"Invalid Session"}`))
	}))
	t.Cleanup(srv.Close)

	tr, err := New(srv.URL + "/api/")
	require.NoError(t, err)

	res, err := tr.Call(context.Background(), "GetSessionDetails", "token", 123)
	require.NoError(t, err)
	require.Equal(t, totalconnect.ResultInvalidSession, res.ResultCode)
	require.Equal(t, "Invalid Session", res.ResultData)
	require.Equal(t, totalconnect.OutcomeSessionInvalid, res.Outcome())
}

func TestCallNoParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"params":[]}`, string(body))
		_, _ = w.Write([]byte(`{"ResultCode":0}`))
	}))
	t.Cleanup(srv.Close)

	tr, err := New(srv.URL)
	require.NoError(t, err)
	res, err := tr.Call(context.Background(), "Logout")
	require.NoError(t, err)
	require.Equal(t, totalconnect.ResultSuccess, res.ResultCode)
}

func TestCallFailures(t *testing.T) {
	for name, handler := range map[string]http.HandlerFunc{
		"bad status": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"invalid reply": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>maintenance</html>`))
		},
		"missing result code": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"ResultData":"Success"}`))
		},
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			t.Cleanup(srv.Close)

			tr, err := New(srv.URL)
			require.NoError(t, err)
			_, err = tr.Call(context.Background(), "GetSessionDetails", "token")
			require.ErrorContains(t, err, "GetSessionDetails")
		})
	}
}

func TestCallConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	tr, err := New(url)
	require.NoError(t, err)
	_, err = tr.Call(context.Background(), "GetSessionDetails")
	require.Error(t, err)
}

func TestCallCanceled(t *testing.T) {
	tr, err := New("http://127.0.0.1:1", WithRateLimit(rate.Every(time.Hour), 1))
	require.NoError(t, err)
	require.NoError(t, tr.limiter.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tr.Call(ctx, "GetSessionDetails")
	require.ErrorContains(t, err, "rate limit")
}

func TestNew(t *testing.T) {
	for _, endpoint := range []string{"", "not a url", "ftp://example.com"} {
		_, err := New(endpoint)
		require.Error(t, err, endpoint)
	}

	tr, err := New(
		"https://example.com/gateway/",
		WithTimeout(time.Second),
		WithHTTPClient(&http.Client{Timeout: time.Minute}),
	)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/gateway", tr.endpoint)
	require.Equal(t, time.Second, tr.timeout)
	require.Equal(t, time.Minute, tr.client.Timeout)
}
