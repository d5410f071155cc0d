package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"
)

func TestServer(t *testing.T) {
	registry := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Namespace: Namespace, Name: "test_total"})
	registry.MustRegister(counter)
	counter.Add(3)

	srv, err := NewServer("127.0.0.1:0",
		WithServerLogger(zaptest.NewLogger(t)),
		WithGatherer(registry),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var eg errgroup.Group
	eg.Go(func() error {
		return srv.Serve(ctx)
	})

	resp, err := http.Get("http://" + srv.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "ledger_test_total 3")

	cancel()
	require.NoError(t, eg.Wait())
}

func TestServerListenError(t *testing.T) {
	_, err := NewServer("256.0.0.1:0")
	require.Error(t, err)
}

func TestPush(t *testing.T) {
	pushed := make(chan string, 10)
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case pushed <- r.URL.Path:
		default:
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(gateway.Close)

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Namespace: Namespace, Name: "pushed_total"}))

	ctx, cancel := context.WithCancel(context.Background())
	var eg errgroup.Group
	eg.Go(func() error {
		return Push(ctx, zaptest.NewLogger(t), registry, PushConfig{
			URL:    gateway.URL,
			Period: 10 * time.Millisecond,
		}, "test")
	})

	select {
	case path := <-pushed:
		require.Equal(t, "/metrics/job/ledger/instance/test", path)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "metrics were not pushed")
	}
	cancel()
	require.NoError(t, eg.Wait())
}
