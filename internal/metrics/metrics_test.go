package metrics

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector()

	c.Tick()
	c.Tick()
	c.Pick(true)
	c.Pick(false)
	c.Pick(false)
	c.AssetLoad("texture", nil)
	c.AssetLoad("narration", errors.New("missing"))
	c.SetNarrationsPlaying(2)

	if got := testutil.ToFloat64(c.ticks); got != 2 {
		t.Errorf("ticks = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.picks.WithLabelValues(PickMiss)); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.picks.WithLabelValues(PickHit)); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.assetLoads.WithLabelValues("narration", "error")); got != 1 {
		t.Errorf("narration errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.narrations); got != 2 {
		t.Errorf("narrations = %v, want 2", got)
	}
}

func TestCollector_Serve(t *testing.T) {
	c := NewCollector()
	c.Tick()
	c.ObserveFrame(3 * time.Millisecond)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	for _, want := range []string{"orrery_ticks_total 1", "orrery_frame_render_seconds_count 1"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
