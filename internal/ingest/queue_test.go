package ingest

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/engine"
	"github.com/ilyanormand/fwn-renta/internal/layout"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

type staticExtractor struct {
	doc *layout.Document
}

func (s *staticExtractor) Extract(_ context.Context, _ string) (*layout.Document, error) {
	return s.doc, nil
}

func testProfile(t *testing.T) *profile.Profile {
	t.Helper()
	p := &profile.Profile{
		Vendor: profile.Vendor{Name: "Acme", Currency: "EUR", Language: "en"},
		Table: profile.Table{
			Strategy:       constants.StrategyGrid,
			HeaderKeywords: []string{"description", "qty", "price", "total"},
		},
	}
	if err := p.Compile(); err != nil {
		t.Fatalf("compile profile: %v", err)
	}
	return p
}

func TestQueueProcessesAllJobs(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(&staticExtractor{doc: &layout.Document{
		Pages: []layout.Page{{Number: 1, Tables: []layout.Grid{{
			{"Description", "Qty", "Price", "Total"},
			{"Widget", "1", "2.00", "2.00"},
		}}}},
	}}, logger)

	sink := NewCollector()
	q := NewExtractorQueue(eng, sink, logger, WithWorkers(2), WithQueueSize(8))

	prof := testProfile(t)
	for i := 0; i < 5; i++ {
		if err := q.Enqueue(context.Background(), Job{Path: "doc.pdf", Profile: prof}); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	if got := len(sink.Results()); got != 5 {
		t.Fatalf("collected %d results, want 5", got)
	}
	if len(sink.Failed()) != 0 {
		t.Fatalf("unexpected failures: %v", sink.Failed())
	}
	for _, res := range sink.Results() {
		if len(res.OrderItems) != 1 {
			t.Errorf("order items = %+v, want 1", res.OrderItems)
		}
	}
}

func TestQueueEnqueueAfterShutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(&staticExtractor{doc: &layout.Document{}}, logger)
	sink := NewCollector()
	q := NewExtractorQueue(eng, sink, logger, WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q.Shutdown(ctx)

	if err := q.Enqueue(context.Background(), Job{Path: "late.pdf", Profile: testProfile(t)}); err != nil {
		t.Fatalf("enqueue after shutdown: %v", err)
	}
	if got := len(sink.Results()); got != 0 {
		t.Fatalf("collected %d results after shutdown, want 0", got)
	}
}
