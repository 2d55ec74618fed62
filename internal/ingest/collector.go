package ingest

import (
	"sync"

	"github.com/ilyanormand/fwn-renta/internal/engine"
)

// Collector is a ResultSink that accumulates finished extractions in memory
// until a batch run hands them to the exporter. Failed documents are kept
// separately so one bad document never hides the rest of the batch.
type Collector struct {
	mu      sync.Mutex
	results []*engine.Result
	failed  map[string]error
}

func NewCollector() *Collector {
	return &Collector{failed: make(map[string]error)}
}

func (c *Collector) Collect(path string, res *engine.Result, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failed[path] = err
		return
	}
	c.results = append(c.results, res)
}

// Results returns the successfully extracted documents collected so far.
func (c *Collector) Results() []*engine.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*engine.Result, len(c.results))
	copy(out, c.results)
	return out
}

// Failed returns extraction errors keyed by document path.
func (c *Collector) Failed() map[string]error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]error, len(c.failed))
	for k, v := range c.failed {
		out[k] = v
	}
	return out
}
