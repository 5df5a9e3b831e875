package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth      int
	Goroutines int
	Duration   time.Duration
	Nodes      int
	Leaves     int
	Cutoffs    int
	CacheHit   bool
}

type MoveMetric struct {
	Step  int
	Color string // "red" or "black"
	SearchMetric
}

type GameMetric struct {
	Outcome    string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector counts the work done by one search. Counters are safe to bump
// from several goroutines.
type Collector interface {
	Start(depth, goroutines int)
	AddNode()
	AddLeaf()
	AddCutoff()
	SetCacheHit(value bool)
	Complete() SearchMetric
}

type collector struct {
	depth      int
	goroutines int
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
	cutoffs    atomic.Int64
	cacheHit   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth, goroutines int) {
	m.startTime = time.Now()
	m.depth = depth
	m.goroutines = goroutines
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetCacheHit(value bool) {
	m.cacheHit.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:      m.depth,
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Leaves:     int(m.leaves.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		CacheHit:   m.cacheHit.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return dummyCollector{}
}

func (dummyCollector) Start(depth, goroutines int) {}
func (dummyCollector) AddNode()                    {}
func (dummyCollector) AddLeaf()                    {}
func (dummyCollector) AddCutoff()                  {}
func (dummyCollector) SetCacheHit(value bool)      {}
func (dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
