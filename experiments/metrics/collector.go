package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines  int
	Duration    time.Duration
	Expanded    int64 // states whose successors were generated
	MemoHits    int64 // published counts reused
	SharedWaits int64 // claims whose result was handed to more than one goroutine
	Completions int64 // branches that ended with no prey left
	Escapes     int64 // branches pruned because a prey left the board
	Spawned     int64 // branches handed to a new goroutine
}

type Collector interface {
	Start(goroutines int)
	AddExpansion()
	AddMemoHit()
	AddSharedWait()
	AddCompletion()
	AddEscape()
	AddSpawn()
	Complete() SearchMetric
}

type collector struct {
	goroutines  int
	startTime   time.Time
	expanded    atomic.Int64
	memoHits    atomic.Int64
	sharedWaits atomic.Int64
	completions atomic.Int64
	escapes     atomic.Int64
	spawned     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.expanded.Store(0)
	m.memoHits.Store(0)
	m.sharedWaits.Store(0)
	m.completions.Store(0)
	m.escapes.Store(0)
	m.spawned.Store(0)
}

func (m *collector) AddExpansion() {
	m.expanded.Add(1)
}

func (m *collector) AddMemoHit() {
	m.memoHits.Add(1)
}

func (m *collector) AddSharedWait() {
	m.sharedWaits.Add(1)
}

func (m *collector) AddCompletion() {
	m.completions.Add(1)
}

func (m *collector) AddEscape() {
	m.escapes.Add(1)
}

func (m *collector) AddSpawn() {
	m.spawned.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:  m.goroutines,
		Duration:    time.Since(m.startTime),
		Expanded:    m.expanded.Load(),
		MemoHits:    m.memoHits.Load(),
		SharedWaits: m.sharedWaits.Load(),
		Completions: m.completions.Load(),
		Escapes:     m.escapes.Load(),
		Spawned:     m.spawned.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int)   {}
func (m *dummyCollector) AddExpansion()          {}
func (m *dummyCollector) AddMemoHit()            {}
func (m *dummyCollector) AddSharedWait()         {}
func (m *dummyCollector) AddCompletion()         {}
func (m *dummyCollector) AddEscape()             {}
func (m *dummyCollector) AddSpawn()              {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
