package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration   time.Duration
	Episodes   int
	Expansions int
	// MaxDepth is the deepest node created during the search
	MaxDepth   int
	RootVisits int
	// Stalls counts the iterations whose selection ended without a node to
	// simulate
	Stalls     int
	Weights    string
	IsFallback bool
}

type MoveMetric struct {
	Time   int // Game tick of the decision
	Player int
	Action string
	SearchMetric
}

type GameMetric struct {
	Winner     int // Player ID, or -1 for a draw
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	Ticks      int
	TotalMoves int
}

type Collector interface {
	Start(weights string)
	AddEpisode()
	AddExpansion(depth int)
	AddStall()
	SetRootVisits(visits int)
	SetFallback(value bool)
	Complete() SearchMetric
}

type collector struct {
	weights    string
	startTime  time.Time
	episodes   atomic.Int32
	expansions atomic.Int32
	maxDepth   atomic.Int32
	rootVisits atomic.Int32
	stalls     atomic.Int32
	isFallback atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(weights string) {
	m.startTime = time.Now()
	m.weights = weights
	m.episodes.Store(0)
	m.expansions.Store(0)
	m.maxDepth.Store(0)
	m.rootVisits.Store(0)
	m.stalls.Store(0)
	m.isFallback.Store(false)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddExpansion(depth int) {
	m.expansions.Add(1)
	for {
		current := m.maxDepth.Load()
		if int32(depth) <= current || m.maxDepth.CompareAndSwap(current, int32(depth)) {
			return
		}
	}
}

func (m *collector) AddStall() {
	m.stalls.Add(1)
}

func (m *collector) SetRootVisits(visits int) {
	m.rootVisits.Store(int32(visits))
}

func (m *collector) SetFallback(value bool) {
	m.isFallback.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:   time.Since(m.startTime),
		Episodes:   int(m.episodes.Load()),
		Expansions: int(m.expansions.Load()),
		MaxDepth:   int(m.maxDepth.Load()),
		RootVisits: int(m.rootVisits.Load()),
		Stalls:     int(m.stalls.Load()),
		Weights:    m.weights,
		IsFallback: m.isFallback.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(weights string)     {}
func (m *dummyCollector) AddEpisode()              {}
func (m *dummyCollector) AddExpansion(depth int)   {}
func (m *dummyCollector) AddStall()                {}
func (m *dummyCollector) SetRootVisits(visits int) {}
func (m *dummyCollector) SetFallback(value bool)   {}
func (m *dummyCollector) Complete() SearchMetric   { return SearchMetric{} }
