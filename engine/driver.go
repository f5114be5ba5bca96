// Package engine turns raw OS counters into rates, health bands and
// trends. It owns all sampling state; reading the OS is delegated to a
// probe.Source and everything downstream of the returned Result is
// presentation.
package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pulseview/syshealth/logger"
	"github.com/pulseview/syshealth/models"
	"github.com/pulseview/syshealth/probe"
	"github.com/pulseview/syshealth/storage"
)

// ErrCycleFailed is returned when every subsystem probe failed in a
// single cycle. The periodic loop logs it and keeps going; the next
// tick is the retry.
var ErrCycleFailed = errors.New("engine: all probes failed for this cycle")

// Config carries the engine's construction-time settings. Values are
// read once; there is no hot reload.
type Config struct {
	// Interval between periodic sampling cycles.
	Interval time.Duration
	// HistoryCapacity is the ring buffer size for past results.
	HistoryCapacity int
	// WindowCapacity is the per-metric trend window size.
	WindowCapacity int
	// Thresholds classify readings into health bands.
	Thresholds Table
	// EnableProcesses turns on the top-process listing.
	EnableProcesses bool
	// TopProcessCount is the listing size.
	TopProcessCount int
	// EnableBattery turns on the battery probe.
	EnableBattery bool
}

func (c *Config) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = 15 * time.Second
	}
	if c.HistoryCapacity <= 0 {
		c.HistoryCapacity = 240
	}
	if c.WindowCapacity <= 0 {
		c.WindowCapacity = 5
	}
	if c.Thresholds == nil {
		c.Thresholds = DefaultTable()
	} else {
		// Classification needs a total table; complete a partial one
		// from the defaults without touching the caller's map.
		full := DefaultTable()
		for kind, th := range c.Thresholds {
			full[kind] = th
		}
		c.Thresholds = full
	}
	if c.TopProcessCount <= 0 {
		c.TopProcessCount = 5
	}
}

// previousState holds the most recent cumulative counters and their
// capture time. Owned exclusively by the engine, guarded by cycleMu,
// overwritten at the end of every cycle after rates are derived. The
// have flags mark counters that were actually observed at least once;
// a counter first read after earlier probe failures has no prior
// snapshot and its rate stays zero for that cycle.
type previousState struct {
	at        time.Time
	diskRead  uint64
	diskWrite uint64
	netSent   uint64
	netRecv   uint64
	haveDisk  bool
	haveNet   bool
}

// Engine is the sampling cycle driver. One periodic loop and any
// number of manual refreshes share RunCycle; a single mutex serializes
// the read-counters/derive-rates/overwrite-previous critical section.
type Engine struct {
	cfg    Config
	source probe.Source
	log    *logger.Logger

	history *storage.RingBuffer
	trends  *Tracker

	// cycleMu guards prev, primed and trends: the whole
	// read-all-before-write sequence of one cycle.
	cycleMu sync.Mutex
	prev    previousState
	primed  bool

	host *models.HostInfo

	latest atomic.Pointer[models.Result]

	subscribers []chan<- *models.Result
	subMu       sync.RWMutex

	running bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// now is the clock; swapped out in tests.
	now func() time.Time
}

// New creates an Engine sampling from the given source.
func New(source probe.Source, cfg Config) *Engine {
	cfg.applyDefaults()

	e := &Engine{
		cfg:     cfg,
		source:  source,
		log:     logger.Get(),
		history: storage.NewRingBuffer(cfg.HistoryCapacity),
		trends:  NewTracker(cfg.WindowCapacity),
		now:     time.Now,
	}

	// Host identity is static; read it once and attach to every
	// snapshot. Failure just leaves it absent.
	if host, err := source.Host(); err == nil {
		e.host = host
	} else {
		e.log.Warnf("Host info unavailable: %v", err)
	}

	return e
}

// Start runs an immediate first cycle and then samples periodically
// until ctx is cancelled or Stop is called. The stop signal takes
// effect no later than the next tick.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = true
	e.mu.Unlock()

	ctx, e.cancel = context.WithCancel(ctx)

	// First cycle primes PreviousState; its rates are zero and its
	// trends report insufficient data.
	if _, err := e.RunCycle(); err != nil {
		e.log.Warnf("Initial sampling cycle failed: %v", err)
	}

	e.wg.Add(1)
	go e.loop(ctx)

	e.log.Infof("Engine started with %v interval", e.cfg.Interval)
	return nil
}

// Stop halts the periodic loop and waits for it to exit.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
	}
	e.wg.Wait()

	e.log.Info("Engine stopped")
}

func (e *Engine) loop(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := e.RunCycle(); err != nil {
				e.log.Errorf("Sampling cycle failed: %v", err)
			}
		}
	}
}

// RunCycle executes one complete sampling pass and returns the
// assembled result. It is safe to call concurrently with the periodic
// loop: manual refresh and timer go through the same critical section.
//
// A sub-metric that cannot be read degrades to absent and the cycle
// proceeds; only a cycle in which every subsystem probe failed returns
// ErrCycleFailed, still alongside the (sparse) result.
func (e *Engine) RunCycle() (*models.Result, error) {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	now := e.now()
	snap := models.Snapshot{
		Timestamp: now,
		Host:      e.host,
	}

	probes := 0
	failures := 0

	cpuStats, err := e.source.CPU()
	probes++
	if err != nil {
		failures++
		e.log.Warnf("CPU probe failed: %v", err)
	} else {
		snap.CPU = cpuStats
	}

	memStats, err := e.source.Memory()
	probes++
	if err != nil {
		failures++
		e.log.Warnf("Memory probe failed: %v", err)
	} else {
		snap.Memory = memStats
	}

	diskStats, err := e.source.Disk()
	probes++
	if err != nil {
		failures++
		e.log.Warnf("Disk probe failed: %v", err)
	} else {
		snap.Disk = diskStats
	}

	netStats, err := e.source.Network()
	probes++
	if err != nil {
		failures++
		e.log.Warnf("Network probe failed: %v", err)
	} else {
		snap.Network = netStats
	}

	if e.cfg.EnableBattery {
		// No battery hardware is (nil, nil): absent, not an error.
		battStats, err := e.source.Battery()
		if err != nil {
			e.log.Debugf("Battery probe failed: %v", err)
		} else {
			snap.Battery = battStats
		}
	}

	if e.cfg.EnableProcesses {
		if procs, err := e.source.Processes(e.cfg.TopProcessCount); err != nil {
			e.log.Debugf("Process probe failed: %v", err)
		} else {
			snap.TopProcesses = procs
		}
	}

	// Derive rates against state from the previous cycle, before that
	// state is overwritten below.
	var rates models.Rates
	if e.primed {
		elapsed := now.Sub(e.prev.at).Seconds()
		if snap.Disk != nil && e.prev.haveDisk {
			rates.DiskReadBps = Rate(e.prev.diskRead, snap.Disk.ReadBytes, elapsed)
			rates.DiskWriteBps = Rate(e.prev.diskWrite, snap.Disk.WriteBytes, elapsed)
		}
		if snap.Network != nil && e.prev.haveNet {
			rates.NetUploadBps = Rate(e.prev.netSent, snap.Network.BytesSent, elapsed)
			rates.NetDownloadBps = Rate(e.prev.netRecv, snap.Network.BytesRecv, elapsed)
		}
	}

	health := e.classifyAll(&snap)
	trends := e.observeTrends(&snap)

	// Overwrite PreviousState last. Counters from a failed probe keep
	// their old values so the next cycle's delta stays cumulative.
	e.prev.at = now
	if snap.Disk != nil {
		e.prev.diskRead = snap.Disk.ReadBytes
		e.prev.diskWrite = snap.Disk.WriteBytes
		e.prev.haveDisk = true
	}
	if snap.Network != nil {
		e.prev.netSent = snap.Network.BytesSent
		e.prev.netRecv = snap.Network.BytesRecv
		e.prev.haveNet = true
	}
	e.primed = true

	result := &models.Result{
		Snapshot: snap,
		Rates:    rates,
		Health:   health,
		Trends:   trends,
	}

	e.history.Add(result)
	e.latest.Store(result)
	e.notifySubscribers(result)

	e.log.Cycle("Cycle complete: %d/%d probes ok, %d issues", probes-failures, probes, len(result.Issues()))

	if failures == probes {
		return result, ErrCycleFailed
	}
	return result, nil
}

// classifyAll maps every classifiable metric in the snapshot to a
// band. Absent readings classify as unknown.
func (e *Engine) classifyAll(s *models.Snapshot) map[models.MetricKind]models.HealthBand {
	health := make(map[models.MetricKind]models.HealthBand, len(models.Kinds()))
	for _, kind := range models.Kinds() {
		health[kind] = e.cfg.Thresholds.Classify(kind, metricValue(s, kind))
	}
	return health
}

// observeTrends feeds the trend tracker for each tracked kind. Absent
// readings are not appended; their verdict is insufficient data.
func (e *Engine) observeTrends(s *models.Snapshot) map[models.MetricKind]models.TrendVerdict {
	trends := make(map[models.MetricKind]models.TrendVerdict, len(models.TrendKinds()))
	for _, kind := range models.TrendKinds() {
		v := metricValue(s, kind)
		if v == nil {
			trends[kind] = models.TrendInsufficientData
			continue
		}
		trends[kind] = e.trends.Observe(kind, *v)
	}
	return trends
}

// metricValue picks the snapshot field a kind is classified on, nil
// when the reading is absent.
func metricValue(s *models.Snapshot, kind models.MetricKind) *float64 {
	switch kind {
	case models.KindCPU:
		if s.CPU != nil {
			return &s.CPU.AveragePercent
		}
	case models.KindMemory:
		if s.Memory != nil {
			return &s.Memory.UsedPercent
		}
	case models.KindDisk:
		if s.Disk != nil {
			return &s.Disk.UsedPercent
		}
	case models.KindTemperature:
		if s.CPU != nil {
			return s.CPU.TemperatureC
		}
	case models.KindBattery:
		if s.Battery != nil {
			return &s.Battery.Percent
		}
	}
	return nil
}

// Latest returns the most recently completed result without blocking
// the sampling cycle. Nil before the first cycle completes. The
// returned result is shared and must not be modified.
func (e *Engine) Latest() *models.Result {
	return e.latest.Load()
}

// History returns the retained cycle results.
func (e *Engine) History() *storage.RingBuffer {
	return e.history
}

// Subscribe adds a channel receiving each completed result. Slow
// subscribers miss results instead of blocking the cycle.
func (e *Engine) Subscribe(ch chan<- *models.Result) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	e.subscribers = append(e.subscribers, ch)
}

// Unsubscribe removes a previously subscribed channel.
func (e *Engine) Unsubscribe(ch chan<- *models.Result) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	for i, sub := range e.subscribers {
		if sub == ch {
			e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
			return
		}
	}
}

func (e *Engine) notifySubscribers(r *models.Result) {
	e.subMu.RLock()
	defer e.subMu.RUnlock()

	for _, ch := range e.subscribers {
		select {
		case ch <- r:
		default:
			// Channel full, skip
		}
	}
}

// IsRunning reports whether the periodic loop is active.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}
