package health

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/benedict-erwin/weather-insight/pkg/system"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
	StatusAlive     = "alive"
)

var cacheValidDuration = 10 * time.Second

// Check probes one dependency. Optional checks report degraded instead of
// failing readiness.
type Check struct {
	Name     string
	Probe    func(ctx context.Context) error
	Optional bool
}

type LiveStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type ServiceHealth struct {
	Status       string    `json:"status"`
	ResponseTime string    `json:"response_time"`
	LastCheck    time.Time `json:"last_check"`
	Error        string    `json:"error,omitempty"`
}

type ReadinessStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Services  map[string]ServiceHealth `json:"services"`
}

type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Uptime    string                   `json:"uptime"`
	Services  map[string]ServiceHealth `json:"services"`
	System    system.Snapshot          `json:"system"`
}

type Service struct {
	checks   []Check
	version  string
	dataPath string
	clock    clockwork.Clock
	started  time.Time

	mu        sync.Mutex
	cached    *ReadinessStatus
	cachedAt  time.Time
	probeWait time.Duration
}

// NewService builds the checker; dataPath is the SQLite file whose
// filesystem usage is reported.
func NewService(version, dataPath string, clock clockwork.Clock, checks ...Check) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		checks:    checks,
		version:   version,
		dataPath:  dataPath,
		clock:     clock,
		started:   clock.Now(),
		probeWait: 3 * time.Second,
	}
}

// Live reports that the process is serving
func (s *Service) Live() LiveStatus {
	return LiveStatus{Status: StatusAlive, Timestamp: s.clock.Now()}
}

// Ready probes every dependency, serving a cached result for 10s
func (s *Service) Ready(ctx context.Context) *ReadinessStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if s.cached != nil && now.Sub(s.cachedAt) < cacheValidDuration {
		cached := *s.cached
		return &cached
	}

	status := &ReadinessStatus{
		Status:    StatusReady,
		Timestamp: now,
		Services:  s.probeAll(ctx),
	}
	for _, c := range s.checks {
		if status.Services[c.Name].Status != StatusHealthy && !c.Optional {
			status.Status = StatusNotReady
		}
	}

	s.cached = status
	s.cachedAt = now
	cached := *status
	return &cached
}

// Detailed adds build and runtime information to readiness
func (s *Service) Detailed(ctx context.Context) *HealthStatus {
	ready := s.Ready(ctx)

	overall := StatusHealthy
	if ready.Status != StatusReady {
		overall = StatusUnhealthy
	} else {
		for _, svc := range ready.Services {
			if svc.Status != StatusHealthy {
				overall = StatusDegraded
			}
		}
	}

	return &HealthStatus{
		Status:    overall,
		Timestamp: ready.Timestamp,
		Version:   s.version,
		Uptime:    s.clock.Since(s.started).Round(time.Second).String(),
		Services:  ready.Services,
		System:    system.Collect(s.dataPath),
	}
}

// ClearCache drops the cached readiness result
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *Service) probeAll(ctx context.Context) map[string]ServiceHealth {
	results := make(map[string]ServiceHealth, len(s.checks))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, c := range s.checks {
		wg.Add(1)
		go func(c Check) {
			defer wg.Done()
			h := s.probe(ctx, c)
			mu.Lock()
			results[c.Name] = h
			mu.Unlock()
		}(c)
	}
	wg.Wait()
	return results
}

func (s *Service) probe(ctx context.Context, c Check) ServiceHealth {
	ctx, cancel := context.WithTimeout(ctx, s.probeWait)
	defer cancel()

	start := time.Now()
	err := c.Probe(ctx)
	h := ServiceHealth{
		Status:       StatusHealthy,
		ResponseTime: time.Since(start).String(),
		LastCheck:    s.clock.Now(),
	}
	if err != nil {
		h.Status = StatusUnhealthy
		if c.Optional {
			h.Status = StatusDegraded
		}
		h.Error = err.Error()
	}
	return h
}
