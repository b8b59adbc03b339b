package health

import (
	"context"
	"sync"
	"time"

	"order-manager/core/events"
	"order-manager/core/storage"
	"order-manager/core/store"
	"order-manager/feature/health/checks"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Check statuses.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusDegraded = "degraded"
)

const checkTimeout = 5 * time.Second

// Result is the outcome of one probe.
type Result struct {
	Status string               `json:"status"`
	Error  string               `json:"error,omitempty"`
	Schema *checks.SchemaReport `json:"schema,omitempty"`
}

// Report aggregates every probe.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]Result `json:"checks"`
}

// Healthy reports whether every probe passed.
func (r Report) Healthy() bool {
	return r.Status == StatusOK
}

// Deps are the components the service probes. Nil members are skipped.
type Deps struct {
	Store     store.Store
	DB        *gorm.DB
	Storage   storage.Client
	Bucket    string
	Publisher events.Publisher
}

// Service runs health probes.
type Service struct {
	deps   Deps
	logger *zap.Logger
}

// NewService creates a new health service.
func NewService(deps Deps, logger *zap.Logger) *Service {
	return &Service{deps: deps, logger: logger}
}

type probe struct {
	name string
	run  func(ctx context.Context) Result
}

func (s *Service) probes() []probe {
	var probes []probe
	if s.deps.Store != nil {
		probes = append(probes, probe{"store", func(ctx context.Context) Result {
			return result(s.deps.Store.Ping(ctx))
		}})
	}
	if s.deps.DB != nil {
		probes = append(probes, probe{"schema", func(ctx context.Context) Result {
			report, err := checks.CheckSchema(s.deps.DB.WithContext(ctx))
			if err != nil {
				return result(err)
			}
			res := Result{Status: StatusOK, Schema: report}
			if !report.Matched {
				res.Status = StatusError
			}
			return res
		}})
	}
	if s.deps.Storage != nil {
		probes = append(probes, probe{"bucket", func(ctx context.Context) Result {
			return result(checks.CheckBucket(ctx, s.deps.Storage, s.deps.Bucket))
		}})
	}
	if s.deps.Publisher != nil {
		probes = append(probes, probe{"events", func(context.Context) Result {
			return result(s.deps.Publisher.Ping())
		}})
	}
	return probes
}

// Run executes every probe concurrently and never fails; problems land in the report.
func (s *Service) Run(ctx context.Context) Report {
	probes := s.probes()
	report := Report{Status: StatusOK, Checks: make(map[string]Result, len(probes))}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range probes {
		g.Go(func() error {
			pctx, cancel := context.WithTimeout(gctx, checkTimeout)
			defer cancel()
			res := p.run(pctx)

			mu.Lock()
			report.Checks[p.name] = res
			if res.Status != StatusOK {
				report.Status = StatusDegraded
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if !report.Healthy() {
		s.logger.Warn("Health check degraded", zap.Any("checks", report.Checks))
	}
	return report
}

func result(err error) Result {
	if err != nil {
		return Result{Status: StatusError, Error: err.Error()}
	}
	return Result{Status: StatusOK}
}
