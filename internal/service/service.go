// internal/service/service.go
//
// Validation request orchestration.
//
// Context
// -------
// One request travels through three stages:
//
//  1. Structural pass (record.Check).  Failures end the request with a
//     report listing the field errors; content is not examined.
//  2. Requirement cache lookup for metadata_version.  A setup failure is
//     returned as an error naming the version and no report is produced.
//  3. Content pass (validation.Engine).  Every failure is collected.
//
// ValidateAll runs many requests on a bounded worker pool.  Outcomes are
// indexed by input position; processing order is not.
package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yanizio/reqvalidator/internal/metrics"
	"github.com/yanizio/reqvalidator/internal/record"
	"github.com/yanizio/reqvalidator/internal/requirement"
	"github.com/yanizio/reqvalidator/internal/validation"
)

// CacheProvider yields the requirement cache for a schema version.
// *registry.Registry satisfies it.
type CacheProvider interface {
	Get(ctx context.Context, version int) (*requirement.Cache, error)
}

// Report is the outcome of one validation request.
type Report struct {
	RunID      string                       `json:"run_id"`
	Version    int                          `json:"version"`
	Valid      bool                         `json:"valid"`
	Entries    int                          `json:"entries"`
	Structural []record.FieldError          `json:"structural_errors,omitempty"`
	Errors     []validation.ValidationError `json:"errors"`
}

// Outcome pairs a report with the setup error that prevented one.
type Outcome struct {
	Report *Report
	Err    error
}

// Service validates requests against versioned requirements.
type Service struct {
	caches  CacheProvider
	rules   *validation.Rules
	workers int
	log     *zap.SugaredLogger
}

// New constructs a Service.  A nil rules uses validation.DefaultRules,
// workers < 1 uses GOMAXPROCS, and a nil log discards output.
func New(caches CacheProvider, rules *validation.Rules, workers int, log *zap.SugaredLogger) *Service {
	if rules == nil {
		rules = validation.DefaultRules()
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{caches: caches, rules: rules, workers: workers, log: log}
}

// Validate runs one request through the structural and content passes.
func (s *Service) Validate(ctx context.Context, req *record.ValidationRequest) (*Report, error) {
	start := time.Now()
	defer func() { metrics.RequestDuration.Observe(time.Since(start).Seconds()) }()

	rep := &Report{
		RunID:   uuid.NewString(),
		Version: req.MetadataVersion,
		Errors:  []validation.ValidationError{},
	}

	if fe := record.Check(req); len(fe) > 0 {
		rep.Structural = fe
		metrics.RequestsTotal.WithLabelValues("structural").Inc()
		s.log.Infow("request failed structural pass",
			"run_id", rep.RunID, "version", rep.Version, "fields", len(fe))
		return rep, nil
	}

	c, err := s.caches.Get(ctx, req.MetadataVersion)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues("setup_error").Inc()
		return nil, fmt.Errorf("load requirements for version %d: %w", req.MetadataVersion, err)
	}

	rec := &req.JSONFile
	errs, err := validation.NewEngine(c, s.rules).ValidateRecord(ctx, rec)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues("cancelled").Inc()
		return nil, err
	}
	if errs != nil {
		rep.Errors = errs
	}
	rep.Entries = len(rec.Entries())
	rep.Valid = len(errs) == 0

	outcome := "invalid"
	if rep.Valid {
		outcome = "valid"
	}
	metrics.RequestsTotal.WithLabelValues(outcome).Inc()
	s.log.Infow("request validated",
		"run_id", rep.RunID,
		"version", rep.Version,
		"entries", rep.Entries,
		"errors", len(rep.Errors),
	)
	return rep, nil
}

// ValidateAll validates reqs concurrently.  out[i] always belongs to
// reqs[i].
func (s *Service) ValidateAll(ctx context.Context, reqs []*record.ValidationRequest) []Outcome {
	out := make([]Outcome, len(reqs))
	if len(reqs) == 0 {
		return out
	}

	pool := pond.NewPool(s.workers)
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for i, req := range reqs {
		i, req := i, req
		group.Submit(func() {
			if err := ctx.Err(); err != nil {
				out[i] = Outcome{Err: err}
				return
			}
			rep, err := s.Validate(ctx, req)
			out[i] = Outcome{Report: rep, Err: err}
		})
	}
	_ = group.Wait()
	return out
}
