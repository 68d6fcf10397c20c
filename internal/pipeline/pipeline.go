// Package pipeline defines the report-module lifecycle contract and a
// sequential runner. A pipeline is an ordered list of modules; each run
// configures, runs, and tears down every module in order, isolating one
// module's failure from the rest and collecting a per-run report.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a module operation or of a whole run.
type Status int

const (
	StatusOK Status = iota
	StatusFailed
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Identity is static module metadata.
type Identity struct {
	Name        string
	Description string
	Version     string
}

// Module is one stage of a report pipeline.
//
// Configure receives the module's argument string from pipeline
// configuration and must be side-effect-light; a module that cannot operate
// with its configuration surfaces that from Run, not Configure. Run performs
// the module's work and returns its aggregate outcome. Teardown releases any
// held resources and always succeeds for modules that hold none.
type Module interface {
	Identify() Identity
	Configure(arg string) Status
	Run(ctx context.Context) Status
	Teardown() Status
}

// Logger receives pipeline progress messages. Logging never influences
// control flow.
type Logger interface {
	LogInfo(message string)
	LogError(message string)
}

// ModuleResult records one module's outcome within a run.
type ModuleResult struct {
	Identity Identity
	Status   Status
	Duration time.Duration
}

// Report summarizes one pipeline run.
type Report struct {
	RunID   string
	Started time.Time
	Results []ModuleResult
	Status  Status
}

type stage struct {
	module Module
	arg    string
}

// Pipeline is a sequential runner over an ordered list of modules.
type Pipeline struct {
	stages []stage
	log    Logger
}

// New creates an empty pipeline logging to log.
func New(log Logger) *Pipeline {
	return &Pipeline{log: log}
}

// Add appends a module with its configuration argument.
func (p *Pipeline) Add(m Module, arg string) {
	p.stages = append(p.stages, stage{module: m, arg: arg})
}

// Run executes every module in order. A failed module downgrades the run's
// status but never stops later modules. Teardown runs for every module
// after the last one finishes.
func (p *Pipeline) Run(ctx context.Context) *Report {
	report := &Report{
		RunID:   uuid.New().String(),
		Started: time.Now(),
		Status:  StatusOK,
	}

	p.log.LogInfo(fmt.Sprintf("pipeline run %s: %d module(s)", report.RunID, len(p.stages)))

	for _, st := range p.stages {
		identity := st.module.Identify()

		if status := st.module.Configure(st.arg); status != StatusOK {
			p.log.LogError(fmt.Sprintf("%s: configure failed", identity.Name))
			report.Results = append(report.Results, ModuleResult{Identity: identity, Status: status})
			report.Status = StatusFailed
			continue
		}

		start := time.Now()
		status := st.module.Run(ctx)
		elapsed := time.Since(start)

		if status != StatusOK {
			p.log.LogError(fmt.Sprintf("%s: run failed (%s)", identity.Name, elapsed.Round(time.Millisecond)))
			report.Status = StatusFailed
		} else {
			p.log.LogInfo(fmt.Sprintf("%s: ok (%s)", identity.Name, elapsed.Round(time.Millisecond)))
		}

		report.Results = append(report.Results, ModuleResult{
			Identity: identity,
			Status:   status,
			Duration: elapsed,
		})
	}

	for _, st := range p.stages {
		if status := st.module.Teardown(); status != StatusOK {
			p.log.LogError(fmt.Sprintf("%s: teardown failed", st.module.Identify().Name))
			report.Status = StatusFailed
		}
	}

	return report
}
