package health

import (
	"context"
	"errors"

	"github.com/kailas-cloud/docsearch/internal/db"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the gateway is up but the engine is not usable.
	Degraded Status = "degraded"
)

// Connection describes gateway-to-engine reachability.
type Connection string

const (
	// Connected means the engine answered.
	Connected Connection = "connected"
	// Disconnected means the engine could not be reached or answered unexpectedly.
	Disconnected Connection = "disconnected"
)

// clusterRed means at least one primary shard is unassigned.
const clusterRed = "red"

// EngineReport is the engine part of a health report.
type EngineReport struct {
	Driver        string
	Connection    Connection
	ClusterStatus string
	Version       string
	Error         string
}

// Report aggregates health check results.
type Report struct {
	Status Status
	Engine EngineReport
}

// Service coordinates health checks.
type Service struct {
	engine EngineInspector
	driver string
}

// New creates a Service for the engine reached through the given driver.
func New(engine EngineInspector, driver string) *Service {
	return &Service{engine: engine, driver: driver}
}

// Check probes the engine. It never fails: problems are reported in the Report.
func (s *Service) Check(ctx context.Context) Report {
	rep := EngineReport{Driver: s.driver}

	info, err := s.engine.Info(ctx)
	if err != nil {
		rep.Connection = Disconnected
		rep.Error = describe(err)
		return Report{Status: Degraded, Engine: rep}
	}

	rep.Connection = Connected
	rep.ClusterStatus = info.ClusterStatus
	rep.Version = info.Version

	status := Healthy
	if info.ClusterStatus == clusterRed {
		status = Degraded
	}
	return Report{Status: status, Engine: rep}
}

// describe gives a short reason without leaking addresses or credentials.
func describe(err error) string {
	switch {
	case errors.Is(err, db.ErrUnavailable):
		return "engine unreachable"
	case errors.Is(err, db.ErrMalformedResponse):
		return "unexpected engine response"
	case errors.Is(err, db.ErrRejected):
		return "engine rejected health probe"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "health probe cancelled"
	default:
		return "engine check failed"
	}
}
