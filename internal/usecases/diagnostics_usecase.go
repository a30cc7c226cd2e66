package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"token-forge.backend/internal/config"
	domainerrors "token-forge.backend/internal/domain/errors"
	"token-forge.backend/internal/domain/repositories"
	"token-forge.backend/pkg/logger"
)

// MaxReportedCollections caps the collection names included in a store report.
const MaxReportedCollections = 10

// Status strings shown by the diagnostics endpoint.
const (
	statusBackendRunning   = "✅ Running"
	statusDBNotAvailable   = "❌ Not Available"
	statusDBAvailable      = "✅ Available"
	statusDBWorking        = "✅ Connected & Working"
	statusDBUninitialized  = "⚠️  Available but not initialized"
	statusSet              = "✅ Set"
	statusNotSet           = "❌ Not Set"
	connectionConnected    = "Connected"
	connectionNotConnected = "Not Connected"
)

// StoreReport is the diagnostic view of the backend and its store.
type StoreReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	Driver           string   `json:"driver,omitempty"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// DiagnosticsUsecase reports store availability without ever failing.
type DiagnosticsUsecase struct {
	repo repositories.BlueprintRepository
	db   config.DatabaseConfig
}

// NewDiagnosticsUsecase creates a diagnostics usecase. repo may be nil when no store was opened.
func NewDiagnosticsUsecase(repo repositories.BlueprintRepository, db config.DatabaseConfig) *DiagnosticsUsecase {
	return &DiagnosticsUsecase{repo: repo, db: db}
}

// StoreReport checks the store. Every fault is folded into the report as a degraded status.
func (u *DiagnosticsUsecase) StoreReport(ctx context.Context) (report StoreReport) {
	report = StoreReport{
		Backend:          statusBackendRunning,
		Database:         statusDBNotAvailable,
		ConnectionStatus: connectionNotConnected,
		Collections:      []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error(ctx, "Store diagnostics panicked", zap.Any("panic", r))
			report.Database = "❌ Error: " + domainerrors.Truncate(fmt.Sprint(r), domainerrors.MaxDetailLength)
		}
	}()

	if u.repo == nil {
		report.Database = statusDBUninitialized
		return report
	}

	d := u.repo.Diagnostics(ctx, MaxReportedCollections)
	if !d.Initialized {
		report.Database = statusDBUninitialized
		return report
	}

	report.Database = statusDBAvailable
	report.Driver = d.Driver
	report.DatabaseURL = setStatus(u.db.URL != "")
	report.DatabaseName = setStatus(u.db.Name != "")

	if d.Reachable {
		report.ConnectionStatus = connectionConnected
	}

	switch {
	case d.PingError != nil:
		report.Database = degraded(d.PingError)
	case !d.Reachable:
		report.Database = statusDBNotAvailable
	case d.ListError != nil:
		report.Database = degraded(d.ListError)
	default:
		report.Database = statusDBWorking
		if d.Collections != nil {
			report.Collections = d.Collections
		}
	}
	return report
}

func degraded(err error) string {
	return "⚠️  Connected but Error: " + domainerrors.Truncate(err.Error(), domainerrors.MaxDetailLength)
}

func setStatus(set bool) *string {
	s := statusNotSet
	if set {
		s = statusSet
	}
	return &s
}
