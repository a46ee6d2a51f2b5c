package input

import (
	"context"

	"github.com/bankportal/payment-portal/internal/core"
)

// ReportingService is an input port for dashboard aggregates
type ReportingService interface {
	// DashboardMetrics counts payments per status (staff only)
	DashboardMetrics(ctx context.Context, actor core.Actor) (*DashboardMetrics, error)
}

// DashboardMetrics holds per-status payment counts
type DashboardMetrics struct {
	Pending   int64
	Verified  int64
	Submitted int64
	Rejected  int64
	Total     int64
}
