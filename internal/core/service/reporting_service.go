package service

import (
	"context"
	"fmt"

	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/port/input"
	"github.com/bankportal/payment-portal/internal/port/output"
)

// ReportingServiceImpl implements the ReportingService input port
type ReportingServiceImpl struct {
	paymentRepo output.PaymentRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(paymentRepo output.PaymentRepository) input.ReportingService {
	return &ReportingServiceImpl{paymentRepo: paymentRepo}
}

// DashboardMetrics counts payments per status at call time
func (s *ReportingServiceImpl) DashboardMetrics(ctx context.Context, actor core.Actor) (*input.DashboardMetrics, error) {
	if err := actor.Authorize(core.StaffRoles...); err != nil {
		return nil, err
	}

	counts, err := s.paymentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}

	metrics := &input.DashboardMetrics{
		Pending:   counts[core.PaymentStatusPending],
		Verified:  counts[core.PaymentStatusVerified],
		Submitted: counts[core.PaymentStatusSubmitted],
		Rejected:  counts[core.PaymentStatusRejected],
	}
	metrics.Total = metrics.Pending + metrics.Verified + metrics.Submitted + metrics.Rejected
	return metrics, nil
}
