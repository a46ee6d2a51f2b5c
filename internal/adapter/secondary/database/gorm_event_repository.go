package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bankportal/payment-portal/internal/constant/model/db"
	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/port/output"
)

// GormPaymentEventRepository stores the payment audit trail
type GormPaymentEventRepository struct {
	gormDB *gorm.DB
}

// NewGormPaymentEventRepository creates a new GORM event repository
func NewGormPaymentEventRepository(gormDB *gorm.DB) output.PaymentEventRepository {
	return &GormPaymentEventRepository{gormDB: gormDB}
}

// Record inserts the event; an event id seen before is ignored so redeliveries are harmless
func (r *GormPaymentEventRepository) Record(ctx context.Context, event core.PaymentEvent) error {
	row := &db.PaymentEvent{
		ID:         event.ID,
		Type:       string(event.Type),
		PaymentID:  event.PaymentID,
		ActorID:    event.ActorID,
		FromStatus: string(event.FromStatus),
		ToStatus:   string(event.ToStatus),
		OccurredAt: event.OccurredAt,
	}
	if err := r.gormDB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error; err != nil {
		return storageErr("record payment event", err)
	}
	return nil
}

// ListByPayment returns the payment's events, oldest first
func (r *GormPaymentEventRepository) ListByPayment(ctx context.Context, paymentID uuid.UUID) ([]core.PaymentEvent, error) {
	var rows []db.PaymentEvent
	if err := r.gormDB.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		Order("occurred_at ASC").
		Find(&rows).Error; err != nil {
		return nil, storageErr("list payment events", err)
	}

	out := make([]core.PaymentEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, core.PaymentEvent{
			ID:         row.ID,
			Type:       core.EventType(row.Type),
			PaymentID:  row.PaymentID,
			ActorID:    row.ActorID,
			FromStatus: core.PaymentStatus(row.FromStatus),
			ToStatus:   core.PaymentStatus(row.ToStatus),
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}
