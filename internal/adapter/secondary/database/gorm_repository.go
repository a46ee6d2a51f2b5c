package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bankportal/payment-portal/internal/constant/model/db"
	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/port/output"
)

// newestFirst orders listings by creation time, newest first
const newestFirst = "created_at DESC, id DESC"

// GormPaymentRepository is a secondary adapter that implements PaymentRepository output port
type GormPaymentRepository struct {
	gormDB *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository
func NewGormPaymentRepository(gormDB *gorm.DB) output.PaymentRepository {
	return &GormPaymentRepository{gormDB: gormDB}
}

// toCore converts db.Payment to core.Payment
func toCore(p *db.Payment) *core.Payment {
	return &core.Payment{
		ID:               p.ID,
		OwnerID:          p.OwnerID,
		Amount:           p.Amount,
		Currency:         core.Currency(p.Currency),
		Provider:         core.Provider(p.Provider),
		RecipientAccount: p.RecipientAccount,
		SwiftCode:        p.SwiftCode,
		Reference:        p.Reference,
		Status:           core.PaymentStatus(p.Status),
		VerifiedBy:       p.VerifiedBy,
		VerifiedAt:       p.VerifiedAt,
		SubmittedAt:      p.SubmittedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// fromCore converts core.Payment to db.Payment
func fromCore(p *core.Payment) *db.Payment {
	return &db.Payment{
		ID:               p.ID,
		OwnerID:          p.OwnerID,
		Amount:           p.Amount,
		Currency:         string(p.Currency),
		Provider:         string(p.Provider),
		RecipientAccount: p.RecipientAccount,
		SwiftCode:        p.SwiftCode,
		Reference:        p.Reference,
		Status:           string(p.Status),
		VerifiedBy:       p.VerifiedBy,
		VerifiedAt:       p.VerifiedAt,
		SubmittedAt:      p.SubmittedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// storageErr maps GORM errors onto the core error kinds
func storageErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, core.ErrConflict)
	}
	return fmt.Errorf("%w: %s: %w", core.ErrStorage, op, err)
}

// Create creates a new payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *core.Payment) error {
	dbPayment := fromCore(payment)
	if err := r.gormDB.WithContext(ctx).Create(dbPayment).Error; err != nil {
		return storageErr("create payment", err)
	}
	// Update core entity with values set by GORM hooks
	payment.ID = dbPayment.ID
	payment.CreatedAt = dbPayment.CreatedAt
	payment.UpdatedAt = dbPayment.UpdatedAt
	return nil
}

// GetByID retrieves a payment by its ID
func (r *GormPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*core.Payment, error) {
	var dbPayment db.Payment
	if err := r.gormDB.WithContext(ctx).Where("id = ?", id).First(&dbPayment).Error; err != nil {
		return nil, storageErr("payment "+id.String(), err)
	}
	return toCore(&dbPayment), nil
}

// ListByOwner returns the owner's payments, newest first
func (r *GormPaymentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]core.Payment, error) {
	var rows []db.Payment
	if err := r.gormDB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order(newestFirst).
		Find(&rows).Error; err != nil {
		return nil, storageErr("list payments by owner", err)
	}
	return toCoreSlice(rows), nil
}

// ListAll returns every payment, newest first
func (r *GormPaymentRepository) ListAll(ctx context.Context) ([]core.Payment, error) {
	var rows []db.Payment
	if err := r.gormDB.WithContext(ctx).Order(newestFirst).Find(&rows).Error; err != nil {
		return nil, storageErr("list payments", err)
	}
	return toCoreSlice(rows), nil
}

func toCoreSlice(rows []db.Payment) []core.Payment {
	out := make([]core.Payment, 0, len(rows))
	for i := range rows {
		out = append(out, *toCore(&rows[i]))
	}
	return out
}

// UpdateStatus writes a status change under a row lock and returns the updated payment.
// Concurrent changes to one payment are serialized; the last one wins.
func (r *GormPaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, change core.StatusChange) (*core.Payment, core.PaymentStatus, error) {
	var dbPayment db.Payment
	var previous core.PaymentStatus
	err := r.gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the row using SELECT FOR UPDATE
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&dbPayment).Error; err != nil {
			return err
		}

		previous = core.PaymentStatus(dbPayment.Status)
		dbPayment.Status = string(change.To)
		if change.VerifiedBy != nil {
			dbPayment.VerifiedBy = change.VerifiedBy
			dbPayment.VerifiedAt = change.VerifiedAt
		}
		if change.SubmittedAt != nil {
			dbPayment.SubmittedAt = change.SubmittedAt
		}

		return tx.Save(&dbPayment).Error
	})
	if err != nil {
		return nil, "", storageErr("update payment "+id.String(), err)
	}
	return toCore(&dbPayment), previous, nil
}

// CountByStatus returns the number of payments in every status, zero included
func (r *GormPaymentRepository) CountByStatus(ctx context.Context) (map[core.PaymentStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.gormDB.WithContext(ctx).
		Model(&db.Payment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, storageErr("count payments", err)
	}

	counts := make(map[core.PaymentStatus]int64, len(core.AllStatuses))
	for _, s := range core.AllStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[core.PaymentStatus(row.Status)] = row.Count
	}
	return counts, nil
}
