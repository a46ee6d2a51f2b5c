package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment represents a payment entity in the database
type Payment struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Amount           decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Currency         string          `gorm:"type:varchar(3);not null" json:"currency"`
	Provider         string          `gorm:"type:varchar(20);not null;default:SWIFT" json:"provider"`
	RecipientAccount string          `gorm:"type:varchar(20);not null" json:"recipient_account"`
	SwiftCode        string          `gorm:"type:varchar(11);not null" json:"swift_code"`
	Reference        string          `gorm:"type:varchar(80)" json:"reference"`
	Status           string          `gorm:"type:varchar(20);not null;index" json:"status"`
	VerifiedBy       *uuid.UUID      `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt       *time.Time      `json:"verified_at,omitempty"`
	SubmittedAt      *time.Time      `json:"submitted_at,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate is a GORM hook that runs before creating a record
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stampCreate(&p.CreatedAt, &p.UpdatedAt)
	return nil
}

// BeforeUpdate is a GORM hook that runs before updating a record
func (p *Payment) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}

// User represents a portal user in the database
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName      string    `gorm:"type:varchar(60);not null" json:"full_name"`
	IDNumber      string    `gorm:"type:varchar(13);not null" json:"id_number"`
	AccountNumber string    `gorm:"type:varchar(12);not null;uniqueIndex" json:"account_number"`
	PasswordHash  string    `gorm:"type:varchar(72);not null" json:"-"`
	Role          string    `gorm:"type:varchar(10);not null;default:customer" json:"role"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	stampCreate(&u.CreatedAt, &u.UpdatedAt)
	return nil
}

// PaymentEvent is one row of the payment audit trail
type PaymentEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Type       string    `gorm:"type:varchar(40);not null" json:"type"`
	PaymentID  uuid.UUID `gorm:"type:uuid;not null;index" json:"payment_id"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null" json:"actor_id"`
	FromStatus string    `gorm:"type:varchar(20)" json:"from_status,omitempty"`
	ToStatus   string    `gorm:"type:varchar(20);not null" json:"to_status"`
	OccurredAt time.Time `gorm:"not null" json:"occurred_at"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName specifies the table name for GORM
func (PaymentEvent) TableName() string {
	return "payment_events"
}

func stampCreate(createdAt, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}
