package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bankportal/payment-portal/internal/constant/model/db"
	"github.com/bankportal/payment-portal/internal/core"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := db.Open(sqlite.Open(dsn), db.Options{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn.DB
}

func testPayment(owner uuid.UUID, createdAt time.Time) *core.Payment {
	return &core.Payment{
		ID:               uuid.New(),
		OwnerID:          owner,
		Amount:           decimal.RequireFromString("1500.50"),
		Currency:         core.CurrencyZAR,
		Provider:         core.ProviderSWIFT,
		RecipientAccount: "987654321",
		SwiftCode:        "ABSAZAJJ",
		Reference:        "Invoice 101",
		Status:           core.PaymentStatusPending,
		CreatedAt:        createdAt,
	}
}

func TestPaymentRepository_CreateAndGet(t *testing.T) {
	repo := NewGormPaymentRepository(openTestDB(t))
	ctx := context.Background()

	p := testPayment(uuid.New(), time.Now().UTC())
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Amount.Equal(p.Amount) {
		t.Fatalf("expected amount %s, got %s", p.Amount, got.Amount)
	}
	if got.OwnerID != p.OwnerID || got.SwiftCode != "ABSAZAJJ" || got.Status != core.PaymentStatusPending {
		t.Fatalf("unexpected payment %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	_, err = repo.GetByID(ctx, uuid.New())
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPaymentRepository_ListOrdering(t *testing.T) {
	repo := NewGormPaymentRepository(openTestDB(t))
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := repo.Create(ctx, testPayment(owner, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := repo.Create(ctx, testPayment(other, base.Add(time.Hour))); err != nil {
		t.Fatalf("create: %v", err)
	}

	own, err := repo.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(own) != 3 {
		t.Fatalf("expected 3, got %d", len(own))
	}
	for i, p := range own {
		if p.OwnerID != owner {
			t.Fatal("listed another owner's payment")
		}
		if i > 0 && !p.CreatedAt.Before(own[i-1].CreatedAt) {
			t.Fatal("expected newest first")
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 || all[0].OwnerID != other {
		t.Fatalf("expected 4 payments with the newest first, got %d", len(all))
	}
}

func TestPaymentRepository_UpdateStatus(t *testing.T) {
	repo := NewGormPaymentRepository(openTestDB(t))
	ctx := context.Background()

	p := testPayment(uuid.New(), time.Now().UTC())
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	staff := core.Actor{ID: uuid.New(), Role: core.RoleEmployee}
	change, err := p.Transition(staff, "verified", time.Now().UTC())
	if err != nil {
		t.Fatalf("transition: %v", err)
	}

	updated, previous, err := repo.UpdateStatus(ctx, p.ID, change)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if previous != core.PaymentStatusPending {
		t.Fatalf("expected pending replaced, got %s", previous)
	}
	if updated.Status != core.PaymentStatusVerified {
		t.Fatalf("expected verified, got %s", updated.Status)
	}
	if updated.VerifiedBy == nil || *updated.VerifiedBy != staff.ID || updated.VerifiedAt == nil {
		t.Fatal("expected verification stamps")
	}

	reloaded, _ := repo.GetByID(ctx, p.ID)
	if reloaded.Status != core.PaymentStatusVerified {
		t.Fatalf("expected persisted status, got %s", reloaded.Status)
	}

	// a change computed from a stale read still reports the stored status it replaced
	stale, err := p.Transition(staff, "rejected", time.Now().UTC())
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if _, previous, err = repo.UpdateStatus(ctx, p.ID, stale); err != nil {
		t.Fatalf("update: %v", err)
	}
	if stale.From != core.PaymentStatusPending || previous != core.PaymentStatusVerified {
		t.Fatalf("expected verified replaced, got %s", previous)
	}

	_, _, err = repo.UpdateStatus(ctx, uuid.New(), change)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPaymentRepository_CountByStatus(t *testing.T) {
	repo := NewGormPaymentRepository(openTestDB(t))
	ctx := context.Background()

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	for _, s := range core.AllStatuses {
		if v, ok := counts[s]; !ok || v != 0 {
			t.Fatalf("expected zero for %s, got %d (present=%v)", s, v, ok)
		}
	}

	owner := uuid.New()
	for i := 0; i < 3; i++ {
		_ = repo.Create(ctx, testPayment(owner, time.Now().UTC()))
	}
	rejected := testPayment(owner, time.Now().UTC())
	rejected.Status = core.PaymentStatusRejected
	_ = repo.Create(ctx, rejected)

	counts, err = repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts[core.PaymentStatusPending] != 3 || counts[core.PaymentStatusRejected] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestUserRepository(t *testing.T) {
	repo := NewGormUserRepository(openTestDB(t))
	ctx := context.Background()

	u := &core.User{FullName: "Naledi Mokoena", IDNumber: "9001015009087", AccountNumber: "12345678", PasswordHash: "hash", Role: core.RoleCustomer}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatal("expected id assigned")
	}

	dup := &core.User{FullName: "Someone Else", IDNumber: "9001015009088", AccountNumber: "12345678", PasswordHash: "hash", Role: core.RoleCustomer}
	if err := repo.Create(ctx, dup); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	byAccount, err := repo.GetByAccountNumber(ctx, "12345678")
	if err != nil || byAccount.ID != u.ID {
		t.Fatalf("lookup by account: %v", err)
	}

	found, err := repo.GetByIDs(ctx, []uuid.UUID{u.ID, uuid.New()})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(found) != 1 || found[u.ID].FullName != "Naledi Mokoena" {
		t.Fatalf("unexpected owners %v", found)
	}

	promoted, err := repo.UpdateRole(ctx, u.ID, core.RoleAdmin)
	if err != nil || promoted.Role != core.RoleAdmin {
		t.Fatalf("update role: %v", err)
	}
	if _, err := repo.UpdateRole(ctx, uuid.New(), core.RoleAdmin); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, u.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, u.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventRepository_RecordIsIdempotent(t *testing.T) {
	events := NewGormPaymentEventRepository(openTestDB(t))
	ctx := context.Background()

	paymentID := uuid.New()
	first := core.PaymentEvent{
		ID:         uuid.New(),
		Type:       core.EventPaymentCreated,
		PaymentID:  paymentID,
		ActorID:    uuid.New(),
		ToStatus:   core.PaymentStatusPending,
		OccurredAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	second := core.PaymentEvent{
		ID:         uuid.New(),
		Type:       core.EventPaymentStatusChanged,
		PaymentID:  paymentID,
		ActorID:    uuid.New(),
		FromStatus: core.PaymentStatusPending,
		ToStatus:   core.PaymentStatusVerified,
		OccurredAt: first.OccurredAt.Add(time.Minute),
	}

	for _, e := range []core.PaymentEvent{second, first, first} {
		if err := events.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	list, err := events.ListByPayment(ctx, paymentID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 events, got %d", len(list))
	}
	if list[0].ID != first.ID || list[1].ToStatus != core.PaymentStatusVerified {
		t.Fatalf("expected oldest first, got %+v", list)
	}
}
