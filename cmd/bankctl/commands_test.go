package main

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core"
)

type memoryUsers struct {
	byAccount map[string]*core.User
}

func (m *memoryUsers) Create(ctx context.Context, user *core.User) error {
	if _, ok := m.byAccount[user.AccountNumber]; ok {
		return core.ErrConflict
	}
	user.ID = uuid.New()
	m.byAccount[user.AccountNumber] = user
	return nil
}

func (m *memoryUsers) GetByID(ctx context.Context, id uuid.UUID) (*core.User, error) {
	for _, u := range m.byAccount {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryUsers) GetByAccountNumber(ctx context.Context, accountNumber string) (*core.User, error) {
	if u, ok := m.byAccount[accountNumber]; ok {
		return u, nil
	}
	return nil, core.ErrNotFound
}

func (m *memoryUsers) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]core.User, error) {
	return map[uuid.UUID]core.User{}, nil
}

func (m *memoryUsers) List(ctx context.Context) ([]core.User, error) { return nil, nil }

func (m *memoryUsers) UpdateRole(ctx context.Context, id uuid.UUID, role core.Role) (*core.User, error) {
	return nil, core.ErrNotFound
}

func (m *memoryUsers) Delete(ctx context.Context, id uuid.UUID) error { return core.ErrNotFound }

func TestSeedStaff(t *testing.T) {
	users := &memoryUsers{byAccount: map[string]*core.User{
		"90000002": {ID: uuid.New(), AccountNumber: "90000002", Role: core.RoleAdmin},
	}}

	created, err := seedStaff(context.Background(), users, "S3cure!Pass", defaultStaff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected only the missing employee to be created, got %d", created)
	}

	emp := users.byAccount["90000001"]
	if emp == nil || emp.Role != core.RoleEmployee || emp.PasswordHash == "" || emp.PasswordHash == "S3cure!Pass" {
		t.Fatalf("unexpected employee %+v", emp)
	}

	created, err = seedStaff(context.Background(), users, "S3cure!Pass", defaultStaff)
	if err != nil || created != 0 {
		t.Fatalf("second run should create nothing, got %d, %v", created, err)
	}
}
