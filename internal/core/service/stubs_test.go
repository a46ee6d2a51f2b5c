package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bankportal/payment-portal/internal/core"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubPaymentRepo struct {
	mu        sync.Mutex
	payments  map[uuid.UUID]*core.Payment
	seq       int
	createErr error
	listErr   error
	updates   int

	// beforeUpdate runs under the lock, ahead of the write
	beforeUpdate func(p *core.Payment)
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: map[uuid.UUID]*core.Payment{}}
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *core.Payment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	payment.CreatedAt = time.Date(2024, 1, 1, 0, 0, s.seq, 0, time.UTC)
	payment.UpdatedAt = payment.CreatedAt
	cp := *payment
	s.payments[payment.ID] = &cp
	return nil
}

func (s *stubPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubPaymentRepo) newestFirst(keep func(*core.Payment) bool) []core.Payment {
	out := []core.Payment{}
	for _, p := range s.payments {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *stubPaymentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]core.Payment, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newestFirst(func(p *core.Payment) bool { return p.OwnerID == ownerID }), nil
}

func (s *stubPaymentRepo) ListAll(ctx context.Context) ([]core.Payment, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newestFirst(func(*core.Payment) bool { return true }), nil
}

func (s *stubPaymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, change core.StatusChange) (*core.Payment, core.PaymentStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.payments[id]
	if !ok {
		return nil, "", core.ErrNotFound
	}
	if s.beforeUpdate != nil {
		s.beforeUpdate(p)
	}
	previous := p.Status
	p.Apply(change)
	s.updates++
	cp := *p
	return &cp, previous, nil
}

func (s *stubPaymentRepo) CountByStatus(ctx context.Context) (map[core.PaymentStatus]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[core.PaymentStatus]int64{}
	for _, status := range core.AllStatuses {
		counts[status] = 0
	}
	for _, p := range s.payments {
		counts[p.Status]++
	}
	return counts, nil
}

type stubUserRepo struct {
	users     map[uuid.UUID]*core.User
	createErr error
}

func newStubUserRepo(users ...*core.User) *stubUserRepo {
	s := &stubUserRepo{users: map[uuid.UUID]*core.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUserRepo) Create(ctx context.Context, user *core.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	for _, u := range s.users {
		if u.AccountNumber == user.AccountNumber {
			return core.ErrConflict
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*core.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) GetByAccountNumber(ctx context.Context, accountNumber string) (*core.User, error) {
	for _, u := range s.users {
		if u.AccountNumber == accountNumber {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *stubUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]core.User, error) {
	out := map[uuid.UUID]core.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = *u
		}
	}
	return out, nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]core.User, error) {
	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role core.Role) (*core.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.users[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type stubMessaging struct {
	events []core.PaymentEvent
	err    error
}

func (s *stubMessaging) PublishPaymentEvent(ctx context.Context, event core.PaymentEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *stubMessaging) Close() error { return nil }

type stubEventRepo struct {
	recorded map[uuid.UUID]core.PaymentEvent
	err      error
}

func (s *stubEventRepo) Record(ctx context.Context, event core.PaymentEvent) error {
	if s.err != nil {
		return s.err
	}
	if s.recorded == nil {
		s.recorded = map[uuid.UUID]core.PaymentEvent{}
	}
	s.recorded[event.ID] = event
	return nil
}

func (s *stubEventRepo) ListByPayment(ctx context.Context, paymentID uuid.UUID) ([]core.PaymentEvent, error) {
	var out []core.PaymentEvent
	for _, e := range s.recorded {
		if e.PaymentID == paymentID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubTokens struct {
	issued []uuid.UUID
}

func (s *stubTokens) Issue(user *core.User) (string, time.Time, error) {
	s.issued = append(s.issued, user.ID)
	return "token-" + user.ID.String(), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}
