package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bankportal/payment-portal/internal/constant/model/db"
	"github.com/bankportal/payment-portal/internal/core"
	"github.com/bankportal/payment-portal/internal/port/output"
)

// GormUserRepository is a secondary adapter that implements UserRepository output port
type GormUserRepository struct {
	gormDB *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(gormDB *gorm.DB) output.UserRepository {
	return &GormUserRepository{gormDB: gormDB}
}

func userToCore(u *db.User) *core.User {
	return &core.User{
		ID:            u.ID,
		FullName:      u.FullName,
		IDNumber:      u.IDNumber,
		AccountNumber: u.AccountNumber,
		PasswordHash:  u.PasswordHash,
		Role:          core.Role(u.Role),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *core.User) error {
	row := &db.User{
		ID:            user.ID,
		FullName:      user.FullName,
		IDNumber:      user.IDNumber,
		AccountNumber: user.AccountNumber,
		PasswordHash:  user.PasswordHash,
		Role:          string(user.Role),
		CreatedAt:     user.CreatedAt,
	}
	if err := r.gormDB.WithContext(ctx).Create(row).Error; err != nil {
		return storageErr("create user", err)
	}
	user.ID = row.ID
	user.CreatedAt = row.CreatedAt
	user.UpdatedAt = row.UpdatedAt
	return nil
}

// GetByID retrieves a user by id
func (r *GormUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*core.User, error) {
	var row db.User
	if err := r.gormDB.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, storageErr("user "+id.String(), err)
	}
	return userToCore(&row), nil
}

// GetByAccountNumber retrieves a user by account number
func (r *GormUserRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (*core.User, error) {
	var row db.User
	if err := r.gormDB.WithContext(ctx).Where("account_number = ?", accountNumber).First(&row).Error; err != nil {
		return nil, storageErr("user by account number", err)
	}
	return userToCore(&row), nil
}

// GetByIDs resolves several users in one query
func (r *GormUserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]core.User, error) {
	out := make(map[uuid.UUID]core.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []db.User
	if err := r.gormDB.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, storageErr("users by id", err)
	}
	for i := range rows {
		out[rows[i].ID] = *userToCore(&rows[i])
	}
	return out, nil
}

// List returns every user, newest first
func (r *GormUserRepository) List(ctx context.Context) ([]core.User, error) {
	var rows []db.User
	if err := r.gormDB.WithContext(ctx).Order(newestFirst).Find(&rows).Error; err != nil {
		return nil, storageErr("list users", err)
	}
	out := make([]core.User, 0, len(rows))
	for i := range rows {
		out = append(out, *userToCore(&rows[i]))
	}
	return out, nil
}

// UpdateRole changes the user's role
func (r *GormUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role core.Role) (*core.User, error) {
	res := r.gormDB.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"role": string(role), "updated_at": time.Now()})
	if res.Error != nil {
		return nil, storageErr("update user role", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, storageErr("user "+id.String(), gorm.ErrRecordNotFound)
	}
	return r.GetByID(ctx, id)
}

// Delete removes the user
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.gormDB.WithContext(ctx).Where("id = ?", id).Delete(&db.User{})
	if res.Error != nil {
		return storageErr("delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return storageErr("user "+id.String(), gorm.ErrRecordNotFound)
	}
	return nil
}
