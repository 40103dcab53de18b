package leave

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *Leave) error
	FindByID(ctx context.Context, id uint) (*Leave, error)
	FindAll(ctx context.Context) ([]Leave, error)
	FindAllByUser(ctx context.Context, userID uint) ([]Leave, error)
	FindPending(ctx context.Context) ([]Leave, error)
	Update(ctx context.Context, l *Leave) error

	// Balance access lives here so the ledger owns every write to
	// users.remaining_leaves, the same way the users table is never
	// touched by any other module.
	LockUserBalance(ctx context.Context, userID uint) (int, error)
	SetUserBalance(ctx context.Context, userID uint, balance int) error
	AddToUserBalance(ctx context.Context, userID uint, delta int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("start_date DESC, id ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID uint) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC, id ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindPending(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", StatusPending).
		Order("start_date DESC, id ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) LockUserBalance(ctx context.Context, userID uint) (int, error) {
	var row struct {
		RemainingLeaves int
	}
	err := r.db.WithContext(ctx).
		Table("users").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("remaining_leaves").
		Where("id = ?", userID).
		Take(&row).Error
	return row.RemainingLeaves, err
}

func (r *repository) SetUserBalance(ctx context.Context, userID uint, balance int) error {
	return r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Update("remaining_leaves", balance).Error
}

func (r *repository) AddToUserBalance(ctx context.Context, userID uint, delta int) error {
	return r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Update("remaining_leaves", gorm.Expr("remaining_leaves + ?", delta)).Error
}
