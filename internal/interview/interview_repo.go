package interview

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, i *Interview) error
	FindByID(ctx context.Context, id uint) (*Interview, error)
	FindAll(ctx context.Context) ([]Interview, error)
	ListIDs(ctx context.Context) ([]uint, error)
	UpdateID(ctx context.Context, oldID, newID uint) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
	ResetSequence(ctx context.Context, lastID uint) error
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

func (r *repository) Create(ctx context.Context, i *Interview) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Interview, error) {
	var i Interview
	if err := r.db.WithContext(ctx).First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Interview, error) {
	var interviews []Interview
	err := r.db.WithContext(ctx).Order("id ASC").Find(&interviews).Error
	return interviews, err
}

func (r *repository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&Interview{}).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) UpdateID(ctx context.Context, oldID, newID uint) error {
	return r.db.WithContext(ctx).
		Model(&Interview{}).
		Where("id = ?", oldID).
		Update("id", newID).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Interview{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&Interview{}).Error
}

// ResetSequence rewinds the ID sequence so the next insert gets lastID+1.
// lastID 0 puts the sequence back to its initial state.
func (r *repository) ResetSequence(ctx context.Context, lastID uint) error {
	if lastID == 0 {
		return r.db.WithContext(ctx).
			Exec("SELECT setval('interviews_id_seq', 1, false)").Error
	}
	return r.db.WithContext(ctx).
		Exec("SELECT setval('interviews_id_seq', ?, true)", lastID).Error
}
