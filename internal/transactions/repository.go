package transactions

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("transaction not found")

type Repository interface {
	Create(ctx context.Context, transaction *Transaction) error
	GetByID(ctx context.Context, userID, id string) (*Transaction, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Transaction, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, transaction *Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// GetByID scopes the lookup to the owning user, so one user's transaction id
// is indistinguishable from a missing one for everyone else.
func (r *repository) GetByID(ctx context.Context, userID, id string) (*Transaction, error) {
	var transaction Transaction
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Transaction, error) {
	var records []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Transaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Transaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
