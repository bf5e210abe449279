package transactions

import (
	"context"

	"github.com/google/uuid"
)

// ListResult wraps a page of a user's transactions.
type ListResult struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
	Limit        int           `json:"limit"`
	Offset       int           `json:"offset"`
}

type Service interface {
	Create(ctx context.Context, userID string, req *CreateTransactionRequest) (*Transaction, error)
	Get(ctx context.Context, userID, id string) (*Transaction, error)
	List(ctx context.Context, userID string, limit, offset int) (*ListResult, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req *CreateTransactionRequest) (*Transaction, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	transaction := &Transaction{
		UserID:      ownerID,
		AmountCents: req.AmountCents,
		Currency:    currency,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

func (s *service) Get(ctx context.Context, userID, id string) (*Transaction, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *service) List(ctx context.Context, userID string, limit, offset int) (*ListResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Transactions: records,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}, nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
