package users

import (
	"context"
	"errors"
	"strings"

	"ledgerly/pkg/hash"
)

// CreateRequest is the payload for direct user creation.
type CreateRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ListResult wraps a page of user projections.
type ListResult struct {
	Users  []Projection `json:"users"`
	Total  int64        `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

type Service interface {
	Create(ctx context.Context, req *CreateRequest) (*Projection, error)
	Get(ctx context.Context, id string) (*Projection, error)
	List(ctx context.Context, limit, offset int) (*ListResult, error)
}

type service struct {
	repo   Repository
	hasher hash.Hasher
}

func NewService(repo Repository, hasher hash.Hasher) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
	}
}

// Create stores a new user record. Email is case-folded before the
// uniqueness check; the password is digested and never stored plain.
func (s *service) Create(ctx context.Context, req *CreateRequest) (*Projection, error) {
	email := strings.ToLower(req.Email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:     req.Name,
		Email:    email,
		Password: hashedPassword,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	projection := user.Project()
	return &projection, nil
}

func (s *service) Get(ctx context.Context, id string) (*Projection, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	projection := user.Project()
	return &projection, nil
}

func (s *service) List(ctx context.Context, limit, offset int) (*ListResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	records, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	projections := make([]Projection, 0, len(records))
	for i := range records {
		projections = append(projections, records[i].Project())
	}

	return &ListResult{
		Users:  projections,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
