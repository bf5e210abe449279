package users

import (
	"context"
	"fmt"
	"testing"

	"ledgerly/pkg/hash"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func newTestService(t *testing.T) Service {
	t.Helper()

	return NewService(NewRepository(newTestDB(t)), hash.NewBcryptHasher())
}

func TestCreate(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()

	projection, err := service.Create(ctx, &CreateRequest{
		Name:     "New User",
		Email:    "New@Example.COM",
		Password: "password",
	})
	require.NoError(t, err)
	assert.Equal(t, "New User", projection.Name)
	assert.Equal(t, "new@example.com", projection.Email)
	assert.NotEmpty(t, projection.ID)
}

func TestCreateDuplicateEmail(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, &CreateRequest{
		Name:     "First",
		Email:    "dup@example.com",
		Password: "password",
	})
	require.NoError(t, err)

	_, err = service.Create(ctx, &CreateRequest{
		Name:     "Second",
		Email:    "DUP@example.com",
		Password: "password",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateMapsDuplicateKey(t *testing.T) {
	t.Parallel()

	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &User{Name: "First", Email: "taken@example.com", Password: "digest"}))

	// Two creations racing past the lookup in the service still hit the
	// unique index; the violation must map to the domain error
	err := repo.Create(ctx, &User{Name: "Second", Email: "taken@example.com", Password: "digest"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGet(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &CreateRequest{
		Name:     "Lookup",
		Email:    "lookup@example.com",
		Password: "password",
	})
	require.NoError(t, err)

	projection, err := service.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Lookup", projection.Name)
	assert.Equal(t, "lookup@example.com", projection.Email)

	_, err = service.Get(ctx, "9f2c4d6e-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := service.Create(ctx, &CreateRequest{
			Name:     fmt.Sprintf("User %d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: "password",
		})
		require.NoError(t, err)
	}

	result, err := service.List(ctx, 3, 0)
	require.NoError(t, err)
	assert.Len(t, result.Users, 3)
	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, 3, result.Limit)

	rest, err := service.List(ctx, 3, 3)
	require.NoError(t, err)
	assert.Len(t, rest.Users, 2)
}

func TestListClampsLimit(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()

	result, err := service.List(ctx, -5, -10)
	require.NoError(t, err)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, 0, result.Offset)

	result, err = service.List(ctx, 500, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, result.Limit)
}

func TestProjectionOmitsPassword(t *testing.T) {
	t.Parallel()

	user := User{Name: "Plain", Email: "plain@example.com", Password: "digest"}
	projection := user.Project()

	assert.Equal(t, "Plain", projection.Name)
	assert.Equal(t, "plain@example.com", projection.Email)
}
