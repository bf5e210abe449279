package transactions

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&Transaction{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return NewService(NewRepository(db))
}

func TestCreateTransaction(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.NewString()

	transaction, err := service.Create(ctx, ownerID, &CreateTransactionRequest{
		AmountCents: -2599,
		Description: "groceries",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-2599), transaction.AmountCents)
	assert.Equal(t, "USD", transaction.Currency) // default when omitted
	assert.Equal(t, ownerID, transaction.UserID.String())
	assert.NotEqual(t, uuid.Nil, transaction.ID)
}

func TestCreateTransactionRejectsBadOwner(t *testing.T) {
	t.Parallel()

	service := newTestService(t)

	_, err := service.Create(context.Background(), "not-a-uuid", &CreateTransactionRequest{
		AmountCents: 100,
	})
	assert.Error(t, err)
}

func TestGetTransactionIsOwnerScoped(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.NewString()

	created, err := service.Create(ctx, ownerID, &CreateTransactionRequest{
		AmountCents: 5000,
		Currency:    "EUR",
	})
	require.NoError(t, err)

	found, err := service.Get(ctx, ownerID, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "EUR", found.Currency)

	// Another user sees the same id as missing
	_, err = service.Get(ctx, uuid.NewString(), created.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTransactions(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.NewString()
	otherID := uuid.NewString()

	for i := 0; i < 4; i++ {
		_, err := service.Create(ctx, ownerID, &CreateTransactionRequest{AmountCents: int64(i + 1)})
		require.NoError(t, err)
	}
	_, err := service.Create(ctx, otherID, &CreateTransactionRequest{AmountCents: 999})
	require.NoError(t, err)

	result, err := service.List(ctx, ownerID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, result.Transactions, 4)
	assert.Equal(t, int64(4), result.Total)

	for _, transaction := range result.Transactions {
		assert.Equal(t, ownerID, transaction.UserID.String())
	}
}

func TestDeleteTransaction(t *testing.T) {
	t.Parallel()

	service := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.NewString()

	created, err := service.Create(ctx, ownerID, &CreateTransactionRequest{AmountCents: 100})
	require.NoError(t, err)

	// Deleting someone else's transaction fails without touching it
	assert.ErrorIs(t, service.Delete(ctx, uuid.NewString(), created.ID.String()), ErrNotFound)

	require.NoError(t, service.Delete(ctx, ownerID, created.ID.String()))
	_, err = service.Get(ctx, ownerID, created.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	// Second delete reports not found
	assert.ErrorIs(t, service.Delete(ctx, ownerID, created.ID.String()), ErrNotFound)
}
