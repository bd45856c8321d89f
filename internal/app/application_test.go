package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udvasito/storefront/internal/app/storage/memory"
)

func TestNewDefaultsToMemoryStores(t *testing.T) {
	application, err := New(Stores{}, Options{}, nil)
	require.NoError(t, err)
	require.NotNil(t, application.Catalog)
	require.NotNil(t, application.Checkout)
	require.Nil(t, application.Uploads, "no uploader configured")
	require.False(t, application.Auth.Enabled())

	ctx := context.Background()
	require.NoError(t, application.Start(ctx))
	require.NoError(t, application.Stop(ctx))

	books, err := application.Catalog.ListBooks(ctx)
	require.NoError(t, err)
	require.Empty(t, books)
}

func TestSeedPopulatesEmptyStore(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, Seed(ctx, store, store))

	books, err := store.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 4)
	require.Equal(t, "The Silent Echo", books[0].Title)

	items, err := store.ListPortfolioItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestSeedIsIdempotent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	require.NoError(t, Seed(ctx, store, store))
	require.NoError(t, Seed(ctx, store, store))

	books, err := store.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 4, "second seed must not duplicate rows")
}

func TestSeedLeavesExistingCatalogAlone(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	_, err := store.CreateBook(ctx, seedBooks[0])
	require.NoError(t, err)

	require.NoError(t, Seed(ctx, store, store))

	books, err := store.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1, "non-empty store must not be seeded")

	// Portfolio is seeded independently of books.
	items, err := store.ListPortfolioItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
}
