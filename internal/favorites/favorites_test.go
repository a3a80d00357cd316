package favorites

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewStore(client), mr
}

func TestListReturnsEmptySetForUnknownCustomer(t *testing.T) {
	store, _ := newTestStore(t)

	ids, err := store.List(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if ids == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(ids) != 0 {
		t.Errorf("expected no favorites, got %d", len(ids))
	}
}

func TestToggleAddsAndRemoves(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	userID := uuid.New()
	productID := uuid.New()

	fav, err := store.Toggle(ctx, userID, productID)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if !fav {
		t.Error("first toggle should mark the product as a favorite")
	}

	ids, err := store.List(ctx, userID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != productID {
		t.Errorf("expected [%s], got %v", productID, ids)
	}

	fav, err = store.Toggle(ctx, userID, productID)
	if err != nil {
		t.Fatalf("second Toggle failed: %v", err)
	}
	if fav {
		t.Error("second toggle should remove the favorite")
	}

	ids, err = store.List(ctx, userID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no favorites after removal, got %v", ids)
	}
}

func TestTogglePreservesOtherFavorites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	userID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	if _, err := store.Toggle(ctx, userID, first); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if _, err := store.Toggle(ctx, userID, second); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if _, err := store.Toggle(ctx, userID, first); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	ids, err := store.List(ctx, userID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != second {
		t.Errorf("expected [%s], got %v", second, ids)
	}
}

func TestFavoritesAreIsolatedPerCustomer(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	alice := uuid.New()
	bruno := uuid.New()
	productID := uuid.New()

	if _, err := store.Toggle(ctx, alice, productID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	ids, err := store.List(ctx, bruno)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("favorites leaked between customers: %v", ids)
	}
}

func TestSetBuildsMembershipMap(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	userID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	if _, err := store.Toggle(ctx, userID, first); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if _, err := store.Toggle(ctx, userID, second); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	set, err := store.Set(ctx, userID)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if len(set) != 2 || !set[first] || !set[second] {
		t.Errorf("expected membership for both products, got %v", set)
	}
	if set[uuid.New()] {
		t.Error("unknown product should not be a member")
	}
}

func TestListRecoversFromCorruptedKey(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	userID := uuid.New()
	mr.Set(key(userID), "not json")

	ids, err := store.List(ctx, userID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("corrupted key should read as empty set, got %v", ids)
	}

	fav, err := store.Toggle(ctx, userID, uuid.New())
	if err != nil {
		t.Fatalf("Toggle after corruption failed: %v", err)
	}
	if !fav {
		t.Error("toggle after corruption should add the favorite")
	}
}
