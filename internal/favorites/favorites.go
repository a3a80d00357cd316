// Package favorites persists each customer's favorite product ids in a Redis
// key, serialized as a JSON array. The set is independent of the product
// catalog and survives sessions.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "matita:favs"

// Store reads and writes per-customer favorites sets
type Store struct {
	client *redis.Client
}

// NewStore creates a favorites store over the given Redis client
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", keyPrefix, userID)
}

// List returns the customer's favorite product ids. A missing key is an
// empty set.
func (s *Store) List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	raw, err := s.client.Get(ctx, key(userID)).Bytes()
	if err == redis.Nil {
		return []uuid.UUID{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		// corrupted slot: start over rather than poison every request
		return []uuid.UUID{}, nil
	}
	return ids, nil
}

// Set returns the favorites as a membership set for the view builder
func (s *Store) Set(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	ids, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// Toggle adds the product id to the set, or removes it when already present.
// Returns whether the product is a favorite after the call.
func (s *Store) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	ids, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}

	next := make([]uuid.UUID, 0, len(ids)+1)
	removed := false
	for _, id := range ids {
		if id == productID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, productID)
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.client.Set(ctx, key(userID), raw, 0).Err(); err != nil {
		return false, fmt.Errorf("failed to save favorites: %w", err)
	}
	return !removed, nil
}
