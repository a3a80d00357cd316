package repository

import (
	"context"
	"database/sql"
	"fmt"

	"matita-shop/internal/domain"
)

// IdeaRepository defines the interface for the ideas box
type IdeaRepository interface {
	Create(ctx context.Context, idea *domain.Idea) error
	List(ctx context.Context) ([]domain.Idea, error)
}

type ideaRepository struct {
	db *sql.DB
}

// NewIdeaRepository creates a new instance of IdeaRepository
func NewIdeaRepository(db *sql.DB) IdeaRepository {
	return &ideaRepository{db: db}
}

// Create stores a customer suggestion
func (r *ideaRepository) Create(ctx context.Context, idea *domain.Idea) error {
	query := `
		INSERT INTO ideas (id, user_name, title, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query, idea.ID, idea.UserName, idea.Title, idea.Content, idea.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create idea: %w", err)
	}

	return nil
}

// List retrieves all suggestions, newest first
func (r *ideaRepository) List(ctx context.Context) ([]domain.Idea, error) {
	query := `
		SELECT id, user_name, title, content, created_at
		FROM ideas
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	ideas := []domain.Idea{}
	for rows.Next() {
		var idea domain.Idea
		if err := rows.Scan(&idea.ID, &idea.UserName, &idea.Title, &idea.Content, &idea.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ideas: %w", err)
	}

	return ideas, nil
}
