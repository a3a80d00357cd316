package service

import (
	"context"
	"sort"

	"matita-shop/internal/domain"
	"matita-shop/internal/repository"

	"github.com/google/uuid"
)

// Mock repositories for testing

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) UpdatePoints(ctx context.Context, userID uuid.UUID, points int) error {
	for _, user := range m.users {
		if user.ID == userID {
			user.Points = points
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *mockUserRepository) ListSocios(ctx context.Context) ([]domain.User, error) {
	socios := []domain.User{}
	for _, user := range m.users {
		if user.IsSocio {
			socios = append(socios, *user)
		}
	}
	sort.Slice(socios, func(i, j int) bool { return socios[i].Points > socios[j].Points })
	return socios, nil
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
	order    []uuid.UUID
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	cp := *product
	m.products[product.ID] = &cp
	m.order = append([]uuid.UUID{product.ID}, m.order...)
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	for i, pid := range m.order {
		if pid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	cp := *product
	return &cp, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, id := range m.order {
		out = append(out, *m.products[id])
	}
	return out, nil
}

func (m *mockProductRepository) Search(ctx context.Context, term string) ([]domain.Product, error) {
	return m.List(ctx)
}

type mockSaleRepository struct {
	sales []*domain.Sale
}

func newMockSaleRepository() *mockSaleRepository {
	return &mockSaleRepository{}
}

func (m *mockSaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	m.sales = append(m.sales, sale)
	return nil
}

func (m *mockSaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	out := []domain.Sale{}
	for i := len(m.sales) - 1; i >= 0; i-- {
		out = append(out, *m.sales[i])
	}
	return out, nil
}
