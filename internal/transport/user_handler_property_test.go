package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"matita-shop/internal/domain"
	"matita-shop/internal/middleware"
	"matita-shop/internal/repository"
	"matita-shop/internal/service"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// Mock repositories for testing
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
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

func (m *mockUserRepository) UpdatePoints(ctx context.Context, id uuid.UUID, points int) error {
	for _, user := range m.users {
		if user.ID == id {
			user.Points = points
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (m *mockUserRepository) ListSocios(ctx context.Context) ([]domain.User, error) {
	var socios []domain.User
	for _, user := range m.users {
		if user.IsSocio {
			socios = append(socios, *user)
		}
	}
	return socios, nil
}

// stubCartService satisfies the handler dependency; logout only needs Clear
type stubCartService struct {
	cleared []uuid.UUID
}

func (s *stubCartService) AddLine(ctx context.Context, userID, productID uuid.UUID, variant string, quantity int) (service.CartSummary, error) {
	return service.CartSummary{}, nil
}

func (s *stubCartService) RemoveLine(userID uuid.UUID, index int) service.CartSummary {
	return service.CartSummary{}
}

func (s *stubCartService) Clear(userID uuid.UUID) {
	s.cleared = append(s.cleared, userID)
}

func (s *stubCartService) Summary(userID uuid.UUID) service.CartSummary {
	return service.CartSummary{}
}

func (s *stubCartService) Checkout(ctx context.Context, userID uuid.UUID) (*service.CheckoutResult, error) {
	return nil, service.ErrEmptyCart
}

func contextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, middleware.UserIDKey, userID.String())
}

func newTestUserHandler() (*UserHandler, service.UserService, *stubCartService) {
	userRepo := newMockUserRepository()
	userService := service.NewUserService(userRepo, "test-secret", 15)
	carts := &stubCartService{}
	logger, _ := zap.NewDevelopment()
	return NewUserHandler(userService, carts, logger), userService, carts
}

func TestProperty_InvalidRegistrationDataIsRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("registration with invalid data returns validation errors", prop.ForAll(
		func(invalidCase int) bool {
			handler, _, _ := newTestUserHandler()

			var reqBody RegisterRequest

			switch invalidCase % 4 {
			case 0:
				// Empty email
				reqBody = RegisterRequest{
					Name:     "Caro",
					Email:    "",
					Password: "ValidPass123",
				}
			case 1:
				// Invalid email format
				reqBody = RegisterRequest{
					Name:     "Caro",
					Email:    "not-an-email",
					Password: "ValidPass123",
				}
			case 2:
				// Short password (less than 8 characters)
				reqBody = RegisterRequest{
					Name:     "Caro",
					Email:    "caro@example.com",
					Password: "short",
				}
			case 3:
				// Missing name
				reqBody = RegisterRequest{
					Email:    "caro@example.com",
					Password: "ValidPass123",
				}
			}

			body, _ := json.Marshal(reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Register(w, req)

			if w.Code != http.StatusBadRequest {
				t.Logf("FAIL: Expected 400 status code, got %d", w.Code)
				return false
			}

			var response map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Logf("FAIL: Could not decode error response: %v", err)
				return false
			}

			if _, exists := response["error"]; !exists {
				t.Logf("FAIL: Response missing 'error' field")
				return false
			}

			return true
		},
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_SuccessfulRegistrationReturnsProfileData(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("successful registration returns profile with welcome points", prop.ForAll(
		func(name string, email string, password string) bool {
			handler, _, _ := newTestUserHandler()

			reqBody := RegisterRequest{
				Name:     name,
				Email:    email,
				Password: password,
			}
			body, _ := json.Marshal(reqBody)
			req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Register(w, req)

			if w.Code != http.StatusCreated {
				t.Logf("FAIL: Expected 201 status code, got %d", w.Code)
				return false
			}

			var profile UserProfile
			if err := json.NewDecoder(w.Body).Decode(&profile); err != nil {
				t.Logf("FAIL: Could not decode response: %v", err)
				return false
			}

			if profile.ID == "" {
				t.Logf("FAIL: Profile missing ID")
				return false
			}
			if _, err := uuid.Parse(profile.ID); err != nil {
				t.Logf("FAIL: Profile ID is not a valid UUID: %v", err)
				return false
			}

			if profile.Name != name || profile.Email != email {
				t.Logf("FAIL: Profile fields do not match registration data")
				return false
			}

			if profile.Points != domain.WelcomePoints {
				t.Logf("FAIL: Expected %d welcome points, got %d", domain.WelcomePoints, profile.Points)
				return false
			}

			if profile.IsAdmin || profile.IsSocio {
				t.Logf("FAIL: New accounts must not carry privileges")
				return false
			}

			return true
		},
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ValidLoginReturnsTokenAndProfile(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("valid login returns access token and profile", prop.ForAll(
		func(name string, email string, password string) bool {
			handler, userService, _ := newTestUserHandler()

			if _, err := userService.Register(context.Background(), name, email, password); err != nil {
				return true // Skip if registration fails
			}

			loginReq := LoginRequest{
				Email:    email,
				Password: password,
			}
			body, _ := json.Marshal(loginReq)
			req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Login(w, req)

			if w.Code != http.StatusOK {
				t.Logf("FAIL: Expected 200 status code, got %d", w.Code)
				return false
			}

			var loginResp LoginResponse
			if err := json.NewDecoder(w.Body).Decode(&loginResp); err != nil {
				t.Logf("FAIL: Could not decode login response: %v", err)
				return false
			}

			if loginResp.AccessToken == "" {
				t.Logf("FAIL: Access token is empty")
				return false
			}

			if loginResp.User.Email != email {
				t.Logf("FAIL: User email mismatch")
				return false
			}

			claims, err := userService.ValidateToken(loginResp.AccessToken)
			if err != nil {
				t.Logf("FAIL: Access token validation failed: %v", err)
				return false
			}

			if claims.UserID.String() != loginResp.User.ID {
				t.Logf("FAIL: Token user ID doesn't match profile ID")
				return false
			}

			return true
		},
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	handler, userService, _ := newTestUserHandler()

	if _, err := userService.Register(context.Background(), "Caro", "caro@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	body, _ := json.Marshal(LoginRequest{Email: "caro@example.com", Password: "wrongpassword"})
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	handler, userService, _ := newTestUserHandler()

	if _, err := userService.Register(context.Background(), "Caro", "caro@example.com", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	body, _ := json.Marshal(RegisterRequest{Name: "Otra", Email: "caro@example.com", Password: "password456"})
	req := httptest.NewRequest(http.MethodPost, "/api/users/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Register(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestLogoutClearsTheCart(t *testing.T) {
	handler, userService, carts := newTestUserHandler()

	user, err := userService.Register(context.Background(), "Caro", "caro@example.com", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	req = req.WithContext(contextWithUserID(req.Context(), user.ID))
	w := httptest.NewRecorder()

	handler.Logout(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(carts.cleared) != 1 || carts.cleared[0] != user.ID {
		t.Errorf("expected cart cleared for %s, got %v", user.ID, carts.cleared)
	}
}
