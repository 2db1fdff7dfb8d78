package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
)

type mockProfileRepo struct {
	profiles map[string]*models.Profile
	err      error
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *models.Profile) error { return nil }

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return nil, domain.ErrNotFound
}

func (m *mockProfileRepo) ListByCompany(ctx context.Context, companyID string) ([]models.Profile, error) {
	return nil, nil
}

func (m *mockProfileRepo) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	return nil
}

func (m *mockProfileRepo) UpdateCompany(ctx context.Context, userID, companyID string) error {
	return nil
}

func (m *mockProfileRepo) Delete(ctx context.Context, userID string) error { return nil }

type mockOperatorRepo struct {
	operators map[string]bool
	err       error
}

func (m *mockOperatorRepo) IsOperator(ctx context.Context, userID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.operators[userID], nil
}

func (m *mockOperatorRepo) AnyExists(ctx context.Context) (bool, error) {
	return len(m.operators) > 0, nil
}

func (m *mockOperatorRepo) Grant(ctx context.Context, userID string) error { return nil }

func strPtr(s string) *string { return &s }

func claimsFor(subject, role string) *models.AccessClaims {
	return &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		Role:             role,
	}
}

func newTestResolver(profiles *mockProfileRepo, operators *mockOperatorRepo) *profileResolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewResolver(profiles, operators, logger).(*profileResolver)
}

func TestResolve_CompanyMember(t *testing.T) {
	profiles := &mockProfileRepo{profiles: map[string]*models.Profile{
		"user-1": {UserID: "user-1", CompanyID: strPtr("co-1"), Role: models.RoleUser},
	}}
	resolver := newTestResolver(profiles, &mockOperatorRepo{})

	id, err := resolver.Resolve(context.Background(), claimsFor("user-1", "authenticated"))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if !id.HasProfile {
		t.Error("expected HasProfile")
	}
	if id.UserID != "user-1" {
		t.Errorf("UserID = %q", id.UserID)
	}
	if id.CompanyID == nil || *id.CompanyID != "co-1" {
		t.Errorf("CompanyID = %v", id.CompanyID)
	}
	if id.Role != models.RoleUser {
		t.Errorf("Role = %q", id.Role)
	}
	if id.IsSystemOperator {
		t.Error("plain member resolved as operator")
	}
}

func TestResolve_NoProfileIsNotAnError(t *testing.T) {
	resolver := newTestResolver(&mockProfileRepo{}, &mockOperatorRepo{})

	id, err := resolver.Resolve(context.Background(), claimsFor("ghost", "authenticated"))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if id.HasProfile {
		t.Error("subject without profile resolved with HasProfile")
	}
	if id.UserID != "ghost" {
		t.Errorf("UserID = %q", id.UserID)
	}
}

func TestResolve_Unauthenticated(t *testing.T) {
	resolver := newTestResolver(&mockProfileRepo{}, &mockOperatorRepo{})
	ctx := context.Background()

	if _, err := resolver.Resolve(ctx, nil); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("nil claims: expected unauthorized, got %v", err)
	}
	if _, err := resolver.Resolve(ctx, claimsFor("", "authenticated")); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("empty subject: expected unauthorized, got %v", err)
	}
}

func TestResolve_OperatorCapability(t *testing.T) {
	t.Run("service role token", func(t *testing.T) {
		resolver := newTestResolver(&mockProfileRepo{}, &mockOperatorRepo{})

		id, err := resolver.Resolve(context.Background(), claimsFor("svc", "service_role"))
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if !id.IsSystemOperator {
			t.Error("service role token did not resolve as operator")
		}
	})

	t.Run("seeded operator without a profile", func(t *testing.T) {
		// cmd/seed grants operator capability without creating a profile;
		// resolution must still surface it alongside the deny-everything
		// tenant state
		operators := &mockOperatorRepo{operators: map[string]bool{"op-0": true}}
		resolver := newTestResolver(&mockProfileRepo{}, operators)

		id, err := resolver.Resolve(context.Background(), claimsFor("op-0", "authenticated"))
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if !id.IsSystemOperator {
			t.Error("seeded operator without a profile did not resolve as operator")
		}
		if id.HasProfile {
			t.Error("operator without profile resolved with HasProfile")
		}
	})

	t.Run("operator table", func(t *testing.T) {
		profiles := &mockProfileRepo{profiles: map[string]*models.Profile{
			"op-1": {UserID: "op-1", Role: models.RoleAdmin},
		}}
		operators := &mockOperatorRepo{operators: map[string]bool{"op-1": true}}
		resolver := newTestResolver(profiles, operators)

		id, err := resolver.Resolve(context.Background(), claimsFor("op-1", "authenticated"))
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if !id.IsSystemOperator {
			t.Error("registered operator did not resolve as operator")
		}
	})

	t.Run("profile role never grants operator", func(t *testing.T) {
		profiles := &mockProfileRepo{profiles: map[string]*models.Profile{
			"admin-1": {UserID: "admin-1", CompanyID: strPtr("co-1"), Role: models.RoleAdmin},
		}}
		resolver := newTestResolver(profiles, &mockOperatorRepo{})

		id, err := resolver.Resolve(context.Background(), claimsFor("admin-1", "authenticated"))
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}
		if id.IsSystemOperator {
			t.Error("company admin resolved as system operator")
		}
	})
}

func TestResolve_RepositoryFailure(t *testing.T) {
	profiles := &mockProfileRepo{err: errors.New("connection refused")}
	resolver := newTestResolver(profiles, &mockOperatorRepo{})

	if _, err := resolver.Resolve(context.Background(), claimsFor("user-1", "authenticated")); err == nil {
		t.Error("expected error when profile lookup fails")
	}
}
