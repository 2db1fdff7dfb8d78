package guard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"taskflow/internal/domain"
	"taskflow/internal/domain/models"
	"taskflow/internal/domain/services"
	"taskflow/internal/policy"
)

// mockResourceRepo serves parent lookups from a fixed map
type mockResourceRepo struct {
	refs map[string]*models.ResourceRef
}

func (m *mockResourceRepo) Create(ctx context.Context, resource *models.Resource) error {
	return nil
}

func (m *mockResourceRepo) GetRef(ctx context.Context, resourceType, id string) (*models.ResourceRef, error) {
	ref, ok := m.refs[resourceType+"/"+id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ref, nil
}

func (m *mockResourceRepo) Delete(ctx context.Context, resourceType, id string) error {
	return nil
}

func strPtr(s string) *string { return &s }

func newTestGuard(t *testing.T, refs map[string]*models.ResourceRef) services.ReferentialGuard {
	t.Helper()
	catalog, err := policy.NewRegistry()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGuard(&mockResourceRepo{refs: refs}, catalog, logger)
}

func TestGuard_NoParent(t *testing.T) {
	g := newTestGuard(t, nil)

	res := models.ResourceRef{Type: "space", OwnerID: "user-1", CompanyID: strPtr("co-1")}
	if err := g.CheckParent(context.Background(), res); err != nil {
		t.Errorf("resource without parent should pass, got %v", err)
	}
}

func TestGuard_SameTenantParent(t *testing.T) {
	g := newTestGuard(t, map[string]*models.ResourceRef{
		"project/p-1": {Type: "project", ID: "p-1", OwnerID: "admin-1", CompanyID: strPtr("co-1")},
	})

	res := models.ResourceRef{
		Type:      "task",
		OwnerID:   "user-1",
		CompanyID: strPtr("co-1"),
		Parent:    &models.ParentRef{Type: "project", ID: "p-1"},
	}
	if err := g.CheckParent(context.Background(), res); err != nil {
		t.Errorf("same-tenant parent should pass, got %v", err)
	}
}

func TestGuard_CrossTenantParent(t *testing.T) {
	g := newTestGuard(t, map[string]*models.ResourceRef{
		"project/p-2": {Type: "project", ID: "p-2", OwnerID: "admin-2", CompanyID: strPtr("co-2")},
	})

	res := models.ResourceRef{
		Type:      "task",
		OwnerID:   "user-1",
		CompanyID: strPtr("co-1"),
		Parent:    &models.ParentRef{Type: "project", ID: "p-2"},
	}
	err := g.CheckParent(context.Background(), res)

	var refErr *domain.ReferentialError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected referential error, got %v", err)
	}
	if !errors.Is(err, domain.ErrReferential) {
		t.Error("referential error should match ErrReferential")
	}
	if refErr.ChildType != "task" || refErr.ParentType != "project" {
		t.Errorf("unexpected error detail: %+v", refErr)
	}
}

func TestGuard_PersonalMode(t *testing.T) {
	refs := map[string]*models.ResourceRef{
		"project/own":   {Type: "project", ID: "own", OwnerID: "user-1"},
		"project/other": {Type: "project", ID: "other", OwnerID: "user-2"},
	}
	g := newTestGuard(t, refs)
	ctx := context.Background()

	t.Run("same owner passes", func(t *testing.T) {
		res := models.ResourceRef{
			Type:    "task",
			OwnerID: "user-1",
			Parent:  &models.ParentRef{Type: "project", ID: "own"},
		}
		if err := g.CheckParent(ctx, res); err != nil {
			t.Errorf("same-owner personal linkage should pass, got %v", err)
		}
	})

	t.Run("owner mismatch refused", func(t *testing.T) {
		res := models.ResourceRef{
			Type:    "task",
			OwnerID: "user-1",
			Parent:  &models.ParentRef{Type: "project", ID: "other"},
		}
		if err := g.CheckParent(ctx, res); !errors.Is(err, domain.ErrReferential) {
			t.Errorf("expected referential error, got %v", err)
		}
	})

	t.Run("mixed personal and company refused", func(t *testing.T) {
		res := models.ResourceRef{
			Type:      "task",
			OwnerID:   "user-1",
			CompanyID: strPtr("co-1"),
			Parent:    &models.ParentRef{Type: "project", ID: "own"},
		}
		if err := g.CheckParent(ctx, res); !errors.Is(err, domain.ErrReferential) {
			t.Errorf("expected referential error, got %v", err)
		}
	})
}

func TestGuard_WrongParentType(t *testing.T) {
	g := newTestGuard(t, map[string]*models.ResourceRef{
		"space/s-1": {Type: "space", ID: "s-1", OwnerID: "admin-1", CompanyID: strPtr("co-1")},
	})

	// Tasks belong to projects, not spaces
	res := models.ResourceRef{
		Type:      "task",
		OwnerID:   "user-1",
		CompanyID: strPtr("co-1"),
		Parent:    &models.ParentRef{Type: "space", ID: "s-1"},
	}
	if err := g.CheckParent(context.Background(), res); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGuard_MissingParent(t *testing.T) {
	g := newTestGuard(t, nil)

	res := models.ResourceRef{
		Type:      "task",
		OwnerID:   "user-1",
		CompanyID: strPtr("co-1"),
		Parent:    &models.ParentRef{Type: "project", ID: "gone"},
	}
	if err := g.CheckParent(context.Background(), res); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}
