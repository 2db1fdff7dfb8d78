package authz

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

func newTestEvaluator(t *testing.T) services.PolicyEvaluator {
	t.Helper()
	catalog, err := policy.NewRegistry()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return NewEvaluator(catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func strPtr(s string) *string { return &s }

func companyMember(userID, companyID string, role models.Role) models.Identity {
	return models.Identity{
		UserID:     userID,
		CompanyID:  strPtr(companyID),
		Role:       role,
		HasProfile: true,
	}
}

func personalUser(userID string) models.Identity {
	return models.Identity{
		UserID:     userID,
		Role:       models.RoleAdmin,
		HasProfile: true,
	}
}

func TestEvaluator_DefaultDeny(t *testing.T) {
	eval := newTestEvaluator(t)
	ctx := context.Background()

	// Authenticated subject without a profile
	noProfile := models.Identity{UserID: "user-1"}

	resources := []models.ResourceRef{
		{Type: "task", ID: "t-1", OwnerID: "user-1", CompanyID: strPtr("co-1")},
		{Type: "task", ID: "t-2", OwnerID: "user-1"},
		{Type: "space", ID: "s-1", OwnerID: "other", CompanyID: strPtr("co-1")},
	}
	ops := []models.Operation{models.OpCreate, models.OpRead, models.OpUpdate, models.OpDelete}

	for _, res := range resources {
		for _, op := range ops {
			allowed, err := eval.Can(ctx, noProfile, res, op)
			if err != nil {
				t.Fatalf("Can(%s %s) error: %v", res.Type, op, err)
			}
			if allowed {
				t.Errorf("subject without profile allowed %s on %s %s", op, res.Type, res.ID)
			}
		}
	}
}

func TestEvaluator_OperatorBypass(t *testing.T) {
	eval := newTestEvaluator(t)
	ctx := context.Background()

	// Operator capability without any profile at all
	operator := models.Identity{UserID: "op-1", IsSystemOperator: true}

	cases := []struct {
		name string
		res  models.ResourceRef
		op   models.Operation
	}{
		{"company resource", models.ResourceRef{Type: "project", ID: "p-1", OwnerID: "other", CompanyID: strPtr("co-9")}, models.OpDelete},
		{"personal resource of another user", models.ResourceRef{Type: "task", ID: "t-1", OwnerID: "other"}, models.OpUpdate},
		{"profile of another user", models.ResourceRef{Type: "profile", OwnerID: "other", CompanyID: strPtr("co-9")}, models.OpCreate},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := eval.Can(ctx, operator, tt.res, tt.op)
			if err != nil {
				t.Fatalf("Can error: %v", err)
			}
			if !allowed {
				t.Errorf("operator denied %s on %s", tt.op, tt.res.Type)
			}
		})
	}
}

func TestEvaluator_CompanyMembership(t *testing.T) {
	eval := newTestEvaluator(t)
	ctx := context.Background()

	member := companyMember("user-1", "co-1", models.RoleUser)
	sameCompanyTask := models.ResourceRef{Type: "task", ID: "t-1", OwnerID: "other", CompanyID: strPtr("co-1")}
	otherCompanyTask := models.ResourceRef{Type: "task", ID: "t-2", OwnerID: "other", CompanyID: strPtr("co-2")}

	allowed, err := eval.Can(ctx, member, sameCompanyTask, models.OpRead)
	if err != nil || !allowed {
		t.Errorf("member read in own company: allowed=%v err=%v", allowed, err)
	}

	allowed, err = eval.Can(ctx, member, sameCompanyTask, models.OpUpdate)
	if err != nil || !allowed {
		t.Errorf("member update of member-writable type: allowed=%v err=%v", allowed, err)
	}

	for _, op := range []models.Operation{models.OpRead, models.OpUpdate, models.OpDelete} {
		allowed, err = eval.Can(ctx, member, otherCompanyTask, op)
		if err != nil {
			t.Fatalf("Can error: %v", err)
		}
		if allowed {
			t.Errorf("member allowed %s across companies", op)
		}
	}
}

func TestEvaluator_RoleRestrictedTypes(t *testing.T) {
	eval := newTestEvaluator(t)
	ctx := context.Background()

	admin := companyMember("admin-1", "co-1", models.RoleAdmin)
	member := companyMember("user-1", "co-1", models.RoleUser)

	tests := []struct {
		name    string
		id      models.Identity
		resType string
		op      models.Operation
		want    bool
	}{
		{"member reads project", member, "project", models.OpRead, true},
		{"member cannot create project", member, "project", models.OpCreate, false},
		{"member cannot update status", member, "status", models.OpUpdate, false},
		{"member cannot delete tag", member, "tag", models.OpDelete, false},
		{"admin creates project", admin, "project", models.OpCreate, true},
		{"admin updates status", admin, "status", models.OpUpdate, true},
		{"admin deletes tag", admin, "tag", models.OpDelete, true},
		{"member creates task", member, "task", models.OpCreate, true},
		{"member updates comment", member, "comment", models.OpUpdate, true},
		{"member deletes time entry", member, "time_entry", models.OpDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := models.ResourceRef{Type: tt.resType, ID: "r-1", OwnerID: "other", CompanyID: strPtr("co-1")}
			allowed, err := eval.Can(ctx, tt.id, res, tt.op)
			if err != nil {
				t.Fatalf("Can error: %v", err)
			}
			if allowed != tt.want {
				t.Errorf("got allowed=%v, want %v", allowed, tt.want)
			}
		})
	}
}

func TestEvaluator_PersonalMode(t *testing.T) {
	eval := newTestEvaluator(t)
	ctx := context.Background()

	owner := personalUser("user-1")
	stranger := personalUser("user-2")
	companyCaller := companyMember("user-3", "co-1", models.RoleAdmin)

	ownTask := models.ResourceRef{Type: "task", ID: "t-1", OwnerID: "user-1"}

	for _, op := range []models.Operation{models.OpRead, models.OpUpdate, models.OpDelete} {
		allowed, err := eval.Can(ctx, owner, ownTask, op)
		if err != nil || !allowed {
			t.Errorf("owner %s on own personal task: allowed=%v err=%v", op, allowed, err)
		}

		allowed, err = eval.Can(ctx, stranger, ownTask, op)
		if err != nil {
			t.Fatalf("Can error: %v", err)
		}
		if allowed {
			t.Errorf("non-owner allowed %s on personal task", op)
		}
	}

	t.Run("create requires personal caller and self ownership", func(t *testing.T) {
		newOwn := models.ResourceRef{Type: "task", OwnerID: "user-1"}
		allowed, err := eval.Can(ctx, owner, newOwn, models.OpCreate)
		if err != nil || !allowed {
			t.Errorf("personal caller creating own resource: allowed=%v err=%v", allowed, err)
		}

		// Company member cannot create personal-mode resources
		newByCompany := models.ResourceRef{Type: "task", OwnerID: "user-3"}
		allowed, err = eval.Can(ctx, companyCaller, newByCompany, models.OpCreate)
		if err != nil {
			t.Fatalf("Can error: %v", err)
		}
		if allowed {
			t.Error("company member allowed to create a personal-mode resource")
		}

		// Nobody creates personal resources owned by someone else
		newForOther := models.ResourceRef{Type: "task", OwnerID: "user-2"}
		allowed, err = eval.Can(ctx, owner, newForOther, models.OpCreate)
		if err != nil {
			t.Fatalf("Can error: %v", err)
		}
		if allowed {
			t.Error("caller allowed to create a personal resource owned by another user")
		}
	})
}

func TestEvaluator_ProfileRules(t *testing.T) {
	eval := newTestEvaluator(t)
	ctx := context.Background()

	admin := companyMember("admin-1", "co-1", models.RoleAdmin)
	member := companyMember("user-1", "co-1", models.RoleUser)

	ownProfile := func(id models.Identity) models.ResourceRef {
		return models.ResourceRef{Type: "profile", OwnerID: id.UserID, CompanyID: id.CompanyID}
	}
	memberProfile := models.ResourceRef{Type: "profile", OwnerID: "user-1", CompanyID: strPtr("co-1")}
	otherCompanyProfile := models.ResourceRef{Type: "profile", OwnerID: "user-9", CompanyID: strPtr("co-2")}

	tests := []struct {
		name string
		id   models.Identity
		res  models.ResourceRef
		op   models.Operation
		want bool
	}{
		{"member reads own profile", member, ownProfile(member), models.OpRead, true},
		{"member cannot update own profile", member, ownProfile(member), models.OpUpdate, false},
		{"member cannot read colleague profile", member, models.ResourceRef{Type: "profile", OwnerID: "admin-1", CompanyID: strPtr("co-1")}, models.OpRead, false},
		{"admin reads member profile", admin, memberProfile, models.OpRead, true},
		{"admin updates member profile", admin, memberProfile, models.OpUpdate, true},
		{"admin deletes member profile", admin, memberProfile, models.OpDelete, true},
		{"admin cannot update own profile", admin, ownProfile(admin), models.OpUpdate, false},
		{"admin cannot delete own profile", admin, ownProfile(admin), models.OpDelete, false},
		{"admin cannot touch other company profile", admin, otherCompanyProfile, models.OpUpdate, false},
		{"nobody creates profiles directly", admin, memberProfile, models.OpCreate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := eval.Can(ctx, tt.id, tt.res, tt.op)
			if err != nil {
				t.Fatalf("Can error: %v", err)
			}
			if allowed != tt.want {
				t.Errorf("got allowed=%v, want %v", allowed, tt.want)
			}
		})
	}
}

func TestEvaluator_MalformedInput(t *testing.T) {
	eval := newTestEvaluator(t)
	ctx := context.Background()
	member := companyMember("user-1", "co-1", models.RoleUser)

	t.Run("unknown resource type", func(t *testing.T) {
		res := models.ResourceRef{Type: "widget", ID: "w-1", OwnerID: "user-1", CompanyID: strPtr("co-1")}
		_, err := eval.Can(ctx, member, res, models.OpRead)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown operation", func(t *testing.T) {
		res := models.ResourceRef{Type: "task", ID: "t-1", OwnerID: "user-1", CompanyID: strPtr("co-1")}
		_, err := eval.Can(ctx, member, res, models.Operation("merge"))
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}
