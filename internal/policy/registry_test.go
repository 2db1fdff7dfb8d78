package policy

import "testing"

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if registry == nil {
		t.Fatal("NewRegistry returned nil")
	}
}

func TestRegistry_Get(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	t.Run("role-restricted types", func(t *testing.T) {
		for _, name := range []string{"project", "tag", "status"} {
			rt, err := registry.Get(name)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", name, err)
			}
			if !rt.RoleRestricted() {
				t.Errorf("%s should be admin-write", name)
			}
		}
	})

	t.Run("member-writable types", func(t *testing.T) {
		for _, name := range []string{"task", "comment", "checklist", "checklist_item", "attachment"} {
			rt, err := registry.Get(name)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", name, err)
			}
			if rt.RoleRestricted() {
				t.Errorf("%s should be member-writable", name)
			}
		}
	})

	t.Run("parent chain", func(t *testing.T) {
		task, err := registry.Get("task")
		if err != nil {
			t.Fatalf("Get(task) failed: %v", err)
		}
		if task.Parent != "project" {
			t.Errorf("task parent = %q, want project", task.Parent)
		}

		attachment, err := registry.Get("attachment")
		if err != nil {
			t.Fatalf("Get(attachment) failed: %v", err)
		}
		if attachment.Parent != "task" {
			t.Errorf("attachment parent = %q, want task", attachment.Parent)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := registry.Get("gizmo"); err == nil {
			t.Error("Get(gizmo) should fail")
		}
	})

	t.Run("profile is not in the catalog", func(t *testing.T) {
		if registry.Known("profile") {
			t.Error("profile must not have a generic catalog entry")
		}
	})
}
