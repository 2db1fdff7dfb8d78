package models

import "time"

// Operation is an access-control verb.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Valid reports whether op is a known operation.
func (op Operation) Valid() bool {
	switch op {
	case OpCreate, OpRead, OpUpdate, OpDelete:
		return true
	}
	return false
}

// ParentRef points at the parent of a tenant-scoped resource
// (task -> project, attachment -> task, ...).
type ParentRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ResourceRef describes a tenant-scoped resource for an authorization
// decision: its type, owner, tenant ownership mode and optional parent.
// The evaluator works on this descriptor alone; it never loads rows itself.
type ResourceRef struct {
	Type      string     `json:"type"`
	ID        string     `json:"id,omitempty"`
	OwnerID   string     `json:"owner_id"`
	CompanyID *string    `json:"company_id"` // nil = personal-mode
	Parent    *ParentRef `json:"parent,omitempty"`
}

// Personal reports whether the resource is in personal mode (no tenant).
func (r ResourceRef) Personal() bool {
	return r.CompanyID == nil
}

// Resource is a stored tenant-scoped record. Every resource type shares
// this column shape; the (company_id, parent_id) pair is bound to the
// parent's (company_id, id) by a composite foreign key, so cross-tenant
// linkage is refused by the storage layer even if application code forgets
// to filter by tenant.
type Resource struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CompanyID *string   `json:"company_id"`
	ParentID  *string   `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ref returns the authorization descriptor for the stored resource.
func (r *Resource) Ref() ResourceRef {
	ref := ResourceRef{
		Type:      r.Type,
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		CompanyID: r.CompanyID,
	}
	return ref
}
