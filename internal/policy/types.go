package policy

// WritePolicy says who may create/update/delete a company-mode resource of
// a given type. Reads are always open to every member of the tenant.
type WritePolicy string

const (
	// WritePolicyAdmin restricts writes to tenant admins
	// (projects, tags, status definitions).
	WritePolicyAdmin WritePolicy = "admin"

	// WritePolicyMember opens writes to any tenant member
	// (tasks, comments, checklists, attachments).
	WritePolicyMember WritePolicy = "member"
)

// ResourceType is the per-type policy metadata for one entry of the
// catalog. Keeping the decision table parameterized by this metadata means
// one evaluator serves every type instead of a policy copy per table.
type ResourceType struct {
	// Name is the catalog key (set during YAML unmarshaling)
	Name string `yaml:"-" json:"name"`

	// Write is the company-mode write policy for the type
	Write WritePolicy `yaml:"write" json:"write"`

	// Parent names the resource type a child of this type references,
	// empty for root types. The referential guard only accepts parent
	// links of exactly this type.
	Parent string `yaml:"parent" json:"parent,omitempty"`
}

// RoleRestricted reports whether writes require the admin role.
func (rt *ResourceType) RoleRestricted() bool {
	return rt.Write == WritePolicyAdmin
}

// catalogFile is the on-disk shape of the embedded catalog.
type catalogFile struct {
	Resources map[string]ResourceType `yaml:"resources"`
}
