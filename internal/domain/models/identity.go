package models

// Identity is a caller resolved for exactly one request. It is never cached
// across requests: a just-demoted admin must not get one more privileged
// write out of a stale role.
type Identity struct {
	UserID    string
	CompanyID *string
	Role      Role

	// HasProfile is false when no profile exists for the authenticated
	// subject. Such a caller has no access to any tenant-scoped resource.
	HasProfile bool

	// IsSystemOperator grants bypass of all tenant checks. Derived
	// out-of-band, never from caller-supplied data.
	IsSystemOperator bool
}

// InCompany reports whether the identity belongs to the given tenant.
func (i Identity) InCompany(companyID string) bool {
	return i.HasProfile && i.CompanyID != nil && *i.CompanyID == companyID
}

// Personal reports whether the identity works in a personal workspace
// (has a profile but belongs to no company).
func (i Identity) Personal() bool {
	return i.HasProfile && i.CompanyID == nil
}
