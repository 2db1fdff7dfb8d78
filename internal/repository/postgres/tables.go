package postgres

import "fmt"

// TableNames holds environment-prefixed table names so dev/test/prod share
// one database without clashing.
type TableNames struct {
	Companies  string
	Profiles   string
	Operators  string
	Identities string

	prefix string

	// resources maps catalog resource types to their tables
	resources map[string]string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Companies:  fmt.Sprintf("%scompanies", prefix),
		Profiles:   fmt.Sprintf("%sprofiles", prefix),
		Operators:  fmt.Sprintf("%soperators", prefix),
		Identities: fmt.Sprintf("%sidentities", prefix),
		prefix:     prefix,
		resources: map[string]string{
			"space":          prefix + "spaces",
			"project":        prefix + "projects",
			"status":         prefix + "statuses",
			"tag":            prefix + "tags",
			"task":           prefix + "tasks",
			"comment":        prefix + "comments",
			"checklist":      prefix + "checklists",
			"checklist_item": prefix + "checklist_items",
			"attachment":     prefix + "attachments",
			"time_entry":     prefix + "time_entries",
		},
	}
}

// Prefix returns the configured table prefix.
func (t *TableNames) Prefix() string {
	return t.prefix
}

// All returns every table name, resource tables included. Used by seed
// tooling; drop with CASCADE since resource tables reference each other.
func (t *TableNames) All() []string {
	all := []string{t.Companies, t.Identities, t.Profiles, t.Operators}
	for _, table := range t.resources {
		all = append(all, table)
	}
	return all
}

// Resource returns the table for a catalog resource type, or an error for
// a type with no table.
func (t *TableNames) Resource(resourceType string) (string, error) {
	table, ok := t.resources[resourceType]
	if !ok {
		return "", fmt.Errorf("no table for resource type %q", resourceType)
	}
	return table, nil
}
