package config

const (
	// MaxCompanyNameLength is the maximum length for company names.
	// Limited to 255 to fit in a VARCHAR(255)-class column and keep
	// names short and descriptive.
	MaxCompanyNameLength = 255

	// MaxPersonNameLength is the maximum length for first/last names.
	MaxPersonNameLength = 100

	// MaxEmailLength is the maximum length for email addresses
	// (RFC 3696 errata cap).
	MaxEmailLength = 320

	// MinPasswordLength is the minimum credential length accepted at
	// signup.
	MinPasswordLength = 8

	// MaxPasswordLength is the maximum credential length. Capped at 72
	// because bcrypt ignores input past 72 bytes.
	MaxPasswordLength = 72

	// MaxResourceNameLength is the maximum length for tenant-scoped
	// resource names.
	MaxResourceNameLength = 255
)
