package models

// Credentials represents the LinkedIn account credentials loaded from the
// environment. They live in memory for the process lifetime only and must
// never reach logs or disk.
type Credentials struct {
	Email    string
	Password string
}

// String implements fmt.Stringer with both values redacted so accidental
// formatting cannot leak them.
func (c Credentials) String() string {
	return "Credentials(redacted)"
}

// GoString keeps %#v output redacted as well.
func (c Credentials) GoString() string {
	return "models.Credentials(redacted)"
}

// IsZero reports whether either credential is missing.
func (c Credentials) IsZero() bool {
	return c.Email == "" || c.Password == ""
}
