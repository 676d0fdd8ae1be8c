package domain

// User is the authenticated back-office operator, as reported by the
// upstream token endpoint at sign-in.
type User struct {
	ID       string
	FullName string
	Email    string
}
