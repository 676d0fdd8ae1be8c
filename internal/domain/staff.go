package domain

// Staff is the UI-ready projection of one backend staff record.
// Identity is the backend staff_id.
type Staff struct {
	ID       string
	FullName string
	Gender   string
	Contact  string
	Email    string
	Position string
	Branch   string
}
