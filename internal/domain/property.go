package domain

// Property is the UI-ready projection of one backend property profile.
// Identity is the backend property_profile_id.
type Property struct {
	ID          string
	Name        string // NoName when the backend sent no title
	Type        string
	Status      string
	Price       float64
	PriceLabel  string // FormatPrice(Price)
	Description string
	Address     Address
	Photos      []string
	Width       float64
	Length      float64
}

// CreatePropertyParams contains validated parameters for creating a
// property profile.
type CreatePropertyParams struct {
	CreatedBy   string
	Name        string
	TypeID      string
	StatusID    string
	Price       float64
	Description string
	Address     Address
	PhotoURLs   []string
	Width       float64
	Length      float64
}

// UpdatePropertyParams contains validated parameters for updating a
// property profile.
type UpdatePropertyParams struct {
	ID string
	CreatePropertyParams
}
