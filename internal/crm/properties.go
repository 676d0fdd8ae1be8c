package crm

import (
	"context"
	"net/http"

	"github.com/rithysak/backoffice/internal/domain"
)

// Property-profile endpoints. Note the update is a POST, not a PUT — the
// CRM is inconsistent here and the client follows it.
const (
	propertyPaginationEndpoint = "property-profile/pagination"
	propertyCreateEndpoint     = "property-profile/create"
	propertyUpdateEndpoint     = "property-profile/update"
)

// PropertyRecord is one property-profile row as the CRM sends it.
type PropertyRecord struct {
	PropertyProfileID   flexID         `json:"property_profile_id"`
	PropertyProfileName string         `json:"property_profile_name"`
	TypeName            string         `json:"property_type_name"`
	StatusName          string         `json:"property_status_name"`
	Price               flexFloat      `json:"price"`
	Description         string         `json:"description"`
	Width               flexFloat      `json:"width"`
	Length              flexFloat      `json:"length"`
	PhotoList           []string       `json:"photo_list"`
	Address             *AddressRecord `json:"address"`
}

// SearchProperties fetches one page of property profiles.
func (c *Client) SearchProperties(ctx context.Context, req domain.PageRequest) ([]PropertyRecord, int, error) {
	raws, total, err := c.Search(ctx, propertyPaginationEndpoint, req)
	if err != nil {
		return nil, 0, err
	}
	return decodeRows[PropertyRecord](c.logger, propertyPaginationEndpoint, raws), total, nil
}

type propertyPayload struct {
	PropertyProfileName string         `json:"property_profile_name"`
	PropertyTypeID      string         `json:"property_type_id,omitempty"`
	PropertyStatusID    string         `json:"property_status_id,omitempty"`
	Price               float64        `json:"price"`
	Description         string         `json:"description,omitempty"`
	Width               float64        `json:"width,omitempty"`
	Length              float64        `json:"length,omitempty"`
	PhotoList           []string       `json:"photo_list,omitempty"`
	CreatedBy           string         `json:"created_by"`
	Address             addressPayload `json:"address"`
}

func newPropertyPayload(p domain.CreatePropertyParams) propertyPayload {
	return propertyPayload{
		PropertyProfileName: p.Name,
		PropertyTypeID:      p.TypeID,
		PropertyStatusID:    p.StatusID,
		Price:               p.Price,
		Description:         p.Description,
		Width:               p.Width,
		Length:              p.Length,
		PhotoList:           p.PhotoURLs,
		CreatedBy:           p.CreatedBy,
		Address:             newAddressPayload(p.Address),
	}
}

// CreateProperty creates a property profile.
func (c *Client) CreateProperty(ctx context.Context, params domain.CreatePropertyParams) error {
	return c.sendJSON(ctx, http.MethodPost, propertyCreateEndpoint, newPropertyPayload(params), nil)
}

// UpdateProperty updates a property profile (POST per the CRM contract).
func (c *Client) UpdateProperty(ctx context.Context, params domain.UpdatePropertyParams) error {
	body := struct {
		PropertyProfileID string `json:"property_profile_id"`
		propertyPayload
	}{params.ID, newPropertyPayload(params.CreatePropertyParams)}
	return c.sendJSON(ctx, http.MethodPost, propertyUpdateEndpoint, body, nil)
}
