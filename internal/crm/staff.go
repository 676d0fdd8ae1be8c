package crm

import (
	"context"

	"github.com/rithysak/backoffice/internal/domain"
)

const staffPaginationEndpoint = "staff/pagination"

// StaffRecord is one staff row as the CRM sends it.
type StaffRecord struct {
	StaffID     flexID                 `json:"staff_id"`
	FirstName   string                 `json:"first_name"`
	LastName    string                 `json:"last_name"`
	GenderName  string                 `json:"gender_name"`
	Email       string                 `json:"email"`
	Position    string                 `json:"position"`
	BranchName  string                 `json:"branch_name"`
	ContactData []ContactChannelRecord `json:"contact_data"`
}

// SearchStaff fetches one page of staff.
func (c *Client) SearchStaff(ctx context.Context, req domain.PageRequest) ([]StaffRecord, int, error) {
	raws, total, err := c.Search(ctx, staffPaginationEndpoint, req)
	if err != nil {
		return nil, 0, err
	}
	return decodeRows[StaffRecord](c.logger, staffPaginationEndpoint, raws), total, nil
}
