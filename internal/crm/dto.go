package crm

import "github.com/rithysak/backoffice/internal/domain"

// Wire shapes shared across entities. Field names match the CRM API
// verbatim; mapping to domain types happens in the service layer, except
// for the composites below which are structural enough to convert here.

// AddressRecord is the nested location composite as the CRM sends it.
type AddressRecord struct {
	ProvinceID   flexID `json:"province_id"`
	ProvinceName string `json:"province_name"`
	DistrictID   flexID `json:"district_id"`
	DistrictName string `json:"district_name"`
	CommuneID    flexID `json:"commune_id"`
	CommuneName  string `json:"commune_name"`
	VillageID    flexID `json:"village_id"`
	VillageName  string `json:"village_name"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
}

// Domain converts the record into the domain composite, leaving nil for
// any selector level the backend did not populate.
func (a *AddressRecord) Domain() domain.Address {
	if a == nil {
		return domain.Address{}
	}
	place := func(id flexID, name string) *domain.Place {
		if id == "" && name == "" {
			return nil
		}
		return &domain.Place{ID: id.String(), Name: name}
	}
	return domain.Address{
		Province: place(a.ProvinceID, a.ProvinceName),
		District: place(a.DistrictID, a.DistrictName),
		Commune:  place(a.CommuneID, a.CommuneName),
		Village:  place(a.VillageID, a.VillageName),
		Line1:    a.AddressLine1,
		Line2:    a.AddressLine2,
	}
}

// addressPayload is the outbound form of an address.
type addressPayload struct {
	ProvinceID   string `json:"province_id,omitempty"`
	DistrictID   string `json:"district_id,omitempty"`
	CommuneID    string `json:"commune_id,omitempty"`
	VillageID    string `json:"village_id,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
}

func newAddressPayload(a domain.Address) addressPayload {
	id := func(p *domain.Place) string {
		if p == nil {
			return ""
		}
		return p.ID
	}
	return addressPayload{
		ProvinceID:   id(a.Province),
		DistrictID:   id(a.District),
		CommuneID:    id(a.Commune),
		VillageID:    id(a.Village),
		AddressLine1: a.Line1,
		AddressLine2: a.Line2,
	}
}

// ContactValueRecord is one number within a contact channel group.
type ContactValueRecord struct {
	ContactNumber string `json:"contact_number"`
	Remark        string `json:"remark"`
	IsPrimary     bool   `json:"is_primary"`
}

// ContactChannelRecord groups contact values by channel type.
type ContactChannelRecord struct {
	ChannelType   string               `json:"channel_type"`
	ContactValues []ContactValueRecord `json:"contact_values"`
}

// Domain converts a slice of channel records into the domain composite.
func ContactChannels(records []ContactChannelRecord) []domain.ContactChannel {
	if len(records) == 0 {
		return nil
	}
	channels := make([]domain.ContactChannel, 0, len(records))
	for _, rec := range records {
		ch := domain.ContactChannel{Type: rec.ChannelType}
		for _, v := range rec.ContactValues {
			ch.Values = append(ch.Values, domain.ContactValue{
				Number:    v.ContactNumber,
				Remark:    v.Remark,
				IsPrimary: v.IsPrimary,
			})
		}
		channels = append(channels, ch)
	}
	return channels
}

func newContactPayload(channels []domain.ContactChannel) []ContactChannelRecord {
	out := make([]ContactChannelRecord, 0, len(channels))
	for _, ch := range channels {
		rec := ContactChannelRecord{ChannelType: ch.Type}
		for _, v := range ch.Values {
			rec.ContactValues = append(rec.ContactValues, ContactValueRecord{
				ContactNumber: v.Number,
				Remark:        v.Remark,
				IsPrimary:     v.IsPrimary,
			})
		}
		out = append(out, rec)
	}
	return out
}
