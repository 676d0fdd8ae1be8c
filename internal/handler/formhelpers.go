package handler

import (
	"strings"

	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/forms"
	"github.com/rithysak/backoffice/internal/refdata"
)

// firstNamePart splits a joined display name back into its leading
// word. Placeholder names split to empty.
func firstNamePart(fullName string) string {
	if fullName == domain.NoName {
		return ""
	}
	first, _, _ := strings.Cut(fullName, " ")
	return first
}

// lastNamePart returns everything after the first word.
func lastNamePart(fullName string) string {
	if fullName == domain.NoName {
		return ""
	}
	_, rest, _ := strings.Cut(fullName, " ")
	return rest
}

// addressFromForm builds the address composite from the selector
// fields, resolving display names through the reference store.
func addressFromForm(form *forms.Form, ref *refdata.Store) domain.Address {
	place := func(field, endpoint string) *domain.Place {
		id := form.Get(field)
		if id == "" {
			return nil
		}
		return &domain.Place{ID: id, Name: ref.Name(endpoint, id)}
	}
	return domain.Address{
		Province: place("province_id", refdata.EndpointProvinces),
		District: place("district_id", refdata.EndpointDistricts),
		Commune:  place("commune_id", refdata.EndpointCommunes),
		Village:  place("village_id", refdata.EndpointVillages),
		Line1:    form.Get("address_line1"),
		Line2:    form.Get("address_line2"),
	}
}

// setAddressFields copies an address composite into the form's selector
// fields for an edit render.
func setAddressFields(form *forms.Form, a domain.Address) {
	set := func(field string, p *domain.Place) {
		if p != nil {
			form.Set(field, p.ID)
		}
	}
	set("province_id", a.Province)
	set("district_id", a.District)
	set("commune_id", a.Commune)
	set("village_id", a.Village)
	form.Set("address_line1", a.Line1)
	form.Set("address_line2", a.Line2)
}
