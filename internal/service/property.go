package service

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/metrics"
)

// PropertyAPI is the slice of the CRM client the property service needs.
type PropertyAPI interface {
	SearchProperties(ctx context.Context, req domain.PageRequest) ([]crm.PropertyRecord, int, error)
	CreateProperty(ctx context.Context, params domain.CreatePropertyParams) error
	UpdateProperty(ctx context.Context, params domain.UpdatePropertyParams) error
	UploadPhotos(ctx context.Context, files map[string]io.Reader) ([]string, error)
}

// PropertyService defines the interface for property-profile operations.
type PropertyService interface {
	// Search retrieves one page of property profiles matching the request.
	Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Property], error)

	// Create creates a new property profile, uploading any photos first.
	Create(ctx context.Context, params domain.CreatePropertyParams, photos map[string]io.Reader) error

	// Update updates an existing property profile.
	Update(ctx context.Context, params domain.UpdatePropertyParams, photos map[string]io.Reader) error
}

// propertyService implements PropertyService.
type propertyService struct {
	api    PropertyAPI
	logger *slog.Logger
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(api PropertyAPI, logger *slog.Logger) PropertyService {
	return &propertyService{
		api:    api,
		logger: logger,
	}
}

// Search retrieves one page of property profiles matching the request.
func (s *propertyService) Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Property], error) {
	const op = "PropertyService.Search"

	records, total, err := s.api.SearchProperties(ctx, req)
	if err != nil {
		s.logger.Error("failed to search properties", "error", err, "op", op, "page", req.PageNumber)
		return domain.Page[domain.Property]{}, err
	}

	properties := make([]domain.Property, len(records))
	for i, rec := range records {
		properties[i] = propertyRecordToDomain(rec)
	}
	return domain.Page[domain.Property]{Rows: properties, Total: total}, nil
}

// Create creates a new property profile, uploading any photos first.
func (s *propertyService) Create(ctx context.Context, params domain.CreatePropertyParams, photos map[string]io.Reader) error {
	const op = "PropertyService.Create"

	if err := validateProperty(op, &params); err != nil {
		return err
	}
	if err := s.attachPhotos(ctx, &params, photos); err != nil {
		return err
	}

	if err := s.api.CreateProperty(ctx, params); err != nil {
		s.logger.Error("failed to create property", "error", err, "op", op)
		return err
	}

	metrics.PropertiesCreated.Inc()
	s.logger.Info("property created", "name", params.Name, "photos", len(params.PhotoURLs))
	return nil
}

// Update updates an existing property profile.
func (s *propertyService) Update(ctx context.Context, params domain.UpdatePropertyParams, photos map[string]io.Reader) error {
	const op = "PropertyService.Update"

	if params.ID == "" {
		return domain.Invalid(op, "Property ID is required")
	}
	if err := validateProperty(op, &params.CreatePropertyParams); err != nil {
		return err
	}
	if err := s.attachPhotos(ctx, &params.CreatePropertyParams, photos); err != nil {
		return err
	}

	if err := s.api.UpdateProperty(ctx, params); err != nil {
		s.logger.Error("failed to update property", "error", err, "op", op, "property_id", params.ID)
		return err
	}

	s.logger.Info("property updated", "property_id", params.ID)
	return nil
}

// attachPhotos uploads new photos and appends the returned URLs to the
// profile's photo list.
func (s *propertyService) attachPhotos(ctx context.Context, params *domain.CreatePropertyParams, photos map[string]io.Reader) error {
	const op = "PropertyService.attachPhotos"

	if len(photos) == 0 {
		return nil
	}
	urls, err := s.api.UploadPhotos(ctx, photos)
	if err != nil {
		s.logger.Error("failed to upload photos", "error", err, "op", op, "count", len(photos))
		return err
	}
	params.PhotoURLs = append(params.PhotoURLs, urls...)
	return nil
}

// validateProperty validates required property fields and normalizes
// them.
func validateProperty(op string, p *domain.CreatePropertyParams) error {
	p.Name = strings.TrimSpace(p.Name)

	if p.CreatedBy == "" {
		return domain.Unauthorized(op, "You must be signed in to save properties")
	}
	if p.Name == "" {
		return domain.Invalid(op, "Property name is required")
	}
	if p.Price < 0 {
		return domain.Invalid(op, "Price cannot be negative")
	}
	if p.Width < 0 || p.Length < 0 {
		return domain.Invalid(op, "Dimensions cannot be negative")
	}
	return nil
}

// propertyRecordToDomain converts a CRM property record to a domain
// Property.
func propertyRecordToDomain(rec crm.PropertyRecord) domain.Property {
	name := strings.TrimSpace(rec.PropertyProfileName)
	if name == "" {
		name = domain.NoName
	}
	price := float64(rec.Price)
	return domain.Property{
		ID:          rec.PropertyProfileID.String(),
		Name:        name,
		Type:        rec.TypeName,
		Status:      rec.StatusName,
		Price:       price,
		PriceLabel:  domain.FormatPrice(price),
		Description: rec.Description,
		Address:     rec.Address.Domain(),
		Photos:      rec.PhotoList,
		Width:       float64(rec.Width),
		Length:      float64(rec.Length),
	}
}
