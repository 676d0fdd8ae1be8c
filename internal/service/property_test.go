package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/domain"
)

type fakePropertyAPI struct {
	records    []crm.PropertyRecord
	total      int
	err        error
	uploadURLs []string
	uploadErr  error
	uploaded   int
	created    []domain.CreatePropertyParams
	updated    []domain.UpdatePropertyParams
}

func (f *fakePropertyAPI) SearchProperties(ctx context.Context, req domain.PageRequest) ([]crm.PropertyRecord, int, error) {
	return f.records, f.total, f.err
}

func (f *fakePropertyAPI) CreateProperty(ctx context.Context, params domain.CreatePropertyParams) error {
	f.created = append(f.created, params)
	return f.err
}

func (f *fakePropertyAPI) UpdateProperty(ctx context.Context, params domain.UpdatePropertyParams) error {
	f.updated = append(f.updated, params)
	return f.err
}

func (f *fakePropertyAPI) UploadPhotos(ctx context.Context, files map[string]io.Reader) ([]string, error) {
	f.uploaded += len(files)
	return f.uploadURLs, f.uploadErr
}

func TestPropertySearchMapsRecords(t *testing.T) {
	api := &fakePropertyAPI{
		total: 3,
		records: []crm.PropertyRecord{
			{
				PropertyProfileID:   "31",
				PropertyProfileName: "Borey Lot 4",
				TypeName:            "Villa",
				StatusName:          "Available",
				Price:               500000,
				PhotoList:           []string{"https://cdn.example.com/a.jpg"},
			},
			{PropertyProfileID: "32", Price: 0},
		},
	}
	svc := NewPropertyService(api, testLogger())

	page, err := svc.Search(context.Background(), domain.PageRequest{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Rows, 2)

	got := page.Rows[0]
	assert.Equal(t, "31", got.ID)
	assert.Equal(t, "Borey Lot 4", got.Name)
	assert.Equal(t, "$500,000", got.PriceLabel)

	unpriced := page.Rows[1]
	assert.Equal(t, domain.NoName, unpriced.Name)
	assert.Equal(t, "Price not available", unpriced.PriceLabel)
}

func TestPropertyCreateUploadsPhotosFirst(t *testing.T) {
	api := &fakePropertyAPI{uploadURLs: []string{"https://cdn.example.com/new.jpg"}}
	svc := NewPropertyService(api, testLogger())

	err := svc.Create(context.Background(), domain.CreatePropertyParams{
		CreatedBy: "9",
		Name:      "Borey Lot 4",
		Price:     95000,
		PhotoURLs: []string{"https://cdn.example.com/old.jpg"},
	}, map[string]io.Reader{"house.jpg": strings.NewReader("jpeg-bytes")})

	require.NoError(t, err)
	assert.Equal(t, 1, api.uploaded)
	require.Len(t, api.created, 1)
	assert.Equal(t, []string{
		"https://cdn.example.com/old.jpg",
		"https://cdn.example.com/new.jpg",
	}, api.created[0].PhotoURLs)
}

func TestPropertyCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		params   domain.CreatePropertyParams
		wantCode string
	}{
		{
			name:     "missing creator",
			params:   domain.CreatePropertyParams{Name: "Borey"},
			wantCode: domain.EUNAUTHORIZED,
		},
		{
			name:     "missing name",
			params:   domain.CreatePropertyParams{CreatedBy: "9", Name: " "},
			wantCode: domain.EINVALID,
		},
		{
			name:     "negative price",
			params:   domain.CreatePropertyParams{CreatedBy: "9", Name: "Borey", Price: -1},
			wantCode: domain.EINVALID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakePropertyAPI{}
			svc := NewPropertyService(api, testLogger())

			err := svc.Create(context.Background(), tt.params, nil)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.ErrorCode(err))
			assert.Empty(t, api.created)
			assert.Zero(t, api.uploaded)
		})
	}
}

func TestPropertyUpdateStopsOnUploadFailure(t *testing.T) {
	api := &fakePropertyAPI{uploadErr: domain.Invalid("crm.upload", "file is not a supported image")}
	svc := NewPropertyService(api, testLogger())

	err := svc.Update(context.Background(), domain.UpdatePropertyParams{
		ID: "31",
		CreatePropertyParams: domain.CreatePropertyParams{
			CreatedBy: "9",
			Name:      "Borey Lot 4",
		},
	}, map[string]io.Reader{"broken.txt": strings.NewReader("not an image")})

	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Empty(t, api.updated)
}
