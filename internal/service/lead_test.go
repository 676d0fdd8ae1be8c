package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeLeadAPI struct {
	records []crm.LeadRecord
	total   int
	err     error
	created []domain.CreateLeadParams
	updated []domain.UpdateLeadParams
}

func (f *fakeLeadAPI) SearchLeads(ctx context.Context, req domain.PageRequest) ([]crm.LeadRecord, int, error) {
	return f.records, f.total, f.err
}

func (f *fakeLeadAPI) CreateLead(ctx context.Context, params domain.CreateLeadParams) error {
	f.created = append(f.created, params)
	return f.err
}

func (f *fakeLeadAPI) UpdateLead(ctx context.Context, params domain.UpdateLeadParams) error {
	f.updated = append(f.updated, params)
	return f.err
}

func TestLeadSearchMapsRecords(t *testing.T) {
	api := &fakeLeadAPI{
		total: 42,
		records: []crm.LeadRecord{
			{
				LeadID:     "7",
				FirstName:  "Sok",
				LastName:   "Dara",
				GenderName: "Male",
				Email:      "sok@example.com",
				SourceName: "Facebook",
				StatusName: "New",
				Remark:     "prefers evening calls",
				ContactData: []crm.ContactChannelRecord{
					{
						ChannelType: "phone",
						ContactValues: []crm.ContactValueRecord{
							{ContactNumber: "099888777", Remark: "work"},
							{ContactNumber: "012345678", IsPrimary: true},
						},
					},
				},
			},
			{LeadID: "8"},
		},
	}
	svc := NewLeadService(api, testLogger())

	page, err := svc.Search(context.Background(), domain.PageRequest{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 42, page.Total)
	require.Len(t, page.Rows, 2)

	got := page.Rows[0]
	assert.Equal(t, "7", got.ID)
	assert.Equal(t, "Sok Dara", got.FullName)
	// Primary number wins over the first listed one, then gets formatted;
	// the raw number survives for edit round trips.
	assert.Equal(t, "(+855) 012-345-678", got.Contact)
	assert.Equal(t, "012345678", got.Phone)
	assert.Equal(t, "Facebook", got.Source)
	assert.Equal(t, "prefers evening calls", got.Remark)

	// A record with nothing in it still renders with placeholders.
	empty := page.Rows[1]
	assert.Equal(t, domain.NoName, empty.FullName)
	assert.Equal(t, domain.NoContact, empty.Contact)
	assert.Empty(t, empty.Phone)
}

func TestLeadCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		params   domain.CreateLeadParams
		wantCode string
	}{
		{
			name:     "missing creator",
			params:   domain.CreateLeadParams{FirstName: "Sok"},
			wantCode: domain.EUNAUTHORIZED,
		},
		{
			name:     "missing name",
			params:   domain.CreateLeadParams{CreatedBy: "9", FirstName: "  ", LastName: ""},
			wantCode: domain.EINVALID,
		},
		{
			name: "two primaries in one channel",
			params: domain.CreateLeadParams{
				CreatedBy: "9",
				FirstName: "Sok",
				Channels: []domain.ContactChannel{
					{Type: "phone", Values: []domain.ContactValue{
						{Number: "012", IsPrimary: true},
						{Number: "099", IsPrimary: true},
					}},
				},
			},
			wantCode: domain.EINVALID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeLeadAPI{}
			svc := NewLeadService(api, testLogger())

			err := svc.Create(context.Background(), tt.params)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.ErrorCode(err))
			// Nothing reaches the CRM on a validation failure.
			assert.Empty(t, api.created)
		})
	}
}

func TestLeadCreateTrimsAndForwards(t *testing.T) {
	api := &fakeLeadAPI{}
	svc := NewLeadService(api, testLogger())

	err := svc.Create(context.Background(), domain.CreateLeadParams{
		CreatedBy: "9",
		FirstName: "  Jane ",
		LastName:  " Doe ",
	})
	require.NoError(t, err)
	require.Len(t, api.created, 1)
	assert.Equal(t, "Jane", api.created[0].FirstName)
	assert.Equal(t, "Doe", api.created[0].LastName)
}

func TestLeadUpdateRequiresID(t *testing.T) {
	api := &fakeLeadAPI{}
	svc := NewLeadService(api, testLogger())

	err := svc.Update(context.Background(), domain.UpdateLeadParams{
		CreateLeadParams: domain.CreateLeadParams{CreatedBy: "9", FirstName: "Jane"},
	})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Empty(t, api.updated)
}
