package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/domain"
)

type fakeCallLogAPI struct {
	records []crm.CallLogRecord
	total   int
	err     error
	created []domain.CreateCallLogParams
	updated []domain.UpdateCallLogParams
}

func (f *fakeCallLogAPI) SearchCallLogs(ctx context.Context, req domain.PageRequest) ([]crm.CallLogRecord, int, error) {
	return f.records, f.total, f.err
}

func (f *fakeCallLogAPI) CreateCallLog(ctx context.Context, params domain.CreateCallLogParams) error {
	f.created = append(f.created, params)
	return f.err
}

func (f *fakeCallLogAPI) UpdateCallLog(ctx context.Context, params domain.UpdateCallLogParams) error {
	f.updated = append(f.updated, params)
	return f.err
}

func validCallLog() domain.CreateCallLogParams {
	return domain.CreateCallLogParams{
		CreatedBy:         "9",
		LeadID:            "7",
		PropertyProfileID: "31",
		CallDate:          "2026-08-29",
		StartTime:         "09:00",
		EndTime:           "09:30",
	}
}

func TestCallLogCreateTimeWindow(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		valid bool
	}{
		{"end after start", "09:00", "10:00", true},
		{"one minute call", "10:00", "10:01", true},
		{"open call without end", "09:00", "", true},
		{"end before start", "10:00", "09:00", false},
		{"end equals start", "10:00", "10:00", false},
		{"garbled end", "10:00", "later", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeCallLogAPI{}
			svc := NewCallLogService(api, testLogger())

			params := validCallLog()
			params.StartTime = tt.start
			params.EndTime = tt.end

			err := svc.Create(context.Background(), params)
			if tt.valid {
				require.NoError(t, err)
				assert.Len(t, api.created, 1)
			} else {
				require.Error(t, err)
				assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
				assert.Empty(t, api.created)
			}
		})
	}
}

func TestCallLogCreateRequiresSelections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CreateCallLogParams)
	}{
		{"no lead", func(p *domain.CreateCallLogParams) { p.LeadID = "" }},
		{"no property", func(p *domain.CreateCallLogParams) { p.PropertyProfileID = "" }},
		{"no date", func(p *domain.CreateCallLogParams) { p.CallDate = "" }},
		{"no start", func(p *domain.CreateCallLogParams) { p.StartTime = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeCallLogAPI{}
			svc := NewCallLogService(api, testLogger())

			params := validCallLog()
			tt.mutate(&params)

			err := svc.Create(context.Background(), params)
			require.Error(t, err)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		})
	}
}

func TestCallLogSearchMapsRecords(t *testing.T) {
	api := &fakeCallLogAPI{
		total: 1,
		records: []crm.CallLogRecord{
			{
				CallLogID:           "100",
				LeadID:              "7",
				LeadName:            "Sok Dara",
				ContactNumber:       "012345678",
				PropertyProfileID:   "31",
				PropertyProfileName: "Borey Lot 4",
				ObjectiveName:       "Follow up",
				StatusName:          "Completed",
				CallDate:            "2026-08-29",
				StartTime:           "09:00",
				EndTime:             "09:30",
			},
		},
	}
	svc := NewCallLogService(api, testLogger())

	page, err := svc.Search(context.Background(), domain.PageRequest{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Rows, 1)

	got := page.Rows[0]
	assert.Equal(t, "100", got.ID)
	assert.Equal(t, "(+855) 012-345-678", got.LeadContact)
	assert.Equal(t, "Borey Lot 4", got.PropertyName)
}
