package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rithysak/backoffice/internal/csrf"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePropertyService struct {
	page      domain.Page[domain.Property]
	searchErr error

	created []domain.CreatePropertyParams
	updated []domain.UpdatePropertyParams

	// photoBytes holds each upload's content, read during Create/Update
	// while the handler still has the files open.
	photoBytes map[string][]byte
}

func (f *fakePropertyService) Search(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Property], error) {
	if f.searchErr != nil {
		return domain.Page[domain.Property]{}, f.searchErr
	}
	return f.page, nil
}

func (f *fakePropertyService) Create(ctx context.Context, params domain.CreatePropertyParams, photos map[string]io.Reader) error {
	f.created = append(f.created, params)
	f.readPhotos(photos)
	return nil
}

func (f *fakePropertyService) Update(ctx context.Context, params domain.UpdatePropertyParams, photos map[string]io.Reader) error {
	f.updated = append(f.updated, params)
	f.readPhotos(photos)
	return nil
}

func (f *fakePropertyService) readPhotos(photos map[string]io.Reader) {
	f.photoBytes = make(map[string][]byte)
	for name, r := range photos {
		data, err := io.ReadAll(r)
		if err != nil {
			continue
		}
		f.photoBytes[name] = data
	}
}

func newPropertyTestHandler(t *testing.T, svc *fakePropertyService) *PropertyHandler {
	t.Helper()
	return NewPropertyHandler(svc, testRefStore(), testRenderer(t), testLogger(), 10, time.Second, false)
}

// postMultipart builds a multipart POST carrying a valid CSRF pair, the
// given fields and one photo upload per entry in photos.
func postMultipart(t *testing.T, target string, fields map[string]string, photos map[string][]byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField(csrf.FormFieldName, "test-token"))
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for filename, data := range photos {
		part, err := mw.CreateFormFile("photos", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, target, &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.AddCookie(&http.Cookie{Name: csrf.CookieName, Value: "test-token"})
	return signedIn(r)
}

func TestPropertyCreateWithPhotoUpload(t *testing.T) {
	svc := &fakePropertyService{}
	h := newPropertyTestHandler(t, svc)

	w := httptest.NewRecorder()
	h.Create(w, postMultipart(t, "/properties", map[string]string{
		"property_profile_name": "Riverside Villa",
		"price":                 "125000",
	}, map[string][]byte{
		"front.jpg": []byte("jpeg-bytes"),
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/properties")

	require.Len(t, svc.created, 1)
	assert.Equal(t, "Riverside Villa", svc.created[0].Name)
	assert.Equal(t, 125000.0, svc.created[0].Price)
	assert.Equal(t, "77", svc.created[0].CreatedBy)

	// The upload must be readable while the service runs; the handler
	// closes the files only after the service returns.
	require.Contains(t, svc.photoBytes, "front.jpg")
	assert.Equal(t, []byte("jpeg-bytes"), svc.photoBytes["front.jpg"])
}

func TestPropertyCreateInvalidSubmissionRerenders(t *testing.T) {
	svc := &fakePropertyService{}
	h := newPropertyTestHandler(t, svc)

	w := httptest.NewRecorder()
	h.Create(w, postMultipart(t, "/properties", map[string]string{
		"price": "-5",
	}, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Property name is required")
	assert.Contains(t, w.Body.String(), "Price must be a positive number")
	assert.Empty(t, svc.created)
}

func TestPropertyUpdateKeepsExistingPhotos(t *testing.T) {
	svc := &fakePropertyService{}
	h := newPropertyTestHandler(t, svc)

	r := postMultipart(t, "/properties/9", map[string]string{
		"property_profile_name": "Riverside Villa",
		"existing_photos":       "https://cdn.example.com/a.jpg",
	}, nil)
	r.SetPathValue("id", "9")

	w := httptest.NewRecorder()
	h.Update(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, svc.updated, 1)
	assert.Equal(t, "9", svc.updated[0].ID)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, svc.updated[0].PhotoURLs)
}
