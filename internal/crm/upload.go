// This file forwards property photos to the CRM files endpoints.
//
// Photos are decoded and downscaled before upload so operators can submit
// camera originals without blowing the CRM's request limits.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/rithysak/backoffice/internal/domain"
	"github.com/rithysak/backoffice/internal/metrics"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	uploadOneEndpoint   = "files/upload-one-photo"
	uploadManyEndpoint  = "files/upload-multiple-photos"
	uploadJPEGQuality   = 85
	uploadFormFieldOne  = "photo"
	uploadFormFieldMany = "photos"
)

type uploadOneResponse struct {
	ImageURL string `json:"imageUrl"`
}

type uploadManyResponse struct {
	ImageURLs []string `json:"imageUrls"`
}

// preparePhoto decodes and re-encodes one photo as JPEG, downscaled to
// fit the configured max dimension while preserving aspect ratio.
func (c *Client) preparePhoto(data io.Reader) ([]byte, error) {
	const op = "crm.upload"

	img, _, err := image.Decode(data)
	if err != nil {
		return nil, domain.Invalid(op, "file is not a supported image")
	}

	if c.uploadMaxDim > 0 {
		bounds := img.Bounds()
		if bounds.Dx() > c.uploadMaxDim || bounds.Dy() > c.uploadMaxDim {
			img = imaging.Fit(img, c.uploadMaxDim, c.uploadMaxDim, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(uploadJPEGQuality)); err != nil {
		return nil, domain.Internal(err, op, "failed to encode photo")
	}
	return buf.Bytes(), nil
}

// UploadPhoto forwards a single photo and returns the stored image URL.
func (c *Client) UploadPhoto(ctx context.Context, filename string, data io.Reader) (string, error) {
	const op = "crm.upload"

	prepared, err := c.preparePhoto(data)
	if err != nil {
		metrics.PhotosUploaded.WithLabelValues("rejected").Inc()
		return "", err
	}

	body, contentType, err := buildMultipart(uploadFormFieldOne, map[string][]byte{filename: prepared})
	if err != nil {
		return "", domain.Internal(err, op, "failed to build upload request")
	}

	resp, err := c.doRequest(ctx, http.MethodPost, uploadOneEndpoint, body, contentType)
	if err != nil {
		metrics.PhotosUploaded.WithLabelValues("error").Inc()
		return "", domain.Unavailable(err, op, "CRM API is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.PhotosUploaded.WithLabelValues("error").Inc()
		return "", c.statusError(uploadOneEndpoint, resp)
	}

	var out uploadOneResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.Unavailable(err, op, "failed to decode upload response")
	}

	metrics.PhotosUploaded.WithLabelValues("ok").Inc()
	return out.ImageURL, nil
}

// UploadPhotos forwards several photos in one request and returns the
// stored image URLs in upload order.
func (c *Client) UploadPhotos(ctx context.Context, files map[string]io.Reader) ([]string, error) {
	const op = "crm.upload"

	prepared := make(map[string][]byte, len(files))
	for name, data := range files {
		p, err := c.preparePhoto(data)
		if err != nil {
			metrics.PhotosUploaded.WithLabelValues("rejected").Inc()
			return nil, err
		}
		prepared[name] = p
	}

	body, contentType, err := buildMultipart(uploadFormFieldMany, prepared)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to build upload request")
	}

	resp, err := c.doRequest(ctx, http.MethodPost, uploadManyEndpoint, body, contentType)
	if err != nil {
		metrics.PhotosUploaded.WithLabelValues("error").Inc()
		return nil, domain.Unavailable(err, op, "CRM API is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.PhotosUploaded.WithLabelValues("error").Inc()
		return nil, c.statusError(uploadManyEndpoint, resp)
	}

	var out uploadManyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.Unavailable(err, op, "failed to decode upload response")
	}

	metrics.PhotosUploaded.WithLabelValues("ok").Inc()
	return out.ImageURLs, nil
}

// buildMultipart assembles a multipart/form-data body with one part per
// file under the given field name.
func buildMultipart(field string, files map[string][]byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := w.CreateFormFile(field, name)
		if err != nil {
			return nil, "", fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", fmt.Errorf("write form file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
