// Package upload performs presigned direct-to-storage image uploads: the
// backend issues a single-use ticket, the bytes go straight to the storage
// provider, and only the resulting public URL ever touches a catalog record.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/brickstash/catadm/internal/errors"

	"github.com/brickstash/catadm/internal/ports"
)

const fallbackContentType = "application/octet-stream"

// UploaderOptions groups dependencies for Uploader.
type UploaderOptions struct {
	Presigner ports.Presigner
	// HTTPClient performs the storage PUT. It must not attach catalog API
	// credentials; the presigned URL is the sole authorization. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
	// Folder is the object key prefix for uploaded files.
	Folder string
	Logger *slog.Logger
}

// Uploader pushes image bytes to object storage via backend-presigned URLs.
type Uploader struct {
	presigner ports.Presigner
	client    *http.Client
	folder    string
	logger    *slog.Logger
}

// NewUploader constructs an Uploader.
func NewUploader(opts UploaderOptions) *Uploader {
	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Uploader{
		presigner: opts.Presigner,
		client:    client,
		folder:    opts.Folder,
		logger:    logger,
	}
}

// UploadImage presigns and uploads one file, returning the permanent public
// URL on success. The stored object key is prefixed with a fresh UUID so
// repeated uploads of the same filename never collide. When contentType is
// empty it is guessed from the filename extension, falling back to
// application/octet-stream.
//
// No public URL is ever returned for a failed PUT; a half-done upload yields
// only an error.
func (u *Uploader) UploadImage(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	base := filepath.Base(filename)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", apperrors.Validation("Filename is required.")
	}
	if contentType == "" {
		contentType = detectContentType(base)
	}

	ticket, err := u.presigner.PresignUpload(ctx, ports.PresignInput{
		Folder:      u.folder,
		Filename:    fmt.Sprintf("%s-%s", uuid.NewString(), base),
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	body, err := io.ReadAll(data)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeValidation, "reading upload content")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, ticket.UploadURL, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeNetwork, "building storage request")
	}
	req.Header.Set("Content-Type", contentType)
	for name, value := range ticket.Headers {
		req.Header.Set(name, value)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return "", apperrors.MapTransportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Storage providers answer in XML, not the API's JSON shapes, so the
		// status code is all we classify on.
		u.logger.Warn("storage rejected upload", "status", resp.StatusCode, "filename", base)
		return "", apperrors.Server(fmt.Sprintf("Storage rejected the upload (status %d).", resp.StatusCode))
	}

	u.logger.Info("uploaded image", "filename", base, "content_type", contentType)
	return ticket.PublicURL, nil
}

func detectContentType(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return fallbackContentType
}
