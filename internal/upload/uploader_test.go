package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/brickstash/catadm/internal/errors"

	"github.com/brickstash/catadm/internal/domain/model"
	"github.com/brickstash/catadm/internal/mocks"
	"github.com/brickstash/catadm/internal/ports"
)

func newUploader(t *testing.T, folder string) (*Uploader, *mocks.MockPresigner) {
	t.Helper()
	ctrl := gomock.NewController(t)
	presigner := mocks.NewMockPresigner(ctrl)
	return NewUploader(UploaderOptions{Presigner: presigner, Folder: folder}), presigner
}

func TestUploader_UploadImage(t *testing.T) {
	t.Parallel()

	var got struct {
		method      string
		contentType string
		amzACL      string
		auth        string
		body        string
	}
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.contentType = r.Header.Get("Content-Type")
		got.amzACL = r.Header.Get("x-amz-acl")
		got.auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		got.body = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer storage.Close()

	uploader, presigner := newUploader(t, "uploads")
	presigner.EXPECT().
		PresignUpload(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in ports.PresignInput) (model.UploadTicket, error) {
			assert.Equal(t, "uploads", in.Folder)
			assert.Equal(t, "image/png", in.ContentType)
			assert.True(t, strings.HasSuffix(in.Filename, "-part.png"), "key keeps the original name")
			assert.Greater(t, len(in.Filename), len("part.png"), "key is prefixed for uniqueness")
			return model.UploadTicket{
				UploadURL: storage.URL + "/bucket/" + in.Filename,
				PublicURL: "https://cdn.example.com/" + in.Filename,
				Headers:   map[string]string{"x-amz-acl": "public-read"},
			}, nil
		})

	publicURL, err := uploader.UploadImage(context.Background(), "part.png", "", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicURL, "https://cdn.example.com/"))

	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "image/png", got.contentType, "content type guessed from the extension")
	assert.Equal(t, "public-read", got.amzACL, "ticket headers forwarded to storage")
	assert.Empty(t, got.auth, "no API credentials leak to the storage provider")
	assert.Equal(t, "png-bytes", got.body)
}

func TestUploader_UnknownExtensionFallsBack(t *testing.T) {
	t.Parallel()

	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer storage.Close()

	uploader, presigner := newUploader(t, "uploads")
	presigner.EXPECT().
		PresignUpload(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in ports.PresignInput) (model.UploadTicket, error) {
			assert.Equal(t, "application/octet-stream", in.ContentType)
			return model.UploadTicket{UploadURL: storage.URL, PublicURL: "https://cdn.example.com/x"}, nil
		})

	_, err := uploader.UploadImage(context.Background(), "scan.rawdump", "", strings.NewReader("x"))
	require.NoError(t, err)
}

func TestUploader_StorageRejectionReturnsNoURL(t *testing.T) {
	t.Parallel()

	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer storage.Close()

	uploader, presigner := newUploader(t, "uploads")
	presigner.EXPECT().
		PresignUpload(gomock.Any(), gomock.Any()).
		Return(model.UploadTicket{UploadURL: storage.URL, PublicURL: "https://cdn.example.com/x"}, nil)

	publicURL, err := uploader.UploadImage(context.Background(), "part.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, apperrors.IsServer(err))
	assert.Empty(t, publicURL, "a failed upload must not yield a usable URL")
}

func TestUploader_PresignFailurePropagates(t *testing.T) {
	t.Parallel()

	uploader, presigner := newUploader(t, "uploads")
	presigner.EXPECT().
		PresignUpload(gomock.Any(), gomock.Any()).
		Return(model.UploadTicket{}, apperrors.Auth("Authentication credentials were not provided."))

	_, err := uploader.UploadImage(context.Background(), "part.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
}

func TestUploader_EmptyFilenameRejected(t *testing.T) {
	t.Parallel()

	uploader, _ := newUploader(t, "uploads")
	_, err := uploader.UploadImage(context.Background(), "", "", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
