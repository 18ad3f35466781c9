package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare host", in: "https://catalog.example.com", want: "https://catalog.example.com/api"},
		{name: "trailing slash", in: "https://catalog.example.com/", want: "https://catalog.example.com/api"},
		{name: "many trailing slashes", in: "https://catalog.example.com///", want: "https://catalog.example.com/api"},
		{name: "already has api", in: "https://catalog.example.com/api", want: "https://catalog.example.com/api"},
		{name: "api with trailing slash", in: "https://catalog.example.com/api/", want: "https://catalog.example.com/api"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeBaseURL(tt.in))
		})
	}
}

func TestAppConfig_Sanitize(t *testing.T) {
	t.Parallel()

	cfg := AppConfig{
		API:    APIConfig{BaseURL: "http://localhost:8000/", Timeout: -1},
		Upload: UploadConfig{Folder: " /images/ "},
	}
	cfg.Sanitize()

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "images", cfg.Upload.Folder)
}

func TestUploadConfig_Sanitize_EmptyFolder(t *testing.T) {
	t.Parallel()

	u := UploadConfig{Folder: "  "}
	u.Sanitize()
	assert.Equal(t, "uploads", u.Folder)
}
