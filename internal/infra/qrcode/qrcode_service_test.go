package qrcode

import (
	"testing"

	"shoplocal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQRConfig(size int, level, baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.QRCode = &config.QRCodeConfig{
		Size:                 size,
		ErrorCorrectionLevel: level,
		BaseURL:              baseURL,
	}

	return cfg
}

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		errorCorrectionLevel string
	}{
		{"Low error correction", "L"},
		{"Medium error correction", "M"},
		{"High error correction", "Q"},
		{"Highest error correction", "H"},
		{"Default error correction", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(newTestQRConfig(256, tt.errorCorrectionLevel, "https://shoplocal.example"))
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_StorefrontPNG(t *testing.T) {
	service := NewQRCodeService(newTestQRConfig(256, "M", "https://shoplocal.example"))

	qrBytes, err := service.StorefrontPNG("corner-bakery")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_StorefrontPNG_EmptySlug(t *testing.T) {
	service := NewQRCodeService(newTestQRConfig(256, "M", "https://shoplocal.example"))

	_, err := service.StorefrontPNG("")
	assert.Error(t, err)
}

func TestQRCodeService_FallsBackToUpstreamBaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.WordPress = &config.WordPressConfig{BaseURL: "https://wp.example/"}

	service := NewQRCodeService(cfg)

	qrBytes, err := service.StorefrontPNG("corner-bakery")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)
}
