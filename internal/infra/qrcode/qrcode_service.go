// Package qrcode renders shareable storefront QR codes.
package qrcode

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"

	"shoplocal/config"
	"shoplocal/internal/domain/service"
)

const defaultQRSize = 256

type qrcodeService struct {
	baseURL              string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultQRSize
	baseURL := ""
	levelName := ""

	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		baseURL = cfg.QRCode.BaseURL
		levelName = cfg.QRCode.ErrorCorrectionLevel
	}
	if baseURL == "" && cfg.WordPress != nil {
		// Fall back to the marketplace site itself.
		baseURL = cfg.WordPress.BaseURL
	}

	var level qrcode.RecoveryLevel
	switch levelName {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		baseURL:              strings.TrimRight(baseURL, "/"),
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// StorefrontPNG generates a QR code PNG for the vendor's public storefront URL.
func (s *qrcodeService) StorefrontPNG(slug string) ([]byte, error) {
	if slug == "" {
		return nil, errors.New("vendor slug is required")
	}

	storefrontURL := s.baseURL + "/store/" + url.PathEscape(slug)

	qrCode, err := qrcode.New(storefrontURL, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
