package service

// QRCodeService renders shareable storefront QR codes.
type QRCodeService interface {
	// StorefrontPNG returns a PNG QR code encoding the public storefront URL
	// for the given vendor slug.
	StorefrontPNG(slug string) ([]byte, error)
}
