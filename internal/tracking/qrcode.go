package tracking

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(trackingCode string) ([]byte, error)
}

// DefaultQRGenerator encodes a tracking link for a delivery recipient as a
// PNG.
type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) URL(trackingCode string) string {
	return fmt.Sprintf("%s/deliveries/track/%s", strings.TrimRight(g.BaseURL, "/"), url.PathEscape(trackingCode))
}

func (g DefaultQRGenerator) Generate(trackingCode string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.URL(trackingCode), qrcode.Medium, size)
}
