package service

import (
	"net/url"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

// ReceiptQRGenerator encodes a link to the order tracking page as a PNG.
type ReceiptQRGenerator struct {
	BaseURL string
}

func (g ReceiptQRGenerator) Link(orderID string) string {
	return g.BaseURL + "/order?id=" + url.QueryEscape(orderID)
}

func (g ReceiptQRGenerator) Generate(orderID string) ([]byte, error) {
	return qrcode.Encode(g.Link(orderID), qrcode.Medium, 256)
}
