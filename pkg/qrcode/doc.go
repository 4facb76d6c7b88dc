// Package qrcode renders payment-request artifacts as QR code images, either
// as raw PNG bytes or as a data URI ready for an <img> tag.
//
// It wraps github.com/skip2/go-qrcode. Bech32 payment requests (BOLT11
// invoices, "lightning:" URIs, LNURLs) are case-insensitive, so Payload
// upper-cases them before encoding; upper-case input fits the denser
// alphanumeric QR mode and yields a smaller code. Other content, such as
// base64 ecash tokens, is encoded verbatim.
//
// # Usage
//
//	png, err := qrcode.Encode(invoice, 256)
//	if err != nil {
//		// handle error
//	}
//
//	uri, err := qrcode.DataURI(invoice, 256)
//
// Errors are package-level variables comparable with errors.Is.
package qrcode
