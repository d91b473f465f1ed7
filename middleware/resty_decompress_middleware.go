package middleware

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/go-resty/resty/v2"
)

var gzipMagic = []byte{0x1f, 0x8b}

// DecompressMiddleware decodes br, gzip and deflate bodies for clients that set
// Accept-Encoding themselves. Resty may already have inflated a gzip body, so
// gzip is only decoded when the magic header is still present.
func DecompressMiddleware(c *resty.Client, resp *resty.Response) error {
	encoding := strings.ToLower(strings.TrimSpace(resp.Header().Get("Content-Encoding")))
	body := resp.Body()
	if encoding == "" || len(body) == 0 {
		return nil
	}

	var reader io.Reader
	switch encoding {
	case "br":
		reader = brotli.NewReader(bytes.NewReader(body))
	case "gzip":
		if !bytes.HasPrefix(body, gzipMagic) {
			return nil
		}
		gz, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("gzip response: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(bytes.NewReader(body))
		defer fl.Close()
		reader = fl
	default:
		return nil
	}

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("decompress %s response: %w", encoding, err)
	}

	resp.SetBody(decompressed)
	return nil
}
