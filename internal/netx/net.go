// Package netx holds the plain-HTTP helpers used next to the S3 presigner.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultContentType is sent when the caller does not know the body type.
const DefaultContentType = "application/octet-stream"

// PutPresigned uploads body to a presigned PUT URL. Any 2xx status is success.
func PutPresigned(ctx context.Context, client *http.Client, url, contentType string, body []byte) error {
	if contentType == "" {
		contentType = DefaultContentType
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}
