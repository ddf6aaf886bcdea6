package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"arenadb/pkg/telemetry"
)

var (
	// ErrUnconfigured means no webhook URL is set; callers map it to 503.
	ErrUnconfigured = errors.New("backup webhook not configured")
	// ErrUpstream means the webhook endpoint rejected or failed the upload.
	ErrUpstream = errors.New("backup upstream error")
)

// Forwarder posts backup payloads to the configured webhook verbatim.
type Forwarder struct {
	URL        string
	HTTPClient *http.Client
}

func (f *Forwarder) client() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// Forward uploads one JSON payload. The body is passed through untouched so
// client-assembled envelopes keep their exact shape.
func (f *Forwarder) Forward(ctx context.Context, body []byte) error {
	if f == nil || f.URL == "" {
		telemetry.CountBackup("unconfigured")
		return ErrUnconfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client().Do(req)
	if err != nil {
		telemetry.CountBackup("upstream_error")
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		telemetry.CountBackup("upstream_error")
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, detail)
	}

	telemetry.CountBackup("ok")
	return nil
}
