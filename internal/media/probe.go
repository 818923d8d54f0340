// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ivision/showcase-go/internal/util"
)

// probeTimeout bounds how long a single image reachability check may
// take. Slow hosts count as unreachable rather than blocking saves.
const probeTimeout = 5 * time.Second

// Prober checks whether a media URL is actually reachable. It exists as
// an interface so handler tests can substitute a stub instead of making
// network calls.
type Prober interface {
	ProbeImage(ctx context.Context, rawURL string) error
}

// HTTPProber probes image URLs with a bounded GET request.
type HTTPProber struct {
	client *http.Client
	// allowPrivate disables the private-address guard. Only tests that
	// probe a loopback server set it.
	allowPrivate bool
}

// NewHTTPProber returns a prober with a bounded client that refuses to
// connect to private address space. Editors paste arbitrary URLs into
// the admin form; the probe must never reach internal services.
func NewHTTPProber() *HTTPProber {
	return &HTTPProber{
		client: &http.Client{
			Timeout: probeTimeout,
			Transport: &http.Transport{
				DialContext: util.SSRFSafeDialContext(&net.Dialer{Timeout: probeTimeout}),
			},
		},
	}
}

// ProbeImage fetches the URL and verifies the response looks like an
// image. A Drive URL is normalized to its direct-download form first.
// Errors describe what went wrong in a form suitable for showing to an
// editor in the admin UI.
func (p *HTTPProber) ProbeImage(ctx context.Context, rawURL string) error {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	target := NormalizeDriveURL(rawURL)
	if !p.allowPrivate {
		if err := util.ValidateProbeURL(target); err != nil {
			return fmt.Errorf("image URL rejected: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("invalid image URL: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("image unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("image URL returned HTTP %d", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "" && !strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "application/octet-stream") {
		return fmt.Errorf("URL serves %s, not an image", ct)
	}
	return nil
}
