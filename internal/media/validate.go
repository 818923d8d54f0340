// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package media

import (
	"context"
	"errors"

	"github.com/ivision/showcase-go/internal/model"
)

// ErrNoMedia is returned when a project carries neither an image nor a
// video URL. Unlike validation warnings this is a hard failure that no
// force flag can override.
var ErrNoMedia = errors.New("project needs at least one media URL")

// Validator runs the advisory pre-save checks on a project's media
// URLs. Warnings do not block a save: an editor may force the save
// through, since a URL that fails a probe today can be a permission
// issue that resolves tomorrow.
type Validator struct {
	prober Prober
}

// NewValidator returns a validator backed by the given prober.
func NewValidator(prober Prober) *Validator {
	return &Validator{prober: prober}
}

// Validate checks the project's media URLs and returns advisory
// warnings. The only hard error is a project with no media at all,
// which is checked before any network call is made.
func (v *Validator) Validate(ctx context.Context, p *model.Project) ([]string, error) {
	if !p.HasMedia() {
		return nil, ErrNoMedia
	}

	var warnings []string

	if p.ImageURL != "" {
		if err := v.prober.ProbeImage(ctx, p.ImageURL); err != nil {
			warnings = append(warnings, "image: "+err.Error())
		}
	}

	if p.VideoURL != "" {
		// Drive and YouTube links are validated by pattern only. A direct
		// video URL is presumed valid: probing video hosts is expensive and
		// most reject ranged requests from server IPs anyway.
		switch Classify(p.VideoURL) {
		case KindDrive, KindYouTube, KindDirect:
		case KindNone:
			warnings = append(warnings, "video: URL is empty after trimming")
		}
	}

	return warnings, nil
}
