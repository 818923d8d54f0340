// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

package chat

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var htmlSanitizer = bluemonday.UGCPolicy()

// RenderMarkdown converts a model reply to sanitized HTML for the chat
// widget. Model output is untrusted, so everything the UGC policy does
// not allow is stripped. Falls back to escaped plain text if the
// markdown does not parse.
func RenderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes()))
}
