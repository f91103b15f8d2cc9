// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides filename-friendly slug generation from
// arbitrary strings, used to derive export download names from
// project names.
package slug

import (
	"regexp"
	"strings"
)

// nonAlphanumericRuns matches each run of characters that aren't
// lowercase letters or digits.
var nonAlphanumericRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a filename-friendly slug from the given string:
// lower-cased, every run of non-alphanumeric characters collapsed to a
// single hyphen, then trimmed of leading and trailing hyphens.
// Example: "Q3_Product Launch!" → "q3-product-launch"
func Generate(s string) string {
	result := nonAlphanumericRuns.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(result, "-")
}

// Filename builds a download filename from a base name and a suffix
// (suffix includes the extension, e.g. "-carousel.pdf"). An empty slug
// falls back to "untitled" so the download always has a usable name.
func Filename(name, suffix string) string {
	base := Generate(name)
	if base == "" {
		base = "untitled"
	}
	return base + suffix
}
