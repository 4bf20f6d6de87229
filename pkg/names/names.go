// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

// Package names normalizes the free-text names that identify catalogue
// records.
//
// # Usage
//
// Every submitted name, differentiator, label, and qualifier passes through
// [Clean] before validation and persistence, so that equality checks —
// uniqueness, self-association, role-to-character matching — operate on a
// canonical Unicode representation rather than raw client input.
package names

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean trims surrounding whitespace and applies Unicode NFC normalization.
//
// NFC guarantees that composed and decomposed submissions of the same
// accented name ("Esmé" typed either way) compare equal everywhere
// downstream.
func Clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// CleanAll applies [Clean] to every element of a slice in place.
func CleanAll(values []string) {
	for i, v := range values {
		values[i] = Clean(v)
	}
}
