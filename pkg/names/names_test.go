// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tamsinleach/dramatis/pkg/names"
)

/*
TestClean verifies trimming and Unicode normalization.
*/
func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims_whitespace", "  Hamlet  ", "Hamlet"},
		{"plain_ascii", "The Tempest", "The Tempest"},
		{"composes_decomposed_accent", "Esme\u0301", "Esmé"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names.Clean(tt.input))
		})
	}
}

/*
TestCleanAll verifies in-place normalization of a slice.
*/
func TestCleanAll(t *testing.T) {
	values := []string{" a ", "b "}
	names.CleanAll(values)
	assert.Equal(t, []string{"a", "b"}, values)
}
