// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package validate_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamsinleach/dramatis/internal/platform/validate"
)

/*
TestErrorBag_Required tests the mandatory field rule.
*/
func TestErrorBag_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Hamlet", false},
		{"empty_string", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := validate.NewBag()
			bag.Required("name", tt.value)

			if tt.hasError {
				assert.False(t, bag.IsEmpty())
				assert.Equal(t, []string{validate.MsgTooShort}, bag["name"])
			} else {
				assert.True(t, bag.IsEmpty())
			}
		})
	}
}

/*
TestErrorBag_MaxLen tests the catalogue-wide length bound, counting Unicode
characters rather than bytes.
*/
func TestErrorBag_MaxLen(t *testing.T) {
	bag := validate.NewBag()
	bag.MaxLen("name", strings.Repeat("a", 1000))
	assert.True(t, bag.IsEmpty())

	bag.MaxLen("name", strings.Repeat("é", 1001))
	require.False(t, bag.IsEmpty())
	assert.Equal(t, []string{validate.MsgTooLong}, bag["name"])
}

/*
TestErrorBag_IdentityRules tests the rules that flag both identity fields.
*/
func TestErrorBag_IdentityRules(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(bag validate.ErrorBag)
		message string
	}{
		{"not_unique", func(bag validate.ErrorBag) { bag.NotUnique() }, validate.MsgNotUnique},
		{"self_reference", func(bag validate.ErrorBag) { bag.SelfReference() }, validate.MsgSelfReference},
		{"duplicate_in_group", func(bag validate.ErrorBag) { bag.DuplicateInGroup() }, validate.MsgDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := validate.NewBag()
			tt.apply(bag)

			assert.Equal(t, []string{tt.message}, bag["name"])
			assert.Equal(t, []string{tt.message}, bag["differentiator"])
		})
	}
}

/*
TestErrorBag_Serialization verifies that a fresh bag marshals as an empty
object, never as null. Clients rely on `errors: {}` for clean instances.
*/
func TestErrorBag_Serialization(t *testing.T) {
	payload, err := json.Marshal(validate.NewBag())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(payload))

	var nilBag validate.ErrorBag
	payload, err = json.Marshal(validate.Ensure(nilBag))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(payload))
}

/*
TestErrorBag_Accumulates verifies that repeated rules append rather than
overwrite.
*/
func TestErrorBag_Accumulates(t *testing.T) {
	bag := validate.NewBag()
	bag.Add("name", validate.MsgTooShort)
	bag.Add("name", validate.MsgNotUnique)

	assert.Equal(t, []string{validate.MsgTooShort, validate.MsgNotUnique}, bag["name"])
}
