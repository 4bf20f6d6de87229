// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

// Package validate provides per-field error bags and the string constraints
// applied to catalogue submissions.
//
// # Architecture
//
// Unlike conventional APIs that reject invalid input with a 4xx status,
// Dramatis returns the submitted instance with a populated `errors` object
// and a 200 status — validation failures are data. Every submission shape
// therefore embeds an [ErrorBag], nested per sub-instance for composite
// submissions (e.g. each sub-venue carries its own bag).
package validate

import (
	"unicode/utf8"

	"github.com/tamsinleach/dramatis/internal/platform/constants"
)

// Canonical validation messages. Kept identical across entity kinds so
// clients can match on them.
const (
	MsgTooShort      = "Value is too short"
	MsgTooLong       = "Value is too long"
	MsgNotUnique     = "Name and differentiator combination already exists"
	MsgSelfReference = "Instance cannot form association with itself"
	MsgDuplicate     = "This item has been duplicated within the group"
	MsgAbsent        = "Record does not exist"
)

// ErrorBag accumulates field-scoped validation messages.
//
// A nil bag marshals as JSON null, so shapes must initialise their bag via
// [NewBag] (or [Ensure]) before serialisation to guarantee `errors: {}` on
// clean instances.
type ErrorBag map[string][]string

// NewBag returns an empty, non-nil bag.
func NewBag() ErrorBag {
	return ErrorBag{}
}

// Ensure returns bag, or a fresh empty bag when bag is nil.
func Ensure(bag ErrorBag) ErrorBag {
	if bag == nil {
		return NewBag()
	}
	return bag
}

// Add appends a message under the given field.
func (bag ErrorBag) Add(field, message string) {
	bag[field] = append(bag[field], message)
}

// IsEmpty reports whether no field has accumulated an error.
func (bag ErrorBag) IsEmpty() bool {
	return len(bag) == 0
}

// # String Constraints

// Required adds MsgTooShort when the value is empty.
//
// Values are trimmed by the write models before validation, so whitespace-only
// input is already empty by the time it reaches this check.
func (bag ErrorBag) Required(field, value string) ErrorBag {
	if value == "" {
		bag.Add(field, MsgTooShort)
	}
	return bag
}

// MaxLen adds MsgTooLong when the Unicode character count exceeds the
// catalogue-wide bound.
func (bag ErrorBag) MaxLen(field, value string) ErrorBag {
	if utf8.RuneCountInString(value) > constants.MaxNameLength {
		bag.Add(field, MsgTooLong)
	}
	return bag
}

// NotUnique records a store-side uniqueness conflict against both the name
// and differentiator fields, matching how the collision is defined.
func (bag ErrorBag) NotUnique() ErrorBag {
	bag.Add("name", MsgNotUnique)
	bag.Add("differentiator", MsgNotUnique)
	return bag
}

// SelfReference records a self-association against both identity fields.
func (bag ErrorBag) SelfReference() ErrorBag {
	bag.Add("name", MsgSelfReference)
	bag.Add("differentiator", MsgSelfReference)
	return bag
}

// DuplicateInGroup records an in-request duplicate against both identity fields.
func (bag ErrorBag) DuplicateInGroup() ErrorBag {
	bag.Add("name", MsgDuplicate)
	bag.Add("differentiator", MsgDuplicate)
	return bag
}
