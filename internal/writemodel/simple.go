// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package writemodel

import (
	"context"

	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/validate"
	"github.com/tamsinleach/dramatis/pkg/names"
)

// Simple is the submission shape shared by the kinds that carry nothing
// beyond their identity: people, companies, characters, awards, seasons,
// and festivals. Their relationships are owned by other kinds' submissions.
type Simple struct {
	UUID           string            `json:"uuid,omitempty"`
	Name           string            `json:"name"`
	Differentiator string            `json:"differentiator,omitempty"`
	Errors         validate.ErrorBag `json:"errors"`
}

// NewSimple returns the seeded shape for the "new" endpoint.
func NewSimple() *Simple {
	return &Simple{Errors: validate.NewBag()}
}

// SimpleFromNode rebuilds the edit shape from a stored node.
func SimpleFromNode(node *graph.Node) *Simple {
	return &Simple{
		UUID:           node.UUID,
		Name:           node.Name,
		Differentiator: node.Differentiator,
		Errors:         validate.NewBag(),
	}
}

// Trim normalises all submitted strings and initialises the error bag.
func (entry *Simple) Trim() {
	entry.Name = names.Clean(entry.Name)
	entry.Differentiator = names.Clean(entry.Differentiator)
	entry.Errors = validate.Ensure(entry.Errors)
}

// Validate populates the error bag. Only infrastructure failures return an
// error.
func (entry *Simple) Validate(ctx context.Context, store graph.Store, kind graph.Kind) error {
	entry.Errors.Required("name", entry.Name).MaxLen("name", entry.Name)
	entry.Errors.MaxLen("differentiator", entry.Differentiator)

	if entry.Name == "" || graph.UniquenessExempt(kind) {
		return nil
	}
	unique, err := checkUnique(ctx, store, kind, identity{entry.Name, entry.Differentiator}, entry.UUID)
	if err != nil {
		return err
	}
	if !unique {
		entry.Errors.NotUnique()
	}
	return nil
}

// HasErrors reports whether validation flagged anything.
func (entry *Simple) HasErrors() bool {
	return !entry.Errors.IsEmpty()
}

// Node builds the storable node for a create or update.
func (entry *Simple) Node(kind graph.Kind) *graph.Node {
	return &graph.Node{
		UUID:           entry.UUID,
		Kind:           kind,
		Name:           entry.Name,
		Differentiator: entry.Differentiator,
	}
}
