// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

/*
Package writemodel defines the flat submission shapes for every catalogue
kind, their validation, and their translation to and from the adjacency
store.

Each shape is what a write form submits and what the edit endpoint returns:
scalar fields plus nested association lists. Associations are resolved by
(name, differentiator) and merged into the store on save — except
productions, which are always addressed by uuid. Every shape and nested
item carries its own error bag; validation failures populate the bags and
are returned as data with a 200 status, never as an HTTP error.

Saving replaces relationships wholesale: the subject's edges are dropped
and recreated from the submission, with ordering positions assigned
monotonically per list.
*/
package writemodel

import (
	"context"
	"errors"
	"sort"

	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/dberr"
	"github.com/tamsinleach/dramatis/internal/platform/validate"
	"github.com/tamsinleach/dramatis/pkg/names"
)

// sortNeighborsByPosition stably orders neighbors by an integer position
// property; missing positions sort last.
func sortNeighborsByPosition(neighbors []graph.Neighbor, key string) {
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Edge.Props.Position(key) < neighbors[j].Edge.Props.Position(key)
	})
}

// identity is the (name, differentiator) pair that addresses a record
// within its kind.
type identity struct {
	name           string
	differentiator string
}

// EntityRef is a named association, merged by identity on save.
type EntityRef struct {
	UUID           string            `json:"uuid,omitempty"`
	Name           string            `json:"name"`
	Differentiator string            `json:"differentiator,omitempty"`
	Errors         validate.ErrorBag `json:"errors"`
}

func (ref *EntityRef) trim() {
	ref.Name = names.Clean(ref.Name)
	ref.Differentiator = names.Clean(ref.Differentiator)
	ref.Errors = validate.Ensure(ref.Errors)
}

// empty reports whether the ref carries no association. Blank rows are
// legal in submissions and skipped on save.
func (ref *EntityRef) empty() bool {
	return ref.Name == ""
}

func (ref *EntityRef) identity() identity {
	return identity{name: ref.Name, differentiator: ref.Differentiator}
}

func (ref *EntityRef) validateLengths() {
	ref.Errors.MaxLen("name", ref.Name)
	ref.Errors.MaxLen("differentiator", ref.Differentiator)
}

// resolve merges the ref into the store, returning the node's uuid.
func (ref *EntityRef) resolve(ctx context.Context, tx graph.Store, kind graph.Kind) (string, error) {
	node, err := tx.FindOrCreateNode(ctx, kind, ref.Name, ref.Differentiator)
	if err != nil {
		return "", err
	}
	return node.UUID, nil
}

// ProductionRef is a production association, addressed by uuid since
// production names repeat across revivals.
type ProductionRef struct {
	UUID   string            `json:"uuid"`
	Errors validate.ErrorBag `json:"errors"`
}

func (ref *ProductionRef) trim() {
	ref.UUID = names.Clean(ref.UUID)
	ref.Errors = validate.Ensure(ref.Errors)
}

func (ref *ProductionRef) empty() bool {
	return ref.UUID == ""
}

// flagDuplicates marks every repeated identity in a submitted sibling list,
// first occurrence excepted. Blank rows are ignored.
func flagDuplicates(refs []*EntityRef) {
	seen := make(map[identity]bool)
	for _, ref := range refs {
		if ref.empty() {
			continue
		}
		key := ref.identity()
		if seen[key] {
			ref.Errors.DuplicateInGroup()
			continue
		}
		seen[key] = true
	}
}

// flagProductionDuplicates is flagDuplicates for uuid-addressed lists.
func flagProductionDuplicates(refs []*ProductionRef) {
	seen := make(map[string]bool)
	for _, ref := range refs {
		if ref.empty() {
			continue
		}
		if seen[ref.UUID] {
			ref.Errors.DuplicateInGroup()
			continue
		}
		seen[ref.UUID] = true
	}
}

// flagMissingProductions marks uuid refs that resolve to no stored node, so
// a stale or mistyped uuid surfaces as a field error rather than a not-found
// failure during save. Refs already flagged are left alone. Only
// infrastructure failures return an error.
func flagMissingProductions(ctx context.Context, store graph.Store, refs []*ProductionRef) error {
	for _, ref := range refs {
		if ref.empty() || !ref.Errors.IsEmpty() {
			continue
		}
		if _, err := store.GetNode(ctx, ref.UUID); err != nil {
			if errors.Is(err, dberr.ErrNotFound) {
				ref.Errors.Add("uuid", validate.MsgAbsent)
				continue
			}
			return err
		}
	}
	return nil
}

// flagSelfAssociation marks a ref that resolves to the subject's own
// identity.
func flagSelfAssociation(subject identity, ref *EntityRef) {
	if !ref.empty() && ref.identity() == subject {
		ref.Errors.SelfReference()
	}
}

// checkUnique consults the store for an identity collision, excluding the
// subject itself on updates. Only infrastructure failures return an error.
func checkUnique(ctx context.Context, store graph.Store, kind graph.Kind, subject identity, excludeUUID string) (bool, error) {
	existing, err := store.FindNode(ctx, kind, subject.name, subject.differentiator)
	if err != nil {
		return false, err
	}
	if existing == nil || existing.UUID == excludeUUID {
		return true, nil
	}
	return false, nil
}
