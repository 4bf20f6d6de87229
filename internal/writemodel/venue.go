// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package writemodel

import (
	"context"

	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/validate"
	"github.com/tamsinleach/dramatis/pkg/names"
)

// Venue is the venue submission shape. Sub-venues are submitted as sibling
// identity refs; a venue acquires its sur-venue by being listed in the
// parent's submission.
type Venue struct {
	UUID           string            `json:"uuid,omitempty"`
	Name           string            `json:"name"`
	Differentiator string            `json:"differentiator,omitempty"`
	SubVenues      []EntityRef       `json:"subVenues"`
	Errors         validate.ErrorBag `json:"errors"`
}

// NewVenue returns the seeded shape for the "new" endpoint.
func NewVenue() *Venue {
	return &Venue{SubVenues: []EntityRef{}, Errors: validate.NewBag()}
}

// Trim normalises all submitted strings and initialises every error bag.
func (venue *Venue) Trim() {
	venue.Name = names.Clean(venue.Name)
	venue.Differentiator = names.Clean(venue.Differentiator)
	venue.Errors = validate.Ensure(venue.Errors)
	if venue.SubVenues == nil {
		venue.SubVenues = []EntityRef{}
	}
	for i := range venue.SubVenues {
		venue.SubVenues[i].trim()
	}
}

// Validate populates the error bags. Only infrastructure failures return an
// error.
func (venue *Venue) Validate(ctx context.Context, store graph.Store) error {
	venue.Errors.Required("name", venue.Name).MaxLen("name", venue.Name)
	venue.Errors.MaxLen("differentiator", venue.Differentiator)

	subject := identity{venue.Name, venue.Differentiator}
	refs := make([]*EntityRef, 0, len(venue.SubVenues))
	for i := range venue.SubVenues {
		ref := &venue.SubVenues[i]
		ref.validateLengths()
		flagSelfAssociation(subject, ref)
		refs = append(refs, ref)
	}
	flagDuplicates(refs)

	if venue.Name == "" {
		return nil
	}
	unique, err := checkUnique(ctx, store, graph.KindVenue, subject, venue.UUID)
	if err != nil {
		return err
	}
	if !unique {
		venue.Errors.NotUnique()
	}
	return nil
}

// HasErrors reports whether validation flagged anything, on the instance or
// any nested item.
func (venue *Venue) HasErrors() bool {
	if !venue.Errors.IsEmpty() {
		return true
	}
	for i := range venue.SubVenues {
		if !venue.SubVenues[i].Errors.IsEmpty() {
			return true
		}
	}
	return false
}

// Node builds the storable node for a create or update.
func (venue *Venue) Node() *graph.Node {
	return &graph.Node{
		UUID:           venue.UUID,
		Kind:           graph.KindVenue,
		Name:           venue.Name,
		Differentiator: venue.Differentiator,
	}
}

// Save replaces the venue's sub-venue edges from the submission. Each
// listed sub-venue is merged by identity and re-parented to this venue.
func (venue *Venue) Save(ctx context.Context, tx graph.Store, venueUUID string) error {
	if err := tx.DeleteEdgesFrom(ctx, venueUUID, graph.EdgeHasSubVenue); err != nil {
		return err
	}

	position := 0
	for i := range venue.SubVenues {
		ref := &venue.SubVenues[i]
		if ref.empty() {
			continue
		}
		subUUID, err := ref.resolve(ctx, tx, graph.KindVenue)
		if err != nil {
			return err
		}
		if err := tx.DeleteEdgesTo(ctx, subUUID, graph.EdgeHasSubVenue); err != nil {
			return err
		}
		err = tx.CreateEdge(ctx, &graph.Edge{
			Kind:     graph.EdgeHasSubVenue,
			FromUUID: venueUUID,
			ToUUID:   subUUID,
			Props:    graph.Props{graph.PropPosition: position},
		})
		if err != nil {
			return err
		}
		position++
	}
	return nil
}

// LoadVenue rebuilds the edit shape from the store.
func LoadVenue(ctx context.Context, store graph.Store, node *graph.Node) (*Venue, error) {
	venue := &Venue{
		UUID:           node.UUID,
		Name:           node.Name,
		Differentiator: node.Differentiator,
		SubVenues:      []EntityRef{},
		Errors:         validate.NewBag(),
	}

	neighbors, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasSubVenue, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortNeighborsByPosition(neighbors, graph.PropPosition)
	for _, neighbor := range neighbors {
		venue.SubVenues = append(venue.SubVenues, EntityRef{
			UUID:           neighbor.Node.UUID,
			Name:           neighbor.Node.Name,
			Differentiator: neighbor.Node.Differentiator,
			Errors:         validate.NewBag(),
		})
	}
	return venue, nil
}
