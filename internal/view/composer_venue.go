// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// Venue assembles the show document for one venue node. Productions staged
// at the venue's sub-venues are included alongside its own, each carrying
// the venue it actually played.
func (composer *Composer) Venue(ctx context.Context, node *graph.Node) (*VenueShow, error) {
	store := composer.store
	show := &VenueShow{
		Model:          string(graph.KindVenue),
		UUID:           node.UUID,
		Name:           node.Name,
		Differentiator: node.Differentiator,

		SubVenues:   []Ref{},
		Productions: []ProductionLink{},
	}

	sur, err := surOf(ctx, store, node.UUID, graph.EdgeHasSubVenue)
	if err != nil {
		return nil, err
	}
	if sur != nil {
		show.SurVenue = venueRef(sur)
	}

	show.SubVenues, err = subVenues(ctx, store, node.UUID)
	if err != nil {
		return nil, err
	}

	venueUUIDs := []string{node.UUID}
	for _, sub := range show.SubVenues {
		venueUUIDs = append(venueUUIDs, sub.UUID)
	}

	seen := make(map[string]bool)
	for _, venueUUID := range venueUUIDs {
		staged, err := store.Neighbors(ctx, venueUUID, graph.EdgePlaysAt, graph.Incoming)
		if err != nil {
			return nil, err
		}
		for _, neighbor := range staged {
			if seen[neighbor.Node.UUID] {
				continue
			}
			seen[neighbor.Node.UUID] = true

			link, err := productionLink(ctx, store, neighbor.Node, 1)
			if err != nil {
				return nil, err
			}
			show.Productions = append(show.Productions, *link)
		}
	}
	sortProductionLinks(show.Productions)
	return show, nil
}
