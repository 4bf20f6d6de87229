// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// Grouping assembles the show document for a season or festival node.
func (composer *Composer) Grouping(ctx context.Context, node *graph.Node) (*GroupingShow, error) {
	show := &GroupingShow{
		Model:          string(node.Kind),
		UUID:           node.UUID,
		Name:           node.Name,
		Differentiator: node.Differentiator,

		Productions: []ProductionLink{},
	}

	edgeKind := graph.EdgePartOfSeason
	if node.Kind == graph.KindFestival {
		edgeKind = graph.EdgePartOfFestival
	}

	neighbors, err := composer.store.Neighbors(ctx, node.UUID, edgeKind, graph.Incoming)
	if err != nil {
		return nil, err
	}
	for _, neighbor := range neighbors {
		link, err := productionLink(ctx, composer.store, neighbor.Node, 1)
		if err != nil {
			return nil, err
		}
		show.Productions = append(show.Productions, *link)
	}
	sortProductionLinks(show.Productions)
	return show, nil
}
