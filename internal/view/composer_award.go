// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"
	"sort"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// Award assembles the show document for one award node: its ceremonies,
// newest first.
func (composer *Composer) Award(ctx context.Context, node *graph.Node) (*AwardShow, error) {
	show := &AwardShow{
		Model:          string(graph.KindAward),
		UUID:           node.UUID,
		Name:           node.Name,
		Differentiator: node.Differentiator,

		Ceremonies: []Ref{},
	}

	neighbors, err := composer.store.Neighbors(ctx, node.UUID, graph.EdgePresentedBy, graph.Incoming)
	if err != nil {
		return nil, err
	}
	for _, neighbor := range neighbors {
		show.Ceremonies = append(show.Ceremonies, Ref{
			Model: string(graph.KindAwardCeremony),
			UUID:  neighbor.Node.UUID,
			Name:  neighbor.Node.Name,
		})
	}
	sort.SliceStable(show.Ceremonies, func(i, j int) bool {
		return show.Ceremonies[i].Name > show.Ceremonies[j].Name
	})
	return show, nil
}

// AwardCeremony assembles the show document for one ceremony node: the full
// category and nomination tree with no subject perspective applied.
func (composer *Composer) AwardCeremony(ctx context.Context, node *graph.Node) (*AwardCeremonyShow, error) {
	store := composer.store
	show := &AwardCeremonyShow{
		Model: string(graph.KindAwardCeremony),
		UUID:  node.UUID,
		Name:  node.Name,

		Categories: []CategoryBlock{},
	}

	award, err := composer.firstNeighbor(ctx, node.UUID, graph.EdgePresentedBy, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if award != nil {
		show.Award = &Ref{Model: string(graph.KindAward), UUID: award.Node.UUID, Name: award.Node.Name}
	}

	categories, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasCategory, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortByProp(categories, graph.PropPosition)

	for _, category := range categories {
		block := CategoryBlock{Name: category.Node.Name, Nominations: []Nomination{}}

		nominees, err := store.Neighbors(ctx, category.Node.UUID, graph.EdgeHasNominee, graph.Outgoing)
		if err != nil {
			return nil, err
		}
		for _, position := range nominationPositions(nominees) {
			nomination, err := buildNomination(ctx, store, category.Node.UUID, position, nil, nil)
			if err != nil {
				return nil, err
			}
			block.Nominations = append(block.Nominations, *nomination)
		}
		show.Categories = append(show.Categories, block)
	}
	return show, nil
}
