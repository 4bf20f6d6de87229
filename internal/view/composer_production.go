// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"
	"sort"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// Production assembles the show document for one production node.
func (composer *Composer) Production(ctx context.Context, node *graph.Node) (*ProductionShow, error) {
	store := composer.store
	show := &ProductionShow{
		Model:     string(graph.KindProduction),
		UUID:      node.UUID,
		Name:      node.Name,
		Subtitle:  node.Props.String(graph.PropSubtitle),
		StartDate: node.Props.String(graph.PropStartDate),
		PressDate: node.Props.String(graph.PropPressDate),
		EndDate:   node.Props.String(graph.PropEndDate),

		SubProductions:  []ProductionLink{},
		ProducerCredits: []CreditGroup{},
		Cast:            []CastMember{},
		CreativeCredits: []CreditGroup{},
		CrewCredits:     []CreditGroup{},
		Reviews:         []Review{},
		Awards:          []AwardBlock{},
	}

	material, err := composer.firstNeighbor(ctx, node.UUID, graph.EdgeProductionOf, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if material != nil {
		show.Material, err = materialLink(ctx, store, material.Node, 1, true)
		if err != nil {
			return nil, err
		}
	}

	venue, err := composer.firstNeighbor(ctx, node.UUID, graph.EdgePlaysAt, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if venue != nil {
		show.Venue, err = venueLink(ctx, store, venue.Node)
		if err != nil {
			return nil, err
		}
	}

	season, err := composer.firstNeighbor(ctx, node.UUID, graph.EdgePartOfSeason, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if season != nil {
		show.Season = &Ref{Model: string(graph.KindSeason), UUID: season.Node.UUID, Name: season.Node.Name}
	}

	festival, err := composer.firstNeighbor(ctx, node.UUID, graph.EdgePartOfFestival, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if festival != nil {
		show.Festival = &Ref{Model: string(graph.KindFestival), UUID: festival.Node.UUID, Name: festival.Node.Name}
	}

	sur, err := surOf(ctx, store, node.UUID, graph.EdgeHasSubProduction)
	if err != nil {
		return nil, err
	}
	if sur != nil {
		show.SurProduction, err = productionLink(ctx, store, sur, 1)
		if err != nil {
			return nil, err
		}
	}

	show.SubProductions, err = subProductionTree(ctx, store, node.UUID, productionDepth)
	if err != nil {
		return nil, err
	}

	show.ProducerCredits, err = teamCredits(ctx, store, node.UUID, graph.CreditCategoryProducer)
	if err != nil {
		return nil, err
	}
	show.CreativeCredits, err = teamCredits(ctx, store, node.UUID, graph.CreditCategoryCreative)
	if err != nil {
		return nil, err
	}
	show.CrewCredits, err = teamCredits(ctx, store, node.UUID, graph.CreditCategoryCrew)
	if err != nil {
		return nil, err
	}

	var catalogue []catalogueEntry
	if material != nil {
		catalogue, err = characterCatalogue(ctx, store, material.Node.UUID)
		if err != nil {
			return nil, err
		}
	}
	show.Cast, err = castMembers(ctx, store, node.UUID, catalogue)
	if err != nil {
		return nil, err
	}

	show.Reviews, err = composer.productionReviews(ctx, node.UUID)
	if err != nil {
		return nil, err
	}

	show.Awards, err = awardsFor(ctx, store, node)
	if err != nil {
		return nil, err
	}
	return show, nil
}

// productionReviews pairs a production's review edges by position: the
// company edge names the publication, the person edge the critic.
func (composer *Composer) productionReviews(ctx context.Context, productionUUID string) ([]Review, error) {
	neighbors, err := composer.store.Neighbors(ctx, productionUUID, graph.EdgeHasReview, graph.Outgoing)
	if err != nil {
		return nil, err
	}

	type pair struct {
		position int
		review   Review
	}
	byPosition := make(map[int]*pair)
	var ordered []*pair

	for _, neighbor := range neighbors {
		position := neighbor.Edge.Props.Position(graph.PropPosition)
		entry := byPosition[position]
		if entry == nil {
			entry = &pair{position: position}
			byPosition[position] = entry
			ordered = append(ordered, entry)
		}
		if entry.review.URL == "" {
			entry.review.URL = neighbor.Edge.Props.String(graph.PropURL)
		}
		if entry.review.Date == "" {
			entry.review.Date = neighbor.Edge.Props.String(graph.PropDate)
		}
		ref := &Ref{Model: string(neighbor.Node.Kind), UUID: neighbor.Node.UUID, Name: neighbor.Node.Name}
		switch neighbor.Node.Kind {
		case graph.KindCompany:
			entry.review.Publication = ref
		case graph.KindPerson:
			entry.review.Critic = ref
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].position < ordered[j].position })

	reviews := make([]Review, 0, len(ordered))
	for _, entry := range ordered {
		reviews = append(reviews, entry.review)
	}
	return reviews, nil
}
