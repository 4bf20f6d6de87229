// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"
	"sort"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// Default group labels applied when a credit carries no label of its own.
const (
	defaultWritingLabel  = "by"
	defaultProducerLabel = "produced by"
)

// entitySlot is one credited entity before expansion: the resolved node,
// its ordering position, and the company it is credited through, if any.
type entitySlot struct {
	node        *graph.Node
	position    int
	companyUUID string
}

func creditEntity(node *graph.Node) CreditEntity {
	entity := CreditEntity{Model: string(node.Kind), UUID: node.UUID, Name: node.Name}
	if node.Kind == graph.KindMaterial {
		entity.Format = node.Props.String(graph.PropFormat)
		entity.Year = node.Props.IntOrZero(graph.PropYear)
	}
	return entity
}

// expandEntitySlots orders a flat slot list and folds company-routed persons
// into their company's members list.
//
// A company entity always carries a non-nil members list, even when empty.
// A slot naming a company absent from the list is promoted to a top-level
// entity rather than dropped.
func expandEntitySlots(slots []entitySlot) []CreditEntity {
	companies := make(map[string]bool)
	for _, slot := range slots {
		if slot.node.Kind == graph.KindCompany {
			companies[slot.node.UUID] = true
		}
	}

	var top []entitySlot
	members := make(map[string][]entitySlot)
	for _, slot := range slots {
		if slot.companyUUID != "" && companies[slot.companyUUID] {
			members[slot.companyUUID] = append(members[slot.companyUUID], slot)
			continue
		}
		top = append(top, slot)
	}

	sort.SliceStable(top, func(i, j int) bool { return top[i].position < top[j].position })

	entities := make([]CreditEntity, 0, len(top))
	for _, slot := range top {
		entity := creditEntity(slot.node)
		if slot.node.Kind == graph.KindCompany {
			memberSlots := members[slot.node.UUID]
			sort.SliceStable(memberSlots, func(i, j int) bool {
				return memberSlots[i].position < memberSlots[j].position
			})
			refs := make([]Ref, 0, len(memberSlots))
			for _, member := range memberSlots {
				refs = append(refs, Ref{
					Model: string(member.node.Kind),
					UUID:  member.node.UUID,
					Name:  member.node.Name,
				})
			}
			entity.Members = &refs
		}
		entities = append(entities, entity)
	}
	return entities
}

// collateCredits groups flat credit edges into ordered named groups: one
// partition per credit position, entities ordered within each partition,
// company members expanded. Groups that resolve to no entities are omitted.
func collateCredits(neighbors []graph.Neighbor, defaultLabel string) []CreditGroup {
	type partition struct {
		position int
		label    string
		slots    []entitySlot
	}

	byPosition := make(map[int]*partition)
	var ordered []*partition
	for _, neighbor := range neighbors {
		position := neighbor.Edge.Props.Position(graph.PropCreditPosition)
		part := byPosition[position]
		if part == nil {
			part = &partition{position: position}
			byPosition[position] = part
			ordered = append(ordered, part)
		}
		if part.label == "" {
			part.label = neighbor.Edge.Props.String(graph.PropCreditLabel)
		}
		part.slots = append(part.slots, entitySlot{
			node:        neighbor.Node,
			position:    neighbor.Edge.Props.Position(graph.PropEntityPosition),
			companyUUID: neighbor.Edge.Props.String(graph.PropCreditedCompany),
		})
	}

	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].position < ordered[j].position })

	groups := make([]CreditGroup, 0, len(ordered))
	for _, part := range ordered {
		entities := expandEntitySlots(part.slots)
		if len(entities) == 0 {
			continue
		}
		label := part.label
		if label == "" {
			label = defaultLabel
		}
		groups = append(groups, CreditGroup{Name: label, Entities: entities})
	}
	return groups
}

// writingCredits collates a material's full byline: authorship, adapted
// sources, and rights grantors in their stored groups.
func writingCredits(ctx context.Context, store graph.Store, materialUUID string) ([]CreditGroup, error) {
	neighbors, err := store.Neighbors(ctx, materialUUID, graph.EdgeHasWritingCredit, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	return collateCredits(neighbors, defaultWritingLabel), nil
}

// teamCredits collates one category of a production's team credits.
func teamCredits(ctx context.Context, store graph.Store, productionUUID, category string) ([]CreditGroup, error) {
	neighbors, err := store.Neighbors(ctx, productionUUID, graph.EdgeHasTeamCredit, graph.Outgoing)
	if err != nil {
		return nil, err
	}

	filtered := neighbors[:0:0]
	for _, neighbor := range neighbors {
		if neighbor.Edge.Props.String(graph.PropCreditCategory) == category {
			filtered = append(filtered, neighbor)
		}
	}

	defaultLabel := ""
	if category == graph.CreditCategoryProducer {
		defaultLabel = defaultProducerLabel
	}
	return collateCredits(filtered, defaultLabel), nil
}
