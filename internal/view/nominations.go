// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/ctxutil"
)

// Nomination type labels used when no custom type is stored.
const (
	nominationTypeWinner  = "Winner"
	nominationTypeDefault = "Nomination"
)

// nominationTargets returns the nodes through which nominations reach a
// subject: the subject itself first, then its award-sharing relatives.
//
// Productions and materials share nominations across their sur/sub family;
// materials additionally receive nominations won by their subsequent
// versions and by materials that adapted them; people and companies receive
// nominations won by the materials they are credited as writing, and by
// those materials' versions and adaptations.
func nominationTargets(ctx context.Context, store graph.Store, subject *graph.Node) ([]*graph.Node, error) {
	targets := []*graph.Node{subject}
	seen := map[string]bool{subject.UUID: true}

	add := func(nodes ...*graph.Node) {
		for _, node := range nodes {
			if !seen[node.UUID] {
				seen[node.UUID] = true
				targets = append(targets, node)
			}
		}
	}

	switch subject.Kind {
	case graph.KindProduction:
		family, err := hierarchyFamily(ctx, store, subject.UUID, graph.EdgeHasSubProduction, productionDepth)
		if err != nil {
			return nil, err
		}
		add(family...)

	case graph.KindMaterial:
		family, err := hierarchyFamily(ctx, store, subject.UUID, graph.EdgeHasSubMaterial, materialDepth)
		if err != nil {
			return nil, err
		}
		add(family...)

		relatives, err := materialRelatives(ctx, store, subject.UUID)
		if err != nil {
			return nil, err
		}
		add(relatives...)

	case graph.KindPerson, graph.KindCompany:
		written, err := writtenMaterials(ctx, store, subject.UUID)
		if err != nil {
			return nil, err
		}
		for _, material := range written {
			add(material)
			relatives, err := materialRelatives(ctx, store, material.UUID)
			if err != nil {
				return nil, err
			}
			add(relatives...)
		}
	}
	return targets, nil
}

// hierarchyFamily collects a node's ancestors and descendants within the
// depth cap, excluding the node itself.
func hierarchyFamily(ctx context.Context, store graph.Store, id string, kind graph.EdgeKind, depth int) ([]*graph.Node, error) {
	var family []*graph.Node

	current := id
	for tier := 0; tier < depth; tier++ {
		sur, err := surOf(ctx, store, current, kind)
		if err != nil {
			return nil, err
		}
		if sur == nil {
			break
		}
		family = append(family, sur)
		current = sur.UUID
	}

	frontier := []string{id}
	for tier := 0; tier < depth; tier++ {
		var next []string
		for _, parent := range frontier {
			neighbors, err := store.Neighbors(ctx, parent, kind, graph.Outgoing)
			if err != nil {
				return nil, err
			}
			for _, neighbor := range neighbors {
				family = append(family, neighbor.Node)
				next = append(next, neighbor.Node.UUID)
			}
		}
		frontier = next
	}
	return family, nil
}

// materialRelatives returns the materials that derive from the given one:
// its subsequent versions and the materials that credit it as a source.
func materialRelatives(ctx context.Context, store graph.Store, materialUUID string) ([]*graph.Node, error) {
	var relatives []*graph.Node

	versions, err := store.Neighbors(ctx, materialUUID, graph.EdgeSubsequentVersionOf, graph.Incoming)
	if err != nil {
		return nil, err
	}
	for _, neighbor := range versions {
		relatives = append(relatives, neighbor.Node)
	}

	sourcing, err := store.Neighbors(ctx, materialUUID, graph.EdgeHasWritingCredit, graph.Incoming)
	if err != nil {
		return nil, err
	}
	for _, neighbor := range sourcing {
		if neighbor.Node.Kind == graph.KindMaterial {
			relatives = append(relatives, neighbor.Node)
		}
	}
	return relatives, nil
}

// writtenMaterials returns the materials carrying an authorship credit for
// the given person or company. Source and rights-grantor credits do not
// convey award attribution.
func writtenMaterials(ctx context.Context, store graph.Store, entityUUID string) ([]*graph.Node, error) {
	neighbors, err := store.Neighbors(ctx, entityUUID, graph.EdgeHasWritingCredit, graph.Incoming)
	if err != nil {
		return nil, err
	}

	var materials []*graph.Node
	for _, neighbor := range neighbors {
		if neighbor.Node.Kind != graph.KindMaterial {
			continue
		}
		switch neighbor.Edge.Props.String(graph.PropCreditKind) {
		case "", graph.CreditKindWriting:
			materials = append(materials, neighbor.Node)
		}
	}
	return materials, nil
}

// buildNomination assembles one nomination of a category from the subject's
// perspective. A nil subject yields the neutral (ceremony page) rendering.
// recipient, when non-nil, is the relative the nomination actually targeted;
// it moves to a recipient field and is suppressed from the slot lists.
func buildNomination(ctx context.Context, store graph.Store, categoryUUID string, position int, subject, recipient *graph.Node) (*Nomination, error) {
	neighbors, err := store.Neighbors(ctx, categoryUUID, graph.EdgeHasNominee, graph.Outgoing)
	if err != nil {
		return nil, err
	}

	type linkSlot struct {
		node     *graph.Node
		position int
	}

	nomination := &Nomination{Entities: []CreditEntity{}}
	var entitySlots []entitySlot
	var productionSlots, materialSlots []linkSlot
	customType := ""

	for _, neighbor := range neighbors {
		if neighbor.Edge.Props.Position(graph.PropNominationPosition) != position {
			continue
		}
		if neighbor.Edge.Props.Bool(graph.PropIsWinner) {
			nomination.IsWinner = true
		}
		if customType == "" {
			customType = neighbor.Edge.Props.String(graph.PropCustomType)
		}

		switch neighbor.Node.Kind {
		case graph.KindPerson, graph.KindCompany:
			if subject != nil && neighbor.Node.UUID == subject.UUID {
				continue
			}
			entitySlots = append(entitySlots, entitySlot{
				node:        neighbor.Node,
				position:    neighbor.Edge.Props.Position(graph.PropEntityPosition),
				companyUUID: neighbor.Edge.Props.String(graph.PropCreditedCompany),
			})
		case graph.KindProduction:
			productionSlots = append(productionSlots, linkSlot{
				node:     neighbor.Node,
				position: neighbor.Edge.Props.Position(graph.PropProductionPosition),
			})
		case graph.KindMaterial:
			materialSlots = append(materialSlots, linkSlot{
				node:     neighbor.Node,
				position: neighbor.Edge.Props.Position(graph.PropMaterialPosition),
			})
		}
	}

	sort.SliceStable(productionSlots, func(i, j int) bool {
		return productionSlots[i].position < productionSlots[j].position
	})
	sort.SliceStable(materialSlots, func(i, j int) bool {
		return materialSlots[i].position < materialSlots[j].position
	})

	nomination.Entities = expandEntitySlots(entitySlots)

	subjectIsProduction := subject != nil && subject.Kind == graph.KindProduction
	for _, slot := range productionSlots {
		if subjectIsProduction && slot.node.UUID == subject.UUID {
			continue
		}
		link, err := productionLink(ctx, store, slot.node, 1)
		if err != nil {
			return nil, err
		}
		if recipient != nil && recipient.Kind == graph.KindProduction && slot.node.UUID == recipient.UUID {
			nomination.RecipientProduction = link
			continue
		}
		if subjectIsProduction {
			nomination.CoProductions = append(nomination.CoProductions, *link)
		} else {
			nomination.Productions = append(nomination.Productions, *link)
		}
	}

	subjectIsMaterial := subject != nil && subject.Kind == graph.KindMaterial
	for _, slot := range materialSlots {
		if subjectIsMaterial && slot.node.UUID == subject.UUID {
			continue
		}
		link, err := materialLink(ctx, store, slot.node, 1, true)
		if err != nil {
			return nil, err
		}
		if recipient != nil && recipient.Kind == graph.KindMaterial && slot.node.UUID == recipient.UUID {
			nomination.RecipientMaterial = link
			continue
		}
		if subjectIsMaterial {
			nomination.CoMaterials = append(nomination.CoMaterials, *link)
		} else {
			nomination.Materials = append(nomination.Materials, *link)
		}
	}

	switch {
	case customType != "":
		nomination.Type = customType
	case nomination.IsWinner:
		nomination.Type = nominationTypeWinner
	default:
		nomination.Type = nominationTypeDefault
	}
	return nomination, nil
}

// awardsFor assembles the award blocks visible from one subject: every
// nomination targeting the subject or one of its relatives, deduplicated by
// (category, nomination position) with the direct hit taking precedence,
// grouped award → ceremony → category.
func awardsFor(ctx context.Context, store graph.Store, subject *graph.Node) ([]AwardBlock, error) {
	targets, err := nominationTargets(ctx, store, subject)
	if err != nil {
		return nil, err
	}

	type nomKey struct {
		category string
		position int
	}
	type nomRef struct {
		position  int
		recipient *graph.Node
	}
	type categoryAgg struct {
		node *graph.Node
		refs []nomRef
	}

	seen := make(map[nomKey]bool)
	categoriesByUUID := make(map[string]*categoryAgg)
	var categoryOrder []*categoryAgg

	for _, target := range targets {
		neighbors, err := store.Neighbors(ctx, target.UUID, graph.EdgeHasNominee, graph.Incoming)
		if err != nil {
			return nil, err
		}
		for _, neighbor := range neighbors {
			position := neighbor.Edge.Props.Position(graph.PropNominationPosition)
			key := nomKey{category: neighbor.Node.UUID, position: position}
			if seen[key] {
				continue
			}
			seen[key] = true

			agg := categoriesByUUID[neighbor.Node.UUID]
			if agg == nil {
				agg = &categoryAgg{node: neighbor.Node}
				categoriesByUUID[neighbor.Node.UUID] = agg
				categoryOrder = append(categoryOrder, agg)
			}
			ref := nomRef{position: position}
			if target.UUID != subject.UUID {
				ref.recipient = target
			}
			agg.refs = append(agg.refs, ref)
		}
	}

	type ceremonyAgg struct {
		node              *graph.Node
		categoryPositions map[string]int
		categories        []*categoryAgg
	}
	type awardAgg struct {
		node       *graph.Node
		ceremonies []*ceremonyAgg
	}

	ceremoniesByUUID := make(map[string]*ceremonyAgg)
	awardsByUUID := make(map[string]*awardAgg)
	var awardOrder []*awardAgg

	for _, agg := range categoryOrder {
		ceremonyNeighbors, err := store.Neighbors(ctx, agg.node.UUID, graph.EdgeHasCategory, graph.Incoming)
		if err != nil {
			return nil, err
		}
		if len(ceremonyNeighbors) == 0 {
			continue // orphan category, nothing to group under
		}
		ceremonyNode := ceremonyNeighbors[0].Node

		ceremony := ceremoniesByUUID[ceremonyNode.UUID]
		if ceremony == nil {
			ceremony = &ceremonyAgg{node: ceremonyNode, categoryPositions: make(map[string]int)}
			categoryEdges, err := store.Neighbors(ctx, ceremonyNode.UUID, graph.EdgeHasCategory, graph.Outgoing)
			if err != nil {
				return nil, err
			}
			for _, edge := range categoryEdges {
				ceremony.categoryPositions[edge.Node.UUID] = edge.Edge.Props.Position(graph.PropPosition)
			}
			ceremoniesByUUID[ceremonyNode.UUID] = ceremony

			awardNeighbors, err := store.Neighbors(ctx, ceremonyNode.UUID, graph.EdgePresentedBy, graph.Outgoing)
			if err != nil {
				return nil, err
			}
			if len(awardNeighbors) == 0 {
				// An award-less ceremony has no block to group under.
				ctxutil.GetLogger(ctx).DebugContext(ctx, "ceremony_without_award_skipped",
					slog.String("ceremony_uuid", ceremonyNode.UUID),
				)
				continue
			}
			awardNode := awardNeighbors[0].Node
			award := awardsByUUID[awardNode.UUID]
			if award == nil {
				award = &awardAgg{node: awardNode}
				awardsByUUID[awardNode.UUID] = award
				awardOrder = append(awardOrder, award)
			}
			award.ceremonies = append(award.ceremonies, ceremony)
		}
		ceremony.categories = append(ceremony.categories, agg)
	}

	sort.SliceStable(awardOrder, func(i, j int) bool {
		return strings.ToLower(awardOrder[i].node.Name) < strings.ToLower(awardOrder[j].node.Name)
	})

	blocks := make([]AwardBlock, 0, len(awardOrder))
	for _, award := range awardOrder {
		block := AwardBlock{
			Model: string(graph.KindAward),
			UUID:  award.node.UUID,
			Name:  award.node.Name,
		}

		// Ceremonies list newest first; ceremony names are years in practice.
		sort.SliceStable(award.ceremonies, func(i, j int) bool {
			return award.ceremonies[i].node.Name > award.ceremonies[j].node.Name
		})

		for _, ceremony := range award.ceremonies {
			ceremonyBlock := CeremonyBlock{
				Model: string(graph.KindAwardCeremony),
				UUID:  ceremony.node.UUID,
				Name:  ceremony.node.Name,
			}

			sort.SliceStable(ceremony.categories, func(i, j int) bool {
				return ceremony.categoryPositions[ceremony.categories[i].node.UUID] <
					ceremony.categoryPositions[ceremony.categories[j].node.UUID]
			})

			for _, category := range ceremony.categories {
				categoryBlock := CategoryBlock{Name: category.node.Name, Nominations: []Nomination{}}

				sort.SliceStable(category.refs, func(i, j int) bool {
					return category.refs[i].position < category.refs[j].position
				})
				for _, ref := range category.refs {
					nomination, err := buildNomination(ctx, store, category.node.UUID, ref.position, subject, ref.recipient)
					if err != nil {
						return nil, err
					}
					categoryBlock.Nominations = append(categoryBlock.Nominations, *nomination)
				}
				ceremonyBlock.Categories = append(ceremonyBlock.Categories, categoryBlock)
			}
			block.Ceremonies = append(block.Ceremonies, ceremonyBlock)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// nominationPositions returns the distinct nomination positions among a
// category's nominee edges, ascending.
func nominationPositions(neighbors []graph.Neighbor) []int {
	seen := make(map[int]bool)
	var positions []int
	for _, neighbor := range neighbors {
		position := neighbor.Edge.Props.Position(graph.PropNominationPosition)
		if !seen[position] {
			seen[position] = true
			positions = append(positions, position)
		}
	}
	sort.Ints(positions)
	return positions
}
