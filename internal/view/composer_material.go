// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// Material assembles the show document for one material node.
func (composer *Composer) Material(ctx context.Context, node *graph.Node) (*MaterialShow, error) {
	store := composer.store
	show := &MaterialShow{
		Model:          string(graph.KindMaterial),
		UUID:           node.UUID,
		Name:           node.Name,
		Differentiator: node.Differentiator,
		Format:         node.Props.String(graph.PropFormat),
		Year:           node.Props.IntOrZero(graph.PropYear),

		WritingCredits:             []CreditGroup{},
		SubsequentVersionMaterials: []MaterialLink{},
		SourcingMaterials:          []MaterialLink{},
		CharacterGroups:            []CharacterGroup{},
		SubMaterials:               []MaterialLink{},
		Productions:                []ProductionLink{},
		Awards:                     []AwardBlock{},
	}

	var err error
	show.WritingCredits, err = writingCredits(ctx, store, node.UUID)
	if err != nil {
		return nil, err
	}

	original, err := composer.firstNeighbor(ctx, node.UUID, graph.EdgeSubsequentVersionOf, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if original != nil {
		show.OriginalVersionMaterial, err = materialLink(ctx, store, original.Node, 1, true)
		if err != nil {
			return nil, err
		}
	}

	versions, err := store.Neighbors(ctx, node.UUID, graph.EdgeSubsequentVersionOf, graph.Incoming)
	if err != nil {
		return nil, err
	}
	for _, neighbor := range versions {
		link, err := materialLink(ctx, store, neighbor.Node, 0, true)
		if err != nil {
			return nil, err
		}
		show.SubsequentVersionMaterials = append(show.SubsequentVersionMaterials, *link)
	}
	sortMaterialLinks(show.SubsequentVersionMaterials)

	sourcing, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasWritingCredit, graph.Incoming)
	if err != nil {
		return nil, err
	}
	for _, neighbor := range sourcing {
		if neighbor.Node.Kind != graph.KindMaterial {
			continue
		}
		link, err := materialLink(ctx, store, neighbor.Node, 0, true)
		if err != nil {
			return nil, err
		}
		show.SourcingMaterials = append(show.SourcingMaterials, *link)
	}
	sortMaterialLinks(show.SourcingMaterials)

	show.CharacterGroups, err = composer.materialCharacterGroups(ctx, node.UUID)
	if err != nil {
		return nil, err
	}

	sur, err := surOf(ctx, store, node.UUID, graph.EdgeHasSubMaterial)
	if err != nil {
		return nil, err
	}
	if sur != nil {
		show.SurMaterial, err = materialLink(ctx, store, sur, 1, true)
		if err != nil {
			return nil, err
		}
	}

	show.SubMaterials, err = subMaterialTree(ctx, store, node.UUID, materialDepth, true)
	if err != nil {
		return nil, err
	}

	productions, err := store.Neighbors(ctx, node.UUID, graph.EdgeProductionOf, graph.Incoming)
	if err != nil {
		return nil, err
	}
	for _, neighbor := range productions {
		link, err := productionLink(ctx, store, neighbor.Node, 1)
		if err != nil {
			return nil, err
		}
		show.Productions = append(show.Productions, *link)
	}
	sortProductionLinks(show.Productions)

	show.Awards, err = awardsFor(ctx, store, node)
	if err != nil {
		return nil, err
	}
	return show, nil
}

// materialCharacterGroups folds a material's depiction rows into their
// ordered groups. The catalogue is already sorted by group then position.
func (composer *Composer) materialCharacterGroups(ctx context.Context, materialUUID string) ([]CharacterGroup, error) {
	catalogue, err := characterCatalogue(ctx, composer.store, materialUUID)
	if err != nil {
		return nil, err
	}

	groups := []CharacterGroup{}
	index := make(map[int]int)
	for _, entry := range catalogue {
		at, ok := index[entry.groupPosition]
		if !ok {
			groups = append(groups, CharacterGroup{Name: entry.groupName, Characters: []CharacterDepiction{}})
			at = len(groups) - 1
			index[entry.groupPosition] = at
		}

		name := entry.displayName
		if name == "" {
			name = entry.name
		}
		groups[at].Characters = append(groups[at].Characters, CharacterDepiction{
			Model:     string(graph.KindCharacter),
			UUID:      entry.uuid,
			Name:      name,
			Qualifier: entry.qualifier,
		})
	}
	return groups, nil
}
