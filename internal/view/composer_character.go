// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"
	"sort"
	"strings"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// Character assembles the show document for one character node: the
// materials that depict it (every depiction variant listed) and the
// productions in which it was performed, with one performer entry per
// performance of the character.
func (composer *Composer) Character(ctx context.Context, node *graph.Node) (*CharacterShow, error) {
	store := composer.store
	show := &CharacterShow{
		Model:          string(graph.KindCharacter),
		UUID:           node.UUID,
		Name:           node.Name,
		Differentiator: node.Differentiator,

		Materials:   []CharacterMaterial{},
		Productions: []CharacterProduction{},
	}

	depictions, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasCharacter, graph.Incoming)
	if err != nil {
		return nil, err
	}

	materialIndex := make(map[string]int)
	var materialOrder []string
	for _, neighbor := range depictions {
		at, ok := materialIndex[neighbor.Node.UUID]
		if !ok {
			link, err := materialLink(ctx, store, neighbor.Node, 1, true)
			if err != nil {
				return nil, err
			}
			show.Materials = append(show.Materials, CharacterMaterial{
				MaterialLink: *link,
				Depictions:   []CharacterDepictionVariant{},
			})
			at = len(show.Materials) - 1
			materialIndex[neighbor.Node.UUID] = at
			materialOrder = append(materialOrder, neighbor.Node.UUID)
		}
		show.Materials[at].Depictions = append(show.Materials[at].Depictions, CharacterDepictionVariant{
			DisplayName: neighbor.Edge.Props.String(graph.PropDisplayName),
			Qualifier:   neighbor.Edge.Props.String(graph.PropQualifier),
			Group:       neighbor.Edge.Props.String(graph.PropGroupName),
		})
	}

	sort.SliceStable(show.Materials, func(i, j int) bool {
		a, b := show.Materials[i], show.Materials[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	seenProductions := make(map[string]bool)
	for _, materialUUID := range materialOrder {
		catalogue, err := characterCatalogue(ctx, store, materialUUID)
		if err != nil {
			return nil, err
		}

		productions, err := store.Neighbors(ctx, materialUUID, graph.EdgeProductionOf, graph.Incoming)
		if err != nil {
			return nil, err
		}
		for _, production := range productions {
			if seenProductions[production.Node.UUID] {
				continue
			}
			seenProductions[production.Node.UUID] = true

			performers, err := composer.characterPerformers(ctx, node.UUID, production.Node.UUID, catalogue)
			if err != nil {
				return nil, err
			}
			if len(performers) == 0 {
				continue
			}

			link, err := productionLink(ctx, store, production.Node, 1)
			if err != nil {
				return nil, err
			}
			show.Productions = append(show.Productions, CharacterProduction{
				ProductionLink: *link,
				Performers:     performers,
			})
		}
	}

	sort.SliceStable(show.Productions, func(i, j int) bool {
		a, b := show.Productions[i], show.Productions[j]
		if a.StartDate != b.StartDate {
			if a.StartDate == "" {
				return false
			}
			if b.StartDate == "" {
				return true
			}
			return a.StartDate > b.StartDate
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	return show, nil
}

// characterPerformers finds the cast members of one production whose roles
// resolve to the character. A member performing the character under two
// depictions yields two entries, each tagged with its own qualifier.
func (composer *Composer) characterPerformers(ctx context.Context, characterUUID, productionUUID string, catalogue []catalogueEntry) ([]Performer, error) {
	neighbors, err := composer.store.Neighbors(ctx, productionUUID, graph.EdgeHasCastMember, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortByProp(neighbors, graph.PropPosition)

	var performers []Performer
	for _, neighbor := range neighbors {
		var resolved []Role
		for _, entry := range parseRoles(neighbor.Edge.Props) {
			resolved = append(resolved, resolveRole(entry, catalogue))
		}
		for i, role := range resolved {
			if role.UUID != characterUUID {
				continue
			}
			performer := Performer{
				Model:       string(neighbor.Node.Kind),
				UUID:        neighbor.Node.UUID,
				Name:        neighbor.Node.Name,
				RoleName:    role.Name,
				Qualifier:   role.Qualifier,
				IsAlternate: role.IsAlternate,
				OtherRoles:  []Role{},
			}
			for j, other := range resolved {
				if j != i {
					performer.OtherRoles = append(performer.OtherRoles, other)
				}
			}
			performers = append(performers, performer)
		}
	}
	return performers, nil
}
