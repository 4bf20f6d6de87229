// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"
	"sort"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// performerFallbackRole names a cast member credited with no roles.
const performerFallbackRole = "Performer"

// catalogueEntry is one depiction row of a material's character catalogue.
type catalogueEntry struct {
	uuid           string
	name           string
	differentiator string
	displayName    string
	qualifier      string
	groupName      string
	groupPosition  int
	position       int
}

// characterCatalogue loads a material's depictions ordered by group then
// in-group position. The same character may appear several times under
// different display names or qualifiers; each depiction is its own row.
func characterCatalogue(ctx context.Context, store graph.Store, materialUUID string) ([]catalogueEntry, error) {
	neighbors, err := store.Neighbors(ctx, materialUUID, graph.EdgeHasCharacter, graph.Outgoing)
	if err != nil {
		return nil, err
	}

	entries := make([]catalogueEntry, 0, len(neighbors))
	for _, neighbor := range neighbors {
		entries = append(entries, catalogueEntry{
			uuid:           neighbor.Node.UUID,
			name:           neighbor.Node.Name,
			differentiator: neighbor.Node.Differentiator,
			displayName:    neighbor.Edge.Props.String(graph.PropDisplayName),
			qualifier:      neighbor.Edge.Props.String(graph.PropQualifier),
			groupName:      neighbor.Edge.Props.String(graph.PropGroupName),
			groupPosition:  neighbor.Edge.Props.Position(graph.PropGroupPosition),
			position:       neighbor.Edge.Props.Position(graph.PropPosition),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].groupPosition != entries[j].groupPosition {
			return entries[i].groupPosition < entries[j].groupPosition
		}
		return entries[i].position < entries[j].position
	})
	return entries, nil
}

// roleEntry is one raw role from a cast edge's roles list.
type roleEntry struct {
	name                    string
	characterName           string
	characterDifferentiator string
	qualifier               string
	isAlternate             bool
}

func parseRoles(props graph.Props) []roleEntry {
	raws := props.Maps(graph.PropRoles)
	entries := make([]roleEntry, 0, len(raws))
	for _, raw := range raws {
		entries = append(entries, roleEntry{
			name:                    raw.String(graph.RoleKeyName),
			characterName:           raw.String(graph.RoleKeyCharacterName),
			characterDifferentiator: raw.String(graph.RoleKeyCharacterDifferentiator),
			qualifier:               raw.String(graph.RoleKeyQualifier),
			isAlternate:             raw.Bool(graph.RoleKeyIsAlternate),
		})
	}
	return entries
}

// resolveRole matches one role against the material's character catalogue.
//
// The match name is the explicit character name when given, the role name
// otherwise, compared against both catalogue names and depiction display
// names. A role qualifier narrows the match to the equally-qualified
// depiction when one exists. An unmatched role falls back to the plain
// performer rendering.
func resolveRole(entry roleEntry, catalogue []catalogueEntry) Role {
	matchName := entry.characterName
	if matchName == "" {
		matchName = entry.name
	}

	var matched *catalogueEntry
	for i := range catalogue {
		candidate := &catalogue[i]
		if candidate.name != matchName && candidate.displayName != matchName {
			continue
		}
		if entry.characterDifferentiator != "" && entry.characterDifferentiator != candidate.differentiator {
			continue
		}
		if entry.qualifier != "" && candidate.qualifier == entry.qualifier {
			matched = candidate
			break
		}
		if matched == nil {
			matched = candidate
		}
	}

	if matched == nil {
		return Role{Name: performerFallbackRole}
	}
	return Role{
		Model:       string(graph.KindCharacter),
		UUID:        matched.uuid,
		Name:        entry.name,
		Qualifier:   entry.qualifier,
		IsAlternate: entry.isAlternate,
	}
}

// castMembers builds a production's ordered cast, resolving each member's
// roles against the given catalogue. A member with no roles is shown as a
// plain performer.
func castMembers(ctx context.Context, store graph.Store, productionUUID string, catalogue []catalogueEntry) ([]CastMember, error) {
	neighbors, err := store.Neighbors(ctx, productionUUID, graph.EdgeHasCastMember, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortByProp(neighbors, graph.PropPosition)

	cast := make([]CastMember, 0, len(neighbors))
	for _, neighbor := range neighbors {
		member := CastMember{
			Model: string(neighbor.Node.Kind),
			UUID:  neighbor.Node.UUID,
			Name:  neighbor.Node.Name,
			Roles: []Role{},
		}
		for _, entry := range parseRoles(neighbor.Edge.Props) {
			member.Roles = append(member.Roles, resolveRole(entry, catalogue))
		}
		if len(member.Roles) == 0 {
			member.Roles = []Role{{Name: performerFallbackRole}}
		}
		cast = append(cast, member)
	}
	return cast, nil
}
