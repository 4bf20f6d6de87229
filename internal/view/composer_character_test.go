// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamsinleach/dramatis/internal/graph"
)

/*
TestComposer_Character verifies the material list with depiction variants
and the production list with performer entries.
*/
func TestComposer_Character(t *testing.T) {
	f := newFixture(t)
	hamlet := f.node(graph.KindCharacter, "Hamlet", nil)
	material := f.node(graph.KindMaterial, "Hamlet", graph.Props{graph.PropYear: 1601})

	f.edge(graph.EdgeHasCharacter, material, hamlet, graph.Props{
		graph.PropGroupName:     "The Court",
		graph.PropGroupPosition: 0,
		graph.PropPosition:      0,
	})
	f.edge(graph.EdgeHasCharacter, material, hamlet, graph.Props{
		graph.PropGroupPosition: 1,
		graph.PropPosition:      0,
		graph.PropDisplayName:   "Ghost of Hamlet",
		graph.PropQualifier:     "ghost",
	})

	production := f.node(graph.KindProduction, "Hamlet", graph.Props{graph.PropStartDate: "2017-02-17"})
	f.edge(graph.EdgeProductionOf, production, material, nil)

	performer := f.node(graph.KindPerson, "Andrew Scott", nil)
	f.edge(graph.EdgeHasCastMember, production, performer, roleProps(0,
		graph.Props{graph.RoleKeyName: "Hamlet"},
		graph.Props{
			graph.RoleKeyName:      "Ghost of Hamlet",
			graph.RoleKeyQualifier: "ghost",
		},
	))

	show, err := f.composer().Character(context.Background(), hamlet)
	require.NoError(t, err)

	require.Len(t, show.Materials, 1)
	assert.Equal(t, "Hamlet", show.Materials[0].Name)
	require.Len(t, show.Materials[0].Depictions, 2)
	assert.Equal(t, "The Court", show.Materials[0].Depictions[0].Group)
	assert.Equal(t, "Ghost of Hamlet", show.Materials[0].Depictions[1].DisplayName)
	assert.Equal(t, "ghost", show.Materials[0].Depictions[1].Qualifier)

	require.Len(t, show.Productions, 1)
	performers := show.Productions[0].Performers

	// The member performed the character under two depictions: one entry each,
	// with the sibling performance listed among the other roles.
	require.Len(t, performers, 2)
	assert.Equal(t, "Andrew Scott", performers[0].Name)
	assert.Equal(t, "Hamlet", performers[0].RoleName)
	require.Len(t, performers[0].OtherRoles, 1)
	assert.Equal(t, "Ghost of Hamlet", performers[0].OtherRoles[0].Name)

	assert.Equal(t, "Ghost of Hamlet", performers[1].RoleName)
	assert.Equal(t, "ghost", performers[1].Qualifier)
}

/*
TestComposer_Character_SkipsUnperformedProductions verifies that productions
of a depicting material where nobody performed the character are omitted.
*/
func TestComposer_Character_SkipsUnperformedProductions(t *testing.T) {
	f := newFixture(t)
	ophelia := f.node(graph.KindCharacter, "Ophelia", nil)
	material := f.node(graph.KindMaterial, "Hamlet", nil)
	f.edge(graph.EdgeHasCharacter, material, ophelia, graph.Props{
		graph.PropGroupPosition: 0,
		graph.PropPosition:      0,
	})

	production := f.node(graph.KindProduction, "Hamlet (cut)", nil)
	f.edge(graph.EdgeProductionOf, production, material, nil)
	performer := f.node(graph.KindPerson, "Solo Performer", nil)
	f.edge(graph.EdgeHasCastMember, production, performer, roleProps(0,
		graph.Props{graph.RoleKeyName: "Hamlet"},
	))

	show, err := f.composer().Character(context.Background(), ophelia)
	require.NoError(t, err)

	require.Len(t, show.Materials, 1)
	assert.Empty(t, show.Productions)
}
