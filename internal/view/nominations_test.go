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

// awardFixture builds an award with one ceremony and one category, returning
// all three nodes.
func awardFixture(f *fixture, awardName, ceremonyName, categoryName string) (*graph.Node, *graph.Node, *graph.Node) {
	award := f.node(graph.KindAward, awardName, nil)
	ceremony := f.node(graph.KindAwardCeremony, ceremonyName, nil)
	category := f.node(graph.KindCategory, categoryName, nil)
	f.edge(graph.EdgePresentedBy, ceremony, award, nil)
	f.edge(graph.EdgeHasCategory, ceremony, category, graph.Props{graph.PropPosition: 0})
	return award, ceremony, category
}

/*
TestComposer_AwardCeremony verifies the neutral ceremony document: ordered
categories, one nomination per position, and type resolution.
*/
func TestComposer_AwardCeremony(t *testing.T) {
	f := newFixture(t)
	award := f.node(graph.KindAward, "Laurence Olivier Awards", nil)
	ceremony := f.node(graph.KindAwardCeremony, "2020", nil)
	bestActor := f.node(graph.KindCategory, "Best Actor", nil)
	bestPlay := f.node(graph.KindCategory, "Best New Play", nil)
	f.edge(graph.EdgePresentedBy, ceremony, award, nil)
	// Inserted out of position order.
	f.edge(graph.EdgeHasCategory, ceremony, bestPlay, graph.Props{graph.PropPosition: 1})
	f.edge(graph.EdgeHasCategory, ceremony, bestActor, graph.Props{graph.PropPosition: 0})

	winner := f.node(graph.KindPerson, "Andrew Scott", nil)
	nominee := f.node(graph.KindPerson, "Wendell Pierce", nil)
	special := f.node(graph.KindPerson, "Shortlisted Actor", nil)

	f.edge(graph.EdgeHasNominee, bestActor, winner, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropEntityPosition:     0,
		graph.PropIsWinner:           true,
	})
	f.edge(graph.EdgeHasNominee, bestActor, nominee, graph.Props{
		graph.PropNominationPosition: 1,
		graph.PropEntityPosition:     0,
	})
	f.edge(graph.EdgeHasNominee, bestActor, special, graph.Props{
		graph.PropNominationPosition: 2,
		graph.PropEntityPosition:     0,
		graph.PropCustomType:         "Shortlisted",
	})

	show, err := f.composer().AwardCeremony(context.Background(), ceremony)
	require.NoError(t, err)

	require.NotNil(t, show.Award)
	assert.Equal(t, "Laurence Olivier Awards", show.Award.Name)

	require.Len(t, show.Categories, 2)
	assert.Equal(t, "Best Actor", show.Categories[0].Name)
	assert.Equal(t, "Best New Play", show.Categories[1].Name)

	nominations := show.Categories[0].Nominations
	require.Len(t, nominations, 3)
	assert.True(t, nominations[0].IsWinner)
	assert.Equal(t, "Winner", nominations[0].Type)
	assert.Equal(t, "Andrew Scott", nominations[0].Entities[0].Name)
	assert.False(t, nominations[1].IsWinner)
	assert.Equal(t, "Nomination", nominations[1].Type)
	assert.Equal(t, "Shortlisted", nominations[2].Type)

	assert.Empty(t, show.Categories[1].Nominations)
}

/*
TestAwardsFor_ProductionPerspective verifies the subject's suppression from
its own nomination and the co-production split.
*/
func TestAwardsFor_ProductionPerspective(t *testing.T) {
	f := newFixture(t)
	_, _, category := awardFixture(f, "Evening Standard Theatre Awards", "2019", "Best Play")

	subject := f.node(graph.KindProduction, "The Lehman Trilogy", nil)
	coProduction := f.node(graph.KindProduction, "The Lehman Trilogy NY", nil)
	playwright := f.node(graph.KindPerson, "Stefano Massini", nil)

	f.edge(graph.EdgeHasNominee, category, subject, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropProductionPosition: 0,
		graph.PropIsWinner:           true,
	})
	f.edge(graph.EdgeHasNominee, category, coProduction, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropProductionPosition: 1,
		graph.PropIsWinner:           true,
	})
	f.edge(graph.EdgeHasNominee, category, playwright, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropEntityPosition:     0,
		graph.PropIsWinner:           true,
	})

	show, err := f.composer().Production(context.Background(), subject)
	require.NoError(t, err)

	require.Len(t, show.Awards, 1)
	assert.Equal(t, "Evening Standard Theatre Awards", show.Awards[0].Name)
	require.Len(t, show.Awards[0].Ceremonies, 1)
	require.Len(t, show.Awards[0].Ceremonies[0].Categories, 1)

	nominations := show.Awards[0].Ceremonies[0].Categories[0].Nominations
	require.Len(t, nominations, 1)
	nomination := nominations[0]

	assert.True(t, nomination.IsWinner)
	assert.Empty(t, nomination.Productions)
	require.Len(t, nomination.CoProductions, 1)
	assert.Equal(t, "The Lehman Trilogy NY", nomination.CoProductions[0].Name)
	require.Len(t, nomination.Entities, 1)
	assert.Equal(t, "Stefano Massini", nomination.Entities[0].Name)
	assert.Nil(t, nomination.RecipientProduction)
}

/*
TestAwardsFor_RecipientProduction verifies that a nomination reaching the
subject through a hierarchical relative names that relative as recipient.
*/
func TestAwardsFor_RecipientProduction(t *testing.T) {
	f := newFixture(t)
	_, _, category := awardFixture(f, "Critics' Circle Theatre Awards", "2008", "Best Director")

	sur := f.node(graph.KindProduction, "The Histories", nil)
	subject := f.node(graph.KindProduction, "Henry V", nil)
	f.edge(graph.EdgeHasSubProduction, sur, subject, graph.Props{graph.PropPosition: 0})

	director := f.node(graph.KindPerson, "Michael Boyd", nil)
	f.edge(graph.EdgeHasNominee, category, sur, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropProductionPosition: 0,
	})
	f.edge(graph.EdgeHasNominee, category, director, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropEntityPosition:     0,
	})

	show, err := f.composer().Production(context.Background(), subject)
	require.NoError(t, err)

	require.Len(t, show.Awards, 1)
	nominations := show.Awards[0].Ceremonies[0].Categories[0].Nominations
	require.Len(t, nominations, 1)

	require.NotNil(t, nominations[0].RecipientProduction)
	assert.Equal(t, "The Histories", nominations[0].RecipientProduction.Name)
	assert.Empty(t, nominations[0].Productions)
	assert.Empty(t, nominations[0].CoProductions)
}

/*
TestAwardsFor_DedupeSubjectFirst verifies that a nomination naming both the
subject and a relative surfaces once, as a direct hit.
*/
func TestAwardsFor_DedupeSubjectFirst(t *testing.T) {
	f := newFixture(t)
	_, _, category := awardFixture(f, "Tony Awards", "2022", "Best Revival")

	sur := f.node(graph.KindProduction, "Angels in America", nil)
	subject := f.node(graph.KindProduction, "Millennium Approaches", nil)
	f.edge(graph.EdgeHasSubProduction, sur, subject, graph.Props{graph.PropPosition: 0})

	f.edge(graph.EdgeHasNominee, category, subject, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropProductionPosition: 1,
	})
	f.edge(graph.EdgeHasNominee, category, sur, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropProductionPosition: 0,
	})

	show, err := f.composer().Production(context.Background(), subject)
	require.NoError(t, err)

	require.Len(t, show.Awards, 1)
	nominations := show.Awards[0].Ceremonies[0].Categories[0].Nominations
	require.Len(t, nominations, 1)

	// Direct hit: the subject is suppressed, the sur is a plain co-production,
	// no recipient is named.
	assert.Nil(t, nominations[0].RecipientProduction)
	require.Len(t, nominations[0].CoProductions, 1)
	assert.Equal(t, "Angels in America", nominations[0].CoProductions[0].Name)
}

/*
TestAwardsFor_WriterRecipientMaterial verifies that a person reached through
an authorship credit sees the material as recipient.
*/
func TestAwardsFor_WriterRecipientMaterial(t *testing.T) {
	f := newFixture(t)
	_, _, category := awardFixture(f, "Susan Smith Blackburn Prize", "2017", "Prize")

	material := f.node(graph.KindMaterial, "The Flick", graph.Props{graph.PropYear: 2013})
	writer := f.node(graph.KindPerson, "Annie Baker", nil)
	f.edge(graph.EdgeHasWritingCredit, material, writer, graph.Props{
		graph.PropCreditPosition: 0,
		graph.PropEntityPosition: 0,
	})

	f.edge(graph.EdgeHasNominee, category, material, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropMaterialPosition:   0,
		graph.PropIsWinner:           true,
	})

	show, err := f.composer().Creditable(context.Background(), writer)
	require.NoError(t, err)

	require.Len(t, show.Awards, 1)
	nominations := show.Awards[0].Ceremonies[0].Categories[0].Nominations
	require.Len(t, nominations, 1)

	require.NotNil(t, nominations[0].RecipientMaterial)
	assert.Equal(t, "The Flick", nominations[0].RecipientMaterial.Name)
	assert.Empty(t, nominations[0].Materials)
	assert.True(t, nominations[0].IsWinner)
}

/*
TestAwardsFor_MaterialTierPerspectives verifies a nomination on the lowest
tier of a three-tier material chain from each tier's view: a direct hit on
the sub itself, and a single recipient-attributed nomination on the mid and
sur materials.
*/
func TestAwardsFor_MaterialTierPerspectives(t *testing.T) {
	f := newFixture(t)
	_, _, category := awardFixture(f, "Laurence Olivier Awards", "2019", "Best New Play")

	sur := f.node(graph.KindMaterial, "The Inheritance", nil)
	mid := f.node(graph.KindMaterial, "The Inheritance Part One", nil)
	sub := f.node(graph.KindMaterial, "The Inheritance Part One Act One", nil)
	f.edge(graph.EdgeHasSubMaterial, sur, mid, graph.Props{graph.PropPosition: 0})
	f.edge(graph.EdgeHasSubMaterial, mid, sub, graph.Props{graph.PropPosition: 0})

	f.edge(graph.EdgeHasNominee, category, sub, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropMaterialPosition:   0,
		graph.PropIsWinner:           true,
	})

	t.Run("sub_direct_hit", func(t *testing.T) {
		show, err := f.composer().Material(context.Background(), sub)
		require.NoError(t, err)

		require.Len(t, show.Awards, 1)
		nominations := show.Awards[0].Ceremonies[0].Categories[0].Nominations
		require.Len(t, nominations, 1)
		assert.True(t, nominations[0].IsWinner)
		assert.Nil(t, nominations[0].RecipientMaterial)
		assert.Empty(t, nominations[0].Materials)
		assert.Empty(t, nominations[0].CoMaterials)
	})

	for _, tier := range []struct {
		name    string
		subject *graph.Node
	}{
		{"mid_via_sub", mid},
		{"sur_via_sub", sur},
	} {
		t.Run(tier.name, func(t *testing.T) {
			show, err := f.composer().Material(context.Background(), tier.subject)
			require.NoError(t, err)

			require.Len(t, show.Awards, 1)
			require.Len(t, show.Awards[0].Ceremonies, 1)
			require.Len(t, show.Awards[0].Ceremonies[0].Categories, 1)
			nominations := show.Awards[0].Ceremonies[0].Categories[0].Nominations
			require.Len(t, nominations, 1)

			require.NotNil(t, nominations[0].RecipientMaterial)
			assert.Equal(t, "The Inheritance Part One Act One", nominations[0].RecipientMaterial.Name)
			assert.Empty(t, nominations[0].Materials)
			assert.Empty(t, nominations[0].CoMaterials)
			assert.True(t, nominations[0].IsWinner)
		})
	}
}

/*
TestAwardsFor_MaterialCrossTierDedupe verifies that a nomination naming two
tiers of one chain surfaces once per viewing tier, attributed to the nearest
relative hit.
*/
func TestAwardsFor_MaterialCrossTierDedupe(t *testing.T) {
	f := newFixture(t)
	_, _, category := awardFixture(f, "Tony Awards", "2023", "Best Play")

	sur := f.node(graph.KindMaterial, "The Coast of Utopia", nil)
	mid := f.node(graph.KindMaterial, "Voyage", nil)
	sub := f.node(graph.KindMaterial, "Voyage Act One", nil)
	f.edge(graph.EdgeHasSubMaterial, sur, mid, graph.Props{graph.PropPosition: 0})
	f.edge(graph.EdgeHasSubMaterial, mid, sub, graph.Props{graph.PropPosition: 0})

	f.edge(graph.EdgeHasNominee, category, mid, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropMaterialPosition:   0,
	})
	f.edge(graph.EdgeHasNominee, category, sub, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropMaterialPosition:   1,
	})

	t.Run("sur_attributes_nearest", func(t *testing.T) {
		show, err := f.composer().Material(context.Background(), sur)
		require.NoError(t, err)

		require.Len(t, show.Awards, 1)
		nominations := show.Awards[0].Ceremonies[0].Categories[0].Nominations
		require.Len(t, nominations, 1)

		require.NotNil(t, nominations[0].RecipientMaterial)
		assert.Equal(t, "Voyage", nominations[0].RecipientMaterial.Name)
		require.Len(t, nominations[0].CoMaterials, 1)
		assert.Equal(t, "Voyage Act One", nominations[0].CoMaterials[0].Name)
	})

	t.Run("mid_direct_hit", func(t *testing.T) {
		show, err := f.composer().Material(context.Background(), mid)
		require.NoError(t, err)

		require.Len(t, show.Awards, 1)
		nominations := show.Awards[0].Ceremonies[0].Categories[0].Nominations
		require.Len(t, nominations, 1)

		assert.Nil(t, nominations[0].RecipientMaterial)
		require.Len(t, nominations[0].CoMaterials, 1)
		assert.Equal(t, "Voyage Act One", nominations[0].CoMaterials[0].Name)
	})
}

/*
TestAwardsFor_SkipsCeremonyWithoutAward verifies that a nomination under a
ceremony with no presenting award renders no block.
*/
func TestAwardsFor_SkipsCeremonyWithoutAward(t *testing.T) {
	f := newFixture(t)
	ceremony := f.node(graph.KindAwardCeremony, "2021", nil)
	category := f.node(graph.KindCategory, "Best New Musical", nil)
	f.edge(graph.EdgeHasCategory, ceremony, category, graph.Props{graph.PropPosition: 0})

	subject := f.node(graph.KindProduction, "Back to the Future", nil)
	f.edge(graph.EdgeHasNominee, category, subject, graph.Props{
		graph.PropNominationPosition: 0,
		graph.PropProductionPosition: 0,
	})

	show, err := f.composer().Production(context.Background(), subject)
	require.NoError(t, err)
	assert.Empty(t, show.Awards)
}

/*
TestAwardsFor_Ordering verifies the grouping orders: awards by name, a given
award's ceremonies newest first, a ceremony's categories by stored position.
*/
func TestAwardsFor_Ordering(t *testing.T) {
	f := newFixture(t)
	subject := f.node(graph.KindProduction, "Sweat", nil)

	nominate := func(category *graph.Node) {
		f.edge(graph.EdgeHasNominee, category, subject, graph.Props{
			graph.PropNominationPosition: 0,
			graph.PropProductionPosition: 0,
		})
	}

	oliviers := f.node(graph.KindAward, "Laurence Olivier Awards", nil)
	ceremony2018 := f.node(graph.KindAwardCeremony, "2018", nil)
	ceremony2019 := f.node(graph.KindAwardCeremony, "2019", nil)
	f.edge(graph.EdgePresentedBy, ceremony2018, oliviers, nil)
	f.edge(graph.EdgePresentedBy, ceremony2019, oliviers, nil)

	revival2018 := f.node(graph.KindCategory, "Best Revival", nil)
	f.edge(graph.EdgeHasCategory, ceremony2018, revival2018, graph.Props{graph.PropPosition: 0})
	nominate(revival2018)

	// Two hit categories in the 2019 ceremony, inserted against their
	// stored order.
	newPlay := f.node(graph.KindCategory, "Best New Play", nil)
	director := f.node(graph.KindCategory, "Best Director", nil)
	f.edge(graph.EdgeHasCategory, ceremony2019, director, graph.Props{graph.PropPosition: 1})
	f.edge(graph.EdgeHasCategory, ceremony2019, newPlay, graph.Props{graph.PropPosition: 0})
	nominate(director)
	nominate(newPlay)

	_, _, standardCategory := awardFixture(f, "Evening Standard Theatre Awards", "2018", "Best Play")
	nominate(standardCategory)

	show, err := f.composer().Production(context.Background(), subject)
	require.NoError(t, err)

	require.Len(t, show.Awards, 2)
	assert.Equal(t, "Evening Standard Theatre Awards", show.Awards[0].Name)
	assert.Equal(t, "Laurence Olivier Awards", show.Awards[1].Name)

	ceremonies := show.Awards[1].Ceremonies
	require.Len(t, ceremonies, 2)
	assert.Equal(t, "2019", ceremonies[0].Name)
	assert.Equal(t, "2018", ceremonies[1].Name)

	categories := ceremonies[0].Categories
	require.Len(t, categories, 2)
	assert.Equal(t, "Best New Play", categories[0].Name)
	assert.Equal(t, "Best Director", categories[1].Name)
}
