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
TestCreditCollation_Ordering verifies that flat credit edges regroup into
position-ordered groups with position-ordered entities, regardless of edge
insertion order.
*/
func TestCreditCollation_Ordering(t *testing.T) {
	f := newFixture(t)
	material := f.node(graph.KindMaterial, "The Threepenny Opera", nil)
	brecht := f.node(graph.KindPerson, "Bertolt Brecht", nil)
	weill := f.node(graph.KindPerson, "Kurt Weill", nil)
	hauptmann := f.node(graph.KindPerson, "Elisabeth Hauptmann", nil)

	// Inserted out of order on both axes.
	f.edge(graph.EdgeHasWritingCredit, material, weill, graph.Props{
		graph.PropCreditLabel:    "music by",
		graph.PropCreditPosition: 1,
		graph.PropEntityPosition: 0,
	})
	f.edge(graph.EdgeHasWritingCredit, material, hauptmann, graph.Props{
		graph.PropCreditPosition: 0,
		graph.PropEntityPosition: 1,
	})
	f.edge(graph.EdgeHasWritingCredit, material, brecht, graph.Props{
		graph.PropCreditPosition: 0,
		graph.PropEntityPosition: 0,
	})

	show, err := f.composer().Material(context.Background(), material)
	require.NoError(t, err)

	require.Len(t, show.WritingCredits, 2)

	first := show.WritingCredits[0]
	assert.Equal(t, "by", first.Name) // default label
	require.Len(t, first.Entities, 2)
	assert.Equal(t, "Bertolt Brecht", first.Entities[0].Name)
	assert.Equal(t, "Elisabeth Hauptmann", first.Entities[1].Name)

	second := show.WritingCredits[1]
	assert.Equal(t, "music by", second.Name)
	require.Len(t, second.Entities, 1)
	assert.Equal(t, "Kurt Weill", second.Entities[0].Name)
}

/*
TestCreditCollation_CompanyMembers verifies that persons routed through a
company fold into its members list, and that a company entity always carries
a members list.
*/
func TestCreditCollation_CompanyMembers(t *testing.T) {
	f := newFixture(t)
	production := f.node(graph.KindProduction, "War Horse", nil)
	handspring := f.node(graph.KindCompany, "Handspring Puppet Company", nil)
	kohler := f.node(graph.KindPerson, "Adrian Kohler", nil)
	jones := f.node(graph.KindPerson, "Basil Jones", nil)
	soleCompany := f.node(graph.KindCompany, "59 Productions", nil)

	f.edge(graph.EdgeHasTeamCredit, production, handspring, graph.Props{
		graph.PropCreditCategory: graph.CreditCategoryCreative,
		graph.PropCreditLabel:    "Puppet Design",
		graph.PropCreditPosition: 0,
		graph.PropEntityPosition: 0,
	})
	f.edge(graph.EdgeHasTeamCredit, production, jones, graph.Props{
		graph.PropCreditCategory:  graph.CreditCategoryCreative,
		graph.PropCreditPosition:  0,
		graph.PropEntityPosition:  2,
		graph.PropCreditedCompany: handspring.UUID,
	})
	f.edge(graph.EdgeHasTeamCredit, production, kohler, graph.Props{
		graph.PropCreditCategory:  graph.CreditCategoryCreative,
		graph.PropCreditPosition:  0,
		graph.PropEntityPosition:  1,
		graph.PropCreditedCompany: handspring.UUID,
	})
	f.edge(graph.EdgeHasTeamCredit, production, soleCompany, graph.Props{
		graph.PropCreditCategory: graph.CreditCategoryCreative,
		graph.PropCreditLabel:    "Video Design",
		graph.PropCreditPosition: 1,
		graph.PropEntityPosition: 0,
	})

	show, err := f.composer().Production(context.Background(), production)
	require.NoError(t, err)

	require.Len(t, show.CreativeCredits, 2)

	puppet := show.CreativeCredits[0]
	require.Len(t, puppet.Entities, 1)
	company := puppet.Entities[0]
	assert.Equal(t, "Handspring Puppet Company", company.Name)
	require.NotNil(t, company.Members)
	require.Len(t, *company.Members, 2)
	assert.Equal(t, "Adrian Kohler", (*company.Members)[0].Name)
	assert.Equal(t, "Basil Jones", (*company.Members)[1].Name)

	video := show.CreativeCredits[1]
	require.Len(t, video.Entities, 1)
	require.NotNil(t, video.Entities[0].Members)
	assert.Empty(t, *video.Entities[0].Members)
}

/*
TestCreditCollation_AbsentCompanyPromotion verifies that an entity routed
through a company missing from the credit is promoted to a top-level entity
rather than dropped.
*/
func TestCreditCollation_AbsentCompanyPromotion(t *testing.T) {
	f := newFixture(t)
	material := f.node(graph.KindMaterial, "Orphan Credit", nil)
	writer := f.node(graph.KindPerson, "Unattached Writer", nil)

	f.edge(graph.EdgeHasWritingCredit, material, writer, graph.Props{
		graph.PropCreditPosition:  0,
		graph.PropEntityPosition:  0,
		graph.PropCreditedCompany: "company-uuid-not-in-credit",
	})

	show, err := f.composer().Material(context.Background(), material)
	require.NoError(t, err)

	require.Len(t, show.WritingCredits, 1)
	require.Len(t, show.WritingCredits[0].Entities, 1)
	entity := show.WritingCredits[0].Entities[0]
	assert.Equal(t, "Unattached Writer", entity.Name)
	assert.Nil(t, entity.Members)
}

/*
TestCreditCollation_SourceMaterial verifies that materials credited as
entities carry their format and year.
*/
func TestCreditCollation_SourceMaterial(t *testing.T) {
	f := newFixture(t)
	adaptation := f.node(graph.KindMaterial, "His Dark Materials", nil)
	source := f.node(graph.KindMaterial, "Northern Lights", graph.Props{
		graph.PropFormat: "novel",
		graph.PropYear:   1995,
	})

	f.edge(graph.EdgeHasWritingCredit, adaptation, source, graph.Props{
		graph.PropCreditKind:     graph.CreditKindSource,
		graph.PropCreditLabel:    "based on",
		graph.PropCreditPosition: 1,
		graph.PropEntityPosition: 0,
	})

	show, err := f.composer().Material(context.Background(), adaptation)
	require.NoError(t, err)

	require.Len(t, show.WritingCredits, 1)
	assert.Equal(t, "based on", show.WritingCredits[0].Name)
	require.Len(t, show.WritingCredits[0].Entities, 1)
	entity := show.WritingCredits[0].Entities[0]
	assert.Equal(t, "MATERIAL", entity.Model)
	assert.Equal(t, "novel", entity.Format)
	assert.Equal(t, 1995, entity.Year)
	assert.Nil(t, entity.Members)
}

/*
TestCreditCollation_ProducerDefaultLabel verifies the producer-specific
default label applied when a producer credit has no label of its own.
*/
func TestCreditCollation_ProducerDefaultLabel(t *testing.T) {
	f := newFixture(t)
	production := f.node(graph.KindProduction, "Follies", nil)
	national := f.node(graph.KindCompany, "National Theatre", nil)

	f.edge(graph.EdgeHasTeamCredit, production, national, graph.Props{
		graph.PropCreditCategory: graph.CreditCategoryProducer,
		graph.PropCreditPosition: 0,
		graph.PropEntityPosition: 0,
	})

	show, err := f.composer().Production(context.Background(), production)
	require.NoError(t, err)

	require.Len(t, show.ProducerCredits, 1)
	assert.Equal(t, "produced by", show.ProducerCredits[0].Name)
	assert.Empty(t, show.CreativeCredits)
	assert.Empty(t, show.CrewCredits)
}
