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
TestComposer_Creditable_MaterialBuckets verifies writing-credit kinds route
to their buckets and authorship surfaces derived versions.
*/
func TestComposer_Creditable_MaterialBuckets(t *testing.T) {
	f := newFixture(t)
	ibsen := f.node(graph.KindPerson, "Henrik Ibsen", nil)

	written := f.node(graph.KindMaterial, "Ghosts", graph.Props{graph.PropYear: 1881})
	f.edge(graph.EdgeHasWritingCredit, written, ibsen, graph.Props{
		graph.PropCreditPosition: 0,
		graph.PropEntityPosition: 0,
	})

	version := f.nodeDiff(graph.KindMaterial, "Ghosts", "2", graph.Props{graph.PropYear: 2013})
	f.edge(graph.EdgeSubsequentVersionOf, version, written, nil)

	sourcing := f.node(graph.KindMaterial, "Ghosts Reimagined", nil)
	f.edge(graph.EdgeHasWritingCredit, sourcing, ibsen, graph.Props{
		graph.PropCreditKind:     graph.CreditKindSource,
		graph.PropCreditLabel:    "based on works by",
		graph.PropCreditPosition: 1,
		graph.PropEntityPosition: 0,
	})

	granted := f.node(graph.KindMaterial, "Licensed Adaptation", nil)
	f.edge(graph.EdgeHasWritingCredit, granted, ibsen, graph.Props{
		graph.PropCreditKind:     graph.CreditKindRightsGrantor,
		graph.PropCreditLabel:    "by arrangement with",
		graph.PropCreditPosition: 2,
		graph.PropEntityPosition: 0,
	})

	show, err := f.composer().Creditable(context.Background(), ibsen)
	require.NoError(t, err)

	require.Len(t, show.Materials, 1)
	assert.Equal(t, "Ghosts", show.Materials[0].Name)
	assert.Equal(t, "by", show.Materials[0].CreditName)

	require.Len(t, show.SubsequentVersionMaterials, 1)
	assert.Equal(t, 2013, show.SubsequentVersionMaterials[0].Year)
	assert.Equal(t, "by", show.SubsequentVersionMaterials[0].CreditName)

	require.Len(t, show.SourcingMaterials, 1)
	assert.Equal(t, "Ghosts Reimagined", show.SourcingMaterials[0].Name)
	assert.Equal(t, "based on works by", show.SourcingMaterials[0].CreditName)

	require.Len(t, show.RightsGrantorMaterials, 1)
	assert.Equal(t, "by arrangement with", show.RightsGrantorMaterials[0].CreditName)
}

/*
TestComposer_Creditable_ProductionBuckets verifies team-credit categories,
cast performances, and reviewed productions route to their buckets.
*/
func TestComposer_Creditable_ProductionBuckets(t *testing.T) {
	f := newFixture(t)
	person := f.node(graph.KindPerson, "Katie Mitchell", nil)

	directed := f.node(graph.KindProduction, "Waves", graph.Props{graph.PropStartDate: "2006-11-16"})
	f.edge(graph.EdgeHasTeamCredit, directed, person, graph.Props{
		graph.PropCreditCategory: graph.CreditCategoryCreative,
		graph.PropCreditLabel:    "Director",
		graph.PropCreditPosition: 0,
		graph.PropEntityPosition: 0,
	})

	produced := f.node(graph.KindProduction, "Ophelias Zimmer", nil)
	f.edge(graph.EdgeHasTeamCredit, produced, person, graph.Props{
		graph.PropCreditCategory: graph.CreditCategoryProducer,
		graph.PropCreditPosition: 0,
		graph.PropEntityPosition: 0,
	})

	crewed := f.node(graph.KindProduction, "Lungs", nil)
	f.edge(graph.EdgeHasTeamCredit, crewed, person, graph.Props{
		graph.PropCreditCategory: graph.CreditCategoryCrew,
		graph.PropCreditLabel:    "Stage Manager",
		graph.PropCreditPosition: 0,
		graph.PropEntityPosition: 0,
	})

	acted := f.node(graph.KindProduction, "The Cherry Orchard", nil)
	f.edge(graph.EdgeHasCastMember, acted, person, graph.Props{graph.PropPosition: 0})

	reviewed := f.node(graph.KindProduction, "A Number", nil)
	f.edge(graph.EdgeHasReview, reviewed, person, graph.Props{
		graph.PropPosition: 0,
		graph.PropURL:      "https://example.com/review",
	})

	show, err := f.composer().Creditable(context.Background(), person)
	require.NoError(t, err)

	require.Len(t, show.CreativeProductions, 1)
	assert.Equal(t, "Waves", show.CreativeProductions[0].Name)
	assert.Equal(t, "Director", show.CreativeProductions[0].CreditName)

	require.Len(t, show.ProducerProductions, 1)
	assert.Equal(t, "produced by", show.ProducerProductions[0].CreditName)

	require.Len(t, show.CrewProductions, 1)
	assert.Equal(t, "Stage Manager", show.CrewProductions[0].CreditName)

	require.Len(t, show.Productions, 1)
	assert.Equal(t, "The Cherry Orchard", show.Productions[0].Name)
	require.Len(t, show.Productions[0].Roles, 1)
	assert.Equal(t, "Performer", show.Productions[0].Roles[0].Name)

	require.Len(t, show.ReviewedProductions, 1)
	assert.Equal(t, "A Number", show.ReviewedProductions[0].Name)
}

/*
TestComposer_Creditable_CompanyMembers verifies the credited-company context
on a person's entry and the credited members on a company's entry.
*/
func TestComposer_Creditable_CompanyMembers(t *testing.T) {
	f := newFixture(t)
	production := f.node(graph.KindProduction, "The Encounter", nil)
	complicite := f.node(graph.KindCompany, "Complicité", nil)
	mcburney := f.node(graph.KindPerson, "Simon McBurney", nil)

	f.edge(graph.EdgeHasTeamCredit, production, complicite, graph.Props{
		graph.PropCreditCategory: graph.CreditCategoryCreative,
		graph.PropCreditLabel:    "Devised by",
		graph.PropCreditPosition: 0,
		graph.PropEntityPosition: 0,
	})
	f.edge(graph.EdgeHasTeamCredit, production, mcburney, graph.Props{
		graph.PropCreditCategory:  graph.CreditCategoryCreative,
		graph.PropCreditPosition:  0,
		graph.PropEntityPosition:  1,
		graph.PropCreditedCompany: complicite.UUID,
	})

	personShow, err := f.composer().Creditable(context.Background(), mcburney)
	require.NoError(t, err)

	require.Len(t, personShow.CreativeProductions, 1)
	require.NotNil(t, personShow.CreativeProductions[0].CreditedCompany)
	assert.Equal(t, "Complicité", personShow.CreativeProductions[0].CreditedCompany.Name)

	companyShow, err := f.composer().Creditable(context.Background(), complicite)
	require.NoError(t, err)

	require.Len(t, companyShow.CreativeProductions, 1)
	assert.Equal(t, "Devised by", companyShow.CreativeProductions[0].CreditName)
	require.Len(t, companyShow.CreativeProductions[0].CreditedMembers, 1)
	assert.Equal(t, "Simon McBurney", companyShow.CreativeProductions[0].CreditedMembers[0].Name)
}

/*
TestComposer_Award verifies the award document lists ceremonies newest
first.
*/
func TestComposer_Award(t *testing.T) {
	f := newFixture(t)
	award := f.node(graph.KindAward, "Critics' Circle Theatre Awards", nil)
	older := f.node(graph.KindAwardCeremony, "2014", nil)
	newer := f.node(graph.KindAwardCeremony, "2015", nil)
	f.edge(graph.EdgePresentedBy, older, award, nil)
	f.edge(graph.EdgePresentedBy, newer, award, nil)

	show, err := f.composer().Award(context.Background(), award)
	require.NoError(t, err)

	require.Len(t, show.Ceremonies, 2)
	assert.Equal(t, "2015", show.Ceremonies[0].Name)
	assert.Equal(t, "2014", show.Ceremonies[1].Name)
}
