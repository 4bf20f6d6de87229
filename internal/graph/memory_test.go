// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package graph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/dberr"
)

func mustCreate(t *testing.T, store graph.Store, kind graph.Kind, name, differentiator string) *graph.Node {
	t.Helper()
	node := &graph.Node{Kind: kind, Name: name, Differentiator: differentiator}
	require.NoError(t, store.CreateNode(context.Background(), node))
	require.NotEmpty(t, node.UUID)
	return node
}

func mustLink(t *testing.T, store graph.Store, kind graph.EdgeKind, from, to *graph.Node, props graph.Props) {
	t.Helper()
	require.NoError(t, store.CreateEdge(context.Background(), &graph.Edge{
		Kind:     kind,
		FromUUID: from.UUID,
		ToUUID:   to.UUID,
		Props:    props,
	}))
}

/*
TestMemoryStore_IdentityUniqueness verifies the (kind, name, differentiator)
constraint and its per-kind exemptions.
*/
func TestMemoryStore_IdentityUniqueness(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()

	mustCreate(t, store, graph.KindPerson, "Ian McKellen", "")

	t.Run("same_identity_rejected", func(t *testing.T) {
		err := store.CreateNode(ctx, &graph.Node{Kind: graph.KindPerson, Name: "Ian McKellen"})
		assert.True(t, errors.Is(err, dberr.ErrUniqueViolation))
	})

	t.Run("differentiator_distinguishes", func(t *testing.T) {
		err := store.CreateNode(ctx, &graph.Node{Kind: graph.KindPerson, Name: "Ian McKellen", Differentiator: "II"})
		assert.NoError(t, err)
	})

	t.Run("other_kind_unaffected", func(t *testing.T) {
		err := store.CreateNode(ctx, &graph.Node{Kind: graph.KindCharacter, Name: "Ian McKellen"})
		assert.NoError(t, err)
	})

	t.Run("productions_exempt", func(t *testing.T) {
		first := &graph.Node{Kind: graph.KindProduction, Name: "Hamlet"}
		second := &graph.Node{Kind: graph.KindProduction, Name: "Hamlet"}
		require.NoError(t, store.CreateNode(ctx, first))
		require.NoError(t, store.CreateNode(ctx, second))
		assert.NotEqual(t, first.UUID, second.UUID)
	})

	t.Run("ceremonies_exempt", func(t *testing.T) {
		require.NoError(t, store.CreateNode(ctx, &graph.Node{Kind: graph.KindAwardCeremony, Name: "2020"}))
		assert.NoError(t, store.CreateNode(ctx, &graph.Node{Kind: graph.KindAwardCeremony, Name: "2020"}))
	})
}

/*
TestMemoryStore_FindOrCreateNode verifies identity merging.
*/
func TestMemoryStore_FindOrCreateNode(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()

	first, err := store.FindOrCreateNode(ctx, graph.KindVenue, "Olivier Theatre", "")
	require.NoError(t, err)

	second, err := store.FindOrCreateNode(ctx, graph.KindVenue, "Olivier Theatre", "")
	require.NoError(t, err)
	assert.Equal(t, first.UUID, second.UUID)

	third, err := store.FindOrCreateNode(ctx, graph.KindVenue, "Olivier Theatre", "Sheffield")
	require.NoError(t, err)
	assert.NotEqual(t, first.UUID, third.UUID)
}

/*
TestMemoryStore_GetNode verifies uuid lookup and the not-found error.
*/
func TestMemoryStore_GetNode(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()
	venue := mustCreate(t, store, graph.KindVenue, "Donmar Warehouse", "")

	found, err := store.GetNode(ctx, venue.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Donmar Warehouse", found.Name)

	_, err = store.GetNode(ctx, "no-such-uuid")
	assert.True(t, errors.Is(err, dberr.ErrNotFound))
}

/*
TestMemoryStore_Neighbors verifies direction filtering and that both edge
and far node are returned.
*/
func TestMemoryStore_Neighbors(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()

	production := mustCreate(t, store, graph.KindProduction, "Macbeth", "")
	venue := mustCreate(t, store, graph.KindVenue, "Gielgud Theatre", "")
	mustLink(t, store, graph.EdgePlaysAt, production, venue, nil)

	outgoing, err := store.Neighbors(ctx, production.UUID, graph.EdgePlaysAt, graph.Outgoing)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, venue.UUID, outgoing[0].Node.UUID)

	incoming, err := store.Neighbors(ctx, venue.UUID, graph.EdgePlaysAt, graph.Incoming)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, production.UUID, incoming[0].Node.UUID)

	// Wrong direction yields nothing.
	none, err := store.Neighbors(ctx, production.UUID, graph.EdgePlaysAt, graph.Incoming)
	require.NoError(t, err)
	assert.Empty(t, none)
}

/*
TestMemoryStore_DeleteNode verifies that edges fall with their node.
*/
func TestMemoryStore_DeleteNode(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()

	production := mustCreate(t, store, graph.KindProduction, "Othello", "")
	venue := mustCreate(t, store, graph.KindVenue, "Lyttelton Theatre", "")
	mustLink(t, store, graph.EdgePlaysAt, production, venue, nil)

	require.NoError(t, store.DeleteNode(ctx, venue.UUID))

	neighbors, err := store.Neighbors(ctx, production.UUID, graph.EdgePlaysAt, graph.Outgoing)
	require.NoError(t, err)
	assert.Empty(t, neighbors)
}

/*
TestMemoryStore_DeleteEdges verifies directional edge removal by kind.
*/
func TestMemoryStore_DeleteEdges(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()

	sur := mustCreate(t, store, graph.KindVenue, "National Theatre", "")
	sub := mustCreate(t, store, graph.KindVenue, "Olivier Theatre", "")
	other := mustCreate(t, store, graph.KindVenue, "Barbican", "")
	mustLink(t, store, graph.EdgeHasSubVenue, sur, sub, nil)
	mustLink(t, store, graph.EdgeHasSubVenue, other, sub, nil)

	// Re-parenting deletes every incoming sur edge on the sub venue.
	require.NoError(t, store.DeleteEdgesTo(ctx, sub.UUID, graph.EdgeHasSubVenue))

	remaining, err := store.Neighbors(ctx, sub.UUID, graph.EdgeHasSubVenue, graph.Incoming)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	mustLink(t, store, graph.EdgeHasSubVenue, sur, sub, nil)
	require.NoError(t, store.DeleteEdgesFrom(ctx, sur.UUID, graph.EdgeHasSubVenue))

	remaining, err = store.Neighbors(ctx, sur.UUID, graph.EdgeHasSubVenue, graph.Outgoing)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

/*
TestMemoryStore_AssociatedKinds verifies the delete-guard query collects
kinds from both edge directions.
*/
func TestMemoryStore_AssociatedKinds(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()

	person := mustCreate(t, store, graph.KindPerson, "Judi Dench", "")
	production := mustCreate(t, store, graph.KindProduction, "A Winter's Tale", "")
	material := mustCreate(t, store, graph.KindMaterial, "The Winter's Tale", "")
	mustLink(t, store, graph.EdgeHasCastMember, production, person, nil)
	mustLink(t, store, graph.EdgeHasWritingCredit, material, person, nil)

	kinds, err := store.AssociatedKinds(ctx, person.UUID)
	require.NoError(t, err)
	assert.Equal(t, []graph.Kind{graph.KindMaterial, graph.KindProduction}, kinds)
}

/*
TestMemoryStore_InTx verifies snapshot rollback on error.
*/
func TestMemoryStore_InTx(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()
	boom := errors.New("boom")

	err := store.InTx(ctx, func(ctx context.Context, tx graph.Store) error {
		if err := tx.CreateNode(ctx, &graph.Node{Kind: graph.KindPerson, Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	assert.True(t, errors.Is(err, boom))

	found, err := store.FindNode(ctx, graph.KindPerson, "Ghost", "")
	require.NoError(t, err)
	assert.Nil(t, found)

	err = store.InTx(ctx, func(ctx context.Context, tx graph.Store) error {
		return tx.CreateNode(ctx, &graph.Node{Kind: graph.KindPerson, Name: "Ghost"})
	})
	require.NoError(t, err)

	found, err = store.FindNode(ctx, graph.KindPerson, "Ghost", "")
	require.NoError(t, err)
	assert.NotNil(t, found)
}

/*
TestMemoryStore_ListNodes verifies case-insensitive name ordering and the cap.
*/
func TestMemoryStore_ListNodes(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()

	mustCreate(t, store, graph.KindPerson, "anna", "")
	mustCreate(t, store, graph.KindPerson, "Ben", "")
	mustCreate(t, store, graph.KindPerson, "Cleo", "")

	nodes, err := store.ListNodes(ctx, graph.KindPerson, 2)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "anna", nodes[0].Name)
	assert.Equal(t, "Ben", nodes[1].Name)
}

/*
TestProps_Position verifies the sort-last policy for malformed ordering
values.
*/
func TestProps_Position(t *testing.T) {
	tests := []struct {
		name     string
		props    graph.Props
		expected int
	}{
		{"int_value", graph.Props{"position": 3}, 3},
		{"json_round_trip_float", graph.Props{"position": float64(2)}, 2},
		{"fractional_is_malformed", graph.Props{"position": 1.5}, graph.SortLast},
		{"string_is_malformed", graph.Props{"position": "first"}, graph.SortLast},
		{"missing", graph.Props{}, graph.SortLast},
		{"nil_props", nil, graph.SortLast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.props.Position("position"))
		})
	}
}
