// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package catalogue_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamsinleach/dramatis/internal/catalogue"
	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/apperr"
	"github.com/tamsinleach/dramatis/internal/writemodel"
)

// definitionFor finds one kind's definition in the mount table.
func definitionFor(t *testing.T, kind graph.Kind) catalogue.Definition {
	t.Helper()
	for _, def := range catalogue.Definitions() {
		if def.Kind == kind {
			return def
		}
	}
	t.Fatalf("no definition for kind %s", kind)
	return catalogue.Definition{}
}

func serviceFor(t *testing.T, store graph.Store, kind graph.Kind) *catalogue.Service {
	t.Helper()
	return catalogue.NewService(definitionFor(t, kind), store)
}

func seedPerson(t *testing.T, store graph.Store, name string) *graph.Node {
	t.Helper()
	node := &graph.Node{Kind: graph.KindPerson, Name: name}
	require.NoError(t, store.CreateNode(context.Background(), node))
	return node
}

/*
TestService_CreateAndEdit verifies the create flow assigns a uuid and the
edit flow rebuilds the stored instance as a submission shape.
*/
func TestService_CreateAndEdit(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()
	service := serviceFor(t, store, graph.KindVenue)

	venue := writemodel.NewVenue()
	venue.Name = "Donmar Warehouse"

	created, err := service.Create(ctx, venue)
	require.NoError(t, err)
	require.False(t, created.HasErrors())
	require.NotEmpty(t, venue.UUID)

	edited, err := service.Edit(ctx, venue.UUID)
	require.NoError(t, err)
	assert.Equal(t, "Donmar Warehouse", edited.Node().Name)
	assert.False(t, edited.HasErrors())
}

/*
TestService_ValidationFailureReturnsSubmission verifies that validation
failures come back as data on the submission, not as an error, and that
nothing is persisted.
*/
func TestService_ValidationFailureReturnsSubmission(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()
	service := serviceFor(t, store, graph.KindPerson)

	returned, err := service.Create(ctx, service.New()) // empty name
	require.NoError(t, err)
	require.NotNil(t, returned)
	assert.True(t, returned.HasErrors())

	refs, err := service.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

/*
TestService_NotFound verifies the uniform not-found mapping for absent
uuids and for uuids that belong to another kind.
*/
func TestService_NotFound(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()
	service := serviceFor(t, store, graph.KindPerson)

	var appErr *apperr.AppError

	_, err := service.Edit(ctx, "missing-uuid")
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPStatus)

	// A venue's uuid is not addressable through the person surface.
	venue := &graph.Node{Kind: graph.KindVenue, Name: "Young Vic"}
	require.NoError(t, store.CreateNode(ctx, venue))
	_, err = service.Show(ctx, venue.UUID)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Person not found", appErr.Message)
}

/*
TestService_DeleteGuard verifies that associated records block deletion and
surface as sorted plural model names.
*/
func TestService_DeleteGuard(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()
	service := serviceFor(t, store, graph.KindPerson)

	person := seedPerson(t, store, "Denise Gough")
	production := &graph.Node{Kind: graph.KindProduction, Name: "People, Places and Things"}
	require.NoError(t, store.CreateNode(ctx, production))
	require.NoError(t, store.CreateEdge(ctx, &graph.Edge{
		Kind:     graph.EdgeHasCastMember,
		FromUUID: production.UUID,
		ToUUID:   person.UUID,
		Props:    graph.Props{graph.PropPosition: 0},
	}))

	result, err := service.Delete(ctx, person.UUID)
	require.NoError(t, err)

	assert.False(t, result.IsDeleted)
	assert.Equal(t, person.UUID, result.UUID)
	assert.Equal(t, []string{"productions"}, result.AssociatedModels)
	assert.Equal(t, []string{"productions"}, result.Errors["associations"])

	// The subject survived the blocked delete.
	_, err = store.GetNode(ctx, person.UUID)
	assert.NoError(t, err)
}

/*
TestService_Delete verifies the unblocked delete clears the uuid and
reports the removed identity.
*/
func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()
	service := serviceFor(t, store, graph.KindPerson)

	person := seedPerson(t, store, "Unattached Person")

	result, err := service.Delete(ctx, person.UUID)
	require.NoError(t, err)

	assert.True(t, result.IsDeleted)
	assert.Empty(t, result.UUID)
	assert.Equal(t, "Unattached Person", result.Name)
	assert.True(t, result.Errors.IsEmpty())

	_, err = store.GetNode(ctx, person.UUID)
	assert.Error(t, err)
}

/*
TestService_DeleteCeremonyOwnsCategories verifies that deleting a ceremony
removes its owned category nodes and that its award pointer never blocks.
*/
func TestService_DeleteCeremonyOwnsCategories(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()
	service := serviceFor(t, store, graph.KindAwardCeremony)

	ceremony := writemodel.NewAwardCeremony()
	ceremony.Name = "2021"
	ceremony.Award = &writemodel.EntityRef{Name: "Evening Standard Theatre Awards"}
	ceremony.Categories = []writemodel.CategoryInput{{Name: "Best Play"}}

	created, err := service.Create(ctx, ceremony)
	require.NoError(t, err)
	require.False(t, created.HasErrors())
	require.NotEmpty(t, ceremony.UUID)

	categories, err := store.Neighbors(ctx, ceremony.UUID, graph.EdgeHasCategory, graph.Outgoing)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	categoryUUID := categories[0].Node.UUID

	result, err := service.Delete(ctx, ceremony.UUID)
	require.NoError(t, err)
	assert.True(t, result.IsDeleted)

	_, err = store.GetNode(ctx, ceremony.UUID)
	assert.Error(t, err)
	_, err = store.GetNode(ctx, categoryUUID)
	assert.Error(t, err)

	// The award itself survives.
	award, err := store.FindNode(ctx, graph.KindAward, "Evening Standard Theatre Awards", "")
	require.NoError(t, err)
	assert.NotNil(t, award)
}

/*
TestService_Update verifies updates address the instance by path uuid,
ignore any client-supplied uuid, and replace relationships wholesale.
*/
func TestService_Update(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()
	service := serviceFor(t, store, graph.KindVenue)

	venue := writemodel.NewVenue()
	venue.Name = "Almeida Theatre"
	_, err := service.Create(ctx, venue)
	require.NoError(t, err)
	uuid := venue.UUID
	require.NotEmpty(t, uuid)

	resubmitted := writemodel.NewVenue()
	resubmitted.UUID = "client-supplied-uuid"
	resubmitted.Name = "Almeida"
	resubmitted.SubVenues = []writemodel.EntityRef{{Name: "Almeida Studio"}}

	updated, err := service.Update(ctx, uuid, resubmitted)
	require.NoError(t, err)
	require.False(t, updated.HasErrors())
	assert.Equal(t, uuid, resubmitted.UUID)

	node, err := store.GetNode(ctx, uuid)
	require.NoError(t, err)
	assert.Equal(t, "Almeida", node.Name)

	loaded, err := writemodel.LoadVenue(ctx, store, node)
	require.NoError(t, err)
	require.Len(t, loaded.SubVenues, 1)
	assert.Equal(t, "Almeida Studio", loaded.SubVenues[0].Name)
}

/*
TestService_ListAll verifies the capped, name-ordered listing.
*/
func TestService_ListAll(t *testing.T) {
	ctx := context.Background()
	store := graph.NewMemoryStore()
	service := serviceFor(t, store, graph.KindPerson)

	seedPerson(t, store, "Beth")
	seedPerson(t, store, "Anna")

	refs, err := service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "Anna", refs[0].Name)
}
