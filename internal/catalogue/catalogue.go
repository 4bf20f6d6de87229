// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

/*
Package catalogue exposes the uniform CRUD surface shared by every entity
kind.

One [Service] and one [Handler] serve all kinds; the per-kind differences
(submission shape, loader, view composition, delete ownership) are captured
declaratively in a [Definition]. Adding a kind means adding a definition,
not a handler.

Every kind answers the same seven routes under its plural path:

	GET    /{plural}/new          seeded empty submission
	POST   /{plural}              create
	GET    /{plural}/{uuid}/edit  stored submission for re-editing
	PUT    /{plural}/{uuid}       update
	DELETE /{plural}/{uuid}       delete, guarded by associations
	GET    /{plural}/{uuid}       composed read view
	GET    /{plural}               capped name listing
*/
package catalogue

import (
	"context"
	"net/http"

	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/validate"
	"github.com/tamsinleach/dramatis/internal/view"
)

// Submission is the behaviour every write shape exposes to the service.
// The shapes live in internal/writemodel; kinds whose shape methods take a
// kind parameter are adapted in definitions.go.
type Submission interface {
	// Trim normalises submitted strings and initialises error bags.
	Trim()

	// Validate populates the error bags. Only infrastructure failures
	// return an error.
	Validate(ctx context.Context, store graph.Store) error

	// HasErrors reports whether validation flagged anything, at any depth.
	HasErrors() bool

	// Node builds the storable node for a create or update.
	Node() *graph.Node

	// SetUUID stamps the subject uuid onto the shape.
	SetUUID(uuid string)

	// Save writes the shape's relationships inside the given transaction,
	// replacing any previously stored ones.
	Save(ctx context.Context, tx graph.Store, uuid string) error
}

// Definition wires one entity kind into the uniform surface.
type Definition struct {
	// Kind is the node kind stored and verified on every uuid route.
	Kind graph.Kind

	// Model is the camelCase model name reported in responses and in other
	// kinds' delete guards.
	Model string

	// Plural is the URL path segment and the guard's plural model name.
	Plural string

	// Label names the kind in not-found errors.
	Label string

	// New returns the seeded empty submission for the "new" endpoint.
	New func() Submission

	// Decode parses a request body into the kind's submission shape.
	Decode func(request *http.Request) (Submission, error)

	// Load rebuilds the submission shape from the store for re-editing.
	Load func(ctx context.Context, store graph.Store, node *graph.Node) (Submission, error)

	// Compose builds the kind's read view.
	Compose func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error)

	// DeleteOwned removes subordinate nodes the instance owns outright
	// (a ceremony's categories) before the node itself is deleted. Nil for
	// kinds that own nothing.
	DeleteOwned func(ctx context.Context, tx graph.Store, uuid string) error

	// GuardExempt lists associated kinds that never block deletion: owned
	// subordinates, and associations the kind is deleted out from under
	// (a ceremony's award).
	GuardExempt map[graph.Kind]bool
}

// DeleteResult reports a delete attempt. A blocked delete is not an HTTP
// error: the instance is returned undeleted with its blocking associations
// in the error bag.
type DeleteResult struct {
	Model            string            `json:"model"`
	UUID             string            `json:"uuid,omitempty"`
	Name             string            `json:"name"`
	Differentiator   string            `json:"differentiator,omitempty"`
	IsDeleted        bool              `json:"isDeleted"`
	AssociatedModels []string          `json:"associatedModels,omitempty"`
	Errors           validate.ErrorBag `json:"errors"`
}

// guardModelNames maps associated node kinds to the plural model names
// surfaced by the delete guard. Categories report as awards: a nominee's
// edge lands on a category node, but the association the curator must undo
// lives on the award ceremony form.
var guardModelNames = map[graph.Kind]string{
	graph.KindProduction:    "productions",
	graph.KindMaterial:      "materials",
	graph.KindVenue:         "venues",
	graph.KindPerson:        "people",
	graph.KindCompany:       "companies",
	graph.KindCharacter:     "characters",
	graph.KindAward:         "awards",
	graph.KindAwardCeremony: "awardCeremonies",
	graph.KindCategory:      "awardCeremonies",
	graph.KindSeason:        "seasons",
	graph.KindFestival:      "festivals",
}
