// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package catalogue

import (
	"context"
	"net/http"

	"github.com/tamsinleach/dramatis/internal/graph"
	requestutil "github.com/tamsinleach/dramatis/internal/platform/request"
	"github.com/tamsinleach/dramatis/internal/view"
	"github.com/tamsinleach/dramatis/internal/writemodel"
)

// simpleSubmission binds the shared identity-only shape to one kind so it
// satisfies [Submission]. The embedded pointer keeps the wire format flat.
type simpleSubmission struct {
	*writemodel.Simple
	kind graph.Kind
}

func (sub *simpleSubmission) Validate(ctx context.Context, store graph.Store) error {
	return sub.Simple.Validate(ctx, store, sub.kind)
}

func (sub *simpleSubmission) Node() *graph.Node {
	return sub.Simple.Node(sub.kind)
}

// Save is a no-op: identity-only kinds own no relationships. Their edges
// are written by the submissions of the kinds that reference them.
func (sub *simpleSubmission) Save(ctx context.Context, tx graph.Store, uuid string) error {
	return nil
}

// simpleDefinition builds the definition for an identity-only kind,
// differing only in its composed read view.
func simpleDefinition(kind graph.Kind, model, plural, label string, compose func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error)) Definition {
	return Definition{
		Kind:   kind,
		Model:  model,
		Plural: plural,
		Label:  label,
		New: func() Submission {
			return &simpleSubmission{Simple: writemodel.NewSimple(), kind: kind}
		},
		Decode: func(request *http.Request) (Submission, error) {
			sub := &simpleSubmission{Simple: writemodel.NewSimple(), kind: kind}
			if err := requestutil.DecodeJSON(request, sub.Simple); err != nil {
				return nil, err
			}
			return sub, nil
		},
		Load: func(ctx context.Context, store graph.Store, node *graph.Node) (Submission, error) {
			return &simpleSubmission{Simple: writemodel.SimpleFromNode(node), kind: kind}, nil
		},
		Compose: compose,
	}
}

// Definitions returns every entity kind wired into the uniform surface, in
// mount order.
func Definitions() []Definition {
	return []Definition{
		{
			Kind:   graph.KindProduction,
			Model:  "production",
			Plural: "productions",
			Label:  "Production",
			New:    func() Submission { return writemodel.NewProduction() },
			Decode: func(request *http.Request) (Submission, error) {
				production := writemodel.NewProduction()
				if err := requestutil.DecodeJSON(request, production); err != nil {
					return nil, err
				}
				return production, nil
			},
			Load: func(ctx context.Context, store graph.Store, node *graph.Node) (Submission, error) {
				return writemodel.LoadProduction(ctx, store, node)
			},
			Compose: func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error) {
				return composer.Production(ctx, node)
			},
		},
		{
			Kind:   graph.KindMaterial,
			Model:  "material",
			Plural: "materials",
			Label:  "Material",
			New:    func() Submission { return writemodel.NewMaterial() },
			Decode: func(request *http.Request) (Submission, error) {
				material := writemodel.NewMaterial()
				if err := requestutil.DecodeJSON(request, material); err != nil {
					return nil, err
				}
				return material, nil
			},
			Load: func(ctx context.Context, store graph.Store, node *graph.Node) (Submission, error) {
				return writemodel.LoadMaterial(ctx, store, node)
			},
			Compose: func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error) {
				return composer.Material(ctx, node)
			},
		},
		{
			Kind:   graph.KindVenue,
			Model:  "venue",
			Plural: "venues",
			Label:  "Venue",
			New:    func() Submission { return writemodel.NewVenue() },
			Decode: func(request *http.Request) (Submission, error) {
				venue := writemodel.NewVenue()
				if err := requestutil.DecodeJSON(request, venue); err != nil {
					return nil, err
				}
				return venue, nil
			},
			Load: func(ctx context.Context, store graph.Store, node *graph.Node) (Submission, error) {
				return writemodel.LoadVenue(ctx, store, node)
			},
			Compose: func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error) {
				return composer.Venue(ctx, node)
			},
		},
		simpleDefinition(graph.KindPerson, "person", "people", "Person",
			func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error) {
				return composer.Creditable(ctx, node)
			}),
		simpleDefinition(graph.KindCompany, "company", "companies", "Company",
			func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error) {
				return composer.Creditable(ctx, node)
			}),
		simpleDefinition(graph.KindCharacter, "character", "characters", "Character",
			func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error) {
				return composer.Character(ctx, node)
			}),
		simpleDefinition(graph.KindAward, "award", "awards", "Award",
			func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error) {
				return composer.Award(ctx, node)
			}),
		{
			Kind:   graph.KindAwardCeremony,
			Model:  "awardCeremony",
			Plural: "award-ceremonies",
			Label:  "Award ceremony",
			New:    func() Submission { return writemodel.NewAwardCeremony() },
			Decode: func(request *http.Request) (Submission, error) {
				ceremony := writemodel.NewAwardCeremony()
				if err := requestutil.DecodeJSON(request, ceremony); err != nil {
					return nil, err
				}
				return ceremony, nil
			},
			Load: func(ctx context.Context, store graph.Store, node *graph.Node) (Submission, error) {
				return writemodel.LoadAwardCeremony(ctx, store, node)
			},
			Compose: func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error) {
				return composer.AwardCeremony(ctx, node)
			},
			DeleteOwned: deleteOwnedCategories,
			// A ceremony owns its categories and merely points at its award;
			// neither holds it in the catalogue.
			GuardExempt: map[graph.Kind]bool{
				graph.KindAward:    true,
				graph.KindCategory: true,
			},
		},
		simpleDefinition(graph.KindSeason, "season", "seasons", "Season",
			func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error) {
				return composer.Grouping(ctx, node)
			}),
		simpleDefinition(graph.KindFestival, "festival", "festivals", "Festival",
			func(ctx context.Context, composer *view.Composer, node *graph.Node) (any, error) {
				return composer.Grouping(ctx, node)
			}),
	}
}

// deleteOwnedCategories removes a ceremony's category nodes, taking their
// nominee edges with them.
func deleteOwnedCategories(ctx context.Context, tx graph.Store, ceremonyUUID string) error {
	categories, err := tx.Neighbors(ctx, ceremonyUUID, graph.EdgeHasCategory, graph.Outgoing)
	if err != nil {
		return err
	}
	for _, category := range categories {
		if err := tx.DeleteNode(ctx, category.Node.UUID); err != nil {
			return err
		}
	}
	return nil
}
