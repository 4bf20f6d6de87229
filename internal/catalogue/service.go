// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package catalogue

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/apperr"
	"github.com/tamsinleach/dramatis/internal/platform/constants"
	"github.com/tamsinleach/dramatis/internal/platform/dberr"
	"github.com/tamsinleach/dramatis/internal/platform/validate"
	"github.com/tamsinleach/dramatis/internal/view"
)

// Service runs the CRUD operations for one entity kind against the
// adjacency store.
type Service struct {
	def      Definition
	store    graph.Store
	composer *view.Composer
}

// NewService binds a kind definition to a store.
func NewService(def Definition, store graph.Store) *Service {
	return &Service{
		def:      def,
		store:    store,
		composer: view.NewComposer(store),
	}
}

// New returns the seeded empty submission for the kind.
func (service *Service) New() Submission {
	return service.def.New()
}

// Decode parses a request body into the kind's submission shape.
func (service *Service) Decode(request *http.Request) (Submission, error) {
	return service.def.Decode(request)
}

// subject fetches the addressed node and verifies its kind; a uuid of the
// wrong kind is indistinguishable from an absent one.
func (service *Service) subject(ctx context.Context, uuid string) (*graph.Node, error) {
	node, err := service.store.GetNode(ctx, uuid)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound(service.def.Label)
		}
		return nil, err
	}
	if node.Kind != service.def.Kind {
		return nil, apperr.NotFound(service.def.Label)
	}
	return node, nil
}

// Create validates and persists a new instance with its relationships.
// Validation failures come back on the submission itself, not as an error.
func (service *Service) Create(ctx context.Context, sub Submission) (Submission, error) {
	sub.SetUUID("")
	sub.Trim()
	if err := sub.Validate(ctx, service.store); err != nil {
		return nil, err
	}
	if sub.HasErrors() {
		return sub, nil
	}

	err := service.store.InTx(ctx, func(ctx context.Context, tx graph.Store) error {
		node := sub.Node()
		if err := tx.CreateNode(ctx, node); err != nil {
			return err
		}
		sub.SetUUID(node.UUID)
		return sub.Save(ctx, tx, node.UUID)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Edit rebuilds the stored instance as a submission shape for re-editing.
func (service *Service) Edit(ctx context.Context, uuid string) (Submission, error) {
	node, err := service.subject(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return service.def.Load(ctx, service.store, node)
}

// Update validates and persists changes to an existing instance, replacing
// its relationships wholesale.
func (service *Service) Update(ctx context.Context, uuid string, sub Submission) (Submission, error) {
	if _, err := service.subject(ctx, uuid); err != nil {
		return nil, err
	}

	sub.SetUUID(uuid)
	sub.Trim()
	if err := sub.Validate(ctx, service.store); err != nil {
		return nil, err
	}
	if sub.HasErrors() {
		return sub, nil
	}

	err := service.store.InTx(ctx, func(ctx context.Context, tx graph.Store) error {
		if err := tx.UpdateNode(ctx, sub.Node()); err != nil {
			return err
		}
		return sub.Save(ctx, tx, uuid)
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Delete removes an instance unless other records still associate with it.
// A blocked delete returns the instance undeleted with the blocking model
// names in its error bag.
func (service *Service) Delete(ctx context.Context, uuid string) (*DeleteResult, error) {
	node, err := service.subject(ctx, uuid)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{
		Model:          service.def.Model,
		UUID:           node.UUID,
		Name:           node.Name,
		Differentiator: node.Differentiator,
		Errors:         validate.NewBag(),
	}

	blocking, err := service.blockingModels(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if len(blocking) > 0 {
		result.AssociatedModels = blocking
		for _, model := range blocking {
			result.Errors.Add("associations", model)
		}
		return result, nil
	}

	err = service.store.InTx(ctx, func(ctx context.Context, tx graph.Store) error {
		if service.def.DeleteOwned != nil {
			if err := service.def.DeleteOwned(ctx, tx, uuid); err != nil {
				return err
			}
		}
		return tx.DeleteNode(ctx, uuid)
	})
	if err != nil {
		return nil, err
	}

	result.UUID = ""
	result.IsDeleted = true
	return result, nil
}

// blockingModels returns the sorted, deduplicated plural model names of
// associated records that prevent deletion.
func (service *Service) blockingModels(ctx context.Context, uuid string) ([]string, error) {
	kinds, err := service.store.AssociatedKinds(ctx, uuid)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var models []string
	for _, kind := range kinds {
		if service.def.GuardExempt[kind] {
			continue
		}
		model := guardModelNames[kind]
		if model == "" || seen[model] {
			continue
		}
		seen[model] = true
		models = append(models, model)
	}
	sort.Strings(models)
	return models, nil
}

// Show builds the composed read view of an instance.
func (service *Service) Show(ctx context.Context, uuid string) (any, error) {
	node, err := service.subject(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return service.def.Compose(ctx, service.composer, node)
}

// ListAll returns the kind's name listing, capped.
func (service *Service) ListAll(ctx context.Context) ([]view.Ref, error) {
	return service.composer.List(ctx, service.def.Kind, constants.ListCap)
}
