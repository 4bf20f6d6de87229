// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package writemodel

import (
	"context"
	"errors"
	"sort"

	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/dberr"
	"github.com/tamsinleach/dramatis/internal/platform/validate"
	"github.com/tamsinleach/dramatis/pkg/names"
)

// AwardCeremony is the ceremony submission shape. A ceremony owns its
// category nodes outright: categories are created, replaced, and removed
// with the ceremony, never shared.
//
// Ceremony names repeat across awards ("2020"), so their uniqueness is
// name-within-award rather than the store-level identity constraint.
type AwardCeremony struct {
	UUID string `json:"uuid,omitempty"`
	Name string `json:"name"`

	Award      *EntityRef      `json:"award,omitempty"`
	Categories []CategoryInput `json:"categories"`

	Errors validate.ErrorBag `json:"errors"`
}

// CategoryInput is one ordered category with its nominations.
type CategoryInput struct {
	Name        string            `json:"name"`
	Nominations []NominationInput `json:"nominations"`
	Errors      validate.ErrorBag `json:"errors"`
}

// NominationInput is one nomination: its outcome and the nominee slots.
type NominationInput struct {
	IsWinner   bool   `json:"isWinner"`
	CustomType string `json:"customType,omitempty"`

	Entities    []TeamEntityInput `json:"entities"`
	Productions []ProductionRef   `json:"productions"`
	Materials   []EntityRef       `json:"materials"`

	Errors validate.ErrorBag `json:"errors"`
}

// NewAwardCeremony returns the seeded shape for the "new" endpoint.
func NewAwardCeremony() *AwardCeremony {
	return &AwardCeremony{
		Award:      &EntityRef{Errors: validate.NewBag()},
		Categories: []CategoryInput{},
		Errors:     validate.NewBag(),
	}
}

// Trim normalises all submitted strings and initialises every error bag.
func (ceremony *AwardCeremony) Trim() {
	ceremony.Name = names.Clean(ceremony.Name)
	ceremony.Errors = validate.Ensure(ceremony.Errors)

	if ceremony.Award == nil {
		ceremony.Award = &EntityRef{}
	}
	ceremony.Award.trim()

	if ceremony.Categories == nil {
		ceremony.Categories = []CategoryInput{}
	}
	for i := range ceremony.Categories {
		category := &ceremony.Categories[i]
		category.Name = names.Clean(category.Name)
		category.Errors = validate.Ensure(category.Errors)
		for j := range category.Nominations {
			nomination := &category.Nominations[j]
			nomination.CustomType = names.Clean(nomination.CustomType)
			nomination.Errors = validate.Ensure(nomination.Errors)
			for k := range nomination.Entities {
				entity := &nomination.Entities[k]
				entity.Name = names.Clean(entity.Name)
				entity.Differentiator = names.Clean(entity.Differentiator)
				entity.Errors = validate.Ensure(entity.Errors)
				for m := range entity.Members {
					entity.Members[m].trim()
				}
			}
			for k := range nomination.Productions {
				nomination.Productions[k].trim()
			}
			for k := range nomination.Materials {
				nomination.Materials[k].trim()
			}
			if nomination.Entities == nil {
				nomination.Entities = []TeamEntityInput{}
			}
			if nomination.Productions == nil {
				nomination.Productions = []ProductionRef{}
			}
			if nomination.Materials == nil {
				nomination.Materials = []EntityRef{}
			}
		}
		if category.Nominations == nil {
			category.Nominations = []NominationInput{}
		}
	}
}

// Validate populates the error bags. Only infrastructure failures return an
// error.
func (ceremony *AwardCeremony) Validate(ctx context.Context, store graph.Store) error {
	ceremony.Errors.Required("name", ceremony.Name).MaxLen("name", ceremony.Name)
	ceremony.Award.validateLengths()

	for i := range ceremony.Categories {
		category := &ceremony.Categories[i]
		category.Errors.Required("name", category.Name).MaxLen("name", category.Name)

		for j := range category.Nominations {
			nomination := &category.Nominations[j]
			nomination.Errors.MaxLen("customType", nomination.CustomType)

			seenEntities := make(map[string]bool)
			for k := range nomination.Entities {
				entity := &nomination.Entities[k]
				entity.Errors.MaxLen("name", entity.Name)
				entity.Errors.MaxLen("differentiator", entity.Differentiator)

				memberRefs := make([]*EntityRef, 0, len(entity.Members))
				for m := range entity.Members {
					member := &entity.Members[m]
					member.validateLengths()
					memberRefs = append(memberRefs, member)
				}
				flagDuplicates(memberRefs)

				if entity.Name == "" {
					continue
				}
				key := entity.Model + "\x00" + entity.Name + "\x00" + entity.Differentiator
				if seenEntities[key] {
					entity.Errors.DuplicateInGroup()
					continue
				}
				seenEntities[key] = true
			}

			productionRefs := make([]*ProductionRef, 0, len(nomination.Productions))
			for k := range nomination.Productions {
				productionRefs = append(productionRefs, &nomination.Productions[k])
			}
			flagProductionDuplicates(productionRefs)
			if err := flagMissingProductions(ctx, store, productionRefs); err != nil {
				return err
			}

			materialRefs := make([]*EntityRef, 0, len(nomination.Materials))
			for k := range nomination.Materials {
				ref := &nomination.Materials[k]
				ref.validateLengths()
				materialRefs = append(materialRefs, ref)
			}
			flagDuplicates(materialRefs)
		}
	}

	return ceremony.validateNameWithinAward(ctx, store)
}

// validateNameWithinAward flags a ceremony name already used by another
// ceremony of the same award.
func (ceremony *AwardCeremony) validateNameWithinAward(ctx context.Context, store graph.Store) error {
	if ceremony.Name == "" || ceremony.Award.empty() {
		return nil
	}

	award, err := store.FindNode(ctx, graph.KindAward, ceremony.Award.Name, ceremony.Award.Differentiator)
	if err != nil {
		return err
	}
	if award == nil {
		return nil
	}

	siblings, err := store.Neighbors(ctx, award.UUID, graph.EdgePresentedBy, graph.Incoming)
	if err != nil {
		return err
	}
	for _, sibling := range siblings {
		if sibling.Node.Name == ceremony.Name && sibling.Node.UUID != ceremony.UUID {
			ceremony.Errors.Add("name", validate.MsgNotUnique)
			return nil
		}
	}
	return nil
}

// HasErrors reports whether validation flagged anything, on the instance or
// any nested item.
func (ceremony *AwardCeremony) HasErrors() bool {
	if !ceremony.Errors.IsEmpty() {
		return true
	}
	if ceremony.Award != nil && !ceremony.Award.Errors.IsEmpty() {
		return true
	}
	for i := range ceremony.Categories {
		category := &ceremony.Categories[i]
		if !category.Errors.IsEmpty() {
			return true
		}
		for j := range category.Nominations {
			nomination := &category.Nominations[j]
			if !nomination.Errors.IsEmpty() {
				return true
			}
			for k := range nomination.Entities {
				entity := &nomination.Entities[k]
				if !entity.Errors.IsEmpty() {
					return true
				}
				for m := range entity.Members {
					if !entity.Members[m].Errors.IsEmpty() {
						return true
					}
				}
			}
			for k := range nomination.Productions {
				if !nomination.Productions[k].Errors.IsEmpty() {
					return true
				}
			}
			for k := range nomination.Materials {
				if !nomination.Materials[k].Errors.IsEmpty() {
					return true
				}
			}
		}
	}
	return false
}

// Node builds the storable node for a create or update.
func (ceremony *AwardCeremony) Node() *graph.Node {
	return &graph.Node{
		UUID: ceremony.UUID,
		Kind: graph.KindAwardCeremony,
		Name: ceremony.Name,
	}
}

// Save replaces the ceremony's award edge and rebuilds its owned category
// nodes and their nomination edges from the submission.
func (ceremony *AwardCeremony) Save(ctx context.Context, tx graph.Store, ceremonyUUID string) error {
	existing, err := tx.Neighbors(ctx, ceremonyUUID, graph.EdgeHasCategory, graph.Outgoing)
	if err != nil {
		return err
	}
	for _, category := range existing {
		if err := tx.DeleteNode(ctx, category.Node.UUID); err != nil {
			return err
		}
	}
	if err := tx.DeleteEdgesFrom(ctx, ceremonyUUID, graph.EdgePresentedBy); err != nil {
		return err
	}

	if !ceremony.Award.empty() {
		awardUUID, err := ceremony.Award.resolve(ctx, tx, graph.KindAward)
		if err != nil {
			return err
		}
		err = tx.CreateEdge(ctx, &graph.Edge{Kind: graph.EdgePresentedBy, FromUUID: ceremonyUUID, ToUUID: awardUUID})
		if err != nil {
			return err
		}
	}

	for position := range ceremony.Categories {
		category := &ceremony.Categories[position]
		if category.Name == "" {
			continue
		}
		node := &graph.Node{Kind: graph.KindCategory, Name: category.Name}
		if err := tx.CreateNode(ctx, node); err != nil {
			return err
		}
		err = tx.CreateEdge(ctx, &graph.Edge{
			Kind:     graph.EdgeHasCategory,
			FromUUID: ceremonyUUID,
			ToUUID:   node.UUID,
			Props:    graph.Props{graph.PropPosition: position},
		})
		if err != nil {
			return err
		}

		for nominationPosition := range category.Nominations {
			nomination := &category.Nominations[nominationPosition]
			if err := nomination.save(ctx, tx, node.UUID, nominationPosition); err != nil {
				return err
			}
		}
	}
	return nil
}

// save writes one nomination's nominee edges.
func (nomination *NominationInput) save(ctx context.Context, tx graph.Store, categoryUUID string, position int) error {
	baseProps := func(positionKey string, slotPosition int) graph.Props {
		props := graph.Props{
			graph.PropNominationPosition: position,
			positionKey:                  slotPosition,
		}
		if nomination.IsWinner {
			props[graph.PropIsWinner] = true
		}
		if nomination.CustomType != "" {
			props[graph.PropCustomType] = nomination.CustomType
		}
		return props
	}

	entityPosition := 0
	for i := range nomination.Entities {
		entity := &nomination.Entities[i]
		if entity.Name == "" {
			continue
		}
		kind := entityKind(entity.Model)
		if kind == graph.KindMaterial {
			kind = graph.KindPerson // material slots are submitted separately
		}
		node, err := tx.FindOrCreateNode(ctx, kind, entity.Name, entity.Differentiator)
		if err != nil {
			return err
		}
		err = tx.CreateEdge(ctx, &graph.Edge{
			Kind:     graph.EdgeHasNominee,
			FromUUID: categoryUUID,
			ToUUID:   node.UUID,
			Props:    baseProps(graph.PropEntityPosition, entityPosition),
		})
		if err != nil {
			return err
		}
		entityPosition++

		if kind != graph.KindCompany {
			continue
		}
		memberPosition := 0
		for j := range entity.Members {
			member := &entity.Members[j]
			if member.empty() {
				continue
			}
			memberUUID, err := member.resolve(ctx, tx, graph.KindPerson)
			if err != nil {
				return err
			}
			props := baseProps(graph.PropEntityPosition, memberPosition)
			props[graph.PropCreditedCompany] = node.UUID
			err = tx.CreateEdge(ctx, &graph.Edge{
				Kind:     graph.EdgeHasNominee,
				FromUUID: categoryUUID,
				ToUUID:   memberUUID,
				Props:    props,
			})
			if err != nil {
				return err
			}
			memberPosition++
		}
	}

	productionPosition := 0
	for i := range nomination.Productions {
		ref := &nomination.Productions[i]
		if ref.empty() {
			continue
		}
		node, err := tx.GetNode(ctx, ref.UUID)
		if err != nil {
			// A ref deleted between Validate and Save is dropped, not fatal.
			if errors.Is(err, dberr.ErrNotFound) {
				continue
			}
			return err
		}
		if node.Kind != graph.KindProduction {
			continue
		}
		err = tx.CreateEdge(ctx, &graph.Edge{
			Kind:     graph.EdgeHasNominee,
			FromUUID: categoryUUID,
			ToUUID:   node.UUID,
			Props:    baseProps(graph.PropProductionPosition, productionPosition),
		})
		if err != nil {
			return err
		}
		productionPosition++
	}

	materialPosition := 0
	for i := range nomination.Materials {
		ref := &nomination.Materials[i]
		if ref.empty() {
			continue
		}
		materialUUID, err := ref.resolve(ctx, tx, graph.KindMaterial)
		if err != nil {
			return err
		}
		err = tx.CreateEdge(ctx, &graph.Edge{
			Kind:     graph.EdgeHasNominee,
			FromUUID: categoryUUID,
			ToUUID:   materialUUID,
			Props:    baseProps(graph.PropMaterialPosition, materialPosition),
		})
		if err != nil {
			return err
		}
		materialPosition++
	}
	return nil
}

// LoadAwardCeremony rebuilds the edit shape from the store.
func LoadAwardCeremony(ctx context.Context, store graph.Store, node *graph.Node) (*AwardCeremony, error) {
	ceremony := NewAwardCeremony()
	ceremony.UUID = node.UUID
	ceremony.Name = node.Name

	awards, err := store.Neighbors(ctx, node.UUID, graph.EdgePresentedBy, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if len(awards) > 0 {
		ceremony.Award = &EntityRef{
			UUID:           awards[0].Node.UUID,
			Name:           awards[0].Node.Name,
			Differentiator: awards[0].Node.Differentiator,
			Errors:         validate.NewBag(),
		}
	}

	categories, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasCategory, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortNeighborsByPosition(categories, graph.PropPosition)

	for _, categoryNeighbor := range categories {
		category := CategoryInput{
			Name:        categoryNeighbor.Node.Name,
			Nominations: []NominationInput{},
			Errors:      validate.NewBag(),
		}

		nominees, err := store.Neighbors(ctx, categoryNeighbor.Node.UUID, graph.EdgeHasNominee, graph.Outgoing)
		if err != nil {
			return nil, err
		}
		for _, position := range distinctNominationPositions(nominees) {
			category.Nominations = append(category.Nominations, loadNomination(nominees, position))
		}
		ceremony.Categories = append(ceremony.Categories, category)
	}
	return ceremony, nil
}

// distinctNominationPositions returns the ascending distinct nomination
// positions among a category's nominee edges.
func distinctNominationPositions(neighbors []graph.Neighbor) []int {
	seen := make(map[int]bool)
	var positions []int
	for _, neighbor := range neighbors {
		position := neighbor.Edge.Props.Position(graph.PropNominationPosition)
		if !seen[position] {
			seen[position] = true
			positions = append(positions, position)
		}
	}
	sort.Ints(positions)
	return positions
}

// loadNomination rebuilds one nomination's submitted shape from its edges.
func loadNomination(neighbors []graph.Neighbor, position int) NominationInput {
	nomination := NominationInput{
		Entities:    []TeamEntityInput{},
		Productions: []ProductionRef{},
		Materials:   []EntityRef{},
		Errors:      validate.NewBag(),
	}

	companyIndex := make(map[string]int)
	for _, neighbor := range neighbors {
		if neighbor.Edge.Props.Position(graph.PropNominationPosition) != position {
			continue
		}
		if neighbor.Edge.Props.Bool(graph.PropIsWinner) {
			nomination.IsWinner = true
		}
		if nomination.CustomType == "" {
			nomination.CustomType = neighbor.Edge.Props.String(graph.PropCustomType)
		}

		switch neighbor.Node.Kind {
		case graph.KindPerson, graph.KindCompany:
			if neighbor.Edge.Props.String(graph.PropCreditedCompany) != "" {
				continue // members attach below
			}
			entity := TeamEntityInput{
				Model:          string(neighbor.Node.Kind),
				Name:           neighbor.Node.Name,
				Differentiator: neighbor.Node.Differentiator,
				Errors:         validate.NewBag(),
			}
			if neighbor.Node.Kind == graph.KindCompany {
				entity.Members = []EntityRef{}
				companyIndex[neighbor.Node.UUID] = len(nomination.Entities)
			}
			nomination.Entities = append(nomination.Entities, entity)
		case graph.KindProduction:
			nomination.Productions = append(nomination.Productions, ProductionRef{
				UUID:   neighbor.Node.UUID,
				Errors: validate.NewBag(),
			})
		case graph.KindMaterial:
			nomination.Materials = append(nomination.Materials, EntityRef{
				UUID:           neighbor.Node.UUID,
				Name:           neighbor.Node.Name,
				Differentiator: neighbor.Node.Differentiator,
				Errors:         validate.NewBag(),
			})
		}
	}

	for _, neighbor := range neighbors {
		if neighbor.Edge.Props.Position(graph.PropNominationPosition) != position {
			continue
		}
		companyUUID := neighbor.Edge.Props.String(graph.PropCreditedCompany)
		if companyUUID == "" {
			continue
		}
		at, ok := companyIndex[companyUUID]
		if !ok {
			continue
		}
		nomination.Entities[at].Members = append(nomination.Entities[at].Members, EntityRef{
			UUID:           neighbor.Node.UUID,
			Name:           neighbor.Node.Name,
			Differentiator: neighbor.Node.Differentiator,
			Errors:         validate.NewBag(),
		})
	}
	return nomination
}
