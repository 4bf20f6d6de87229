// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package writemodel

import (
	"context"
	"sort"

	"github.com/tamsinleach/dramatis/internal/graph"
	"github.com/tamsinleach/dramatis/internal/platform/validate"
	"github.com/tamsinleach/dramatis/pkg/names"
)

// Material is the material submission shape.
type Material struct {
	UUID           string `json:"uuid,omitempty"`
	Name           string `json:"name"`
	Differentiator string `json:"differentiator,omitempty"`
	Format         string `json:"format,omitempty"`
	Year           int    `json:"year,omitempty"`

	OriginalVersionMaterial *EntityRef            `json:"originalVersionMaterial,omitempty"`
	WritingCredits          []WritingCredit       `json:"writingCredits"`
	SubMaterials            []EntityRef           `json:"subMaterials"`
	CharacterGroups         []CharacterGroupInput `json:"characterGroups"`

	Errors validate.ErrorBag `json:"errors"`
}

// WritingCredit is one named group of credited entities. CreditType selects
// the credit's semantics: authorship (the default), adapted source, or
// rights grantor.
type WritingCredit struct {
	Name       string              `json:"name,omitempty"`
	CreditType string              `json:"creditType,omitempty"`
	Entities   []CreditEntityInput `json:"entities"`
	Errors     validate.ErrorBag   `json:"errors"`
}

// CreditEntityInput is one credited entity within a writing credit: a
// person (the default), a company, or a source material.
type CreditEntityInput struct {
	Model          string            `json:"model,omitempty"`
	Name           string            `json:"name"`
	Differentiator string            `json:"differentiator,omitempty"`
	Errors         validate.ErrorBag `json:"errors"`
}

// CharacterGroupInput is one ordered group of character depictions.
type CharacterGroupInput struct {
	Name       string            `json:"name,omitempty"`
	Characters []CharacterInput  `json:"characters"`
	Errors     validate.ErrorBag `json:"errors"`
}

// CharacterInput is one depiction. Name is the name as depicted in the
// material; UnderlyingName, when set, is the character's canonical name.
type CharacterInput struct {
	Name           string            `json:"name"`
	UnderlyingName string            `json:"underlyingName,omitempty"`
	Differentiator string            `json:"differentiator,omitempty"`
	Qualifier      string            `json:"qualifier,omitempty"`
	Errors         validate.ErrorBag `json:"errors"`
}

// NewMaterial returns the seeded shape for the "new" endpoint.
func NewMaterial() *Material {
	return &Material{
		OriginalVersionMaterial: &EntityRef{Errors: validate.NewBag()},
		WritingCredits:          []WritingCredit{},
		SubMaterials:            []EntityRef{},
		CharacterGroups:         []CharacterGroupInput{},
		Errors:                  validate.NewBag(),
	}
}

// Trim normalises all submitted strings and initialises every error bag.
func (material *Material) Trim() {
	material.Name = names.Clean(material.Name)
	material.Differentiator = names.Clean(material.Differentiator)
	material.Format = names.Clean(material.Format)
	material.Errors = validate.Ensure(material.Errors)

	if material.OriginalVersionMaterial == nil {
		material.OriginalVersionMaterial = &EntityRef{}
	}
	material.OriginalVersionMaterial.trim()

	if material.WritingCredits == nil {
		material.WritingCredits = []WritingCredit{}
	}
	for i := range material.WritingCredits {
		credit := &material.WritingCredits[i]
		credit.Name = names.Clean(credit.Name)
		credit.CreditType = names.Clean(credit.CreditType)
		credit.Errors = validate.Ensure(credit.Errors)
		for j := range credit.Entities {
			entity := &credit.Entities[j]
			entity.Name = names.Clean(entity.Name)
			entity.Differentiator = names.Clean(entity.Differentiator)
			entity.Errors = validate.Ensure(entity.Errors)
		}
	}

	if material.SubMaterials == nil {
		material.SubMaterials = []EntityRef{}
	}
	for i := range material.SubMaterials {
		material.SubMaterials[i].trim()
	}

	if material.CharacterGroups == nil {
		material.CharacterGroups = []CharacterGroupInput{}
	}
	for i := range material.CharacterGroups {
		group := &material.CharacterGroups[i]
		group.Name = names.Clean(group.Name)
		group.Errors = validate.Ensure(group.Errors)
		for j := range group.Characters {
			character := &group.Characters[j]
			character.Name = names.Clean(character.Name)
			character.UnderlyingName = names.Clean(character.UnderlyingName)
			character.Differentiator = names.Clean(character.Differentiator)
			character.Qualifier = names.Clean(character.Qualifier)
			character.Errors = validate.Ensure(character.Errors)
		}
	}
}

// Validate populates the error bags. Only infrastructure failures return an
// error.
func (material *Material) Validate(ctx context.Context, store graph.Store) error {
	material.Errors.Required("name", material.Name).MaxLen("name", material.Name)
	material.Errors.MaxLen("differentiator", material.Differentiator)
	material.Errors.MaxLen("format", material.Format)

	subject := identity{material.Name, material.Differentiator}

	original := material.OriginalVersionMaterial
	original.validateLengths()
	flagSelfAssociation(subject, original)

	for i := range material.WritingCredits {
		credit := &material.WritingCredits[i]
		credit.Errors.MaxLen("name", credit.Name)

		seen := make(map[string]bool)
		for j := range credit.Entities {
			entity := &credit.Entities[j]
			entity.Errors.MaxLen("name", entity.Name)
			entity.Errors.MaxLen("differentiator", entity.Differentiator)
			if entity.Name == "" {
				continue
			}
			if entityKind(entity.Model) == graph.KindMaterial && (identity{entity.Name, entity.Differentiator}) == subject {
				entity.Errors.SelfReference()
			}
			key := entity.Model + "\x00" + entity.Name + "\x00" + entity.Differentiator
			if seen[key] {
				entity.Errors.DuplicateInGroup()
				continue
			}
			seen[key] = true
		}
	}

	refs := make([]*EntityRef, 0, len(material.SubMaterials))
	for i := range material.SubMaterials {
		ref := &material.SubMaterials[i]
		ref.validateLengths()
		flagSelfAssociation(subject, ref)
		refs = append(refs, ref)
	}
	flagDuplicates(refs)

	for i := range material.CharacterGroups {
		group := &material.CharacterGroups[i]
		group.Errors.MaxLen("name", group.Name)

		seen := make(map[string]bool)
		for j := range group.Characters {
			character := &group.Characters[j]
			character.Errors.MaxLen("name", character.Name)
			character.Errors.MaxLen("underlyingName", character.UnderlyingName)
			character.Errors.MaxLen("differentiator", character.Differentiator)
			character.Errors.MaxLen("qualifier", character.Qualifier)
			if character.Name == "" {
				continue
			}
			key := character.Name + "\x00" + character.UnderlyingName + "\x00" +
				character.Differentiator + "\x00" + character.Qualifier
			if seen[key] {
				character.Errors.DuplicateInGroup()
				continue
			}
			seen[key] = true
		}
	}

	if material.Name == "" {
		return nil
	}
	unique, err := checkUnique(ctx, store, graph.KindMaterial, subject, material.UUID)
	if err != nil {
		return err
	}
	if !unique {
		material.Errors.NotUnique()
	}
	return nil
}

// HasErrors reports whether validation flagged anything, on the instance or
// any nested item.
func (material *Material) HasErrors() bool {
	if !material.Errors.IsEmpty() {
		return true
	}
	if material.OriginalVersionMaterial != nil && !material.OriginalVersionMaterial.Errors.IsEmpty() {
		return true
	}
	for i := range material.WritingCredits {
		credit := &material.WritingCredits[i]
		if !credit.Errors.IsEmpty() {
			return true
		}
		for j := range credit.Entities {
			if !credit.Entities[j].Errors.IsEmpty() {
				return true
			}
		}
	}
	for i := range material.SubMaterials {
		if !material.SubMaterials[i].Errors.IsEmpty() {
			return true
		}
	}
	for i := range material.CharacterGroups {
		group := &material.CharacterGroups[i]
		if !group.Errors.IsEmpty() {
			return true
		}
		for j := range group.Characters {
			if !group.Characters[j].Errors.IsEmpty() {
				return true
			}
		}
	}
	return false
}

// Node builds the storable node for a create or update.
func (material *Material) Node() *graph.Node {
	props := graph.Props{}
	if material.Format != "" {
		props[graph.PropFormat] = material.Format
	}
	if material.Year != 0 {
		props[graph.PropYear] = material.Year
	}
	return &graph.Node{
		UUID:           material.UUID,
		Kind:           graph.KindMaterial,
		Name:           material.Name,
		Differentiator: material.Differentiator,
		Props:          props,
	}
}

// entityKind maps a submitted credit entity model to a node kind; people
// are the default.
func entityKind(model string) graph.Kind {
	switch model {
	case string(graph.KindCompany):
		return graph.KindCompany
	case string(graph.KindMaterial):
		return graph.KindMaterial
	}
	return graph.KindPerson
}

// creditKind maps a submitted credit type to its stored kind; authorship is
// the default.
func creditKind(creditType string) string {
	switch creditType {
	case graph.CreditKindSource:
		return graph.CreditKindSource
	case graph.CreditKindRightsGrantor:
		return graph.CreditKindRightsGrantor
	}
	return graph.CreditKindWriting
}

// Save replaces the material's relationship edges from the submission.
func (material *Material) Save(ctx context.Context, tx graph.Store, materialUUID string) error {
	err := tx.DeleteEdgesFrom(ctx, materialUUID,
		graph.EdgeSubsequentVersionOf,
		graph.EdgeHasWritingCredit,
		graph.EdgeHasSubMaterial,
		graph.EdgeHasCharacter,
	)
	if err != nil {
		return err
	}

	if !material.OriginalVersionMaterial.empty() {
		originalUUID, err := material.OriginalVersionMaterial.resolve(ctx, tx, graph.KindMaterial)
		if err != nil {
			return err
		}
		err = tx.CreateEdge(ctx, &graph.Edge{
			Kind:     graph.EdgeSubsequentVersionOf,
			FromUUID: materialUUID,
			ToUUID:   originalUUID,
		})
		if err != nil {
			return err
		}
	}

	creditPosition := 0
	for i := range material.WritingCredits {
		credit := &material.WritingCredits[i]
		entityPosition := 0
		for j := range credit.Entities {
			entity := &credit.Entities[j]
			if entity.Name == "" {
				continue
			}
			node, err := tx.FindOrCreateNode(ctx, entityKind(entity.Model), entity.Name, entity.Differentiator)
			if err != nil {
				return err
			}
			err = tx.CreateEdge(ctx, &graph.Edge{
				Kind:     graph.EdgeHasWritingCredit,
				FromUUID: materialUUID,
				ToUUID:   node.UUID,
				Props: graph.Props{
					graph.PropCreditLabel:    credit.Name,
					graph.PropCreditKind:     creditKind(credit.CreditType),
					graph.PropCreditPosition: creditPosition,
					graph.PropEntityPosition: entityPosition,
				},
			})
			if err != nil {
				return err
			}
			entityPosition++
		}
		creditPosition++
	}

	position := 0
	for i := range material.SubMaterials {
		ref := &material.SubMaterials[i]
		if ref.empty() {
			continue
		}
		subUUID, err := ref.resolve(ctx, tx, graph.KindMaterial)
		if err != nil {
			return err
		}
		if err := tx.DeleteEdgesTo(ctx, subUUID, graph.EdgeHasSubMaterial); err != nil {
			return err
		}
		err = tx.CreateEdge(ctx, &graph.Edge{
			Kind:     graph.EdgeHasSubMaterial,
			FromUUID: materialUUID,
			ToUUID:   subUUID,
			Props:    graph.Props{graph.PropPosition: position},
		})
		if err != nil {
			return err
		}
		position++
	}

	for groupPosition := range material.CharacterGroups {
		group := &material.CharacterGroups[groupPosition]
		characterPosition := 0
		for j := range group.Characters {
			character := &group.Characters[j]
			if character.Name == "" {
				continue
			}

			canonical := character.UnderlyingName
			displayName := ""
			if canonical == "" {
				canonical = character.Name
			} else {
				displayName = character.Name
			}

			node, err := tx.FindOrCreateNode(ctx, graph.KindCharacter, canonical, character.Differentiator)
			if err != nil {
				return err
			}
			props := graph.Props{
				graph.PropGroupPosition: groupPosition,
				graph.PropPosition:      characterPosition,
			}
			if group.Name != "" {
				props[graph.PropGroupName] = group.Name
			}
			if displayName != "" {
				props[graph.PropDisplayName] = displayName
			}
			if character.Qualifier != "" {
				props[graph.PropQualifier] = character.Qualifier
			}
			err = tx.CreateEdge(ctx, &graph.Edge{
				Kind:     graph.EdgeHasCharacter,
				FromUUID: materialUUID,
				ToUUID:   node.UUID,
				Props:    props,
			})
			if err != nil {
				return err
			}
			characterPosition++
		}
	}
	return nil
}

// LoadMaterial rebuilds the edit shape from the store.
func LoadMaterial(ctx context.Context, store graph.Store, node *graph.Node) (*Material, error) {
	material := NewMaterial()
	material.UUID = node.UUID
	material.Name = node.Name
	material.Differentiator = node.Differentiator
	material.Format = node.Props.String(graph.PropFormat)
	material.Year = node.Props.IntOrZero(graph.PropYear)

	original, err := store.Neighbors(ctx, node.UUID, graph.EdgeSubsequentVersionOf, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if len(original) > 0 {
		material.OriginalVersionMaterial = &EntityRef{
			UUID:           original[0].Node.UUID,
			Name:           original[0].Node.Name,
			Differentiator: original[0].Node.Differentiator,
			Errors:         validate.NewBag(),
		}
	}

	credits, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasWritingCredit, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	material.WritingCredits = loadWritingCredits(credits)

	subs, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasSubMaterial, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortNeighborsByPosition(subs, graph.PropPosition)
	for _, neighbor := range subs {
		material.SubMaterials = append(material.SubMaterials, EntityRef{
			UUID:           neighbor.Node.UUID,
			Name:           neighbor.Node.Name,
			Differentiator: neighbor.Node.Differentiator,
			Errors:         validate.NewBag(),
		})
	}

	depictions, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasCharacter, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	material.CharacterGroups = loadCharacterGroups(depictions)
	return material, nil
}

// loadWritingCredits regroups stored credit edges into their submitted
// shape, ordered by credit then entity position.
func loadWritingCredits(neighbors []graph.Neighbor) []WritingCredit {
	sortNeighborsByPosition(neighbors, graph.PropEntityPosition)

	credits := []WritingCredit{}
	seen := make(map[int]bool)
	var order []int
	for _, neighbor := range neighbors {
		position := neighbor.Edge.Props.Position(graph.PropCreditPosition)
		if !seen[position] {
			seen[position] = true
			order = append(order, position)
		}
	}
	sort.Ints(order)

	for _, position := range order {
		credit := WritingCredit{Entities: []CreditEntityInput{}, Errors: validate.NewBag()}
		for _, neighbor := range neighbors {
			if neighbor.Edge.Props.Position(graph.PropCreditPosition) != position {
				continue
			}
			if credit.Name == "" {
				credit.Name = neighbor.Edge.Props.String(graph.PropCreditLabel)
			}
			if credit.CreditType == "" {
				credit.CreditType = neighbor.Edge.Props.String(graph.PropCreditKind)
			}
			credit.Entities = append(credit.Entities, CreditEntityInput{
				Model:          string(neighbor.Node.Kind),
				Name:           neighbor.Node.Name,
				Differentiator: neighbor.Node.Differentiator,
				Errors:         validate.NewBag(),
			})
		}
		credits = append(credits, credit)
	}
	return credits
}

// loadCharacterGroups regroups stored depiction edges into their submitted
// shape, ordered by group then depiction position.
func loadCharacterGroups(neighbors []graph.Neighbor) []CharacterGroupInput {
	sortNeighborsByPosition(neighbors, graph.PropPosition)

	groups := []CharacterGroupInput{}
	seen := make(map[int]bool)
	var order []int
	for _, neighbor := range neighbors {
		position := neighbor.Edge.Props.Position(graph.PropGroupPosition)
		if !seen[position] {
			seen[position] = true
			order = append(order, position)
		}
	}
	sort.Ints(order)

	for _, position := range order {
		group := CharacterGroupInput{Characters: []CharacterInput{}, Errors: validate.NewBag()}
		for _, neighbor := range neighbors {
			if neighbor.Edge.Props.Position(graph.PropGroupPosition) != position {
				continue
			}
			if group.Name == "" {
				group.Name = neighbor.Edge.Props.String(graph.PropGroupName)
			}

			displayName := neighbor.Edge.Props.String(graph.PropDisplayName)
			character := CharacterInput{
				Name:           neighbor.Node.Name,
				Differentiator: neighbor.Node.Differentiator,
				Qualifier:      neighbor.Edge.Props.String(graph.PropQualifier),
				Errors:         validate.NewBag(),
			}
			if displayName != "" {
				character.Name = displayName
				character.UnderlyingName = neighbor.Node.Name
			}
			group.Characters = append(group.Characters, character)
		}
		groups = append(groups, group)
	}
	return groups
}
