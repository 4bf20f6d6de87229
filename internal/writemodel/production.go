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

// Production is the production submission shape. Productions are the one
// kind whose associations point at them by uuid: names repeat across
// revivals, so sub-productions are submitted as uuid refs.
type Production struct {
	UUID      string `json:"uuid,omitempty"`
	Name      string `json:"name"`
	Subtitle  string `json:"subtitle,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	PressDate string `json:"pressDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	Material *EntityRef `json:"material,omitempty"`
	Venue    *EntityRef `json:"venue,omitempty"`
	Season   *EntityRef `json:"season,omitempty"`
	Festival *EntityRef `json:"festival,omitempty"`

	SubProductions []ProductionRef `json:"subProductions"`

	ProducerCredits []TeamCreditInput `json:"producerCredits"`
	Cast            []CastMemberInput `json:"cast"`
	CreativeCredits []TeamCreditInput `json:"creativeCredits"`
	CrewCredits     []TeamCreditInput `json:"crewCredits"`
	Reviews         []ReviewInput     `json:"reviews"`

	Errors validate.ErrorBag `json:"errors"`
}

// TeamCreditInput is one named producer/creative/crew credit.
type TeamCreditInput struct {
	Name     string            `json:"name,omitempty"`
	Entities []TeamEntityInput `json:"entities"`
	Errors   validate.ErrorBag `json:"errors"`
}

// TeamEntityInput is one credited entity within a team credit: a person
// (the default) or a company carrying the members credited through it.
type TeamEntityInput struct {
	Model          string            `json:"model,omitempty"`
	Name           string            `json:"name"`
	Differentiator string            `json:"differentiator,omitempty"`
	Members        []EntityRef       `json:"members,omitempty"`
	Errors         validate.ErrorBag `json:"errors"`
}

// CastMemberInput is one performer with their ordered roles.
type CastMemberInput struct {
	Name           string            `json:"name"`
	Differentiator string            `json:"differentiator,omitempty"`
	Roles          []RoleInput       `json:"roles"`
	Errors         validate.ErrorBag `json:"errors"`
}

// RoleInput is one performed role. CharacterName, when set, names the
// catalogue character the role resolves to when it differs from the role
// text itself.
type RoleInput struct {
	Name                    string            `json:"name"`
	CharacterName           string            `json:"characterName,omitempty"`
	CharacterDifferentiator string            `json:"characterDifferentiator,omitempty"`
	Qualifier               string            `json:"qualifier,omitempty"`
	IsAlternate             bool              `json:"isAlternate,omitempty"`
	Errors                  validate.ErrorBag `json:"errors"`
}

// ReviewInput is one review: url and date plus the publication and critic.
type ReviewInput struct {
	URL         string            `json:"url"`
	Date        string            `json:"date,omitempty"`
	Publication EntityRef         `json:"publication"`
	Critic      EntityRef         `json:"critic"`
	Errors      validate.ErrorBag `json:"errors"`
}

// NewProduction returns the seeded shape for the "new" endpoint.
func NewProduction() *Production {
	return &Production{
		Material:        &EntityRef{Errors: validate.NewBag()},
		Venue:           &EntityRef{Errors: validate.NewBag()},
		Season:          &EntityRef{Errors: validate.NewBag()},
		Festival:        &EntityRef{Errors: validate.NewBag()},
		SubProductions:  []ProductionRef{},
		ProducerCredits: []TeamCreditInput{},
		Cast:            []CastMemberInput{},
		CreativeCredits: []TeamCreditInput{},
		CrewCredits:     []TeamCreditInput{},
		Reviews:         []ReviewInput{},
		Errors:          validate.NewBag(),
	}
}

// Trim normalises all submitted strings and initialises every error bag.
func (production *Production) Trim() {
	production.Name = names.Clean(production.Name)
	production.Subtitle = names.Clean(production.Subtitle)
	production.StartDate = names.Clean(production.StartDate)
	production.PressDate = names.Clean(production.PressDate)
	production.EndDate = names.Clean(production.EndDate)
	production.Errors = validate.Ensure(production.Errors)

	for _, ref := range []**EntityRef{&production.Material, &production.Venue, &production.Season, &production.Festival} {
		if *ref == nil {
			*ref = &EntityRef{}
		}
		(*ref).trim()
	}

	if production.SubProductions == nil {
		production.SubProductions = []ProductionRef{}
	}
	for i := range production.SubProductions {
		production.SubProductions[i].trim()
	}

	for _, credits := range [][]TeamCreditInput{production.ProducerCredits, production.CreativeCredits, production.CrewCredits} {
		for i := range credits {
			credit := &credits[i]
			credit.Name = names.Clean(credit.Name)
			credit.Errors = validate.Ensure(credit.Errors)
			for j := range credit.Entities {
				entity := &credit.Entities[j]
				entity.Name = names.Clean(entity.Name)
				entity.Differentiator = names.Clean(entity.Differentiator)
				entity.Errors = validate.Ensure(entity.Errors)
				for k := range entity.Members {
					entity.Members[k].trim()
				}
			}
		}
	}
	if production.ProducerCredits == nil {
		production.ProducerCredits = []TeamCreditInput{}
	}
	if production.CreativeCredits == nil {
		production.CreativeCredits = []TeamCreditInput{}
	}
	if production.CrewCredits == nil {
		production.CrewCredits = []TeamCreditInput{}
	}

	if production.Cast == nil {
		production.Cast = []CastMemberInput{}
	}
	for i := range production.Cast {
		member := &production.Cast[i]
		member.Name = names.Clean(member.Name)
		member.Differentiator = names.Clean(member.Differentiator)
		member.Errors = validate.Ensure(member.Errors)
		for j := range member.Roles {
			role := &member.Roles[j]
			role.Name = names.Clean(role.Name)
			role.CharacterName = names.Clean(role.CharacterName)
			role.CharacterDifferentiator = names.Clean(role.CharacterDifferentiator)
			role.Qualifier = names.Clean(role.Qualifier)
			role.Errors = validate.Ensure(role.Errors)
		}
	}

	if production.Reviews == nil {
		production.Reviews = []ReviewInput{}
	}
	for i := range production.Reviews {
		review := &production.Reviews[i]
		review.URL = names.Clean(review.URL)
		review.Date = names.Clean(review.Date)
		review.Publication.trim()
		review.Critic.trim()
		review.Errors = validate.Ensure(review.Errors)
	}
}

// Validate populates the error bags. Productions sit outside the store
// uniqueness constraint, so only field and association checks apply. Only
// infrastructure failures return an error.
func (production *Production) Validate(ctx context.Context, store graph.Store) error {
	production.Errors.Required("name", production.Name).MaxLen("name", production.Name)
	production.Errors.MaxLen("subtitle", production.Subtitle)

	for _, ref := range []*EntityRef{production.Material, production.Venue, production.Season, production.Festival} {
		ref.validateLengths()
	}

	seenSubs := make(map[string]bool)
	subRefs := make([]*ProductionRef, 0, len(production.SubProductions))
	for i := range production.SubProductions {
		ref := &production.SubProductions[i]
		subRefs = append(subRefs, ref)
		if ref.empty() {
			continue
		}
		if production.UUID != "" && ref.UUID == production.UUID {
			ref.Errors.Add("uuid", validate.MsgSelfReference)
		}
		if seenSubs[ref.UUID] {
			ref.Errors.Add("uuid", validate.MsgDuplicate)
			continue
		}
		seenSubs[ref.UUID] = true
	}
	if err := flagMissingProductions(ctx, store, subRefs); err != nil {
		return err
	}

	for _, credits := range [][]TeamCreditInput{production.ProducerCredits, production.CreativeCredits, production.CrewCredits} {
		for i := range credits {
			credit := &credits[i]
			credit.Errors.MaxLen("name", credit.Name)

			seen := make(map[string]bool)
			for j := range credit.Entities {
				entity := &credit.Entities[j]
				entity.Errors.MaxLen("name", entity.Name)
				entity.Errors.MaxLen("differentiator", entity.Differentiator)

				memberRefs := make([]*EntityRef, 0, len(entity.Members))
				for k := range entity.Members {
					member := &entity.Members[k]
					member.validateLengths()
					memberRefs = append(memberRefs, member)
				}
				flagDuplicates(memberRefs)

				if entity.Name == "" {
					continue
				}
				key := entity.Model + "\x00" + entity.Name + "\x00" + entity.Differentiator
				if seen[key] {
					entity.Errors.DuplicateInGroup()
					continue
				}
				seen[key] = true
			}
		}
	}

	seenCast := make(map[identity]bool)
	for i := range production.Cast {
		member := &production.Cast[i]
		member.Errors.MaxLen("name", member.Name)
		member.Errors.MaxLen("differentiator", member.Differentiator)

		seenRoles := make(map[string]bool)
		for j := range member.Roles {
			role := &member.Roles[j]
			role.Errors.MaxLen("name", role.Name)
			role.Errors.MaxLen("characterName", role.CharacterName)
			role.Errors.MaxLen("characterDifferentiator", role.CharacterDifferentiator)
			role.Errors.MaxLen("qualifier", role.Qualifier)
			if role.Name == "" {
				continue
			}
			key := role.Name + "\x00" + role.Qualifier
			if seenRoles[key] {
				role.Errors.Add("name", validate.MsgDuplicate)
				continue
			}
			seenRoles[key] = true
		}

		if member.Name == "" {
			continue
		}
		key := identity{member.Name, member.Differentiator}
		if seenCast[key] {
			member.Errors.DuplicateInGroup()
			continue
		}
		seenCast[key] = true
	}

	for i := range production.Reviews {
		review := &production.Reviews[i]
		review.Errors.Required("url", review.URL).MaxLen("url", review.URL)
		review.Publication.validateLengths()
		review.Critic.validateLengths()
	}
	return nil
}

// HasErrors reports whether validation flagged anything, on the instance or
// any nested item.
func (production *Production) HasErrors() bool {
	if !production.Errors.IsEmpty() {
		return true
	}
	for _, ref := range []*EntityRef{production.Material, production.Venue, production.Season, production.Festival} {
		if ref != nil && !ref.Errors.IsEmpty() {
			return true
		}
	}
	for i := range production.SubProductions {
		if !production.SubProductions[i].Errors.IsEmpty() {
			return true
		}
	}
	for _, credits := range [][]TeamCreditInput{production.ProducerCredits, production.CreativeCredits, production.CrewCredits} {
		for i := range credits {
			credit := &credits[i]
			if !credit.Errors.IsEmpty() {
				return true
			}
			for j := range credit.Entities {
				entity := &credit.Entities[j]
				if !entity.Errors.IsEmpty() {
					return true
				}
				for k := range entity.Members {
					if !entity.Members[k].Errors.IsEmpty() {
						return true
					}
				}
			}
		}
	}
	for i := range production.Cast {
		member := &production.Cast[i]
		if !member.Errors.IsEmpty() {
			return true
		}
		for j := range member.Roles {
			if !member.Roles[j].Errors.IsEmpty() {
				return true
			}
		}
	}
	for i := range production.Reviews {
		review := &production.Reviews[i]
		if !review.Errors.IsEmpty() || !review.Publication.Errors.IsEmpty() || !review.Critic.Errors.IsEmpty() {
			return true
		}
	}
	return false
}

// Node builds the storable node for a create or update.
func (production *Production) Node() *graph.Node {
	props := graph.Props{}
	for key, value := range map[string]string{
		graph.PropSubtitle:  production.Subtitle,
		graph.PropStartDate: production.StartDate,
		graph.PropPressDate: production.PressDate,
		graph.PropEndDate:   production.EndDate,
	} {
		if value != "" {
			props[key] = value
		}
	}
	return &graph.Node{
		UUID:  production.UUID,
		Kind:  graph.KindProduction,
		Name:  production.Name,
		Props: props,
	}
}

// Save replaces the production's relationship edges from the submission.
func (production *Production) Save(ctx context.Context, tx graph.Store, productionUUID string) error {
	err := tx.DeleteEdgesFrom(ctx, productionUUID,
		graph.EdgeProductionOf,
		graph.EdgePlaysAt,
		graph.EdgePartOfSeason,
		graph.EdgePartOfFestival,
		graph.EdgeHasSubProduction,
		graph.EdgeHasTeamCredit,
		graph.EdgeHasCastMember,
		graph.EdgeHasReview,
	)
	if err != nil {
		return err
	}

	singles := []struct {
		ref  *EntityRef
		kind graph.Kind
		edge graph.EdgeKind
	}{
		{production.Material, graph.KindMaterial, graph.EdgeProductionOf},
		{production.Venue, graph.KindVenue, graph.EdgePlaysAt},
		{production.Season, graph.KindSeason, graph.EdgePartOfSeason},
		{production.Festival, graph.KindFestival, graph.EdgePartOfFestival},
	}
	for _, single := range singles {
		if single.ref.empty() {
			continue
		}
		targetUUID, err := single.ref.resolve(ctx, tx, single.kind)
		if err != nil {
			return err
		}
		err = tx.CreateEdge(ctx, &graph.Edge{Kind: single.edge, FromUUID: productionUUID, ToUUID: targetUUID})
		if err != nil {
			return err
		}
	}

	position := 0
	for i := range production.SubProductions {
		ref := &production.SubProductions[i]
		if ref.empty() {
			continue
		}
		sub, err := tx.GetNode(ctx, ref.UUID)
		if err != nil {
			// A ref deleted between Validate and Save is dropped, not fatal.
			if errors.Is(err, dberr.ErrNotFound) {
				continue
			}
			return err
		}
		if sub.Kind != graph.KindProduction {
			continue
		}
		if err := tx.DeleteEdgesTo(ctx, sub.UUID, graph.EdgeHasSubProduction); err != nil {
			return err
		}
		err = tx.CreateEdge(ctx, &graph.Edge{
			Kind:     graph.EdgeHasSubProduction,
			FromUUID: productionUUID,
			ToUUID:   sub.UUID,
			Props:    graph.Props{graph.PropPosition: position},
		})
		if err != nil {
			return err
		}
		position++
	}

	teamLists := []struct {
		credits  []TeamCreditInput
		category string
	}{
		{production.ProducerCredits, graph.CreditCategoryProducer},
		{production.CreativeCredits, graph.CreditCategoryCreative},
		{production.CrewCredits, graph.CreditCategoryCrew},
	}
	for _, list := range teamLists {
		if err := production.saveTeamCredits(ctx, tx, productionUUID, list.credits, list.category); err != nil {
			return err
		}
	}

	if err := production.saveCast(ctx, tx, productionUUID); err != nil {
		return err
	}
	return production.saveReviews(ctx, tx, productionUUID)
}

func (production *Production) saveTeamCredits(ctx context.Context, tx graph.Store, productionUUID string, credits []TeamCreditInput, category string) error {
	for creditPosition := range credits {
		credit := &credits[creditPosition]
		entityPosition := 0
		for j := range credit.Entities {
			entity := &credit.Entities[j]
			if entity.Name == "" {
				continue
			}
			kind := entityKind(entity.Model)
			if kind == graph.KindMaterial {
				kind = graph.KindPerson // materials cannot hold team credits
			}
			node, err := tx.FindOrCreateNode(ctx, kind, entity.Name, entity.Differentiator)
			if err != nil {
				return err
			}
			err = tx.CreateEdge(ctx, &graph.Edge{
				Kind:     graph.EdgeHasTeamCredit,
				FromUUID: productionUUID,
				ToUUID:   node.UUID,
				Props: graph.Props{
					graph.PropCreditCategory: category,
					graph.PropCreditLabel:    credit.Name,
					graph.PropCreditPosition: creditPosition,
					graph.PropEntityPosition: entityPosition,
				},
			})
			if err != nil {
				return err
			}
			entityPosition++

			if kind != graph.KindCompany {
				continue
			}
			memberPosition := 0
			for k := range entity.Members {
				member := &entity.Members[k]
				if member.empty() {
					continue
				}
				memberUUID, err := member.resolve(ctx, tx, graph.KindPerson)
				if err != nil {
					return err
				}
				err = tx.CreateEdge(ctx, &graph.Edge{
					Kind:     graph.EdgeHasTeamCredit,
					FromUUID: productionUUID,
					ToUUID:   memberUUID,
					Props: graph.Props{
						graph.PropCreditCategory:  category,
						graph.PropCreditLabel:     credit.Name,
						graph.PropCreditPosition:  creditPosition,
						graph.PropEntityPosition:  memberPosition,
						graph.PropCreditedCompany: node.UUID,
					},
				})
				if err != nil {
					return err
				}
				memberPosition++
			}
		}
	}
	return nil
}

func (production *Production) saveCast(ctx context.Context, tx graph.Store, productionUUID string) error {
	position := 0
	for i := range production.Cast {
		member := &production.Cast[i]
		if member.Name == "" {
			continue
		}
		node, err := tx.FindOrCreateNode(ctx, graph.KindPerson, member.Name, member.Differentiator)
		if err != nil {
			return err
		}

		roles := make([]map[string]any, 0, len(member.Roles))
		for j := range member.Roles {
			role := &member.Roles[j]
			if role.Name == "" {
				continue
			}
			entry := map[string]any{graph.RoleKeyName: role.Name}
			if role.CharacterName != "" {
				entry[graph.RoleKeyCharacterName] = role.CharacterName
			}
			if role.CharacterDifferentiator != "" {
				entry[graph.RoleKeyCharacterDifferentiator] = role.CharacterDifferentiator
			}
			if role.Qualifier != "" {
				entry[graph.RoleKeyQualifier] = role.Qualifier
			}
			if role.IsAlternate {
				entry[graph.RoleKeyIsAlternate] = true
			}
			roles = append(roles, entry)
		}

		err = tx.CreateEdge(ctx, &graph.Edge{
			Kind:     graph.EdgeHasCastMember,
			FromUUID: productionUUID,
			ToUUID:   node.UUID,
			Props: graph.Props{
				graph.PropPosition: position,
				graph.PropRoles:    roles,
			},
		})
		if err != nil {
			return err
		}
		position++
	}
	return nil
}

// saveReviews writes each review as an edge pair sharing one position: one
// to the publication company, one to the critic person.
func (production *Production) saveReviews(ctx context.Context, tx graph.Store, productionUUID string) error {
	position := 0
	for i := range production.Reviews {
		review := &production.Reviews[i]
		if review.URL == "" {
			continue
		}
		props := graph.Props{
			graph.PropURL:      review.URL,
			graph.PropPosition: position,
		}
		if review.Date != "" {
			props[graph.PropDate] = review.Date
		}

		targets := []struct {
			ref  *EntityRef
			kind graph.Kind
		}{
			{&review.Publication, graph.KindCompany},
			{&review.Critic, graph.KindPerson},
		}
		for _, target := range targets {
			if target.ref.empty() {
				continue
			}
			targetUUID, err := target.ref.resolve(ctx, tx, target.kind)
			if err != nil {
				return err
			}
			err = tx.CreateEdge(ctx, &graph.Edge{
				Kind:     graph.EdgeHasReview,
				FromUUID: productionUUID,
				ToUUID:   targetUUID,
				Props:    props.Clone(),
			})
			if err != nil {
				return err
			}
		}
		position++
	}
	return nil
}

// LoadProduction rebuilds the edit shape from the store.
func LoadProduction(ctx context.Context, store graph.Store, node *graph.Node) (*Production, error) {
	production := NewProduction()
	production.UUID = node.UUID
	production.Name = node.Name
	production.Subtitle = node.Props.String(graph.PropSubtitle)
	production.StartDate = node.Props.String(graph.PropStartDate)
	production.PressDate = node.Props.String(graph.PropPressDate)
	production.EndDate = node.Props.String(graph.PropEndDate)

	singles := []struct {
		ref  *EntityRef
		edge graph.EdgeKind
	}{
		{production.Material, graph.EdgeProductionOf},
		{production.Venue, graph.EdgePlaysAt},
		{production.Season, graph.EdgePartOfSeason},
		{production.Festival, graph.EdgePartOfFestival},
	}
	for _, single := range singles {
		neighbors, err := store.Neighbors(ctx, node.UUID, single.edge, graph.Outgoing)
		if err != nil {
			return nil, err
		}
		if len(neighbors) > 0 {
			single.ref.UUID = neighbors[0].Node.UUID
			single.ref.Name = neighbors[0].Node.Name
			single.ref.Differentiator = neighbors[0].Node.Differentiator
		}
	}

	subs, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasSubProduction, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortNeighborsByPosition(subs, graph.PropPosition)
	for _, neighbor := range subs {
		production.SubProductions = append(production.SubProductions, ProductionRef{
			UUID:   neighbor.Node.UUID,
			Errors: validate.NewBag(),
		})
	}

	team, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasTeamCredit, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	production.ProducerCredits = loadTeamCredits(team, graph.CreditCategoryProducer)
	production.CreativeCredits = loadTeamCredits(team, graph.CreditCategoryCreative)
	production.CrewCredits = loadTeamCredits(team, graph.CreditCategoryCrew)

	cast, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasCastMember, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortNeighborsByPosition(cast, graph.PropPosition)
	for _, neighbor := range cast {
		member := CastMemberInput{
			Name:           neighbor.Node.Name,
			Differentiator: neighbor.Node.Differentiator,
			Roles:          []RoleInput{},
			Errors:         validate.NewBag(),
		}
		for _, raw := range neighbor.Edge.Props.Maps(graph.PropRoles) {
			member.Roles = append(member.Roles, RoleInput{
				Name:                    raw.String(graph.RoleKeyName),
				CharacterName:           raw.String(graph.RoleKeyCharacterName),
				CharacterDifferentiator: raw.String(graph.RoleKeyCharacterDifferentiator),
				Qualifier:               raw.String(graph.RoleKeyQualifier),
				IsAlternate:             raw.Bool(graph.RoleKeyIsAlternate),
				Errors:                  validate.NewBag(),
			})
		}
		production.Cast = append(production.Cast, member)
	}

	reviews, err := store.Neighbors(ctx, node.UUID, graph.EdgeHasReview, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	production.Reviews = loadReviews(reviews)
	return production, nil
}

// loadTeamCredits regroups one category of stored team-credit edges into
// their submitted shape.
func loadTeamCredits(neighbors []graph.Neighbor, category string) []TeamCreditInput {
	filtered := make([]graph.Neighbor, 0, len(neighbors))
	for _, neighbor := range neighbors {
		if neighbor.Edge.Props.String(graph.PropCreditCategory) == category {
			filtered = append(filtered, neighbor)
		}
	}
	sortNeighborsByPosition(filtered, graph.PropEntityPosition)

	seen := make(map[int]bool)
	var order []int
	for _, neighbor := range filtered {
		position := neighbor.Edge.Props.Position(graph.PropCreditPosition)
		if !seen[position] {
			seen[position] = true
			order = append(order, position)
		}
	}
	sort.Ints(order)

	credits := []TeamCreditInput{}
	for _, position := range order {
		credit := TeamCreditInput{Entities: []TeamEntityInput{}, Errors: validate.NewBag()}
		companyIndex := make(map[string]int)

		for _, neighbor := range filtered {
			if neighbor.Edge.Props.Position(graph.PropCreditPosition) != position {
				continue
			}
			if credit.Name == "" {
				credit.Name = neighbor.Edge.Props.String(graph.PropCreditLabel)
			}
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
				companyIndex[neighbor.Node.UUID] = len(credit.Entities)
			}
			credit.Entities = append(credit.Entities, entity)
		}

		for _, neighbor := range filtered {
			if neighbor.Edge.Props.Position(graph.PropCreditPosition) != position {
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
			credit.Entities[at].Members = append(credit.Entities[at].Members, EntityRef{
				UUID:           neighbor.Node.UUID,
				Name:           neighbor.Node.Name,
				Differentiator: neighbor.Node.Differentiator,
				Errors:         validate.NewBag(),
			})
		}
		credits = append(credits, credit)
	}
	return credits
}

// loadReviews pairs stored review edges by position back into their
// submitted shape.
func loadReviews(neighbors []graph.Neighbor) []ReviewInput {
	sortNeighborsByPosition(neighbors, graph.PropPosition)

	reviews := []ReviewInput{}
	index := make(map[int]int)
	for _, neighbor := range neighbors {
		position := neighbor.Edge.Props.Position(graph.PropPosition)
		at, ok := index[position]
		if !ok {
			reviews = append(reviews, ReviewInput{
				URL:         neighbor.Edge.Props.String(graph.PropURL),
				Date:        neighbor.Edge.Props.String(graph.PropDate),
				Publication: EntityRef{Errors: validate.NewBag()},
				Critic:      EntityRef{Errors: validate.NewBag()},
				Errors:      validate.NewBag(),
			})
			at = len(reviews) - 1
			index[position] = at
		}
		ref := EntityRef{
			UUID:           neighbor.Node.UUID,
			Name:           neighbor.Node.Name,
			Differentiator: neighbor.Node.Differentiator,
			Errors:         validate.NewBag(),
		}
		switch neighbor.Node.Kind {
		case graph.KindCompany:
			reviews[at].Publication = ref
		case graph.KindPerson:
			reviews[at].Critic = ref
		}
	}
	return reviews
}
