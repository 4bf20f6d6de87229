// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"
	"sort"
	"strings"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// Creditable assembles the show document for a person or company node.
// The two kinds share the whole code path; bucket routing is table-driven
// (perspective.go) and companies simply accrue no cast entries.
func (composer *Composer) Creditable(ctx context.Context, node *graph.Node) (*CreditableShow, error) {
	store := composer.store
	show := &CreditableShow{
		Model:          string(node.Kind),
		UUID:           node.UUID,
		Name:           node.Name,
		Differentiator: node.Differentiator,

		Materials:                  []MaterialCredit{},
		SubsequentVersionMaterials: []MaterialCredit{},
		SourcingMaterials:          []MaterialCredit{},
		RightsGrantorMaterials:     []MaterialCredit{},
		Productions:                []ProductionCredit{},
		ProducerProductions:        []ProductionCredit{},
		CreativeProductions:        []ProductionCredit{},
		CrewProductions:            []ProductionCredit{},
		ReviewedProductions:        []ProductionCredit{},
		Awards:                     []AwardBlock{},
	}

	if err := composer.fillMaterialBuckets(ctx, node, show); err != nil {
		return nil, err
	}
	if err := composer.fillCastBucket(ctx, node, show); err != nil {
		return nil, err
	}
	if err := composer.fillTeamBuckets(ctx, node, show); err != nil {
		return nil, err
	}
	if err := composer.fillReviewedBucket(ctx, node, show); err != nil {
		return nil, err
	}

	sortMaterialCredits(show.Materials)
	sortMaterialCredits(show.SubsequentVersionMaterials)
	sortMaterialCredits(show.SourcingMaterials)
	sortMaterialCredits(show.RightsGrantorMaterials)
	sortProductionCredits(show.Productions)
	sortProductionCredits(show.ProducerProductions)
	sortProductionCredits(show.CreativeProductions)
	sortProductionCredits(show.CrewProductions)
	sortProductionCredits(show.ReviewedProductions)

	var err error
	show.Awards, err = awardsFor(ctx, store, node)
	if err != nil {
		return nil, err
	}
	return show, nil
}

// fillMaterialBuckets routes the subject's writing credits into material
// buckets and derives the subsequent-version bucket from authorship.
func (composer *Composer) fillMaterialBuckets(ctx context.Context, subject *graph.Node, show *CreditableShow) error {
	store := composer.store
	neighbors, err := store.Neighbors(ctx, subject.UUID, graph.EdgeHasWritingCredit, graph.Incoming)
	if err != nil {
		return err
	}

	type bucketKey struct {
		uuid   string
		bucket creditableBucket
	}
	seen := make(map[bucketKey]bool)
	inMaterials := make(map[string]string) // material uuid → credit label

	for _, neighbor := range neighbors {
		if neighbor.Node.Kind != graph.KindMaterial {
			continue
		}
		bucket, ok := writingKindBuckets[neighbor.Edge.Props.String(graph.PropCreditKind)]
		if !ok {
			continue
		}
		key := bucketKey{uuid: neighbor.Node.UUID, bucket: bucket}
		if seen[key] {
			continue
		}
		seen[key] = true

		entry, err := composer.materialCreditEntry(ctx, subject, neighbor)
		if err != nil {
			return err
		}
		show.addMaterial(bucket, *entry)
		if bucket == bucketMaterials {
			inMaterials[neighbor.Node.UUID] = entry.CreditName
		}
	}

	// Authorship also surfaces the versions derived from the written material.
	for materialUUID, label := range inMaterials {
		versions, err := store.Neighbors(ctx, materialUUID, graph.EdgeSubsequentVersionOf, graph.Incoming)
		if err != nil {
			return err
		}
		for _, neighbor := range versions {
			if _, direct := inMaterials[neighbor.Node.UUID]; direct {
				continue
			}
			key := bucketKey{uuid: neighbor.Node.UUID, bucket: bucketSubsequentVersionMaterials}
			if seen[key] {
				continue
			}
			seen[key] = true

			link, err := materialLink(ctx, store, neighbor.Node, 1, true)
			if err != nil {
				return err
			}
			show.addMaterial(bucketSubsequentVersionMaterials, MaterialCredit{
				MaterialLink: *link,
				CreditName:   label,
			})
		}
	}
	return nil
}

// materialCreditEntry builds one material bucket entry from a writing-credit
// edge, resolving the routing company and, for company subjects, the
// credited members.
func (composer *Composer) materialCreditEntry(ctx context.Context, subject *graph.Node, neighbor graph.Neighbor) (*MaterialCredit, error) {
	link, err := materialLink(ctx, composer.store, neighbor.Node, 1, true)
	if err != nil {
		return nil, err
	}

	entry := &MaterialCredit{MaterialLink: *link}
	entry.CreditName = neighbor.Edge.Props.String(graph.PropCreditLabel)
	if entry.CreditName == "" {
		entry.CreditName = defaultWritingLabel
	}

	entry.CreditedCompany, err = composer.routingCompany(ctx, neighbor.Edge)
	if err != nil {
		return nil, err
	}
	if subject.Kind == graph.KindCompany {
		entry.CreditedMembers, err = composer.creditedMembers(ctx, neighbor.Node.UUID, graph.EdgeHasWritingCredit, subject.UUID, neighbor.Edge)
		if err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// fillCastBucket adds the subject's performances, with roles resolved
// against each production's material.
func (composer *Composer) fillCastBucket(ctx context.Context, subject *graph.Node, show *CreditableShow) error {
	store := composer.store
	neighbors, err := store.Neighbors(ctx, subject.UUID, graph.EdgeHasCastMember, graph.Incoming)
	if err != nil {
		return err
	}

	for _, neighbor := range neighbors {
		link, err := productionLink(ctx, store, neighbor.Node, 1)
		if err != nil {
			return err
		}
		entry := ProductionCredit{ProductionLink: *link}

		var catalogue []catalogueEntry
		material, err := composer.firstNeighbor(ctx, neighbor.Node.UUID, graph.EdgeProductionOf, graph.Outgoing)
		if err != nil {
			return err
		}
		if material != nil {
			catalogue, err = characterCatalogue(ctx, store, material.Node.UUID)
			if err != nil {
				return err
			}
		}
		for _, role := range parseRoles(neighbor.Edge.Props) {
			entry.Roles = append(entry.Roles, resolveRole(role, catalogue))
		}
		if len(entry.Roles) == 0 {
			entry.Roles = []Role{{Name: performerFallbackRole}}
		}
		show.addProduction(bucketCastProductions, entry)
	}
	return nil
}

// fillTeamBuckets routes the subject's team credits into the producer,
// creative, and crew buckets.
func (composer *Composer) fillTeamBuckets(ctx context.Context, subject *graph.Node, show *CreditableShow) error {
	store := composer.store
	neighbors, err := store.Neighbors(ctx, subject.UUID, graph.EdgeHasTeamCredit, graph.Incoming)
	if err != nil {
		return err
	}

	for _, neighbor := range neighbors {
		bucket, ok := teamCategoryBuckets[neighbor.Edge.Props.String(graph.PropCreditCategory)]
		if !ok {
			continue
		}

		link, err := productionLink(ctx, store, neighbor.Node, 1)
		if err != nil {
			return err
		}
		entry := ProductionCredit{ProductionLink: *link}
		entry.CreditName = neighbor.Edge.Props.String(graph.PropCreditLabel)
		if entry.CreditName == "" && bucket == bucketProducerProductions {
			entry.CreditName = defaultProducerLabel
		}

		entry.CreditedCompany, err = composer.routingCompany(ctx, neighbor.Edge)
		if err != nil {
			return err
		}
		if subject.Kind == graph.KindCompany {
			entry.CreditedMembers, err = composer.creditedMembers(ctx, neighbor.Node.UUID, graph.EdgeHasTeamCredit, subject.UUID, neighbor.Edge)
			if err != nil {
				return err
			}
		}
		show.addProduction(bucket, entry)
	}
	return nil
}

// fillReviewedBucket adds the productions the subject reviewed, as critic
// (person) or publication (company).
func (composer *Composer) fillReviewedBucket(ctx context.Context, subject *graph.Node, show *CreditableShow) error {
	neighbors, err := composer.store.Neighbors(ctx, subject.UUID, graph.EdgeHasReview, graph.Incoming)
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	for _, neighbor := range neighbors {
		if seen[neighbor.Node.UUID] {
			continue
		}
		seen[neighbor.Node.UUID] = true

		link, err := productionLink(ctx, composer.store, neighbor.Node, 1)
		if err != nil {
			return err
		}
		show.addProduction(bucketReviewedProductions, ProductionCredit{ProductionLink: *link})
	}
	return nil
}

// routingCompany resolves the company a credit is routed through, if any.
func (composer *Composer) routingCompany(ctx context.Context, edge *graph.Edge) (*CreditEntity, error) {
	companyUUID := edge.Props.String(graph.PropCreditedCompany)
	if companyUUID == "" {
		return nil, nil
	}
	company, err := composer.store.GetNode(ctx, companyUUID)
	if err != nil {
		return nil, err
	}
	entity := creditEntity(company)
	return &entity, nil
}

// creditedMembers finds the members credited alongside a company within the
// same credit: the host's sibling edges routed through the company at the
// company's credit position.
func (composer *Composer) creditedMembers(ctx context.Context, hostUUID string, kind graph.EdgeKind, companyUUID string, companyEdge *graph.Edge) ([]Ref, error) {
	siblings, err := composer.store.Neighbors(ctx, hostUUID, kind, graph.Outgoing)
	if err != nil {
		return nil, err
	}

	creditPosition := companyEdge.Props.Position(graph.PropCreditPosition)
	var slots []entitySlot
	for _, sibling := range siblings {
		if sibling.Edge.Props.String(graph.PropCreditedCompany) != companyUUID {
			continue
		}
		if sibling.Edge.Props.Position(graph.PropCreditPosition) != creditPosition {
			continue
		}
		slots = append(slots, entitySlot{
			node:     sibling.Node,
			position: sibling.Edge.Props.Position(graph.PropEntityPosition),
		})
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].position < slots[j].position })

	refs := make([]Ref, 0, len(slots))
	for _, slot := range slots {
		refs = append(refs, Ref{Model: string(slot.node.Kind), UUID: slot.node.UUID, Name: slot.node.Name})
	}
	return refs, nil
}

func sortMaterialCredits(entries []MaterialCredit) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

func sortProductionCredits(entries []ProductionCredit) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.StartDate != b.StartDate {
			if a.StartDate == "" {
				return false
			}
			if b.StartDate == "" {
				return true
			}
			return a.StartDate > b.StartDate
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}
