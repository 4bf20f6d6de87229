// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"
	"sort"
	"strings"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// Composer assembles aggregated show documents from the adjacency store.
// It holds no state beyond the store; every document is rebuilt from edges
// on each call.
type Composer struct {
	store graph.Store
}

// NewComposer returns a composer reading from the given store.
func NewComposer(store graph.Store) *Composer {
	return &Composer{store: store}
}

// List returns up to limit refs of a kind, ordered by name.
func (composer *Composer) List(ctx context.Context, kind graph.Kind, limit int) ([]Ref, error) {
	nodes, err := composer.store.ListNodes(ctx, kind, limit)
	if err != nil {
		return nil, err
	}

	refs := make([]Ref, 0, len(nodes))
	for _, node := range nodes {
		refs = append(refs, Ref{Model: string(node.Kind), UUID: node.UUID, Name: node.Name})
	}
	return refs, nil
}

// firstNeighbor returns the first edge of a kind in a direction, or nil.
func (composer *Composer) firstNeighbor(ctx context.Context, id string, kind graph.EdgeKind, direction graph.Direction) (*graph.Neighbor, error) {
	neighbors, err := composer.store.Neighbors(ctx, id, kind, direction)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return nil, nil
	}
	return &neighbors[0], nil
}

// sortProductionLinks orders production links newest first, then by name.
// Undated productions sort last.
func sortProductionLinks(links []ProductionLink) {
	sort.SliceStable(links, func(i, j int) bool {
		a, b := links[i], links[j]
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

// sortMaterialLinks orders material links newest first, then by name.
func sortMaterialLinks(links []MaterialLink) {
	sort.SliceStable(links, func(i, j int) bool {
		a, b := links[i], links[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}
