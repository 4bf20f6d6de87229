// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package view

import (
	"context"
	"sort"

	"github.com/tamsinleach/dramatis/internal/graph"
)

// Hierarchy depth caps. Productions and materials nest two tiers in either
// direction from the subject; venues nest one.
const (
	productionDepth = 2
	materialDepth   = 2
)

// sortByProp stably sorts neighbors by an integer position property.
// Missing and malformed positions sort last, in insertion order.
func sortByProp(neighbors []graph.Neighbor, key string) {
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Edge.Props.Position(key) < neighbors[j].Edge.Props.Position(key)
	})
}

// surOf returns the node's single hierarchical parent, or nil at the root.
// Multiple parents are not modelled; the first stored edge wins.
func surOf(ctx context.Context, store graph.Store, id string, kind graph.EdgeKind) (*graph.Node, error) {
	neighbors, err := store.Neighbors(ctx, id, kind, graph.Incoming)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return nil, nil
	}
	return neighbors[0].Node, nil
}

// # Venues

func venueRef(node *graph.Node) *Ref {
	return &Ref{Model: string(graph.KindVenue), UUID: node.UUID, Name: node.Name}
}

// venueLink builds a venue with its single tier of ancestry.
func venueLink(ctx context.Context, store graph.Store, node *graph.Node) (*VenueLink, error) {
	link := &VenueLink{Model: string(graph.KindVenue), UUID: node.UUID, Name: node.Name}

	sur, err := surOf(ctx, store, node.UUID, graph.EdgeHasSubVenue)
	if err != nil {
		return nil, err
	}
	if sur != nil {
		link.SurVenue = venueRef(sur)
	}
	return link, nil
}

// subVenues returns a venue's ordered sub-venue refs.
func subVenues(ctx context.Context, store graph.Store, id string) ([]Ref, error) {
	neighbors, err := store.Neighbors(ctx, id, graph.EdgeHasSubVenue, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortByProp(neighbors, graph.PropPosition)

	refs := make([]Ref, 0, len(neighbors))
	for _, neighbor := range neighbors {
		refs = append(refs, *venueRef(neighbor.Node))
	}
	return refs, nil
}

// # Productions

// productionLink builds a production link with its venue and sur ancestry up
// to the given depth. Depth zero stops the ancestry climb.
func productionLink(ctx context.Context, store graph.Store, node *graph.Node, depth int) (*ProductionLink, error) {
	link := &ProductionLink{
		Model:     string(graph.KindProduction),
		UUID:      node.UUID,
		Name:      node.Name,
		StartDate: node.Props.String(graph.PropStartDate),
		EndDate:   node.Props.String(graph.PropEndDate),
	}

	venues, err := store.Neighbors(ctx, node.UUID, graph.EdgePlaysAt, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	if len(venues) > 0 {
		link.Venue, err = venueLink(ctx, store, venues[0].Node)
		if err != nil {
			return nil, err
		}
	}

	if depth > 0 {
		sur, err := surOf(ctx, store, node.UUID, graph.EdgeHasSubProduction)
		if err != nil {
			return nil, err
		}
		if sur != nil {
			link.SurProduction, err = productionLink(ctx, store, sur, depth-1)
			if err != nil {
				return nil, err
			}
		}
	}
	return link, nil
}

// subProductionTree builds a production's ordered descendants down to the
// given depth. Descendant links do not repeat the ancestry they hang from.
func subProductionTree(ctx context.Context, store graph.Store, id string, depth int) ([]ProductionLink, error) {
	if depth <= 0 {
		return []ProductionLink{}, nil
	}

	neighbors, err := store.Neighbors(ctx, id, graph.EdgeHasSubProduction, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortByProp(neighbors, graph.PropPosition)

	links := make([]ProductionLink, 0, len(neighbors))
	for _, neighbor := range neighbors {
		link, err := productionLink(ctx, store, neighbor.Node, 0)
		if err != nil {
			return nil, err
		}
		link.SubProductions, err = subProductionTree(ctx, store, neighbor.Node.UUID, depth-1)
		if err != nil {
			return nil, err
		}
		if len(link.SubProductions) == 0 {
			link.SubProductions = nil
		}
		links = append(links, *link)
	}
	return links, nil
}

// # Materials

// materialLink builds a material link with sur ancestry up to the given
// depth. withCredits embeds the material's writing credits for byline
// display in host documents.
func materialLink(ctx context.Context, store graph.Store, node *graph.Node, depth int, withCredits bool) (*MaterialLink, error) {
	link := &MaterialLink{
		Model:  string(graph.KindMaterial),
		UUID:   node.UUID,
		Name:   node.Name,
		Format: node.Props.String(graph.PropFormat),
		Year:   node.Props.IntOrZero(graph.PropYear),
	}

	if withCredits {
		credits, err := writingCredits(ctx, store, node.UUID)
		if err != nil {
			return nil, err
		}
		link.WritingCredits = credits
	}

	if depth > 0 {
		sur, err := surOf(ctx, store, node.UUID, graph.EdgeHasSubMaterial)
		if err != nil {
			return nil, err
		}
		if sur != nil {
			link.SurMaterial, err = materialLink(ctx, store, sur, depth-1, withCredits)
			if err != nil {
				return nil, err
			}
		}
	}
	return link, nil
}

// subMaterialTree builds a material's ordered descendants down to the given
// depth.
func subMaterialTree(ctx context.Context, store graph.Store, id string, depth int, withCredits bool) ([]MaterialLink, error) {
	if depth <= 0 {
		return []MaterialLink{}, nil
	}

	neighbors, err := store.Neighbors(ctx, id, graph.EdgeHasSubMaterial, graph.Outgoing)
	if err != nil {
		return nil, err
	}
	sortByProp(neighbors, graph.PropPosition)

	links := make([]MaterialLink, 0, len(neighbors))
	for _, neighbor := range neighbors {
		link, err := materialLink(ctx, store, neighbor.Node, 0, withCredits)
		if err != nil {
			return nil, err
		}
		link.SubMaterials, err = subMaterialTree(ctx, store, neighbor.Node.UUID, depth-1, withCredits)
		if err != nil {
			return nil, err
		}
		if len(link.SubMaterials) == 0 {
			link.SubMaterials = nil
		}
		links = append(links, *link)
	}
	return links, nil
}
