// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

/*
Package graph models the catalogue as an adjacency-queryable store.

Every catalogue record is a Node identified by (kind, name, differentiator)
and addressed by uuid; every relationship — hierarchy, credit, cast, review,
nomination — is an Edge carrying its attributes (labels, ordering positions)
as properties. The aggregation engine in internal/view is written as plain
traversal code over [Store.Neighbors] rather than as opaque query strings,
which keeps each resolver unit-testable against the in-memory implementation.

Two implementations exist: [PostgresStore] (production) and [MemoryStore]
(tests). Both enforce the (kind, name, differentiator) uniqueness constraint
and both preserve edge insertion order within [Store.Neighbors] results;
display ordering is always re-derived from stored position properties, never
from insertion order.
*/
package graph

import "context"

// Kind identifies a node's entity kind.
type Kind string

// Node kinds.
const (
	KindProduction    Kind = "PRODUCTION"
	KindMaterial      Kind = "MATERIAL"
	KindVenue         Kind = "VENUE"
	KindPerson        Kind = "PERSON"
	KindCompany       Kind = "COMPANY"
	KindCharacter     Kind = "CHARACTER"
	KindAward         Kind = "AWARD"
	KindAwardCeremony Kind = "AWARD_CEREMONY"
	KindCategory      Kind = "AWARD_CEREMONY_CATEGORY"
	KindSeason        Kind = "SEASON"
	KindFestival      Kind = "FESTIVAL"
)

// EdgeKind identifies a relationship kind.
type EdgeKind string

// Edge kinds, noted from → to.
const (
	// Hierarchy (sur → sub), props: position.
	EdgeHasSubProduction EdgeKind = "HAS_SUB_PRODUCTION"
	EdgeHasSubMaterial   EdgeKind = "HAS_SUB_MATERIAL"
	EdgeHasSubVenue      EdgeKind = "HAS_SUB_VENUE"

	// Production context.
	EdgePlaysAt        EdgeKind = "PLAYS_AT"         // production → venue
	EdgeProductionOf   EdgeKind = "PRODUCTION_OF"    // production → material
	EdgePartOfSeason   EdgeKind = "PART_OF_SEASON"   // production → season
	EdgePartOfFestival EdgeKind = "PART_OF_FESTIVAL" // production → festival

	// Material relationships.
	EdgeHasWritingCredit    EdgeKind = "HAS_WRITING_CREDIT"    // material → person/company/material
	EdgeSubsequentVersionOf EdgeKind = "SUBSEQUENT_VERSION_OF" // material → original material
	EdgeHasCharacter        EdgeKind = "HAS_CHARACTER"         // material → character

	// Production credits.
	EdgeHasTeamCredit EdgeKind = "HAS_TEAM_CREDIT" // production → person/company
	EdgeHasCastMember EdgeKind = "HAS_CAST_MEMBER" // production → person
	EdgeHasReview     EdgeKind = "HAS_REVIEW"      // production → company (publication) / person (critic), paired by position

	// Awards.
	EdgePresentedBy EdgeKind = "PRESENTED_BY" // ceremony → award
	EdgeHasCategory EdgeKind = "HAS_CATEGORY" // ceremony → category
	EdgeHasNominee  EdgeKind = "HAS_NOMINEE"  // category → person/company/production/material
)

// UniquenessExempt reports whether a kind sits outside the
// (kind, name, differentiator) uniqueness constraint.
//
// Productions repeat names across revivals and are always addressed by
// uuid. Ceremonies repeat names ("2020") across awards; their uniqueness
// is name-within-award, checked at the service layer. Categories are
// structural children of one ceremony and repeat across ceremonies.
func UniquenessExempt(kind Kind) bool {
	switch kind {
	case KindProduction, KindAwardCeremony, KindCategory:
		return true
	}
	return false
}

// Direction selects which end of an edge the queried node occupies.
type Direction int

const (
	// Outgoing follows edges where the queried node is the source.
	Outgoing Direction = iota
	// Incoming follows edges where the queried node is the target.
	Incoming
)

// Node is a catalogue record.
type Node struct {
	UUID string
	Kind Kind

	// Name and Differentiator form the record's identity within its kind.
	// Differentiator defaults to the empty string; two records with equal
	// names and empty differentiators collide.
	Name           string
	Differentiator string

	// Props holds kind-specific scalar fields (subtitle, dates, format, year).
	Props Props
}

// Edge is a relationship between two nodes.
type Edge struct {
	Kind     EdgeKind
	FromUUID string
	ToUUID   string

	// Props holds relationship attributes: ordering positions, credit
	// labels, role lists, winner flags.
	Props Props
}

// Neighbor pairs an edge with the node at its far end relative to the
// queried node. Returning both halves saves the resolvers an extra node
// lookup per edge.
type Neighbor struct {
	Edge *Edge
	Node *Node
}

// Store is the adjacency interface every resolver and service depends on.
//
// All methods accept a context and return infrastructure failures as
// errors; absence is signalled by (nil, nil) from FindNode and by
// dberr.ErrNotFound from GetNode.
type Store interface {
	// CreateNode persists a new node, assigning a uuid when none is set.
	CreateNode(ctx context.Context, node *Node) error

	// GetNode fetches a node by uuid. Returns dberr.ErrNotFound when absent.
	GetNode(ctx context.Context, uuid string) (*Node, error)

	// FindNode fetches a node by identity. Returns (nil, nil) when absent.
	FindNode(ctx context.Context, kind Kind, name, differentiator string) (*Node, error)

	// FindOrCreateNode merges a node by identity: within one transaction a
	// name it has already created is returned, never duplicated.
	FindOrCreateNode(ctx context.Context, kind Kind, name, differentiator string) (*Node, error)

	// UpdateNode replaces a node's name, differentiator, and props.
	UpdateNode(ctx context.Context, node *Node) error

	// DeleteNode removes a node and all edges touching it.
	DeleteNode(ctx context.Context, uuid string) error

	// ListNodes returns up to limit nodes of a kind, ordered by name ascending.
	ListNodes(ctx context.Context, kind Kind, limit int) ([]*Node, error)

	// CreateEdge persists a relationship.
	CreateEdge(ctx context.Context, edge *Edge) error

	// DeleteEdgesFrom removes all outgoing edges of the given kinds. Used by
	// update paths, which replace relationships wholesale rather than diffing.
	DeleteEdgesFrom(ctx context.Context, fromUUID string, kinds ...EdgeKind) error

	// DeleteEdgesTo removes all incoming edges of the given kinds. Used when
	// a write replaces the node's own sur-parent, whose edge points at it.
	DeleteEdgesTo(ctx context.Context, toUUID string, kinds ...EdgeKind) error

	// Neighbors returns the edges of one kind touching the node in the given
	// direction, paired with the far-end nodes, in insertion order.
	Neighbors(ctx context.Context, uuid string, kind EdgeKind, direction Direction) ([]Neighbor, error)

	// AssociatedKinds returns the distinct kinds of nodes connected to the
	// given node by any edge, in either direction. Drives the delete guard.
	AssociatedKinds(ctx context.Context, uuid string) ([]Kind, error)

	// InTx runs fn inside a single logical transaction. The Store passed to
	// fn must be used for every operation within the transaction.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
