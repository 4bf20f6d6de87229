// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package graph

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/tamsinleach/dramatis/internal/platform/dberr"
)

// MemoryStore is the in-memory [Store] used by unit tests and local
// experiments. It mirrors the PostgreSQL semantics: identity uniqueness per
// kind, edges removed with their nodes, and snapshot-rollback transactions.
//
// # Concurrency
//
// A single RWMutex guards all state. Transactions hold the write lock for
// their whole duration, which is coarse but correct for test workloads.
type MemoryStore struct {
	mu    sync.RWMutex
	nodes map[string]*Node
	edges []*Edge
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nodes: make(map[string]*Node)}
}

// identityKey builds the uniqueness key for a node.
func identityKey(kind Kind, name, differentiator string) string {
	return string(kind) + "\x00" + name + "\x00" + differentiator
}

func (store *MemoryStore) findLocked(kind Kind, name, differentiator string) *Node {
	want := identityKey(kind, name, differentiator)
	for _, node := range store.nodes {
		if identityKey(node.Kind, node.Name, node.Differentiator) == want {
			return node
		}
	}
	return nil
}

// CreateNode implements [Store].
func (store *MemoryStore) CreateNode(ctx context.Context, node *Node) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.createLocked(node)
}

func (store *MemoryStore) createLocked(node *Node) error {
	if !UniquenessExempt(node.Kind) {
		if existing := store.findLocked(node.Kind, node.Name, node.Differentiator); existing != nil {
			return dberr.ErrUniqueViolation
		}
	}
	if node.UUID == "" {
		node.UUID = uuid.New().String()
	}
	stored := *node
	stored.Props = node.Props.Clone()
	store.nodes[node.UUID] = &stored
	return nil
}

// GetNode implements [Store].
func (store *MemoryStore) GetNode(ctx context.Context, id string) (*Node, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	node, ok := store.nodes[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *node
	copied.Props = node.Props.Clone()
	return &copied, nil
}

// FindNode implements [Store].
func (store *MemoryStore) FindNode(ctx context.Context, kind Kind, name, differentiator string) (*Node, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	node := store.findLocked(kind, name, differentiator)
	if node == nil {
		return nil, nil
	}
	copied := *node
	copied.Props = node.Props.Clone()
	return &copied, nil
}

// FindOrCreateNode implements [Store].
func (store *MemoryStore) FindOrCreateNode(ctx context.Context, kind Kind, name, differentiator string) (*Node, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if node := store.findLocked(kind, name, differentiator); node != nil {
		copied := *node
		copied.Props = node.Props.Clone()
		return &copied, nil
	}

	node := &Node{Kind: kind, Name: name, Differentiator: differentiator}
	if err := store.createLocked(node); err != nil {
		return nil, err
	}
	copied := *node
	return &copied, nil
}

// UpdateNode implements [Store].
func (store *MemoryStore) UpdateNode(ctx context.Context, node *Node) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	current, ok := store.nodes[node.UUID]
	if !ok {
		return dberr.ErrNotFound
	}
	if !UniquenessExempt(current.Kind) {
		if existing := store.findLocked(current.Kind, node.Name, node.Differentiator); existing != nil && existing.UUID != node.UUID {
			return dberr.ErrUniqueViolation
		}
	}
	current.Name = node.Name
	current.Differentiator = node.Differentiator
	current.Props = node.Props.Clone()
	return nil
}

// DeleteNode implements [Store]. Edges touching the node are removed with it.
func (store *MemoryStore) DeleteNode(ctx context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.nodes[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(store.nodes, id)

	kept := store.edges[:0]
	for _, edge := range store.edges {
		if edge.FromUUID != id && edge.ToUUID != id {
			kept = append(kept, edge)
		}
	}
	store.edges = kept
	return nil
}

// ListNodes implements [Store].
func (store *MemoryStore) ListNodes(ctx context.Context, kind Kind, limit int) ([]*Node, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var out []*Node
	for _, node := range store.nodes {
		if node.Kind != kind {
			continue
		}
		copied := *node
		copied.Props = node.Props.Clone()
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		}
		return out[i].Differentiator < out[j].Differentiator
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CreateEdge implements [Store].
func (store *MemoryStore) CreateEdge(ctx context.Context, edge *Edge) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.nodes[edge.FromUUID]; !ok {
		return dberr.ErrNotFound
	}
	if _, ok := store.nodes[edge.ToUUID]; !ok {
		return dberr.ErrNotFound
	}
	stored := *edge
	stored.Props = edge.Props.Clone()
	store.edges = append(store.edges, &stored)
	return nil
}

// DeleteEdgesFrom implements [Store].
func (store *MemoryStore) DeleteEdgesFrom(ctx context.Context, fromUUID string, kinds ...EdgeKind) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	drop := make(map[EdgeKind]bool, len(kinds))
	for _, kind := range kinds {
		drop[kind] = true
	}

	kept := store.edges[:0]
	for _, edge := range store.edges {
		if edge.FromUUID == fromUUID && drop[edge.Kind] {
			continue
		}
		kept = append(kept, edge)
	}
	store.edges = kept
	return nil
}

// DeleteEdgesTo implements [Store].
func (store *MemoryStore) DeleteEdgesTo(ctx context.Context, toUUID string, kinds ...EdgeKind) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	drop := make(map[EdgeKind]bool, len(kinds))
	for _, kind := range kinds {
		drop[kind] = true
	}

	kept := store.edges[:0]
	for _, edge := range store.edges {
		if edge.ToUUID == toUUID && drop[edge.Kind] {
			continue
		}
		kept = append(kept, edge)
	}
	store.edges = kept
	return nil
}

// Neighbors implements [Store]. Results preserve edge insertion order.
func (store *MemoryStore) Neighbors(ctx context.Context, id string, kind EdgeKind, direction Direction) ([]Neighbor, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	var out []Neighbor
	for _, edge := range store.edges {
		if edge.Kind != kind {
			continue
		}

		var farUUID string
		switch direction {
		case Outgoing:
			if edge.FromUUID != id {
				continue
			}
			farUUID = edge.ToUUID
		case Incoming:
			if edge.ToUUID != id {
				continue
			}
			farUUID = edge.FromUUID
		}

		far, ok := store.nodes[farUUID]
		if !ok {
			continue
		}

		edgeCopy := *edge
		edgeCopy.Props = edge.Props.Clone()
		nodeCopy := *far
		nodeCopy.Props = far.Props.Clone()
		out = append(out, Neighbor{Edge: &edgeCopy, Node: &nodeCopy})
	}
	return out, nil
}

// AssociatedKinds implements [Store].
func (store *MemoryStore) AssociatedKinds(ctx context.Context, id string) ([]Kind, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	seen := make(map[Kind]bool)
	for _, edge := range store.edges {
		var farUUID string
		switch id {
		case edge.FromUUID:
			farUUID = edge.ToUUID
		case edge.ToUUID:
			farUUID = edge.FromUUID
		default:
			continue
		}
		if far, ok := store.nodes[farUUID]; ok {
			seen[far.Kind] = true
		}
	}

	kinds := make([]Kind, 0, len(seen))
	for kind := range seen {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds, nil
}

// InTx implements [Store] with snapshot rollback: state is copied before fn
// runs and restored if fn returns an error.
func (store *MemoryStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	store.mu.Lock()
	nodesSnapshot := make(map[string]*Node, len(store.nodes))
	for id, node := range store.nodes {
		copied := *node
		copied.Props = node.Props.Clone()
		nodesSnapshot[id] = &copied
	}
	edgesSnapshot := make([]*Edge, len(store.edges))
	for i, edge := range store.edges {
		copied := *edge
		copied.Props = edge.Props.Clone()
		edgesSnapshot[i] = &copied
	}
	store.mu.Unlock()

	if err := fn(ctx, store); err != nil {
		store.mu.Lock()
		store.nodes = nodesSnapshot
		store.edges = edgesSnapshot
		store.mu.Unlock()
		return err
	}
	return nil
}
