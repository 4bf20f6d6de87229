// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tamsinleach/dramatis/internal/platform/dberr"
)

// queryer is satisfied by both *pgxpool.Pool and pgx.Tx, letting the same
// store methods run inside and outside transactions.
type queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is the production [Store], keeping nodes and edges in two
// tables with JSONB property columns. The (kind, name, differentiator)
// uniqueness constraint lives in the schema (partial unique index skipping
// uniqueness-exempt kinds), closing the merge-by-name write race at the
// store level.
type PostgresStore struct {
	db   queryer
	pool *pgxpool.Pool // nil inside a transaction
}

// NewPostgresStore wraps a connected pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: pool, pool: pool}
}

const nodeColumns = `uuid, kind, name, differentiator, props`

func scanNode(row pgx.Row) (*Node, error) {
	node := &Node{}
	var rawProps []byte
	if err := row.Scan(&node.UUID, &node.Kind, &node.Name, &node.Differentiator, &rawProps); err != nil {
		return nil, err
	}
	if len(rawProps) > 0 {
		if err := json.Unmarshal(rawProps, &node.Props); err != nil {
			return nil, fmt.Errorf("graph: malformed node props for %s: %w", node.UUID, err)
		}
	}
	return node, nil
}

func marshalProps(props Props) ([]byte, error) {
	if props == nil {
		return []byte(`{}`), nil
	}
	return json.Marshal(props)
}

// CreateNode implements [Store].
func (store *PostgresStore) CreateNode(ctx context.Context, node *Node) error {
	if node.UUID == "" {
		node.UUID = uuid.New().String()
	}

	rawProps, err := marshalProps(node.Props)
	if err != nil {
		return dberr.Wrap(err, "create_node")
	}

	_, err = store.db.Exec(ctx, `
		INSERT INTO nodes (uuid, kind, name, differentiator, props)
		VALUES ($1, $2, $3, $4, $5)
	`, node.UUID, node.Kind, node.Name, node.Differentiator, rawProps)
	return dberr.Wrap(err, "create_node")
}

// GetNode implements [Store].
func (store *PostgresStore) GetNode(ctx context.Context, id string) (*Node, error) {
	row := store.db.QueryRow(ctx, `
		SELECT `+nodeColumns+` FROM nodes WHERE uuid = $1
	`, id)

	node, err := scanNode(row)
	if err != nil {
		return nil, dberr.Wrap(err, "get_node")
	}
	return node, nil
}

// FindNode implements [Store].
func (store *PostgresStore) FindNode(ctx context.Context, kind Kind, name, differentiator string) (*Node, error) {
	row := store.db.QueryRow(ctx, `
		SELECT `+nodeColumns+` FROM nodes
		WHERE kind = $1 AND name = $2 AND differentiator = $3
	`, kind, name, differentiator)

	node, err := scanNode(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find_node")
	}
	return node, nil
}

// FindOrCreateNode implements [Store]. The upsert keys on the uniqueness
// index, so a concurrent merge of the same identity yields one node.
func (store *PostgresStore) FindOrCreateNode(ctx context.Context, kind Kind, name, differentiator string) (*Node, error) {
	row := store.db.QueryRow(ctx, `
		INSERT INTO nodes (uuid, kind, name, differentiator, props)
		VALUES ($1, $2, $3, $4, '{}'::jsonb)
		ON CONFLICT (kind, name, differentiator)
			WHERE kind NOT IN ('PRODUCTION', 'AWARD_CEREMONY', 'AWARD_CEREMONY_CATEGORY')
			DO UPDATE SET updated_at = NOW()
		RETURNING `+nodeColumns+`
	`, uuid.New().String(), kind, name, differentiator)

	node, err := scanNode(row)
	if err != nil {
		return nil, dberr.Wrap(err, "find_or_create_node")
	}
	return node, nil
}

// UpdateNode implements [Store].
func (store *PostgresStore) UpdateNode(ctx context.Context, node *Node) error {
	rawProps, err := marshalProps(node.Props)
	if err != nil {
		return dberr.Wrap(err, "update_node")
	}

	tag, err := store.db.Exec(ctx, `
		UPDATE nodes
		SET name = $2, differentiator = $3, props = $4, updated_at = NOW()
		WHERE uuid = $1
	`, node.UUID, node.Name, node.Differentiator, rawProps)
	if err != nil {
		return dberr.Wrap(err, "update_node")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// DeleteNode implements [Store]. Edge rows cascade with the node.
func (store *PostgresStore) DeleteNode(ctx context.Context, id string) error {
	tag, err := store.db.Exec(ctx, `DELETE FROM nodes WHERE uuid = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_node")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// ListNodes implements [Store].
func (store *PostgresStore) ListNodes(ctx context.Context, kind Kind, limit int) ([]*Node, error) {
	rows, err := store.db.Query(ctx, `
		SELECT `+nodeColumns+` FROM nodes
		WHERE kind = $1
		ORDER BY lower(name) ASC, differentiator ASC
		LIMIT $2
	`, kind, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_nodes")
	}
	defer rows.Close()

	var nodes []*Node
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_node")
		}
		nodes = append(nodes, node)
	}
	return nodes, dberr.Wrap(rows.Err(), "list_nodes")
}

// CreateEdge implements [Store].
func (store *PostgresStore) CreateEdge(ctx context.Context, edge *Edge) error {
	rawProps, err := marshalProps(edge.Props)
	if err != nil {
		return dberr.Wrap(err, "create_edge")
	}

	_, err = store.db.Exec(ctx, `
		INSERT INTO edges (kind, from_uuid, to_uuid, props)
		VALUES ($1, $2, $3, $4)
	`, edge.Kind, edge.FromUUID, edge.ToUUID, rawProps)
	return dberr.Wrap(err, "create_edge")
}

// DeleteEdgesFrom implements [Store].
func (store *PostgresStore) DeleteEdgesFrom(ctx context.Context, fromUUID string, kinds ...EdgeKind) error {
	if len(kinds) == 0 {
		return nil
	}

	kindStrings := make([]string, len(kinds))
	for i, kind := range kinds {
		kindStrings[i] = string(kind)
	}

	_, err := store.db.Exec(ctx, `
		DELETE FROM edges WHERE from_uuid = $1 AND kind = ANY($2)
	`, fromUUID, kindStrings)
	return dberr.Wrap(err, "delete_edges")
}

// DeleteEdgesTo implements [Store].
func (store *PostgresStore) DeleteEdgesTo(ctx context.Context, toUUID string, kinds ...EdgeKind) error {
	if len(kinds) == 0 {
		return nil
	}

	kindStrings := make([]string, len(kinds))
	for i, kind := range kinds {
		kindStrings[i] = string(kind)
	}

	_, err := store.db.Exec(ctx, `
		DELETE FROM edges WHERE to_uuid = $1 AND kind = ANY($2)
	`, toUUID, kindStrings)
	return dberr.Wrap(err, "delete_edges")
}

// Neighbors implements [Store]. Edge insertion order (id ascending) is
// preserved; display order is re-derived from position props by callers.
func (store *PostgresStore) Neighbors(ctx context.Context, id string, kind EdgeKind, direction Direction) ([]Neighbor, error) {
	nearColumn, farColumn := "from_uuid", "to_uuid"
	if direction == Incoming {
		nearColumn, farColumn = "to_uuid", "from_uuid"
	}

	rows, err := store.db.Query(ctx, `
		SELECT e.kind, e.from_uuid, e.to_uuid, e.props,
		       n.uuid, n.kind, n.name, n.differentiator, n.props
		FROM edges e
		JOIN nodes n ON n.uuid = e.`+farColumn+`
		WHERE e.`+nearColumn+` = $1 AND e.kind = $2
		ORDER BY e.id ASC
	`, id, kind)
	if err != nil {
		return nil, dberr.Wrap(err, "neighbors")
	}
	defer rows.Close()

	var neighbors []Neighbor
	for rows.Next() {
		edge := &Edge{}
		node := &Node{}
		var rawEdgeProps, rawNodeProps []byte
		if err := rows.Scan(
			&edge.Kind, &edge.FromUUID, &edge.ToUUID, &rawEdgeProps,
			&node.UUID, &node.Kind, &node.Name, &node.Differentiator, &rawNodeProps,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_neighbor")
		}
		if len(rawEdgeProps) > 0 {
			if err := json.Unmarshal(rawEdgeProps, &edge.Props); err != nil {
				return nil, dberr.Wrap(err, "scan_neighbor")
			}
		}
		if len(rawNodeProps) > 0 {
			if err := json.Unmarshal(rawNodeProps, &node.Props); err != nil {
				return nil, dberr.Wrap(err, "scan_neighbor")
			}
		}
		neighbors = append(neighbors, Neighbor{Edge: edge, Node: node})
	}
	return neighbors, dberr.Wrap(rows.Err(), "neighbors")
}

// AssociatedKinds implements [Store].
func (store *PostgresStore) AssociatedKinds(ctx context.Context, id string) ([]Kind, error) {
	rows, err := store.db.Query(ctx, `
		SELECT DISTINCT n.kind
		FROM edges e
		JOIN nodes n ON n.uuid = CASE WHEN e.from_uuid = $1 THEN e.to_uuid ELSE e.from_uuid END
		WHERE e.from_uuid = $1 OR e.to_uuid = $1
		ORDER BY n.kind ASC
	`, id)
	if err != nil {
		return nil, dberr.Wrap(err, "associated_kinds")
	}
	defer rows.Close()

	var kinds []Kind
	for rows.Next() {
		var kind Kind
		if err := rows.Scan(&kind); err != nil {
			return nil, dberr.Wrap(err, "associated_kinds")
		}
		kinds = append(kinds, kind)
	}
	return kinds, dberr.Wrap(rows.Err(), "associated_kinds")
}

// InTx implements [Store]. Nested calls reuse the surrounding transaction.
func (store *PostgresStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	if store.pool == nil {
		return fn(ctx, store)
	}

	tx, err := store.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "begin_tx")
	}

	txStore := &PostgresStore{db: tx}
	if err := fn(ctx, txStore); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "commit_tx")
	}
	return nil
}
