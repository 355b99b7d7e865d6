package models

import (
	"context"
)

// MapAssignment is the stored record of the extension being attached to a
// map.
type MapAssignment struct {
	// MapID is the host map id.
	MapID string
	// SealedToken is the encrypted service token.
	SealedToken []byte
	// AssignedAtMs is the time of the most recent assignment (ms since epoch).
	AssignedAtMs int64
	// AssignCount counts how many times the map was assigned while the row
	// existed.
	AssignCount int64
}

type UpsertMapAssignmentParams struct {
	MapID        string
	SealedToken  []byte
	AssignedAtMs int64
}

const upsertMapAssignment = `
INSERT INTO map_assignments (map_id, sealed_token, assigned_at_ms, assign_count)
VALUES (?, ?, ?, 1)
ON CONFLICT(map_id) DO UPDATE SET
	sealed_token = excluded.sealed_token,
	assigned_at_ms = excluded.assigned_at_ms,
	assign_count = map_assignments.assign_count + 1
RETURNING assign_count
`

// UpsertMapAssignment stores the sealed token for a map, replacing any
// previous one, and returns the resulting assign count.
func (q *Queries) UpsertMapAssignment(ctx context.Context, arg UpsertMapAssignmentParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, upsertMapAssignment, arg.MapID, arg.SealedToken, arg.AssignedAtMs)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getMapAssignment = `
SELECT map_id, sealed_token, assigned_at_ms, assign_count
FROM map_assignments
WHERE map_id = ?
`

func (q *Queries) GetMapAssignment(ctx context.Context, mapID string) (MapAssignment, error) {
	row := q.db.QueryRowContext(ctx, getMapAssignment, mapID)
	var i MapAssignment
	err := row.Scan(&i.MapID, &i.SealedToken, &i.AssignedAtMs, &i.AssignCount)
	return i, err
}

const deleteMapAssignment = `
DELETE FROM map_assignments WHERE map_id = ?
`

// DeleteMapAssignment removes the map's record and reports how many rows
// were deleted.
func (q *Queries) DeleteMapAssignment(ctx context.Context, mapID string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteMapAssignment, mapID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
