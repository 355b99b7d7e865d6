package maps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bhandras/rfext/internal/crypto"
	"github.com/bhandras/rfext/internal/logger"
	"github.com/bhandras/rfext/internal/models"
)

// ErrNotAssigned is returned when no token is stored for a map.
var ErrNotAssigned = errors.New("map not assigned")

// SQLStore keeps sealed service tokens in the map_assignments table.
type SQLStore struct {
	queries *models.Queries
	sealer  *crypto.Sealer
	now     func() time.Time
}

// NewSQLStore builds a store over db. Tokens are sealed with sealer before
// they are written.
func NewSQLStore(db *sql.DB, sealer *crypto.Sealer) *SQLStore {
	return &SQLStore{
		queries: models.New(db),
		sealer:  sealer,
		now:     time.Now,
	}
}

// SaveServiceToken seals and stores token. A repeated assignment replaces the
// stored token.
func (s *SQLStore) SaveServiceToken(ctx context.Context, mapID, token string) error {
	sealed, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	count, err := s.queries.UpsertMapAssignment(ctx, models.UpsertMapAssignmentParams{
		MapID:        mapID,
		SealedToken:  sealed,
		AssignedAtMs: s.now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("upsert map assignment: %w", err)
	}
	if count > 1 {
		logger.Warnf("Map %s re-assigned (%d times); previous service token replaced", mapID, count)
	}
	return nil
}

// ServiceToken returns the stored token for mapID.
func (s *SQLStore) ServiceToken(ctx context.Context, mapID string) (string, error) {
	row, err := s.queries.GetMapAssignment(ctx, mapID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotAssigned
	}
	if err != nil {
		return "", fmt.Errorf("get map assignment: %w", err)
	}
	plain, err := s.sealer.Open(row.SealedToken)
	if err != nil {
		return "", fmt.Errorf("open token: %w", err)
	}
	return string(plain), nil
}

// PurgeMap deletes the map's record. Purging an unknown map is not an error.
func (s *SQLStore) PurgeMap(ctx context.Context, mapID string) error {
	n, err := s.queries.DeleteMapAssignment(ctx, mapID)
	if err != nil {
		return fmt.Errorf("delete map assignment: %w", err)
	}
	if n == 0 {
		logger.Debugf("Purge for map %s found nothing stored", mapID)
	}
	return nil
}
