// Package maps handles the extension being assigned to and removed from a
// host map.
//
// The service token that arrives with an assignment is delivered by the host
// exactly once. Assign hands it to the Store before acknowledging, so the
// host only sees success once the token is persisted.
package maps

import (
	"context"
	"fmt"
	"strings"

	"github.com/bhandras/rfext/internal/apierr"
	"github.com/bhandras/rfext/internal/logger"
)

// Store is the persistence collaborator for map-scoped data.
type Store interface {
	// SaveServiceToken persists the token delivered with an assignment.
	SaveServiceToken(ctx context.Context, mapID, token string) error
	// PurgeMap discards everything held for the map.
	PurgeMap(ctx context.Context, mapID string) error
}

// Lifecycle processes assignment and removal events.
type Lifecycle struct {
	store Store
}

// NewLifecycle builds a Lifecycle backed by store.
func NewLifecycle(store Store) *Lifecycle {
	return &Lifecycle{store: store}
}

// Assign records that the extension was attached to mapID.
func (l *Lifecycle) Assign(ctx context.Context, mapID, serviceToken string) error {
	if strings.TrimSpace(mapID) == "" {
		return apierr.Validation(apierr.ErrMissingArgument, "map id is required")
	}
	if strings.TrimSpace(serviceToken) == "" {
		return apierr.Validation(apierr.ErrMissingServiceToken, "Rf-Extension-Token header is required")
	}

	if err := l.store.SaveServiceToken(ctx, mapID, serviceToken); err != nil {
		return fmt.Errorf("save service token for map %s: %w", mapID, err)
	}

	logger.Infof("Extension assigned to map with id %s, service token: %s", mapID, logger.Redact(serviceToken))
	return nil
}

// Remove records that the extension was detached from mapID. It always
// succeeds towards the host; purge failures are logged.
func (l *Lifecycle) Remove(ctx context.Context, mapID string) {
	if err := l.store.PurgeMap(ctx, mapID); err != nil {
		logger.Errorf("Failed to purge data for map %s: %v", mapID, err)
		return
	}
	logger.Infof("Extension deleted from map with id %s", mapID)
}
