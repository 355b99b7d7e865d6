package command

import (
	"fmt"
	"strings"

	"github.com/bhandras/rfext/internal/apierr"
	"github.com/bhandras/rfext/internal/logger"
)

// Params is the raw material of an invocation as read off the HTTP request.
// Empty strings mean "absent".
type Params struct {
	Name           string
	DelegatedToken string
	MapID          string
	UserID         string
	SessionID      string
	NodeID         string
}

// Invocation is one validated command call. It lives for a single request.
type Invocation struct {
	name           string
	delegatedToken string
	mapID          string
	userID         string
	sessionID      string
	nodeID         string
}

// NewInvocation validates p. The map id and user id are required; the
// session id, node id and delegated token are optional at this point.
func NewInvocation(p Params) (Invocation, error) {
	var missing []string
	if strings.TrimSpace(p.MapID) == "" {
		missing = append(missing, "mapId")
	}
	if strings.TrimSpace(p.UserID) == "" {
		missing = append(missing, "userId")
	}
	if len(missing) > 0 {
		return Invocation{}, apierr.Validation(apierr.ErrMissingArgument, "Missing argument %s", strings.Join(missing, ", "))
	}
	return Invocation{
		name:           p.Name,
		delegatedToken: p.DelegatedToken,
		mapID:          p.MapID,
		userID:         p.UserID,
		sessionID:      p.SessionID,
		nodeID:         p.NodeID,
	}, nil
}

func (i Invocation) Name() string           { return i.name }
func (i Invocation) DelegatedToken() string { return i.delegatedToken }
func (i Invocation) MapID() string          { return i.mapID }
func (i Invocation) UserID() string         { return i.userID }

// SessionID is empty when the invocation has no live UI session.
func (i Invocation) SessionID() string { return i.sessionID }

// NodeID is empty when the command was not run on a node.
func (i Invocation) NodeID() string { return i.nodeID }

// String describes the invocation for logs, with the token redacted.
func (i Invocation) String() string {
	return fmt.Sprintf("%s(map=%s user=%s session=%s node=%s token=%s)",
		i.name, i.mapID, i.userID, i.sessionID, i.nodeID, logger.Redact(i.delegatedToken))
}
