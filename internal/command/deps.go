package command

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bhandras/rfext/internal/hostapi"
)

// Host is the part of the host API commands call back into. Calls are best
// effort and report nothing back.
type Host interface {
	Notify(ctx context.Context, mapID string, req hostapi.NotificationRequest)
	Dialog(ctx context.Context, mapID string, req hostapi.DialogRequest)
}

// HostDialer binds a Host to one invocation's delegated token.
type HostDialer func(delegatedToken string) Host

// LinkMinter signs the token carried by view links.
type LinkMinter interface {
	Mint(mapID, userID, command string) (string, error)
}

// Deps holds the narrow dependencies command handlers need. It carries no
// per-map or per-user state.
type Deps struct {
	dialHost HostDialer
	links    LinkMinter
	baseURL  string
	seq      func() uint64
}

// NewDeps builds a dependency bundle for handler calls. links may be nil, in
// which case view links point at the bare base URL.
func NewDeps(dialHost HostDialer, links LinkMinter, baseURL string, seq func() uint64) Deps {
	return Deps{
		dialHost: dialHost,
		links:    links,
		baseURL:  baseURL,
		seq:      seq,
	}
}

// DelegatedDialer returns a HostDialer creating one hostapi.Delegated client
// per invocation.
func DelegatedDialer(cfg hostapi.DelegatedConfig) HostDialer {
	return func(token string) Host {
		return hostapi.NewDelegated(cfg, token)
	}
}

// Host returns a host client bound to inv's delegated token.
func (d Deps) Host(inv Invocation) Host {
	return d.dialHost(inv.DelegatedToken())
}

// Seq returns the next value of the injected sequence, or 0 without one.
func (d Deps) Seq() uint64 {
	if d.seq != nil {
		return d.seq()
	}
	return 0
}

// ViewURL returns the link to the extension page shown for inv.
func (d Deps) ViewURL(inv Invocation) (string, error) {
	if d.links == nil {
		return d.baseURL, nil
	}
	token, err := d.links.Mint(inv.MapID(), inv.UserID(), inv.Name())
	if err != nil {
		return "", fmt.Errorf("mint view token: %w", err)
	}
	return d.baseURL + "/view?token=" + url.QueryEscape(token), nil
}
