package command

import (
	"context"
	"errors"
	"time"

	"github.com/bhandras/rfext/internal/hostapi"
	"github.com/bhandras/rfext/internal/manifest"
	"github.com/bhandras/rfext/internal/response"
)

const (
	frameWidth  = 300
	frameHeight = 400
)

// errIncorrectValue is what the error demo command fails with.
var errIncorrectValue = errors.New("The value of this command is incorrect")

// Builtins returns the commands declared by manifest.Default.
func Builtins() []Command {
	return []Command{
		{Name: manifest.ActionNotify, Kind: response.KindNotify, Handle: Notify},
		{Name: manifest.ActionNotifyFromKV, Kind: response.KindAck, Delegated: true, Handle: NotifyFromKV},
		{Name: manifest.ActionDialogFromKV, Kind: response.KindDialog, Delegated: true, Handle: DialogFromKV},
		{Name: manifest.ActionIframe, Kind: response.KindIframe, Handle: Iframe},
		{Name: manifest.ActionWithError, Handle: WithError},
		{Name: manifest.ActionURL, Kind: response.KindURL, Handle: OpenURL},
	}
}

// NewBuiltinRegistry registers every built-in command.
func NewBuiltinRegistry() (*Registry, error) {
	r := NewRegistry()
	for _, cmd := range Builtins() {
		if err := r.Register(cmd); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Notify shows a greeting, cycling through the notification styles.
func Notify(ctx context.Context, deps Deps, inv Invocation) (response.Variant, error) {
	return response.NewNotify("Hello, RedForester!", response.StyleAt(deps.Seq()), 4*time.Second)
}

// NotifyFromKV shows a notification through the host API instead of the
// command response.
func NotifyFromKV(ctx context.Context, deps Deps, inv Invocation) (response.Variant, error) {
	deps.Host(inv).Notify(ctx, inv.MapID(), hostapi.NotificationRequest{
		UserID:    inv.UserID(),
		SessionID: inv.SessionID(),
		Type:      "info",
		Text:      "Hello again RedForester",
	})
	return response.Ack(), nil
}

// DialogFromKV opens the extension page in a host dialog.
func DialogFromKV(ctx context.Context, deps Deps, inv Invocation) (response.Variant, error) {
	src, err := deps.ViewURL(inv)
	if err != nil {
		return response.Variant{}, err
	}
	v, err := response.NewDialog(src, frameWidth, frameHeight, "Dialog From Kv Command")
	if err != nil {
		return response.Variant{}, err
	}

	dialog, _ := v.Dialog()
	deps.Host(inv).Dialog(ctx, inv.MapID(), hostapi.DialogRequest{
		UserID:    inv.UserID(),
		SessionID: inv.SessionID(),
		Src:       dialog.Src,
		Size:      hostapi.NewDialogSize(dialog.Width, dialog.Height),
		Title:     dialog.Title,
	})
	return v, nil
}

// Iframe opens the extension page in an iframe.
func Iframe(ctx context.Context, deps Deps, inv Invocation) (response.Variant, error) {
	src, err := deps.ViewURL(inv)
	if err != nil {
		return response.Variant{}, err
	}
	return response.NewIframe(src, frameWidth, frameHeight, "Iframe Command")
}

// OpenURL opens the extension page in a new tab.
func OpenURL(ctx context.Context, deps Deps, inv Invocation) (response.Variant, error) {
	src, err := deps.ViewURL(inv)
	if err != nil {
		return response.Variant{}, err
	}
	return response.NewOpenURL(src)
}

// WithError always fails, showing how handler faults reach the host.
func WithError(ctx context.Context, deps Deps, inv Invocation) (response.Variant, error) {
	return response.Variant{}, errIncorrectValue
}
