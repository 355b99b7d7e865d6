// Package response holds the closed set of payloads a command can hand back to
// the host: notify, dialog, iframe, url and the fault body.
//
// Variants are built through the New* constructors which validate their
// inputs, so a Variant value is always well formed by the time it is
// serialized.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidResponseData is returned by constructors when a variant would not
// satisfy its invariants.
var ErrInvalidResponseData = errors.New("invalid response data")

// Kind tags which variant a Variant carries.
type Kind int

const (
	kindUnknown Kind = iota
	// KindAck is the empty acknowledgment `{}`.
	KindAck
	// KindNotify shows a notification in the host UI.
	KindNotify
	// KindDialog opens a dialog through an out-of-band host call.
	KindDialog
	// KindIframe opens an iframe in the host UI.
	KindIframe
	// KindURL opens a URL in a new tab.
	KindURL
	// KindFault is the structured error body.
	KindFault
)

// String returns the wire key of the kind.
func (k Kind) String() string {
	switch k {
	case KindAck:
		return "ack"
	case KindNotify:
		return "notify"
	case KindDialog:
		return "dialog"
	case KindIframe:
		return "iframe"
	case KindURL:
		return "url"
	case KindFault:
		return "error"
	default:
		return "unknown"
	}
}

// Notify is the payload of a notification.
type Notify struct {
	Content     string  `json:"content"`
	Style       Style   `json:"style"`
	DurationMs  int64   `json:"durationMs"`
	URLCancel   *string `json:"urlCancel"`
	URLContinue *string `json:"urlContinue"`
}

// Dialog describes a dialog the host opens after an out-of-band call.
type Dialog struct {
	Src    string
	Width  int
	Height int
	Title  string
}

// Iframe is the payload of an iframe response.
type Iframe struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title,omitempty"`
}

// OpenURL is the payload of a url response.
type OpenURL struct {
	URL string `json:"url"`
}

// FaultBody is the payload of the error envelope.
type FaultBody struct {
	Code      int      `json:"code"`
	Message   string   `json:"message"`
	Traceback []string `json:"traceback,omitempty"`
}

// Variant is exactly one response payload.
//
// The zero value is not valid; use the constructors.
type Variant struct {
	kind   Kind
	notify *Notify
	dialog *Dialog
	iframe *Iframe
	url    *OpenURL
	fault  *FaultBody
}

// Kind returns the tag of the variant.
func (v Variant) Kind() Kind { return v.kind }

// Notify returns the notification payload, if the variant is a notification.
func (v Variant) Notify() (Notify, bool) {
	if v.notify == nil {
		return Notify{}, false
	}
	return *v.notify, true
}

// Dialog returns the dialog description, if the variant is a dialog.
func (v Variant) Dialog() (Dialog, bool) {
	if v.dialog == nil {
		return Dialog{}, false
	}
	return *v.dialog, true
}

// Iframe returns the iframe payload, if the variant is an iframe.
func (v Variant) Iframe() (Iframe, bool) {
	if v.iframe == nil {
		return Iframe{}, false
	}
	return *v.iframe, true
}

// URL returns the url payload, if the variant is a url.
func (v Variant) URL() (OpenURL, bool) {
	if v.url == nil {
		return OpenURL{}, false
	}
	return *v.url, true
}

// Fault returns the error payload, if the variant is a fault.
func (v Variant) Fault() (FaultBody, bool) {
	if v.fault == nil {
		return FaultBody{}, false
	}
	return *v.fault, true
}

// NotifyOption customizes a notification.
type NotifyOption func(*Notify) error

// WithCancelURL sets the URL opened when the user dismisses the notification.
func WithCancelURL(raw string) NotifyOption {
	return func(n *Notify) error {
		if err := checkURL("urlCancel", raw); err != nil {
			return err
		}
		n.URLCancel = &raw
		return nil
	}
}

// WithContinueURL sets the URL opened when the user accepts the notification.
func WithContinueURL(raw string) NotifyOption {
	return func(n *Notify) error {
		if err := checkURL("urlContinue", raw); err != nil {
			return err
		}
		n.URLContinue = &raw
		return nil
	}
}

// Ack returns the empty acknowledgment.
func Ack() Variant {
	return Variant{kind: KindAck}
}

// NewNotify builds a notification variant.
func NewNotify(content string, style Style, duration time.Duration, opts ...NotifyOption) (Variant, error) {
	if strings.TrimSpace(content) == "" {
		return Variant{}, fmt.Errorf("%w: notify content is required", ErrInvalidResponseData)
	}
	if !style.Valid() {
		return Variant{}, fmt.Errorf("%w: unknown notify style %q", ErrInvalidResponseData, style)
	}
	if duration < 0 {
		return Variant{}, fmt.Errorf("%w: notify duration must be non-negative", ErrInvalidResponseData)
	}
	n := &Notify{
		Content:    content,
		Style:      style,
		DurationMs: duration.Milliseconds(),
	}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return Variant{}, err
		}
	}
	return Variant{kind: KindNotify, notify: n}, nil
}

// NewDialog builds a dialog variant. Its synchronous encoding is `{}`: the
// dialog itself reaches the user through the host's dialog endpoint.
func NewDialog(src string, width, height int, title string) (Variant, error) {
	if err := checkURL("dialog src", src); err != nil {
		return Variant{}, err
	}
	if err := checkSize(width, height); err != nil {
		return Variant{}, err
	}
	return Variant{kind: KindDialog, dialog: &Dialog{Src: src, Width: width, Height: height, Title: title}}, nil
}

// NewIframe builds an iframe variant.
func NewIframe(rawURL string, width, height int, title string) (Variant, error) {
	if err := checkURL("iframe url", rawURL); err != nil {
		return Variant{}, err
	}
	if err := checkSize(width, height); err != nil {
		return Variant{}, err
	}
	return Variant{kind: KindIframe, iframe: &Iframe{URL: rawURL, Width: width, Height: height, Title: title}}, nil
}

// NewOpenURL builds a url variant.
func NewOpenURL(rawURL string) (Variant, error) {
	if err := checkURL("url", rawURL); err != nil {
		return Variant{}, err
	}
	return Variant{kind: KindURL, url: &OpenURL{URL: rawURL}}, nil
}

// NewFault builds the error envelope. Only the dispatcher boundary and the
// HTTP layer produce faults; command handlers report failures by returning an
// error.
func NewFault(code int, message string, traceback []string) Variant {
	return Variant{kind: KindFault, fault: &FaultBody{Code: code, Message: message, Traceback: traceback}}
}

// MarshalJSON encodes the variant in the host's wire shape.
func (v Variant) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindAck, KindDialog:
		return []byte("{}"), nil
	case KindNotify:
		return json.Marshal(struct {
			Notify *Notify `json:"notify"`
		}{v.notify})
	case KindIframe:
		return json.Marshal(struct {
			Iframe *Iframe `json:"iframe"`
		}{v.iframe})
	case KindURL:
		return json.Marshal(struct {
			URL *OpenURL `json:"url"`
		}{v.url})
	case KindFault:
		return json.Marshal(struct {
			Error *FaultBody `json:"error"`
		}{v.fault})
	default:
		return nil, fmt.Errorf("%w: empty variant", ErrInvalidResponseData)
	}
}

func checkURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidResponseData, field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponseData, field, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute URL", ErrInvalidResponseData, field)
	}
	return nil
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width and height must be positive, got %dx%d", ErrInvalidResponseData, width, height)
	}
	return nil
}
