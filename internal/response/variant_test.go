package response

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIframeEncoding(t *testing.T) {
	v, err := NewIframe("http://x/", 300, 400, "")
	require.NoError(t, err)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"iframe": {"url": "http://x/", "width": 300, "height": 400}}`, string(raw))

	v, err = NewIframe("http://x/", 300, 400, "Iframe Command")
	require.NoError(t, err)
	raw, err = json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"iframe": {"url": "http://x/", "width": 300, "height": 400, "title": "Iframe Command"}}`, string(raw))
}

func TestNotifyEncodingKeepsNullURLs(t *testing.T) {
	v, err := NewNotify("Hello", StyleSuccess, 4*time.Second)
	require.NoError(t, err)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"notify": {
		"content": "Hello",
		"style": "SUCCESS",
		"durationMs": 4000,
		"urlCancel": null,
		"urlContinue": null
	}}`, string(raw))
}

func TestNotifyOptions(t *testing.T) {
	v, err := NewNotify("Hello", StyleInfo, 0,
		WithCancelURL("https://example.com/no"),
		WithContinueURL("https://example.com/yes"),
	)
	require.NoError(t, err)

	n, ok := v.Notify()
	require.True(t, ok)
	require.Equal(t, "https://example.com/no", *n.URLCancel)
	require.Equal(t, "https://example.com/yes", *n.URLContinue)
	require.Equal(t, int64(0), n.DurationMs)

	_, err = NewNotify("Hello", StyleInfo, 0, WithCancelURL("not a url"))
	require.ErrorIs(t, err, ErrInvalidResponseData)
}

func TestConstructorsRejectInvalidData(t *testing.T) {
	cases := []struct {
		name string
		fn   func() error
	}{
		{"empty content", func() error { _, err := NewNotify(" ", StyleDefault, time.Second); return err }},
		{"bad style", func() error { _, err := NewNotify("x", Style("LOUD"), time.Second); return err }},
		{"negative duration", func() error { _, err := NewNotify("x", StyleDefault, -time.Second); return err }},
		{"iframe empty url", func() error { _, err := NewIframe("", 1, 1, ""); return err }},
		{"iframe relative url", func() error { _, err := NewIframe("/path", 1, 1, ""); return err }},
		{"iframe zero width", func() error { _, err := NewIframe("http://x/", 0, 1, ""); return err }},
		{"dialog negative height", func() error { _, err := NewDialog("http://x/", 1, -1, ""); return err }},
		{"url empty", func() error { _, err := NewOpenURL(""); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.fn(), ErrInvalidResponseData)
		})
	}
}

func TestAckAndDialogEncodeEmptyObject(t *testing.T) {
	raw, err := json.Marshal(Ack())
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(raw))

	d, err := NewDialog("http://x/", 300, 400, "Dialog")
	require.NoError(t, err)
	raw, err = json.Marshal(d)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(raw))

	dialog, ok := d.Dialog()
	require.True(t, ok)
	require.Equal(t, 300, dialog.Width)
	require.Equal(t, KindDialog, d.Kind())
}

func TestURLAndFaultEncoding(t *testing.T) {
	v, err := NewOpenURL("http://x/")
	require.NoError(t, err)
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"url": {"url": "http://x/"}}`, string(raw))

	raw, err = json.Marshal(NewFault(500, "boom", nil))
	require.NoError(t, err)
	require.JSONEq(t, `{"error": {"code": 500, "message": "boom"}}`, string(raw))
}

func TestZeroVariantDoesNotEncode(t *testing.T) {
	_, err := json.Marshal(Variant{})
	require.Error(t, err)
}

func TestStyleAtCycles(t *testing.T) {
	require.Equal(t, StyleDefault, StyleAt(0))
	require.Equal(t, StyleInfo, StyleAt(5))
	require.Equal(t, StyleDefault, StyleAt(6))
	for i := uint64(0); i < 12; i++ {
		require.True(t, StyleAt(i).Valid())
	}
}
