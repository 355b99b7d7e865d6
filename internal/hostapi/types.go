package hostapi

import "strconv"

const (
	// DelegatedPrincipal is the basic-auth user name paired with a delegated
	// token.
	DelegatedPrincipal = "extension"

	notificationPath = "/notify/notification/map/"
	dialogPath       = "/notify/dialog/map/"
)

// NotificationRequest asks the host to show a notification to a user.
type NotificationRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	Type      string `json:"notification_type,omitempty"`
	Text      string `json:"notification_text,omitempty"`
}

// DialogSize is the dialog size in pixels. The host expects decimal strings.
type DialogSize struct {
	Width  string `json:"width"`
	Height string `json:"height"`
}

// NewDialogSize formats pixel dimensions for the host.
func NewDialogSize(width, height int) DialogSize {
	return DialogSize{Width: strconv.Itoa(width), Height: strconv.Itoa(height)}
}

// DialogRequest asks the host to open a dialog for a user.
type DialogRequest struct {
	UserID    string     `json:"user_id"`
	SessionID string     `json:"session_id,omitempty"`
	Src       string     `json:"dialog_src"`
	Size      DialogSize `json:"dialog_size"`
	Title     string     `json:"dialog_title,omitempty"`
}
