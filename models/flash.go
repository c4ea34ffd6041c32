package models

// Flash kinds control how a notice is styled when rendered.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot user-facing notice. It is stored in the session
// row, shown on the next rendered page, and discarded.
type Flash struct {
	// Kind is one of FlashSuccess, FlashError, FlashInfo.
	Kind string `json:"kind"`

	// Message is the text shown to the user.
	Message string `json:"message"`
}
