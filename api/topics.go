package api

type Topic string

const (
	// PhotoChanged fires after a new photo has been rendered to the panel.
	PhotoChanged Topic = "photo-changed"
	// RefreshCompleted fires after every successful refresh cycle,
	// including cycles that skipped an unchanged frame.
	RefreshCompleted Topic = "refresh-completed"
	ShowError        Topic = "show-error"
)
