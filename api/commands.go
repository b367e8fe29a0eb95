package api

import (
	"vincit.fi/photo-frame/api/apitype"
)

type ErrorCommand struct {
	Message string
}

type PhotoChangedCommand struct {
	Id apitype.PhotoId
}

type RefreshCompletedCommand struct {
	Skipped bool
}
