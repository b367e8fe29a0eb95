package display

import (
	"errors"
	"fmt"
	"path"

	"vincit.fi/photo-frame/api"
	"vincit.fi/photo-frame/common/config"
)

var ErrUnknownDisplayType = errors.New("unknown display type")

// NewDisplay builds the driver for the configured display type. Unknown
// types fail here, at startup, never at render time.
func NewDisplay(conf *config.Config, sender api.Sender) (api.Display, error) {
	displayType := conf.DisplayType()
	switch displayType {
	case "mock":
		return NewMockDisplay(conf.DataDir()), nil
	case "cast":
		return NewCastDisplay(conf.HttpPort(), conf.CastDevice(), sender), nil
	case "inky":
		return NewVendorDisplay(displayType, conf.DisplayHelper(), conf.DataDir())
	}

	// Waveshare panels are named by size and color count, e.g. epd7in3f
	if matched, _ := path.Match("epd*in*", displayType); matched {
		return NewVendorDisplay(displayType, conf.DisplayHelper(), conf.DataDir())
	}
	return nil, fmt.Errorf("%w: '%s'", ErrUnknownDisplayType, displayType)
}
