package apitype

// Orientation is the logical mounting orientation of the panel.
// Values outside the two constants are rejected where they are consumed.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)
