package interact

// Mode is the gesture state of a Controller.
type Mode int

const (
	Idle Mode = iota
	Panning
	Rotating
	ZoomDebounce
)

var modeNames = [...]string{
	Idle:         "idle",
	Panning:      "panning",
	Rotating:     "rotating",
	ZoomDebounce: "zoom-debounce",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Quality selects how much of the scene a rebuild draws.
type Quality int

const (
	// Skeleton draws outlines, axes and table rays only. It is used
	// while a gesture is in progress.
	Skeleton Quality = iota

	// FullArt draws every sorted decoration, rulers and labels.
	FullArt
)

func (q Quality) String() string {
	if q == FullArt {
		return "full-art"
	}
	return "skeleton"
}
