package types

// Playback bounds shared by the scroll engine, the session and validation.
const (
	MinScrollSpeed     = 0.1
	MaxScrollSpeed     = 5.0
	ScrollSpeedStep    = 0.1
	DefaultScrollSpeed = 2.0

	MinFontSize     = 16
	MaxFontSize     = 64
	FontSizeStep    = 4
	DefaultFontSize = 32
)

// ValidScrollSpeed reports whether v lies within [MinScrollSpeed, MaxScrollSpeed].
func ValidScrollSpeed(v float64) bool {
	return v >= MinScrollSpeed && v <= MaxScrollSpeed
}

// ValidFontSize reports whether v lies within [MinFontSize, MaxFontSize].
func ValidFontSize(v int) bool {
	return v >= MinFontSize && v <= MaxFontSize
}
