package wit

// Direction indicates whether a [Function] is being translated as a world
// import (the host implements it, the guest calls in) or a world export
// (the guest implements it, the host calls in).
type Direction uint8

const (
	// Imported functions are implemented by the host and called by the guest.
	Imported Direction = iota
	// Exported functions are implemented by the guest and called by the host.
	Exported
)

// String returns "import" or "export".
func (d Direction) String() string {
	if d == Exported {
		return "export"
	}
	return "import"
}
