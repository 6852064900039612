package physics

import "fmt"

// Handle addresses a body in the world's arena. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// NoHandle is the zero handle.
var NoHandle Handle

func (h Handle) Valid() bool { return h.gen != 0 }

// Index is the arena slot. Slots are reused after removal.
func (h Handle) Index() int { return int(h.index) }

func (h Handle) String() string {
	if !h.Valid() {
		return "body#none"
	}
	return fmt.Sprintf("body#%d.%d", h.index, h.gen)
}

func (h Handle) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// Less orders handles by slot, then generation.
func (h Handle) Less(o Handle) bool {
	if h.index != o.index {
		return h.index < o.index
	}
	return h.gen < o.gen
}
