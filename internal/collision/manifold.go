package collision

import "github.com/san-kum/physim/internal/vmath"

// ContactPoint describes a single point of contact. Normal is a unit vector
// pointing from A to B and Penetration is never negative.
type ContactPoint struct {
	Point       vmath.Vector2D
	Normal      vmath.Vector2D
	Penetration float64
	Separation  vmath.Vector2D // Normal * Penetration
}

func newContact(point, normal vmath.Vector2D, penetration float64) ContactPoint {
	if penetration < 0 {
		penetration = 0
	}
	return ContactPoint{
		Point:       point,
		Normal:      normal,
		Penetration: penetration,
		Separation:  normal.Scale(penetration),
	}
}

// Flip swaps the roles of A and B.
func (c ContactPoint) Flip() ContactPoint {
	c.Normal = c.Normal.Neg()
	c.Separation = c.Separation.Neg()
	return c
}

// Manifold is produced fresh each frame and never persisted.
type Manifold struct {
	Contacts    []ContactPoint
	Friction    float64
	Restitution float64
	Trigger     bool
}

// First returns the primary contact.
func (m *Manifold) First() (ContactPoint, bool) {
	if len(m.Contacts) == 0 {
		return ContactPoint{}, false
	}
	return m.Contacts[0], true
}
