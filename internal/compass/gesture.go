package compass

// DragState is the state of a pointer gesture.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (d DragState) String() string {
	if d == Dragging {
		return "dragging"
	}
	return "idle"
}

// Gesture turns pointer events into store operations. Motion applies live
// previews through SetPosition; Release commits one logged move; Cancel puts
// the point back where the drag started.
type Gesture struct {
	store  *Store
	state  DragState
	offset Position
	origin Point
}

func NewGesture(s *Store) *Gesture {
	return &Gesture{store: s}
}

func (g *Gesture) State() DragState { return g.state }

// Target names the point being dragged, or "" when idle.
func (g *Gesture) Target() string {
	if g.state != Dragging {
		return ""
	}
	return g.origin.Name
}

// Press starts dragging the point under (x, y). It reports whether a drag began.
func (g *Gesture) Press(x, y float64) bool {
	if g.state == Dragging {
		return false
	}
	name, ok := g.store.FindNear(x, y)
	if !ok {
		return false
	}
	p, _ := g.store.Get(name)
	g.state = Dragging
	g.origin = p
	g.offset = Position{X: x - p.X, Y: y - p.Y}
	return true
}

// Motion previews the dragged point at the pointer minus the grab offset.
func (g *Gesture) Motion(x, y float64) (Point, bool) {
	if g.state != Dragging {
		return Point{}, false
	}
	p, err := g.store.SetPosition(g.origin.Name, x-g.offset.X, y-g.offset.Y)
	if err != nil {
		g.reset()
		return Point{}, false
	}
	return p, true
}

// Release commits the current position of the dragged point as a move.
func (g *Gesture) Release() (Point, bool) {
	if g.state != Dragging {
		return Point{}, false
	}
	origin := g.origin
	g.reset()
	cur, ok := g.store.Get(origin.Name)
	if !ok {
		return Point{}, false
	}
	p, err := g.store.commitMove(origin, cur.Position)
	if err != nil {
		return Point{}, false
	}
	return p, true
}

// Cancel aborts the drag and restores the point to its pre-drag state
// without logging or saving.
func (g *Gesture) Cancel() bool {
	if g.state != Dragging {
		return false
	}
	g.store.restore(g.origin)
	g.reset()
	return true
}

// RightClick removes the point under (x, y). Removing the dragged point ends
// the drag.
func (g *Gesture) RightClick(x, y float64) (string, bool) {
	name, ok := g.store.FindNear(x, y)
	if !ok {
		return "", false
	}
	if err := g.store.Remove(name); err != nil {
		return "", false
	}
	if g.state == Dragging && g.origin.Name == name {
		g.reset()
	}
	return name, true
}

func (g *Gesture) reset() {
	g.state = Idle
	g.offset = Position{}
	g.origin = Point{}
}
