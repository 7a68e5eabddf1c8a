package compass

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// MinCoord and MaxCoord bound both axes of the grid.
	MinCoord = -100.0
	MaxCoord = 100.0

	// Sensitivity is the per-axis hit radius used by FindNear.
	Sensitivity = 5.0
)

// Quadrant labels one of the four regions of the grid.
type Quadrant string

const (
	GnattyNPC    Quadrant = "Gnatty NPC"
	NotNPC       Quadrant = "Not NPC"
	NotNonNPC    Quadrant = "Not Non-NPC"
	GnattyNonNPC Quadrant = "Gnatty Non-NPC"
)

// Quadrants lists the labels in plot order: top-right, top-left, bottom-left, bottom-right.
var Quadrants = []Quadrant{GnattyNPC, NotNPC, NotNonNPC, GnattyNonNPC}

// QuadrantOf classifies a coordinate. Zero on either axis belongs to the
// non-negative side.
func QuadrantOf(x, y float64) Quadrant {
	switch {
	case x >= 0 && y >= 0:
		return GnattyNPC
	case x < 0 && y >= 0:
		return NotNPC
	case x < 0 && y < 0:
		return NotNonNPC
	default:
		return GnattyNonNPC
	}
}

// Position is a coordinate pair on the grid.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clamp bounds both axes to [MinCoord, MaxCoord].
func (p Position) Clamp() Position {
	return Position{X: clamp(p.X), Y: clamp(p.Y)}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(MinCoord, math.Min(MaxCoord, v))
}

// Point is a named entity placed on the grid.
type Point struct {
	Name      string
	Position
	Quadrant  Quadrant
	DateAdded Timestamp
	LastMoved Timestamp
}

// String renders the point the way the people list shows it.
func (p Point) String() string {
	return fmt.Sprintf("%s (%.0f, %.0f) - %s", p.Name, p.X, p.Y, p.Quadrant)
}

// newPoint validates the name and builds a point at pos with a derived quadrant.
func newPoint(name string, pos Position, added time.Time) (Point, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Point{}, ErrInvalidName
	}
	pos = pos.Clamp()
	return Point{
		Name:      name,
		Position:  pos,
		Quadrant:  QuadrantOf(pos.X, pos.Y),
		DateAdded: Timestamp{added},
		LastMoved: Timestamp{added},
	}, nil
}

func (p *Point) place(pos Position, at time.Time) {
	p.Position = pos.Clamp()
	p.Quadrant = QuadrantOf(p.X, p.Y)
	p.LastMoved = Timestamp{at}
}
