package schema

import "fmt"

// Shape identifies which layout a people_data.json file uses.
type Shape int

const (
	ShapeUnknown Shape = iota
	// ShapeCurrent wraps people in an object with metadata and edit_history.
	ShapeCurrent
	// ShapeLegacy is a bare name -> {x, y} mapping.
	ShapeLegacy
)

func (s Shape) String() string {
	switch s {
	case ShapeCurrent:
		return "current"
	case ShapeLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// People matches a name -> point mapping. Only the coordinates are required.
const People = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["x", "y"],
    "properties": {
      "x": {"type": "number"},
      "y": {"type": "number"},
      "quadrant": {"type": "string"},
      "date_added": {"type": ["string", "null"]},
      "last_moved": {"type": ["string", "null"]}
    }
  }
}`

// Document matches the wrapped layout written by current versions.
const Document = `{
  "type": "object",
  "required": ["people"],
  "properties": {
    "people": ` + People + `,
    "metadata": {
      "type": "object",
      "properties": {
        "total_people": {"type": "integer", "minimum": 0},
        "total_edits": {"type": "integer", "minimum": 0},
        "version": {"type": "string"}
      }
    },
    "edit_history": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["action"],
        "properties": {
          "timestamp": {"type": "string"},
          "action": {"type": "string"},
          "details": {"type": ["object", "null"]}
        }
      }
    }
  }
}`

// Detect reports the shape of doc, trying the current layout before the
// legacy one.
func (v *Validator) Detect(doc []byte) (Shape, error) {
	currentErr := v.Validate(Document, doc)
	if currentErr == nil {
		return ShapeCurrent, nil
	}
	if err := v.Validate(People, doc); err == nil {
		return ShapeLegacy, nil
	}
	return ShapeUnknown, fmt.Errorf("document matches no known layout: %w", currentErr)
}
