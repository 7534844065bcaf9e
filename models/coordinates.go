package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Coordinates is the bounding box attached to an image: center-x, center-y,
// width, height. It is stored as a JSON text column so the same model works
// on both the postgres and sqlite drivers.
type Coordinates []int64

// Value implements driver.Valuer. A nil box is stored as NULL.
func (c Coordinates) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	b, err := json.Marshal([]int64(c))
	if err != nil {
		return nil, fmt.Errorf("failed to encode coordinates: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (c *Coordinates) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported coordinates column type %T", value)
	}
	var coords []int64
	if err := json.Unmarshal(data, &coords); err != nil {
		return fmt.Errorf("failed to decode coordinates %q: %w", data, err)
	}
	*c = coords
	return nil
}

// GormDataType tells GORM which column type to create.
func (Coordinates) GormDataType() string {
	return "text"
}
