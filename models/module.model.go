package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Module represents a training unit with attachable files. Topics and
// Objectives are ordered string lists stored serialized.
type Module struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Topics      datatypes.JSON `json:"topics"`
	Objectives  datatypes.JSON `json:"objectives"`
	Duration    string         `json:"duration"`
	StartDate   string         `json:"startDate"`
	EndDate     string         `json:"endDate"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// JSONList serializes an ordered list of strings for a JSON column. A nil
// slice becomes an empty list, never null.
func JSONList(items ...string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}
