package models

import "time"

// PageContent is one named slot of page copy. The Data column stores an
// opaque serialized payload; it is parsed lazily at the API boundary.
type PageContent struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Section         string    `gorm:"uniqueIndex;not null" json:"section"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	BackgroundImage string    `json:"backgroundImage"`
	Data            string    `json:"-"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
