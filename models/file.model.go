package models

import "time"

// File categories. Background images are stored under the images root and
// never get a files row; everything else goes under the files root.
const (
	CategoryModule       = "module"
	CategoryResources    = "resources"
	CategoryTestimonials = "testimonials"
	CategoryBackground   = "background"
)

// StoredFile records an uploaded file. Filename is the collision-resistant
// stored name, distinct from the user-supplied OriginalName. ModuleID is set
// only for category "module".
type StoredFile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"not null" json:"filename"`
	OriginalName string    `gorm:"not null" json:"originalName"`
	FilePath     string    `gorm:"not null" json:"-"`
	FileType     string    `gorm:"not null" json:"fileType"`
	FileSize     int64     `json:"fileSize"`
	Category     string    `gorm:"not null;index" json:"-"`
	ModuleID     *uint     `gorm:"index" json:"moduleId,omitempty"`
	Description  string    `json:"description"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}

func (StoredFile) TableName() string {
	return "files"
}
