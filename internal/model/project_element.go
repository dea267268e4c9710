package model

type ProjectElement struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Path    string `gorm:"size:1024;not null" json:"path"`
	Type    string `gorm:"size:64;not null" json:"type"`
	Summary string `gorm:"type:text" json:"summary"`
}

// Relationship is a directed edge between two elements. Nothing checks that
// either end exists.
type Relationship struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	FromElementID uint   `gorm:"not null;index" json:"from_element_id"`
	ToElementID   uint   `gorm:"not null;index" json:"to_element_id"`
	Type          string `gorm:"size:64" json:"type"`

	FromElement *ProjectElement `gorm:"foreignKey:FromElementID" json:"-"`
	ToElement   *ProjectElement `gorm:"foreignKey:ToElementID" json:"-"`
}
