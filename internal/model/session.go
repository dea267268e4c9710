package model

import "time"

type Session struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Summary   string     `gorm:"type:text" json:"summary"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// ContextPoint is a typed note attached to a session. RelatedElements is kept
// as free text, not a normalized relation.
type ContextPoint struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SessionID       uint      `gorm:"not null;index" json:"session_id"`
	Type            string    `gorm:"size:64;not null" json:"type"`
	Content         string    `gorm:"type:text" json:"content"`
	Timestamp       time.Time `gorm:"not null" json:"timestamp"`
	RelatedElements string    `gorm:"type:text" json:"related_elements"`

	Session *Session `gorm:"foreignKey:SessionID" json:"-"`
}
