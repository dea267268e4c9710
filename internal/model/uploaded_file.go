package model

import "time"

type UploadedFile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	OriginalName string    `gorm:"size:512;not null" json:"original_name"`
	SavedPath    string    `gorm:"size:1024;not null" json:"saved_path"`
	MimeType     string    `gorm:"size:255" json:"mime_type"`
	Size         int64     `gorm:"not null" json:"size"`
	Hash         string    `gorm:"size:64;index" json:"hash"`
	UploadTime   time.Time `gorm:"not null" json:"upload_time"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// FileUploadedEvent is published once per stored file.
type FileUploadedEvent struct {
	FileID    uint      `json:"file_id"`
	UserID    uint      `json:"user_id"`
	Filename  string    `json:"filename"`
	SavedPath string    `json:"saved_path"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	Hash      string    `json:"hash"`
	At        time.Time `json:"at"`
}
