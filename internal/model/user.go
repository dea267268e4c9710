package model

import "time"

// DefaultUserName names the placeholder user every request acts as.
const DefaultUserName = "default"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type UserSetting struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Key    string `gorm:"size:128;not null;index" json:"key"`
	Value  string `gorm:"type:text" json:"value"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
