package rotation

import "time"

// Rotation is an ordered on-call list with a single pointer to the member
// currently holding the slot. CurrentUserID stays nil until someone seeds it
// explicitly; advancing never picks an initial holder on its own.
type Rotation struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	Name          string    `gorm:"not null"`
	CurrentUserID *uint     `gorm:"index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// Member fixes one user's position within a rotation. SortOrder is assigned
// at insertion, starting at 1, and is never reassigned.
type Member struct {
	RotationID uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"primaryKey"`
	SortOrder  int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Member) TableName() string {
	return "rotation_members"
}
