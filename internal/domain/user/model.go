package user

import "time"

type User struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	Nickname   string     `gorm:"not null"`
	Permission Permission `gorm:"type:varchar(2);not null"`
	HomeID     *uint      `gorm:"index"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}
