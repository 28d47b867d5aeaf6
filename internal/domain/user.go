package domain

import (
	"time"
)

type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username   string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Role       Role      `gorm:"not null;column:role" json:"role"`
	Superuser  bool      `gorm:"not null;default:false;column:superuser" json:"superuser"`
	DistrictID *int64    `gorm:"column:district_id" json:"district_id"`
	StateID    *int64    `gorm:"column:state_id" json:"state_id"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
