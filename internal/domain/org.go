package domain

import (
	"time"
)

type State struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null;column:name" json:"name"`
}

func (State) TableName() string {
	return "state"
}

type District struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	StateID int64  `gorm:"not null;index;column:state_id" json:"state_id"`
	Name    string `gorm:"not null;index;column:name" json:"name"`
}

func (District) TableName() string {
	return "district"
}

type Facility struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"not null;column:name" json:"name"`
	DistrictID int64     `gorm:"not null;index;column:district_id" json:"district_id"`
	StateID    int64     `gorm:"not null;index;column:state_id" json:"state_id"`
	CreatedBy  int64     `gorm:"not null;index;column:created_by" json:"created_by"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (Facility) TableName() string {
	return "facility"
}
