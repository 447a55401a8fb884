package models

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Login        string    `gorm:"uniqueIndex;not null" json:"login"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Reading is one stored BMI calculation.
type Reading struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"index;not null" json:"user_id"`
	Weight      float64   `gorm:"not null" json:"weight"`
	Height      float64   `gorm:"not null" json:"height"`
	Sex         string    `gorm:"not null" json:"sex"`
	BMI         float64   `gorm:"column:bmi;not null" json:"bmi"`
	IdealWeight float64   `gorm:"not null" json:"ideal_weight"`
	Category    string    `gorm:"not null" json:"category"`
	Advice      string    `gorm:"not null" json:"advice"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
