package models

import "time"

// Roles carried in the JWT "role" claim.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"unique;not null;size:50" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	FullName       string    `gorm:"not null" json:"full_name"`
	Role           string    `gorm:"not null;size:20" json:"role"`
	ProfilePicture string    `gorm:"size:1000" json:"profile_picture"`
	Credit         int64     `gorm:"not null;default:0" json:"credit"`
	Score          int64     `gorm:"not null;default:0" json:"score"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserInfoUpdateRequest struct {
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
}

// LeaderboardEntry is one row of the global leaderboard. Rank is a dense
// rank over the entire population: tied scores share a rank and the next
// distinct score gets the previous rank + 1.
type LeaderboardEntry struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
	Score          int64  `json:"score"`
	Rank           int64  `json:"rank"`
}
