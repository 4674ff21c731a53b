package model

import "time"

// User 注册用户，密码明文保存（演示用途）
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Username  string    `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (User) TableName() string { return "users" }

// PublicUser 对外输出的用户信息，不含密码
type PublicUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}
