package model

import "time"

// User is a person tasks can be assigned to. TelegramID is set once the
// user has talked to the bot.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `json:"name"`
	Email      *string   `gorm:"uniqueIndex" json:"email,omitempty"`
	TelegramID *int64    `gorm:"uniqueIndex" json:"telegramId,omitempty"`
	Username   string    `json:"username,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
