package models

import "time"

// UserDevice is a push target registered through SNS. Only a hash of the
// device token is stored.
type UserDevice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_device_user_token;not null" json:"user_id"`
	Platform    string    `gorm:"size:16" json:"platform"` // android | ios
	TokenHash   string    `gorm:"size:64;uniqueIndex:idx_device_user_token" json:"-"`
	EndpointARN string    `gorm:"size:256" json:"endpoint_arn"`
	Enabled     bool      `gorm:"default:true" json:"enabled"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedAt   time.Time `json:"created_at"`
}
