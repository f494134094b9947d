package token

import "time"

// AuthToken is the single live token pair of one user. Rotation
// overwrites the row in place, which is what makes the previous refresh
// token permanently invalid.
type AuthToken struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	AccessToken  string    `gorm:"column:access_token;type:varchar(64);not null;uniqueIndex"`
	RefreshToken string    `gorm:"column:refresh_token;type:varchar(64);not null;uniqueIndex"`
	IssuedAt     time.Time `gorm:"column:issued_at;type:timestamptz;not null"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}
