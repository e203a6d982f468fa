package entity

import (
	"database/sql"
	"time"
)

type MagicLink struct {
	Base

	CreatorID string
	Creator   Creator `gorm:"foreignKey:CreatorID"`

	TokenHash string `gorm:"uniqueIndex"`
	ExpiredAt time.Time
	UsedAt    sql.NullTime
}
