package entity

type Agent struct {
	Base

	Name        string `gorm:"uniqueIndex"`
	Description string
	Karma       int64
	APIKeyHash  string `gorm:"uniqueIndex"`
}
