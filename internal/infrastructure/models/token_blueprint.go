package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenBlueprint is the stored document of the "token" collection.
type TokenBlueprint struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"type:text;not null"`
	Symbol          string    `gorm:"type:varchar(32);not null"`
	Decimals        int       `gorm:"not null"`
	TotalSupply     float64   `gorm:"type:double precision;not null"`
	Chain           string    `gorm:"type:varchar(255);not null;index"`
	Description     *string   `gorm:"type:text"`
	ImageURL        *string   `gorm:"type:text"`
	Website         *string   `gorm:"type:text"`
	Twitter         *string   `gorm:"type:text"`
	Telegram        *string   `gorm:"type:text"`
	OwnerWallet     *string   `gorm:"type:varchar(255);index"`
	Features        []string  `gorm:"type:text;serializer:json"`
	DeployStatus    string    `gorm:"type:varchar(20);not null"`
	ContractAddress *string   `gorm:"type:varchar(255)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName keeps the collection name the client tooling expects.
func (TokenBlueprint) TableName() string {
	return "token"
}
