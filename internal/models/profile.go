package models

import (
	"github.com/arcians/profile-registry/pkg/timeutil"
)

// Profile is a registered identity record. It is written once and never
// updated. Bio and PhotoURL are nil when the client did not send them.
type Profile struct {
	ID          string        `gorm:"type:varchar(36);primaryKey" bson:"id" json:"id"`
	Name        string        `gorm:"type:text;not null" bson:"name" json:"name"`
	Bio         *string       `gorm:"type:text" bson:"bio" json:"bio"`
	Role        string        `gorm:"type:text;not null" bson:"role" json:"role"`
	PhotoURL    *string       `gorm:"type:text" bson:"photo_url" json:"photo_url"`
	EncryptedID string        `gorm:"type:varchar(12);not null" bson:"encrypted_id" json:"encrypted_id"`
	CreatedAt   timeutil.Time `gorm:"type:varchar(40);not null;autoCreateTime:false" bson:"created_at" json:"created_at" swaggertype:"string" format:"date-time"`
}

// TableName pins the table to the same name as the document collection.
func (Profile) TableName() string { return "profiles" }
