package models

import (
	"errors"
	"server/db"

	"gorm.io/gorm"
)

type User struct {
	ID          uint64 `gorm:"primaryKey"`
	ExternalID  string `gorm:"type:varchar(128);index:uniq_external_id,unique;not null"`
	Email       string `gorm:"type:varchar(150);index:uniq_user_email,unique;not null"`
	DisplayName string `gorm:"type:varchar(150)"`
	CreatedAt   int64
}

// SyncUser inserts a profile for the given external identity once.
// Subsequent calls for the same identity are no-ops returning created=false.
func SyncUser(externalID, email, displayName string) (created bool, err error) {
	var existing User
	err = db.Instance.First(&existing, "external_id = ?", externalID).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	u := User{
		ExternalID:  externalID,
		Email:       email,
		DisplayName: displayName,
	}
	return true, db.Instance.Create(&u).Error
}
