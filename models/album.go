package models

type Album struct {
	ID        uint64 `gorm:"primaryKey"`
	OwnerID   string `gorm:"type:varchar(128);not null;index:owner_album_updated,priority:1"`
	Name      string `gorm:"type:varchar(300);not null"`
	CreatedAt int64
	UpdatedAt int64 `gorm:"index:owner_album_updated,priority:2"`
}
