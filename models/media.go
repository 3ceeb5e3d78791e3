package models

const (
	MediaTypePhoto = "photo"
	MediaTypeVideo = "video"
)

type Media struct {
	ID         uint64 `gorm:"primaryKey"`
	AlbumID    uint64 `gorm:"not null;index:album_media_created,priority:1"`
	Album      Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	OwnerID    string `gorm:"type:varchar(128);not null;index"`
	Type       string `gorm:"type:varchar(10);not null"` // "photo" or "video"
	StorageURL string `gorm:"type:varchar(2000);not null"`
	IsFavorite bool   `gorm:"not null;default:false"`
	CreatedAt  int64  `gorm:"index:album_media_created,priority:2"`
}

// TypeFromMime maps a sniffed MIME type to the stored media type.
func TypeFromMime(mimeType string) string {
	if len(mimeType) >= 6 && mimeType[:6] == "video/" {
		return MediaTypeVideo
	}
	return MediaTypePhoto
}
