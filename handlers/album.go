package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"server/auth"
	"server/db"
	"server/models"
	"server/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AlbumInfo struct {
	ID        uint64  `json:"albumId"`
	Name      string  `json:"albumName"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
	Count     int64   `json:"count"`
	CoverURL  *string `json:"coverUrl"`
	CoverType *string `json:"coverType"`
}

type AlbumSaveRequest struct {
	Name string `json:"albumName"`
}

type AlbumDeletedResponse struct {
	AlbumID uint64 `json:"albumId"`
}

// signStorageURL applies the signed-URL policy: on signing failure either
// fall back to the raw storage URL (default) or fail the request (strict).
// The second return value is false only in strict mode.
func signStorageURL(raw string) (string, bool) {
	signed, err := storage.Instance.Sign(raw, storage.SignedURLTTL())
	if err != nil {
		log.Printf("Signing failed for %s: %v", raw, err)
		if storage.SignStrict() {
			return "", false
		}
		return raw, true
	}
	return signed, true
}

// enrichAlbum fills in the derived fields: media count and the cover, which
// is the most recently created media item in the album.
func enrichAlbum(album *models.Album, info *AlbumInfo) bool {
	info.ID = album.ID
	info.Name = album.Name
	info.CreatedAt = album.CreatedAt
	info.UpdatedAt = album.UpdatedAt
	if err := db.Instance.Model(&models.Media{}).
		Where("album_id = ?", album.ID).
		Count(&info.Count).Error; err != nil {
		return false
	}
	if info.Count == 0 {
		return true
	}
	var cover models.Media
	err := db.Instance.
		Where("album_id = ?", album.ID).
		Order("created_at DESC").
		Limit(1).
		First(&cover).Error
	if err != nil {
		// Raced with a delete; an empty cover is fine
		return true
	}
	url, ok := signStorageURL(cover.StorageURL)
	if !ok {
		return false
	}
	info.CoverURL = &url
	info.CoverType = &cover.Type
	return true
}

func AlbumList(c *gin.Context, identity *auth.Identity) {
	var albums []models.Album
	err := db.Instance.
		Where("owner_id = ?", identity.UserID).
		Order("updated_at DESC").
		Find(&albums).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []AlbumInfo{}
	for i := range albums {
		info := AlbumInfo{}
		if !enrichAlbum(&albums[i], &info) {
			c.JSON(http.StatusInternalServerError, SignErrorResponse)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

func AlbumCreate(c *gin.Context, identity *auth.Identity) {
	r := AlbumSaveRequest{}
	_ = c.ShouldBindJSON(&r)
	name := strings.TrimSpace(r.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "albumName is required"})
		return
	}
	album := models.Album{
		OwnerID: identity.UserID,
		Name:    name,
	}
	if err := db.Instance.Create(&album).Error; err != nil {
		log.Printf("Album create failed: %v", err)
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	c.JSON(http.StatusCreated, AlbumInfo{
		ID:        album.ID,
		Name:      album.Name,
		CreatedAt: album.CreatedAt,
		UpdatedAt: album.UpdatedAt,
	})
}

func AlbumRename(c *gin.Context, identity *auth.Identity) {
	albumID, err := strconv.ParseUint(c.Param("albumId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, AlbumNotFoundResponse)
		return
	}
	r := AlbumSaveRequest{}
	_ = c.ShouldBindJSON(&r)
	name := strings.TrimSpace(r.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "albumName is required"})
		return
	}
	var album models.Album
	err = db.Instance.First(&album, "id = ? AND owner_id = ?", albumID, identity.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, AlbumNotFoundResponse)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	album.Name = name
	if err = db.Instance.Save(&album).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	info := AlbumInfo{}
	if !enrichAlbum(&album, &info) {
		c.JSON(http.StatusInternalServerError, SignErrorResponse)
		return
	}
	c.JSON(http.StatusOK, info)
}

// AlbumDelete cascades: blobs first (best-effort), then the media records,
// then the album itself. The steps are independent store operations, not a
// transaction; a blob delete failure is logged and does not stop the rest.
func AlbumDelete(c *gin.Context, identity *auth.Identity) {
	albumID, err := strconv.ParseUint(c.Param("albumId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, AlbumNotFoundResponse)
		return
	}
	var album models.Album
	err = db.Instance.First(&album, "id = ? AND owner_id = ?", albumID, identity.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, AlbumNotFoundResponse)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	var urls []string
	err = db.Instance.Model(&models.Media{}).
		Where("album_id = ? AND owner_id = ?", album.ID, identity.UserID).
		Pluck("storage_url", &urls).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	if len(urls) > 0 {
		if err = storage.Instance.Delete(urls...); err != nil {
			log.Printf("Album %d: blob delete failed (continuing): %v", album.ID, err)
		}
	}
	if err = db.Instance.Delete(&models.Media{}, "album_id = ? AND owner_id = ?", album.ID, identity.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	if err = db.Instance.Delete(&album).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, AlbumDeletedResponse{AlbumID: album.ID})
}
