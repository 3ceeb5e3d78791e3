package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"server/auth"
	"server/config"
	"server/db"
	"server/models"
	"server/storage"
	"server/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MediaInfo struct {
	ID         uint64 `json:"mediaId"`
	AlbumID    uint64 `json:"albumId"`
	Type       string `json:"mediaType"`
	URL        string `json:"mediaUrl"`
	IsFavorite bool   `json:"isFavorite"`
	CreatedAt  int64  `json:"createdAt"`
}

type MediaDeletedResponse struct {
	MediaID uint64 `json:"mediaId"`
}

const maxListLimit = 100

func ownsAlbum(ownerID string, albumID uint64) (bool, error) {
	var album models.Album
	err := db.Instance.First(&album, "id = ? AND owner_id = ?", albumID, ownerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// MediaUpload stores the file under a content-derived key and records it.
// The declared Content-Type and the original filename play no part in
// acceptance; only the sniffed byte signature does.
func MediaUpload(c *gin.Context, identity *auth.Identity) {
	fileHeader, err := c.FormFile("mediaFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mediaFile is required"})
		return
	}
	albumParam := c.PostForm("albumId")
	if albumParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "albumId is required"})
		return
	}
	albumID, err := strconv.ParseUint(albumParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, AlbumNotFoundResponse)
		return
	}
	owns, err := ownsAlbum(identity.UserID, albumID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if !owns {
		c.JSON(http.StatusNotFound, AlbumNotFoundResponse)
		return
	}
	if fileHeader.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mediaFile is empty"})
		return
	}
	if fileHeader.Size > config.MAX_UPLOAD_SIZE {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the maximum upload size"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mediaFile is unreadable"})
		return
	}
	buf, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mediaFile is unreadable"})
		return
	}
	mime, ext, ok := utils.SniffMediaType(buf)
	if !ok {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{
			"error":    "unsupported or invalid file type",
			"detected": mime,
		})
		return
	}
	key := storage.MediaKey(identity.UserID, time.Now(), ext)
	storageURL, err := storage.Instance.Put(buf, key, mime)
	if err != nil {
		log.Printf("Upload to storage failed for key %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, StorageErrorResponse)
		return
	}
	media := models.Media{
		AlbumID:    albumID,
		OwnerID:    identity.UserID,
		Type:       models.TypeFromMime(mime),
		StorageURL: storageURL,
	}
	if err = db.Instance.Create(&media).Error; err != nil {
		log.Printf("Media record create failed: %v", err)
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	signed, ok := signStorageURL(media.StorageURL)
	if !ok {
		c.JSON(http.StatusInternalServerError, SignErrorResponse)
		return
	}
	c.JSON(http.StatusCreated, MediaInfo{
		ID:         media.ID,
		AlbumID:    media.AlbumID,
		Type:       media.Type,
		URL:        signed,
		IsFavorite: media.IsFavorite,
		CreatedAt:  media.CreatedAt,
	})
}

func MediaListByAlbum(c *gin.Context, identity *auth.Identity) {
	albumID, err := strconv.ParseUint(c.Param("albumId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, AlbumNotFoundResponse)
		return
	}
	owns, err := ownsAlbum(identity.UserID, albumID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if !owns {
		c.JSON(http.StatusNotFound, AlbumNotFoundResponse)
		return
	}
	tx := db.Instance.
		Where("album_id = ? AND owner_id = ?", albumID, identity.UserID).
		Order("created_at DESC")
	if config.MEDIA_PAGINATION {
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))
		if page > 0 && limit > 0 {
			if limit > maxListLimit {
				limit = maxListLimit
			}
			tx = tx.Offset((page - 1) * limit).Limit(limit)
		}
	}
	var items []models.Media
	if err = tx.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	result := []MediaInfo{}
	for _, m := range items {
		signed, ok := signStorageURL(m.StorageURL)
		if !ok {
			c.JSON(http.StatusInternalServerError, SignErrorResponse)
			return
		}
		result = append(result, MediaInfo{
			ID:         m.ID,
			AlbumID:    m.AlbumID,
			Type:       m.Type,
			URL:        signed,
			IsFavorite: m.IsFavorite,
			CreatedAt:  m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, result)
}

// MediaDelete removes the blob best-effort before the record: a storage
// failure is logged and the database deletion still proceeds.
func MediaDelete(c *gin.Context, identity *auth.Identity) {
	mediaID, err := strconv.ParseUint(c.Param("mediaId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, MediaNotFoundResponse)
		return
	}
	var media models.Media
	err = db.Instance.First(&media, "id = ? AND owner_id = ?", mediaID, identity.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, MediaNotFoundResponse)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	if err = storage.Instance.Delete(media.StorageURL); err != nil {
		log.Printf("Media %d: blob delete failed (continuing): %v", media.ID, err)
	}
	if err = db.Instance.Delete(&media).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	c.JSON(http.StatusOK, MediaDeletedResponse{MediaID: media.ID})
}
