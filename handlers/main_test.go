package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"server/auth"
	"server/config"
	"server/db"
	"server/models"
	"server/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Minimal real file signatures for upload tests
var (
	gifBytes = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff\x21\xf9\x04\x00\x00\x00\x00\x00\x2c\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02\x44\x01\x00\x3b")
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	exeBytes = append([]byte("MZ\x90\x00\x03\x00\x00\x00\x04\x00\x00\x00\xff\xff"), make([]byte, 64)...)
)

type fakeStore struct {
	mu       sync.Mutex
	puts     map[string]string // key -> contentType
	deleted  []string          // URLs passed to Delete
	failSign bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{puts: map[string]string{}}
}

func (f *fakeStore) Put(buf []byte, key, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts[key] = contentType
	return "https://test-bucket.s3.amazonaws.com/" + key, nil
}

func (f *fakeStore) Delete(urls ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, urls...)
	return nil
}

func (f *fakeStore) Sign(url string, ttl time.Duration) (string, error) {
	if f.failSign {
		return "", errors.New("signing unavailable")
	}
	return url + "?signed=1", nil
}

func (f *fakeStore) deletedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// setupTest wires a fresh in-memory database, a fake object store and the
// real router for one test.
func setupTest(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AUTH_JWT_SECRET = "test-secret"
	config.SQLITE_FILE = fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	config.MYSQL_DSN = ""
	config.SIGNED_URL_STRICT = false
	config.MEDIA_PAGINATION = true
	config.MAX_UPLOAD_SIZE = 50 * 1024 * 1024
	db.Init()
	models.Init()

	store := newFakeStore()
	storage.Instance = store

	router := gin.New()
	router.GET("/health", Health)
	authRouter := &auth.Router{Base: router}
	authRouter.POST("/v1/users", UserSync)
	authRouter.GET("/v1/albums", AlbumList)
	authRouter.POST("/v1/albums", AlbumCreate)
	authRouter.PUT("/v1/albums/:albumId", AlbumRename)
	authRouter.DELETE("/v1/albums/:albumId", AlbumDelete)
	authRouter.POST("/v1/media", MediaUpload)
	authRouter.GET("/v1/media/:albumId", MediaListByAlbum)
	authRouter.DELETE("/v1/media/:mediaId", MediaDelete)
	return router, store
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": userID + "@example.com",
		"name":  "User " + userID,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.AUTH_JWT_SECRET))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doUpload(t *testing.T, router *gin.Engine, bearer, albumID, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if albumID != "" {
		if err := mw.WriteField("albumId", albumID); err != nil {
			t.Fatalf("writing albumId field: %v", err)
		}
	}
	if content != nil {
		part, err := mw.CreateFormFile("mediaFile", filename)
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		if _, err = part.Write(content); err != nil {
			t.Fatalf("writing form file: %v", err)
		}
	}
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/v1/media", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", bearer)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", w.Body.String(), err)
	}
}

func createAlbum(t *testing.T, router *gin.Engine, bearer, name string) AlbumInfo {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/v1/albums", bearer, gin.H{"albumName": name})
	if w.Code != http.StatusCreated {
		t.Fatalf("album create returned %d: %s", w.Code, w.Body.String())
	}
	var info AlbumInfo
	decodeJSON(t, w, &info)
	return info
}
