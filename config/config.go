package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS  = "" // e.g. "example.com,example2.com"
	MYSQL_DSN    = "" // MySQL will be used if this is set
	SQLITE_FILE  = "" // SQLite will be used if MYSQL_DSN is not configured and this is set
	BIND_ADDRESS = "0.0.0.0:8080"
	DEBUG_MODE   = true

	// Object storage (S3 or anything S3-compatible)
	S3_BUCKET           = ""
	S3_REGION           = "us-east-1"
	S3_KEY              = ""
	S3_SECRET           = ""
	S3_ENDPOINT         = "" // Set for MinIO and other self-hosted setups
	S3_FORCE_PATH_STYLE = false

	// Identity provider
	AUTH_JWT_SECRET = ""

	// Uploads and signed links
	MAX_UPLOAD_SIZE   = int64(50 * 1024 * 1024)
	SIGNED_URL_TTL    = 3600 // seconds
	SIGNED_URL_STRICT = false
	MEDIA_PAGINATION  = true
)

func init() {
	// Local development convenience; a missing .env is not an error
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvBool("S3_FORCE_PATH_STYLE", &S3_FORCE_PATH_STYLE)
	readEnvString("AUTH_JWT_SECRET", &AUTH_JWT_SECRET)
	readEnvInt64("MAX_UPLOAD_SIZE", &MAX_UPLOAD_SIZE)
	readEnvInt("SIGNED_URL_TTL", &SIGNED_URL_TTL)
	readEnvBool("SIGNED_URL_STRICT", &SIGNED_URL_STRICT)
	readEnvBool("MEDIA_PAGINATION", &MEDIA_PAGINATION)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}

func readEnvInt64(name string, value *int64) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return
	}
	*value = f
}
