package utils

import (
	"github.com/gabriel-vasile/mimetype"
)

// Upload allow-list. Acceptance is decided by byte signature only; the
// client-declared Content-Type and filename extension are ignored.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

// SniffMediaType detects the real MIME type of the buffer and reports
// whether it is an accepted photo/video format. The returned extension is
// the canonical one for the detected type (e.g. ".jpg"), not whatever the
// uploader named the file.
func SniffMediaType(buf []byte) (mime, ext string, ok bool) {
	detected := mimetype.Detect(buf)
	mime = detected.String()
	ext = detected.Extension()
	return mime, ext, allowedMediaTypes[mime]
}
