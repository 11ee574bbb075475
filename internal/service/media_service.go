package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF for DecodeConfig
	_ "image/jpeg" // register JPEG for DecodeConfig
	_ "image/png"  // register PNG for DecodeConfig
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"
	"time"

	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"github.com/damoang/pcmall-backend/pkg/storage"
)

// Media 에러 정의
var (
	ErrStorageDisabled  = errors.New("file storage is not configured")
	ErrFileTooLarge     = errors.New("file too large")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrInvalidFolder    = errors.New("invalid upload folder")
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// 업로드 가능한 폴더
var uploadFolders = []string{"products", "categories", "brands", "shops", "misc"}

// MediaUploadResult 업로드 결과
type MediaUploadResult struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// MediaService handles image uploads to S3-compatible storage
type MediaService struct {
	uploader storage.Uploader
	maxSize  int64
	now      func() time.Time
}

// NewMediaService creates a new MediaService. uploader may be nil, in which
// case every upload fails with ErrStorageDisabled.
func NewMediaService(uploader storage.Uploader, maxSizeMB int) *MediaService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &MediaService{
		uploader: uploader,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		now:      time.Now,
	}
}

// Enabled reports whether uploads are possible
func (s *MediaService) Enabled() bool {
	return s.uploader != nil
}

// UploadImage validates and stores an image. The content type is sniffed
// from the bytes; the client-declared type and extension are ignored.
func (s *MediaService) UploadImage(ctx context.Context, file *multipart.FileHeader, folder string) (*MediaUploadResult, error) {
	if !s.Enabled() {
		return nil, ErrStorageDisabled
	}
	if folder == "" {
		folder = "misc"
	}
	if !slices.Contains(uploadFolders, folder) {
		return nil, ErrInvalidFolder
	}
	if file.Size > s.maxSize {
		return nil, fmt.Errorf("%w (max %dMB)", ErrFileTooLarge, s.maxSize/(1024*1024))
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	// 헤더의 Size 를 믿지 않고 한도 + 1 바이트까지만 읽는다
	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w (max %dMB)", ErrFileTooLarge, s.maxSize/(1024*1024))
	}

	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	if !slices.Contains(allowedImageTypes, contentType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	var width, height int
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		width, height = cfg.Width, cfg.Height
	}

	key := storage.GenerateKey(folder, "upload"+imageExtensions[contentType], s.now())
	result, err := s.uploader.Upload(ctx, key, bytes.NewReader(data), contentType, int64(len(data)))
	if err != nil {
		return nil, err
	}

	pkglogger.GetLogger().Info().
		Str("key", result.Key).
		Int64("size", result.Size).
		Msg("image uploaded")

	return &MediaUploadResult{
		Key:         result.Key,
		URL:         result.URL,
		Filename:    file.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       width,
		Height:      height,
	}, nil
}

// Delete removes a previously uploaded object
func (s *MediaService) Delete(ctx context.Context, key string) error {
	if !s.Enabled() {
		return ErrStorageDisabled
	}
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	folder, _, ok := strings.Cut(key, "/")
	if !ok || !slices.Contains(uploadFolders, folder) || strings.Contains(key, "..") {
		return ErrInvalidFolder
	}
	return s.uploader.Delete(ctx, key)
}
