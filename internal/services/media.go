package services

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"alphinex-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const BucketUploads = "uploads"

// sniffLen is how many leading bytes http.DetectContentType looks at.
const sniffLen = 512

// uploadTypes are the sniffed content types accepted by SaveMediaAsset.
var uploadTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/gif":       true,
	"image/webp":      true,
	"image/bmp":       true,
	"application/pdf": true,
}

// InlineContentType reports whether an asset of this type may be rendered by
// the browser rather than downloaded.
func InlineContentType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return uploadTypes[strings.ToLower(strings.TrimSpace(mediaType))]
}

// sniffUpload detects the content type from the leading bytes of body and
// returns a reader that still yields the whole body.
func sniffUpload(body io.Reader) (string, io.Reader, error) {
	buffered := bufio.NewReaderSize(body, sniffLen)
	head, err := buffered.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", nil, WrapError(err, "read media file")
	}
	if len(head) == 0 {
		return "", nil, ErrValidation("file", "File is empty")
	}
	contentType := http.DetectContentType(head)
	if !InlineContentType(contentType) {
		return "", nil, ErrValidation("file", "Only image and PDF files are allowed")
	}
	mediaType, _, _ := strings.Cut(contentType, ";")
	return mediaType, buffered, nil
}

func EnsureStoragePath(base string, bucket string) (string, error) {
	path := filepath.Join(base, bucket)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", err
	}
	return path, nil
}

// SaveMediaAsset streams body to disk under basePath/bucket while hashing it
// and records the asset. The stored content type comes from the bytes, never
// from the client, and only images and PDFs are accepted. The file is removed
// if anything after creation fails.
func SaveMediaAsset(ctx context.Context, db *sqlx.DB, basePath, bucket, filename string, body io.Reader) (models.MediaAsset, error) {
	contentType, body, err := sniffUpload(body)
	if err != nil {
		return models.MediaAsset{}, err
	}
	asset := models.MediaAsset{
		ID:          uuid.NewString(),
		Bucket:      bucket,
		ContentType: contentType,
		Filename:    optionalText(&filename),
	}
	asset.StorageKey = asset.ID
	bucketPath, err := EnsureStoragePath(basePath, bucket)
	if err != nil {
		return models.MediaAsset{}, WrapError(err, "prepare storage")
	}
	targetPath := filepath.Join(bucketPath, asset.StorageKey)

	file, err := os.Create(targetPath)
	if err != nil {
		return models.MediaAsset{}, WrapError(err, "create media file")
	}
	hasher := sha256.New()
	writer := io.MultiWriter(file, hasher)
	size, err := io.Copy(writer, body)
	_ = file.Close()
	if err != nil {
		_ = os.Remove(targetPath)
		return models.MediaAsset{}, WrapError(err, "write media file")
	}
	if size == 0 {
		_ = os.Remove(targetPath)
		return models.MediaAsset{}, ErrValidation("file", "File is empty")
	}
	sum := hex.EncodeToString(hasher.Sum(nil))
	asset.Sha256 = &sum
	asset.SizeBytes = size
	asset.CreatedAt = now()

	_, err = db.NamedExecContext(ctx, `
INSERT INTO media_assets (id, bucket, storage_key, filename, content_type, size_bytes, sha256, created_at)
VALUES (:id, :bucket, :storage_key, :filename, :content_type, :size_bytes, :sha256, :created_at)
`, asset)
	if err != nil {
		_ = os.Remove(targetPath)
		return models.MediaAsset{}, WrapError(err, "insert media asset")
	}
	return asset, nil
}

func BuildAssetURL(assetID string) string {
	return "/api/media/" + assetID
}

func GetMediaAsset(ctx context.Context, db *sqlx.DB, assetID string) (models.MediaAsset, error) {
	var asset models.MediaAsset
	err := getOne(ctx, db, &asset, `
SELECT id, bucket, storage_key, filename, content_type, size_bytes, sha256, created_at
FROM media_assets WHERE id = ?`, assetID)
	return asset, notFoundOr(err, "File not found")
}

// AssetPath is where the bytes of asset live under basePath.
func AssetPath(basePath string, asset models.MediaAsset) string {
	return filepath.Join(basePath, asset.Bucket, asset.StorageKey)
}

func DeleteMediaAsset(ctx context.Context, db *sqlx.DB, basePath string, assetID string) error {
	asset, err := GetMediaAsset(ctx, db, assetID)
	if err != nil {
		return err
	}
	if err := deleteByID(ctx, db, "media_assets", assetID, "File not found"); err != nil {
		return err
	}
	if err := os.Remove(AssetPath(basePath, asset)); err != nil && !os.IsNotExist(err) {
		return WrapError(err, "remove media file")
	}
	return nil
}
