// Package storage keeps uploaded images (recipe pictures, avatars) on the
// local filesystem under the configured media root.
//
// Images arrive as base64, usually wrapped in a data URL
// ("data:image/png;base64,...."). The declared type is ignored: the decoded
// bytes are sniffed with mimetype and only common raster formats are kept.
package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/deppfellow/foodgram/internal/config"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Directories under the media root.
const (
	DirAvatars = "avatars"
	DirRecipes = "recipes"
)

var (
	ErrEmptyImage    = errors.New("image is empty")
	ErrInvalidBase64 = errors.New("image is not valid base64")
	ErrImageTooLarge = errors.New("image is too large")
	ErrNotAnImage    = errors.New("file is not a supported image (jpeg, png, gif, webp)")
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Storage writes and removes media files.
type Storage struct {
	root      string
	mediaURL  string
	publicURL string
	maxBytes  int
	logger    *zerolog.Logger
}

func New(cfg *config.Config, logger *zerolog.Logger) *Storage {
	storageCfg := cfg.Storage
	if storageCfg == nil {
		storageCfg = config.DefaultStorageConfig()
	}

	return &Storage{
		root:      storageCfg.MediaRoot,
		mediaURL:  "/" + strings.Trim(storageCfg.MediaURL, "/"),
		publicURL: strings.TrimRight(cfg.Server.PublicURL, "/"),
		maxBytes:  storageCfg.MaxImageBytes,
		logger:    logger,
	}
}

// Root is the directory files are written to.
func (s *Storage) Root() string {
	return s.root
}

// MediaURL is the URL prefix media is served under, e.g. "/media".
func (s *Storage) MediaURL() string {
	return s.mediaURL
}

// Decode turns a data URL or bare base64 string into bytes and returns
// them with the detected file extension (".png", ...).
func (s *Storage) Decode(encoded string) ([]byte, string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, "", ErrEmptyImage
	}

	if strings.HasPrefix(encoded, "data:") {
		comma := strings.IndexByte(encoded, ',')
		if comma < 0 || !strings.HasSuffix(encoded[:comma], ";base64") {
			return nil, "", ErrInvalidBase64
		}
		encoded = encoded[comma+1:]
	}

	if s.maxBytes > 0 && base64.StdEncoding.DecodedLen(len(encoded)) > s.maxBytes+2 {
		return nil, "", ErrImageTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
		if err != nil {
			return nil, "", ErrInvalidBase64
		}
	}
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return nil, "", ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	if !allowedTypes[mtype.String()] {
		return nil, "", ErrNotAnImage
	}
	return data, mtype.Extension(), nil
}

// SaveBase64 decodes an image and stores it under dir with a random name.
// It returns the path relative to the media root, e.g. "recipes/<uuid>.png".
func (s *Storage) SaveBase64(dir, encoded string) (string, error) {
	data, ext, err := s.Decode(encoded)
	if err != nil {
		return "", err
	}

	rel := path.Join(dir, uuid.NewString()+ext)
	full := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}

	s.logger.Debug().Str("path", rel).Int("bytes", len(data)).Msg("media file stored")
	return rel, nil
}

// Delete removes a stored file. Missing files and empty paths are ignored.
func (s *Storage) Delete(rel string) {
	if rel == "" {
		return
	}

	clean := path.Clean("/" + rel)
	full := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn().Err(err).Str("path", rel).Msg("failed to delete media file")
	}
}

// URL is the absolute URL of a stored file, "" for an empty path.
func (s *Storage) URL(rel string) string {
	if rel == "" {
		return ""
	}
	return s.publicURL + s.mediaURL + "/" + strings.TrimLeft(rel, "/")
}
