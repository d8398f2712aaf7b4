package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"watch-store/pkg/utils"

	"go.uber.org/zap"
)

// Store is the narrow contract with the media-hosting collaborator:
// given image bytes, obtain a stable URL plus an opaque deletion handle;
// given a handle, best-effort remove the asset.
type Store interface {
	Upload(filename string, content []byte) (url string, handle string, err error)
	Delete(handle string) error
}

type localStore struct {
	dir     string
	baseURL string
	log     *zap.Logger
}

func NewStore(cfg utils.MediaConfig, log *zap.Logger) (Store, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", cfg.UploadDir, err)
	}

	return &localStore{
		dir:     cfg.UploadDir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     log.With(zap.String("component", "media")),
	}, nil
}

func (s *localStore) Upload(filename string, content []byte) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return "", "", fmt.Errorf("unsupported image type %s", ext)
	}

	// Unique name so concurrent uploads never collide
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	dest := filepath.Join(s.dir, name)

	if err := os.WriteFile(dest, content, 0644); err != nil {
		return "", "", fmt.Errorf("save image %s: %w", name, err)
	}

	url := fmt.Sprintf("%s/uploads/products/%s", s.baseURL, name)
	return url, name, nil
}

func (s *localStore) Delete(handle string) error {
	if handle == "" {
		return nil
	}

	// Handle is the bare filename; refuse anything with path parts
	if handle != filepath.Base(handle) {
		return fmt.Errorf("invalid media handle %q", handle)
	}

	if err := os.Remove(filepath.Join(s.dir, handle)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image %s: %w", handle, err)
	}

	return nil
}
