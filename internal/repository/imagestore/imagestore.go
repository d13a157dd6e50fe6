package imagestore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const publicPrefix = "/bundle-images/"

// Store downloads generated images and persists them under a public static
// directory so email clients and the storefront can reference them by path.
type Store struct {
	dir     string
	timeout time.Duration
	client  *http.Client
}

func New(dir string, timeout time.Duration) *Store {
	return &Store{
		dir:     dir,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// SafeFileName builds <theme>-<bundleName>-<unixms>.jpg with every
// non-alphanumeric character replaced by a hyphen, lower-cased.
func SafeFileName(theme, bundleName string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%d.jpg", slugPart(theme), slugPart(bundleName), now.UnixMilli())
}

func slugPart(raw string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, raw))
}

// SaveFromURL downloads the image within the configured timeout and writes it
// to disk, returning the public path. Callers fall back to the remote URL on
// error.
func (s *Store) SaveFromURL(ctx context.Context, imageURL, bundleName, theme string) (string, error) {
	fileName := SafeFileName(theme, bundleName, time.Now())
	target := filepath.Join(s.dir, fileName)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Add("User-Agent", "Mozilla/5.0 (compatible; AI-Bundle-Generator/1.0)")

	res, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image: %s", res.Status)
	}

	file, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := io.Copy(file, res.Body); err != nil {
		os.Remove(target)
		return "", err
	}

	return publicPrefix + fileName, nil
}
