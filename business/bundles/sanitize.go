package bundles

import (
	"net/url"
	"regexp"
	"strings"
)

// SanitizeText strips control characters and anything outside the printable
// basic multilingual plane, which the catalog API rejects.
func SanitizeText(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f) {
			return -1
		}
		if r > 0xFFFF {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(cleaned)
}

var (
	slugInvalid   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces    = regexp.MustCompile(`\s+`)
	slugHyphenRun = regexp.MustCompile(`-+`)
)

// Slugify turns a bundle name into a url-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugHyphenRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// AbsoluteImageURL sanitizes and validates an image URL, rewriting relative
// paths against the configured base URL. The second return is false when no
// valid URL could be produced.
func AbsoluteImageURL(raw, baseURL string) (string, bool) {
	sanitized := SanitizeText(raw)
	if sanitized == "" {
		return "", false
	}

	if strings.HasPrefix(sanitized, "http://") || strings.HasPrefix(sanitized, "https://") {
		parsed, err := url.Parse(sanitized)
		if err != nil || parsed.Host == "" {
			return "", false
		}
		return parsed.String(), true
	}

	full := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(sanitized, "/")
	parsed, err := url.Parse(full)
	if err != nil || parsed.Host == "" {
		return "", false
	}
	return parsed.String(), true
}
