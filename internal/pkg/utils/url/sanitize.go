package url

import (
	"net/url"
)

// SanitizeURLString hides the parts of a URL that carry credentials.
// The userinfo is removed and the query string, for example the signature of a presigned URL, is replaced with "*****".
// If the URL is malformed, it returns the original string.
func SanitizeURLString(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if u.User == nil && u.RawQuery == "" {
		return rawURL
	}

	u.User = nil
	if u.RawQuery != "" {
		u.RawQuery = "*****"
	}
	return u.String()
}
