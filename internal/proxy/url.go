package proxy

import (
	"net/url"
	"strings"
)

// StripRoutePrefix removes the proxy's routing prefix from an inbound path so
// the remainder can be appended to the upstream base URL.
func StripRoutePrefix(path, prefix string) string {
	if prefix == "" || prefix == "/" {
		return path
	}
	if path == prefix {
		return "/"
	}
	if strings.HasPrefix(path, prefix+"/") {
		return strings.TrimPrefix(path, prefix)
	}
	return path
}

// BuildUpstreamURL joins the upstream base URL with the rewritten path and
// re-appends the original query parameters.
func BuildUpstreamURL(baseURL, path string, query url.Values) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String(), nil
}
