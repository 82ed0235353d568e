package solr

import (
	"net/url"
	"strings"
)

// addParameter appends key=value to the query string keeping existing
// parameters and their order. url.Values is not used here because Encode
// sorts keys.
func addParameter(rawURL, key, value string) string {
	base, anchor := splitAnchor(rawURL)

	sep := "?"
	if i := strings.IndexByte(base, '?'); i >= 0 {
		sep = "&"
		if i == len(base)-1 || strings.HasSuffix(base, "&") {
			sep = ""
		}
	}

	return base + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value) + anchor
}

// removeParameter drops every occurrence of key from the query string.
func removeParameter(rawURL, key string) string {
	base, anchor := splitAnchor(rawURL)

	path, query, ok := strings.Cut(base, "?")
	if !ok {
		return rawURL
	}

	kept := make([]string, 0, strings.Count(query, "&")+1)
	for _, pair := range strings.Split(query, "&") {
		if pair == "" {
			continue
		}
		name, _, _ := strings.Cut(pair, "=")
		if n, err := url.QueryUnescape(name); err == nil && n == key {
			continue
		}
		kept = append(kept, pair)
	}

	if len(kept) == 0 {
		return path + anchor
	}
	return path + "?" + strings.Join(kept, "&") + anchor
}

func splitAnchor(rawURL string) (string, string) {
	if i := strings.IndexByte(rawURL, '#'); i >= 0 {
		return rawURL[:i], rawURL[i:]
	}
	return rawURL, ""
}
