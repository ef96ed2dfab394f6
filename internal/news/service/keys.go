package service

import (
	"net/url"
	"strconv"
	"strings"
)

// Cache key namespaces. The namespace is also the metrics label.
const (
	nsList   = "news:list"
	nsItem   = "news:item"
	nsSearch = "search"
)

// ListKey returns the cache key for a normalized list query. Every parameter is
// always present so equivalent queries share one key.
func ListKey(q ListQuery) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("market", deref(q.Market))
	if q.ConfidenceMin != nil {
		v.Set("confidence_min", strconv.Itoa(*q.ConfidenceMin))
	} else {
		v.Set("confidence_min", "")
	}
	return nsList + ":" + v.Encode()
}

// ItemKey returns the cache key for a single article.
func ItemKey(id string) string {
	return nsItem + ":" + strings.ToLower(id)
}

// SearchKey returns the cache key for a normalized search query.
func SearchKey(q SearchQuery) string {
	v := url.Values{}
	v.Set("q", q.Q)
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("market", deref(q.Market))
	return nsSearch + ":" + v.Encode()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
