// Package storage turns product and category image keys into URLs the
// browser can load, either under a static base URL or as presigned S3
// GET URLs.
package storage

import (
	"context"
	"strings"
)

// ImageResolver maps an image key such as "products/vase-1.jpg" to a URL
type ImageResolver interface {
	ResolveImage(ctx context.Context, key string) (string, error)
}

// StaticImageResolver joins keys onto a base URL
type StaticImageResolver struct {
	baseURL string
}

// NewStaticImageResolver creates a resolver; an empty base leaves keys
// root-relative.
func NewStaticImageResolver(baseURL string) *StaticImageResolver {
	return &StaticImageResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

func (r *StaticImageResolver) ResolveImage(_ context.Context, key string) (string, error) {
	if key == "" || isAbsoluteURL(key) {
		return key, nil
	}
	return r.baseURL + "/" + strings.TrimLeft(key, "/"), nil
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

var _ ImageResolver = (*StaticImageResolver)(nil)
