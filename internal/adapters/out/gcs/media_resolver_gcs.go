// internal/adapters/out/gcs/media_resolver_gcs.go
package gcs

import (
	"context"
	"errors"
	"strings"
	"sync"

	"cloud.google.com/go/storage"

	gcscommon "storefront/internal/adapters/out/gcs/common"
)

// MediaResolverGCS resolves an image identifier into a displayable URL.
//
// Identifier shapes accepted:
//   - http(s)://...            -> returned as-is
//   - gs-style public URL      -> re-built via its own bucket/object
//   - bare object path         -> object within the configured media bucket
//
// The object is stat'ed once (Attrs) so a broken identifier surfaces here,
// not as an image 404 in the browser; verified ids are cached for the
// lifetime of the resolver.
type MediaResolverGCS struct {
	Client *storage.Client
	Bucket string

	mu       sync.RWMutex
	verified map[string]struct{}
}

func NewMediaResolverGCS(client *storage.Client, bucket string) *MediaResolverGCS {
	return &MediaResolverGCS{
		Client:   client,
		Bucket:   strings.TrimSpace(bucket),
		verified: map[string]struct{}{},
	}
}

func (r *MediaResolverGCS) ResolveURL(ctx context.Context, imageID string) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("media_resolver_gcs: storage client is nil")
	}

	id := strings.TrimSpace(imageID)
	if id == "" {
		return "", errors.New("media_resolver_gcs: image id is empty")
	}

	// already absolute (external CDN etc.)
	if strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://") {
		if b, obj, ok := gcscommon.ParseGCSURL(id); ok {
			return gcscommon.GCSPublicURL(b, obj, r.Bucket), nil
		}
		return id, nil
	}

	bucket := r.Bucket
	if bucket == "" {
		return "", errors.New("media_resolver_gcs: media bucket is not configured")
	}

	obj := strings.TrimLeft(id, "/")

	if !r.isVerified(obj) {
		if _, err := r.Client.Bucket(bucket).Object(obj).Attrs(ctx); err != nil {
			return "", err
		}
		r.markVerified(obj)
	}

	return gcscommon.GCSPublicURL(bucket, obj, bucket), nil
}

func (r *MediaResolverGCS) isVerified(obj string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.verified[obj]
	return ok
}

func (r *MediaResolverGCS) markVerified(obj string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verified[obj] = struct{}{}
}
