// Package media abstracts the external media-hosting collaborator. The
// coordinator only sees Upload and Delete; calls are synchronous single
// attempts bounded by the caller's context.
package media

import "context"

// Host is the narrow interface to the media-hosting service
type Host interface {
	// Upload stores the payload (a URL or base64 data URI) and returns a stable reference URL
	Upload(ctx context.Context, payload string) (string, error)
	// Delete removes the asset previously returned as url
	Delete(ctx context.Context, url string) error
}
