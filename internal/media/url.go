// Package media resolves opaque image references to displayable URLs.
// References are never interpreted beyond distinguishing "already a full
// address" from "a CDN identifier".
package media

import (
	"fmt"
	"strings"
)

// DefaultWidth is the delivery width used when the caller does not care
const DefaultWidth = 600

// Resolver builds CDN delivery URLs for image identifiers
type Resolver struct {
	cloudName string
}

// NewResolver creates a resolver for the given CDN cloud
func NewResolver(cloudName string) *Resolver {
	return &Resolver{cloudName: cloudName}
}

// URL resolves a reference at the requested width. Fully-qualified addresses
// and inline-encoded blobs pass through untouched; empty references resolve
// to a placeholder.
func (r *Resolver) URL(ref string, width int) string {
	if ref == "" {
		return "https://via.placeholder.com/600x600?text=Matita"
	}
	if strings.HasPrefix(ref, "http") || strings.HasPrefix(ref, "data:") {
		return ref
	}
	if width <= 0 {
		width = DefaultWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d/%s", r.cloudName, width, ref)
}
