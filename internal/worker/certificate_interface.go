package worker

import "context"

// CertificateWarmer defines the interface for certificate pre-rendering
// This avoids import cycles by not importing the services package
type CertificateWarmer interface {
	WarmCache(ctx context.Context, userID int64) error
}
