package application

import (
	"context"
	"io"
	"time"
)

// EmailEnqueuer puts email jobs on the outbound queue. Satisfied by
// helpers.RabbitPublisher; stubbed in tests.
type EmailEnqueuer interface {
	PublishJSON(ctx context.Context, body any) error
}

// Uploader stores an uploaded file and returns its retrievable URL.
// Satisfied by the GCS-backed implementation in this package.
type Uploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// FileUpload is one file taken from a multipart form, decoupled from gin so
// services and tests never touch *multipart.FileHeader.
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CartStore is the per-session cart state.
type CartStore interface {
	AddToCart(ctx context.Context, cartID, listingID string, qty int64) error
	CartItems(ctx context.Context, cartID string) (map[string]int64, error)
	ClearCart(ctx context.Context, cartID string) error
}

// RegistrationStore holds the pending-verification markers issued at seller
// registration; a marker is required before an OTP may be submitted.
type RegistrationStore interface {
	SetPendingRegistration(ctx context.Context, sessionID, email string, ttl time.Duration) error
	PendingRegistration(ctx context.Context, sessionID string) (string, error)
	ClearPendingRegistration(ctx context.Context, sessionID string) error
}
