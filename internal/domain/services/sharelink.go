package services

import (
	"context"

	"protrack/internal/domain/models"
)

// ShareLinkService serves documents over short links, optionally behind
// a 4-digit PIN, independent of the edit-permission system.
type ShareLinkService interface {
	// GetMeta returns payload-free document info for the viewer page
	GetMeta(ctx context.Context, docID string) (*models.DocumentMeta, error)

	// VerifyAndServe returns the full document when the PIN gate passes:
	// no PIN set, or suppliedPin matches exactly. Mismatches yield
	// ErrUnauthorized; exhausted attempt budgets yield ErrRateLimited.
	VerifyAndServe(ctx context.Context, docID, suppliedPin string) (*models.Document, error)

	// SetPin sets (4 ASCII digits) or clears (nil) the document PIN
	SetPin(ctx context.Context, docID string, pin *string) (*models.DocumentMeta, error)

	// QRCode renders a PNG QR code pointing at the public viewer URL
	QRCode(ctx context.Context, docID string, size int) ([]byte, error)
}
