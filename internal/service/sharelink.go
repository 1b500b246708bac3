package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/skip2/go-qrcode"
	"golang.org/x/time/rate"

	"protrack/internal/config"
	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
	"protrack/internal/domain/services"
)

// pinAttemptRate allows a short burst of PIN guesses per document and
// then one attempt every ten seconds.
var pinAttemptRate = rate.Every(10 * time.Second)

const pinAttemptBurst = 5

// shareLinkService implements the ShareLinkService interface
type shareLinkService struct {
	docRepo       repositories.DocumentRepository
	publicBaseURL string
	logger        *slog.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewShareLinkService creates a new share-link service
func NewShareLinkService(docRepo repositories.DocumentRepository, publicBaseURL string, logger *slog.Logger) services.ShareLinkService {
	return &shareLinkService{
		docRepo:       docRepo,
		publicBaseURL: publicBaseURL,
		logger:        logger,
		limiters:      make(map[string]*rate.Limiter),
	}
}

// GetMeta returns payload-free document info for the viewer page
func (s *shareLinkService) GetMeta(ctx context.Context, docID string) (*models.DocumentMeta, error) {
	return s.docRepo.GetMetaByID(ctx, docID)
}

// VerifyAndServe returns the full document when the PIN gate passes
func (s *shareLinkService) VerifyAndServe(ctx context.Context, docID, suppliedPin string) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if !doc.HasPin() {
		return doc, nil
	}

	// Throttle per document, not per client: the link is public and the
	// PIN space is only 10^4.
	if !s.limiter(docID).Allow() {
		return nil, fmt.Errorf("too many PIN attempts: %w", domain.ErrRateLimited)
	}

	if subtle.ConstantTimeCompare([]byte(*doc.QRPin), []byte(suppliedPin)) != 1 {
		s.logger.Warn("share link PIN rejected", "docId", docID)
		return nil, fmt.Errorf("invalid PIN: %w", domain.ErrUnauthorized)
	}

	return doc, nil
}

// SetPin sets or clears the document PIN
func (s *shareLinkService) SetPin(ctx context.Context, docID string, pin *string) (*models.DocumentMeta, error) {
	if pin != nil {
		if err := validatePin(*pin); err != nil {
			return nil, err
		}
	}

	meta, err := s.docRepo.SetPin(ctx, docID, pin)
	if err != nil {
		return nil, err
	}

	s.logger.Info("share link PIN changed",
		"docId", docID,
		"protected", pin != nil,
	)

	return meta, nil
}

// QRCode renders a PNG QR code pointing at the public viewer URL
func (s *shareLinkService) QRCode(ctx context.Context, docID string, size int) ([]byte, error) {
	if _, err := s.docRepo.GetMetaByID(ctx, docID); err != nil {
		return nil, err
	}

	if size <= 0 {
		size = 256
	}
	if size > 1024 {
		size = 1024
	}

	url := fmt.Sprintf("%s/view-doc/%s", s.publicBaseURL, docID)
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding QR code: %w", err)
	}

	return png, nil
}

// limiter returns the per-document PIN attempt limiter, creating it on
// first use.
func (s *shareLinkService) limiter(docID string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[docID]
	if !ok {
		l = rate.NewLimiter(pinAttemptRate, pinAttemptBurst)
		s.limiters[docID] = l
	}
	return l
}

// validatePin checks for exactly four ASCII digits
func validatePin(pin string) error {
	if len(pin) != config.PinLength {
		return fmt.Errorf("%w: PIN must be exactly %d digits", domain.ErrValidation, config.PinLength)
	}
	for _, c := range pin {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: PIN must contain only digits", domain.ErrValidation)
		}
	}
	return nil
}
