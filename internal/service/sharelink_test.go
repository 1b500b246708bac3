package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"protrack/internal/domain"
	"protrack/internal/domain/models"
)

func seedShareDoc(t *testing.T, docs *fakeDocumentRepo, pin *string) *models.Document {
	t.Helper()
	doc := &models.Document{
		ID:             "doc-1",
		ProjectID:      "proj-1",
		ProjectKind:    models.KindCest,
		Phase:          models.PhaseInitiation,
		TemplateItemID: "INITIATION-1",
		FileName:       "approved-proposal.pdf",
		MimeType:       "application/pdf",
		FileData:       []byte("%PDF-1.4 test"),
		QRPin:          pin,
	}
	if err := docs.Create(context.Background(), doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	return doc
}

func TestVerifyAndServe_NoPin(t *testing.T) {
	docs := newFakeDocumentRepo()
	doc := seedShareDoc(t, docs, nil)
	svc := NewShareLinkService(docs, "https://tracker.example.com", testLogger())

	got, err := svc.VerifyAndServe(context.Background(), doc.ID, "")
	if err != nil {
		t.Fatalf("VerifyAndServe: %v", err)
	}
	if !bytes.Equal(got.FileData, doc.FileData) {
		t.Error("payload mismatch")
	}
}

func TestVerifyAndServe_PinMatrix(t *testing.T) {
	pin := "1234"

	tests := []struct {
		name    string
		docPin  *string
		supply  string
		wantErr error
	}{
		{"no pin ignores supplied", nil, "9999", nil},
		{"right pin", &pin, "1234", nil},
		{"wrong pin", &pin, "0000", domain.ErrUnauthorized},
		{"empty pin against protected doc", &pin, "", domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := newFakeDocumentRepo()
			doc := seedShareDoc(t, docs, tt.docPin)
			svc := NewShareLinkService(docs, "https://tracker.example.com", testLogger())

			_, err := svc.VerifyAndServe(context.Background(), doc.ID, tt.supply)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("VerifyAndServe: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerifyAndServe_MissingDocument(t *testing.T) {
	svc := NewShareLinkService(newFakeDocumentRepo(), "https://tracker.example.com", testLogger())

	_, err := svc.VerifyAndServe(context.Background(), "nope", "1234")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestVerifyAndServe_ThrottlesGuesses(t *testing.T) {
	pin := "1234"
	docs := newFakeDocumentRepo()
	doc := seedShareDoc(t, docs, &pin)
	svc := NewShareLinkService(docs, "https://tracker.example.com", testLogger())
	ctx := context.Background()

	// Burn the attempt burst with wrong guesses.
	for i := 0; i < pinAttemptBurst; i++ {
		if _, err := svc.VerifyAndServe(ctx, doc.ID, "0000"); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("attempt %d: got %v, want unauthorized", i, err)
		}
	}

	// Even the correct PIN is rejected once the budget is gone.
	_, err := svc.VerifyAndServe(ctx, doc.ID, "1234")
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Errorf("got %v, want rate limited", err)
	}
}

func TestThrottleIsPerDocument(t *testing.T) {
	pin := "1234"
	docs := newFakeDocumentRepo()
	doc := seedShareDoc(t, docs, &pin)

	other := &models.Document{ID: "doc-2", ProjectID: "proj-1", FileName: "b.pdf", MimeType: "application/pdf", FileData: []byte("x"), QRPin: &pin}
	if err := docs.Create(context.Background(), other); err != nil {
		t.Fatalf("seed document: %v", err)
	}

	svc := NewShareLinkService(docs, "https://tracker.example.com", testLogger())
	ctx := context.Background()

	for i := 0; i < pinAttemptBurst; i++ {
		svc.VerifyAndServe(ctx, doc.ID, "0000")
	}

	// The sibling document still has its full budget.
	if _, err := svc.VerifyAndServe(ctx, other.ID, "1234"); err != nil {
		t.Errorf("sibling document: %v", err)
	}
}

func TestSetPin(t *testing.T) {
	docs := newFakeDocumentRepo()
	doc := seedShareDoc(t, docs, nil)
	svc := NewShareLinkService(docs, "https://tracker.example.com", testLogger())
	ctx := context.Background()

	pin := "0042"
	meta, err := svc.SetPin(ctx, doc.ID, &pin)
	if err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	if !meta.HasPin {
		t.Error("hasPin: got false, want true")
	}

	// Clearing with nil removes protection.
	meta, err = svc.SetPin(ctx, doc.ID, nil)
	if err != nil {
		t.Fatalf("SetPin(nil): %v", err)
	}
	if meta.HasPin {
		t.Error("hasPin after clear: got true, want false")
	}
}

func TestSetPin_Validation(t *testing.T) {
	docs := newFakeDocumentRepo()
	doc := seedShareDoc(t, docs, nil)
	svc := NewShareLinkService(docs, "https://tracker.example.com", testLogger())
	ctx := context.Background()

	for _, bad := range []string{"", "123", "12345", "12a4", "١٢٣٤"} {
		pin := bad
		if _, err := svc.SetPin(ctx, doc.ID, &pin); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("SetPin(%q): got %v, want validation error", bad, err)
		}
	}
}

func TestQRCode(t *testing.T) {
	docs := newFakeDocumentRepo()
	doc := seedShareDoc(t, docs, nil)
	svc := NewShareLinkService(docs, "https://tracker.example.com", testLogger())

	png, err := svc.QRCode(context.Background(), doc.ID, 0)
	if err != nil {
		t.Fatalf("QRCode: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("QRCode did not produce a PNG")
	}

	if _, err := svc.QRCode(context.Background(), "missing", 256); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing document: got %v, want not found", err)
	}
}
