package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/services"
)

type docFixture struct {
	docs     *fakeDocumentRepo
	projects *fakeProjectRepo
	activity *fakeActivityRepo
	svc      services.DocumentService

	cest  *models.Project
	setup *models.Project
}

func newDocFixture(t *testing.T) *docFixture {
	t.Helper()

	docs := newFakeDocumentRepo()
	projects := newFakeProjectRepo()
	activity := &fakeActivityRepo{}

	logger := testLogger()
	svc := NewDocumentService(docs, projects, NewActivityLogger(activity, logger), logger)

	cest := &models.Project{ID: "cest-1", Kind: models.KindCest, Code: "1", Title: "Water System", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	setup := &models.Project{ID: "setup-1", Kind: models.KindSetup, Code: "001", Title: "Food Processing", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	ctx := context.Background()
	if err := projects.Create(ctx, cest); err != nil {
		t.Fatalf("seed cest project: %v", err)
	}
	if err := projects.Create(ctx, setup); err != nil {
		t.Fatalf("seed setup project: %v", err)
	}

	return &docFixture{docs: docs, projects: projects, activity: activity, svc: svc, cest: cest, setup: setup}
}

func uploadReq(projectID string, kind models.ProjectKind, itemID string) *services.UploadDocumentRequest {
	actor := "user-1"
	return &services.UploadDocumentRequest{
		ProjectID:      projectID,
		ProjectKind:    kind,
		TemplateItemID: itemID,
		FileName:       "report.pdf",
		MimeType:       "application/pdf",
		FileData:       []byte("content"),
		UploadedBy:     &actor,
	}
}

func TestUpload(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	meta, err := f.svc.Upload(ctx, uploadReq(f.cest.ID, models.KindCest, "INITIATION-1"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if meta.Phase != models.PhaseInitiation {
		t.Errorf("phase inferred from item id: got %s, want INITIATION", meta.Phase)
	}
	if meta.HasPin {
		t.Error("new uploads must not be PIN protected")
	}

	// The upload left an audit row.
	if len(f.activity.entries) != 1 {
		t.Fatalf("activity entries: got %d, want 1", len(f.activity.entries))
	}
	if f.activity.entries[0].ResourceType != models.ResourceCestDocument {
		t.Errorf("resource type: got %s", f.activity.entries[0].ResourceType)
	}
}

func TestUpload_Validation(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*services.UploadDocumentRequest)
	}{
		{"empty file", func(r *services.UploadDocumentRequest) { r.FileData = nil }},
		{"missing file name", func(r *services.UploadDocumentRequest) { r.FileName = "  " }},
		{"malformed item id", func(r *services.UploadDocumentRequest) { r.TemplateItemID = "phase-one" }},
		{"phase item mismatch", func(r *services.UploadDocumentRequest) {
			r.Phase = models.PhaseMonitoring
			r.TemplateItemID = "INITIATION-1"
		}},
		{"phase not in kind", func(r *services.UploadDocumentRequest) {
			r.ProjectID = "setup-1"
			r.ProjectKind = models.KindSetup
			r.TemplateItemID = "MONITORING-1"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := uploadReq(f.cest.ID, models.KindCest, "INITIATION-1")
			tt.mutate(req)
			if _, err := f.svc.Upload(ctx, req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("got %v, want validation error", err)
			}
		})
	}
}

func TestUpload_KindMismatchIsNotFound(t *testing.T) {
	f := newDocFixture(t)

	// A CEST id under the SETUP prefix must look like a missing project.
	req := uploadReq(f.cest.ID, models.KindSetup, "INITIATION-1")
	if _, err := f.svc.Upload(context.Background(), req); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestUpload_UnknownRowAcceptedButNotCounted(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	// Format is valid but no CEST INITIATION row 999 exists.
	if _, err := f.svc.Upload(ctx, uploadReq(f.cest.ID, models.KindCest, "INITIATION-999")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	progress, err := f.svc.Progress(ctx, f.cest.ID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	for _, p := range progress {
		if p.Uploaded != 0 {
			t.Errorf("phase %s: uploaded %d, want 0", p.Phase, p.Uploaded)
		}
	}
}

func TestProgress(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	for _, item := range []string{"IMPLEMENTATION-1", "IMPLEMENTATION-2", "INITIATION-1"} {
		if _, err := f.svc.Upload(ctx, uploadReq(f.cest.ID, models.KindCest, item)); err != nil {
			t.Fatalf("Upload %s: %v", item, err)
		}
	}

	progress, err := f.svc.Progress(ctx, f.cest.ID)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if len(progress) != 3 {
		t.Fatalf("phases: got %d, want 3", len(progress))
	}

	byPhase := map[models.Phase]services.PhaseProgress{}
	for _, p := range progress {
		byPhase[p.Phase] = p
	}

	if got := byPhase[models.PhaseImplementation]; got.Uploaded != 2 || got.Percent != 67 {
		t.Errorf("IMPLEMENTATION: got %+v, want 2 uploaded, 67%%", got)
	}
	if got := byPhase[models.PhaseInitiation]; got.Uploaded != 1 || got.Percent != 8 {
		t.Errorf("INITIATION: got %+v, want 1 uploaded, 8%%", got)
	}
	if got := byPhase[models.PhaseMonitoring]; got.Uploaded != 0 || got.Percent != 0 {
		t.Errorf("MONITORING: got %+v, want zero", got)
	}
}

func TestDelete_ScopedToProject(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	meta, err := f.svc.Upload(ctx, uploadReq(f.cest.ID, models.KindCest, "INITIATION-1"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	// Deleting through the wrong project id must not find the document.
	if err := f.svc.Delete(ctx, f.setup.ID, meta.ID, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-project delete: got %v, want not found", err)
	}

	if err := f.svc.Delete(ctx, f.cest.ID, meta.ID, nil); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := f.docs.GetByID(ctx, meta.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("document still present after delete")
	}
}

func TestDeleteChecklistRow(t *testing.T) {
	f := newDocFixture(t)
	ctx := context.Background()

	// Two documents on the same row, one on another.
	for _, item := range []string{"INITIATION-1", "INITIATION-1", "INITIATION-2"} {
		if _, err := f.svc.Upload(ctx, uploadReq(f.cest.ID, models.KindCest, item)); err != nil {
			t.Fatalf("Upload: %v", err)
		}
	}

	if err := f.svc.DeleteChecklistRow(ctx, f.cest.ID, "INITIATION-1", nil); err != nil {
		t.Fatalf("DeleteChecklistRow: %v", err)
	}

	remaining, err := f.svc.ListByProject(ctx, f.cest.ID)
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(remaining) != 1 || remaining[0].TemplateItemID != "INITIATION-2" {
		t.Errorf("remaining documents: got %+v", remaining)
	}

	// An empty row reports not found.
	if err := f.svc.DeleteChecklistRow(ctx, f.cest.ID, "INITIATION-1", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second clear: got %v, want not found", err)
	}
}
