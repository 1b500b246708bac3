package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type permFixture struct {
	perms    *fakePermissionRepo
	projects *fakeProjectRepo
	users    *fakeUserRepo
	notifs   *fakeNotificationRepo
	svc      services.PermissionService

	owner     *models.User
	admin     *models.User
	requester *models.User
	project   *models.Project
}

func newPermFixture(t *testing.T) *permFixture {
	t.Helper()

	perms := newFakePermissionRepo()
	projects := newFakeProjectRepo()
	users := newFakeUserRepo()
	notifs := newFakeNotificationRepo()

	logger := testLogger()
	notifSvc := NewNotificationService(notifs, logger)
	svc := NewPermissionService(perms, projects, users, notifSvc, logger)

	owner := &models.User{ID: "owner-1", Email: "owner@dost.gov", FullName: "Project Owner", Role: models.RoleStaff, IsApproved: true}
	admin := &models.User{ID: "admin-1", Email: "admin@dost.gov", FullName: "Admin", Role: models.RoleAdmin, IsApproved: true}
	requester := &models.User{ID: "staff-1", Email: "staff@dost.gov", FullName: "Requesting Staff", Role: models.RoleStaff, IsApproved: true}
	users.add(owner)
	users.add(admin)
	users.add(requester)

	project := &models.Project{
		ID:                "proj-1",
		Kind:              models.KindCest,
		Code:              "1",
		Title:             "Water System Upgrade",
		StaffAssignedID:   &owner.ID,
		StaffAssignedName: &owner.FullName,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := projects.Create(context.Background(), project); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	return &permFixture{
		perms:     perms,
		projects:  projects,
		users:     users,
		notifs:    notifs,
		svc:       svc,
		owner:     owner,
		admin:     admin,
		requester: requester,
		project:   project,
	}
}

func TestRequestEdit_CreatesPendingOnly(t *testing.T) {
	f := newPermFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestEdit(ctx, f.project.ID, f.requester); err != nil {
		t.Fatalf("RequestEdit: %v", err)
	}

	if got := f.perms.state(f.project.ID, f.requester.ID); got != "PENDING" {
		t.Errorf("state after request: got %s, want PENDING", got)
	}

	// A pending request never grants edit access by itself.
	authorized, err := f.svc.IsAuthorizedToEdit(ctx, f.requester, f.project)
	if err != nil {
		t.Fatalf("IsAuthorizedToEdit: %v", err)
	}
	if authorized {
		t.Error("pending requester must not be authorized to edit")
	}

	// The assignee got notified.
	notifs := f.notifs.forUser(f.owner.ID)
	if len(notifs) != 1 {
		t.Fatalf("owner notifications: got %d, want 1", len(notifs))
	}
	if notifs[0].Title != "Edit Access Request" {
		t.Errorf("notification title: got %q", notifs[0].Title)
	}
	if notifs[0].Type != models.NotifCestEditRequest {
		t.Errorf("notification type: got %q", notifs[0].Type)
	}
}

func TestRequestEdit_Idempotent(t *testing.T) {
	f := newPermFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestEdit(ctx, f.project.ID, f.requester); err != nil {
		t.Fatalf("first RequestEdit: %v", err)
	}
	if err := f.svc.RequestEdit(ctx, f.project.ID, f.requester); err != nil {
		t.Fatalf("second RequestEdit: %v", err)
	}

	if got := f.perms.state(f.project.ID, f.requester.ID); got != "PENDING" {
		t.Errorf("state after double request: got %s, want PENDING", got)
	}
}

func TestRequestEdit_RejectsAlreadyAuthorized(t *testing.T) {
	f := newPermFixture(t)
	ctx := context.Background()

	// The project owner is already authorized.
	err := f.svc.RequestEdit(ctx, f.project.ID, f.owner)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("owner request: got %v, want validation error", err)
	}

	// So is an approved editor.
	if err := f.perms.Approve(ctx, f.project.ID, f.requester.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	err = f.svc.RequestEdit(ctx, f.project.ID, f.requester)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("approved editor request: got %v, want validation error", err)
	}
}

func TestRequestEdit_NoAssignee(t *testing.T) {
	f := newPermFixture(t)
	ctx := context.Background()

	orphan := &models.Project{ID: "proj-2", Kind: models.KindCest, Code: "2", Title: "Unassigned"}
	if err := f.projects.Create(ctx, orphan); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	err := f.svc.RequestEdit(ctx, orphan.ID, f.requester)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want validation error", err)
	}
	if got := f.perms.state(orphan.ID, f.requester.ID); got != "NONE" {
		t.Errorf("state: got %s, want NONE", got)
	}
}

func TestAcceptEditRequest_ApprovesAndAuthorizes(t *testing.T) {
	f := newPermFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestEdit(ctx, f.project.ID, f.requester); err != nil {
		t.Fatalf("RequestEdit: %v", err)
	}
	if err := f.svc.AcceptEditRequest(ctx, f.project.ID, f.owner, f.requester.ID); err != nil {
		t.Fatalf("AcceptEditRequest: %v", err)
	}

	if got := f.perms.state(f.project.ID, f.requester.ID); got != "APPROVED" {
		t.Errorf("state: got %s, want APPROVED", got)
	}

	authorized, err := f.svc.IsAuthorizedToEdit(ctx, f.requester, f.project)
	if err != nil {
		t.Fatalf("IsAuthorizedToEdit: %v", err)
	}
	if !authorized {
		t.Error("approved editor must be authorized to edit")
	}

	notifs := f.notifs.forUser(f.requester.ID)
	if len(notifs) != 1 || notifs[0].Title != "Edit Access Approved" {
		t.Errorf("requester notifications: got %+v", notifs)
	}
}

func TestAcceptThenDecline_DoesNotDemote(t *testing.T) {
	f := newPermFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestEdit(ctx, f.project.ID, f.requester); err != nil {
		t.Fatalf("RequestEdit: %v", err)
	}
	if err := f.svc.AcceptEditRequest(ctx, f.project.ID, f.owner, f.requester.ID); err != nil {
		t.Fatalf("AcceptEditRequest: %v", err)
	}

	// A late decline only deletes pending rows; the approval stands.
	if err := f.svc.DeclineEditRequest(ctx, f.project.ID, f.owner, f.requester.ID); err != nil {
		t.Fatalf("DeclineEditRequest: %v", err)
	}

	if got := f.perms.state(f.project.ID, f.requester.ID); got != "APPROVED" {
		t.Errorf("state after accept+decline: got %s, want APPROVED", got)
	}
}

func TestAcceptThenRevoke_RemovesRelationship(t *testing.T) {
	f := newPermFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestEdit(ctx, f.project.ID, f.requester); err != nil {
		t.Fatalf("RequestEdit: %v", err)
	}
	if err := f.svc.AcceptEditRequest(ctx, f.project.ID, f.owner, f.requester.ID); err != nil {
		t.Fatalf("AcceptEditRequest: %v", err)
	}
	if err := f.svc.RevokeEditAccess(ctx, f.project.ID, f.owner, f.requester.ID); err != nil {
		t.Fatalf("RevokeEditAccess: %v", err)
	}

	if got := f.perms.state(f.project.ID, f.requester.ID); got != "NONE" {
		t.Errorf("state after revoke: got %s, want NONE", got)
	}

	authorized, err := f.svc.IsAuthorizedToEdit(ctx, f.requester, f.project)
	if err != nil {
		t.Fatalf("IsAuthorizedToEdit: %v", err)
	}
	if authorized {
		t.Error("revoked editor must not be authorized")
	}
}

func TestDeclineAbsentRequest_IsNoOp(t *testing.T) {
	f := newPermFixture(t)
	ctx := context.Background()

	if err := f.svc.DeclineEditRequest(ctx, f.project.ID, f.owner, f.requester.ID); err != nil {
		t.Fatalf("DeclineEditRequest on absent row: %v", err)
	}
	if got := f.perms.state(f.project.ID, f.requester.ID); got != "NONE" {
		t.Errorf("state: got %s, want NONE", got)
	}
}

func TestPermissionMutations_RequireOwnerOrAdmin(t *testing.T) {
	f := newPermFixture(t)
	ctx := context.Background()

	if err := f.svc.RequestEdit(ctx, f.project.ID, f.requester); err != nil {
		t.Fatalf("RequestEdit: %v", err)
	}

	// The requester cannot approve their own request.
	err := f.svc.AcceptEditRequest(ctx, f.project.ID, f.requester, f.requester.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("self accept: got %v, want forbidden", err)
	}
	if got := f.perms.state(f.project.ID, f.requester.ID); got != "PENDING" {
		t.Errorf("state: got %s, want PENDING", got)
	}

	// An admin who is not the assignee can.
	if err := f.svc.AcceptEditRequest(ctx, f.project.ID, f.admin, f.requester.ID); err != nil {
		t.Fatalf("admin accept: %v", err)
	}
	if got := f.perms.state(f.project.ID, f.requester.ID); got != "APPROVED" {
		t.Errorf("state: got %s, want APPROVED", got)
	}
}

func TestIsOwnerOrAdmin(t *testing.T) {
	f := newPermFixture(t)

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{"assignee", f.owner, true},
		{"admin", f.admin, true},
		{"other staff", f.requester, false},
		{"nil user", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.svc.IsOwnerOrAdmin(tt.user, f.project); got != tt.want {
				t.Errorf("IsOwnerOrAdmin: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListPermissions_JoinsUserDisplayFields(t *testing.T) {
	f := newPermFixture(t)
	ctx := context.Background()

	second := f.users.add(&models.User{ID: "staff-2", Email: "second@dost.gov", FullName: "Second Staff", Role: models.RoleStaff, IsApproved: true})

	if err := f.svc.RequestEdit(ctx, f.project.ID, f.requester); err != nil {
		t.Fatalf("RequestEdit: %v", err)
	}
	if err := f.svc.RequestEdit(ctx, f.project.ID, second); err != nil {
		t.Fatalf("RequestEdit: %v", err)
	}
	if err := f.svc.AcceptEditRequest(ctx, f.project.ID, f.owner, second.ID); err != nil {
		t.Fatalf("AcceptEditRequest: %v", err)
	}

	perms, err := f.svc.ListPermissions(ctx, f.project.ID)
	if err != nil {
		t.Fatalf("ListPermissions: %v", err)
	}

	if len(perms.Pending) != 1 || perms.Pending[0].UserID != f.requester.ID {
		t.Errorf("pending: got %+v", perms.Pending)
	}
	if perms.Pending[0].UserName != f.requester.FullName {
		t.Errorf("pending user name: got %q, want %q", perms.Pending[0].UserName, f.requester.FullName)
	}
	if len(perms.Approved) != 1 || perms.Approved[0].UserID != second.ID {
		t.Errorf("approved: got %+v", perms.Approved)
	}
}
