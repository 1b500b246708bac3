package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/repositories"
)

// ============================================================================
// In-memory fakes implementing the repository interfaces
// ============================================================================

type permKey struct {
	projectID string
	userID    string
}

type fakePermissionRepo struct {
	rows map[permKey]*models.EditPermission
}

func newFakePermissionRepo() *fakePermissionRepo {
	return &fakePermissionRepo{rows: make(map[permKey]*models.EditPermission)}
}

func (f *fakePermissionRepo) Get(ctx context.Context, projectID, userID string) (*models.EditPermission, error) {
	if p, ok := f.rows[permKey{projectID, userID}]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, &domain.NotFoundError{Message: "permission not found"}
}

func (f *fakePermissionRepo) Request(ctx context.Context, projectID, userID string) error {
	key := permKey{projectID, userID}
	if _, ok := f.rows[key]; ok {
		return nil
	}
	f.rows[key] = &models.EditPermission{
		ProjectID:   projectID,
		UserID:      userID,
		State:       models.EditPending,
		RequestedAt: time.Now(),
	}
	return nil
}

func (f *fakePermissionRepo) Approve(ctx context.Context, projectID, userID string) error {
	key := permKey{projectID, userID}
	now := time.Now()
	if p, ok := f.rows[key]; ok {
		p.State = models.EditApproved
		p.DecidedAt = &now
		return nil
	}
	f.rows[key] = &models.EditPermission{
		ProjectID:   projectID,
		UserID:      userID,
		State:       models.EditApproved,
		RequestedAt: now,
		DecidedAt:   &now,
	}
	return nil
}

func (f *fakePermissionRepo) DeletePending(ctx context.Context, projectID, userID string) error {
	key := permKey{projectID, userID}
	if p, ok := f.rows[key]; ok && p.State == models.EditPending {
		delete(f.rows, key)
	}
	return nil
}

func (f *fakePermissionRepo) DeleteApproved(ctx context.Context, projectID, userID string) error {
	key := permKey{projectID, userID}
	if p, ok := f.rows[key]; ok && p.State == models.EditApproved {
		delete(f.rows, key)
	}
	return nil
}

func (f *fakePermissionRepo) ListByProject(ctx context.Context, projectID string) ([]models.EditPermission, error) {
	var out []models.EditPermission
	for _, p := range f.rows {
		if p.ProjectID == projectID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State == models.EditPending
		}
		return out[i].RequestedAt.Before(out[j].RequestedAt)
	})
	return out, nil
}

func (f *fakePermissionRepo) DeleteAllByProject(ctx context.Context, projectID string) error {
	for key, p := range f.rows {
		if p.ProjectID == projectID {
			delete(f.rows, key)
		}
	}
	return nil
}

// state returns the stored state, or "NONE" when no row exists.
func (f *fakePermissionRepo) state(projectID, userID string) string {
	if p, ok := f.rows[permKey{projectID, userID}]; ok {
		return string(p.State)
	}
	return "NONE"
}

type fakeProjectRepo struct {
	projects map[string]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	cp := *project
	f.projects[project.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if p, ok := f.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %s not found", id)}
}

func (f *fakeProjectRepo) List(ctx context.Context, filter repositories.ProjectFilter) ([]models.Project, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.Kind != filter.Kind {
			continue
		}
		if filter.Status != "" && (p.Status == nil || *p.Status != filter.Status) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	if _, ok := f.projects[project.ID]; !ok {
		return &domain.NotFoundError{Message: "project not found"}
	}
	cp := *project
	f.projects[project.ID] = &cp
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.projects[id]; !ok {
		return &domain.NotFoundError{Message: "project not found"}
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) NextCode(ctx context.Context, kind models.ProjectKind) (string, error) {
	max := 0
	for _, p := range f.projects {
		if p.Kind != kind {
			continue
		}
		n := 0
		fmt.Sscanf(p.Code, "%d", &n)
		if n > max {
			max = n
		}
	}
	if kind == models.KindSetup {
		return fmt.Sprintf("%03d", max+1), nil
	}
	return fmt.Sprintf("%d", max+1), nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) add(u *models.User) *models.User {
	cp := *u
	f.users[u.ID] = &cp
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return &domain.ConflictError{Message: "email already registered", ResourceType: "user", ResourceID: u.ID}
		}
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("user %s not found", id)}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "user not found"}
}

func (f *fakeUserRepo) GetByFullName(ctx context.Context, fullName string) (*models.User, error) {
	for _, u := range f.users {
		if u.FullName == fullName {
			cp := *u
			return &cp, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "user not found"}
}

func (f *fakeUserRepo) List(ctx context.Context, onlyApproved bool) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if onlyApproved && !u.IsApproved {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUserRepo) GetSummaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	out := make(map[string]models.UserSummary)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = models.UserSummary{ID: u.ID, FullName: u.FullName, ProfileImageURL: u.ProfileImageURL}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return &domain.NotFoundError{Message: "user not found"}
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) SetPassword(ctx context.Context, email, passwordHash string) error {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return &domain.NotFoundError{Message: "user not found"}
}

type fakeDocumentRepo struct {
	docs map[string]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*models.Document)}
}

func (f *fakeDocumentRepo) Create(ctx context.Context, doc *models.Document) error {
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	if d, ok := f.docs[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, &domain.NotFoundError{Message: "document not found"}
}

func (f *fakeDocumentRepo) GetMetaByID(ctx context.Context, id string) (*models.DocumentMeta, error) {
	d, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	meta := d.Meta()
	return &meta, nil
}

func (f *fakeDocumentRepo) ListByProject(ctx context.Context, projectID string) ([]models.DocumentMeta, error) {
	var out []models.DocumentMeta
	for _, d := range f.docs {
		if d.ProjectID == projectID {
			out = append(out, d.Meta())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeDocumentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return &domain.NotFoundError{Message: "document not found"}
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeDocumentRepo) DeleteByTemplateItem(ctx context.Context, projectID, templateItemID string) (int64, error) {
	var removed int64
	for id, d := range f.docs {
		if d.ProjectID == projectID && d.TemplateItemID == templateItemID {
			delete(f.docs, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeDocumentRepo) DeleteAllByProject(ctx context.Context, projectID string) error {
	for id, d := range f.docs {
		if d.ProjectID == projectID {
			delete(f.docs, id)
		}
	}
	return nil
}

func (f *fakeDocumentRepo) SetPin(ctx context.Context, id string, pin *string) (*models.DocumentMeta, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "document not found"}
	}
	d.QRPin = pin
	meta := d.Meta()
	return &meta, nil
}

type fakeNotificationRepo struct {
	notifications map[string]*models.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*models.Notification)}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	cp := *n
	f.notifications[n.ID] = &cp
	return nil
}

func (f *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	if n, ok := f.notifications[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, &domain.NotFoundError{Message: "notification not found"}
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeNotificationRepo) ListInvitesByEvents(ctx context.Context, eventIDs []string) ([]models.Notification, error) {
	wanted := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = true
	}
	var out []models.Notification
	for _, n := range f.notifications {
		if n.Type == models.NotifEventInvite && n.EventID != nil && wanted[*n.EventID] {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) Update(ctx context.Context, n *models.Notification) error {
	if _, ok := f.notifications[n.ID]; !ok {
		return &domain.NotFoundError{Message: "notification not found"}
	}
	cp := *n
	f.notifications[n.ID] = &cp
	return nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.notifications[id]; !ok {
		return &domain.NotFoundError{Message: "notification not found"}
	}
	delete(f.notifications, id)
	return nil
}

// forUser returns the stored notifications addressed to one user.
func (f *fakeNotificationRepo) forUser(userID string) []models.Notification {
	out, _ := f.ListByUser(context.Background(), userID)
	return out
}

type fakeEventRepo struct {
	events map[string]*models.CalendarEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*models.CalendarEvent)}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.CalendarEvent) error {
	cp := *event
	f.events[event.ID] = &cp
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context) ([]models.CalendarEvent, error) {
	var out []models.CalendarEvent
	for _, e := range f.events {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return &domain.NotFoundError{Message: "event not found"}
	}
	delete(f.events, id)
	return nil
}

type fakeActivityRepo struct {
	entries []models.ActivityLog
}

func (f *fakeActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityRepo) ListByResourceType(ctx context.Context, resourceType string) ([]models.ActivityLog, error) {
	var out []models.ActivityLog
	for _, e := range f.entries {
		if e.ResourceType == resourceType {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}

type fakeMailSender struct {
	sent []string // "to:otp"
}

func (f *fakeMailSender) SendOTP(to, otp string) error {
	f.sent = append(f.sent, to+":"+otp)
	return nil
}
