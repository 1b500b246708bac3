package service

import (
	"context"
	"errors"
	"testing"

	"protrack/internal/domain"
	"protrack/internal/domain/models"
	"protrack/internal/domain/services"
)

type eventFixture struct {
	events *fakeEventRepo
	notifs *fakeNotificationRepo
	users  *fakeUserRepo
	svc    services.EventService
}

func newEventFixture(t *testing.T) *eventFixture {
	t.Helper()

	events := newFakeEventRepo()
	notifs := newFakeNotificationRepo()
	users := newFakeUserRepo()

	return &eventFixture{
		events: events,
		notifs: notifs,
		users:  users,
		svc:    NewEventService(events, notifs, users, testLogger()),
	}
}

func TestCreateEvent_InvitesStaffExceptBooker(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	booker := f.users.add(&models.User{ID: "booker", Email: "b@dost.gov", FullName: "The Booker", Role: models.RoleStaff})
	f.users.add(&models.User{ID: "staff-1", Email: "s1@dost.gov", FullName: "Staff One", Role: models.RoleStaff})
	f.users.add(&models.User{ID: "staff-2", Email: "s2@dost.gov", FullName: "Staff Two", Role: models.RoleStaff})

	eventTime := "14:00"
	event, err := f.svc.Create(ctx, &services.CreateEventRequest{
		Title:            "Site Visit",
		Date:             "2026-09-15",
		Time:             &eventTime,
		StaffInvolvedIDs: []string{"booker", "staff-1", "staff-2"},
	}, booker)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if event.BookedByID == nil || *event.BookedByID != booker.ID {
		t.Errorf("bookedById: got %v", event.BookedByID)
	}

	// The booker does not get invited to their own event.
	if got := f.notifs.forUser("booker"); len(got) != 0 {
		t.Errorf("booker invited to own event: %v", got)
	}

	for _, id := range []string{"staff-1", "staff-2"} {
		got := f.notifs.forUser(id)
		if len(got) != 1 {
			t.Fatalf("%s invites: got %d, want 1", id, len(got))
		}
		invite := got[0]
		if invite.Type != models.NotifEventInvite {
			t.Errorf("type: got %q", invite.Type)
		}
		if invite.Title != "Event Invitation" {
			t.Errorf("title: got %q", invite.Title)
		}
		if invite.Message != `You have been invited to "Site Visit" on 2026-09-15 at 14:00.` {
			t.Errorf("message: got %q", invite.Message)
		}
		if invite.EventID == nil || *invite.EventID != event.ID {
			t.Errorf("eventId: got %v", invite.EventID)
		}
		if invite.InviteStatus == nil || *invite.InviteStatus != models.InvitePending {
			t.Errorf("inviteStatus: got %v", invite.InviteStatus)
		}
		if invite.BookedByName == nil || *invite.BookedByName != booker.FullName {
			t.Errorf("bookedByName: got %v", invite.BookedByName)
		}
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, &services.CreateEventRequest{Date: "2026-09-15"}, nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("missing title: got %v, want validation error", err)
	}
	if _, err := f.svc.Create(ctx, &services.CreateEventRequest{Title: "X", Date: "15/09/2026"}, nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad date format: got %v, want validation error", err)
	}
}

func TestCreateEvent_NoBooker(t *testing.T) {
	f := newEventFixture(t)

	f.users.add(&models.User{ID: "staff-1", Email: "s1@dost.gov", FullName: "Staff One", Role: models.RoleStaff})

	event, err := f.svc.Create(context.Background(), &services.CreateEventRequest{
		Title:            "Open Meeting",
		Date:             "2026-10-01",
		StaffInvolvedIDs: []string{"staff-1"},
	}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if event.BookedByID != nil {
		t.Errorf("bookedById: got %v, want nil", event.BookedByID)
	}

	got := f.notifs.forUser("staff-1")
	if len(got) != 1 {
		t.Fatalf("invites: got %d, want 1", len(got))
	}
	if got[0].BookedByUserID != nil {
		t.Errorf("invite bookedByUserId: got %v, want nil", got[0].BookedByUserID)
	}
	// Without a time the message names only the date.
	if got[0].Message != `You have been invited to "Open Meeting" on 2026-10-01.` {
		t.Errorf("message: got %q", got[0].Message)
	}
}

func TestListEvents_DecoratesInviteStatuses(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	booker := f.users.add(&models.User{ID: "booker", Email: "b@dost.gov", FullName: "The Booker", Role: models.RoleStaff})
	f.users.add(&models.User{ID: "staff-1", Email: "s1@dost.gov", FullName: "Staff One", Role: models.RoleStaff})
	f.users.add(&models.User{ID: "staff-2", Email: "s2@dost.gov", FullName: "Staff Two", Role: models.RoleStaff})

	event, err := f.svc.Create(ctx, &services.CreateEventRequest{
		Title:            "Orientation",
		Date:             "2026-09-20",
		StaffInvolvedIDs: []string{"staff-1", "staff-2"},
	}, booker)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// staff-1 accepts, staff-2 never responds.
	for _, n := range f.notifs.notifications {
		if n.UserID == "staff-1" {
			accepted := models.InviteAccepted
			n.InviteStatus = &accepted
		}
	}

	views, err := f.svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("events: got %d, want 1", len(views))
	}

	view := views[0]
	if view.ID != event.ID {
		t.Errorf("event id: got %s", view.ID)
	}
	if view.BookedByUser == nil || view.BookedByUser.FullName != booker.FullName {
		t.Errorf("bookedByUser: got %v", view.BookedByUser)
	}
	if len(view.StaffInvolvedUsers) != 2 {
		t.Errorf("staffInvolvedUsers: got %d, want 2", len(view.StaffInvolvedUsers))
	}

	statuses := make(map[string]string)
	for _, st := range view.InviteStatuses {
		statuses[st.UserID] = st.Status
	}
	if statuses["staff-1"] != models.InviteAccepted {
		t.Errorf("staff-1 status: got %q, want accepted", statuses["staff-1"])
	}
	if statuses["staff-2"] != models.InvitePending {
		t.Errorf("staff-2 status: got %q, want pending", statuses["staff-2"])
	}
}

func TestDeleteEvent(t *testing.T) {
	f := newEventFixture(t)
	ctx := context.Background()

	event, err := f.svc.Create(ctx, &services.CreateEventRequest{Title: "Temp", Date: "2026-09-25"}, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.svc.Delete(ctx, event.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.svc.Delete(ctx, event.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: got %v, want not found", err)
	}
}
