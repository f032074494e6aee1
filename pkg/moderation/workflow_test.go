package moderation

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/AtlasStudios/AtlasModGo/pkg/models"
)

// fakeActioner records moderation calls and can be told to fail
type fakeActioner struct {
	fail error

	timeoutCalls int
	timeoutUntil *time.Time
	removeCalls  int
	kickCalls    int
	banCalls     int
}

func (f *fakeActioner) TimeoutMember(guildID, userID string, until *time.Time) error {
	f.timeoutCalls++
	f.timeoutUntil = until
	return f.fail
}

func (f *fakeActioner) RemoveTimeout(guildID, userID string) error {
	f.removeCalls++
	return f.fail
}

func (f *fakeActioner) KickMember(guildID, userID, reason string) error {
	f.kickCalls++
	return f.fail
}

func (f *fakeActioner) BanMember(guildID, userID, reason string) error {
	f.banCalls++
	return f.fail
}

func (f *fakeActioner) totalCalls() int {
	return f.timeoutCalls + f.removeCalls + f.kickCalls + f.banCalls
}

// fakeStore keeps records in memory in insertion order
type fakeStore struct {
	failInsert error
	records    []models.Punishment
}

func (f *fakeStore) Insert(p *models.Punishment) error {
	if f.failInsert != nil {
		return f.failInsert
	}
	f.records = append(f.records, *p)
	return nil
}

func (f *fakeStore) ListByUser(guildID, userID string) ([]models.Punishment, error) {
	var out []models.Punishment
	for _, rec := range f.records {
		if rec.GuildID == guildID && rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// fakeNotifier records DMs and can be told to fail
type fakeNotifier struct {
	fail     error
	messages []string
}

func (f *fakeNotifier) DirectMessage(userID, content string) error {
	if f.fail != nil {
		return f.fail
	}
	f.messages = append(f.messages, content)
	return nil
}

func newTestWorkflow(actions *fakeActioner, store *fakeStore, notifier *fakeNotifier) *Workflow {
	w := NewWorkflow(actions, store, notifier)
	w.now = func() time.Time { return time.Unix(1700000000, 0) }
	w.newID = func() string { return "test-id" }
	return w
}

func baseRequest(t models.PunishmentType) Request {
	return Request{
		GuildID: "guild-1",
		UserID:  "user-1",
		StaffID: "staff-1",
		Type:    t,
		Reason:  "breaking the rules",
	}
}

func TestApplyWarnIsLogOnly(t *testing.T) {
	actions := &fakeActioner{}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	w := newTestWorkflow(actions, store, notifier)

	rec, err := w.Apply(baseRequest(models.PunishmentWarn))
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}

	if actions.totalCalls() != 0 {
		t.Errorf("Warn should not invoke any moderation action, got %d calls", actions.totalCalls())
	}

	if len(store.records) != 1 {
		t.Fatalf("records = %d, want 1", len(store.records))
	}

	if rec.DurationMinutes != 0 {
		t.Errorf("DurationMinutes = %d, want 0 for non-Timeout", rec.DurationMinutes)
	}

	if len(notifier.messages) != 1 {
		t.Fatalf("DMs sent = %d, want 1", len(notifier.messages))
	}
	if notifier.messages[0] != "You have been warned. Reason: breaking the rules" {
		t.Errorf("unexpected DM text: %q", notifier.messages[0])
	}
}

func TestApplyDispatchesByType(t *testing.T) {
	tests := []struct {
		name  string
		typ   models.PunishmentType
		check func(t *testing.T, actions *fakeActioner)
	}{
		{"kick", models.PunishmentKick, func(t *testing.T, a *fakeActioner) {
			if a.kickCalls != 1 {
				t.Errorf("kickCalls = %d, want 1", a.kickCalls)
			}
		}},
		{"ban", models.PunishmentBan, func(t *testing.T, a *fakeActioner) {
			if a.banCalls != 1 {
				t.Errorf("banCalls = %d, want 1", a.banCalls)
			}
		}},
		{"remove timeout", models.PunishmentRemoveTimeout, func(t *testing.T, a *fakeActioner) {
			if a.removeCalls != 1 {
				t.Errorf("removeCalls = %d, want 1", a.removeCalls)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := &fakeActioner{}
			store := &fakeStore{}
			w := newTestWorkflow(actions, store, &fakeNotifier{})

			rec, err := w.Apply(baseRequest(tt.typ))
			if err != nil {
				t.Fatalf("Apply() returned error: %v", err)
			}
			tt.check(t, actions)

			if actions.totalCalls() != 1 {
				t.Errorf("total action calls = %d, want 1", actions.totalCalls())
			}
			if len(store.records) != 1 {
				t.Errorf("records = %d, want 1", len(store.records))
			}
			if rec.DurationMinutes != 0 {
				t.Errorf("DurationMinutes = %d, want 0 for non-Timeout", rec.DurationMinutes)
			}
		})
	}
}

func TestApplyTimeoutRecordsDurationAndExpiry(t *testing.T) {
	actions := &fakeActioner{}
	store := &fakeStore{}
	w := newTestWorkflow(actions, store, &fakeNotifier{})

	req := baseRequest(models.PunishmentTimeout)
	req.DurationMinutes = 45

	rec, err := w.Apply(req)
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}

	if rec.DurationMinutes != 45 {
		t.Errorf("DurationMinutes = %d, want 45", rec.DurationMinutes)
	}

	if actions.timeoutUntil == nil {
		t.Fatal("TimeoutMember was not given an expiry")
	}
	want := time.Unix(1700000000, 0).Add(45 * time.Minute)
	if !actions.timeoutUntil.Equal(want) {
		t.Errorf("timeout until = %v, want %v", actions.timeoutUntil, want)
	}
}

func TestApplyRejectsNonPositiveDuration(t *testing.T) {
	for _, minutes := range []int{0, -5} {
		actions := &fakeActioner{}
		store := &fakeStore{}
		w := newTestWorkflow(actions, store, &fakeNotifier{})

		req := baseRequest(models.PunishmentTimeout)
		req.DurationMinutes = minutes

		_, err := w.Apply(req)
		if !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("duration %d: err = %v, want ErrInvalidDuration", minutes, err)
		}
		if actions.totalCalls() != 0 {
			t.Errorf("duration %d: action invoked despite invalid input", minutes)
		}
		if len(store.records) != 0 {
			t.Errorf("duration %d: record written despite invalid input", minutes)
		}
	}
}

func TestApplyFailedActionWritesNoRecord(t *testing.T) {
	actions := &fakeActioner{fail: errors.New("missing permissions")}
	store := &fakeStore{}
	notifier := &fakeNotifier{}
	w := newTestWorkflow(actions, store, notifier)

	_, err := w.Apply(baseRequest(models.PunishmentKick))

	var actionErr *ActionError
	if !errors.As(err, &actionErr) {
		t.Fatalf("err = %v, want *ActionError", err)
	}
	if actionErr.Type != models.PunishmentKick {
		t.Errorf("ActionError.Type = %v, want Kick", actionErr.Type)
	}
	if len(store.records) != 0 {
		t.Errorf("records = %d, want 0 after failed action", len(store.records))
	}
	if len(notifier.messages) != 0 {
		t.Errorf("DMs = %d, want 0 after failed action", len(notifier.messages))
	}
}

func TestApplyStoreFailureSurfaces(t *testing.T) {
	actions := &fakeActioner{}
	store := &fakeStore{failInsert: errors.New("connection reset")}
	notifier := &fakeNotifier{}
	w := newTestWorkflow(actions, store, notifier)

	_, err := w.Apply(baseRequest(models.PunishmentBan))

	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("err = %v, want *StoreError", err)
	}
	// the ban was already applied before the write failed
	if actions.banCalls != 1 {
		t.Errorf("banCalls = %d, want 1", actions.banCalls)
	}
	if len(notifier.messages) != 0 {
		t.Errorf("subject must not be notified when the record was lost")
	}
}

func TestApplyNotifyFailureIsSwallowed(t *testing.T) {
	actions := &fakeActioner{}
	store := &fakeStore{}
	notifier := &fakeNotifier{fail: errors.New("cannot send messages to this user")}
	w := newTestWorkflow(actions, store, notifier)

	rec, err := w.Apply(baseRequest(models.PunishmentWarn))
	if err != nil {
		t.Fatalf("Apply() returned error: %v", err)
	}
	if rec == nil {
		t.Fatal("record missing despite DM failure being non-fatal")
	}
	if len(store.records) != 1 {
		t.Errorf("records = %d, want 1", len(store.records))
	}
}

func TestNotificationText(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{Request{Type: models.PunishmentWarn, Reason: "spam"}, "You have been warned. Reason: spam"},
		{Request{Type: models.PunishmentKick, Reason: "spam"}, "You have been kicked. Reason: spam"},
		{Request{Type: models.PunishmentBan, Reason: "spam"}, "You have been banned. Reason: spam"},
		{Request{Type: models.PunishmentRemoveTimeout, Reason: "appeal"}, "Your timeout has been removed. Reason: appeal"},
		{Request{Type: models.PunishmentTimeout, Reason: "spam", DurationMinutes: 30}, "You have been timed out for 30 minutes. Reason: spam"},
	}

	for _, tt := range tests {
		if got := NotificationText(tt.req); got != tt.want {
			t.Errorf("NotificationText(%v) = %q, want %q", tt.req.Type, got, tt.want)
		}
	}
}

func TestHistoryOrderingAndEmptyState(t *testing.T) {
	store := &fakeStore{}
	w := newTestWorkflow(&fakeActioner{}, store, &fakeNotifier{})

	// empty state
	records, err := w.History("guild-1", "user-1")
	if err != nil {
		t.Fatalf("History() returned error: %v", err)
	}
	if got := FormatHistory(records); got != NoHistoryText {
		t.Errorf("empty history = %q, want %q", got, NoHistoryText)
	}

	// three punishments in order
	types := []models.PunishmentType{models.PunishmentWarn, models.PunishmentTimeout, models.PunishmentKick}
	for _, typ := range types {
		req := baseRequest(typ)
		if typ == models.PunishmentTimeout {
			req.DurationMinutes = 10
		}
		if _, err := w.Apply(req); err != nil {
			t.Fatalf("Apply(%v) returned error: %v", typ, err)
		}
	}

	records, err = w.History("guild-1", "user-1")
	if err != nil {
		t.Fatalf("History() returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("history length = %d, want 3", len(records))
	}
	for i, typ := range types {
		if records[i].Type != typ {
			t.Errorf("records[%d].Type = %v, want %v (insertion order)", i, records[i].Type, typ)
		}
	}

	rendered := FormatHistory(records)
	for i := 1; i <= 3; i++ {
		if !strings.Contains(rendered, fmt.Sprintf("%d. ", i)) {
			t.Errorf("rendered history missing entry %d:\n%s", i, rendered)
		}
	}
	if !strings.Contains(rendered, "Staff: <@staff-1>") {
		t.Errorf("rendered history missing staff mention:\n%s", rendered)
	}
}
