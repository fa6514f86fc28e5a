package reminder

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	reminderRepo "apptreminders/database/repository/reminder"
	"apptreminders/models"
)

var errBoom = errors.New("boom")

// memoryStore is an in-memory stand-in for the three collections.
type memoryStore struct {
	mu           sync.Mutex
	reminders    map[string]models.Reminder
	appointments map[string]models.Appointment
	users        map[string]models.User

	commits int
	// lastLimit is the limit passed to the latest FindDue call.
	lastLimit int
	// failCommit makes the n-th commit (1-based) fail without applying writes.
	failCommit int

	findErr        error
	appointmentErr error
	userErr        error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		reminders:    map[string]models.Reminder{},
		appointments: map[string]models.Appointment{},
		users:        map[string]models.User{},
	}
}

func (s *memoryStore) addReminder(r models.Reminder) {
	s.reminders[r.ID] = r
}

func (s *memoryStore) addAppointment(id string, status models.AppointmentStatus) {
	s.appointments[id] = models.Appointment{ID: id, Status: status}
}

func (s *memoryStore) addUser(id, token string, enabled *bool) {
	s.users[id] = models.User{ID: id, FCMToken: token, NotificationsEnabled: enabled}
}

func (s *memoryStore) reminder(id string) (models.Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	return r, ok
}

func (s *memoryStore) filter(keep func(models.Reminder) bool) []models.Reminder {
	var out []models.Reminder
	for _, r := range s.reminders {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SendAt.Equal(out[j].SendAt) {
			return out[i].SendAt.Before(out[j].SendAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *memoryStore) FindDue(ctx context.Context, now time.Time, limit int) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.lastLimit = limit
	due := s.filter(func(r models.Reminder) bool { return !r.Sent && !r.SendAt.After(now) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *memoryStore) FindCreatedBefore(ctx context.Context, cutoff time.Time) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.filter(func(r models.Reminder) bool { return r.CreatedAt.Before(cutoff) }), nil
}

func (s *memoryStore) FindUnsentByAppointment(ctx context.Context, appointmentID string) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.filter(func(r models.Reminder) bool { return !r.Sent && r.AppointmentID == appointmentID }), nil
}

func (s *memoryStore) NewBatch() reminderRepo.Batch {
	return &memoryBatch{store: s}
}

func (s *memoryStore) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appointmentErr != nil {
		return nil, s.appointmentErr
	}
	a, ok := s.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// memoryUsers exposes the user collection under the UserRepository method set.
type memoryUsers struct {
	*memoryStore
}

func (u memoryUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.userErr != nil {
		return nil, u.userErr
	}
	usr, ok := u.users[id]
	if !ok {
		return nil, nil
	}
	return &usr, nil
}

type batchOp struct {
	id     string
	delete bool
	at     time.Time
}

type memoryBatch struct {
	store *memoryStore
	ops   []batchOp
}

func (b *memoryBatch) MarkSent(id string, at time.Time) {
	b.ops = append(b.ops, batchOp{id: id, at: at})
}

func (b *memoryBatch) Delete(id string) {
	b.ops = append(b.ops, batchOp{id: id, delete: true})
}

func (b *memoryBatch) Len() int {
	return len(b.ops)
}

func (b *memoryBatch) Commit(ctx context.Context) error {
	s := b.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commits++
	if s.failCommit == s.commits {
		return errBoom
	}
	for _, op := range b.ops {
		if op.delete {
			delete(s.reminders, op.id)
			continue
		}
		if r, ok := s.reminders[op.id]; ok {
			r.Sent = true
			r.UpdatedAt = op.at
			s.reminders[op.id] = r
		}
	}
	return nil
}

type pushCall struct {
	token, title, body string
	data               map[string]string
}

type fakePusher struct {
	calls []pushCall
	errs  map[string]error
}

func (p *fakePusher) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	p.calls = append(p.calls, pushCall{token: token, title: title, body: body, data: data})
	return p.errs[token]
}

func boolPtr(b bool) *bool {
	return &b
}
