package services

import (
	"context"
	"sync"
	"time"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
)

type fakeAccounts struct {
	mu      sync.Mutex
	byName  map[string]*domain.Account
	nextID  int64
	getErr  error
	creates int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byName: map[string]*domain.Account{}, nextID: 1}
}

func (f *fakeAccounts) Create(_ context.Context, a *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if _, ok := f.byName[a.Username]; ok {
		return domain.ErrUsernameTaken
	}
	a.ID = f.nextID
	a.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f.nextID++
	cp := *a
	f.byName[a.Username] = &cp
	return nil
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byName[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccounts) Ping(context.Context) error { return nil }

func (f *fakeAccounts) remove(username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byName, username)
}

type fakeNotes struct {
	mu     sync.Mutex
	notes  map[int64]*domain.Note
	nextID int64
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{notes: map[int64]*domain.Note{}, nextID: 1}
}

func (f *fakeNotes) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Note, 0)
	for id := int64(1); id < f.nextID; id++ {
		if n, ok := f.notes[id]; ok && n.UserID == ownerID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeNotes) Get(_ context.Context, ownerID, id int64) (*domain.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	if !ok || n.UserID != ownerID {
		return nil, domain.ErrNoteNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNotes) Create(_ context.Context, n *domain.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = f.nextID
	f.nextID++
	now := time.Now().UTC()
	n.CreatedAt, n.UpdatedAt = now, now
	cp := *n
	f.notes[n.ID] = &cp
	return nil
}

func (f *fakeNotes) Update(_ context.Context, ownerID, id int64, patch domain.NotePatch) (*domain.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	if !ok || n.UserID != ownerID {
		return nil, domain.ErrNoteNotFound
	}
	patch.Apply(n)
	n.UpdatedAt = n.UpdatedAt.Add(time.Second)
	cp := *n
	return &cp, nil
}

func (f *fakeNotes) Delete(_ context.Context, ownerID, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	if !ok || n.UserID != ownerID {
		return domain.ErrNoteNotFound
	}
	delete(f.notes, id)
	return nil
}

func (f *fakeNotes) Ping(context.Context) error { return nil }
