package ports

import (
	"context"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
)

// NoteRepository scopes every lookup by owner. A note owned by someone else is
// reported as domain.ErrNoteNotFound.
type NoteRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Note, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Note, error)
	Create(ctx context.Context, note *domain.Note) error
	Update(ctx context.Context, ownerID, id int64, patch domain.NotePatch) (*domain.Note, error)
	Delete(ctx context.Context, ownerID, id int64) error
	Ping(ctx context.Context) error
}

type CreateNoteInput struct {
	Title   *string
	Content *string
}

type NoteService interface {
	List(ctx context.Context, ownerID int64) ([]*domain.Note, error)
	Get(ctx context.Context, ownerID, id int64) (*domain.Note, error)
	Create(ctx context.Context, ownerID int64, input CreateNoteInput) (*domain.Note, error)
	Update(ctx context.Context, ownerID, id int64, patch domain.NotePatch) (*domain.Note, error)
	Delete(ctx context.Context, ownerID, id int64) error
}
