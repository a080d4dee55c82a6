package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
)

type noteService struct {
	repo ports.NoteRepository
}

func NewNoteService(repo ports.NoteRepository) ports.NoteService {
	return &noteService{
		repo: repo,
	}
}

func (s *noteService) List(ctx context.Context, ownerID int64) ([]*domain.Note, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *noteService) Get(ctx context.Context, ownerID, id int64) (*domain.Note, error) {
	return s.repo.Get(ctx, ownerID, id)
}

func (s *noteService) Create(ctx context.Context, ownerID int64, input ports.CreateNoteInput) (*domain.Note, error) {
	if input.Title == nil || input.Content == nil {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}

	note := &domain.Note{
		UserID:  ownerID,
		Title:   *input.Title,
		Content: *input.Content,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (s *noteService) Update(ctx context.Context, ownerID, id int64, patch domain.NotePatch) (*domain.Note, error) {
	return s.repo.Update(ctx, ownerID, id, patch)
}

func (s *noteService) Delete(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, ownerID, id)
}
