// Package hasher implements password hashing with bcrypt.
package hasher

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// Bcrypt hashes passwords with a fixed cost. At most one hash per CPU runs at
// a time, the rest wait or give up when their context ends.
type Bcrypt struct {
	cost int
	sem  *semaphore.Weighted
}

func NewBcrypt(cost int) *Bcrypt {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(runtime.NumCPU())),
	}
}

var _ ports.PasswordHasher = (*Bcrypt)(nil)

func (b *Bcrypt) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer b.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, MaxPasswordBytes)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (b *Bcrypt) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer b.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("failed to verify password: %w", err)
	}
}
