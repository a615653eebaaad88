package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/YoussefTakali/esprithub/internal/auth"
	"github.com/YoussefTakali/esprithub/internal/domain"
	"github.com/YoussefTakali/esprithub/internal/github"
	"github.com/YoussefTakali/esprithub/internal/repository"
)

// memoryUserRepo is an in-memory repository.UserRepository for tests.
type memoryUserRepo struct {
	mu              sync.Mutex
	users           map[string]*domain.User
	getByEmailCalls int
	updateCalls     int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) add(user *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	r.users[copied.ID] = &copied
	return &copied
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[copied.ID] = &copied
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[copied.ID] = &copied
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getByEmailCalls++
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepo) List(_ context.Context, filters repository.UserListFilters) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		if filters.Email != nil && !strings.Contains(user.Email, *filters.Email) {
			continue
		}
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		if filters.Enabled != nil && user.Enabled != *filters.Enabled {
			continue
		}
		matched = append(matched, *user)
	}
	return matched, int64(len(matched)), nil
}

func (r *memoryUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memoryUserRepo) CountByRole(_ context.Context, role domain.UserRole) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

func (r *memoryUserRepo) CountWithGithubToken(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, user := range r.users {
		if user.HasGithubToken() {
			count++
		}
	}
	return count, nil
}

// fakeVerifier scripts GithubVerifier responses.
type fakeVerifier struct {
	profile *github.UserInfo
	err     error
	calls   int
}

func (v *fakeVerifier) FetchAuthenticatedUser(_ context.Context, _ string) (*github.UserInfo, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	return v.profile, nil
}

func mustHash(password string) string {
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		panic(err)
	}
	return hash
}
