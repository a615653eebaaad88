package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/YoussefTakali/esprithub/internal/domain"
	"github.com/YoussefTakali/esprithub/internal/events"
	"github.com/YoussefTakali/esprithub/internal/persistence"
	"github.com/YoussefTakali/esprithub/internal/repository"
	apperrors "github.com/YoussefTakali/esprithub/pkg/util/errorutil"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = time.Minute
)

// DashboardStats aggregates platform counts for the admin dashboard.
type DashboardStats struct {
	TotalUsers            int64   `json:"total_users"`
	TotalAdmins           int64   `json:"total_admins"`
	TotalChiefs           int64   `json:"total_chiefs"`
	TotalTeachers         int64   `json:"total_teachers"`
	TotalStudents         int64   `json:"total_students"`
	UsersWithGithubToken  int64   `json:"users_with_github_token"`
	GithubIntegrationRate float64 `json:"github_integration_rate"`
}

// roleWelcomeMessages keeps role-conditioned display text out of the
// authentication core, in one auditable table.
var roleWelcomeMessages = map[domain.UserRole]string{
	domain.RoleAdmin:   "You have full administrative access to the EspritHub platform.",
	domain.RoleChief:   "Welcome to your department dashboard. Manage your teams and projects efficiently.",
	domain.RoleTeacher: "Ready to inspire and educate? Access your courses and student management tools.",
	domain.RoleStudent: "Continue your learning journey with access to courses and collaboration tools.",
}

// DashboardService computes aggregate statistics and per-user dashboard
// content. Stats reads go through a short-lived Redis cache that user
// mutations invalidate via domain events.
type DashboardService struct {
	users  repository.UserRepository
	cache  *persistence.Redis
	logger *zap.Logger
}

// NewDashboardService builds the service. cache may be nil, in which case
// every read hits the store.
func NewDashboardService(users repository.UserRepository, cache *persistence.Redis, logger *zap.Logger) *DashboardService {
	return &DashboardService{users: users, cache: cache, logger: logger}
}

// RegisterInvalidation subscribes cache invalidation to user mutations.
func (s *DashboardService) RegisterInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	invalidate := func(ctx context.Context, _ events.Event) error {
		s.invalidateStats(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventUserCreated, invalidate)
	dispatcher.Subscribe(events.EventUserUpdated, invalidate)
	dispatcher.Subscribe(events.EventUserDeleted, invalidate)
	dispatcher.Subscribe(events.EventGithubLinked, invalidate)
}

// Stats returns the aggregate counts, served from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.storeStats(ctx, stats)
	return stats, nil
}

// WelcomeMessage builds the personalized greeting for a user.
func (s *DashboardService) WelcomeMessage(user *domain.User) string {
	roleMessage := roleWelcomeMessages[user.Role]

	githubStatus := "Don't forget to connect your GitHub account for the full experience."
	if user.HasGithubToken() {
		githubStatus = "Your GitHub account is connected and ready to use."
	}

	return fmt.Sprintf("Welcome back, %s! %s %s", user.FullName(), roleMessage, githubStatus)
}

func (s *DashboardService) computeStats(ctx context.Context) (*DashboardStats, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{TotalUsers: total}

	counts := []struct {
		role domain.UserRole
		dest *int64
	}{
		{domain.RoleAdmin, &stats.TotalAdmins},
		{domain.RoleChief, &stats.TotalChiefs},
		{domain.RoleTeacher, &stats.TotalTeachers},
		{domain.RoleStudent, &stats.TotalStudents},
	}
	for _, c := range counts {
		n, err := s.users.CountByRole(ctx, c.role)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	linked, err := s.users.CountWithGithubToken(ctx)
	if err != nil {
		return nil, err
	}
	stats.UsersWithGithubToken = linked

	if total > 0 {
		stats.GithubIntegrationRate = float64(linked) / float64(total) * 100
	}
	return stats, nil
}

func (s *DashboardService) cachedStats(ctx context.Context) *DashboardStats {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	raw, err := s.cache.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("dashboard stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *DashboardService) storeStats(ctx context.Context, stats *DashboardStats) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard stats cache write failed", zap.Error(err))
	}
}

func (s *DashboardService) invalidateStats(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("dashboard stats cache invalidation failed", zap.Error(err))
	}
}
