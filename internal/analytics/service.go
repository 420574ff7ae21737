package analytics

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	issuedomain "github.com/maintain-ai/maintain-backend/internal/issues/domain"
	"github.com/maintain-ai/maintain-backend/internal/storage/memory"
)

const (
	snapshotKey = "maintain:analytics:snapshot"
	snapshotTTL = 10 * time.Minute
)

type CategoryCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type TopIssue struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Upvotes  int    `json:"upvotes"`
}

// Snapshot is the admin dashboard payload.
type Snapshot struct {
	IssuesByCategory []CategoryCount `json:"issuesByCategory"`
	Last7Days        []DayCount      `json:"last7Days"`
	TopUpvotedIssues []TopIssue      `json:"topUpvotedIssues"`
	TotalIssues      int             `json:"totalIssues"`
	TotalUpvotes     int             `json:"totalUpvotes"`
	OpenIssues       int             `json:"openIssues"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// Service computes dashboard analytics from the store. With redis
// configured, a recent snapshot is cached and refreshed in the
// background so dashboard polling does not rescan the feed every time.
type Service struct {
	store *memory.Store
	redis *redis.Client
}

func NewService(store *memory.Store, rdb *redis.Client) *Service {
	return &Service{store: store, redis: rdb}
}

// Snapshot returns the cached snapshot when fresh, computing (and
// caching) a new one otherwise.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, snapshotKey).Result(); err == nil {
			var snap Snapshot
			if err := json.Unmarshal([]byte(data), &snap); err == nil {
				return snap
			}
		}
	}

	snap := s.Compute()
	s.cache(ctx, snap)
	return snap
}

// Refresh recomputes the snapshot and overwrites the cache. The cron
// scheduler calls this periodically.
func (s *Service) Refresh(ctx context.Context) {
	s.cache(ctx, s.Compute())
}

func (s *Service) cache(ctx context.Context, snap Snapshot) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, snapshotKey, data, snapshotTTL).Err(); err != nil {
		log.Printf("analytics: cache write failed: %v", err)
	}
}

// Compute scans the current issues and aggregates the dashboard numbers.
func (s *Service) Compute() Snapshot {
	issues := s.store.ListIssues()

	byCategory := make(map[string]int)
	open := 0
	upvotes := 0
	for _, iss := range issues {
		byCategory[iss.Category]++
		upvotes += iss.Upvotes
		if iss.Status != issuedomain.StatusResolved {
			open++
		}
	}

	categories := make([]CategoryCount, 0, len(byCategory))
	for name, count := range byCategory {
		categories = append(categories, CategoryCount{Name: name, Value: count})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Value != categories[j].Value {
			return categories[i].Value > categories[j].Value
		}
		return categories[i].Name < categories[j].Name
	})

	return Snapshot{
		IssuesByCategory: categories,
		Last7Days:        last7Days(issues),
		TopUpvotedIssues: topUpvoted(issues, 5),
		TotalIssues:      len(issues),
		TotalUpvotes:     upvotes,
		OpenIssues:       open,
		GeneratedAt:      time.Now().UTC(),
	}
}

func last7Days(issues []issuedomain.MaintenanceIssue) []DayCount {
	now := time.Now()
	out := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		next := day.AddDate(0, 0, 1)

		count := 0
		for _, iss := range issues {
			if !iss.CreatedAt.Before(day) && iss.CreatedAt.Before(next) {
				count++
			}
		}
		out = append(out, DayCount{Date: day.Format("2006-01-02"), Count: count})
	}
	return out
}

func topUpvoted(issues []issuedomain.MaintenanceIssue, n int) []TopIssue {
	ranked := make([]TopIssue, 0, len(issues))
	for _, iss := range issues {
		ranked = append(ranked, TopIssue{
			ID:       iss.ID,
			Title:    iss.Title,
			Category: iss.Category,
			Upvotes:  iss.Upvotes,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Upvotes > ranked[j].Upvotes
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
