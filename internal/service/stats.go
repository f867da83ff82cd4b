package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

const (
	// WeekMillis is the trailing window counted by RecipeStats.ThisWeek.
	WeekMillis int64 = 7 * 24 * 60 * 60 * 1000

	TopRatedThreshold   = 4
	RecentlyUpdatedSize = 5
)

// GetStats computes a fresh statistics snapshot for the owner.
func (s *RecipeService) GetStats(ctx context.Context, ownerID string) (*types.RecipeStats, error) {
	recipes, err := s.ListRecipes(ctx, ownerID, types.RecipeFilter{})
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(recipes, s.now())
	return &stats, nil
}

// ComputeStats aggregates recipes as of now. recipes is not modified.
func ComputeStats(recipes []model.Recipe, now time.Time) types.RecipeStats {
	weekAgo := now.UnixMilli() - WeekMillis
	categories := make(map[string]struct{})

	stats := types.RecipeStats{Total: len(recipes)}
	for i := range recipes {
		r := &recipes[i]
		if r.Category != nil && *r.Category != "" {
			categories[*r.Category] = struct{}{}
		}
		if r.Rating != nil && *r.Rating >= TopRatedThreshold {
			stats.TopRated++
		}
		if r.Difficulty != nil {
			switch *r.Difficulty {
			case "easy":
				stats.Easy++
			case "medium":
				stats.Medium++
			case "hard":
				stats.Hard++
			}
		}
		if r.CreatedAt > weekAgo {
			stats.ThisWeek++
		}
	}
	stats.Categories = len(categories)
	stats.RecentlyUpdated = recentlyUpdated(recipes, RecentlyUpdatedSize)
	return stats
}

// recentlyUpdated returns the n most recently updated recipes. Ties keep the
// input order.
func recentlyUpdated(recipes []model.Recipe, n int) []types.RecipeSummary {
	sorted := slices.Clone(recipes)
	slices.SortStableFunc(sorted, func(a, b model.Recipe) int {
		return cmp.Compare(b.UpdatedAt, a.UpdatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	out := make([]types.RecipeSummary, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, types.RecipeSummary{ID: r.ID, Title: r.Title})
	}
	return out
}
