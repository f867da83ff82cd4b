package service

import (
	"context"
	"strings"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// SearchRecipes returns the owner's recipes containing term, case-insensitively,
// in listing order. A blank term yields an empty result rather than everything.
func (s *RecipeService) SearchRecipes(ctx context.Context, ownerID, term string) ([]model.Recipe, error) {
	if strings.TrimSpace(term) == "" {
		return []model.Recipe{}, nil
	}

	recipes, err := s.ListRecipes(ctx, ownerID, types.RecipeFilter{})
	if err != nil {
		return nil, err
	}
	return FilterRecipes(recipes, term), nil
}

// FilterRecipes keeps the recipes matching term, preserving order.
func FilterRecipes(recipes []model.Recipe, term string) []model.Recipe {
	needle := strings.ToLower(term)
	matches := make([]model.Recipe, 0, len(recipes))
	for i := range recipes {
		if MatchesTerm(&recipes[i], needle) {
			matches = append(matches, recipes[i])
		}
	}
	return matches
}

// MatchesTerm reports whether any searchable field of recipe contains needle.
// needle must already be lowercased.
func MatchesTerm(recipe *model.Recipe, needle string) bool {
	if containsFold(recipe.Title, needle) {
		return true
	}
	if recipe.Description != nil && containsFold(*recipe.Description, needle) {
		return true
	}
	for _, ing := range recipe.Ingredients {
		if containsFold(ing.Item, needle) {
			return true
		}
	}
	for _, tag := range recipe.Tags {
		if containsFold(tag, needle) {
			return true
		}
	}
	if recipe.Category != nil && containsFold(*recipe.Category, needle) {
		return true
	}
	return false
}

func containsFold(field, needle string) bool {
	return strings.Contains(strings.ToLower(field), needle)
}
