package service

import (
	"strings"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

const (
	MinRating   = 0
	MaxRating   = 5
	MinServings = 1
)

// ValidateCreate checks a create payload. It does not modify the request.
func ValidateCreate(req *types.CreateRecipeRequest) error {
	if req == nil {
		return newValidationError("", "request body is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return newValidationError("title", "title is required")
	}
	if len(NormalizeIngredients(req.Ingredients)) == 0 {
		return newValidationError("ingredients", "at least one ingredient required")
	}
	if len(NormalizeInstructions(req.Instructions)) == 0 {
		return newValidationError("instructions", "at least one instruction required")
	}
	return validateNumbers(req.PrepTime, req.CookTime, req.Servings, req.Rating)
}

// ValidateUpdate checks only the fields present in a partial update.
func ValidateUpdate(req *types.UpdateRecipeRequest) error {
	if req == nil {
		return newValidationError("", "request body is required")
	}
	if req.Title.Set && strings.TrimSpace(req.Title.Value) == "" {
		return newValidationError("title", "title is required")
	}
	if req.Ingredients.Set && len(NormalizeIngredients(req.Ingredients.Value)) == 0 {
		return newValidationError("ingredients", "at least one ingredient required")
	}
	if req.Instructions.Set && len(NormalizeInstructions(req.Instructions.Value)) == 0 {
		return newValidationError("instructions", "at least one instruction required")
	}
	return validateNumbers(req.PrepTime.Ptr(), req.CookTime.Ptr(), req.Servings.Ptr(), req.Rating.Ptr())
}

func validateNumbers(prepTime, cookTime, servings, rating *int) error {
	if prepTime != nil && *prepTime < 0 {
		return newValidationError("prepTime", "prep time cannot be negative")
	}
	if cookTime != nil && *cookTime < 0 {
		return newValidationError("cookTime", "cook time cannot be negative")
	}
	if servings != nil && *servings < MinServings {
		return newValidationError("servings", "servings must be at least 1")
	}
	if rating != nil && (*rating < MinRating || *rating > MaxRating) {
		return newValidationError("rating", "rating must be between 0 and 5")
	}
	return nil
}

// NormalizeIngredients trims every entry and drops those whose item is empty,
// preserving order.
func NormalizeIngredients(in []model.Ingredient) model.Ingredients {
	out := make(model.Ingredients, 0, len(in))
	for _, ing := range in {
		item := strings.TrimSpace(ing.Item)
		if item == "" {
			continue
		}
		out = append(out, model.Ingredient{
			Item:   item,
			Amount: strings.TrimSpace(ing.Amount),
			Unit:   strings.TrimSpace(ing.Unit),
		})
	}
	return out
}

// NormalizeInstructions trims every step and drops the empty ones, preserving order.
func NormalizeInstructions(in []string) model.StringArray {
	out := make(model.StringArray, 0, len(in))
	for _, step := range in {
		if step = strings.TrimSpace(step); step != "" {
			out = append(out, step)
		}
	}
	return out
}
