package types

import (
	"github.com/pageza/recipebox/backend/internal/model"
)

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title        string             `json:"title"`
	Description  *string            `json:"description,omitempty"`
	Ingredients  []model.Ingredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	PrepTime     *int               `json:"prepTime,omitempty"`
	CookTime     *int               `json:"cookTime,omitempty"`
	Servings     *int               `json:"servings,omitempty"`
	Category     *string            `json:"category,omitempty"`
	Tags         []string           `json:"tags,omitempty"`
	Difficulty   *string            `json:"difficulty,omitempty"`
	Rating       *int               `json:"rating,omitempty"`
	Notes        *string            `json:"notes,omitempty"`
}

// UpdateRecipeRequest is a partial update. Omitted fields are left untouched,
// an explicit null clears an optional field.
type UpdateRecipeRequest struct {
	Title        Optional[string]             `json:"title"`
	Description  Optional[string]             `json:"description"`
	Ingredients  Optional[[]model.Ingredient] `json:"ingredients"`
	Instructions Optional[[]string]           `json:"instructions"`
	PrepTime     Optional[int]                `json:"prepTime"`
	CookTime     Optional[int]                `json:"cookTime"`
	Servings     Optional[int]                `json:"servings"`
	Category     Optional[string]             `json:"category"`
	Tags         Optional[[]string]           `json:"tags"`
	Difficulty   Optional[string]             `json:"difficulty"`
	Rating       Optional[int]                `json:"rating"`
	Notes        Optional[string]             `json:"notes"`
}

// RecipeFilter narrows a listing. Empty fields do not filter.
type RecipeFilter struct {
	Category   string
	Difficulty string
}

// RecipeSummary is the {id, title} projection used by the statistics view.
type RecipeSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RecipeStats is a fully recomputed snapshot over one owner's recipes.
type RecipeStats struct {
	Total           int             `json:"total"`
	Categories      int             `json:"categories"`
	TopRated        int             `json:"topRated"`
	Easy            int             `json:"easy"`
	Medium          int             `json:"medium"`
	Hard            int             `json:"hard"`
	ThisWeek        int             `json:"thisWeek"`
	RecentlyUpdated []RecipeSummary `json:"recentlyUpdated"`
}

// ExportDocument is the portable JSON form of an owner's recipe collection.
type ExportDocument struct {
	Version    int            `json:"version"`
	ExportedAt int64          `json:"exportedAt"`
	Count      int            `json:"count"`
	Recipes    []model.Recipe `json:"recipes"`
}

// ImportRequest accepts either a bare list of recipes or an ExportDocument
// body; both carry a "recipes" array.
type ImportRequest struct {
	Recipes []CreateRecipeRequest `json:"recipes"`
}

// ImportFailure describes one rejected item of an import batch.
type ImportFailure struct {
	Index int    `json:"index"`
	Title string `json:"title,omitempty"`
	Field string `json:"field,omitempty"`
	Error string `json:"error"`
}

// ImportResult reports the outcome of an import batch.
type ImportResult struct {
	Imported []string        `json:"imported"`
	Failed   []ImportFailure `json:"failed"`
}

// ArchiveResponse is returned after an export has been uploaded to object storage.
type ArchiveResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expiresAt"`
}
