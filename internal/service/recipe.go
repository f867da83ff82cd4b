package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// RecipeService handles recipe operations. Every operation is scoped to the
// owner id resolved from the caller's identity.
type RecipeService struct {
	db      *gorm.DB
	now     func() time.Time
	newID   func() string
	archive ArchiveStore
}

// RecipeOption configures a RecipeService.
type RecipeOption func(*RecipeService)

// WithClock overrides the clock used for timestamps and statistics windows.
func WithClock(now func() time.Time) RecipeOption {
	return func(s *RecipeService) { s.now = now }
}

// WithIDGenerator overrides recipe id generation.
func WithIDGenerator(newID func() string) RecipeOption {
	return func(s *RecipeService) { s.newID = newID }
}

// WithArchiveStore enables uploading export documents to object storage.
func WithArchiveStore(store ArchiveStore) RecipeOption {
	return func(s *RecipeService) { s.archive = store }
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, opts ...RecipeOption) *RecipeService {
	s := &RecipeService{
		db:    db,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RecipeService) nowMillis() int64 {
	return s.now().UnixMilli()
}

// ListRecipes returns the owner's recipes, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, ownerID string, filter types.RecipeFilter) ([]model.Recipe, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	recipes := []model.Recipe{}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves one of the owner's recipes by id.
func (s *RecipeService) GetRecipe(ctx context.Context, ownerID, id string) (*model.Recipe, error) {
	return s.find(s.db.WithContext(ctx), ownerID, id)
}

func (s *RecipeService) find(tx *gorm.DB, ownerID, id string) (*model.Recipe, error) {
	var recipe model.Recipe
	err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, recipeNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe %s: %w", id, err)
	}
	return &recipe, nil
}

// CreateRecipe validates and stores a new recipe, returning its id.
func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID string, req *types.CreateRecipeRequest) (string, error) {
	if strings.TrimSpace(ownerID) == "" {
		return "", newValidationError("ownerId", "owner is required")
	}
	if err := ValidateCreate(req); err != nil {
		return "", err
	}

	now := s.nowMillis()
	recipe := model.Recipe{
		ID:           s.newID(),
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Ingredients:  NormalizeIngredients(req.Ingredients),
		Instructions: NormalizeInstructions(req.Instructions),
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		Category:     req.Category,
		Tags:         normalizeTags(req.Tags),
		Difficulty:   req.Difficulty,
		Rating:       req.Rating,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return "", fmt.Errorf("create recipe: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("owner_id", ownerID).
		Str("recipe_id", recipe.ID).
		Msg("recipe created")
	return recipe.ID, nil
}

// UpdateRecipe merges the supplied fields over the stored record.
func (s *RecipeService) UpdateRecipe(ctx context.Context, ownerID, id string, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	if err := ValidateUpdate(req); err != nil {
		return nil, err
	}

	var updated *model.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SQLite has no row locks; its dialect drops the clause
		recipe, err := s.find(tx.Clauses(clause.Locking{Strength: "UPDATE"}), ownerID, id)
		if err != nil {
			return err
		}

		applyPatch(recipe, req)

		// updatedAt never moves backwards, even if the clock does
		if now := s.nowMillis(); now > recipe.UpdatedAt {
			recipe.UpdatedAt = now
		}

		// Must match the stored row; a vanished row is never re-inserted
		result := tx.Model(recipe).
			Where("owner_id = ?", ownerID).
			Select("*").
			Updates(recipe)
		if result.Error != nil {
			return fmt.Errorf("update recipe %s: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return recipeNotFound(id)
		}
		updated = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("owner_id", ownerID).
		Str("recipe_id", id).
		Msg("recipe updated")
	return updated, nil
}

// applyPatch copies every supplied field onto recipe. OwnerID, ID and
// CreatedAt are not patchable.
func applyPatch(recipe *model.Recipe, req *types.UpdateRecipeRequest) {
	if req.Title.Present() {
		recipe.Title = strings.TrimSpace(req.Title.Value)
	}
	if req.Ingredients.Present() {
		recipe.Ingredients = NormalizeIngredients(req.Ingredients.Value)
	}
	if req.Instructions.Present() {
		recipe.Instructions = NormalizeInstructions(req.Instructions.Value)
	}
	if req.Tags.Set {
		recipe.Tags = normalizeTags(req.Tags.Value)
	}
	patchPtr(&recipe.Description, req.Description)
	patchPtr(&recipe.PrepTime, req.PrepTime)
	patchPtr(&recipe.CookTime, req.CookTime)
	patchPtr(&recipe.Servings, req.Servings)
	patchPtr(&recipe.Category, req.Category)
	patchPtr(&recipe.Difficulty, req.Difficulty)
	patchPtr(&recipe.Rating, req.Rating)
	patchPtr(&recipe.Notes, req.Notes)
}

func patchPtr[T any](dst **T, field types.Optional[T]) {
	if field.Set {
		*dst = field.Ptr()
	}
}

// DeleteRecipe permanently removes one of the owner's recipes.
func (s *RecipeService) DeleteRecipe(ctx context.Context, ownerID, id string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.Recipe{})
	if result.Error != nil {
		return fmt.Errorf("delete recipe %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return recipeNotFound(id)
	}

	zerolog.Ctx(ctx).Debug().
		Str("owner_id", ownerID).
		Str("recipe_id", id).
		Msg("recipe deleted")
	return nil
}

func normalizeTags(in []string) model.StringArray {
	out := make(model.StringArray, 0, len(in))
	for _, tag := range in {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
