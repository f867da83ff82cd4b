package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/types"
)

// fakeClock is a settable clock for timestamp assertions.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func strPtr(s string) *string { return &s }

func setupRecipeService(t *testing.T, opts ...service.RecipeOption) (*service.RecipeService, *fakeClock) {
	t.Helper()
	db := testhelpers.SetupSQLiteDatabase(t)
	clock := newFakeClock()
	opts = append([]service.RecipeOption{service.WithClock(clock.Now)}, opts...)
	return service.NewRecipeService(db, opts...), clock
}

func TestCreateRecipePancakes(t *testing.T) {
	svc, clock := setupRecipeService(t)
	ctx := context.Background()

	id, err := svc.CreateRecipe(ctx, "u1", &types.CreateRecipeRequest{
		Title: "Pancakes",
		Ingredients: []model.Ingredient{
			{Item: "flour", Amount: "2", Unit: "cups"},
			{Item: "", Amount: "1", Unit: "tsp"},
		},
		Instructions: []string{"Mix", "Cook"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	recipes, err := svc.ListRecipes(ctx, "u1", types.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	got := recipes[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "u1", got.OwnerID)
	assert.Equal(t, model.Ingredients{{Item: "flour", Amount: "2", Unit: "cups"}}, got.Ingredients)
	assert.Equal(t, model.StringArray{"Mix", "Cook"}, got.Instructions)
	assert.Equal(t, clock.Now().UnixMilli(), got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	assert.Nil(t, got.Rating)
}

func TestCreateRecipeRejectsWhitespaceIngredients(t *testing.T) {
	svc, _ := setupRecipeService(t)

	_, err := svc.CreateRecipe(context.Background(), "u1", &types.CreateRecipeRequest{
		Title:        "Stew",
		Ingredients:  []model.Ingredient{{Item: "  ", Amount: "1"}},
		Instructions: []string{"Stir"},
	})
	requireValidationError(t, err, "ingredients", "at least one ingredient required")

	recipes, err := svc.ListRecipes(context.Background(), "u1", types.RecipeFilter{})
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestCreateRecipeRequiresOwner(t *testing.T) {
	svc, _ := setupRecipeService(t)
	_, err := svc.CreateRecipe(context.Background(), " ", validCreate())
	assert.True(t, service.IsValidationError(err))
}

func TestCreateRecipeKeepsOptionalFields(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	req := validCreate()
	req.Description = strPtr("Sunday breakfast")
	req.PrepTime = intPtr(10)
	req.CookTime = intPtr(20)
	req.Servings = intPtr(4)
	req.Category = strPtr("Breakfast")
	req.Tags = []string{" sweet ", "", "quick"}
	req.Difficulty = strPtr("easy")
	req.Rating = intPtr(5)
	req.Notes = strPtr("double the batch")

	id, err := svc.CreateRecipe(ctx, "u1", req)
	require.NoError(t, err)

	got, err := svc.GetRecipe(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, "Sunday breakfast", *got.Description)
	assert.Equal(t, 10, *got.PrepTime)
	assert.Equal(t, 20, *got.CookTime)
	assert.Equal(t, 4, *got.Servings)
	assert.Equal(t, "Breakfast", *got.Category)
	assert.Equal(t, model.StringArray{"sweet", "quick"}, got.Tags)
	assert.Equal(t, "easy", *got.Difficulty)
	assert.Equal(t, 5, *got.Rating)
	assert.Equal(t, "double the batch", *got.Notes)
}

func TestListRecipesNewestFirstAndOwnerScoped(t *testing.T) {
	svc, clock := setupRecipeService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		req := validCreate()
		req.Title = fmt.Sprintf("Recipe %d", i)
		id, err := svc.CreateRecipe(ctx, "u1", req)
		require.NoError(t, err)
		ids = append(ids, id)
		clock.Advance(time.Minute)
	}
	_, err := svc.CreateRecipe(ctx, "u2", validCreate())
	require.NoError(t, err)

	recipes, err := svc.ListRecipes(ctx, "u1", types.RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{recipes[0].ID, recipes[1].ID, recipes[2].ID})

	empty, err := svc.ListRecipes(ctx, "nobody", types.RecipeFilter{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestListRecipesFilter(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	for _, c := range []struct{ category, difficulty string }{
		{"Dinner", "hard"}, {"Dinner", "easy"}, {"Dessert", "easy"},
	} {
		req := validCreate()
		req.Category = strPtr(c.category)
		req.Difficulty = strPtr(c.difficulty)
		_, err := svc.CreateRecipe(ctx, "u1", req)
		require.NoError(t, err)
	}

	dinners, err := svc.ListRecipes(ctx, "u1", types.RecipeFilter{Category: "Dinner"})
	require.NoError(t, err)
	assert.Len(t, dinners, 2)

	easyDinners, err := svc.ListRecipes(ctx, "u1", types.RecipeFilter{Category: "Dinner", Difficulty: "easy"})
	require.NoError(t, err)
	assert.Len(t, easyDinners, 1)
}

func TestGetRecipeIsOwnerScoped(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	id, err := svc.CreateRecipe(ctx, "u1", validCreate())
	require.NoError(t, err)

	_, err = svc.GetRecipe(ctx, "u2", id)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.GetRecipe(ctx, "u1", "missing")
	var nf *service.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing", nf.ID)
}

func TestUpdateRecipeMergesFields(t *testing.T) {
	svc, clock := setupRecipeService(t)
	ctx := context.Background()

	req := validCreate()
	req.Rating = intPtr(3)
	req.Notes = strPtr("original")
	id, err := svc.CreateRecipe(ctx, "u1", req)
	require.NoError(t, err)
	created, err := svc.GetRecipe(ctx, "u1", id)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	updated, err := svc.UpdateRecipe(ctx, "u1", id, &types.UpdateRecipeRequest{
		Title:        types.Some("  Better Pancakes "),
		Instructions: types.Some([]string{"Mix", " ", "Rest", "Cook"}),
		Rating:       types.Null[int](),
		Category:     types.Some("Breakfast"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Better Pancakes", updated.Title)
	assert.Equal(t, model.StringArray{"Mix", "Rest", "Cook"}, updated.Instructions)
	assert.Nil(t, updated.Rating)
	assert.Equal(t, "Breakfast", *updated.Category)
	// untouched fields survive
	assert.Equal(t, "original", *updated.Notes)
	assert.Equal(t, created.Ingredients, updated.Ingredients)
	// immutable fields
	assert.Equal(t, "u1", updated.OwnerID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock.Now().UnixMilli(), updated.UpdatedAt)

	stored, err := svc.GetRecipe(ctx, "u1", id)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUpdateRecipeTimestampsNeverRegress(t *testing.T) {
	svc, clock := setupRecipeService(t)
	ctx := context.Background()

	id, err := svc.CreateRecipe(ctx, "u1", validCreate())
	require.NoError(t, err)

	prev, err := svc.GetRecipe(ctx, "u1", id)
	require.NoError(t, err)

	steps := []time.Duration{time.Second, 0, -time.Hour, time.Minute}
	for _, step := range steps {
		clock.Advance(step)
		updated, err := svc.UpdateRecipe(ctx, "u1", id, &types.UpdateRecipeRequest{Notes: types.Some("x")})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, updated.UpdatedAt, prev.UpdatedAt)
		assert.GreaterOrEqual(t, updated.UpdatedAt, updated.CreatedAt)
		assert.Equal(t, prev.CreatedAt, updated.CreatedAt)
		prev = updated
	}
}

func TestUpdateRecipeErrors(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	id, err := svc.CreateRecipe(ctx, "u1", validCreate())
	require.NoError(t, err)

	_, err = svc.UpdateRecipe(ctx, "u1", "missing", &types.UpdateRecipeRequest{Notes: types.Some("x")})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.UpdateRecipe(ctx, "u2", id, &types.UpdateRecipeRequest{Notes: types.Some("x")})
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.UpdateRecipe(ctx, "u1", id, &types.UpdateRecipeRequest{
		Ingredients: types.Some([]model.Ingredient{{Item: " "}}),
	})
	requireValidationError(t, err, "ingredients", "at least one ingredient required")

	got, err := svc.GetRecipe(ctx, "u1", id)
	require.NoError(t, err)
	assert.Len(t, got.Ingredients, 1)
}

func TestDeleteRecipe(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	id, err := svc.CreateRecipe(ctx, "u1", validCreate())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteRecipe(ctx, "u2", id), service.ErrNotFound)
	require.NoError(t, svc.DeleteRecipe(ctx, "u1", id))

	_, err = svc.GetRecipe(ctx, "u1", id)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.UpdateRecipe(ctx, "u1", id, &types.UpdateRecipeRequest{Notes: types.Some("x")})
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteRecipe(ctx, "u1", id), service.ErrNotFound)
}

func TestWithIDGenerator(t *testing.T) {
	svc, _ := setupRecipeService(t, service.WithIDGenerator(func() string { return "fixed-id" }))

	id, err := svc.CreateRecipe(context.Background(), "u1", validCreate())
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)
}

func TestUpdateRecipeDeletedDuringUpdate(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := service.NewRecipeService(db)
	ctx := context.Background()

	id, err := svc.CreateRecipe(ctx, "u1", validCreate())
	require.NoError(t, err)

	// Remove the row right after the update has read it, on the same
	// transaction, as a concurrent delete committing in between would.
	armed := true
	err = db.Callback().Query().After("gorm:query").Register("test:delete_after_read", func(tx *gorm.DB) {
		if !armed || tx.Statement.Table != "recipes" {
			return
		}
		armed = false
		tx.Session(&gorm.Session{NewDB: true}).Exec("DELETE FROM recipes WHERE id = ?", id)
	})
	require.NoError(t, err)

	_, err = svc.UpdateRecipe(ctx, "u1", id, &types.UpdateRecipeRequest{Title: types.Some("Waffles")})
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.False(t, armed)

	var count int64
	require.NoError(t, db.Model(&model.Recipe{}).Where("id = ?", id).Count(&count).Error)
	assert.Zero(t, count)
}
