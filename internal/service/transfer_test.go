package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

type mockArchiveStore struct {
	mock.Mock
}

func (m *mockArchiveStore) PutObject(ctx context.Context, key string, body []byte, contentType string) error {
	return m.Called(ctx, key, body, contentType).Error(0)
}

func (m *mockArchiveStore) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}

func TestExportRecipes(t *testing.T) {
	svc, clock := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, "u1", validCreate())
	require.NoError(t, err)
	clock.Advance(time.Minute)
	second := validCreate()
	second.Title = "Waffles"
	_, err = svc.CreateRecipe(ctx, "u1", second)
	require.NoError(t, err)

	doc, err := svc.ExportRecipes(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, service.ExportVersion, doc.Version)
	assert.Equal(t, clock.Now().UnixMilli(), doc.ExportedAt)
	assert.Equal(t, 2, doc.Count)
	require.Len(t, doc.Recipes, 2)
	assert.Equal(t, "Waffles", doc.Recipes[0].Title)
}

func TestImportRecipes(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	bad := validCreate()
	bad.Title = "  "
	items := []types.CreateRecipeRequest{*validCreate(), *bad, *validCreate()}

	result, err := svc.ImportRecipes(ctx, "u1", items)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 1, result.Failed[0].Index)
	assert.Equal(t, "title", result.Failed[0].Field)
	assert.Equal(t, "title is required", result.Failed[0].Error)

	recipes, err := svc.ListRecipes(ctx, "u1", types.RecipeFilter{})
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}

func TestImportRecipesBatchLimits(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	_, err := svc.ImportRecipes(ctx, "u1", nil)
	assert.True(t, service.IsValidationError(err))

	tooMany := make([]types.CreateRecipeRequest, service.MaxImportBatch+1)
	_, err = svc.ImportRecipes(ctx, "u1", tooMany)
	assert.True(t, service.IsValidationError(err))
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, _ := setupRecipeService(t)
	ctx := context.Background()

	req := validCreate()
	req.Tags = []string{"sweet"}
	req.Rating = intPtr(4)
	_, err := svc.CreateRecipe(ctx, "u1", req)
	require.NoError(t, err)

	doc, err := svc.ExportRecipes(ctx, "u1")
	require.NoError(t, err)
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	var incoming types.ImportRequest
	require.NoError(t, json.Unmarshal(body, &incoming))
	result, err := svc.ImportRecipes(ctx, "u2", incoming.Recipes)
	require.NoError(t, err)
	require.Len(t, result.Imported, 1)

	copied, err := svc.GetRecipe(ctx, "u2", result.Imported[0])
	require.NoError(t, err)
	assert.Equal(t, "u2", copied.OwnerID)
	assert.Equal(t, doc.Recipes[0].Title, copied.Title)
	assert.Equal(t, model.StringArray{"sweet"}, copied.Tags)
	assert.Equal(t, 4, *copied.Rating)
	assert.NotEqual(t, doc.Recipes[0].ID, copied.ID)
}

func TestArchiveExport(t *testing.T) {
	store := new(mockArchiveStore)
	svc, clock := setupRecipeService(t, service.WithArchiveStore(store))
	ctx := context.Background()

	_, err := svc.CreateRecipe(ctx, "cook@example.com", validCreate())
	require.NoError(t, err)

	key := fmt.Sprintf("exports/cook@example.com/%d.json", clock.Now().UnixMilli())
	store.On("PutObject", mock.Anything, key, mock.MatchedBy(func(body []byte) bool {
		return strings.Contains(string(body), `"title":"Pancakes"`)
	}), "application/json").Return(nil)
	store.On("GeneratePresignedURL", mock.Anything, key, service.ArchiveURLTTL).
		Return("https://bucket.example/"+key+"?sig=abc", nil)

	archive, err := svc.ArchiveExport(ctx, "cook@example.com")
	require.NoError(t, err)
	assert.Equal(t, key, archive.Key)
	assert.Contains(t, archive.URL, "sig=abc")
	assert.Equal(t, clock.Now().Add(service.ArchiveURLTTL).UnixMilli(), archive.ExpiresAt)
	store.AssertExpectations(t)
}

func TestArchiveExportErrors(t *testing.T) {
	svc, _ := setupRecipeService(t)
	_, err := svc.ArchiveExport(context.Background(), "u1")
	assert.ErrorIs(t, err, service.ErrArchiveDisabled)

	store := new(mockArchiveStore)
	store.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("access denied"))
	svc, _ = setupRecipeService(t, service.WithArchiveStore(store))
	_, err = svc.ArchiveExport(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
