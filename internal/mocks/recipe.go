package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

var _ service.IRecipeService = (*MockRecipeService)(nil)

func (m *MockRecipeService) ListRecipes(ctx context.Context, ownerID string, filter types.RecipeFilter) ([]model.Recipe, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, ownerID, id string) (*model.Recipe, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, ownerID string, req *types.CreateRecipeRequest) (string, error) {
	args := m.Called(ctx, ownerID, req)
	return args.String(0), args.Error(1)
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, ownerID, id string, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	args := m.Called(ctx, ownerID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

func (m *MockRecipeService) SearchRecipes(ctx context.Context, ownerID, term string) ([]model.Recipe, error) {
	args := m.Called(ctx, ownerID, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetStats(ctx context.Context, ownerID string) (*types.RecipeStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeStats), args.Error(1)
}

func (m *MockRecipeService) ExportRecipes(ctx context.Context, ownerID string) (*types.ExportDocument, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ExportDocument), args.Error(1)
}

func (m *MockRecipeService) ImportRecipes(ctx context.Context, ownerID string, items []types.CreateRecipeRequest) (*types.ImportResult, error) {
	args := m.Called(ctx, ownerID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ImportResult), args.Error(1)
}

func (m *MockRecipeService) ArchiveExport(ctx context.Context, ownerID string) (*types.ArchiveResponse, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ArchiveResponse), args.Error(1)
}
