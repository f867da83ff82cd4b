package service

import (
	"context"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// IAuthService defines the interface for token operations
type IAuthService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, ownerID string, filter types.RecipeFilter) ([]model.Recipe, error)
	GetRecipe(ctx context.Context, ownerID, id string) (*model.Recipe, error)
	CreateRecipe(ctx context.Context, ownerID string, req *types.CreateRecipeRequest) (string, error)
	UpdateRecipe(ctx context.Context, ownerID, id string, req *types.UpdateRecipeRequest) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, ownerID, id string) error
	SearchRecipes(ctx context.Context, ownerID, term string) ([]model.Recipe, error)
	GetStats(ctx context.Context, ownerID string) (*types.RecipeStats, error)
	ExportRecipes(ctx context.Context, ownerID string) (*types.ExportDocument, error)
	ImportRecipes(ctx context.Context, ownerID string, items []types.CreateRecipeRequest) (*types.ImportResult, error)
	ArchiveExport(ctx context.Context, ownerID string) (*types.ArchiveResponse, error)
}

var (
	_ IAuthService   = (*AuthService)(nil)
	_ IRecipeService = (*RecipeService)(nil)
)
