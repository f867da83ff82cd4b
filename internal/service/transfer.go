package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/recipebox/backend/internal/types"
)

const (
	ExportVersion  = 1
	MaxImportBatch = 500
	ArchiveURLTTL  = 15 * time.Minute
)

// ArchiveStore is the object storage used for export archives.
type ArchiveStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// ExportRecipes builds the portable document for all of the owner's recipes.
func (s *RecipeService) ExportRecipes(ctx context.Context, ownerID string) (*types.ExportDocument, error) {
	recipes, err := s.ListRecipes(ctx, ownerID, types.RecipeFilter{})
	if err != nil {
		return nil, err
	}
	return &types.ExportDocument{
		Version:    ExportVersion,
		ExportedAt: s.nowMillis(),
		Count:      len(recipes),
		Recipes:    recipes,
	}, nil
}

// ImportRecipes creates every valid item and reports the invalid ones by
// index. Items are independent: one rejection does not affect the others.
func (s *RecipeService) ImportRecipes(ctx context.Context, ownerID string, items []types.CreateRecipeRequest) (*types.ImportResult, error) {
	if len(items) == 0 {
		return nil, newValidationError("recipes", "at least one recipe required")
	}
	if len(items) > MaxImportBatch {
		return nil, newValidationError("recipes", fmt.Sprintf("at most %d recipes per import", MaxImportBatch))
	}

	result := &types.ImportResult{
		Imported: []string{},
		Failed:   []types.ImportFailure{},
	}
	for i := range items {
		id, err := s.CreateRecipe(ctx, ownerID, &items[i])
		if err != nil {
			var ve *ValidationError
			if !errors.As(err, &ve) {
				return nil, err
			}
			result.Failed = append(result.Failed, types.ImportFailure{
				Index: i,
				Title: items[i].Title,
				Field: ve.Field,
				Error: ve.Message,
			})
			continue
		}
		result.Imported = append(result.Imported, id)
	}

	zerolog.Ctx(ctx).Info().
		Str("owner_id", ownerID).
		Int("imported", len(result.Imported)).
		Int("failed", len(result.Failed)).
		Msg("recipes imported")
	return result, nil
}

// ArchiveExport uploads the owner's export document to object storage and
// returns a short-lived download link.
func (s *RecipeService) ArchiveExport(ctx context.Context, ownerID string) (*types.ArchiveResponse, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}

	doc, err := s.ExportRecipes(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%d.json", url.PathEscape(ownerID), doc.ExportedAt)
	if err := s.archive.PutObject(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}
	link, err := s.archive.GeneratePresignedURL(ctx, key, ArchiveURLTTL)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &types.ArchiveResponse{
		Key:       key,
		URL:       link,
		ExpiresAt: s.now().Add(ArchiveURLTTL).UnixMilli(),
	}, nil
}
