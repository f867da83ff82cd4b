package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

func ptr[T any](v T) *T { return &v }

var sampleRecipes = []types.CreateRecipeRequest{
	{
		Title:       "Pancakes",
		Description: ptr("Fluffy weekend pancakes"),
		Ingredients: []model.Ingredient{
			{Item: "flour", Amount: "200", Unit: "g"},
			{Item: "milk", Amount: "300", Unit: "ml"},
			{Item: "eggs", Amount: "2"},
		},
		Instructions: []string{"Whisk the batter", "Rest for 10 minutes", "Fry in a hot pan"},
		PrepTime:     ptr(10),
		CookTime:     ptr(15),
		Servings:     ptr(4),
		Category:     ptr("Breakfast"),
		Tags:         []string{"sweet", "quick"},
		Difficulty:   ptr("easy"),
		Rating:       ptr(5),
	},
	{
		Title:       "Tomato Soup",
		Description: ptr("Roasted tomato soup with basil"),
		Ingredients: []model.Ingredient{
			{Item: "tomatoes", Amount: "1", Unit: "kg"},
			{Item: "onion", Amount: "1"},
			{Item: "basil", Amount: "1", Unit: "bunch"},
		},
		Instructions: []string{"Roast the tomatoes and onion", "Blend with stock", "Season and serve with basil"},
		PrepTime:     ptr(15),
		CookTime:     ptr(40),
		Servings:     ptr(4),
		Category:     ptr("Soup"),
		Tags:         []string{"vegetarian"},
		Difficulty:   ptr("easy"),
		Rating:       ptr(4),
	},
	{
		Title:       "Beef Wellington",
		Description: ptr("Fillet wrapped in mushroom duxelles and puff pastry"),
		Ingredients: []model.Ingredient{
			{Item: "beef fillet", Amount: "800", Unit: "g"},
			{Item: "mushrooms", Amount: "500", Unit: "g"},
			{Item: "puff pastry", Amount: "1", Unit: "sheet"},
			{Item: "prosciutto", Amount: "8", Unit: "slices"},
		},
		Instructions: []string{
			"Sear the fillet",
			"Cook the duxelles until dry",
			"Wrap in prosciutto and pastry",
			"Bake until the pastry is golden",
		},
		PrepTime:   ptr(60),
		CookTime:   ptr(45),
		Servings:   ptr(6),
		Category:   ptr("Dinner"),
		Tags:       []string{"festive"},
		Difficulty: ptr("hard"),
		Rating:     ptr(5),
	},
	{
		Title: "Overnight Oats",
		Ingredients: []model.Ingredient{
			{Item: "rolled oats", Amount: "50", Unit: "g"},
			{Item: "yogurt", Amount: "100", Unit: "g"},
		},
		Instructions: []string{"Mix everything", "Refrigerate overnight"},
		PrepTime:     ptr(5),
		Servings:     ptr(1),
		Category:     ptr("Breakfast"),
		Tags:         []string{"make-ahead"},
		Difficulty:   ptr("easy"),
	},
	{
		Title: "Chicken Curry",
		Ingredients: []model.Ingredient{
			{Item: "chicken thighs", Amount: "600", Unit: "g"},
			{Item: "curry paste", Amount: "3", Unit: "tbsp"},
			{Item: "coconut milk", Amount: "400", Unit: "ml"},
		},
		Instructions: []string{"Brown the chicken", "Fry the paste", "Simmer in coconut milk"},
		PrepTime:     ptr(15),
		CookTime:     ptr(30),
		Servings:     ptr(4),
		Category:     ptr("Dinner"),
		Tags:         []string{"spicy"},
		Difficulty:   ptr("medium"),
		Rating:       ptr(4),
	},
}

func main() {
	owner := flag.String("owner", "", "Owner id to seed recipes for")
	flag.Parse()

	logging.Setup("info", true)

	if *owner == "" {
		log.Fatal().Msg("-owner is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	recipeService := service.NewRecipeService(db)
	ctx := log.Logger.WithContext(context.Background())

	result, err := recipeService.ImportRecipes(ctx, *owner, sampleRecipes)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed recipes")
	}
	for _, f := range result.Failed {
		log.Warn().Int("index", f.Index).Str("title", f.Title).Str("error", f.Error).Msg("sample rejected")
	}

	log.Info().
		Str("owner_id", *owner).
		Int("seeded", len(result.Imported)).
		Msg("seeding completed")
}
