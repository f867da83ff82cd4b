package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// Development identities. Each resolves to a different owner id field.
var testIdentities = []types.TokenClaims{
	{UserID: "john-doe"},
	{UserID: "jane-smith"},
	{Email: "bob.wilson@example.com"},
	{LoginIDs: []string{"alice-cooper-login"}},
}

func main() {
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	logging.Setup("info", true)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	for i := range testIdentities {
		claims := testIdentities[i]
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(*ttl))

		owner, err := service.ResolveOwnerID(claims.Identity())
		if err != nil {
			log.Fatal().Err(err).Int("index", i).Msg("identity has no owner id")
		}
		token, err := authService.GenerateToken(&claims)
		if err != nil {
			log.Fatal().Err(err).Str("owner_id", owner).Msg("failed to sign token")
		}
		fmt.Printf("%s\t%s\n", owner, token)
	}

	log.Info().Int("count", len(testIdentities)).Dur("ttl", *ttl).Msg("tokens issued")
}
