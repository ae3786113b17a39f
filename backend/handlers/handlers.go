// Package handlers is the thin HTTP adaptation layer over the repositories
// and the cycle ledger: route parsing in, result/error values mapped to
// status codes out.
package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/Macro303/Neptunes-Pride/backend/utils"
	"github.com/Macro303/Neptunes-Pride/neptunes/database"
	dbmodels "github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
	"github.com/Macro303/Neptunes-Pride/neptunes/ledger"
	"github.com/Macro303/Neptunes-Pride/neptunes/services"
	"github.com/gofiber/fiber/v2"
)

// WebApp bundles the dependencies the handlers need.
type WebApp struct {
	DB      *database.DB
	Games   repositories.GameRepository
	Teams   repositories.TeamRepository
	Players repositories.PlayerRepository
	Ledger  *ledger.Ledger
	Search  *services.SearchService
	Version string
	Commit  string
}

// HealthCheck reports process and database health.
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		if err := webApp.DB.Ping(ctx); err != nil {
			return utils.SendError(c, fiber.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is unreachable")
		}
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": webApp.Version,
			"commit":  webApp.Commit,
		})
	}
}

// resolveGame picks the game from the ?game=<number> query parameter,
// falling back to the most recently tracked game. A game that has never
// reconciled successfully has no row and resolves to not-found.
func resolveGame(c *fiber.Ctx, webApp *WebApp) (*dbmodels.Game, error) {
	if raw := c.Query("game"); raw != "" {
		number, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, utils.SendBadRequest(c, "Invalid game number")
		}
		game, err := webApp.Games.GetByNumber(c.Context(), number)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, utils.SendNotFound(c, "No game was found with the given number")
			}
			return nil, utils.SendInternalServerError(c, "Failed to load game")
		}
		return game, nil
	}

	game, err := webApp.Games.GetLatest(c.Context())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, utils.SendNotFound(c, "No games have been tracked yet")
		}
		return nil, utils.SendInternalServerError(c, "Failed to load game")
	}
	return game, nil
}
