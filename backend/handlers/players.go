package handlers

import (
	"errors"

	"github.com/Macro303/Neptunes-Pride/backend/models"
	"github.com/Macro303/Neptunes-Pride/backend/utils"
	dbmodels "github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
	"github.com/gofiber/fiber/v2"
)

// PlayersList returns the game's players, optionally filtered by a fuzzy
// ?search= query on alias and display name.
func PlayersList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		game, err := resolveGame(c, webApp)
		if game == nil {
			return err
		}

		players, err := webApp.Search.SearchPlayers(c.Context(), game.ID, c.Query("search"))
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load players")
		}

		out := make([]models.PlayerResponse, 0, len(players))
		for _, player := range players {
			out = append(out, models.PlayerResponse{
				Alias: player.Alias,
				Name:  player.Name,
			})
		}
		return utils.SendSuccess(c, out, "")
	}
}

// PlayersDetail returns one player with their team and latest cycle record.
func PlayersDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		game, err := resolveGame(c, webApp)
		if game == nil {
			return err
		}

		player, err := webApp.Players.GetByAlias(c.Context(), game.ID, c.Params("alias"))
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return utils.SendNotFound(c, "No player was found with the given alias")
			}
			return utils.SendInternalServerError(c, "Failed to load player")
		}

		out := models.PlayerResponse{
			Alias: player.Alias,
			Name:  player.Name,
		}
		if team, err := webApp.Teams.GetByID(c.Context(), player.TeamID); err == nil {
			out.Team = team.Name
		}

		latest, err := webApp.Ledger.Latest(c.Context(), player.ID)
		if err == nil {
			cycle := models.NewCycleResponse(latest, webApp.Ledger.Production(latest))
			out.Cycle = &cycle
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return utils.SendInternalServerError(c, "Failed to load cycle history")
		}

		return utils.SendSuccess(c, out, "")
	}
}

// PlayersCycles returns the player's full cycle history, ascending by cycle,
// with derived production values.
func PlayersCycles(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		game, err := resolveGame(c, webApp)
		if game == nil {
			return err
		}

		player, err := webApp.Players.GetByAlias(c.Context(), game.ID, c.Params("alias"))
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return utils.SendNotFound(c, "No player was found with the given alias")
			}
			return utils.SendInternalServerError(c, "Failed to load player")
		}

		history, err := webApp.Ledger.History(c.Context(), player.ID)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load cycle history")
		}

		out := make([]models.CycleResponse, 0, len(history))
		for _, cycle := range history {
			out = append(out, models.NewCycleResponse(cycle, webApp.Ledger.Production(cycle)))
		}
		return utils.SendSuccess(c, out, "")
	}
}

// PlayersUpdate applies the operator-controlled fields: team membership and
// display name. These are the only player fields a human may edit.
func PlayersUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		game, err := resolveGame(c, webApp)
		if game == nil {
			return err
		}

		player, err := webApp.Players.GetByAlias(c.Context(), game.ID, c.Params("alias"))
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return utils.SendNotFound(c, "No player was found with the given alias")
			}
			return utils.SendInternalServerError(c, "Failed to load player")
		}

		var req models.UpdatePlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body")
		}

		teamID := player.TeamID
		if req.Team != "" {
			team, err := webApp.Teams.GetByName(c.Context(), game.ID, req.Team)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return utils.SendBadRequest(c, "No team was found with the given name")
				}
				return utils.SendInternalServerError(c, "Failed to load team")
			}
			teamID = team.ID
		}

		name := player.Name
		if req.Name != "" {
			name = req.Name
		}

		if err := webApp.Players.Update(c.Context(), player.ID, teamID, name); err != nil {
			return utils.SendInternalServerError(c, "Failed to update player")
		}
		webApp.Search.Invalidate(game.ID)

		updated := &dbmodels.Player{
			GameID: game.ID,
			TeamID: teamID,
			Alias:  player.Alias,
			Name:   name,
		}
		out := models.PlayerResponse{Alias: updated.Alias, Name: updated.Name}
		if team, err := webApp.Teams.GetByID(c.Context(), teamID); err == nil {
			out.Team = team.Name
		}
		return utils.SendSuccess(c, out, "Player updated")
	}
}
