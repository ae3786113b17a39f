package handlers

import (
	"errors"

	"github.com/Macro303/Neptunes-Pride/backend/models"
	"github.com/Macro303/Neptunes-Pride/backend/utils"
	dbmodels "github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
	"github.com/gofiber/fiber/v2"
)

// TeamsList returns the game's teams, optionally filtered by a fuzzy
// ?search= query.
func TeamsList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		game, err := resolveGame(c, webApp)
		if game == nil {
			return err
		}

		teams, err := webApp.Search.SearchTeams(c.Context(), game.ID, c.Query("search"))
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load teams")
		}

		out := make([]models.TeamResponse, 0, len(teams))
		for _, team := range teams {
			out = append(out, models.TeamResponse{Name: team.Name})
		}
		return utils.SendSuccess(c, out, "")
	}
}

// TeamsDetail returns one team with its players.
func TeamsDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		game, err := resolveGame(c, webApp)
		if game == nil {
			return err
		}

		team, err := webApp.Teams.GetByName(c.Context(), game.ID, c.Params("name"))
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return utils.SendNotFound(c, "No team was found with the given name")
			}
			return utils.SendInternalServerError(c, "Failed to load team")
		}

		players, err := webApp.Players.GetByTeam(c.Context(), team.ID)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load players")
		}

		playersOut := make([]models.PlayerResponse, 0, len(players))
		for _, player := range players {
			playersOut = append(playersOut, models.PlayerResponse{
				Alias: player.Alias,
				Name:  player.Name,
			})
		}
		return utils.SendSuccess(c, models.TeamResponse{
			Name:    team.Name,
			Players: playersOut,
		}, "")
	}
}

// TeamsUpdate renames a team. The default team cannot be renamed; the
// reconciliation engine depends on it being present by name.
func TeamsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		game, err := resolveGame(c, webApp)
		if game == nil {
			return err
		}

		team, err := webApp.Teams.GetByName(c.Context(), game.ID, c.Params("name"))
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return utils.SendNotFound(c, "No team was found with the given name")
			}
			return utils.SendInternalServerError(c, "Failed to load team")
		}

		if team.Name == dbmodels.DefaultTeamName {
			return utils.SendBadRequest(c, "The default team cannot be renamed")
		}

		var req models.UpdateTeamRequest
		if err := c.BodyParser(&req); err != nil || req.Name == "" {
			return utils.SendBadRequest(c, "Invalid request body")
		}

		if err := webApp.Teams.Rename(c.Context(), team.ID, req.Name); err != nil {
			if repositories.IsConflict(err) {
				return utils.SendConflict(c, "A team with that name already exists")
			}
			return utils.SendInternalServerError(c, "Failed to rename team")
		}

		return utils.SendSuccess(c, models.TeamResponse{Name: req.Name}, "Team renamed")
	}
}
