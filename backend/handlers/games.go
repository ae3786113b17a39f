package handlers

import (
	"errors"
	"strconv"

	"github.com/Macro303/Neptunes-Pride/backend/models"
	"github.com/Macro303/Neptunes-Pride/backend/utils"
	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
	"github.com/gofiber/fiber/v2"
)

// GamesList returns every tracked game.
func GamesList(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		games, err := webApp.Games.GetAll(c.Context())
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load games")
		}

		out := make([]models.GameResponse, 0, len(games))
		for _, game := range games {
			out = append(out, models.NewGameResponse(game))
		}
		return utils.SendSuccess(c, out, "")
	}
}

// GamesDetail returns one game with its teams and players.
func GamesDetail(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, err := strconv.ParseInt(c.Params("number"), 10, 64)
		if err != nil {
			return utils.SendBadRequest(c, "Invalid game number")
		}

		game, err := webApp.Games.GetByNumber(c.Context(), number)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return utils.SendNotFound(c, "No game was found with the given number")
			}
			return utils.SendInternalServerError(c, "Failed to load game")
		}

		teams, err := webApp.Teams.GetByGame(c.Context(), game.ID)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to load teams")
		}

		teamsOut := make([]models.TeamResponse, 0, len(teams))
		for _, team := range teams {
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
			teamsOut = append(teamsOut, models.TeamResponse{
				Name:    team.Name,
				Players: playersOut,
			})
		}

		return utils.SendSuccess(c, fiber.Map{
			"game":  models.NewGameResponse(game),
			"teams": teamsOut,
		}, "")
	}
}
