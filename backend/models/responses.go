package models

import (
	"time"

	dbmodels "github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/Macro303/Neptunes-Pride/neptunes/ledger"
)

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{Success: true, Data: data, Message: message}
}

func NewErrorResponse(code, message string) APIResponse {
	return APIResponse{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}

type GameResponse struct {
	Number   int64  `json:"number"`
	Name     string `json:"name"`
	Tick     int    `json:"tick"`
	Finished bool   `json:"finished"`
}

type TeamResponse struct {
	Name    string           `json:"name"`
	Players []PlayerResponse `json:"players,omitempty"`
}

type PlayerResponse struct {
	Alias string         `json:"alias"`
	Name  string         `json:"name,omitempty"`
	Team  string         `json:"team,omitempty"`
	Cycle *CycleResponse `json:"cycle,omitempty"`
}

// CycleResponse is one ledger record with its derived production values.
type CycleResponse struct {
	Cycle int `json:"cycle"`

	Stars int `json:"stars"`
	Fleet int `json:"fleet"`
	Ships int `json:"ships"`

	Economy  int `json:"economy"`
	Industry int `json:"industry"`
	Science  int `json:"science"`

	EconomyPerCycle  int `json:"economy_per_cycle"`
	IndustryPerCycle int `json:"industry_per_cycle"`
	SciencePerCycle  int `json:"science_per_cycle"`

	Tech     TechResponse `json:"tech"`
	Recorded time.Time    `json:"recorded"`
}

type TechResponse struct {
	Scanning        int `json:"scanning"`
	Hyperspace      int `json:"hyperspace"`
	Experimentation int `json:"experimentation"`
	Weapons         int `json:"weapons"`
	Banking         int `json:"banking"`
	Manufacturing   int `json:"manufacturing"`
}

func NewGameResponse(game *dbmodels.Game) GameResponse {
	return GameResponse{
		Number:   game.Number,
		Name:     game.Name,
		Tick:     game.Tick,
		Finished: game.Finished,
	}
}

func NewCycleResponse(cycle *dbmodels.Cycle, production ledger.Production) CycleResponse {
	return CycleResponse{
		Cycle:            cycle.Cycle,
		Stars:            cycle.Stars,
		Fleet:            cycle.Fleet,
		Ships:            cycle.Ships,
		Economy:          cycle.Economy,
		Industry:         cycle.Industry,
		Science:          cycle.Science,
		EconomyPerCycle:  production.EconomyPerCycle,
		IndustryPerCycle: production.IndustryPerCycle,
		SciencePerCycle:  production.SciencePerCycle,
		Tech: TechResponse{
			Scanning:        cycle.Scanning,
			Hyperspace:      cycle.Hyperspace,
			Experimentation: cycle.Experimentation,
			Weapons:         cycle.Weapons,
			Banking:         cycle.Banking,
			Manufacturing:   cycle.Manufacturing,
		},
		Recorded: cycle.CreatedAt,
	}
}

// UpdatePlayerRequest carries the two operator-editable player fields.
type UpdatePlayerRequest struct {
	Team string `json:"team"`
	Name string `json:"name"`
}

type UpdateTeamRequest struct {
	Name string `json:"name"`
}
