// Package services holds read-side helpers composed by the HTTP layer.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/Macro303/Neptunes-Pride/neptunes/database/models"
	"github.com/Macro303/Neptunes-Pride/neptunes/database/repositories"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
)

const (
	cacheSize          = 64
	defaultCacheExpiry = time.Minute
)

// playerSource implements fuzzy.Source over a player list. Matching runs on
// the lowercased alias plus display name, giving the case-insensitive
// partial lookup variant.
type playerSource []*models.Player

func (s playerSource) Len() int { return len(s) }

func (s playerSource) String(i int) string {
	return strings.ToLower(s[i].Alias + " " + s[i].Name)
}

type teamSource []*models.Team

func (s teamSource) Len() int { return len(s) }

func (s teamSource) String(i int) string {
	return strings.ToLower(s[i].Name)
}

type cachedPlayers struct {
	players   []*models.Player
	expiresAt time.Time
}

// SearchService answers partial, case-insensitive player and team lookups.
// Player lists are cached per game with a short expiry; exact-key reads go
// straight to the repositories and bypass this service entirely.
type SearchService struct {
	players     repositories.PlayerRepository
	teams       repositories.TeamRepository
	cache       *lru.Cache
	cacheExpiry time.Duration
}

func NewSearchService(players repositories.PlayerRepository, teams repositories.TeamRepository) *SearchService {
	cache, _ := lru.New(cacheSize)
	return &SearchService{
		players:     players,
		teams:       teams,
		cache:       cache,
		cacheExpiry: defaultCacheExpiry,
	}
}

// SearchPlayers returns the game's players matching query, best match first.
// An empty query returns the full list in repository order.
func (s *SearchService) SearchPlayers(ctx context.Context, gameID int64, query string) ([]*models.Player, error) {
	players, err := s.gamePlayers(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return players, nil
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), playerSource(players))
	results := make([]*models.Player, 0, len(matches))
	for _, m := range matches {
		results = append(results, players[m.Index])
	}
	return results, nil
}

// SearchTeams returns the game's teams matching query, best match first.
func (s *SearchService) SearchTeams(ctx context.Context, gameID int64, query string) ([]*models.Team, error) {
	teams, err := s.teams.GetByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return teams, nil
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), teamSource(teams))
	results := make([]*models.Team, 0, len(matches))
	for _, m := range matches {
		results = append(results, teams[m.Index])
	}
	return results, nil
}

// Invalidate drops the cached player list for a game, called after operator
// edits so stale names do not linger for the cache expiry window.
func (s *SearchService) Invalidate(gameID int64) {
	s.cache.Remove(gameID)
}

func (s *SearchService) gamePlayers(ctx context.Context, gameID int64) ([]*models.Player, error) {
	if entry, ok := s.cache.Get(gameID); ok {
		cached := entry.(cachedPlayers)
		if time.Now().Before(cached.expiresAt) {
			return cached.players, nil
		}
		s.cache.Remove(gameID)
	}

	players, err := s.players.GetByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	s.cache.Add(gameID, cachedPlayers{
		players:   players,
		expiresAt: time.Now().Add(s.cacheExpiry),
	})
	return players, nil
}
