package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kickoffhq/matchday/internal/domain/game"
	"github.com/kickoffhq/matchday/internal/domain/matchday"
	"github.com/kickoffhq/matchday/internal/domain/player"
	"github.com/kickoffhq/matchday/internal/domain/rules"
	"github.com/kickoffhq/matchday/internal/domain/team"
	"github.com/kickoffhq/matchday/internal/platform/cache"
	"github.com/kickoffhq/matchday/internal/platform/id"
)

// MatchdayService owns matchday setup: the matchday itself, its rules
// snapshot, and the team and player roster. Rules are resolved once at
// creation and never changed afterwards.
type MatchdayService struct {
	matchdayRepo matchday.Repository
	teamRepo     team.Repository
	playerRepo   player.Repository
	gameRepo     game.Repository
	idGen        id.Generator
	views        *cache.Store
	now          func() time.Time
}

func NewMatchdayService(
	matchdayRepo matchday.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	gameRepo game.Repository,
	idGen id.Generator,
	views *cache.Store,
) *MatchdayService {
	return &MatchdayService{
		matchdayRepo: matchdayRepo,
		teamRepo:     teamRepo,
		playerRepo:   playerRepo,
		gameRepo:     gameRepo,
		idGen:        idGen,
		views:        views,
		now:          time.Now,
	}
}

type CreateMatchdayInput struct {
	Name  string
	Date  time.Time
	Rules *rules.Rules
}

func (s *MatchdayService) CreateMatchday(ctx context.Context, in CreateMatchdayInput) (matchday.Matchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.CreateMatchday")
	defer span.End()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return matchday.Matchday{}, fmt.Errorf("%w: matchday name is required", ErrInvalidInput)
	}

	resolved := rules.Default()
	if in.Rules != nil {
		resolved = *in.Rules
	}
	if err := resolved.Validate(); err != nil {
		return matchday.Matchday{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("generate matchday id: %w", err)
	}

	date := in.Date
	if date.IsZero() {
		date = s.now().UTC()
	}

	md := matchday.Matchday{
		ID:        newID,
		Name:      name,
		Date:      date,
		Rules:     resolved,
		CreatedAt: s.now().UTC(),
	}
	if err := s.matchdayRepo.Create(ctx, md); err != nil {
		return matchday.Matchday{}, fmt.Errorf("create matchday: %w", err)
	}
	return md, nil
}

func (s *MatchdayService) GetMatchday(ctx context.Context, matchdayID string) (matchday.Matchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.GetMatchday")
	defer span.End()

	return s.requireMatchday(ctx, matchdayID)
}

func (s *MatchdayService) ListMatchdays(ctx context.Context) ([]matchday.Matchday, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.ListMatchdays")
	defer span.End()

	items, err := s.matchdayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matchdays: %w", err)
	}
	return items, nil
}

func (s *MatchdayService) DeleteMatchday(ctx context.Context, matchdayID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.DeleteMatchday")
	defer span.End()

	if _, err := s.requireMatchday(ctx, matchdayID); err != nil {
		return err
	}
	if err := s.matchdayRepo.Delete(ctx, matchdayID); err != nil {
		return fmt.Errorf("delete matchday: %w", err)
	}
	s.invalidateViews(ctx, matchdayID)
	return nil
}

func (s *MatchdayService) AddTeam(ctx context.Context, matchdayID, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.AddTeam")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if _, err := s.requireMatchday(ctx, matchdayID); err != nil {
		return team.Team{}, err
	}

	existing, err := s.teamRepo.ListByMatchday(ctx, matchdayID)
	if err != nil {
		return team.Team{}, fmt.Errorf("list teams: %w", err)
	}
	for _, t := range existing {
		if strings.EqualFold(t.Name, name) {
			return team.Team{}, fmt.Errorf("%w: team name %q already used in this matchday", ErrInvalidInput, name)
		}
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	t := team.Team{ID: newID, MatchdayID: matchdayID, Name: name}
	if err := s.teamRepo.Create(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	s.invalidateViews(ctx, matchdayID)
	return t, nil
}

func (s *MatchdayService) ListTeams(ctx context.Context, matchdayID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.ListTeams")
	defer span.End()

	if _, err := s.requireMatchday(ctx, matchdayID); err != nil {
		return nil, err
	}
	items, err := s.teamRepo.ListByMatchday(ctx, matchdayID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

// RemoveTeam refuses once the team appears in any game; the ledger references
// would dangle otherwise.
func (s *MatchdayService) RemoveTeam(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.RemoveTeam")
	defer span.End()

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	games, err := s.gameRepo.ListByMatchday(ctx, t.MatchdayID)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	for _, g := range games {
		if g.HasTeam(teamID) {
			return fmt.Errorf("%w: team %s has recorded games", ErrInvalidState, teamID)
		}
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	s.invalidateViews(ctx, t.MatchdayID)
	return nil
}

func (s *MatchdayService) AddPlayer(ctx context.Context, teamID, name string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.AddPlayer")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	p := player.Player{ID: newID, TeamID: teamID, Name: name}
	if err := s.playerRepo.Create(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	s.invalidateViews(ctx, t.MatchdayID)
	return p, nil
}

func (s *MatchdayService) ListPlayers(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.ListPlayers")
	defer span.End()

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	items, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *MatchdayService) RemovePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.RemovePlayer")
	defer span.End()

	p, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	t, teamExists, err := s.teamRepo.GetByID(ctx, p.TeamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}

	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if teamExists {
		s.invalidateViews(ctx, t.MatchdayID)
	}
	return nil
}

func (s *MatchdayService) requireMatchday(ctx context.Context, matchdayID string) (matchday.Matchday, error) {
	matchdayID = strings.TrimSpace(matchdayID)
	if matchdayID == "" {
		return matchday.Matchday{}, fmt.Errorf("%w: matchday id is required", ErrInvalidInput)
	}
	md, exists, err := s.matchdayRepo.GetByID(ctx, matchdayID)
	if err != nil {
		return matchday.Matchday{}, fmt.Errorf("get matchday: %w", err)
	}
	if !exists {
		return matchday.Matchday{}, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchdayID)
	}
	return md, nil
}

func (s *MatchdayService) invalidateViews(ctx context.Context, matchdayID string) {
	if s.views == nil {
		return
	}
	s.views.DeletePrefix(ctx, viewKeyPrefix(matchdayID))
	s.views.Delete(ctx, overallStatsKey)
}
