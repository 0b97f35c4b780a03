// Package catalog управляет играми, жанрами и платформами витрины.
package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
)

const defaultPageSize = 12

// Service реализует операции каталога. Чтение открыто всем, мутации — только
// администратору.
type Service struct {
	games     domain.GameRepository
	genres    domain.GenreRepository
	platforms domain.PlatformRepository
	logger    *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(
	games domain.GameRepository,
	genres domain.GenreRepository,
	platforms domain.PlatformRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{games: games, genres: genres, platforms: platforms, logger: logger}
}

// CreateGame сохраняет новую игру с жанрами, платформами и изображениями.
func (s *Service) CreateGame(actor domain.Actor, game domain.Game) (domain.Game, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return domain.Game{}, err
	}
	if errs := game.Validate(); len(errs) > 0 {
		return domain.Game{}, domain.WrapError(domain.KindInvalidInput, "invalid game", errors.Join(errs...))
	}

	now := time.Now().UTC()
	game.ID = uuid.NewString()
	game.CreatedAt = now
	game.UpdatedAt = now
	for i := range game.Images {
		game.Images[i].ID = uuid.NewString()
		game.Images[i].GameID = game.ID
		if game.Images[i].OrderIndex == 0 {
			game.Images[i].OrderIndex = i + 1
		}
	}

	if err := s.games.Create(game); err != nil {
		return domain.Game{}, err
	}

	s.logger.WithField("title", game.Title).Info("game created")
	return game, nil
}

// GetGame возвращает игру с жанрами, платформами и изображениями.
func (s *Service) GetGame(id string) (domain.Game, error) {
	return s.games.Get(id)
}

// ListGames возвращает страницу каталога, отсортированную по идентификатору.
func (s *Service) ListGames(limit, offset int) ([]domain.Game, error) {
	return s.games.List(domain.GameFilter{Limit: pageSize(limit), Offset: offset})
}

// ListLatestGames возвращает страницу каталога, свежеобновлённые первыми.
func (s *Service) ListLatestGames(limit, offset int) ([]domain.Game, error) {
	return s.games.List(domain.GameFilter{Limit: pageSize(limit), Offset: offset, ByLatestUpdate: true})
}

// ListHotGames возвращает игры с флагом is_hot.
func (s *Service) ListHotGames(limit, offset int) ([]domain.Game, error) {
	return s.games.List(domain.GameFilter{Limit: pageSize(limit), Offset: offset, HotOnly: true})
}

// SearchGames ищет игры по подстроке названия без учёта регистра.
func (s *Service) SearchGames(query string, limit, offset int) ([]domain.Game, error) {
	return s.games.List(domain.GameFilter{Limit: pageSize(limit), Offset: offset, TitleQuery: query})
}

// UpdateGame перезаписывает игру. Только для администратора.
func (s *Service) UpdateGame(actor domain.Actor, game domain.Game) (domain.Game, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return domain.Game{}, err
	}
	current, err := s.games.Get(game.ID)
	if err != nil {
		return domain.Game{}, err
	}
	if errs := game.Validate(); len(errs) > 0 {
		return domain.Game{}, domain.WrapError(domain.KindInvalidInput, "invalid game", errors.Join(errs...))
	}

	game.CreatedAt = current.CreatedAt
	game.UpdatedAt = time.Now().UTC()
	for i := range game.Images {
		if game.Images[i].ID == "" {
			game.Images[i].ID = uuid.NewString()
		}
		game.Images[i].GameID = game.ID
	}
	if err := s.games.Update(game); err != nil {
		return domain.Game{}, err
	}
	return game, nil
}

// DeleteGame удаляет игру из каталога. Только для администратора.
func (s *Service) DeleteGame(actor domain.Actor, id string) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.games.Get(id); err != nil {
		return err
	}
	return s.games.Delete(id)
}

// CreateGenre сохраняет жанр. Только для администратора.
func (s *Service) CreateGenre(actor domain.Actor, genre domain.Genre) (domain.Genre, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return domain.Genre{}, err
	}
	if genre.Name == "" {
		return domain.Genre{}, domain.NewError(domain.KindInvalidInput, "genre name is required")
	}
	genre.ID = uuid.NewString()
	if err := s.genres.Create(genre); err != nil {
		return domain.Genre{}, err
	}
	return genre, nil
}

// ListGenres возвращает все жанры.
func (s *Service) ListGenres() ([]domain.Genre, error) {
	return s.genres.List()
}

// UpdateGenre перезаписывает жанр. Только для администратора.
func (s *Service) UpdateGenre(actor domain.Actor, genre domain.Genre) (domain.Genre, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return domain.Genre{}, err
	}
	if _, err := s.genres.Get(genre.ID); err != nil {
		return domain.Genre{}, err
	}
	if err := s.genres.Update(genre); err != nil {
		return domain.Genre{}, err
	}
	return genre, nil
}

// DeleteGenre удаляет жанр. Только для администратора.
func (s *Service) DeleteGenre(actor domain.Actor, id string) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.genres.Get(id); err != nil {
		return err
	}
	return s.genres.Delete(id)
}

// CreatePlatform сохраняет платформу. Только для администратора.
func (s *Service) CreatePlatform(actor domain.Actor, platform domain.Platform) (domain.Platform, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return domain.Platform{}, err
	}
	if platform.Name == "" {
		return domain.Platform{}, domain.NewError(domain.KindInvalidInput, "platform name is required")
	}
	platform.ID = uuid.NewString()
	if err := s.platforms.Create(platform); err != nil {
		return domain.Platform{}, err
	}
	return platform, nil
}

// ListPlatforms возвращает все платформы.
func (s *Service) ListPlatforms() ([]domain.Platform, error) {
	return s.platforms.List()
}

// UpdatePlatform перезаписывает платформу. Только для администратора.
func (s *Service) UpdatePlatform(actor domain.Actor, platform domain.Platform) (domain.Platform, error) {
	if err := domain.RequireAdmin(actor); err != nil {
		return domain.Platform{}, err
	}
	if _, err := s.platforms.Get(platform.ID); err != nil {
		return domain.Platform{}, err
	}
	if err := s.platforms.Update(platform); err != nil {
		return domain.Platform{}, err
	}
	return platform, nil
}

// DeletePlatform удаляет платформу. Только для администратора.
func (s *Service) DeletePlatform(actor domain.Actor, id string) error {
	if err := domain.RequireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.platforms.Get(id); err != nil {
		return err
	}
	return s.platforms.Delete(id)
}

func pageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	return limit
}
