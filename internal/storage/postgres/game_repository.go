package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gamestorelab/gamestore/internal/domain"
)

type gameRepository struct {
	db *sql.DB
}

// NewGameRepository создаёт PostgreSQL-реализацию GameRepository.
func NewGameRepository(store *Store) domain.GameRepository {
	return &gameRepository{db: store.DB()}
}

func (r *gameRepository) Create(game domain.Game) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (
			id, title, description, price, discount_price, developer, publisher,
			release_date, is_hot, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		game.ID, game.Title, game.Description, game.Price, nullDecimal(game.DiscountPrice),
		game.Developer, game.Publisher, nullTime(game.ReleaseDate), game.IsHot,
		game.CreatedAt, game.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}

	if err = r.saveRelationsTx(ctx, tx, game); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create game: %w", err)
	}

	return nil
}

func (r *gameRepository) Get(id string) (domain.Game, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	game, err := r.scanGame(r.db.QueryRowContext(ctx, `
		SELECT id, title, description, price, discount_price, developer, publisher,
		       release_date, is_hot, created_at, updated_at
		FROM games
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Game{}, domain.ErrGameNotFound
		}
		return domain.Game{}, fmt.Errorf("select game: %w", err)
	}

	if err := r.loadRelations(ctx, &game); err != nil {
		return domain.Game{}, err
	}

	return game, nil
}

func (r *gameRepository) List(filter domain.GameFilter) ([]domain.Game, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		conds []string
		args  []any
	)
	if filter.HotOnly {
		conds = append(conds, "is_hot = TRUE")
	}
	if filter.TitleQuery != "" {
		args = append(args, "%"+filter.TitleQuery+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}

	query := `
		SELECT id, title, description, price, discount_price, developer, publisher,
		       release_date, is_hot, created_at, updated_at
		FROM games
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	if filter.ByLatestUpdate {
		query += " ORDER BY updated_at DESC, id DESC"
	} else {
		query += " ORDER BY created_at ASC, id ASC"
	}
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := make([]domain.Game, 0)
	for rows.Next() {
		game, err := r.scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game rows: %w", err)
	}

	for i := range games {
		if err := r.loadRelations(ctx, &games[i]); err != nil {
			return nil, err
		}
	}

	return games, nil
}

func (r *gameRepository) Update(game domain.Game) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE games
		SET title = $1,
		    description = $2,
		    price = $3,
		    discount_price = $4,
		    developer = $5,
		    publisher = $6,
		    release_date = $7,
		    is_hot = $8,
		    updated_at = $9
		WHERE id = $10
	`,
		game.Title, game.Description, game.Price, nullDecimal(game.DiscountPrice),
		game.Developer, game.Publisher, nullTime(game.ReleaseDate), game.IsHot,
		game.UpdatedAt, game.ID,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		err = domain.ErrGameNotFound
		return err
	}

	// Связи перезаписываются целиком: состав жанров, платформ и изображений
	// приходит в запросе полностью.
	for _, q := range []string{
		`DELETE FROM game_genres WHERE game_id = $1`,
		`DELETE FROM game_platforms WHERE game_id = $1`,
		`DELETE FROM game_images WHERE game_id = $1`,
	} {
		if _, err = tx.ExecContext(ctx, q, game.ID); err != nil {
			return fmt.Errorf("clear game relations: %w", err)
		}
	}
	if err = r.saveRelationsTx(ctx, tx, game); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update game: %w", err)
	}

	return nil
}

func (r *gameRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrGameNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *gameRepository) scanGame(row rowScanner) (domain.Game, error) {
	var (
		game          domain.Game
		discountPrice decimal.NullDecimal
		releaseDate   sql.NullTime
	)
	if err := row.Scan(
		&game.ID, &game.Title, &game.Description, &game.Price, &discountPrice,
		&game.Developer, &game.Publisher, &releaseDate, &game.IsHot,
		&game.CreatedAt, &game.UpdatedAt,
	); err != nil {
		return domain.Game{}, err
	}
	game.DiscountPrice = decimalPtr(discountPrice)
	game.ReleaseDate = timePtr(releaseDate)
	return game, nil
}

func (r *gameRepository) saveRelationsTx(ctx context.Context, tx *sql.Tx, game domain.Game) error {
	for _, genre := range game.Genres {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO game_genres (game_id, genre_id) VALUES ($1, $2)
		`, game.ID, genre.ID); err != nil {
			return fmt.Errorf("insert game genre: %w", err)
		}
	}
	for _, platform := range game.Platforms {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO game_platforms (game_id, platform_id) VALUES ($1, $2)
		`, game.ID, platform.ID); err != nil {
			return fmt.Errorf("insert game platform: %w", err)
		}
	}
	for _, img := range game.Images {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO game_images (id, game_id, url, alt_text, order_index)
			VALUES ($1, $2, $3, $4, $5)
		`, img.ID, game.ID, img.URL, img.AltText, img.OrderIndex); err != nil {
			return fmt.Errorf("insert game image: %w", err)
		}
	}
	return nil
}

func (r *gameRepository) loadRelations(ctx context.Context, game *domain.Game) error {
	genres, err := r.loadGenres(ctx, game.ID)
	if err != nil {
		return err
	}
	game.Genres = genres

	platforms, err := r.loadPlatforms(ctx, game.ID)
	if err != nil {
		return err
	}
	game.Platforms = platforms

	images, err := r.loadImages(ctx, game.ID)
	if err != nil {
		return err
	}
	game.Images = images

	return nil
}

func (r *gameRepository) loadGenres(ctx context.Context, gameID string) ([]domain.Genre, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT g.id, g.name, g.description
		FROM genres g
		JOIN game_genres gg ON gg.genre_id = g.id
		WHERE gg.game_id = $1
		ORDER BY g.name ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game genres: %w", err)
	}
	defer rows.Close()

	genres := make([]domain.Genre, 0)
	for rows.Next() {
		var genre domain.Genre
		if err := rows.Scan(&genre.ID, &genre.Name, &genre.Description); err != nil {
			return nil, fmt.Errorf("scan game genre: %w", err)
		}
		genres = append(genres, genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game genres: %w", err)
	}

	return genres, nil
}

func (r *gameRepository) loadPlatforms(ctx context.Context, gameID string) ([]domain.Platform, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.description
		FROM platforms p
		JOIN game_platforms gp ON gp.platform_id = p.id
		WHERE gp.game_id = $1
		ORDER BY p.name ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game platforms: %w", err)
	}
	defer rows.Close()

	platforms := make([]domain.Platform, 0)
	for rows.Next() {
		var platform domain.Platform
		if err := rows.Scan(&platform.ID, &platform.Name, &platform.Description); err != nil {
			return nil, fmt.Errorf("scan game platform: %w", err)
		}
		platforms = append(platforms, platform)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game platforms: %w", err)
	}

	return platforms, nil
}

func (r *gameRepository) loadImages(ctx context.Context, gameID string) ([]domain.GameImage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, game_id, url, alt_text, order_index
		FROM game_images
		WHERE game_id = $1
		ORDER BY order_index ASC, id ASC
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game images: %w", err)
	}
	defer rows.Close()

	images := make([]domain.GameImage, 0)
	for rows.Next() {
		var img domain.GameImage
		if err := rows.Scan(&img.ID, &img.GameID, &img.URL, &img.AltText, &img.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan game image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game images: %w", err)
	}

	return images, nil
}

var _ domain.GameRepository = (*gameRepository)(nil)
