package door

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DanillS/doors-web/internal/domain"
)

const doorColumns = `
id, name, price, base_price, material, size, color, glass, tear_type,
COALESCE(description, ''), image, images, color_variants, is_active, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context, includeInactive bool) ([]domain.Door, error) {
	q := `SELECT ` + doorColumns + ` FROM doors ORDER BY created_at DESC`
	if !includeInactive {
		q = `SELECT ` + doorColumns + ` FROM doors WHERE is_active ORDER BY created_at DESC`
	}
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("door repo: list include_inactive=%t error=%v", includeInactive, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Door
	for rows.Next() {
		d, err := scanDoor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("door repo: list rows error=%v", err)
		return nil, err
	}
	r.logger.Printf("door repo: list include_inactive=%t count=%d", includeInactive, len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Door, error) {
	q := `SELECT ` + doorColumns + ` FROM doors WHERE id = $1`
	d, err := scanDoor(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("door repo: get id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("door repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return d, nil
}

func (r *postgresRepo) Create(ctx context.Context, door domain.Door) (*domain.Door, error) {
	q := `
INSERT INTO doors (name, price, base_price, material, size, color, glass, tear_type, description, image, images, color_variants, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12, $13)
RETURNING ` + doorColumns
	d, err := scanDoor(r.pool.QueryRow(ctx, q,
		door.Name,
		door.Price,
		door.BasePrice,
		door.Material,
		door.Size,
		door.Color,
		door.Glass,
		door.TearType,
		door.Description,
		door.Image,
		jsonStrings(door.Images),
		jsonVariants(door.ColorVariants),
		door.IsActive,
	))
	if err != nil {
		r.logger.Printf("door repo: create name=%q error=%v", door.Name, err)
		return nil, err
	}
	r.logger.Printf("door repo: created id=%d name=%q", d.ID, d.Name)
	return d, nil
}

func (r *postgresRepo) Update(ctx context.Context, id int64, door domain.Door) (*domain.Door, error) {
	q := `
UPDATE doors
SET name = $2,
    price = $3,
    material = $4,
    size = $5,
    color = $6,
    glass = $7,
    tear_type = $8,
    description = NULLIF($9, ''),
    image = $10,
    images = $11,
    color_variants = $12,
    is_active = $13
WHERE id = $1
RETURNING ` + doorColumns
	d, err := scanDoor(r.pool.QueryRow(ctx, q,
		id,
		door.Name,
		door.Price,
		door.Material,
		door.Size,
		door.Color,
		door.Glass,
		door.TearType,
		door.Description,
		door.Image,
		jsonStrings(door.Images),
		jsonVariants(door.ColorVariants),
		door.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("door repo: update id=%d error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("door repo: updated id=%d", id)
	return d, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM doors WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("door repo: delete id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("door repo: deleted id=%d", id)
	return nil
}

func (r *postgresRepo) ListPricing(ctx context.Context) ([]PriceRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, price, base_price FROM doors ORDER BY id`)
	if err != nil {
		r.logger.Printf("door repo: list pricing error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []PriceRow
	for rows.Next() {
		var row PriceRow
		if err := rows.Scan(&row.ID, &row.Price, &row.BasePrice); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UpdatePrice(ctx context.Context, id, price int64) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE doors SET price = $2 WHERE id = $1`, id, price)
	if err != nil {
		r.logger.Printf("door repo: update price id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Ping issues the cheapest possible catalog read. Used by the
// keep-alive endpoint and the background scheduler to stop the hosted
// database from suspending.
func (r *postgresRepo) Ping(ctx context.Context) error {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM doors LIMIT 1`).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

func scanDoor(row pgx.Row) (*domain.Door, error) {
	var d domain.Door
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Price,
		&d.BasePrice,
		&d.Material,
		&d.Size,
		&d.Color,
		&d.Glass,
		&d.TearType,
		&d.Description,
		&d.Image,
		&d.Images,
		&d.ColorVariants,
		&d.IsActive,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if d.Images == nil {
		d.Images = []string{}
	}
	return &d, nil
}

// jsonStrings normalizes a nil slice so the jsonb column stores [].
func jsonStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func jsonVariants(v []domain.ColorVariant) []domain.ColorVariant {
	if v == nil {
		return []domain.ColorVariant{}
	}
	return v
}
