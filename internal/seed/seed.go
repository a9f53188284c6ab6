package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type doorSeed struct {
	Name        string
	Price       int64
	Material    string
	Size        string
	Color       string
	Image       string
	Description string
}

// Apply inserts the starter catalog for manual testing. It is
// idempotent: a door with the same name is updated, not duplicated.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	doors := []doorSeed{
		{
			Name:        "Дверь классическая 'Венеция'",
			Price:       100,
			Material:    "Массив дуба",
			Size:        "2000×800 мм",
			Color:       "Белый",
			Image:       "/doors/door1.jpg",
			Description: "Классическая межкомнатная дверь из массива дуба",
		},
		{
			Name:        "Дверь современная 'Милан'",
			Price:       8900,
			Material:    "МДФ",
			Size:        "2000×700 мм",
			Color:       "Серый",
			Image:       "/doors/door2.jpg",
			Description: "Современная дверь с матовым покрытием",
		},
		{
			Name:        "Дверь раздвижная 'Токио'",
			Price:       15600,
			Material:    "Стекло + алюминий",
			Size:        "2200×900 мм",
			Color:       "Черный",
			Image:       "/doors/door3.jpg",
			Description: "Стильная раздвижная дверь-купе",
		},
		{
			Name:        "Дверь входная 'Форт'",
			Price:       23400,
			Material:    "Сталь",
			Size:        "2050×860 мм",
			Color:       "Коричневый",
			Image:       "/doors/door4.jpg",
			Description: "Надежная стальная входная дверь",
		},
		{
			Name:        "Дверь межкомнатная 'Флоренция'",
			Price:       11200,
			Material:    "Шпон",
			Size:        "2000×800 мм",
			Color:       "Бежевый",
			Image:       "/doors/door5.jpg",
			Description: "Элегантная дверь с шпонированным покрытием",
		},
		{
			Name:        "Дверь стеклянная 'Нева'",
			Price:       18700,
			Material:    "Закаленное стекло",
			Size:        "2100×750 мм",
			Color:       "Прозрачный",
			Image:       "/doors/door6.jpg",
			Description: "Стеклянная дверь для современных интерьеров",
		},
	}

	for _, d := range doors {
		if err := upsertDoor(ctx, pool, d); err != nil {
			return fmt.Errorf("upsert door %q: %w", d.Name, err)
		}
	}
	return nil
}

func upsertDoor(ctx context.Context, pool *pgxpool.Pool, d doorSeed) error {
	const q = `
UPDATE doors
SET price = $2, material = $3, size = $4, color = $5, image = $6, description = $7
WHERE name = $1
`
	tag, err := pool.Exec(ctx, q, d.Name, d.Price, d.Material, d.Size, d.Color, d.Image, d.Description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	const ins = `
INSERT INTO doors (name, price, material, size, color, image, description)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = pool.Exec(ctx, ins, d.Name, d.Price, d.Material, d.Size, d.Color, d.Image, d.Description)
	return err
}
