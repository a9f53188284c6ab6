package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DanillS/doors-web/internal/domain"
)

type DoorWriter interface {
	Create(ctx context.Context, door domain.Door) (*domain.Door, error)
}

// CSVImporter reads a supplier CSV export and inserts doors. Rows with
// an empty name are continuation rows carrying extra image URLs for the
// preceding door.
type CSVImporter struct {
	reader   *csv.Reader
	doorRepo DoorWriter
}

func NewCSVImporter(r io.Reader, repo DoorWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		doorRepo: repo,
	}
}

type csvRow struct {
	Name        string
	Price       int64
	BasePrice   *int64
	Material    string
	Size        string
	Color       string
	Glass       string
	TearType    string
	Description string
	Image       string
	Images      []string
}

// Run parses CSV rows and creates doors, merging continuation rows.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current door.
		if current != nil && len(row.Images) > 0 {
			current.Images = append(current.Images, row.Images...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Name == "" {
		return errors.New("invalid door row: missing name")
	}
	if row.Price < 0 {
		return fmt.Errorf("invalid price for %q: %d", row.Name, row.Price)
	}

	glass := row.Glass
	if glass == "" {
		glass = domain.DefaultGlass
	}
	tearType := row.TearType
	if tearType == "" {
		tearType = domain.DefaultTearType
	}
	images := row.Images
	if images == nil {
		images = []string{}
	}

	d := domain.Door{
		Name:        row.Name,
		Price:       row.Price,
		BasePrice:   row.BasePrice,
		Material:    row.Material,
		Size:        row.Size,
		Color:       row.Color,
		Glass:       glass,
		TearType:    tearType,
		Description: row.Description,
		Image:       row.Image,
		Images:      images,
		IsActive:    true,
	}

	if _, err := i.doorRepo.Create(ctx, d); err != nil {
		return fmt.Errorf("create door %q: %w", row.Name, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	name := pick(record, index, "name")
	imageURL := pick(record, index, "images.url")

	if name == "" && imageURL == "" {
		return nil
	}

	var price int64
	if s := pick(record, index, "price"); s != "" {
		price, _ = strconv.ParseInt(s, 10, 64)
	}
	var basePrice *int64
	if s := pick(record, index, "base_price"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			basePrice = &v
		}
	}

	row := &csvRow{
		Name:        name,
		Price:       price,
		BasePrice:   basePrice,
		Material:    pick(record, index, "material"),
		Size:        pick(record, index, "size"),
		Color:       pick(record, index, "color"),
		Glass:       pick(record, index, "glass"),
		TearType:    pick(record, index, "tear_type"),
		Description: pick(record, index, "description"),
		Image:       pick(record, index, "image"),
	}
	if imageURL != "" {
		row.Images = []string{strings.TrimSpace(imageURL)}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
