package domain

import "time"

// Door is a single catalog row. Prices are whole currency units.
// BasePrice, when set, is the original price before any bulk adjustment;
// the price adjuster always recomputes from it so repeated runs do not
// compound.
type Door struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Price         int64          `json:"price"`
	BasePrice     *int64         `json:"basePrice,omitempty"`
	Material      string         `json:"material"`
	Size          string         `json:"size"`
	Color         string         `json:"color"`
	Glass         string         `json:"glass"`
	TearType      string         `json:"tearType"`
	Description   string         `json:"description,omitempty"`
	Image         string         `json:"image"`
	Images        []string       `json:"images"`
	ColorVariants []ColorVariant `json:"colorVariants,omitempty"`
	IsActive      bool           `json:"isActive"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// ColorVariant is an alternative finish of a door. Name is unique
// within its door.
type ColorVariant struct {
	Name     string   `json:"name"`
	Hex      string   `json:"hex"`
	Image    string   `json:"image"`
	Images   []string `json:"images,omitempty"`
	IsActive bool     `json:"isActive"`
}

// Defaults applied by the catalog when a submitted door omits them.
const (
	DefaultGlass    = "Без стекла"
	DefaultTearType = "Распашная"
)
