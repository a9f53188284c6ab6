package pricing

import (
	"context"
	"errors"
	"io"
	"log"
	"math"

	doorrepo "github.com/DanillS/doors-web/internal/repository/door"
)

// Recognized bulk operations.
const (
	OperationIncrease = "increase"
	OperationDecrease = "decrease"
)

var (
	// ErrInvalidOperation is returned for operations other than
	// increase/decrease.
	ErrInvalidOperation = errors.New("unknown operation")
	// ErrInvalidPercentage is returned for a missing or non-positive
	// percentage.
	ErrInvalidPercentage = errors.New("percentage must be positive")
	// ErrNoDoors signals there was nothing to update.
	ErrNoDoors = errors.New("no doors to update")
)

type pricingRepo interface {
	ListPricing(ctx context.Context) ([]doorrepo.PriceRow, error)
	UpdatePrice(ctx context.Context, id, price int64) error
}

// Service applies percentage price adjustments across the whole
// catalog.
type Service struct {
	repo   pricingRepo
	logger *log.Logger
}

func New(repo doorrepo.Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, logger: logger}
}

// Input is a bulk adjustment request. Category is accepted for
// compatibility with the admin client but only "all" is meaningful; it
// is not applied to the row selection.
type Input struct {
	Operation  string  `json:"operation"`
	Percentage float64 `json:"percentage"`
	Category   string  `json:"category"`
}

// RowOutcome records the result of one row update.
type RowOutcome struct {
	ID       int64  `json:"id"`
	OldPrice int64  `json:"oldPrice"`
	NewPrice int64  `json:"newPrice"`
	Err      string `json:"error,omitempty"`
}

// Result summarizes a bulk run, echoing the operation and percentage
// back for confirmation.
type Result struct {
	UpdatedCount int          `json:"updatedCount"`
	FailedCount  int          `json:"failedCount"`
	Operation    string       `json:"operation"`
	Percentage   float64      `json:"percentage"`
	Outcomes     []RowOutcome `json:"outcomes,omitempty"`
}

// Apply recomputes every catalog row's price by the requested
// percentage. The base for each row is basePrice when present, the
// current price otherwise; only price is written, so repeated runs stay
// relative to the original baseline instead of compounding. Input is
// validated before any row is written. Rows are updated sequentially
// with no rollback; failures are collected per row.
func (s *Service) Apply(ctx context.Context, in Input) (*Result, error) {
	if in.Operation != OperationIncrease && in.Operation != OperationDecrease {
		return nil, ErrInvalidOperation
	}
	if in.Percentage <= 0 {
		return nil, ErrInvalidPercentage
	}
	if in.Category != "" && in.Category != "all" {
		s.logger.Printf("pricing: ignoring category filter %q", in.Category)
	}

	rows, err := s.repo.ListPricing(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoDoors
	}

	result := &Result{Operation: in.Operation, Percentage: in.Percentage}
	for _, row := range rows {
		newPrice := adjust(row, in.Operation, in.Percentage)
		outcome := RowOutcome{ID: row.ID, OldPrice: row.Price, NewPrice: newPrice}
		if err := s.repo.UpdatePrice(ctx, row.ID, newPrice); err != nil {
			outcome.Err = err.Error()
			result.FailedCount++
			s.logger.Printf("pricing: update id=%d error=%v", row.ID, err)
		} else {
			result.UpdatedCount++
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	s.logger.Printf("pricing: %s %.2f%% updated=%d failed=%d", in.Operation, in.Percentage, result.UpdatedCount, result.FailedCount)
	return result, nil
}

func adjust(row doorrepo.PriceRow, operation string, percentage float64) int64 {
	base := row.Price
	if row.BasePrice != nil {
		base = *row.BasePrice
	}

	factor := 1 + percentage/100
	if operation == OperationDecrease {
		factor = 1 - percentage/100
	}

	newPrice := int64(math.Round(float64(base) * factor))
	if newPrice < 0 {
		newPrice = 0
	}
	return newPrice
}
