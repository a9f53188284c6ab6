package pricing

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	doorrepo "github.com/DanillS/doors-web/internal/repository/door"
)

type stubRepo struct {
	rows      []doorrepo.PriceRow
	listErr   error
	failIDs   map[int64]error
	written   map[int64]int64
	listCalls int
}

func newStubRepo(rows ...doorrepo.PriceRow) *stubRepo {
	return &stubRepo{rows: rows, written: map[int64]int64{}}
}

func (s *stubRepo) ListPricing(_ context.Context) ([]doorrepo.PriceRow, error) {
	s.listCalls++
	return s.rows, s.listErr
}

func (s *stubRepo) UpdatePrice(_ context.Context, id, price int64) error {
	if err := s.failIDs[id]; err != nil {
		return err
	}
	s.written[id] = price
	return nil
}

func int64Ptr(v int64) *int64 {
	return &v
}

func newService(repo *stubRepo) *Service {
	return &Service{repo: repo, logger: log.New(io.Discard, "", 0)}
}

func TestApplyRejectsUnknownOperation(t *testing.T) {
	repo := newStubRepo(doorrepo.PriceRow{ID: 1, Price: 100})
	svc := newService(repo)
	_, err := svc.Apply(context.Background(), Input{Operation: "double", Percentage: 10})
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}
	if len(repo.written) != 0 || repo.listCalls != 0 {
		t.Fatalf("expected no repo access on invalid input")
	}
}

func TestApplyRejectsNonPositivePercentage(t *testing.T) {
	for _, pct := range []float64{0, -5} {
		repo := newStubRepo(doorrepo.PriceRow{ID: 1, Price: 100})
		svc := newService(repo)
		_, err := svc.Apply(context.Background(), Input{Operation: OperationIncrease, Percentage: pct})
		if !errors.Is(err, ErrInvalidPercentage) {
			t.Fatalf("percentage %v: expected ErrInvalidPercentage, got %v", pct, err)
		}
		if len(repo.written) != 0 {
			t.Fatalf("percentage %v: expected no rows written", pct)
		}
	}
}

func TestApplyEmptyCatalog(t *testing.T) {
	svc := newService(newStubRepo())
	_, err := svc.Apply(context.Background(), Input{Operation: OperationIncrease, Percentage: 10})
	if !errors.Is(err, ErrNoDoors) {
		t.Fatalf("expected ErrNoDoors, got %v", err)
	}
}

func TestApplyComputesFromBasePrice(t *testing.T) {
	repo := newStubRepo(doorrepo.PriceRow{ID: 1, Price: 10000, BasePrice: int64Ptr(10000)})
	svc := newService(repo)

	res, err := svc.Apply(context.Background(), Input{Operation: OperationIncrease, Percentage: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.written[1] != 11000 {
		t.Fatalf("expected price 11000, got %d", repo.written[1])
	}
	if res.UpdatedCount != 1 || res.Operation != OperationIncrease || res.Percentage != 10 {
		t.Fatalf("unexpected result %+v", res)
	}

	// A second identical run stays at 11000: the base price is the
	// anchor, not the adjusted price.
	repo.rows = []doorrepo.PriceRow{{ID: 1, Price: 11000, BasePrice: int64Ptr(10000)}}
	if _, err := svc.Apply(context.Background(), Input{Operation: OperationIncrease, Percentage: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.written[1] != 11000 {
		t.Fatalf("expected non-compounding 11000, got %d", repo.written[1])
	}
}

func TestApplyFallsBackToCurrentPrice(t *testing.T) {
	repo := newStubRepo(doorrepo.PriceRow{ID: 2, Price: 8900})
	svc := newService(repo)
	if _, err := svc.Apply(context.Background(), Input{Operation: OperationDecrease, Percentage: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.written[2] != 8010 {
		t.Fatalf("expected price 8010, got %d", repo.written[2])
	}
}

func TestApplyRoundsAndClampsAtZero(t *testing.T) {
	repo := newStubRepo(
		doorrepo.PriceRow{ID: 1, Price: 999},
		doorrepo.PriceRow{ID: 2, Price: 100},
	)
	svc := newService(repo)
	if _, err := svc.Apply(context.Background(), Input{Operation: OperationDecrease, Percentage: 150}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.written[1] != 0 || repo.written[2] != 0 {
		t.Fatalf("expected prices clamped at 0, got %v", repo.written)
	}
}

func TestApplyCollectsPerRowFailures(t *testing.T) {
	repo := newStubRepo(
		doorrepo.PriceRow{ID: 1, Price: 100},
		doorrepo.PriceRow{ID: 2, Price: 200},
		doorrepo.PriceRow{ID: 3, Price: 300},
	)
	repo.failIDs = map[int64]error{2: errors.New("row locked")}
	svc := newService(repo)

	res, err := svc.Apply(context.Background(), Input{Operation: OperationIncrease, Percentage: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.UpdatedCount != 2 || res.FailedCount != 1 {
		t.Fatalf("unexpected counts %+v", res)
	}
	if len(res.Outcomes) != 3 {
		t.Fatalf("expected outcome per row, got %d", len(res.Outcomes))
	}
	if res.Outcomes[1].Err == "" || res.Outcomes[1].ID != 2 {
		t.Fatalf("expected failure recorded for row 2, got %+v", res.Outcomes[1])
	}
	// No rollback: rows 1 and 3 stay written.
	if repo.written[1] != 150 || repo.written[3] != 450 {
		t.Fatalf("expected successful rows kept, got %v", repo.written)
	}
}

func TestApplyIgnoresCategoryFilter(t *testing.T) {
	repo := newStubRepo(doorrepo.PriceRow{ID: 1, Price: 100})
	svc := newService(repo)
	if _, err := svc.Apply(context.Background(), Input{Operation: OperationIncrease, Percentage: 10, Category: "входные"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.written[1] != 110 {
		t.Fatalf("expected row updated regardless of category, got %v", repo.written)
	}
}
