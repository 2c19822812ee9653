package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matti7866/api-sub001/app/models"
)

type fakeLookups struct {
	accounts   map[int64]string
	currencies map[int64]string
}

func (f *fakeLookups) AccountNames(ctx context.Context) (map[int64]string, error) {
	return f.accounts, nil
}

func (f *fakeLookups) CurrencyNames(ctx context.Context) (map[int64]string, error) {
	return f.currencies, nil
}

func newTestAggregator(rates *fakeRateStore, sources ...reportSource) *Aggregator {
	return &Aggregator{
		settings: testSettings(),
		lookups: &fakeLookups{
			accounts:   map[int64]string{2: "Main Cash", 3: "Emirates NBD"},
			currencies: map[int64]string{1: "AED", 2: "USD"},
		},
		rates: rates,
		sourcesFor: func(f models.ReportFilter, accountNames map[int64]string) []reportSource {
			return sources
		},
	}
}

func staticSource(name string, txns ...models.Transaction) reportSource {
	return reportSource{
		name: name,
		fetch: func(ctx context.Context, f models.ReportFilter) ([]models.Transaction, error) {
			return txns, nil
		},
	}
}

func acct(id int64) *int64 { return &id }

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGenerateReportClampsFromDate(t *testing.T) {
	var seen models.ReportFilter
	src := reportSource{
		name: "probe",
		fetch: func(ctx context.Context, f models.ReportFilter) ([]models.Transaction, error) {
			seen = f
			return nil, nil
		},
	}
	agg := newTestAggregator(&fakeRateStore{}, src)

	report, err := agg.GenerateReport(context.Background(), models.ReportFilter{
		FromDate: day("2020-01-01"),
		ToDate:   day("2025-12-31"),
	})
	if err != nil {
		t.Fatal(err)
	}

	resetDate := testSettings().ResetDate
	if !report.Meta.FromDate.Equal(resetDate) {
		t.Errorf("meta from date should be clamped to %s, got %s", resetDate, report.Meta.FromDate)
	}
	if !report.Meta.FromDateAdjusted {
		t.Error("meta should record that the from date was adjusted")
	}
	if !seen.FromDate.Equal(resetDate) {
		t.Errorf("sources should see the clamped from date, got %s", seen.FromDate)
	}
}

func TestGenerateReportFromDateInsideRangeUntouched(t *testing.T) {
	agg := newTestAggregator(&fakeRateStore{})
	report, err := agg.GenerateReport(context.Background(), models.ReportFilter{
		FromDate: day("2025-11-01"),
		ToDate:   day("2025-11-30"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Meta.FromDate.Equal(day("2025-11-01")) || report.Meta.FromDateAdjusted {
		t.Errorf("in-range from date must pass through unchanged, got %s (adjusted=%v)",
			report.Meta.FromDate, report.Meta.FromDateAdjusted)
	}
}

func TestGenerateReportSortsByDateDescending(t *testing.T) {
	first := staticSource("a",
		models.Transaction{ID: 1, Date: day("2025-11-10"), Kind: "Customer Payment", Category: models.CategoryCredit, Amount: dec("10"), CurrencyID: 1},
		models.Transaction{ID: 2, Date: day("2025-10-05"), Kind: "Customer Payment", Category: models.CategoryCredit, Amount: dec("20"), CurrencyID: 1},
	)
	second := staticSource("b",
		models.Transaction{ID: 3, Date: day("2025-11-10"), Kind: "Expense", Category: models.CategoryDebit, Amount: dec("5"), CurrencyID: 1},
		models.Transaction{ID: 4, Date: day("2025-12-01"), Kind: "Expense", Category: models.CategoryDebit, Amount: dec("5"), CurrencyID: 1},
	)
	agg := newTestAggregator(&fakeRateStore{}, first, second)

	report, err := agg.GenerateReport(context.Background(), models.ReportFilter{
		FromDate: day("2025-10-01"), ToDate: day("2025-12-31"),
	})
	if err != nil {
		t.Fatal(err)
	}

	gotIDs := make([]int64, 0, len(report.Transactions))
	for _, txn := range report.Transactions {
		gotIDs = append(gotIDs, txn.ID)
	}
	// 2025-12-01 first, then the 2025-11-10 tie in insertion order
	// (source a before source b), then 2025-10-05
	want := []int64{4, 1, 3, 2}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, gotIDs)
		}
	}
}

func TestGenerateReportTotals(t *testing.T) {
	src := staticSource("mixed",
		models.Transaction{ID: 1, Date: day("2025-11-01"), Category: models.CategoryCredit, Amount: dec("100"), CurrencyID: 1},
		models.Transaction{ID: 2, Date: day("2025-11-02"), Category: models.CategoryDebit, Amount: dec("40"), CurrencyID: 1},
		models.Transaction{ID: 3, Date: day("2025-11-03"), Kind: "Transfer Out", Category: models.CategoryTransfer, Amount: dec("25"), CurrencyID: 1},
		models.Transaction{ID: 3, Date: day("2025-11-03"), Kind: "Transfer In", Category: models.CategoryTransfer, Amount: dec("25"), CurrencyID: 1},
	)
	agg := newTestAggregator(&fakeRateStore{}, src)

	report, err := agg.GenerateReport(context.Background(), models.ReportFilter{
		FromDate: day("2025-10-01"), ToDate: day("2025-12-31"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if !report.Summary.TotalCredits.Equal(dec("100")) {
		t.Errorf("total credits = %s", report.Summary.TotalCredits)
	}
	if !report.Summary.TotalDebits.Equal(dec("40")) {
		t.Errorf("total debits = %s", report.Summary.TotalDebits)
	}
	if !report.Summary.TotalTransfers.Equal(dec("50")) {
		t.Errorf("total transfers = %s", report.Summary.TotalTransfers)
	}
	// Transfers are internal movements and stay out of the net balance
	if !report.Summary.NetBalance.Equal(dec("60")) {
		t.Errorf("net balance = %s, want 60", report.Summary.NetBalance)
	}
	if report.Meta.TotalCount != 4 {
		t.Errorf("total count = %d", report.Meta.TotalCount)
	}
}

func TestGenerateReportConvertsToReferenceCurrency(t *testing.T) {
	src := staticSource("usd",
		models.Transaction{ID: 1, Date: day("2025-11-01"), Category: models.CategoryCredit, Amount: dec("100"), CurrencyID: 2},
	)
	rates := &fakeRateStore{rates: map[int64]decimal.Decimal{2: dec("3.67")}}
	agg := newTestAggregator(rates, src)

	report, err := agg.GenerateReport(context.Background(), models.ReportFilter{
		FromDate: day("2025-10-01"), ToDate: day("2025-12-31"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := dec("367.00"); !report.Summary.TotalCredits.Equal(want) {
		t.Errorf("total credits = %s, want %s", report.Summary.TotalCredits, want)
	}
}

func TestGenerateReportIsolatesFailingSource(t *testing.T) {
	broken := reportSource{
		name: "broken",
		fetch: func(ctx context.Context, f models.ReportFilter) ([]models.Transaction, error) {
			return nil, errors.New("relation does not exist")
		},
	}
	healthy := staticSource("healthy",
		models.Transaction{ID: 1, Date: day("2025-11-01"), Category: models.CategoryCredit, Amount: dec("10"), CurrencyID: 1},
	)
	agg := newTestAggregator(&fakeRateStore{}, broken, healthy)

	report, err := agg.GenerateReport(context.Background(), models.ReportFilter{
		FromDate: day("2025-10-01"), ToDate: day("2025-12-31"),
	})
	if err != nil {
		t.Fatalf("a failing source must not fail the report: %v", err)
	}
	if len(report.Transactions) != 1 {
		t.Fatalf("expected the healthy source's row, got %d rows", len(report.Transactions))
	}
}

func TestGenerateReportIsolatesPanickingSource(t *testing.T) {
	panicking := reportSource{
		name: "panicking",
		fetch: func(ctx context.Context, f models.ReportFilter) ([]models.Transaction, error) {
			panic("nil dereference")
		},
	}
	healthy := staticSource("healthy",
		models.Transaction{ID: 1, Date: day("2025-11-01"), Category: models.CategoryCredit, Amount: dec("10"), CurrencyID: 1},
	)
	agg := newTestAggregator(&fakeRateStore{}, panicking, healthy)

	report, err := agg.GenerateReport(context.Background(), models.ReportFilter{
		FromDate: day("2025-10-01"), ToDate: day("2025-12-31"),
	})
	if err != nil {
		t.Fatalf("a panicking source must not fail the report: %v", err)
	}
	if len(report.Transactions) != 1 {
		t.Fatalf("expected the healthy source's row, got %d rows", len(report.Transactions))
	}
}

func TestActiveSpecsHonorsTypeFilter(t *testing.T) {
	all := make([]sourceSpec, 0, len(baseSources)+16)
	all = append(all, baseSources...)
	all = append(all, stepSources()...)
	registry := &Registry{settings: testSettings(), specs: all}

	if got := registry.ActiveSpecs(""); len(got) != len(all) {
		t.Errorf("empty filter should activate every source, got %d of %d", len(got), len(all))
	}
	if got := registry.ActiveSpecs("transfer"); len(got) != 0 {
		t.Errorf("transfer filter should activate no table sources, got %d", len(got))
	}
	if got := registry.ActiveSpecs("salary"); len(got) != 1 || got[0].Name != "salaries" {
		t.Errorf("salary filter should activate only the salaries source, got %v", got)
	}

	for _, spec := range registry.ActiveSpecs("debit") {
		if spec.Category != models.CategoryDebit {
			t.Errorf("debit filter activated %s with category %s", spec.Name, spec.Category)
		}
	}
}
