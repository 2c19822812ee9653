package ledger

import (
	"context"
	"database/sql"
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/matti7866/api-sub001/app/config"
	"github.com/matti7866/api-sub001/app/database"
	"github.com/matti7866/api-sub001/app/models"
)

// Summary holds the per-category totals in the reference currency.
// Transfers are internal movements and stay out of the net balance.
type Summary struct {
	TotalCredits   decimal.Decimal
	TotalDebits    decimal.Decimal
	TotalTransfers decimal.Decimal
	NetBalance     decimal.Decimal
}

// Meta echoes the effective filter values for the response.
type Meta struct {
	FromDate         time.Time
	ToDate           time.Time
	AccountID        *int64
	TypeFilter       string
	ResetDate        time.Time
	FromDateAdjusted bool
	TotalCount       int
	GeneratedAt      time.Time
}

// Report is the aggregated result of one run, before presentation
// formatting.
type Report struct {
	Transactions  []models.Transaction
	Summary       Summary
	Meta          Meta
	AccountNames  map[int64]string
	CurrencyNames map[int64]string
}

// Lookups loads the id -> name maps the report resolves names through.
type Lookups interface {
	AccountNames(ctx context.Context) (map[int64]string, error)
	CurrencyNames(ctx context.Context) (map[int64]string, error)
}

type sqlLookups struct {
	db *sql.DB
}

func (l *sqlLookups) AccountNames(ctx context.Context) (map[int64]string, error) {
	return database.GetAccountNames(ctx, l.db)
}

func (l *sqlLookups) CurrencyNames(ctx context.Context) (map[int64]string, error) {
	return database.GetCurrencyNames(ctx, l.db)
}

// reportSource is one independent contributor to the unified list.
type reportSource struct {
	name  string
	fetch func(ctx context.Context, f models.ReportFilter) ([]models.Transaction, error)
}

// Aggregator orchestrates the transaction sources into one report.
type Aggregator struct {
	settings config.ReportSettings
	lookups  Lookups
	rates    RateStore

	// sourcesFor builds the contributor list for a filter; swapped out
	// in tests for fake sources.
	sourcesFor func(f models.ReportFilter, accountNames map[int64]string) []reportSource
}

func NewAggregator(db *sql.DB, settings config.ReportSettings) *Aggregator {
	registry := NewRegistry(db, settings)
	a := &Aggregator{
		settings: settings,
		lookups:  &sqlLookups{db: db},
		rates:    NewSQLRateStore(db),
	}
	a.sourcesFor = func(f models.ReportFilter, accountNames map[int64]string) []reportSource {
		var sources []reportSource
		for _, spec := range registry.ActiveSpecs(f.Type) {
			spec := spec
			sources = append(sources, reportSource{
				name: spec.Name,
				fetch: func(ctx context.Context, f models.ReportFilter) ([]models.Transaction, error) {
					return registry.Fetch(ctx, spec, f)
				},
			})
		}
		if transfersMatch(f.Type) {
			sources = append(sources, reportSource{
				name: "account_transfers",
				fetch: func(ctx context.Context, f models.ReportFilter) ([]models.Transaction, error) {
					return registry.FetchTransfers(ctx, f, accountNames)
				},
			})
		}
		return sources
	}
	return a
}

// GenerateReport runs every activated source under one deadline, merges
// their output, sorts it by date descending and computes the totals. A
// failing or slow source contributes nothing; only lookup preload or
// the merge itself can fail the whole report.
func (a *Aggregator) GenerateReport(ctx context.Context, f models.ReportFilter) (*Report, error) {
	adjusted := false
	if f.FromDate.Before(a.settings.ResetDate) {
		f.FromDate = a.settings.ResetDate
		adjusted = true
	}

	ctx, cancel := context.WithTimeout(ctx, a.settings.ReportTimeout)
	defer cancel()

	accountNames, err := a.lookups.AccountNames(ctx)
	if err != nil {
		return nil, err
	}
	currencyNames, err := a.lookups.CurrencyNames(ctx)
	if err != nil {
		return nil, err
	}

	sources := a.sourcesFor(f, accountNames)

	// Fan out one goroutine per source; results land in per-source
	// slots so the merged order stays deterministic regardless of
	// scheduling.
	results := make([][]models.Transaction, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			txns, err := a.fetchIsolated(gctx, src, f)
			if err != nil {
				log.Printf("Warning: source %s contributed nothing: %v", src.name, err)
				return nil
			}
			results[i] = txns
			return nil
		})
	}
	// Source errors are swallowed above, so Wait only synchronizes
	_ = g.Wait()

	var unified []models.Transaction
	for _, r := range results {
		unified = append(unified, r...)
	}

	sort.SliceStable(unified, func(i, j int) bool {
		return unified[i].Date.After(unified[j].Date)
	})

	normalizer := NewNormalizer(a.rates, a.settings.ReferenceCurrencyID, currencyNames)
	summary := Summary{
		TotalCredits:   decimal.Zero,
		TotalDebits:    decimal.Zero,
		TotalTransfers: decimal.Zero,
	}
	for _, t := range unified {
		converted := normalizer.Convert(ctx, t.Amount, t.CurrencyID)
		switch t.Category {
		case models.CategoryCredit:
			summary.TotalCredits = summary.TotalCredits.Add(converted)
		case models.CategoryDebit:
			summary.TotalDebits = summary.TotalDebits.Add(converted)
		case models.CategoryTransfer:
			summary.TotalTransfers = summary.TotalTransfers.Add(converted)
		default:
			// category-fixed sources should never produce this
			log.Printf("Warning: transaction %d from %s has unrecognized category %q", t.ID, t.Kind, t.Category)
		}
	}
	summary.NetBalance = summary.TotalCredits.Sub(summary.TotalDebits)

	return &Report{
		Transactions: unified,
		Summary:      summary,
		Meta: Meta{
			FromDate:         f.FromDate,
			ToDate:           f.ToDate,
			AccountID:        f.AccountID,
			TypeFilter:       f.Type,
			ResetDate:        a.settings.ResetDate,
			FromDateAdjusted: adjusted,
			TotalCount:       len(unified),
			GeneratedAt:      time.Now(),
		},
		AccountNames:  accountNames,
		CurrencyNames: currencyNames,
	}, nil
}

// fetchIsolated shields the report from a single misbehaving source.
func (a *Aggregator) fetchIsolated(ctx context.Context, src reportSource, f models.ReportFilter) (txns []models.Transaction, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: source %s panicked: %v", src.name, r)
			txns, err = nil, nil
		}
	}()
	return src.fetch(ctx, f)
}

// ValidTypeFilter reports whether a type filter value is recognized:
// empty, one of the three categories, or a declared subtype tag.
func ValidTypeFilter(typeFilter string) bool {
	switch typeFilter {
	case "", string(models.CategoryCredit), string(models.CategoryDebit), string(models.CategoryTransfer):
		return true
	}
	for _, s := range baseSources {
		for _, tag := range s.Subtypes {
			if tag == typeFilter {
				return true
			}
		}
	}
	return false
}
