package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

type fakeRateStore struct {
	rates map[int64]decimal.Decimal
	err   error
	calls int
}

func (f *fakeRateStore) LatestActiveRate(ctx context.Context, fromCurrencyID, toCurrencyID int64) (decimal.Decimal, bool, error) {
	f.calls++
	if f.err != nil {
		return decimal.Decimal{}, false, f.err
	}
	rate, ok := f.rates[fromCurrencyID]
	return rate, ok, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestConvertReferenceCurrencyIsIdentity(t *testing.T) {
	store := &fakeRateStore{}
	n := NewNormalizer(store, 1, map[int64]string{1: "AED"})

	amount := dec("123.45")
	got := n.Convert(context.Background(), amount, 1)
	if !got.Equal(amount) {
		t.Fatalf("expected %s, got %s", amount, got)
	}
	if store.calls != 0 {
		t.Fatalf("reference currency must not hit the rate store, got %d calls", store.calls)
	}
}

func TestConvertUsesStoredRate(t *testing.T) {
	store := &fakeRateStore{rates: map[int64]decimal.Decimal{2: dec("3.67")}}
	n := NewNormalizer(store, 1, map[int64]string{1: "AED", 2: "USD"})

	got := n.Convert(context.Background(), dec("100"), 2)
	if want := dec("367.00"); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestRateToReferenceCachesLookups(t *testing.T) {
	store := &fakeRateStore{rates: map[int64]decimal.Decimal{2: dec("3.67")}}
	n := NewNormalizer(store, 1, map[int64]string{2: "USD"})

	ctx := context.Background()
	n.RateToReference(ctx, 2)
	n.RateToReference(ctx, 2)
	if store.calls != 1 {
		t.Fatalf("expected 1 store call, got %d", store.calls)
	}
}

func TestRateToReferenceAlias(t *testing.T) {
	store := &fakeRateStore{}
	n := NewNormalizer(store, 1, map[int64]string{7: "Dirham"})

	got := n.RateToReference(context.Background(), 7)
	if !got.Equal(dec("1")) {
		t.Fatalf("alias of the reference currency should resolve to 1, got %s", got)
	}
	if store.calls != 0 {
		t.Fatalf("alias resolution must not hit the rate store")
	}
}

func TestRateToReferenceStaticFallback(t *testing.T) {
	cases := []struct {
		name     string
		currency string
		want     string
	}{
		{"exact code", "USD", "3.6725"},
		{"code embedded in name", "EUR (Euro)", "4.02"},
		{"name embedded in code", "US", "3.6725"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewNormalizer(&fakeRateStore{}, 1, map[int64]string{9: tc.currency})
			got := n.RateToReference(context.Background(), 9)
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("%q: expected %s, got %s", tc.currency, tc.want, got)
			}
		})
	}
}

func TestRateToReferenceUnknownCurrencyDefaultsToOne(t *testing.T) {
	n := NewNormalizer(&fakeRateStore{}, 1, map[int64]string{9: "ZZZ Shells"})
	got := n.RateToReference(context.Background(), 9)
	if !got.Equal(dec("1")) {
		t.Fatalf("unknown currency should default to 1.0, got %s", got)
	}
}

func TestRateToReferenceStoreErrorDegrades(t *testing.T) {
	store := &fakeRateStore{err: errors.New("connection refused")}
	n := NewNormalizer(store, 1, map[int64]string{2: "USD"})

	got := n.RateToReference(context.Background(), 2)
	if want := dec("3.6725"); !got.Equal(want) {
		t.Fatalf("store error should fall through to the static table, expected %s, got %s", want, got)
	}
}

func TestConvertShortCircuitsNonPositiveAmounts(t *testing.T) {
	store := &fakeRateStore{rates: map[int64]decimal.Decimal{2: dec("3.67")}}
	n := NewNormalizer(store, 1, map[int64]string{2: "USD"})
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, dec("-5")} {
		got := n.Convert(ctx, amount, 2)
		if !got.Equal(decimal.Zero) {
			t.Fatalf("expected zero for amount %s, got %s", amount, got)
		}
	}
	if store.calls != 0 {
		t.Fatalf("non-positive amounts must not trigger a rate lookup, got %d calls", store.calls)
	}
}
