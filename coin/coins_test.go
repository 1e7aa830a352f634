package coin

import (
	"testing"

	"github.com/boardvault/coffer/coffertest/assert"
	"github.com/boardvault/coffer/errors"
)

func wallet(t testing.TB, cs ...Coin) Coins {
	t.Helper()
	var (
		res Coins
		err error
	)
	for _, c := range cs {
		res, err = res.Add(c)
		assert.Nil(t, err)
	}
	return res
}

func TestCoinsAdd(t *testing.T) {
	cases := map[string]struct {
		deposits []Coin
		want     Coins
		wantErr  *errors.Error
	}{
		"nothing deposited": {
			want: nil,
		},
		"zero deposit is ignored": {
			deposits: []Coin{NewCoin(0, 0, "CASH")},
			want:     nil,
		},
		"deposits are kept ordered": {
			deposits: []Coin{NewCoin(1, 0, "ZED"), NewCoin(2, 0, "CASH"), NewCoin(3, 0, "ETH")},
			want:     Coins{NewCoinp(2, 0, "CASH"), NewCoinp(3, 0, "ETH"), NewCoinp(1, 0, "ZED")},
		},
		"deposits of a currency are summed": {
			deposits: []Coin{NewCoin(1, 600000000, "CASH"), NewCoin(2, 500000000, "CASH")},
			want:     Coins{NewCoinp(4, 100000000, "CASH")},
		},
		"emptied currency is removed": {
			deposits: []Coin{NewCoin(5, 0, "CASH"), NewCoin(1, 0, "ETH"), NewCoin(-5, 0, "CASH")},
			want:     Coins{NewCoinp(1, 0, "ETH")},
		},
		"overflow": {
			deposits: []Coin{NewCoin(MaxInt, 0, "CASH"), NewCoin(1, 0, "CASH")},
			wantErr:  errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var (
				got Coins
				err error
			)
			for _, c := range tc.deposits {
				if got, err = got.Add(c); err != nil {
					break
				}
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.Nil(t, got.Validate())
			if !got.Equals(tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCoinsSubtract(t *testing.T) {
	w := wallet(t, NewCoin(3, 0, "CASH"))

	w, err := w.Subtract(NewCoin(1, 500000000, "CASH"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(1, 500000000, "CASH"), w.Get("CASH"))

	w, err = w.Subtract(NewCoin(1, 500000000, "CASH"))
	assert.Nil(t, err)
	assert.Equal(t, true, w.IsEmpty())

	// A holding may go negative. It is up to the caller to prevent it.
	w, err = w.Subtract(NewCoin(2, 0, "ETH"))
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(-2, 0, "ETH"), w.Get("ETH"))
}

func TestCoinsContains(t *testing.T) {
	w := wallet(t, NewCoin(10, 0, "CASH"), NewCoin(0, 5, "ETH"))

	cases := map[string]struct {
		amount Coin
		want   bool
	}{
		"part of a holding":   {amount: NewCoin(4, 0, "CASH"), want: true},
		"whole holding":       {amount: NewCoin(10, 0, "CASH"), want: true},
		"more than held":      {amount: NewCoin(10, 1, "CASH"), want: false},
		"fraction held":       {amount: NewCoin(0, 5, "ETH"), want: true},
		"currency not held":   {amount: NewCoin(1, 0, "BTC"), want: false},
		"zero of a held coin": {amount: NewCoin(0, 0, "CASH"), want: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, w.Contains(tc.amount))
		})
	}
}

func TestCoinsCombine(t *testing.T) {
	a := wallet(t, NewCoin(7, 8, "FOO"), NewCoin(8, 9, "BAR"))
	b := wallet(t, NewCoin(5, 4, "APE"), NewCoin(2, 1, "FOO"))

	got, err := a.Combine(b)
	assert.Nil(t, err)
	want := Coins{NewCoinp(5, 4, "APE"), NewCoinp(8, 9, "BAR"), NewCoinp(9, 9, "FOO")}
	if !got.Equals(want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	// Combining must not modify the sources.
	assert.Equal(t, NewCoin(7, 8, "FOO"), a.Get("FOO"))
	assert.Equal(t, NewCoin(2, 1, "FOO"), b.Get("FOO"))

	_, err = wallet(t, NewCoin(MaxInt, 0, "ADA")).Combine(wallet(t, NewCoin(2, 0, "ADA")))
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestCoinsGet(t *testing.T) {
	w := wallet(t, NewCoin(3, 0, "CASH"), NewCoin(1, 5, "ETH"))
	assert.Equal(t, NewCoin(3, 0, "CASH"), w.Get("CASH"))
	assert.Equal(t, NewCoin(1, 5, "ETH"), w.Get("ETH"))
	assert.Equal(t, NewCoin(0, 0, "BTC"), w.Get("BTC"))
}

func TestCoinsValidate(t *testing.T) {
	cases := map[string]struct {
		coins   Coins
		wantErr *errors.Error
	}{
		"empty":        {coins: nil},
		"ordered":      {coins: Coins{NewCoinp(1, 0, "CASH"), NewCoinp(1, 0, "ETH")}},
		"out of order": {coins: Coins{NewCoinp(1, 0, "ETH"), NewCoinp(1, 0, "CASH")}, wantErr: errors.ErrState},
		"duplicated":   {coins: Coins{NewCoinp(1, 0, "ETH"), NewCoinp(2, 0, "ETH")}, wantErr: errors.ErrState},
		"zero holding": {coins: Coins{NewCoinp(0, 0, "ETH")}, wantErr: errors.ErrState},
		"nil coin":     {coins: Coins{nil}, wantErr: errors.ErrEmpty},
		"bad currency": {coins: Coins{NewCoinp(1, 0, "eth")}, wantErr: errors.ErrCurrency},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.coins.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
