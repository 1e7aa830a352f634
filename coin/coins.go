package coin

import (
	"sort"

	"github.com/boardvault/coffer/errors"
)

// Coins is the content of a wallet: at most one non zero coin per currency,
// ordered by ticker. Every operation returns a set in that form as long as
// its receiver is in that form.
type Coins []*Coin

// Clone returns a deep copy.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// position returns the index of the ticker in the set, or the index at which
// it must be inserted.
func (cs Coins) position(ticker string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Ticker >= ticker })
	return i, i < len(cs) && cs[i].Ticker == ticker
}

// Add increases the holding of the coin currency. A currency whose holding
// drops to zero is removed from the set. The receiver is modified in place.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	i, found := cs.position(c.Ticker)
	if !found {
		cs = append(cs, nil)
		copy(cs[i+1:], cs[i:])
		cs[i] = &c
		return cs, nil
	}
	sum, err := cs[i].Add(c)
	if err != nil {
		return nil, err
	}
	if sum.IsZero() {
		return append(cs[:i], cs[i+1:]...), nil
	}
	cs[i] = &sum
	return cs, nil
}

// Subtract decreases the holding of the coin currency. The result may hold
// a negative amount.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Combine returns a new set holding the coins of both sets.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs.Clone()
	for _, c := range o {
		if c == nil {
			continue
		}
		var err error
		if res, err = res.Add(*c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Get returns the holding of a currency, a zero coin if there is none.
func (cs Coins) Get(ticker string) Coin {
	if i, found := cs.position(ticker); found {
		return *cs[i]
	}
	return NewCoin(0, 0, ticker)
}

// Contains returns true if the set holds at least the given amount of the
// coin currency.
func (cs Coins) Contains(c Coin) bool {
	i, found := cs.position(c.Ticker)
	return found && cs[i].Compare(c) >= 0
}

// IsEmpty returns true if the set holds nothing.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals returns true if both sets hold the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate checks every coin and that the set is ordered by ticker without
// duplicates or zero holdings.
func (cs Coins) Validate() error {
	var errs error
	for i, c := range cs {
		if c == nil {
			errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "nil coin"))
			continue
		}
		errs = errors.Append(errs, errors.Wrap(c.Validate(), "coin"))
		if c.IsZero() {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrState, "zero %s holding", c.Ticker))
		}
		if i > 0 && cs[i-1] != nil && cs[i-1].Ticker >= c.Ticker {
			errs = errors.Append(errs, errors.Wrapf(errors.ErrState, "%s out of order", c.Ticker))
		}
	}
	return errs
}
