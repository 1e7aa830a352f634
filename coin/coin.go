package coin

import (
	"encoding/json"
	"regexp"

	"github.com/boardvault/coffer/errors"
	"github.com/gogo/protobuf/proto"
	"github.com/shopspring/decimal"
)

// IsCC returns true for a valid currency code: 3 or 4 upper case letters.
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

const (
	// MaxInt is the largest accepted whole amount, 10^15-1.
	MaxInt int64 = 999999999999999
	// MinInt is the lowest accepted whole amount.
	MinInt = -MaxInt

	// FracUnit is the number of fractional units in a whole unit.
	FracUnit int64 = 1000000000
	// MaxFrac is the highest fractional amount.
	MaxFrac = FracUnit - 1
	// MinFrac is the lowest fractional amount.
	MinFrac = -MaxFrac

	fracDigits = 9
)

// Coin is a fixed point amount of a single currency. The value is
// Whole + Fractional/10^9. When both parts are non zero they carry the same
// sign.
type Coin struct {
	Whole      int64  `protobuf:"varint,1,opt,name=whole,proto3" json:"whole,omitempty"`
	Fractional int64  `protobuf:"varint,2,opt,name=fractional,proto3" json:"fractional,omitempty"`
	Ticker     string `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

var _ proto.Message = (*Coin)(nil)

func (c *Coin) Reset()      { *c = Coin{} }
func (*Coin) ProtoMessage() {}

// NewCoin returns a coin of the given amount.
func NewCoin(whole, fractional int64, ticker string) Coin {
	return Coin{Whole: whole, Fractional: fractional, Ticker: ticker}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(whole, fractional int64, ticker string) *Coin {
	c := NewCoin(whole, fractional, ticker)
	return &c
}

// Add returns the sum of two coins of the same currency. A zero coin without
// a ticker is neutral. The result is normalized and ErrOverflow is returned
// if it does not fit the accepted range.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case c.Ticker == "" && c.IsZero():
		return o, nil
	case o.Ticker == "" && o.IsZero():
		return c, nil
	case c.Ticker != o.Ticker:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot add %s to %s", o.Ticker, c.Ticker)
	}
	c.Whole += o.Whole
	c.Fractional += o.Fractional
	return c.normalize()
}

// Negative returns the coin with the opposite value.
func (c Coin) Negative() Coin {
	return Coin{Whole: -c.Whole, Fractional: -c.Fractional, Ticker: c.Ticker}
}

// Subtract returns c minus the amount.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	return c.Add(amount.Negative())
}

// Compare returns 1 if c is greater than o, -1 if it is smaller and 0 if
// both values are equal. The ticker is ignored and both coins must be
// normalized.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Whole != o.Whole:
		if c.Whole > o.Whole {
			return 1
		}
		return -1
	case c.Fractional > o.Fractional:
		return 1
	case c.Fractional < o.Fractional:
		return -1
	default:
		return 0
	}
}

// Equals returns true if both the value and the ticker are the same.
func (c Coin) Equals(o Coin) bool {
	return c == o
}

// IsEmpty returns true for a nil coin or a zero amount.
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true if the amount is zero.
func (c Coin) IsZero() bool {
	return c.Whole == 0 && c.Fractional == 0
}

// IsPositive returns true if the amount is greater than zero.
func (c Coin) IsPositive() bool {
	return c.Whole > 0 || (c.Whole == 0 && c.Fractional > 0)
}

// Clone returns an independent copy.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate checks the currency code, the range of both parts and that their
// signs match. Negative amounts are valid.
func (c Coin) Validate() error {
	var errs error
	if !IsCC(c.Ticker) {
		errs = errors.Append(errs, errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker))
	}
	if c.Whole < MinInt || c.Whole > MaxInt {
		errs = errors.Append(errs, errors.Wrap(errors.ErrOverflow, "whole"))
	}
	if c.Fractional < MinFrac || c.Fractional > MaxFrac {
		errs = errors.Append(errs, errors.Wrap(errors.ErrOverflow, "fractional"))
	}
	if c.Whole != 0 && c.Fractional != 0 && (c.Whole > 0) != (c.Fractional > 0) {
		errs = errors.Append(errs, errors.Wrap(errors.ErrState, "mismatched sign"))
	}
	return errs
}

// normalize carries the fractional part into the whole part until the
// fractional part is in range and has the sign of the whole part.
func (c Coin) normalize() (Coin, error) {
	c.Whole += c.Fractional / FracUnit
	c.Fractional %= FracUnit

	switch {
	case c.Whole > 0 && c.Fractional < 0:
		c.Whole--
		c.Fractional += FracUnit
	case c.Whole < 0 && c.Fractional > 0:
		c.Whole++
		c.Fractional -= FracUnit
	}

	if c.Whole < MinInt || c.Whole > MaxInt {
		return Coin{}, errors.ErrOverflow
	}
	return c, nil
}

// Decimal returns the value as a decimal number, ignoring the ticker.
func (c Coin) Decimal() decimal.Decimal {
	return decimal.New(c.Whole, 0).Add(decimal.New(c.Fractional, -fracDigits))
}

// UnmarshalJSON accepts both the human readable string format, for example
// "12.5 CASH", and an object with whole, fractional and ticker attributes.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// A local type without the UnmarshalJSON method avoids the recursion.
	var obj struct {
		Whole      int64
		Fractional int64
		Ticker     string
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return err
	}
	*c = NewCoin(obj.Whole, obj.Fractional, obj.Ticker)
	return nil
}

// String returns the human readable format "<amount> <ticker>". For a valid
// coin it can be parsed back with ParseHumanFormat.
func (c Coin) String() string {
	if n, err := c.normalize(); err == nil {
		c = n
	}
	s := c.Decimal().String()
	if c.Ticker != "" {
		s += " " + c.Ticker
	}
	return s
}

var humanCoinFormatRx = regexp.MustCompile(`^(\-?)\s*(\d+(?:\.\d+)?)\s*([A-Z]{3,4})$`)

// ParseHumanFormat parses "<whole>[.<fractional>] <ticker>". At most 9
// decimal places are accepted.
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}

	amount, err := decimal.NewFromString(m[2])
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid amount: %s", err)
	}
	whole := amount.Truncate(0)
	if whole.GreaterThan(decimal.New(MaxInt, 0)) {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "whole")
	}
	frac := amount.Sub(whole).Shift(fracDigits)
	if !frac.Equal(frac.Truncate(0)) {
		return Coin{}, errors.Wrapf(errors.ErrInput, "more than %d decimal places", fracDigits)
	}

	c := NewCoin(whole.IntPart(), frac.IntPart(), m[3])
	if m[1] == "-" {
		c = c.Negative()
	}
	return c, nil
}

// Set implements flag.Value so that an amount can be given on the command
// line.
func (c *Coin) Set(raw string) error {
	val, err := ParseHumanFormat(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}
