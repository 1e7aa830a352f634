package coffer

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/boardvault/coffer/crypto/bech32"
	"github.com/boardvault/coffer/errors"
)

// AddressLength is the size of every address. It must never change once a
// chain stores addresses.
var AddressLength = 20

// conditionFormat matches "<extension>/<type>/<data>". The data may be any
// binary value, including new lines.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition names who may authorize an action: a key, a vault or any other
// entity an extension can prove the consent of. Its address is where funds
// owned by that entity are kept.
type Condition []byte

// NewCondition returns the condition "<ext>/<typ>/<data>".
func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext+"/"+typ+"/"...)
	return append(c, data...)
}

// Parse splits the condition into extension, type and data.
func (c Condition) Parse() (string, string, []byte, error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

// Validate fails if the condition is not well formed.
func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

// Address returns the first AddressLength bytes of the sha256 hash of the
// condition.
func (c Condition) Address() Address {
	if c == nil {
		return nil
	}
	sum := sha256.Sum256(c)
	return Address(sum[:AddressLength])
}

func (c Condition) Equals(o Condition) bool {
	return bytes.Equal(c, o)
}

// String prints the data hex encoded, for example "sigs/ed25519/1A2B".
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("invalid condition %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

func (c Condition) MarshalJSON() ([]byte, error) {
	if c == nil {
		return json.Marshal("")
	}
	return json.Marshal(c.String())
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrapf(errors.ErrInput, "condition: %s", err)
	}
	cond, err := parseCondition(s)
	if err != nil {
		return err
	}
	*c = cond
	return nil
}

// parseCondition reverses Condition.String. An empty string is a nil
// condition.
func parseCondition(s string) (Condition, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, errors.Wrapf(errors.ErrInput, "condition %q: want ext/type/data", s)
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "condition data: %s", err)
	}
	return NewCondition(parts[0], parts[1], data), nil
}

// Address identifies an account. It is the digest of the Condition owning
// the account.
type Address []byte

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

// Validate fails unless the address has AddressLength bytes. The all zero
// address is rejected too: no condition hashes to it, so funds sent there
// could never be spent.
func (a Address) Validate() error {
	switch {
	case len(a) == 0:
		return errors.Wrap(errors.ErrEmpty, "address")
	case len(a) != AddressLength:
		return errors.Wrapf(errors.ErrInput, "address of %d bytes", len(a))
	case a.IsZero():
		return errors.Wrap(errors.ErrInput, "zero address")
	}
	return nil
}

// IsZero returns true if every byte of the address is zero.
func (a Address) IsZero() bool {
	for _, b := range a {
		if b != 0 {
			return false
		}
	}
	return true
}

// String returns the upper case hex form, the default format of
// ParseAddress.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns the address encoded with the human readable part hrp.
func (a Address) Bech32(hrp string) (string, error) {
	raw, err := bech32.Encode(hrp, a)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInput, "bech32: %s", err)
	}
	return string(raw), nil
}

// MarshalJSON writes the hex form instead of base64.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON accepts every format of ParseAddress.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrapf(errors.ErrInput, "address: %s", err)
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes an address. The format is selected by a prefix:
//
//	hex:4C4F...          hex, also used without a prefix
//	bech32:coffer1...    bech32 with any human readable part
//	cond:sigs/ed25519/.. the address of a condition
//
// An empty value is a nil address.
func ParseAddress(s string) (Address, error) {
	format, value := "hex", s
	if i := strings.Index(s, ":"); i >= 0 {
		format, value = s[:i], s[i+1:]
	}
	if value == "" {
		return nil, nil
	}

	var addr Address
	switch format {
	case "hex":
		raw, err := hex.DecodeString(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "hex address: %s", err)
		}
		addr = raw
	case "bech32":
		_, raw, err := bech32.Decode(value)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "bech32 address: %s", err)
		}
		addr = raw
	case "cond":
		c, err := parseCondition(value)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		addr = c.Address()
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown address format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
