package app

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/crypto"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/x/cash"
	"github.com/boardvault/coffer/x/vault"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	defaultTicker     = "CASH"
	defaultMaxMembers = 32
	seedSize          = 32
	// addressHRP is the bech32 prefix of printed addresses.
	addressHRP = "coffer"
	// genesisSupply is the amount of the native currency the genesis
	// account holds.
	genesisSupply = 123456789
)

// genesisState is the app_state written by the init command.
type genesisState struct {
	Conf  genesisConf           `json:"conf"`
	Cash  []cash.GenesisAccount `json:"cash"`
	Vault []vault.GenesisVault  `json:"vault"`
}

type genesisConf struct {
	Cash  *cash.Configuration  `json:"cash"`
	Vault *vault.Configuration `json:"vault"`
}

// GenInitOptions will produce the app_state for a new chain: one rich
// account, the chain configuration and a board vault.
//
//	init [-board N] [-seed HEX] [ticker] [address]
//
// The board members are the first N accounts derived from the seed. A
// random seed is generated and printed if none is given. The rich account
// defaults to the first board member.
func GenInitOptions(args []string) (json.RawMessage, error) {
	return genInitOptions(args, os.Stdout)
}

func genInitOptions(args []string, out io.Writer) (json.RawMessage, error) {
	var (
		boardSize int
		seedHex   string
	)
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(ioutil.Discard)
	fs.IntVar(&boardSize, "board", 1, "number of board members of the genesis vault")
	fs.StringVar(&seedHex, "seed", "", "hex encoded seed the board keys are derived from")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	rest := fs.Args()

	ticker := defaultTicker
	if len(rest) > 0 {
		ticker = rest[0]
		if !coin.IsCC(ticker) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", ticker)
		}
	}
	if boardSize < 1 {
		return nil, errors.Wrap(errors.ErrInput, "board must have at least one member")
	}

	seed, err := loadSeed(seedHex)
	if err != nil {
		return nil, err
	}
	if seedHex == "" {
		fmt.Fprintf(out, "board seed: %X\n", seed)
	}
	keys, err := crypto.DeriveAccounts(seed, boardSize)
	if err != nil {
		return nil, errors.Wrap(err, "derive board")
	}
	members := make([]coffer.Address, len(keys))
	for i, k := range keys {
		members[i] = k.PublicKey().Address()
		if seedHex != "" {
			continue
		}
		b32, err := members[i].Bech32(addressHRP)
		if err != nil {
			return nil, errors.Wrap(err, "board address")
		}
		fmt.Fprintf(out, "member %d: %s\n", i, b32)
	}

	rich := members[0]
	if len(rest) > 1 {
		rich, err = coffer.ParseAddress(rest[1])
		if err != nil {
			return nil, err
		}
	}

	maxMembers := defaultMaxMembers
	if boardSize > maxMembers {
		maxMembers = boardSize
	}
	state := genesisState{
		Conf: genesisConf{
			Cash:  &cash.Configuration{Ticker: ticker},
			Vault: &vault.Configuration{MaxMembers: int32(maxMembers)},
		},
		Cash: []cash.GenesisAccount{
			{Address: rich, Coins: coin.Coins{coin.NewCoinp(genesisSupply, 0, ticker)}},
		},
		Vault: []vault.GenesisVault{
			{Name: "board", Members: members},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return raw, nil
}

func loadSeed(seedHex string) ([]byte, error) {
	if seedHex == "" {
		return cmn.RandBytes(seedSize), nil
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "seed: %s", err)
	}
	return seed, nil
}

// GenerateApp opens the node database under home, or an in memory one
// when home is empty.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "coffer.db")
	}
	node, err := newNode(Stack(), dbPath, logger, debug)
	if err != nil {
		return nil, err
	}
	return node, nil
}

type output struct {
	Address coffer.Address     `json:"address"`
	Pubkey  *crypto.PublicKey  `json:"pub_key"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a fresh public key,
// along with a json representation of the keys.
// You can give coins to this address or make it a board member.
func GenerateCoinKey() (coffer.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Address: addr, Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return addr, string(keys), nil
}
