package server

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/boardvault/coffer/errors"
	amino "github.com/tendermint/go-amino"
	"github.com/tendermint/tendermint/blockchain"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

const flagHeight = "height"

var cdc = amino.NewCodec()

func init() {
	ctypes.RegisterAmino(cdc)
}

func parseGetBlockArgs(args []string) (string, int64, error) {
	if len(args) == 0 {
		return "", 0, errors.Wrap(errors.ErrInput, "usage: getblock <path to blockstore.db> [-height=H]")
	}
	var height int64
	getBlockFlags := flag.NewFlagSet("getblock", flag.ContinueOnError)
	getBlockFlags.Int64Var(&height, flagHeight, 0, "height of the block to extract (default latest)")
	if err := getBlockFlags.Parse(args[1:]); err != nil {
		return "", 0, errors.Wrap(errors.ErrInput, err.Error())
	}
	if height < 0 {
		return "", 0, errors.Wrap(errors.ErrInput, "negative height")
	}
	return args[0], height, nil
}

// GetBlockCmd prints a block from a tendermint blockstore.db as json.
// Without -height the latest block is printed.
func GetBlockCmd(logger log.Logger, home string, args []string) error {
	dbPath, height, err := parseGetBlockArgs(args)
	if err != nil {
		return err
	}
	db, err := openDb(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	store := blockchain.NewBlockStore(db)
	if height == 0 {
		height = store.Height()
	}
	logger.Debug("Loading block", "height", height)
	return printBlock(os.Stdout, store, height)
}

// openDb opens a goleveldb database given the path of its .db directory.
func openDb(path string) (dbm.DB, error) {
	path = filepath.Clean(path)
	if !strings.HasSuffix(path, ".db") {
		return nil, errors.Wrap(errors.ErrInput, "database directory must end with .db")
	}
	dir, name := filepath.Split(strings.TrimSuffix(path, ".db"))
	if dir == "" {
		dir = "."
	}
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open database")
	}
	return db, nil
}

func printBlock(out io.Writer, store *blockchain.BlockStore, height int64) error {
	block := store.LoadBlock(height)
	if block == nil {
		return errors.Wrapf(errors.ErrNotFound, "no block for height %d", height)
	}
	js, err := cdc.MarshalJSONIndent(block, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(js))
	return err
}
