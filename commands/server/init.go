package server

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/boardvault/coffer/errors"
	"github.com/tendermint/tendermint/config"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
	"github.com/tendermint/tendermint/p2p"
	"github.com/tendermint/tendermint/privval"
	"github.com/tendermint/tendermint/types"
	tmtime "github.com/tendermint/tendermint/types/time"
)

const appStateKey = "app_state"

// GenOptions parses the command line arguments and returns the
// application specific app_state for the genesis file.
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd prepares the home directory for a node: it creates the
// tendermint validator key, node key and genesis file when they are
// missing, and then writes the app_state produced by gen into the
// genesis file.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	cfg := config.DefaultConfig().SetRoot(home)
	if err := initTendermintFiles(cfg, logger); err != nil {
		return err
	}
	if gen == nil {
		return nil
	}

	options, err := gen(args)
	if err != nil {
		return errors.Wrap(err, "cannot generate app state")
	}
	genFile := cfg.GenesisFile()
	if err := addGenesisOptions(genFile, options); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

func initTendermintFiles(cfg *config.Config, logger log.Logger) error {
	config.EnsureRoot(cfg.RootDir)
	if err := cmn.EnsureDir(filepath.Dir(cfg.PrivValidatorStateFile()), 0700); err != nil {
		return errors.Wrap(err, "data directory")
	}

	pv := privval.LoadOrGenFilePV(cfg.PrivValidatorKeyFile(), cfg.PrivValidatorStateFile())
	logger.Info("Private validator", "key", cfg.PrivValidatorKeyFile())

	if _, err := p2p.LoadOrGenNodeKey(cfg.NodeKeyFile()); err != nil {
		return errors.Wrap(err, "node key")
	}

	genFile := cfg.GenesisFile()
	if cmn.FileExists(genFile) {
		logger.Info("Found genesis file", "path", genFile)
		return nil
	}

	pubKey := pv.GetPubKey()
	genDoc := types.GenesisDoc{
		ChainID:         fmt.Sprintf("coffer-%v", cmn.RandStr(6)),
		GenesisTime:     tmtime.Now(),
		ConsensusParams: types.DefaultConsensusParams(),
		Validators: []types.GenesisValidator{{
			Address: pubKey.Address(),
			PubKey:  pubKey,
			Power:   10,
		}},
	}
	if err := genDoc.SaveAs(genFile); err != nil {
		return errors.Wrap(err, "cannot save genesis")
	}
	logger.Info("Generated genesis file", "path", genFile)
	return nil
}

// GenesisDoc holds the genesis file as raw json. We only touch the
// app_state and keep everything tendermint wrote as it is.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis")
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, out, 0600)
}
