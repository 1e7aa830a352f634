package server

import (
	"flag"

	"github.com/boardvault/coffer/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

type startOptions struct {
	bind  string
	debug bool
}

func parseFlags(args []string) (startOptions, error) {
	var opts startOptions
	startFlags := flag.NewFlagSet("start", flag.ContinueOnError)
	startFlags.StringVar(&opts.bind, flagBind, "tcp://localhost:26658", "address server listens on")
	startFlags.BoolVar(&opts.debug, flagDebug, false, "call stack returned on error")
	err := startFlags.Parse(args)
	return opts, err
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(string, log.Logger, bool) (abci.Application, error)

// StartCmd builds the application in the home directory and serves it
// over an ABCI socket until the process receives a termination signal.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	app, err := gen(home, logger, opts.debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", opts.bind)

	svr, err := server.NewServer(opts.bind, "socket", app)
	if err != nil {
		return errors.Wrap(err, "cannot create listener")
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrap(err, "cannot start server")
	}

	cmn.TrapSignal(logger, func() {
		svr.Stop()
	})
	// TrapSignal only registers the handler.
	select {}
}
