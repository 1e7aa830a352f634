package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/boardvault/coffer"
	cofferd "github.com/boardvault/coffer/cmd/cofferd/app"
	"github.com/boardvault/coffer/commands"
	"github.com/boardvault/coffer/commands/server"
	"github.com/spf13/pflag"
	"github.com/tendermint/tendermint/libs/log"
)

type command struct {
	usage string
	run   func(logger log.Logger, home string, args []string) error
}

var commandSet = map[string]command{
	"init": {
		usage: "write the genesis app_state [-board N] [-seed HEX] [ticker] [address]",
		run: func(logger log.Logger, home string, args []string) error {
			return server.InitCmd(cofferd.GenInitOptions, logger, home, args)
		},
	},
	"start": {
		usage: "run the abci server [-bind ADDR] [-debug]",
		run: func(logger log.Logger, home string, args []string) error {
			return server.StartCmd(cofferd.GenerateApp, logger, home, args)
		},
	},
	"getblock": {
		usage: "print a block of blockstore.db [-height H]",
		run:   server.GetBlockCmd,
	},
	"keys": {
		usage: "generate a key pair",
		run: func(log.Logger, string, []string) error {
			_, keys, err := cofferd.GenerateCoinKey()
			if err == nil {
				fmt.Println(keys)
			}
			return err
		},
	},
	"validate": {
		usage: "load genesis files without starting a node",
		run: func(_ log.Logger, _ string, args []string) error {
			return server.ValidateGenesis(cofferd.Initializers(), args)
		},
	},
	"testgen": {
		usage: "write example encodings into a directory",
		run: func(_ log.Logger, _ string, args []string) error {
			return commands.TestGenCmd(cofferd.Examples(), args)
		},
	},
	"version": {
		usage: "print the node version",
		run: func(log.Logger, string, []string) error {
			fmt.Println(coffer.Version())
			return nil
		},
	},
}

func usage() {
	fmt.Fprintln(os.Stderr, "cofferd: custodial multisig vault node")
	fmt.Fprintln(os.Stderr)
	names := make([]string, 0, len(commandSet))
	for name := range commandSet {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-9s %s\n", name, commandSet[name].usage)
	}
	fmt.Fprintln(os.Stderr)
	pflag.PrintDefaults()
}

func main() {
	home := pflag.String("home", filepath.Join(os.ExpandEnv("$HOME"), ".coffer"), "node data directory")
	pflag.CommandLine.SetInterspersed(false)
	pflag.Usage = usage
	pflag.Parse()

	if pflag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commandSet[pflag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", pflag.Arg(0))
		usage()
		os.Exit(2)
	}

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "coffer")
	if err := cmd.run(logger, *home, pflag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %+v\n", pflag.Arg(0), err)
		os.Exit(1)
	}
}
