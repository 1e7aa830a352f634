package app

import (
	"fmt"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// deliverResponse converts the outcome of a handler. Unless debug is set,
// errors that are not registered are reported without details, because the
// log ends up in the block and must be the same on every node.
func deliverResponse(res *coffer.DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: fmt.Sprintf("cannot deliver tx: %s", log)}
	}
	return abci.ResponseDeliverTx{
		Data: res.Data,
		Log:  res.Log,
		Tags: res.Tags,
	}
}

func checkResponse(res *coffer.CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := errors.ABCIInfo(err, debug)
		return abci.ResponseCheckTx{Code: code, Log: fmt.Sprintf("cannot check tx: %s", log)}
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
		GasUsed:   res.GasPayment,
	}
}

func queryResponse(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{Code: code, Log: log}
}
