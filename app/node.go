package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Node is the ABCI application of a coffer chain. Transactions are decoded
// and passed to a single handler, usually a decorated Router. Queries are
// answered from the last committed state.
//
// Failures of Info, InitChain, Commit and the other block level calls cannot
// be reported to tendermint, so they panic and stop the node.
type Node struct {
	name   string
	logger log.Logger
	debug  bool

	state   *state
	decoder coffer.TxDecoder
	handler coffer.Handler
	queries coffer.QueryRouter
	genesis coffer.Initializer

	chainID string
	// baseCtx holds what is valid for the lifetime of the node.
	baseCtx coffer.Context
	// blockCtx extends baseCtx with the header of the current block.
	blockCtx coffer.Context
}

var _ abci.Application = (*Node)(nil)

// Option configures a Node.
type Option func(*Node)

// WithLogger sets the logger of the node and of every handler context.
func WithLogger(logger log.Logger) Option {
	return func(n *Node) { n.logger = logger }
}

// WithDebug makes error responses carry the full error with its stack
// trace. Never enable it on a validator: responses must be the same on
// every node.
func WithDebug(debug bool) Option {
	return func(n *Node) { n.debug = debug }
}

// WithGenesis sets the initializer loading the app_state of the genesis
// file.
func WithGenesis(ini coffer.Initializer) Option {
	return func(n *Node) { n.genesis = ini }
}

// WithQueries sets the query router.
func WithQueries(qr coffer.QueryRouter) Option {
	return func(n *Node) { n.queries = qr }
}

// NewNode returns a node serving the latest version of the store.
func NewNode(ctx coffer.Context, name string, kv coffer.CommitKVStore, decoder coffer.TxDecoder, h coffer.Handler, opts ...Option) (*Node, error) {
	st, err := loadState(kv)
	if err != nil {
		return nil, err
	}
	n := &Node{
		name:    name,
		logger:  log.NewNopLogger(),
		state:   st,
		decoder: decoder,
		handler: h,
		queries: coffer.NewQueryRouter(),
	}
	for _, o := range opts {
		o(n)
	}

	n.baseCtx = coffer.WithLogger(ctx, n.logger)
	if n.chainID, err = loadChainID(st.deliver); err != nil {
		return nil, err
	}
	if n.chainID != "" {
		n.baseCtx = coffer.WithChainID(n.baseCtx, n.chainID)
	}
	latest, err := st.latest()
	if err != nil {
		return nil, err
	}
	n.blockCtx = coffer.WithHeight(n.baseCtx, latest.Version)
	return n, nil
}

// ChainID returns the chain ID, or an empty string before the genesis was
// loaded.
func (n *Node) ChainID() string {
	return n.chainID
}

// BlockContext returns the context handlers of the current block run with.
func (n *Node) BlockContext() coffer.Context {
	return n.blockCtx
}

// DeliverStore returns the state transactions of the current block are
// delivered to.
func (n *Node) DeliverStore() coffer.CacheableKVStore {
	return n.state.deliver
}

// CheckStore returns the state mempool checks run against.
func (n *Node) CheckStore() coffer.CacheableKVStore {
	return n.state.check
}

// Info returns the last committed height and app hash, so that tendermint
// can replay the blocks the node is missing.
func (n *Node) Info(abci.RequestInfo) abci.ResponseInfo {
	latest, err := n.state.latest()
	if err != nil {
		panic(err)
	}
	n.logger.Info("info synced", "height", latest.Version, "hash", fmt.Sprintf("%X", latest.Hash))
	return abci.ResponseInfo{
		Data:             n.name,
		Version:          coffer.Version(),
		LastBlockHeight:  latest.Version,
		LastBlockAppHash: latest.Hash,
	}
}

func (n *Node) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// InitChain stores the chain ID and loads the app_state of the genesis
// file. It is called only once in the lifetime of a chain.
func (n *Node) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := n.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (n *Node) loadGenesis(chainID string, appState []byte) error {
	if n.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis of %s already loaded", n.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrState, "app_state missing in genesis file")
	}
	var opts coffer.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := saveChainID(n.state.deliver, chainID); err != nil {
		return err
	}
	n.chainID = chainID
	n.baseCtx = coffer.WithChainID(n.baseCtx, chainID)
	n.blockCtx = coffer.WithChainID(n.blockCtx, chainID)
	if n.genesis == nil {
		return nil
	}
	return n.genesis.FromGenesis(opts, n.state.deliver)
}

// BeginBlock makes the header of the new block available to handlers.
func (n *Node) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := coffer.WithHeader(n.baseCtx, req.Header)
	n.blockCtx = coffer.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

// EndBlock never changes the validator set.
func (n *Node) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the block and returns the new app hash.
func (n *Node) Commit() abci.ResponseCommit {
	id, err := n.state.commit()
	if err != nil {
		panic(err)
	}
	n.logger.Debug("commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// CheckTx runs the handler against the mempool state.
func (n *Node) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := n.decode(raw)
	if err != nil {
		return checkResponse(nil, err, n.debug)
	}
	ctx := coffer.WithLogInfo(n.blockCtx, "call", "check_tx", "path", coffer.GetPath(tx))
	res, err := n.handler.Check(ctx, n.state.check, tx)
	return checkResponse(res, err, n.debug)
}

// DeliverTx runs the handler against the state of the current block.
func (n *Node) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := n.decode(raw)
	if err != nil {
		return deliverResponse(nil, err, n.debug)
	}
	ctx := coffer.WithLogInfo(n.blockCtx, "call", "deliver_tx", "path", coffer.GetPath(tx))
	res, err := n.handler.Deliver(ctx, n.state.deliver, tx)
	return deliverResponse(res, err, n.debug)
}

// decode turns a decoder panic on malformed input into an error.
func (n *Node) decode(raw []byte) (tx coffer.Tx, err error) {
	defer errors.Recover(&err)
	return n.decoder(raw)
}

// Query reads from the last committed state. The path selects a registered
// query handler and may end with "?<mod>", for example "/proposals?prefix".
// Keys and values of the response are ResultSets of the same length.
func (n *Node) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.Index(path, "?"); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	qh := n.queries.Handler(path)
	if qh == nil {
		return queryResponse(errors.Wrapf(errors.ErrNotFound, "query path %q", req.Path), n.debug)
	}

	latest, err := n.state.latest()
	if err != nil {
		return queryResponse(err, n.debug)
	}
	models, err := qh.Query(n.state.committed.CacheWrap(), mod, req.Data)
	if err != nil {
		return queryResponse(err, n.debug)
	}
	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return queryResponse(err, n.debug)
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return queryResponse(err, n.debug)
	}
	return abci.ResponseQuery{Height: latest.Version, Key: keys, Value: values}
}
