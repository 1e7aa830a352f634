package app

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
)

// state is the committed store of the node with two caches on top of it.
// Transactions of the block being built are delivered to one, mempool checks
// run against the other. Both are dropped when the block is committed.
type state struct {
	committed coffer.CommitKVStore
	deliver   coffer.KVCacheWrap
	check     coffer.KVCacheWrap
}

func loadState(kv coffer.CommitKVStore) (*state, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	s := &state{committed: kv}
	s.reset()
	return s, nil
}

func (s *state) reset() {
	s.deliver = s.committed.CacheWrap()
	s.check = s.committed.CacheWrap()
}

// commit persists what was delivered in the current block. Pending mempool
// checks are discarded because they ran against the previous state.
func (s *state) commit() (coffer.CommitID, error) {
	if err := s.deliver.Write(); err != nil {
		return coffer.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	s.check.Discard()
	id, err := s.committed.Commit()
	if err != nil {
		return id, err
	}
	s.reset()
	return id, nil
}

func (s *state) latest() (coffer.CommitID, error) {
	return s.committed.LatestVersion()
}

// chainIDKey lives outside of every bucket namespace.
const chainIDKey = "_coffer:chain_id"

func loadChainID(db coffer.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain ID once. A chain never changes its ID.
func saveChainID(db coffer.KVStore, chainID string) error {
	if !coffer.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	switch prev, err := loadChainID(db); {
	case err != nil:
		return err
	case prev != "":
		return errors.Wrapf(errors.ErrState, "chain id already set to %q", prev)
	}
	return db.Set([]byte(chainIDKey), []byte(chainID))
}
