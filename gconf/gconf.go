package gconf

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/gogo/protobuf/proto"
)

// ReadStore is the part of coffer.ReadOnlyKVStore a configuration is loaded
// from.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of coffer.KVStore a configuration is saved to.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Configuration holds the settings of one extension.
type Configuration interface {
	proto.Message
	Validate() error
}

func dbKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg.
func Save(db Store, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := proto.Marshal(conf)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "%s configuration: %s", pkg, err)
	}
	return db.Set(dbKey(pkg), raw)
}

// Load reads the configuration of pkg into dst. It returns ErrNotFound if
// the configuration was never saved.
func Load(db ReadStore, pkg string, dst Configuration) error {
	raw, err := db.Get(dbKey(pkg))
	switch {
	case err != nil:
		return err
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := proto.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrModel, "%s configuration: %s", pkg, err)
	}
	return nil
}

// InitConfig saves the genesis configuration of pkg, found at conf.<pkg> in
// the app state. conf receives the decoded value.
func InitConfig(db Store, opts coffer.Options, pkg string, conf Configuration) error {
	var sections coffer.Options
	if err := opts.ReadOptions("conf", &sections); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis conf: %s", err)
	}
	if len(sections[pkg]) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no %s configuration", pkg)
	}
	if err := sections.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %s configuration: %s", pkg, err)
	}
	return Save(db, pkg, conf)
}
