package gconf

import (
	"reflect"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/x"
)

// OwnedConfig is a configuration naming the address allowed to change it.
type OwnedConfig interface {
	Configuration
	GetOwner() coffer.Address
}

// PatchMsg is a message changing a configuration. Fields of the patch left
// to their zero value keep their stored value.
type PatchMsg interface {
	coffer.Msg
	// ConfigPatch returns the patch, or nil if the message carries none.
	ConfigPatch() OwnedConfig
}

// UpdateHandler applies PatchMsg messages to the configuration of a single
// package. Only the owner named by the stored configuration may sign them,
// so a configuration without an owner never changes.
type UpdateHandler struct {
	pkg  string
	typ  reflect.Type
	auth x.Authenticator
}

var _ coffer.Handler = UpdateHandler{}

// NewUpdateConfigurationHandler returns a handler updating the
// configuration of pkg. conf is only used for its type.
func NewUpdateConfigurationHandler(pkg string, conf OwnedConfig, auth x.Authenticator) UpdateHandler {
	return UpdateHandler{pkg: pkg, typ: reflect.TypeOf(conf).Elem(), auth: auth}
}

func (h UpdateHandler) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &coffer.CheckResult{}, nil
}

func (h UpdateHandler) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &coffer.DeliverResult{}, nil
}

func (h UpdateHandler) update(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return err
	}
	pm, ok := msg.(PatchMsg)
	if !ok {
		return errors.WithType(errors.ErrMsg, msg)
	}

	conf := reflect.New(h.typ).Interface().(OwnedConfig)
	switch err := Load(db, h.pkg, conf); {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrUnauthorized, "%s configuration has no owner", h.pkg)
	case err != nil:
		return err
	}
	if owner := conf.GetOwner(); len(owner) == 0 || !h.auth.HasAddress(ctx, owner) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s configuration owner must sign", h.pkg)
	}

	if err := pm.Validate(); err != nil {
		return err
	}
	patch := pm.ConfigPatch()
	if patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	if err := merge(conf, patch); err != nil {
		return err
	}
	return Save(db, h.pkg, conf)
}

// merge copies every non zero field of patch into dst.
func merge(dst, patch OwnedConfig) error {
	d, p := reflect.ValueOf(dst), reflect.ValueOf(patch)
	if d.Type() != p.Type() {
		return errors.Wrapf(errors.ErrType, "cannot patch %T with %T", dst, patch)
	}
	d, p = d.Elem(), p.Elem()
	for i := 0; i < p.NumField(); i++ {
		if f := p.Field(i); !f.IsZero() && d.Field(i).CanSet() {
			d.Field(i).Set(f)
		}
	}
	return nil
}
