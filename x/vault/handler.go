package vault

import (
	"reflect"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/gconf"
	"github.com/boardvault/coffer/orm"
	"github.com/boardvault/coffer/x"
	"github.com/boardvault/coffer/x/cash"
)

const (
	createVaultCost int64 = 300
	submitCost      int64 = 100
	approveCost     int64 = 50
	executeCost     int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r coffer.Registry, auth x.Authenticator, bank cash.Controller) {
	vaults := NewVaultBucket()
	proposals := NewProposalBucket()

	r.Handle(pathCreateVaultMsg, CreateVaultHandler{auth: auth, vaults: vaults})
	r.Handle(pathSubmitTransactionMsg, SubmitTransactionHandler{auth: auth, vaults: vaults, proposals: proposals})
	r.Handle(pathApproveTransactionMsg, ApproveTransactionHandler{auth: auth, vaults: vaults, proposals: proposals, bank: bank})
	r.Handle(pathExecuteTransactionMsg, ExecuteTransactionHandler{auth: auth, vaults: vaults, proposals: proposals, bank: bank})
	r.Handle(pathUpdateConfigurationMsg, NewConfigHandler(auth))
}

// RegisterQuery registers vaults as "/vaults" (and "/vaults/members") and
// proposals as "/proposals".
func RegisterQuery(qr coffer.QueryRouter) {
	NewVaultBucket().Register("vaults", qr)
	NewProposalBucket().Register("proposals", qr)
}

// NewConfigHandler returns a handler of the vault configuration updates.
func NewConfigHandler(auth x.Authenticator) coffer.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(confPkg, &conf, auth)
}

// CreateVaultHandler creates a new vault. Anyone can create a vault, the
// creator does not have to be a board member.
type CreateVaultHandler struct {
	auth   x.Authenticator
	vaults orm.ModelBucket
}

var _ coffer.Handler = CreateVaultHandler{}

func (h CreateVaultHandler) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &coffer.CheckResult{GasAllocated: createVaultCost}, nil
}

// Deliver stores the vault. The vault ID is returned as the result data.
func (h CreateVaultHandler) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	vault := &Vault{
		Members: msg.Members,
		Name:    msg.Name,
	}
	key, err := h.vaults.Put(db, nil, vault)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store vault")
	}
	return &coffer.DeliverResult{
		Data: key,
		Tags: vaultCreatedTags(key),
	}, nil
}

func (h CreateVaultHandler) validate(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*CreateVaultMsg, error) {
	var msg CreateVaultMsg
	if err := coffer.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if n := len(msg.Members); n > int(conf.MaxMembers) {
		return nil, errors.Field("Members", errors.ErrInput, "%d members, at most %d allowed", n, conf.MaxMembers)
	}
	return &msg, nil
}

// SubmitTransactionHandler stores a new proposal. No funds are moved.
type SubmitTransactionHandler struct {
	auth      x.Authenticator
	vaults    orm.ModelBucket
	proposals orm.ModelBucket
}

var _ coffer.Handler = SubmitTransactionHandler{}

func (h SubmitTransactionHandler) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &coffer.CheckResult{GasAllocated: submitCost}, nil
}

// Deliver stores the proposal under the next ID of the vault ledger. The
// proposal ID is returned as the result data.
func (h SubmitTransactionHandler) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	seq := proposalSeq(msg.VaultID)
	id, err := seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire proposal ID")
	}
	p := &Proposal{
		VaultID:     msg.VaultID,
		ID:          id,
		Beneficiary: msg.Beneficiary,
		Amount:      msg.Amount,
	}
	if _, err := h.proposals.Put(db, proposalKey(msg.VaultID, id), p); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	return &coffer.DeliverResult{
		Data: id,
		Tags: submittedTags(p),
	}, nil
}

func (h SubmitTransactionHandler) validate(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*SubmitTransactionMsg, error) {
	raw, err := boardMsg(tx)
	if err != nil {
		return nil, err
	}
	msg, ok := raw.(*SubmitTransactionMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, raw)
	}
	if _, _, err := boardMember(ctx, db, h.auth, h.vaults, msg.VaultID); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	ticker, err := cash.NativeTicker(db)
	if err != nil {
		return nil, err
	}
	if msg.Amount.Ticker != ticker {
		return nil, errors.Field("Amount", errors.ErrCurrency, "only %s can be transferred", ticker)
	}
	return msg, nil
}

// ApproveTransactionHandler records an approval. The approval that
// completes the board executes the proposal.
type ApproveTransactionHandler struct {
	auth      x.Authenticator
	vaults    orm.ModelBucket
	proposals orm.ModelBucket
	bank      cash.Controller
}

var _ coffer.Handler = ApproveTransactionHandler{}

func (h ApproveTransactionHandler) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &coffer.CheckResult{GasAllocated: approveCost}, nil
}

// Deliver appends the signer to the approvals. When all board members
// approved and the vault holds enough funds, the transfer is executed.
// Otherwise the execution is deferred until an explicit execute.
func (h ApproveTransactionHandler) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	vault, p, approver, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	p.ApprovedBy = append(p.ApprovedBy, approver)
	tags := approvedTags(p, approver)

	if p.NoOfApproval() == vault.TotalSigners() {
		ok, err := funded(db, h.bank, p)
		if err != nil {
			return nil, err
		}
		if ok {
			if err := settle(db, h.bank, p); err != nil {
				return nil, err
			}
			tags = append(tags, executedTags(p)...)
		} else {
			coffer.GetLogger(ctx).Info("vault execution deferred",
				"vault", FormatID(p.VaultID), "proposal", FormatID(p.ID))
			tags = append(tags, deferredTags(p)...)
		}
	}

	if _, err := h.proposals.Put(db, proposalKey(p.VaultID, p.ID), p); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	return &coffer.DeliverResult{Tags: tags}, nil
}

func (h ApproveTransactionHandler) validate(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*Vault, *Proposal, coffer.Address, error) {
	raw, err := boardMsg(tx)
	if err != nil {
		return nil, nil, nil, err
	}
	msg, ok := raw.(*ApproveTransactionMsg)
	if !ok {
		return nil, nil, nil, errors.WithType(errors.ErrMsg, raw)
	}
	vault, approver, err := boardMember(ctx, db, h.auth, h.vaults, msg.VaultID)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, nil, errors.Wrap(err, "invalid message")
	}
	p, err := loadProposal(db, h.proposals, msg.VaultID, msg.ProposalID)
	if err != nil {
		return nil, nil, nil, err
	}
	if p.Settled {
		return nil, nil, nil, ErrAlreadySettled
	}
	if p.HasApproved(approver) {
		return nil, nil, nil, ErrAlreadySigned
	}
	return vault, p, approver, nil
}

// ExecuteTransactionHandler releases the funds of a proposal that all board
// members approved, but that could not be executed at the time of the last
// approval.
type ExecuteTransactionHandler struct {
	auth      x.Authenticator
	vaults    orm.ModelBucket
	proposals orm.ModelBucket
	bank      cash.Controller
}

var _ coffer.Handler = ExecuteTransactionHandler{}

func (h ExecuteTransactionHandler) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &coffer.CheckResult{GasAllocated: executeCost}, nil
}

func (h ExecuteTransactionHandler) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := settle(db, h.bank, p); err != nil {
		return nil, err
	}
	if _, err := h.proposals.Put(db, proposalKey(p.VaultID, p.ID), p); err != nil {
		return nil, errors.Wrap(err, "cannot store proposal")
	}
	return &coffer.DeliverResult{Tags: executedTags(p)}, nil
}

func (h ExecuteTransactionHandler) validate(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*Proposal, error) {
	raw, err := boardMsg(tx)
	if err != nil {
		return nil, err
	}
	msg, ok := raw.(*ExecuteTransactionMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, raw)
	}
	vault, _, err := boardMember(ctx, db, h.auth, h.vaults, msg.VaultID)
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	p, err := loadProposal(db, h.proposals, msg.VaultID, msg.ProposalID)
	if err != nil {
		return nil, err
	}
	if p.Settled {
		return nil, ErrAlreadySettled
	}
	if p.NoOfApproval() < vault.TotalSigners() {
		return nil, ErrInsufficientApprovals
	}
	ok, err = funded(db, h.bank, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Wrapf(errors.ErrAmount, "vault cannot cover %s", p.Amount)
	}
	return p, nil
}

// boardMsg returns the message of a transaction addressed to a vault board
// without validating it. Board handlers validate the message only after the
// signer proved membership, so that a stranger always gets ErrUnauthorized.
func boardMsg(tx coffer.Tx) (coffer.Msg, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if v := reflect.ValueOf(msg); msg == nil || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return nil, errors.Wrap(errors.ErrMsg, "transaction carries no message")
	}
	return msg, nil
}

// boardMember loads the vault and returns the address of a transaction
// signer that is a member of its board.
func boardMember(ctx coffer.Context, db coffer.ReadOnlyKVStore, auth x.Authenticator, vaults orm.ModelBucket, vaultID []byte) (*Vault, coffer.Address, error) {
	if err := orm.ValidateSequence(vaultID); err != nil {
		return nil, nil, errors.Field("VaultID", err, "no such vault")
	}
	var vault Vault
	if err := vaults.One(db, vaultID, &vault); err != nil {
		return nil, nil, errors.Wrapf(err, "vault %s", FormatID(vaultID))
	}
	member := x.AnySigner(ctx, auth, vault.Members)
	if member == nil {
		return nil, nil, ErrUnauthorized
	}
	return &vault, member, nil
}

func loadProposal(db coffer.ReadOnlyKVStore, proposals orm.ModelBucket, vaultID, proposalID []byte) (*Proposal, error) {
	var p Proposal
	switch err := proposals.One(db, proposalKey(vaultID, proposalID), &p); {
	case errors.ErrNotFound.Is(err):
		return nil, ErrUnknownProposal
	case err != nil:
		return nil, errors.Wrap(err, "cannot load proposal")
	}
	return &p, nil
}

// funded returns true if the vault holds enough funds to execute the
// proposal.
func funded(db coffer.ReadOnlyKVStore, bank cash.Balancer, p *Proposal) (bool, error) {
	coins, err := bank.Balance(db, Address(p.VaultID))
	switch {
	case errors.ErrNotFound.Is(err):
		return false, nil
	case err != nil:
		return false, errors.Wrap(err, "vault balance")
	}
	return coins.Contains(*p.Amount), nil
}

// settle moves the funds to the beneficiary and marks the proposal as
// settled. The caller must save the proposal.
func settle(db coffer.KVStore, bank cash.CoinMover, p *Proposal) error {
	if err := bank.MoveCoins(db, Address(p.VaultID), p.Beneficiary, *p.Amount); err != nil {
		return errors.Wrap(err, "cannot release funds")
	}
	p.Settled = true
	return nil
}
