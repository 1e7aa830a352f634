package handlers

import (
	"net/http"
	"strconv"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/cmd/cofferapi/client"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/errors"
	"github.com/boardvault/coffer/orm"
	"github.com/boardvault/coffer/x/cash"
	"github.com/boardvault/coffer/x/vault"
	"github.com/gogo/protobuf/proto"
	"github.com/gorilla/mux"
	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// API serves the read only view of the vaults stored on chain.
type API struct {
	tm  client.Tendermint
	log *zap.Logger
	// settled proposals never change, so they are served from memory
	settled *lru.Cache
	metrics *metrics
}

// NewRouter returns the HTTP handler of all API endpoints. Metrics are
// registered in reg and exposed under /metrics.
func NewRouter(tm client.Tendermint, log *zap.Logger, cacheSize int, reg *prometheus.Registry) (http.Handler, error) {
	settled, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	api := &API{
		tm:      tm,
		log:     log,
		settled: settled,
		metrics: newMetrics(reg),
	}

	r := mux.NewRouter()
	r.Use(withRequestID(log), api.metrics.middleware)
	r.Methods("GET").Path("/info").HandlerFunc(api.info)
	r.Methods("GET").Path("/vaults/{id:[0-9]+}").HandlerFunc(api.vault)
	r.Methods("GET").Path("/vaults/{id:[0-9]+}/proposals").HandlerFunc(api.proposals)
	r.Methods("GET").Path("/vaults/{id:[0-9]+}/proposals/{pid:[0-9]+}").HandlerFunc(api.proposal)
	r.Methods("GET").Path("/vaults/{id:[0-9]+}/members/{address}").HandlerFunc(api.member)
	r.Methods("GET").Path("/wallets/{address}").HandlerFunc(api.wallet)
	r.Methods("GET").Path("/metrics").Handler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSONErr(log, w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	return r, nil
}

func (a *API) info(w http.ResponseWriter, r *http.Request) {
	JSONResp(a.log, w, http.StatusOK, struct {
		Version string `json:"version"`
	}{
		Version: coffer.Version(),
	})
}

// VaultView is the JSON representation of a vault.
type VaultView struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name,omitempty"`
	Members []coffer.Address `json:"members"`
	Address coffer.Address   `json:"address"`
	Balance coin.Coins       `json:"balance"`
}

func (a *API) vault(w http.ResponseWriter, r *http.Request) {
	id, ok := a.vaultID(w, r)
	if !ok {
		return
	}
	var v vault.Vault
	if err := client.ABCIKeyQuery(r.Context(), a.tm, "/vaults", id, &v); err != nil {
		a.fail(w, r, err)
		return
	}
	balance, err := a.balance(r, vault.Address(id))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	JSONResp(a.log, w, http.StatusOK, VaultView{
		ID:      decodeSequence(id),
		Name:    v.Name,
		Members: v.Members,
		Address: vault.Address(id),
		Balance: balance,
	})
}

// ProposalView is the JSON representation of a proposal.
type ProposalView struct {
	ID          int64            `json:"id"`
	VaultID     int64            `json:"vault_id"`
	Beneficiary coffer.Address   `json:"beneficiary"`
	Amount      *coin.Coin       `json:"amount"`
	Approvals   int              `json:"approvals"`
	ApprovedBy  []coffer.Address `json:"approved_by"`
	Settled     bool             `json:"settled"`
}

func newProposalView(p *vault.Proposal) ProposalView {
	return ProposalView{
		ID:          decodeSequence(p.ID),
		VaultID:     decodeSequence(p.VaultID),
		Beneficiary: p.Beneficiary,
		Amount:      p.Amount,
		Approvals:   p.NoOfApproval(),
		ApprovedBy:  p.ApprovedBy,
		Settled:     p.Settled,
	}
}

func (a *API) proposals(w http.ResponseWriter, r *http.Request) {
	id, ok := a.vaultID(w, r)
	if !ok {
		return
	}
	models, err := client.ABCIQuery(r.Context(), a.tm, "/proposals?"+coffer.PrefixQueryMod, id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	views := make([]ProposalView, 0, len(models))
	for _, m := range models {
		var p vault.Proposal
		if err := proto.Unmarshal(m.Value, &p); err != nil {
			a.fail(w, r, errors.Wrap(errors.ErrModel, err.Error()))
			return
		}
		views = append(views, newProposalView(&p))
	}
	JSONResp(a.log, w, http.StatusOK, struct {
		Objects []ProposalView `json:"objects"`
	}{
		Objects: views,
	})
}

func (a *API) proposal(w http.ResponseWriter, r *http.Request) {
	id, ok := a.vaultID(w, r)
	if !ok {
		return
	}
	pid, err := strconv.ParseInt(mux.Vars(r)["pid"], 10, 64)
	if err != nil {
		JSONErr(a.log, w, http.StatusBadRequest, "proposal id must be a number")
		return
	}
	key := append(id, orm.EncodeSequence(pid)...)

	if cached, ok := a.settled.Get(string(key)); ok {
		a.metrics.cache.WithLabelValues("hit").Inc()
		JSONResp(a.log, w, http.StatusOK, cached)
		return
	}
	a.metrics.cache.WithLabelValues("miss").Inc()

	var p vault.Proposal
	if err := client.ABCIKeyQuery(r.Context(), a.tm, "/proposals", key, &p); err != nil {
		a.fail(w, r, err)
		return
	}
	view := newProposalView(&p)
	if p.Settled {
		a.settled.Add(string(key), view)
	}
	JSONResp(a.log, w, http.StatusOK, view)
}

func (a *API) member(w http.ResponseWriter, r *http.Request) {
	id, ok := a.vaultID(w, r)
	if !ok {
		return
	}
	addr, ok := a.address(w, r)
	if !ok {
		return
	}
	var v vault.Vault
	if err := client.ABCIKeyQuery(r.Context(), a.tm, "/vaults", id, &v); err != nil {
		a.fail(w, r, err)
		return
	}
	JSONResp(a.log, w, http.StatusOK, struct {
		Address coffer.Address `json:"address"`
		Member  bool           `json:"member"`
	}{
		Address: addr,
		Member:  v.IsMember(addr),
	})
}

func (a *API) wallet(w http.ResponseWriter, r *http.Request) {
	addr, ok := a.address(w, r)
	if !ok {
		return
	}
	var set cash.Set
	if err := client.ABCIKeyQuery(r.Context(), a.tm, "/wallets", addr, &set); err != nil {
		a.fail(w, r, err)
		return
	}
	JSONResp(a.log, w, http.StatusOK, struct {
		Address coffer.Address `json:"address"`
		Coins   coin.Coins     `json:"coins"`
	}{
		Address: addr,
		Coins:   set.Coins,
	})
}

// balance returns the coins held by addr. An address without a wallet holds
// nothing.
func (a *API) balance(r *http.Request, addr coffer.Address) (coin.Coins, error) {
	var set cash.Set
	switch err := client.ABCIKeyQuery(r.Context(), a.tm, "/wallets", addr, &set); {
	case err == nil:
		return set.Coins, nil
	case errors.ErrNotFound.Is(err):
		return coin.Coins{}, nil
	default:
		return nil, err
	}
}

func (a *API) vaultID(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	n, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		JSONErr(a.log, w, http.StatusBadRequest, "vault id must be a number")
		return nil, false
	}
	return orm.EncodeSequence(n), true
}

func (a *API) address(w http.ResponseWriter, r *http.Request) (coffer.Address, bool) {
	addr, err := coffer.ParseAddress(mux.Vars(r)["address"])
	if err == nil {
		err = addr.Validate()
	}
	if err != nil {
		JSONErr(a.log, w, http.StatusBadRequest, "invalid address")
		return nil, false
	}
	return addr, true
}

// fail writes the response of a failed node query.
func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.ErrNotFound.Is(err):
		JSONErr(a.log, w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	case errors.ErrInput.Is(err):
		JSONErr(a.log, w, http.StatusBadRequest, err.Error())
	default:
		requestLogger(r, a.log).Error("node query", zap.Error(err))
		JSONErr(a.log, w, http.StatusBadGateway, http.StatusText(http.StatusBadGateway))
	}
}

func decodeSequence(b []byte) int64 {
	if len(b) != 8 {
		return 0
	}
	return orm.DecodeSequence(b)
}
