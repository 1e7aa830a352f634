package coffertest

import "github.com/boardvault/coffer"

// Handler is a mock implementation of the coffer.Handler interface that
// returns preconfigured results and counts its calls.
type Handler struct {
	checkCall   int
	CheckResult coffer.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult coffer.DeliverResult
	DeliverErr    error
}

var _ coffer.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler is a handler that writes a fixed key/value pair to the store
// and then fails if Err is set. Use it to check that failed operations are
// rolled back.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ coffer.Handler = (*WriteHandler)(nil)

func (h *WriteHandler) Check(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &coffer.CheckResult{}, nil
}

func (h *WriteHandler) Deliver(ctx coffer.Context, db coffer.KVStore, tx coffer.Tx) (*coffer.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &coffer.DeliverResult{}, nil
}

// DeliverResultWithData returns a result carrying given data.
func DeliverResultWithData(data string) coffer.DeliverResult {
	return coffer.DeliverResult{Data: []byte(data)}
}
