package coffer

import (
	"fmt"
)

// Query modifiers, given after a "?" in the query path.
const (
	// KeyQueryMod returns the model stored under the exact key.
	KeyQueryMod = ""
	// PrefixQueryMod returns all models whose key starts with the data.
	PrefixQueryMod = "prefix"
)

// Model is a single key and value returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers the queries of one path from a read only view of the
// committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister registers the query paths of an extension.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths, for example "/vaults", to their handlers.
type QueryRouter struct {
	handlers map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{handlers: make(map[string]QueryHandler)}
}

// RegisterAll calls every register with the router.
func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register binds the handler to path. A path can be bound once only, a
// second call panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, taken := r.handlers[path]; taken {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.handlers[path] = h
}

// Handler returns the handler bound to path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.handlers[path]
}
