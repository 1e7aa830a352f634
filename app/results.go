package app

import (
	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/errors"
	"github.com/gogo/protobuf/proto"
)

// ResultSet is the encoding of the keys or the values of a query response.
// A query can return any number of models, for example all proposals of a
// vault.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

func (m *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal(m)
}

func (m *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, m)
}

// ResultsFromKeys returns the keys of the models.
func ResultsFromKeys(models []coffer.Model) *ResultSet {
	res := &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		res.Results[i] = m.Key
	}
	return res
}

// ResultsFromValues returns the values of the models.
func ResultsFromValues(models []coffer.Model) *ResultSet {
	res := &ResultSet{Results: make([][]byte, len(models))}
	for i, m := range models {
		res.Results[i] = m.Value
	}
	return res
}

// JoinResults pairs the keys and the values of a query response back into
// models.
func JoinResults(keys, values *ResultSet) ([]coffer.Model, error) {
	if len(keys.Results) != len(values.Results) {
		return nil, errors.Wrapf(errors.ErrState, "%d keys for %d values", len(keys.Results), len(values.Results))
	}
	models := make([]coffer.Model, len(keys.Results))
	for i, k := range keys.Results {
		models[i] = coffer.Pair(k, values.Results[i])
	}
	return models, nil
}

// UnmarshalOneResult decodes the first value of a query response into dest.
// An empty response leaves dest untouched.
func UnmarshalOneResult(raw []byte, dest proto.Message) error {
	var res ResultSet
	if err := res.Unmarshal(raw); err != nil {
		return errors.Wrap(err, "result set")
	}
	if len(res.Results) == 0 {
		return nil
	}
	return proto.Unmarshal(res.Results[0], dest)
}
