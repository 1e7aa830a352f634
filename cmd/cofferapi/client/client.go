package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/app"
	"github.com/boardvault/coffer/errors"
	"github.com/gogo/protobuf/proto"
)

// Tendermint is implemented by any service that provides access to the
// Tendermint RPC API of a coffer node.
type Tendermint interface {
	Get(ctx context.Context, path string, dest interface{}) error
}

// HTTPTendermint implements Tendermint using the HTTP transport of the RPC
// server.
type HTTPTendermint struct {
	apiURL string
	cli    http.Client
}

var _ Tendermint = (*HTTPTendermint)(nil)

// NewHTTPTendermint returns a client of the RPC server listening at apiURL,
// for example http://localhost:26657
func NewHTTPTendermint(apiURL string) *HTTPTendermint {
	return &HTTPTendermint{apiURL: apiURL}
}

// Get requests given path and decodes the JSON-RPC result into dest.
func (c *HTTPTendermint) Get(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequest("GET", c.apiURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "create http request")
	}
	req = req.WithContext(ctx)

	resp, err := c.cli.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 1e5))
		return errors.Wrapf(errors.ErrDatabase, "bad response: %d %s", resp.StatusCode, string(b))
	}

	payload := jsonrpcResponse{Result: dest}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1e6)).Decode(&payload); err != nil {
		return errors.Wrap(err, "decode response")
	}
	if payload.Error != nil {
		return errors.Wrap(errors.ErrDatabase, payload.Error.Error())
	}
	return nil
}

type jsonrpcResponse struct {
	Error  *jsonrpcError `json:"error"`
	Result interface{}   `json:"result"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

func (e *jsonrpcError) Error() string {
	if len(e.Data) != 0 {
		return fmt.Sprintf("code %d, %s", e.Code, e.Data)
	}
	return fmt.Sprintf("code %d, %s", e.Code, e.Message)
}

// AbciQueryResponse is the result of the /abci_query RPC call.
type AbciQueryResponse struct {
	Response AbciQueryResponseResponse `json:"response"`
}

// AbciQueryResponseResponse holds the application answer. Key and Value are
// serialized app.ResultSet.
type AbciQueryResponseResponse struct {
	Code   uint32 `json:"code"`
	Log    string `json:"log"`
	Key    []byte `json:"key"`
	Value  []byte `json:"value"`
	Height int64  `json:"height,string"`
}

// ABCIQuery runs a query against the application and returns all models
// it found, in key order. A failed query is returned as ErrNotFound when the
// path or the entity does not exist and as ErrDatabase otherwise.
func ABCIQuery(ctx context.Context, c Tendermint, path string, data []byte) ([]coffer.Model, error) {
	v := make(url.Values)
	v.Add("path", `"`+path+`"`)
	v.Add("data", "0x"+hex.EncodeToString(data))
	apiPath := "/abci_query?" + v.Encode()

	var abciResponse AbciQueryResponse
	if err := c.Get(ctx, apiPath, &abciResponse); err != nil {
		return nil, errors.Wrap(err, "tendermint client")
	}
	res := abciResponse.Response
	if res.Code != 0 {
		if notFoundCode, _ := errors.ABCIInfo(errors.ErrNotFound, false); res.Code == notFoundCode {
			return nil, errors.Wrap(errors.ErrNotFound, res.Log)
		}
		return nil, errors.Wrapf(errors.ErrDatabase, "code %d: %s", res.Code, res.Log)
	}

	var keys, values app.ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "unmarshal keys response")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "unmarshal values response")
	}
	return app.JoinResults(&keys, &values)
}

// ABCIKeyQuery loads a single entity stored under given key into dest.
func ABCIKeyQuery(ctx context.Context, c Tendermint, path string, key []byte, dest proto.Message) error {
	models, err := ABCIQuery(ctx, c, path, key)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return errors.Wrap(errors.ErrNotFound, "empty response")
	}
	if err := proto.Unmarshal(models[0].Value, dest); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}
