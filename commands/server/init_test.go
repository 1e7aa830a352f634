package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boardvault/coffer/cmd/cofferd/app"
	"github.com/boardvault/coffer/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func tempHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "coffer-home")
	require.NoError(t, err)
	return home, func() { os.RemoveAll(home) }
}

func readGenesis(t *testing.T, home string) GenesisDoc {
	t.Helper()
	bz, err := ioutil.ReadFile(filepath.Join(home, "config", "genesis.json"))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	return doc
}

func TestInit(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	logger := log.NewNopLogger()
	args := []string{"-board", "3", "-seed", strings.Repeat("ab", 32)}
	require.NoError(t, InitCmd(app.GenInitOptions, logger, home, args))

	doc := readGenesis(t, home)
	var chainID string
	require.NoError(t, json.Unmarshal(doc["chain_id"], &chainID))
	assert.True(t, strings.HasPrefix(chainID, "coffer-"), chainID)
	assert.NotEmpty(t, doc["validators"])
	assert.NotEmpty(t, doc[appStateKey])

	for _, f := range []string{"priv_validator_key.json", "node_key.json"} {
		_, err := os.Stat(filepath.Join(home, "config", f))
		assert.NoError(t, err, f)
	}

	// a second run keeps the generated chain and replaces the app state
	require.NoError(t, InitCmd(app.GenInitOptions, logger, home, []string{"-board", "5"}))
	again := readGenesis(t, home)
	assert.Equal(t, doc["chain_id"], again["chain_id"])
	assert.Equal(t, doc["validators"], again["validators"])
	assert.NotEqual(t, doc[appStateKey], again[appStateKey])

	path := filepath.Join(home, "config", "genesis.json")
	assert.NoError(t, ValidateGenesis(app.Initializers(), []string{path}))
}

func TestInitWithoutAppState(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	require.NoError(t, InitCmd(nil, log.NewNopLogger(), home, nil))
	doc := readGenesis(t, home)
	assert.Empty(t, doc[appStateKey])
}

func TestInitGeneratorFailure(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	gen := func([]string) (json.RawMessage, error) {
		return nil, errors.Wrap(errors.ErrInput, "nope")
	}
	err := InitCmd(gen, log.NewNopLogger(), home, nil)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestValidateGenesis(t *testing.T) {
	dir, cleanup := tempHome(t)
	defer cleanup()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}

	valid := write("valid.json", `{
		"chain_id": "coffer-test",
		"app_state": {
			"conf": {"cash": {"ticker": "CASH"}, "vault": {"max_members": 4}},
			"vault": [{"name": "board", "members": ["E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"]}]
		}
	}`)
	tooBig := write("toobig.json", `{
		"app_state": {
			"conf": {"cash": {"ticker": "CASH"}, "vault": {"max_members": 1}},
			"vault": [{"name": "board", "members": [
				"E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
				"B1CA7E78F74423AE01DA3B51E676934D9105F282"
			]}]
		}
	}`)
	broken := write("broken.json", `{"app_state": `)

	ini := app.Initializers()
	assert.NoError(t, ValidateGenesis(ini, []string{valid}))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, []string{valid, tooBig})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, []string{broken})))
	assert.Error(t, ValidateGenesis(ini, []string{filepath.Join(dir, "missing.json")}))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, nil)))
}
