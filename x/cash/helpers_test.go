package cash

import (
	"testing"

	"github.com/boardvault/coffer"
	"github.com/boardvault/coffer/coin"
	"github.com/boardvault/coffer/gconf"
	"github.com/boardvault/coffer/orm"
)

func mustWallet(t testing.TB, addr coffer.Address, coins ...*coin.Coin) orm.Object {
	t.Helper()
	w, err := WalletWith(addr, coins...)
	if err != nil {
		t.Fatalf("cannot create wallet: %s", err)
	}
	return w
}

func setNativeTicker(t testing.TB, db gconf.Store, ticker string) {
	t.Helper()
	if err := gconf.Save(db, confPkg, &Configuration{Ticker: ticker}); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}
}

func saveConf(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, confPkg, conf)
}
