package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// Example is dumped by TestGenCmd as <Filename>.json and <Filename>.bin.
// Filename must not carry a directory or an extension.
type Example struct {
	Filename string
	Obj      proto.Message
}

// TestGenCmd writes the json and protobuf encoding of every example into
// the directory given as the first argument (testdata by default), so
// clients in other languages can check their codecs against the chain.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(err, "output directory")
	}

	for _, ex := range examples {
		if ex.Filename == "" || filepath.Base(ex.Filename) != ex.Filename {
			return errors.Errorf("invalid example name %q", ex.Filename)
		}
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "json %s", ex.Filename)
		}
		if err := write(outdir, ex.Filename+".json", js); err != nil {
			return err
		}

		pb, err := proto.Marshal(ex.Obj)
		if err != nil {
			return errors.Wrapf(err, "protobuf %s", ex.Filename)
		}
		if err := write(outdir, ex.Filename+".bin", pb); err != nil {
			return err
		}
	}
	return nil
}

func write(dir, name string, data []byte) error {
	err := ioutil.WriteFile(filepath.Join(dir, name), data, 0644)
	return errors.Wrapf(err, "write %s", name)
}
