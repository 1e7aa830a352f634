package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// JSONResp write content as JSON encoded response.
func JSONResp(log *zap.Logger, w http.ResponseWriter, code int, content interface{}) {
	b, err := json.MarshalIndent(content, "", "\t")
	if err != nil {
		log.Error("cannot JSON serialize response", zap.Error(err))
		code = http.StatusInternalServerError
		b = []byte(`{"errors":["Internal Server Error"]}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)

	const MB = 1 << (10 * 2)
	if len(b) > MB {
		log.Warn("response JSON body is huge", zap.Int("size", len(b)))
	}
	_, _ = w.Write(b)
}

// JSONErr write single error as JSON encoded response.
func JSONErr(log *zap.Logger, w http.ResponseWriter, code int, errText string) {
	JSONResp(log, w, code, struct {
		Errors []string `json:"errors"`
	}{
		Errors: []string{errText},
	})
}
