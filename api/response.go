package api

import (
	"encoding/json"
	"net/http"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/cash"
	"github.com/iov-one/vault/x/multisig"
	"github.com/tendermint/tendermint/libs/log"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code uint32 `json:"code"`
	Log  string `json:"log"`
}

// JSONResp writes content as JSON encoded response.
func JSONResp(logger log.Logger, w http.ResponseWriter, code int, content interface{}) {
	b, err := json.MarshalIndent(content, "", "\t")
	if err != nil {
		logger.Error("cannot JSON serialize response", "err", err)
		code = http.StatusInternalServerError
		b = []byte(`{"code":1,"log":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)

	const MB = 1 << (10 * 2)
	if len(b) > MB {
		logger.Info("response JSON body is huge", "size", len(b))
	}
	_, _ = w.Write(b)
}

// JSONErr writes err as JSON encoded response. Errors that are not
// registered are redacted unless debug is set.
func JSONErr(logger log.Logger, w http.ResponseWriter, err error, debug bool) {
	code, msg := errors.Info(err, debug)
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "err", err)
	}
	JSONResp(logger, w, status, ErrorResponse{Code: code, Log: msg})
}

// httpStatus maps an error to the response status code.
func httpStatus(err error) int {
	switch {
	case errors.ErrNotFound.Is(err):
		return http.StatusNotFound
	case errors.ErrInput.Is(err),
		errors.ErrAmount.Is(err),
		errors.ErrEncoding.Is(err),
		errors.ErrEmpty.Is(err),
		multisig.ErrMalformedSignature.Is(err):
		return http.StatusBadRequest
	case multisig.ErrUnorderedSigner.Is(err),
		multisig.ErrUnrecognizedSigner.Is(err),
		multisig.ErrInsufficientSigners.Is(err),
		errors.ErrUnauthorized.Is(err):
		return http.StatusForbidden
	case multisig.ErrStaleNonce.Is(err),
		multisig.ErrReentrancy.Is(err):
		return http.StatusConflict
	case multisig.ErrInsufficientFunds.Is(err),
		cash.ErrRefused.Is(err),
		errors.ErrOverflow.Is(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// requestLogger returns the logger bound to the request.
func requestLogger(r *http.Request) log.Logger {
	return vault.GetLogger(r.Context())
}
