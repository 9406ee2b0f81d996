package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/multisig"
	"github.com/julienschmidt/httprouter"
)

// InfoResponse describes the running server.
type InfoResponse struct {
	Version string `json:"version"`
}

func (s *Server) info(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	JSONResp(requestLogger(r), w, http.StatusOK, InfoResponse{Version: vault.Version()})
}

// NonceResponse holds the last consumed nonce.
type NonceResponse struct {
	Nonce uint64 `json:"nonce"`
}

func (s *Server) nonce(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	n, err := s.engine.Nonce()
	if err != nil {
		JSONErr(requestLogger(r), w, err, s.debug)
		return
	}
	JSONResp(requestLogger(r), w, http.StatusOK, NonceResponse{Nonce: n})
}

// BalanceResponse holds the value of the vault or an account.
type BalanceResponse struct {
	Balance coin.Amount `json:"balance"`
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bal, err := s.engine.Balance()
	if err != nil {
		JSONErr(requestLogger(r), w, err, s.debug)
		return
	}
	JSONResp(requestLogger(r), w, http.StatusOK, BalanceResponse{Balance: bal})
}

// OwnersResponse lists the vault owners in ascending order.
type OwnersResponse struct {
	Owners    []vault.Address `json:"owners"`
	Threshold int             `json:"threshold"`
}

func (s *Server) owners(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	JSONResp(requestLogger(r), w, http.StatusOK, OwnersResponse{
		Owners:    s.engine.Owners(),
		Threshold: s.engine.Threshold(),
	})
}

// DigestResponse holds the digest owners must sign.
type DigestResponse struct {
	Digest common.Hash `json:"digest"`
	Nonce  uint64      `json:"nonce"`
}

// digest computes the digest of the intent given in the query. When the nonce
// is not given, the next expected one is used.
func (s *Server) digest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := requestLogger(r)
	query := r.URL.Query()

	var errs error
	amount, err := coin.ParseAmount(query.Get("amount"))
	errs = errors.AppendField(errs, "amount", err)
	recipient, err := vault.ParseAddress(query.Get("recipient"))
	errs = errors.AppendField(errs, "recipient", err)

	var nonce uint64
	if raw := query.Get("nonce"); raw != "" {
		nonce, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			errs = errors.AppendField(errs, "nonce", errors.Wrap(errors.ErrInput, "must be an unsigned integer"))
		}
	} else {
		current, err := s.engine.Nonce()
		if err != nil {
			JSONErr(logger, w, err, s.debug)
			return
		}
		nonce = current + 1
	}
	if errs != nil {
		JSONErr(logger, w, errs, s.debug)
		return
	}

	d, err := s.engine.Digest(multisig.Intent{Amount: amount, Recipient: recipient}, nonce)
	if err != nil {
		JSONErr(logger, w, err, s.debug)
		return
	}
	JSONResp(logger, w, http.StatusOK, DigestResponse{Digest: d, Nonce: nonce})
}

// AccountResponse describes an external account.
type AccountResponse struct {
	Address vault.Address `json:"address"`
	Balance coin.Amount   `json:"balance"`
	Refuse  bool          `json:"refuse"`
}

func (s *Server) account(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	logger := requestLogger(r)
	addr, err := vault.ParseAddress(ps.ByName("address"))
	if err != nil {
		JSONErr(logger, w, err, s.debug)
		return
	}
	bal, err := s.bank.Balance(s.db, addr)
	if err != nil {
		JSONErr(logger, w, err, s.debug)
		return
	}
	refuse, err := s.bank.Refuses(s.db, addr)
	if err != nil {
		JSONErr(logger, w, err, s.debug)
		return
	}
	JSONResp(logger, w, http.StatusOK, AccountResponse{Address: addr, Balance: bal, Refuse: refuse})
}

// AuthorizeRequest is a withdrawal signed by the owners.
type AuthorizeRequest struct {
	Amount     coin.Amount     `json:"amount"`
	Recipient  vault.Address   `json:"recipient"`
	Nonce      uint64          `json:"nonce"`
	Signatures []hexutil.Bytes `json:"signatures"`
}

func (s *Server) authorize(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := requestLogger(r)
	var req AuthorizeRequest
	if err := decodeBody(r, &req); err != nil {
		JSONErr(logger, w, err, s.debug)
		return
	}
	sigs := make([][]byte, len(req.Signatures))
	for i, sig := range req.Signatures {
		sigs[i] = sig
	}
	intent := multisig.Intent{Amount: req.Amount, Recipient: req.Recipient}
	rc, err := s.engine.Authorize(r.Context(), intent, req.Nonce, sigs)
	if err != nil {
		JSONErr(logger, w, err, s.debug)
		return
	}
	JSONResp(logger, w, http.StatusOK, rc)
}

// DepositRequest adds value to the vault.
type DepositRequest struct {
	Amount coin.Amount `json:"amount"`
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := requestLogger(r)
	var req DepositRequest
	if err := decodeBody(r, &req); err != nil {
		JSONErr(logger, w, err, s.debug)
		return
	}
	total, err := s.engine.Deposit(r.Context(), req.Amount)
	if err != nil {
		JSONErr(logger, w, err, s.debug)
		return
	}
	JSONResp(logger, w, http.StatusOK, BalanceResponse{Balance: total})
}

func decodeBody(r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if errors.ErrAmount.Is(err) || errors.ErrInput.Is(err) {
			return err
		}
		return errors.Wrap(errors.ErrEncoding, err.Error())
	}
	return nil
}
