package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/api"
	"github.com/iov-one/vault/client"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/x/multisig"
)

func cmdWithdraw(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create an unsigned withdrawal document and write it to the output.

When the nonce is not given, the next nonce expected by the vault is used.
`)
		fl.PrintDefaults()
	}
	var (
		apiFl    = flAPI(fl)
		amountFl coin.Amount
		toFl     vault.Address
		nonceFl  = fl.Uint64("nonce", 0, "Withdrawal nonce. Zero means the next expected nonce.")
	)
	fl.Var(&amountFl, "amount", `Amount to withdraw, for example "1.5 ETH" or "20 gwei".`)
	fl.TextVar(&toFl, "to", vault.ZeroAddress, "Recipient address.")
	fl.Parse(args)

	intent := multisig.Intent{Amount: amountFl, Recipient: toFl}
	if err := intent.Validate(); err != nil {
		return fmt.Errorf("invalid withdrawal: %s", err)
	}

	nonce := *nonceFl
	if nonce == 0 {
		current, err := client.NewClient(*apiFl).Nonce(context.Background())
		if err != nil {
			return fmt.Errorf("cannot get the vault nonce: %s", err)
		}
		nonce = current + 1
	}
	return writeWithdrawal(output, &api.AuthorizeRequest{
		Amount:    intent.Amount,
		Recipient: intent.Recipient,
		Nonce:     nonce,
	})
}

func cmdDigest(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a withdrawal document from the input and print the digest that owners
must sign to authorize it.
`)
		fl.PrintDefaults()
	}
	apiFl := flAPI(fl)
	fl.Parse(args)

	w, err := readWithdrawal(input)
	if err != nil {
		return err
	}
	digest, _, err := client.NewClient(*apiFl).Digest(context.Background(), intentOf(w), w.Nonce)
	if err != nil {
		return fmt.Errorf("cannot get digest: %s", err)
	}
	_, err = fmt.Fprintln(output, digest.Hex())
	return err
}

func cmdSign(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given withdrawal. This is decoding a withdrawal document from the input,
adds a signature and writes back the signed document to the output.

Signatures are kept ordered by the signer address, as required by the vault.
`)
		fl.PrintDefaults()
	}
	var (
		apiFl     = flAPI(fl)
		keyPathFl = flKey(fl)
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	w, err := readWithdrawal(input)
	if err != nil {
		return err
	}
	digest, _, err := client.NewClient(*apiFl).Digest(context.Background(), intentOf(w), w.Nonce)
	if err != nil {
		return fmt.Errorf("cannot get digest: %s", err)
	}
	sig, err := key.Sign(digest[:])
	if err != nil {
		return fmt.Errorf("cannot sign: %s", err)
	}
	sigs, err := insertSignature(digest[:], w.Signatures, sig)
	if err != nil {
		return err
	}
	w.Signatures = sigs
	return writeWithdrawal(output, w)
}

// insertSignature adds sig to sigs, keeping them ordered by the recovered
// signer address. It fails if the signer already signed.
func insertSignature(digest []byte, sigs []hexutil.Bytes, sig []byte) ([]hexutil.Bytes, error) {
	var rec crypto.Secp256k1Recoverer
	type signed struct {
		signer vault.Address
		sig    hexutil.Bytes
	}
	all := make([]signed, 0, len(sigs)+1)
	for i, s := range append(sigs, sig) {
		signer, err := rec.Recover(digest, s)
		if err != nil {
			return nil, fmt.Errorf("signature %d: %s", i, err)
		}
		for _, o := range all {
			if o.signer == signer {
				return nil, fmt.Errorf("%s already signed", signer)
			}
		}
		all = append(all, signed{signer: signer, sig: s})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].signer.Less(all[j].signer) })

	res := make([]hexutil.Bytes, len(all))
	for i, s := range all {
		res[i] = s.sig
	}
	return res, nil
}

func cmdAuthorize(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a signed withdrawal document from the input and submit it to the vault.
The settlement receipt is written to the output.
`)
		fl.PrintDefaults()
	}
	apiFl := flAPI(fl)
	fl.Parse(args)

	w, err := readWithdrawal(input)
	if err != nil {
		return err
	}
	sigs := make([][]byte, len(w.Signatures))
	for i, s := range w.Signatures {
		sigs[i] = s
	}
	rc, err := client.NewClient(*apiFl).Authorize(context.Background(), intentOf(w), w.Nonce, sigs)
	if err != nil {
		return fmt.Errorf("cannot authorize: %s", err)
	}
	return writeJSON(output, rc)
}

func intentOf(w *api.AuthorizeRequest) multisig.Intent {
	return multisig.Intent{Amount: w.Amount, Recipient: w.Recipient}
}

func readWithdrawal(r io.Reader) (*api.AuthorizeRequest, error) {
	var w api.AuthorizeRequest
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no input data")
		}
		return nil, fmt.Errorf("cannot decode withdrawal: %s", err)
	}
	return &w, nil
}

func writeWithdrawal(w io.Writer, req *api.AuthorizeRequest) error {
	return writeJSON(w, req)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("cannot serialize: %s", err)
	}
	return nil
}
