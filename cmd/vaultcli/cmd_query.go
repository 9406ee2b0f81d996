package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/client"
	"github.com/iov-one/vault/coin"
)

func cmdNonce(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the last nonce consumed by the vault.
`)
		fl.PrintDefaults()
	}
	apiFl := flAPI(fl)
	fl.Parse(args)

	n, err := client.NewClient(*apiFl).Nonce(context.Background())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, n)
	return err
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the value held by the vault.
`)
		fl.PrintDefaults()
	}
	var (
		apiFl   = flAPI(fl)
		humanFl = fl.Bool("human", false, "Print the balance in ETH instead of wei.")
	)
	fl.Parse(args)

	bal, err := client.NewClient(*apiFl).Balance(context.Background())
	if err != nil {
		return err
	}
	return printAmount(output, bal, *humanFl)
}

func cmdOwners(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the vault owners and the number of signatures required to authorize a
withdrawal.
`)
		fl.PrintDefaults()
	}
	apiFl := flAPI(fl)
	fl.Parse(args)

	owners, err := client.NewClient(*apiFl).Owners(context.Background())
	if err != nil {
		return err
	}
	return writeJSON(output, owners)
}

func cmdAccount(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the state of an account the vault pays to.
`)
		fl.PrintDefaults()
	}
	var (
		apiFl  = flAPI(fl)
		addrFl vault.Address
	)
	fl.TextVar(&addrFl, "address", vault.ZeroAddress, "Account address.")
	fl.Parse(args)

	acc, err := client.NewClient(*apiFl).Account(context.Background(), addrFl)
	if err != nil {
		return err
	}
	return writeJSON(output, acc)
}

func cmdDeposit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Add value to the vault. The new vault balance is printed.
`)
		fl.PrintDefaults()
	}
	var (
		apiFl    = flAPI(fl)
		amountFl coin.Amount
	)
	fl.Var(&amountFl, "amount", `Amount to deposit, for example "1.5 ETH" or "20 gwei".`)
	fl.Parse(args)

	total, err := client.NewClient(*apiFl).Deposit(context.Background(), amountFl)
	if err != nil {
		return err
	}
	return printAmount(output, total, false)
}

func printAmount(w io.Writer, a coin.Amount, human bool) error {
	s := a.String()
	if human {
		s = a.Human()
	}
	_, err := fmt.Fprintln(w, s)
	return err
}
