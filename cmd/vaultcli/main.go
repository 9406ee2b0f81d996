package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/vault"
)

// commands is a register of all available commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is an independent runnable that is taking input and
// output being stdin and stdout. Given args are the command line arguments,
// without the program name and the command name, that should be parsed using
// the flag package. In a special case of an invalid argument a message to
// os.Stderr and os.Exit(2) call are allowed.
//
// Withdrawals are passed between commands as JSON documents, so that a unix
// pipe can be used to collect the owner signatures:
//
//	$ vaultcli withdraw -amount "1 ETH" -to 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed \
//	    | vaultcli sign -key alice.key \
//	    | vaultcli sign -key bob.key \
//	    | vaultcli authorize
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"account":   cmdAccount,
	"authorize": cmdAuthorize,
	"balance":   cmdBalance,
	"deposit":   cmdDeposit,
	"digest":    cmdDigest,
	"keyaddr":   cmdKeyaddr,
	"keygen":    cmdKeygen,
	"nonce":     cmdNonce,
	"owners":    cmdOwners,
	"sign":      cmdSign,
	"version":   cmdVersion,
	"withdraw":  cmdWithdraw,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the vault daemon.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, vault.Version())
	return err
}
