// Package cmd implements the CLI application to manage a zakat vault.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
)

// Commands lists every subcommand. A main package registers them all on a
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&openCmd{},
	&trackCmd{},
	&subCmd{},
	&transferCmd{},
	&exchangeCmd{},
	&renameCmd{},
	&hideCmd{},
	&zakatableCmd{},
	&attachCmd{},

	&balanceCmd{},
	&boxesCmd{},
	&logsCmd{},
	&dailyCmd{},
	&historyCmd{},
	&statsCmd{},

	&checkCmd{},
	&zakatCmd{},
	&partsCmd{},

	&importCmd{},
	&exportCmd{},

	&unlockCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var vaultFile = flag.String("vault", "vault.json", "Path to the vault file")

// DecodeLedger loads the vault from the app vault file.
func DecodeLedger() (*zakat.Ledger, error) {
	f, err := os.Open(*vaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, vault does not exist, starting with an empty one instead")
		return zakat.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return zakat.DecodeVault(f)
}

// EncodeLedger writes the vault back to the app vault file. The write goes
// through a temporary file and a rename so a crash never leaves a truncated
// vault behind.
func EncodeLedger(l *zakat.Ledger) error {
	tmp := *vaultFile + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := zakat.EncodeVault(f, l); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, *vaultFile)
}

func errorf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

func usagef(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
