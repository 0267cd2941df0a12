package renderer

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/vzool/zakat"
)

// BalancesMarkdown renders every account's balance to a markdown string.
// When currency is non-empty the balances are formatted as money in that
// currency, otherwise as plain decimals. Hidden accounts are skipped unless
// all is set.
func BalancesMarkdown(l *zakat.Ledger, currency string, all bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Balances")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Account", "Balance", "Boxes", "Flags"},
	}
	for acct := range l.Accounts() {
		if acct.Hidden() && !all {
			continue
		}
		balance := acct.Balance().String()
		if currency != "" {
			balance = zakat.M(acct.Balance(), currency).String()
		}
		table.Rows = append(table.Rows, []string{
			label(acct),
			balance,
			fmt.Sprintf("%d", acct.BoxCount()),
			flags(acct),
		})
	}
	doc.Table(table)

	s := l.Stats()
	doc.PlainText(fmt.Sprintf("%d accounts, %d boxes, %d log entries, %d steps recorded.",
		s.Accounts, s.Boxes, s.Logs, s.Steps))
	return doc.String()
}

func flags(a *zakat.Account) string {
	var fs []string
	if a.Hidden() {
		fs = append(fs, "hidden")
	}
	if !a.Zakatable() {
		fs = append(fs, "exempt")
	}
	return strings.Join(fs, ", ")
}
