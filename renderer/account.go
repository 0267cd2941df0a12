package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/vzool/zakat"
)

// BoxesMarkdown renders one account's boxes to a markdown string, oldest
// box first. The zakat columns show how many cycles were levied on each
// box and how much was taken over its lifetime.
func BoxesMarkdown(acct *zakat.Account) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Boxes of " + label(acct))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignRight},
		Header:    []string{"Box", "Capital", "Rest", "Cycles", "Last Levy", "Levied"},
	}
	for t, box := range acct.Boxes() {
		table.Rows = append(table.Rows, []string{
			t.String(),
			box.Capital.String(),
			box.Rest.String(),
			fmt.Sprintf("%d", box.Zakat.Count),
			box.Zakat.Last.String(),
			box.Zakat.Total.String(),
		})
	}
	doc.Table(table)

	doc.PlainText(fmt.Sprintf("%d box(es), balance %s.", acct.BoxCount(), acct.Balance().String()))
	return doc.String()
}

// LogsMarkdown renders one account's log entries to a markdown string,
// oldest entry first. Ref names the box a debit came out of.
func LogsMarkdown(acct *zakat.Account) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Logs of " + label(acct))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Time", "Value", "Description", "Box", "Files"},
	}
	for t, entry := range acct.Logs() {
		box := ""
		if entry.Ref != 0 {
			box = entry.Ref.String()
		}
		table.Rows = append(table.Rows, []string{
			t.String(),
			entry.Value.String(),
			entry.Desc,
			box,
			fmt.Sprintf("%d", len(entry.Files)),
		})
	}
	doc.Table(table)

	doc.PlainText(fmt.Sprintf("%d log entr(ies).", acct.LogCount()))
	return doc.String()
}
