package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/vzool/zakat"
)

// ReportMarkdown renders an assessment report to a markdown string. The
// ledger is only consulted to resolve account names.
func ReportMarkdown(l *zakat.Ledger, r *zakat.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Zakat Report")

	status := "nothing due"
	if r.Valid {
		status = "due"
	}
	if r.Applied() {
		status += " (applied)"
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Assessed at", r.Time.String()},
		Rows: [][]string{
			{"Status", status},
			{"Total wealth", r.TotalWealth.String()},
			{"Zakatable wealth", r.ZakatableWealth.String()},
			{"Eligible boxes", fmt.Sprintf("%d", r.EligibleBoxes)},
			{"Total due", r.TotalDue.String()},
		},
	})

	if len(r.Plan) == 0 {
		return doc.String()
	}

	doc.H2("Levy Plan")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Account", "Box", "Rest", "Cycles", "Due", "Note"},
	}
	for aid, entries := range r.SortedPlan() {
		name := accountLabel(l, aid)
		for _, e := range entries {
			note := ""
			if e.BelowNisab {
				note = "below nisab, pooled"
			}
			table.Rows = append(table.Rows, []string{
				name,
				e.Box.String(),
				e.Snapshot.Rest.String(),
				fmt.Sprintf("%d", e.Count),
				e.Due.String(),
				note,
			})
		}
	}
	doc.Table(table)
	return doc.String()
}

// PartsMarkdown renders a payment distribution to a markdown string.
func PartsMarkdown(p *zakat.Parts) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Payment Distribution")
	doc.PlainText(fmt.Sprintf("Demand %s out of %s available.", p.Demand, p.Total))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Account", "Balance", "Rate", "Amount"},
	}
	for _, part := range p.Parts {
		table.Rows = append(table.Rows, []string{
			part.Account.String(),
			part.Balance.String(),
			part.Rate.String(),
			part.Amount.String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

func accountLabel(l *zakat.Ledger, id int64) string {
	if acct, ok := l.Account(zakat.ByID(id)); ok && acct.Name() != "" {
		return acct.Name()
	}
	return fmt.Sprintf("#%d", id)
}
