package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/vzool/zakat"
)

// DailyMarkdown renders the day-by-day activity summaries to a markdown
// string, most recent day first.
func DailyMarkdown(days []zakat.DailySummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Daily Activity")
	if len(days) == 0 {
		doc.PlainText("No activity recorded.")
		return doc.String()
	}

	for _, day := range days {
		doc.H2(day.Day.Weekday().String() + " " + day.Day.Std().Format("2006-01-02"))
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Credits", day.Credits.String()},
			Rows: [][]string{
				{"Debits", day.Debits.String()},
			},
		})

		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"Time", "Account", "Value", "Description"},
		}
		for _, e := range day.Entries {
			table.Rows = append(table.Rows, []string{
				e.Time.String(),
				label(e.Account),
				e.Log.Value.String(),
				e.Log.Desc,
			})
		}
		doc.Table(table)
	}
	return doc.String()
}

func label(a *zakat.Account) string {
	if a.Name() != "" {
		return a.Name()
	}
	return fmt.Sprintf("#%d", a.ID())
}
