package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/google/subcommands"
	"github.com/vzool/zakat"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	csvFile  string
	jsonFile string
	cache    string

	rows    string
	account string
	desc    string
	value   string
	time    string
	rate    string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "bulk import movements from CSV or foreign JSON" }
func (*importCmd) Usage() string {
	return `zkt import -csv <file> [-cache <file>]
zkt import -json <file> -rows <path> -account <path> -value <path> -time <path> [-desc <path>] [-rate <path>] [-cache <file>]

  Replays external history into the vault. CSV rows are
  account,desc,value,date[,rate]; negative values are spends. JSON imports
  map a foreign export's fields with jsonpath expressions, e.g.

    zkt import -json export.json -rows '$.transactions' \
       -account '$.wallet' -value '$.amount' -time '$.date'

  With -cache, rows already imported in a previous run are skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvFile, "csv", "", "CSV file to import")
	f.StringVar(&c.jsonFile, "json", "", "Foreign JSON file to import")
	f.StringVar(&c.cache, "cache", "", "Deduplication cache file")
	f.StringVar(&c.rows, "rows", "", "jsonpath to the record array")
	f.StringVar(&c.account, "account", "", "jsonpath to the account name within a record")
	f.StringVar(&c.desc, "desc", "", "jsonpath to the description within a record")
	f.StringVar(&c.value, "value", "", "jsonpath to the value within a record")
	f.StringVar(&c.time, "time", "", "jsonpath to the date within a record")
	f.StringVar(&c.rate, "rate", "", "jsonpath to the exchange rate within a record")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.csvFile == "") == (c.jsonFile == "") {
		return usagef("exactly one of -csv or -json is required")
	}

	cache, err := loadCache(c.cache)
	if err != nil {
		return errorf("could not load cache: %v", err)
	}
	l, err := DecodeLedger()
	if err != nil {
		return errorf("could not load vault: %v", err)
	}

	var res *zakat.ImportResult
	switch {
	case c.csvFile != "":
		in, err := os.Open(c.csvFile)
		if err != nil {
			return errorf("%v", err)
		}
		defer in.Close()
		res, err = l.ImportCSV(in, cache)
		if err != nil {
			return errorf("%v", err)
		}
	default:
		if c.rows == "" || c.account == "" || c.value == "" || c.time == "" {
			return usagef("-rows, -account, -value and -time are required for a JSON import")
		}
		in, err := os.Open(c.jsonFile)
		if err != nil {
			return errorf("%v", err)
		}
		defer in.Close()
		mapping := zakat.ForeignMapping{
			Rows:    c.rows,
			Account: c.account,
			Desc:    c.desc,
			Value:   c.value,
			Time:    c.time,
			Rate:    c.rate,
		}
		res, err = l.ImportJSON(in, mapping, cache)
		if err != nil {
			return errorf("%v", err)
		}
	}

	if err := EncodeLedger(l); err != nil {
		return errorf("could not save vault: %v", err)
	}
	if err := saveCache(c.cache, cache); err != nil {
		return errorf("could not save cache: %v", err)
	}

	fmt.Printf("Imported %d row(s), skipped %d already known\n", res.Created, res.Found)
	if len(res.Bad) > 0 {
		rows := make([]int, 0, len(res.Bad))
		for row := range res.Bad {
			rows = append(rows, row)
		}
		sort.Ints(rows)
		for _, row := range rows {
			fmt.Fprintf(os.Stderr, "row %d rejected: %v\n", row, res.Bad[row])
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func loadCache(path string) (zakat.ImportCache, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return zakat.ImportCache{}, nil
	}
	if err != nil {
		return nil, err
	}
	cache := zakat.ImportCache{}
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return cache, nil
}

func saveCache(path string, cache zakat.ImportCache) error {
	if path == "" {
		return nil
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
