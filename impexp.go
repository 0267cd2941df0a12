package zakat

import (
	"crypto/sha1"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

// this file contains functions to move data in and out of the vault.
// Imports go through the regular Track/Subtract/Exchange entry points so
// that every imported row leaves the same audit trail as a manual one.

// ImportCache remembers the rows already imported, keyed by a content hash,
// so re-running an import over an amended file only picks up the new rows.
// The caller owns the cache and decides where to persist it.
type ImportCache map[string]daytime.Time

func rowHash(fields []string) string {
	sum := sha1.Sum([]byte(strings.Join(fields, "\x1f")))
	return hex.EncodeToString(sum[:])
}

// ImportResult summarizes one import run. Bad maps the 1-based row number to
// the error that rejected it; good rows are never rolled back by a later bad
// one.
type ImportResult struct {
	Created int
	Found   int
	Bad     map[int]error
}

func (r *ImportResult) reject(row int, err error) {
	if r.Bad == nil {
		r.Bad = make(map[int]error)
	}
	r.Bad[row] = err
}

type importRow struct {
	account string
	desc    string
	value   string
	when    string
	rate    string
}

func (l *Ledger) importRow(row importRow) error {
	value, err := decimal.NewFromString(strings.TrimSpace(row.value))
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", row.value, err)
	}
	at, err := daytime.Parse(strings.TrimSpace(row.when))
	if err != nil {
		return err
	}
	ref := ByName(strings.TrimSpace(row.account))
	if rate := strings.TrimSpace(row.rate); rate != "" {
		x, err := decimal.NewFromString(rate)
		if err != nil {
			return fmt.Errorf("invalid rate %q: %w", rate, err)
		}
		if _, err := l.Exchange(ref, x, at, "imported rate"); err != nil {
			return err
		}
	}
	desc := strings.TrimSpace(row.desc)
	if value.IsNegative() {
		_, _, err = l.Subtract(value.Neg(), desc, ref, at)
	} else {
		_, err = l.Track(value, desc, ref, at)
	}
	return err
}

// ImportCSV reads rows of the form
//
//	account,desc,value,date[,rate]
//
// and replays them into the ledger. Negative values become Subtract calls,
// positive ones Track calls, and a non-empty rate column records an exchange
// rate for the row's account first. Rows whose hash is already in cache are
// counted as Found and skipped; cache may be nil to import unconditionally.
func (l *Ledger) ImportCSV(r io.Reader, cache ImportCache) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	res := &ImportResult{}
	for row := 1; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("row %d: %w", row, err)
		}
		if len(fields) < 4 {
			res.reject(row, fmt.Errorf("expected account,desc,value,date[,rate], got %d fields", len(fields)))
			continue
		}
		hash := rowHash(fields)
		if cache != nil {
			if _, seen := cache[hash]; seen {
				res.Found++
				continue
			}
		}
		in := importRow{account: fields[0], desc: fields[1], value: fields[2], when: fields[3]}
		if len(fields) > 4 {
			in.rate = fields[4]
		}
		if err := l.importRow(in); err != nil {
			res.reject(row, err)
			continue
		}
		res.Created++
		if cache != nil {
			cache[hash] = daytime.Now()
		}
	}
}

// ForeignMapping maps a foreign JSON export onto import rows using jsonpath
// expressions. Rows selects the record array; the remaining paths are
// evaluated against each record. Rate may be empty.
type ForeignMapping struct {
	Rows    string
	Account string
	Desc    string
	Value   string
	Time    string
	Rate    string
}

// pick evaluates one jsonpath against a record and renders the result as a
// string. jsonpath is never clear about whether it returns a list of one
// answer or a single answer, so a singleton list is unwrapped first.
func pick(record any, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	jval, err := jsonpath.Get(path, record)
	if err != nil {
		return "", fmt.Errorf("path %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case string:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v).String(), nil
	case json.Number:
		return v.String(), nil
	default:
		return "", fmt.Errorf("path %q: unsupported value %v", path, jval)
	}
}

// ImportJSON replays the records of a foreign JSON document into the ledger
// according to the mapping. Deduplication and error reporting work like
// ImportCSV.
func (l *Ledger) ImportJSON(r io.Reader, m ForeignMapping, cache ImportCache) (*ImportResult, error) {
	var jobj any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse foreign document: %w", err)
	}
	jrows, err := jsonpath.Get(m.Rows, jobj)
	if err != nil {
		return nil, fmt.Errorf("rows path %q: %w", m.Rows, err)
	}
	records, ok := jrows.([]any)
	if !ok {
		return nil, fmt.Errorf("rows path %q: not an array", m.Rows)
	}

	res := &ImportResult{}
	for i, record := range records {
		row := i + 1
		var in importRow
		var err error
		if in.account, err = pick(record, m.Account); err == nil {
			if in.desc, err = pick(record, m.Desc); err == nil {
				if in.value, err = pick(record, m.Value); err == nil {
					in.when, err = pick(record, m.Time)
				}
			}
		}
		if err != nil {
			res.reject(row, err)
			continue
		}
		// the rate is optional per record, not every row carries one
		if m.Rate != "" {
			if v, err := pick(record, m.Rate); err == nil {
				in.rate = v
			}
		}
		hash := rowHash([]string{in.account, in.desc, in.value, in.when, in.rate})
		if cache != nil {
			if _, seen := cache[hash]; seen {
				res.Found++
				continue
			}
		}
		if err := l.importRow(in); err != nil {
			res.reject(row, err)
			continue
		}
		res.Created++
		if cache != nil {
			cache[hash] = daytime.Now()
		}
	}
	return res, nil
}

// ExportReport writes an assessment report to w as an indented JSON
// document. It is a presentation export, not meant to be read back.
func ExportReport(w io.Writer, r *Report) error {
	if r == nil {
		return fmt.Errorf("no report to export")
	}
	data, err := json.MarshalIndent(reportToDoc(r), "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	return nil
}
