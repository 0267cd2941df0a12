package zakat

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vzool/zakat/daytime"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file implements the persistence contract: the whole vault is encoded
// as one nested JSON document. The on-disk naming and file handling belong
// to the host application; the engine only reads and writes streams.

type zakatDoc struct {
	Count int64           `json:"count"`
	Last  daytime.Time    `json:"last"`
	Total decimal.Decimal `json:"total"`
}

type boxDoc struct {
	Capital decimal.Decimal `json:"capital"`
	Rest    decimal.Decimal `json:"rest"`
	Zakat   zakatDoc        `json:"zakat"`
}

type logDoc struct {
	Value decimal.Decimal   `json:"value"`
	Desc  string            `json:"desc,omitempty"`
	Ref   daytime.Time      `json:"ref,omitempty"`
	Files map[string]string `json:"file,omitempty"`
}

type accountDoc struct {
	Name      string            `json:"name,omitempty"`
	Created   daytime.Time      `json:"created"`
	Hidden    bool              `json:"hide,omitempty"`
	Zakatable bool              `json:"zakatable"`
	Balance   decimal.Decimal   `json:"balance"`
	Boxes     map[string]boxDoc `json:"box"`
	Logs      map[string]logDoc `json:"log"`
}

type rateDoc struct {
	Time daytime.Time    `json:"time"`
	Rate decimal.Decimal `json:"rate"`
	Desc string          `json:"description,omitempty"`
}

type eventDoc struct {
	Action  Action          `json:"action"`
	Account int64           `json:"account,omitempty"`
	Ref     daytime.Time    `json:"ref,omitempty"`
	Value   decimal.Decimal `json:"value"`
	Key     string          `json:"key,omitempty"`
}

type stepDoc struct {
	Time   daytime.Time `json:"time"`
	Events []eventDoc   `json:"events"`
}

type planEntryDoc struct {
	Box        daytime.Time    `json:"box"`
	Capital    decimal.Decimal `json:"box_capital"`
	Rest       decimal.Decimal `json:"box_rest"`
	Zakat      zakatDoc        `json:"box_zakat"`
	Desc       string          `json:"desc,omitempty"`
	Rate       rateDoc         `json:"exchange"`
	Due        decimal.Decimal `json:"due"`
	Count      int64           `json:"count"`
	BelowNisab bool            `json:"below_nisab,omitempty"`
}

type reportDoc struct {
	Valid           bool                      `json:"valid"`
	Time            daytime.Time              `json:"time"`
	TotalWealth     decimal.Decimal           `json:"total_wealth"`
	ZakatableWealth decimal.Decimal           `json:"zakatable_wealth"`
	EligibleBoxes   int                       `json:"eligible_boxes"`
	TotalDue        decimal.Decimal           `json:"total_due"`
	Plan            map[string][]planEntryDoc `json:"plan,omitempty"`
	Applied         bool                      `json:"applied,omitempty"`
}

type vaultDoc struct {
	Accounts  map[string]accountDoc `json:"account"`
	LastID    int64                 `json:"last_account,omitempty"`
	Rates     map[string][]rateDoc  `json:"exchange,omitempty"`
	HistoryOn bool                  `json:"history"`
	Steps     []stepDoc             `json:"step,omitempty"`
	Reports   map[string]reportDoc  `json:"report,omitempty"`
	Lock      string                `json:"lock,omitempty"`
}

func reportToDoc(r *Report) reportDoc {
	doc := reportDoc{
		Valid:           r.Valid,
		Time:            r.Time,
		TotalWealth:     r.TotalWealth,
		ZakatableWealth: r.ZakatableWealth,
		EligibleBoxes:   r.EligibleBoxes,
		TotalDue:        r.TotalDue,
		Applied:         r.applied,
	}
	if len(r.Plan) > 0 {
		doc.Plan = make(map[string][]planEntryDoc, len(r.Plan))
	}
	for _, aid := range sortedPlanIDs(r.Plan) {
		var entries []planEntryDoc
		for _, e := range r.Plan[aid] {
			entries = append(entries, planEntryDoc{
				Box:     e.Box,
				Capital: e.Snapshot.Capital,
				Rest:    e.Snapshot.Rest,
				Zakat: zakatDoc{
					Count: e.Snapshot.Zakat.Count,
					Last:  e.Snapshot.Zakat.Last,
					Total: e.Snapshot.Zakat.Total,
				},
				Desc:       e.Desc,
				Rate:       rateDoc{Time: e.Rate.Time, Rate: e.Rate.Rate, Desc: e.Rate.Desc},
				Due:        e.Due,
				Count:      e.Count,
				BelowNisab: e.BelowNisab,
			})
		}
		doc.Plan[strconv.FormatInt(aid, 10)] = entries
	}
	return doc
}

func docToReport(doc reportDoc) (*Report, error) {
	r := &Report{
		Valid:           doc.Valid,
		Time:            doc.Time,
		TotalWealth:     doc.TotalWealth,
		ZakatableWealth: doc.ZakatableWealth,
		EligibleBoxes:   doc.EligibleBoxes,
		TotalDue:        doc.TotalDue,
		Plan:            make(map[int64][]PlanEntry),
		applied:         doc.Applied,
	}
	for key, entries := range doc.Plan {
		aid, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid plan account key %q: %w", key, err)
		}
		for _, e := range entries {
			r.Plan[aid] = append(r.Plan[aid], PlanEntry{
				Box: e.Box,
				Snapshot: Box{
					Capital: e.Capital,
					Rest:    e.Rest,
					Zakat:   ZakatTrace{Count: e.Zakat.Count, Last: e.Zakat.Last, Total: e.Zakat.Total},
				},
				Desc:       e.Desc,
				Rate:       RateRecord{Time: e.Rate.Time, Rate: e.Rate.Rate, Desc: e.Rate.Desc},
				Due:        e.Due,
				Count:      e.Count,
				BelowNisab: e.BelowNisab,
			})
		}
	}
	return r, nil
}

// EncodeVault writes the whole ledger state to w as an indented JSON
// document, round-trippable through DecodeVault.
func EncodeVault(w io.Writer, l *Ledger) error {
	doc := vaultDoc{
		Accounts:  make(map[string]accountDoc, len(l.accounts)),
		LastID:    l.lastID,
		HistoryOn: l.history.Enabled(),
	}
	for acct := range l.Accounts() {
		ad := accountDoc{
			Name:      acct.name,
			Created:   acct.created,
			Hidden:    acct.hidden,
			Zakatable: acct.zakatable,
			Balance:   acct.balance,
			Boxes:     make(map[string]boxDoc, len(acct.boxes)),
			Logs:      make(map[string]logDoc, len(acct.logs)),
		}
		for t, box := range acct.Boxes() {
			ad.Boxes[t.Key()] = boxDoc{
				Capital: box.Capital,
				Rest:    box.Rest,
				Zakat:   zakatDoc{Count: box.Zakat.Count, Last: box.Zakat.Last, Total: box.Zakat.Total},
			}
		}
		for t, entry := range acct.Logs() {
			ld := logDoc{Value: entry.Value, Desc: entry.Desc, Ref: entry.Ref}
			if len(entry.Files) > 0 {
				ld.Files = make(map[string]string, len(entry.Files))
				for ft, path := range entry.Files {
					ld.Files[ft.Key()] = path
				}
			}
			ad.Logs[t.Key()] = ld
		}
		doc.Accounts[strconv.FormatInt(acct.id, 10)] = ad
	}
	if len(l.rates) > 0 {
		doc.Rates = make(map[string][]rateDoc, len(l.rates))
		for id, records := range l.rates {
			rds := make([]rateDoc, 0, len(records))
			for _, r := range records {
				rds = append(rds, rateDoc{Time: r.Time, Rate: r.Rate, Desc: r.Desc})
			}
			doc.Rates[strconv.FormatInt(id, 10)] = rds
		}
	}
	for _, step := range l.history.steps {
		sd := stepDoc{Time: step.Time}
		for _, e := range step.Events {
			sd.Events = append(sd.Events, eventDoc{
				Action: e.Action, Account: e.Account, Ref: e.Ref, Value: e.Value, Key: e.Key,
			})
		}
		doc.Steps = append(doc.Steps, sd)
	}
	if len(l.reports) > 0 {
		doc.Reports = make(map[string]reportDoc, len(l.reports))
		for t, r := range l.reports {
			doc.Reports[t.Key()] = reportToDoc(r)
		}
	}
	if l.lock != uuid.Nil {
		doc.Lock = l.lock.String()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode vault: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("could not write vault: %w", err)
	}
	return nil
}

// DecodeVault reads a vault document and rebuilds the ledger. A lock that
// was persisted by another session is preserved: the decoded ledger reports
// Locked and refuses mutations until BreakLock.
func DecodeVault(r io.Reader) (*Ledger, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read vault: %w", err)
	}
	var doc vaultDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("could not parse vault: %w", err)
	}

	l := NewLedger()
	l.history.enabled = doc.HistoryOn
	l.lastID = doc.LastID

	for key, ad := range doc.Accounts {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid account key %q: %w", key, err)
		}
		acct := newAccount(id, ad.Created)
		acct.name = ad.Name
		acct.hidden = ad.Hidden
		acct.zakatable = ad.Zakatable
		acct.balance = ad.Balance
		for bk, bd := range ad.Boxes {
			t, err := daytime.ParseKey(bk)
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", key, err)
			}
			acct.boxes[t] = &Box{
				Capital: bd.Capital,
				Rest:    bd.Rest,
				Zakat:   ZakatTrace{Count: bd.Zakat.Count, Last: bd.Zakat.Last, Total: bd.Zakat.Total},
			}
		}
		for lk, ld := range ad.Logs {
			t, err := daytime.ParseKey(lk)
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", key, err)
			}
			entry := &Log{Value: ld.Value, Desc: ld.Desc, Ref: ld.Ref}
			if len(ld.Files) > 0 {
				entry.Files = make(map[daytime.Time]string, len(ld.Files))
				for fk, path := range ld.Files {
					ft, err := daytime.ParseKey(fk)
					if err != nil {
						return nil, fmt.Errorf("account %s log %s: %w", key, lk, err)
					}
					entry.Files[ft] = path
				}
			}
			acct.logs[t] = entry
		}
		l.accounts[id] = acct
		if acct.name != "" {
			l.names[acct.name] = id
		}
		if id > l.lastID {
			l.lastID = id
		}
	}

	for key, rds := range doc.Rates {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid exchange key %q: %w", key, err)
		}
		records := make([]RateRecord, 0, len(rds))
		for _, rd := range rds {
			records = append(records, RateRecord{Time: rd.Time, Rate: rd.Rate, Desc: rd.Desc})
		}
		l.rates[id] = records
	}

	for _, sd := range doc.Steps {
		step := Step{Time: sd.Time}
		for _, ed := range sd.Events {
			step.Events = append(step.Events, Event{
				Action: ed.Action, Account: ed.Account, Ref: ed.Ref, Value: ed.Value, Key: ed.Key,
			})
		}
		l.history.steps = append(l.history.steps, step)
	}

	for key, rd := range doc.Reports {
		t, err := daytime.ParseKey(key)
		if err != nil {
			return nil, fmt.Errorf("invalid report key %q: %w", key, err)
		}
		report, err := docToReport(rd)
		if err != nil {
			return nil, err
		}
		l.reports[t] = report
	}

	if doc.Lock != "" {
		token, err := uuid.Parse(doc.Lock)
		if err != nil {
			return nil, fmt.Errorf("invalid lock token %q: %w", doc.Lock, err)
		}
		l.lock = token
		l.holds = 1
	}
	return l, nil
}

// BreakLock forcibly clears the advisory lock, whoever holds it. It is the
// recovery path after a crashed holder; normal releases go through Free.
func (l *Ledger) BreakLock() {
	l.lock = uuid.Nil
	l.holds = 0
}
