package zakat

import (
	"fmt"

	"github.com/vzool/zakat/daytime"
)

// AddFile attaches external file metadata to a log entry and returns the
// attachment's key. The file itself is never read; the ledger only keeps
// the path.
func (l *Ledger) AddFile(ref Ref, logKey daytime.Time, path string) (daytime.Time, error) {
	release, err := l.acquire()
	if err != nil {
		return 0, err
	}
	defer release()
	acct, ok := l.Account(ref)
	if !ok {
		return 0, fmt.Errorf("add file to %v: %w", ref, ErrUnknownAccount)
	}
	entry := acct.logs[logKey]
	if entry == nil {
		return 0, fmt.Errorf("add file to %v: no log at %v: %w", ref, logKey, ErrUnknownAccount)
	}
	at := daytime.Now()
	done := l.beginStep(at)
	defer done()
	if entry.Files == nil {
		entry.Files = make(map[daytime.Time]string)
	}
	for entry.Files[at] != "" {
		at++
	}
	entry.Files[at] = path
	l.record(Event{Action: ActionAddFile, Account: acct.id, Ref: logKey, Key: path})
	return at, nil
}

// RemoveFile detaches file metadata from a log entry. It reports whether
// the attachment existed.
func (l *Ledger) RemoveFile(ref Ref, logKey, fileKey daytime.Time) bool {
	release, err := l.acquire()
	if err != nil {
		return false
	}
	defer release()
	acct, ok := l.Account(ref)
	if !ok {
		return false
	}
	entry := acct.logs[logKey]
	if entry == nil {
		return false
	}
	path, ok := entry.Files[fileKey]
	if !ok {
		return false
	}
	done := l.beginStep(daytime.Now())
	defer done()
	delete(entry.Files, fileKey)
	l.record(Event{Action: ActionRemoveFile, Account: acct.id, Ref: logKey, Key: path})
	return true
}
