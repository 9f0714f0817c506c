// Package storage persists address book snapshots as whole files.
// A snapshot is a versioned, ordered list of contacts, each an ordered list
// of tagged field values, written in one of three formats (JSONL, YAML,
// SQLite). Every write goes to a temp file that is renamed over the target.
package storage

import (
	"fmt"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

// SchemaVersion is the only snapshot version Load accepts.
const SchemaVersion = 1

// Field tags in the order a contact writes them.
const (
	TagName     = "name"
	TagPhone    = "phone"
	TagEmail    = "email"
	TagAddress  = "address"
	TagBirthday = "birthday"
	TagNotes    = "notes"
	TagTag      = "tag"
)

// Snapshot is the persisted form of an address book.
type Snapshot struct {
	Version  int       `json:"version" yaml:"version"`
	Contacts []Contact `json:"contacts" yaml:"contacts"`
}

// Contact is one persisted record. The first field is always the name.
type Contact struct {
	ID     string  `json:"id" yaml:"id"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field is one tagged value of a persisted record.
type Field struct {
	Tag   string `json:"tag" yaml:"tag"`
	Value string `json:"value" yaml:"value"`
}

// Encode builds a snapshot of records in the given order.
func Encode(records []*types.Record) Snapshot {
	snap := Snapshot{Version: SchemaVersion, Contacts: make([]Contact, 0, len(records))}
	for _, r := range records {
		snap.Contacts = append(snap.Contacts, encodeRecord(r))
	}
	return snap
}

func encodeRecord(r *types.Record) Contact {
	fields := []Field{{Tag: TagName, Value: r.Name()}}
	for _, p := range r.Phones() {
		fields = append(fields, Field{Tag: TagPhone, Value: p})
	}
	if v, ok := r.Email(); ok {
		fields = append(fields, Field{Tag: TagEmail, Value: v})
	}
	if v, ok := r.Address(); ok {
		fields = append(fields, Field{Tag: TagAddress, Value: v})
	}
	if v, ok := r.Birthday(); ok {
		fields = append(fields, Field{Tag: TagBirthday, Value: v.String()})
	}
	if n := r.Notes(); n != "" {
		fields = append(fields, Field{Tag: TagNotes, Value: n})
	}
	for _, t := range r.Tags() {
		fields = append(fields, Field{Tag: TagTag, Value: t})
	}
	return Contact{ID: r.ID, Fields: fields}
}

// Decode rebuilds records from a snapshot, replaying every field through
// its validating constructor. Any invalid field or a repeated contact id
// rejects the whole snapshot.
func Decode(snap Snapshot) ([]*types.Record, error) {
	if snap.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", types.ErrUnsupportedVersion, snap.Version)
	}
	records := make([]*types.Record, 0, len(snap.Contacts))
	seen := make(map[string]int, len(snap.Contacts))
	for i, c := range snap.Contacts {
		r, err := decodeContact(c)
		if err != nil {
			return nil, fmt.Errorf("%w: contact %d: %v", types.ErrMalformedSnapshot, i, err)
		}
		if first, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("%w: contact %d: id %q already used by contact %d", types.ErrMalformedSnapshot, i, r.ID, first)
		}
		seen[r.ID] = i
		records = append(records, r)
	}
	return records, nil
}

func decodeContact(c Contact) (*types.Record, error) {
	if len(c.Fields) == 0 || c.Fields[0].Tag != TagName {
		return nil, fmt.Errorf("first field must be %q", TagName)
	}
	r, err := types.NewRecord(c.Fields[0].Value)
	if err != nil {
		return nil, err
	}
	if c.ID != "" {
		r.ID = c.ID
	}
	for _, f := range c.Fields[1:] {
		if err := applyField(r, f); err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Tag, err)
		}
	}
	return r, nil
}

func applyField(r *types.Record, f Field) error {
	switch f.Tag {
	case TagPhone:
		return r.AddPhone(f.Value)
	case TagEmail:
		return r.SetEmail(f.Value)
	case TagAddress:
		return r.SetAddress(f.Value)
	case TagBirthday:
		return r.SetBirthday(f.Value)
	case TagNotes:
		r.SetNotes(f.Value)
	case TagTag:
		r.AddTag(f.Value)
	default:
		return fmt.Errorf("unknown tag")
	}
	return nil
}
