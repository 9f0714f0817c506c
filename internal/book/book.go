// Package book implements the address book: an ordered store of contact
// records keyed by name, with lookups, tag queries, the birthday window and
// whole-file persistence.
package book

import (
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

// BirthdayWindow is the length of the half-open interval [now, now+window)
// used by UpcomingBirthdays.
const BirthdayWindow = 7 * 24 * time.Hour

// Book maps contact names to records. For every entry the key equals the
// record's name. Book is not safe for concurrent use.
type Book struct {
	records map[string]*types.Record
	order   []string // insertion order of keys

	format string // snapshot format for paths without a known extension
	logger *zap.Logger
}

// Option configures a Book.
type Option func(*Book)

// WithFormat sets the snapshot format used when a path's extension does not
// name one.
func WithFormat(format string) Option {
	return func(b *Book) { b.format = format }
}

// WithLogger sets the logger used for persistence events.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Book) { b.logger = logger }
}

// New returns an empty Book.
func New(opts ...Option) *Book {
	b := &Book{
		records: make(map[string]*types.Record),
		format:  types.DefaultFormat,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Len returns the number of contacts.
func (b *Book) Len() int { return len(b.order) }

// Add inserts r under its name. An existing record with the same name is
// replaced and keeps its list position.
func (b *Book) Add(r *types.Record) {
	if r == nil {
		return
	}
	name := r.Name()
	if _, ok := b.records[name]; !ok {
		b.order = append(b.order, name)
	}
	b.records[name] = r
}

// Find returns the record stored under name, or ErrNotFound.
func (b *Book) Find(name string) (*types.Record, error) {
	r, ok := b.records[name]
	if !ok {
		return nil, types.NotFoundError(name)
	}
	return r, nil
}

// FindByPhone returns the first record, in list order, having phone.
func (b *Book) FindByPhone(phone string) (*types.Record, error) {
	for _, r := range b.Records() {
		if r.HasPhone(phone) {
			return r, nil
		}
	}
	return nil, types.NotFoundError(phone)
}

// FindByEmail returns the first record, in list order, whose email is email.
func (b *Book) FindByEmail(email string) (*types.Record, error) {
	for _, r := range b.Records() {
		if e, ok := r.Email(); ok && e == email {
			return r, nil
		}
	}
	return nil, types.NotFoundError(email)
}

// Delete removes name. Unknown names are ignored.
func (b *Book) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
}

// Rename moves the record stored under oldName to newName. The new name is
// validated before anything changes, so a failed rename leaves the book and
// the record untouched. The record keeps its list position.
func (b *Book) Rename(oldName, newName string) error {
	if _, err := types.NewName(newName); err != nil {
		return err
	}
	r, err := b.Find(oldName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	if _, taken := b.records[newName]; taken {
		return &types.ValidationError{
			Kind:   types.KindName,
			Value:  newName,
			Reason: fmt.Sprintf("Contact %s already exists.", newName),
		}
	}

	if err := r.Rename(newName); err != nil {
		return err
	}
	delete(b.records, oldName)
	b.records[newName] = r
	b.order[slices.Index(b.order, oldName)] = newName
	return nil
}

// Records returns every record in list order.
func (b *Book) Records() []*types.Record {
	out := make([]*types.Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// SearchByTag returns the records carrying tag, compared case-sensitively,
// in list order.
func (b *Book) SearchByTag(tag string) []*types.Record {
	var out []*types.Record
	for _, r := range b.Records() {
		if r.HasTag(tag) {
			out = append(out, r)
		}
	}
	return out
}

// SortByTag returns every record with those lacking tag first and those
// carrying it last. Relative order inside each group is preserved.
func (b *Book) SortByTag(tag string) []*types.Record {
	out := b.Records()
	slices.SortStableFunc(out, func(x, y *types.Record) int {
		return boolKey(x.HasTag(tag)) - boolKey(y.HasTag(tag))
	})
	return out
}

func boolKey(v bool) int {
	if v {
		return 1
	}
	return 0
}

// UpcomingBirthdays returns the names, in list order, whose stored birthday
// falls in [now, now+BirthdayWindow). The stored year is compared as is, so
// a birthday recorded in a past year never qualifies.
func (b *Book) UpcomingBirthdays(now time.Time) []string {
	end := now.Add(BirthdayWindow)
	var names []string
	for _, r := range b.Records() {
		bd, ok := r.Birthday()
		if !ok {
			continue
		}
		t := bd.In(now.Location())
		if !t.Before(now) && t.Before(end) {
			names = append(names, r.Name())
		}
	}
	return names
}
