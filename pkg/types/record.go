package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Placeholders used by Record.String for absent values.
const (
	NotSpecified = "Not specified"
	NoNotes      = "No notes"
	NoTags       = "No tags"
)

// Record is one contact. It is created with a name only; every other field
// is added or edited afterwards by its owner.
type Record struct {
	ID       string // UUID v7, generated on creation.
	name     Name
	phones   []Phone
	email    *Email
	address  *Address
	birthday *Birthday
	notes    string
	tags     []string
}

// NewRecord creates a record with a fresh ID and the given name.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{ID: newID(), name: n}, nil
}

// newID generates a UUID v7, falling back to v4.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Name returns the contact name.
func (r *Record) Name() string { return r.name.String() }

// Rename validates and replaces the name. Re-keying the address book is the
// caller's job.
func (r *Record) Rename(name string) error {
	n, err := NewName(name)
	if err != nil {
		return err
	}
	r.name = n
	return nil
}

// Phones returns the phone numbers in insertion order.
func (r *Record) Phones() []string {
	out := make([]string, len(r.phones))
	for i, p := range r.phones {
		out[i] = p.String()
	}
	return out
}

// AddPhone appends a phone. Duplicates are kept.
func (r *Record) AddPhone(phone string) error {
	p, err := NewPhone(phone)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to phone. Absent phones are ignored.
func (r *Record) RemovePhone(phone string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.String() != phone {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone removes oldPhone and appends newPhone. When oldPhone is absent
// newPhone is still appended. The record is unchanged if newPhone is invalid.
func (r *Record) EditPhone(oldPhone, newPhone string) error {
	p, err := NewPhone(newPhone)
	if err != nil {
		return err
	}
	r.RemovePhone(oldPhone)
	r.phones = append(r.phones, p)
	return nil
}

// HasPhone reports whether any phone equals phone.
func (r *Record) HasPhone(phone string) bool {
	for _, p := range r.phones {
		if p.String() == phone {
			return true
		}
	}
	return false
}

// Email returns the email and whether it is set.
func (r *Record) Email() (string, bool) {
	if r.email == nil {
		return "", false
	}
	return r.email.String(), true
}

// SetEmail validates and replaces the email.
func (r *Record) SetEmail(email string) error {
	e, err := NewEmail(email)
	if err != nil {
		return err
	}
	r.email = &e
	return nil
}

// RemoveEmail clears the email.
func (r *Record) RemoveEmail() { r.email = nil }

// Address returns the address and whether it is set.
func (r *Record) Address() (string, bool) {
	if r.address == nil {
		return "", false
	}
	return r.address.String(), true
}

// SetAddress replaces the address.
func (r *Record) SetAddress(address string) error {
	a, err := NewAddress(address)
	if err != nil {
		return err
	}
	r.address = &a
	return nil
}

// RemoveAddress clears the address.
func (r *Record) RemoveAddress() { r.address = nil }

// Birthday returns the birthday and whether it is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// SetBirthday validates and replaces the birthday.
func (r *Record) SetBirthday(birthday string) error {
	b, err := NewBirthday(birthday)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// RemoveBirthday clears the birthday.
func (r *Record) RemoveBirthday() { r.birthday = nil }

// Notes returns the notes text, empty when none were set.
func (r *Record) Notes() string { return r.notes }

// SetNotes replaces the notes without validation.
func (r *Record) SetNotes(notes string) { r.notes = notes }

// Tags returns the tags in insertion order.
func (r *Record) Tags() []string {
	out := make([]string, len(r.tags))
	copy(out, r.tags)
	return out
}

// AddTag appends a tag. Duplicates are kept.
func (r *Record) AddTag(tag string) { r.tags = append(r.tags, tag) }

// RemoveTag drops the first occurrence of tag.
func (r *Record) RemoveTag(tag string) {
	for i, t := range r.tags {
		if t == tag {
			r.tags = append(r.tags[:i], r.tags[i+1:]...)
			return
		}
	}
}

// RemoveAllTags clears every tag.
func (r *Record) RemoveAllTags() { r.tags = nil }

// HasTag reports whether tag is present, compared case-sensitively.
func (r *Record) HasTag(tag string) bool {
	for _, t := range r.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ShowNotes renders the notes or NoNotes.
func (r *Record) ShowNotes() string {
	if r.notes == "" {
		return NoNotes
	}
	return r.notes
}

// ShowTags renders the tags joined by ", " or NoTags.
func (r *Record) ShowTags() string {
	if len(r.tags) == 0 {
		return NoTags
	}
	return strings.Join(r.tags, ", ")
}

// String renders the full contact summary on one line.
func (r *Record) String() string {
	return fmt.Sprintf("Contact name: %s, phones: %s, email: %s, address: %s, birthday: %s, notes: %s, tags: %s",
		r.name,
		strings.Join(r.Phones(), "; "),
		orNotSpecified(r.email),
		orNotSpecified(r.address),
		orNotSpecified(r.birthday),
		r.ShowNotes(),
		r.ShowTags(),
	)
}

func orNotSpecified[F Field](f *F) string {
	if f == nil {
		return NotSpecified
	}
	return (*f).String()
}
