package types

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Kind identifies a field variant.
type Kind uint8

// Field kinds. The set is closed; Field cannot be implemented outside this
// package.
const (
	KindName Kind = iota + 1
	KindPhone
	KindEmail
	KindAddress
	KindBirthday
)

var kindNames = map[Kind]string{
	KindName:     "name",
	KindPhone:    "phone",
	KindEmail:    "email",
	KindAddress:  "address",
	KindBirthday: "birthday",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// BirthdayLayout is the DD.MM.YYYY layout accepted by NewBirthday.
const BirthdayLayout = "02.01.2006"

// PhoneLength is the exact number of digits in a phone number.
const PhoneLength = 10

// Validation reasons shown to the user.
const (
	reasonName     = "Invalid name. It should not be empty."
	reasonPhone    = "Invalid phone number format. It should contain 10 digits."
	reasonEmail    = "Invalid email format. It should look like name@domain.tld."
	reasonBirthday = "Invalid birthday format. It should be in DD.MM.YYYY format."
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Field is one validated scalar value of a specific kind.
type Field interface {
	Kind() Kind
	String() string
	field()
}

// Name is a contact's non-empty name. It is the address book key.
type Name struct{ value string }

// Phone is a ten-digit phone number.
type Phone struct{ value string }

// Email is an address of the form local@domain.tld.
type Email struct{ value string }

// Address is free-form postal address text.
type Address struct{ value string }

// Birthday is a calendar date written as DD.MM.YYYY.
type Birthday struct{ value string }

// NewName validates a contact name.
func NewName(s string) (Name, error) {
	if strings.TrimSpace(s) == "" {
		return Name{}, invalid(KindName, s, reasonName)
	}
	return Name{value: s}, nil
}

// NewPhone accepts exactly ten decimal digits.
func NewPhone(s string) (Phone, error) {
	if utf8.RuneCountInString(s) != PhoneLength {
		return Phone{}, invalid(KindPhone, s, reasonPhone)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return Phone{}, invalid(KindPhone, s, reasonPhone)
		}
	}
	return Phone{value: s}, nil
}

// NewEmail accepts text with one '@' followed by a domain containing a dot.
func NewEmail(s string) (Email, error) {
	if !emailPattern.MatchString(s) {
		return Email{}, invalid(KindEmail, s, reasonEmail)
	}
	return Email{value: s}, nil
}

// NewAddress accepts any text.
func NewAddress(s string) (Address, error) {
	return Address{value: s}, nil
}

// NewBirthday accepts a valid calendar date in DD.MM.YYYY form.
func NewBirthday(s string) (Birthday, error) {
	if _, err := time.Parse(BirthdayLayout, s); err != nil {
		return Birthday{}, invalid(KindBirthday, s, reasonBirthday)
	}
	return Birthday{value: s}, nil
}

// NewField dispatches to the constructor for kind.
func NewField(kind Kind, s string) (Field, error) {
	switch kind {
	case KindName:
		return NewName(s)
	case KindPhone:
		return NewPhone(s)
	case KindEmail:
		return NewEmail(s)
	case KindAddress:
		return NewAddress(s)
	case KindBirthday:
		return NewBirthday(s)
	default:
		return nil, invalid(kind, s, "Unknown field kind.")
	}
}

func (n Name) Kind() Kind     { return KindName }
func (n Name) String() string { return n.value }
func (Name) field()           {}

func (p Phone) Kind() Kind     { return KindPhone }
func (p Phone) String() string { return p.value }
func (Phone) field()           {}

func (e Email) Kind() Kind     { return KindEmail }
func (e Email) String() string { return e.value }
func (Email) field()           {}

func (a Address) Kind() Kind     { return KindAddress }
func (a Address) String() string { return a.value }
func (Address) field()           {}

func (b Birthday) Kind() Kind     { return KindBirthday }
func (b Birthday) String() string { return b.value }
func (Birthday) field()           {}

// In returns the birthday as midnight of its stored date in loc. The stored
// year is kept as is.
func (b Birthday) In(loc *time.Location) time.Time {
	t, err := time.ParseInLocation(BirthdayLayout, b.value, loc)
	if err != nil {
		// Unreachable for values built by NewBirthday.
		return time.Time{}
	}
	return t
}
