package router

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

func hello(*Router, []string) (string, error) { return "How can I help you?", nil }

func help(*Router, []string) (string, error) { return helpText, nil }

func goodbye(*Router, []string) (string, error) { return MsgGoodbye, nil }

func addContact(r *Router, args []string) (string, error) {
	rec, err := types.NewRecord(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.AddPhone(args[1]); err != nil {
		return "", err
	}
	r.book.Add(rec)
	return "Contact added.", nil
}

func addPhone(r *Router, args []string) (string, error) {
	rec, err := r.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.AddPhone(args[1]); err != nil {
		return "", err
	}
	return "Phone added.", nil
}

// changeContact replaces the contact's first phone. A contact without
// phones has nothing to change.
func changeContact(r *Router, args []string) (string, error) {
	rec, err := r.book.Find(args[0])
	if err != nil {
		return "", err
	}
	phones := rec.Phones()
	if len(phones) == 0 {
		return "", types.ErrMissingArgument
	}
	if err := rec.EditPhone(phones[0], args[1]); err != nil {
		return "", err
	}
	return "Contact updated.", nil
}

func changePhone(r *Router, args []string) (string, error) {
	rec, err := r.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.EditPhone(args[1], args[2]); err != nil {
		return "", err
	}
	return "Phone updated.", nil
}

func changeName(r *Router, args []string) (string, error) {
	if err := r.book.Rename(args[0], args[1]); err != nil {
		return "", err
	}
	return "Contact name updated.", nil
}

func setEmail(r *Router, args []string) (string, error) {
	rec, err := r.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.SetEmail(args[1]); err != nil {
		return "", err
	}
	return "Email updated.", nil
}

func setAddress(r *Router, args []string) (string, error) {
	rec, err := r.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.SetAddress(args[1]); err != nil {
		return "", err
	}
	return "Address updated.", nil
}

func addBirthday(r *Router, args []string) (string, error) {
	rec, err := r.book.Find(args[0])
	if err != nil {
		return "", err
	}
	if err := rec.SetBirthday(args[1]); err != nil {
		return "", err
	}
	return "Birthday added.", nil
}

func addNotes(r *Router, args []string) (string, error) {
	rec, err := r.book.Find(args[0])
	if err != nil {
		return "", err
	}
	rec.SetNotes(args[1])
	return "Notes added.", nil
}

func addTag(r *Router, args []string) (string, error) {
	rec, err := r.book.Find(args[0])
	if err != nil {
		return "", err
	}
	rec.AddTag(args[1])
	return "Tag added.", nil
}

func deleteContact(r *Router, args []string) (string, error) {
	if _, err := r.book.Find(args[0]); err != nil {
		return "", err
	}
	r.book.Delete(args[0])
	return "Contact deleted.", nil
}

// modify looks up a contact and applies fn to it.
func modify(r *Router, name, reply string, fn func(*types.Record)) (string, error) {
	rec, err := r.book.Find(name)
	if err != nil {
		return "", err
	}
	fn(rec)
	return reply, nil
}

func deletePhone(r *Router, args []string) (string, error) {
	return modify(r, args[0], "Phone deleted.", func(rec *types.Record) { rec.RemovePhone(args[1]) })
}

func deleteEmail(r *Router, args []string) (string, error) {
	return modify(r, args[0], "Email deleted.", (*types.Record).RemoveEmail)
}

func deleteAddress(r *Router, args []string) (string, error) {
	return modify(r, args[0], "Address deleted.", (*types.Record).RemoveAddress)
}

func deleteBirthday(r *Router, args []string) (string, error) {
	return modify(r, args[0], "Birthday deleted.", (*types.Record).RemoveBirthday)
}

func deleteTag(r *Router, args []string) (string, error) {
	return modify(r, args[0], "Tag deleted.", func(rec *types.Record) { rec.RemoveTag(args[1]) })
}

func deleteAllTags(r *Router, args []string) (string, error) {
	return modify(r, args[0], "All tags deleted.", (*types.Record).RemoveAllTags)
}

// show renders one attribute of a contact, or a combined "not found or not
// specified" reply when the contact or the value is missing.
func show(r *Router, name, label string, value func(*types.Record) (string, bool)) (string, error) {
	rec, err := r.book.Find(name)
	if err == nil {
		if v, ok := value(rec); ok {
			return fmt.Sprintf("%s's %s: %s", name, label, v), nil
		}
	}
	return fmt.Sprintf("Contact not found or %s not specified.", label), nil
}

func showPhone(r *Router, args []string) (string, error) {
	return show(r, args[0], "phone", func(rec *types.Record) (string, bool) {
		phones := rec.Phones()
		if len(phones) == 0 {
			return "", false
		}
		return phones[0], true
	})
}

func showEmail(r *Router, args []string) (string, error) {
	return show(r, args[0], "email", (*types.Record).Email)
}

func showAddress(r *Router, args []string) (string, error) {
	return show(r, args[0], "address", (*types.Record).Address)
}

func showBirthday(r *Router, args []string) (string, error) {
	return show(r, args[0], "birthday", func(rec *types.Record) (string, bool) {
		b, ok := rec.Birthday()
		return b.String(), ok
	})
}

func showNotes(r *Router, args []string) (string, error) {
	return show(r, args[0], "notes", func(rec *types.Record) (string, bool) {
		return rec.Notes(), rec.Notes() != ""
	})
}

func showTags(r *Router, args []string) (string, error) {
	return show(r, args[0], "tags", func(rec *types.Record) (string, bool) {
		return rec.ShowTags(), len(rec.Tags()) > 0
	})
}

// renderAll joins record summaries one per line, or returns empty.
func renderAll(records []*types.Record, empty string) string {
	if len(records) == 0 {
		return empty
	}
	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.String()
	}
	return strings.Join(lines, "\n")
}

func showAll(r *Router, _ []string) (string, error) {
	return renderAll(r.book.Records(), "No contacts found."), nil
}

func birthdays(r *Router, _ []string) (string, error) {
	names := r.book.UpcomingBirthdays(r.now())
	if len(names) == 0 {
		return "No upcoming birthdays.", nil
	}
	return "Upcoming birthdays: " + strings.Join(names, ", "), nil
}

func searchByTag(r *Router, args []string) (string, error) {
	return renderAll(r.book.SearchByTag(args[0]), "No contacts found with the specified tag."), nil
}

func sortByTags(r *Router, args []string) (string, error) {
	return renderAll(r.book.SortByTag(args[0]), "No contacts found with the specified tag."), nil
}

func findByPhone(r *Router, args []string) (string, error) {
	rec, err := r.book.FindByPhone(args[0])
	if err != nil {
		return "", err
	}
	return rec.String(), nil
}

func findByEmail(r *Router, args []string) (string, error) {
	rec, err := r.book.FindByEmail(args[0])
	if err != nil {
		return "", err
	}
	return rec.String(), nil
}

func save(r *Router, args []string) (string, error) {
	if err := r.book.Persist(r.resolvePath(args[0])); err != nil {
		return "", err
	}
	return "Address book saved.", nil
}

func load(r *Router, args []string) (string, error) {
	if err := r.book.Restore(r.resolvePath(args[0])); err != nil {
		return "", err
	}
	return "Address book loaded.", nil
}
