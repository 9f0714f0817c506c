package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

// handlerFunc runs a command with its bound arguments.
type handlerFunc func(r *Router, args []string) (string, error)

// command is one entry of the command table.
type command struct {
	usage    string
	summary  string
	arity    int  // positional arguments required
	variadic bool // the last argument takes the remaining tokens
	mutates  bool
	filename bool // the single argument is a filename the session may prompt for
	quit     bool
	run      handlerFunc
}

// bind checks args against the command's arity. A variadic command joins
// every token from its last position on with single spaces.
func (c command) bind(args []string) ([]string, error) {
	if len(args) < c.arity {
		return nil, types.ErrMissingArgument
	}
	if len(args) == c.arity {
		return args, nil
	}
	if !c.variadic || c.arity == 0 {
		return nil, types.ErrMissingArgument
	}
	bound := append([]string{}, args[:c.arity-1]...)
	return append(bound, strings.Join(args[c.arity-1:], " ")), nil
}

// commands maps a lower-case command token to its entry. It is filled in
// init because the help handler reads it.
var commands map[string]command

// helpText is the rendered command listing.
var helpText string

func init() {
	commands = map[string]command{
		"hello": {usage: "hello", summary: "greet the assistant", run: hello},
		"help":  {usage: "help", summary: "list commands", run: help},
		"close": {usage: "close", summary: "end the session", quit: true, run: goodbye},
		"exit":  {usage: "exit", summary: "end the session", quit: true, run: goodbye},

		"add":            {usage: "add <name> <phone>", summary: "create a contact with a phone", arity: 2, mutates: true, run: addContact},
		"add-phone":      {usage: "add-phone <name> <phone>", summary: "add another phone", arity: 2, mutates: true, run: addPhone},
		"change":         {usage: "change <name> <phone>", summary: "replace the first phone", arity: 2, mutates: true, run: changeContact},
		"change-phone":   {usage: "change-phone <name> <old> <new>", summary: "replace a phone", arity: 3, mutates: true, run: changePhone},
		"change-name":    {usage: "change-name <old> <new>", summary: "rename a contact", arity: 2, mutates: true, run: changeName},
		"change-email":   {usage: "change-email <name> <email>", summary: "set the email", arity: 2, mutates: true, run: setEmail},
		"add-email":      {usage: "add-email <name> <email>", summary: "set the email", arity: 2, mutates: true, run: setEmail},
		"change-address": {usage: "change-address <name> <address...>", summary: "set the address", arity: 2, variadic: true, mutates: true, run: setAddress},
		"add-address":    {usage: "add-address <name> <address...>", summary: "set the address", arity: 2, variadic: true, mutates: true, run: setAddress},
		"add-birthday":   {usage: "add-birthday <name> <DD.MM.YYYY>", summary: "set the birthday", arity: 2, mutates: true, run: addBirthday},
		"add-notes":      {usage: "add-notes <name> <notes...>", summary: "replace the notes", arity: 2, variadic: true, mutates: true, run: addNotes},
		"add-tag":        {usage: "add-tag <name> <tag>", summary: "append a tag", arity: 2, mutates: true, run: addTag},

		"delete-contact":  {usage: "delete-contact <name>", summary: "remove a contact", arity: 1, mutates: true, run: deleteContact},
		"delete-phone":    {usage: "delete-phone <name> <phone>", summary: "remove a phone", arity: 2, mutates: true, run: deletePhone},
		"delete-email":    {usage: "delete-email <name>", summary: "clear the email", arity: 1, mutates: true, run: deleteEmail},
		"delete-address":  {usage: "delete-address <name>", summary: "clear the address", arity: 1, mutates: true, run: deleteAddress},
		"delete-birthday": {usage: "delete-birthday <name>", summary: "clear the birthday", arity: 1, mutates: true, run: deleteBirthday},
		"delete-tag":      {usage: "delete-tag <name> <tag>", summary: "remove the first matching tag", arity: 2, mutates: true, run: deleteTag},
		"delete-all-tags": {usage: "delete-all-tags <name>", summary: "remove every tag", arity: 1, mutates: true, run: deleteAllTags},

		"phone":         {usage: "phone <name>", summary: "show phones", arity: 1, run: showPhone},
		"email":         {usage: "email <name>", summary: "show the email", arity: 1, run: showEmail},
		"address":       {usage: "address <name>", summary: "show the address", arity: 1, run: showAddress},
		"show-birthday": {usage: "show-birthday <name>", summary: "show the birthday", arity: 1, run: showBirthday},
		"show-notes":    {usage: "show-notes <name>", summary: "show the notes", arity: 1, run: showNotes},
		"notes":         {usage: "notes <name>", summary: "show the notes", arity: 1, run: showNotes},
		"show-tags":     {usage: "show-tags <name>", summary: "show the tags", arity: 1, run: showTags},
		"all":           {usage: "all", summary: "show every contact", run: showAll},
		"birthdays":     {usage: "birthdays", summary: "show birthdays in the next 7 days", run: birthdays},

		"search-by-tag": {usage: "search-by-tag <tag>", summary: "contacts carrying a tag", arity: 1, run: searchByTag},
		"sort-by-tags":  {usage: "sort-by-tags <tag>", summary: "all contacts, tagged ones last", arity: 1, run: sortByTags},
		"find-by-phone": {usage: "find-by-phone <phone>", summary: "contact owning a phone", arity: 1, run: findByPhone},
		"find-by-email": {usage: "find-by-email <email>", summary: "contact owning an email", arity: 1, run: findByEmail},

		"save": {usage: "save <file>", summary: "write the address book", arity: 1, filename: true, run: save},
		"load": {usage: "load <file>", summary: "replace the address book from a file", arity: 1, filename: true, mutates: true, run: load},
	}
	helpText = renderHelp()
}

func renderHelp() string {
	tokens := make([]string, 0, len(commands))
	width := 0
	for tok, c := range commands {
		tokens = append(tokens, tok)
		width = max(width, len(c.usage))
	}
	sort.Strings(tokens)

	var sb strings.Builder
	sb.WriteString("Available commands:")
	for _, tok := range tokens {
		c := commands[tok]
		fmt.Fprintf(&sb, "\n  %-*s  %s", width, c.usage, c.summary)
	}
	return sb.String()
}

// Commands returns the sorted command tokens.
func Commands() []string {
	out := make([]string, 0, len(commands))
	for tok := range commands {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}
