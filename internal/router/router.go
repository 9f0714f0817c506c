// Package router turns command lines into operations on a book.Book.
// Every handler runs through one adapter that maps user-facing failures
// (invalid field values, unknown contacts, missing arguments) to a reply.
// Any other failure is returned to the caller.
package router

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/contacts/internal/book"
	"github.com/mesh-intelligence/contacts/internal/paths"
	"github.com/mesh-intelligence/contacts/pkg/types"
)

// Fixed replies.
const (
	MsgInvalidCommand  = "Invalid command."
	MsgContactNotFound = "Contact not found."
	MsgMissingArgument = "Invalid command or missing argument."
	MsgGoodbye         = "Goodbye!"
)

// Response is the outcome of one dispatched command.
type Response struct {
	Text    string
	Quit    bool // the session should end
	Failed  bool // Text describes a rejected command
	Mutated bool // the command may have changed the book
	Loaded  bool // the book was replaced from a file
}

// Router dispatches commands against a book.
type Router struct {
	book    *book.Book
	now     func() time.Time
	dataDir string
	logger  *zap.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithClock sets the time source used by the birthdays command.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithDataDir sets the directory relative save/load filenames resolve
// against.
func WithDataDir(dir string) Option {
	return func(r *Router) { r.dataDir = dir }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// New returns a Router over b.
func New(b *book.Book, opts ...Option) *Router {
	r := &Router{
		book:   b,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Book returns the book the router operates on.
func (r *Router) Book() *book.Book { return r.book }

// Parse splits a command line into a lower-cased command token and its
// arguments.
func Parse(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// NeedsFilename reports whether cmd takes a filename that the caller should
// prompt for because args is empty.
func NeedsFilename(cmd string, args []string) bool {
	c, ok := commands[cmd]
	return ok && c.filename && len(args) == 0
}

// Dispatch parses and executes one command line.
func (r *Router) Dispatch(line string) (Response, error) {
	cmd, args := Parse(line)
	return r.Execute(cmd, args)
}

// Execute runs cmd with args. Unknown commands reply MsgInvalidCommand
// without running anything. The returned error is non-nil only for failures
// the router does not translate, such as I/O errors while persisting.
func (r *Router) Execute(cmd string, args []string) (Response, error) {
	c, ok := commands[strings.ToLower(cmd)]
	if !ok {
		r.logger.Debug("unknown command", zap.String("command", cmd))
		return Response{Text: MsgInvalidCommand, Failed: true}, nil
	}

	text, failed, err := r.invoke(c, args)
	if err != nil {
		r.logger.Error("command failed", zap.String("command", cmd), zap.Error(err))
		return Response{}, err
	}
	r.logger.Debug("command dispatched",
		zap.String("command", cmd),
		zap.Int("args", len(args)),
		zap.Bool("failed", failed),
	)
	return Response{
		Text:    text,
		Quit:    c.quit,
		Failed:  failed,
		Mutated: c.mutates && !failed,
		Loaded:  c.filename && c.mutates && !failed,
	}, nil
}

// invoke checks arity, runs the handler and maps user-facing errors to
// their reply text.
func (r *Router) invoke(c command, args []string) (string, bool, error) {
	text, err := func() (string, error) {
		a, err := c.bind(args)
		if err != nil {
			return "", err
		}
		return c.run(r, a)
	}()
	if err == nil {
		return text, false, nil
	}

	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Reason, true, nil
	case errors.Is(err, types.ErrNotFound):
		return MsgContactNotFound, true, nil
	case errors.Is(err, types.ErrMissingArgument):
		return MsgMissingArgument, true, nil
	default:
		return "", false, err
	}
}

// resolvePath anchors a relative filename at the data directory.
func (r *Router) resolvePath(name string) string {
	return paths.ResolveFile(r.dataDir, name)
}
