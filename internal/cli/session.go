package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/contacts/internal/router"
)

const (
	welcomeBanner = "Welcome to the assistant bot!"
	commandPrompt = "Enter a command: "
)

// session is one interactive read-dispatch-print loop.
type session struct {
	in          *bufio.Scanner
	out         io.Writer
	router      *router.Router
	palette     palette
	defaultFile string
	logger      *zap.Logger
}

func (a *app) runSession(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s := &session{
		in:          bufio.NewScanner(cmd.InOrStdin()),
		out:         out,
		router:      a.newRouter(),
		palette:     newPalette(out, a.cfg.Color),
		defaultFile: a.cfg.BookFile,
		logger:      a.logger.Named("session"),
	}
	if err := s.run(); err != nil {
		return sysError(err)
	}
	return nil
}

// run prints the banner and processes commands until a quit command, end
// of input, or a failure the router does not translate.
func (s *session) run() error {
	fmt.Fprintln(s.out, s.palette.paint(s.palette.banner, welcomeBanner))
	s.logger.Info("session started")

	for {
		line, ok := s.ask(commandPrompt)
		if !ok {
			fmt.Fprintln(s.out)
			s.logger.Info("input closed, ending session")
			return s.in.Err()
		}

		cmd, args := router.Parse(line)
		if cmd == "" {
			continue
		}
		if router.NeedsFilename(cmd, args) {
			name, ok := s.ask(fmt.Sprintf("Enter the filename to %s: ", cmd))
			if !ok {
				fmt.Fprintln(s.out)
				return s.in.Err()
			}
			if name = strings.TrimSpace(name); name == "" {
				name = s.defaultFile
			}
			args = []string{name}
		}

		resp, err := s.router.Execute(cmd, args)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		s.print(resp)
		if resp.Quit {
			s.logger.Info("session ended")
			return nil
		}
	}
}

// ask writes prompt and reads one line. It reports false at end of input.
func (s *session) ask(prompt string) (string, bool) {
	fmt.Fprint(s.out, s.palette.paint(s.palette.prompt, prompt))
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *session) print(resp router.Response) {
	style := s.palette.reply
	if resp.Failed {
		style = s.palette.failure
	}
	fmt.Fprintln(s.out, s.palette.paint(style, resp.Text))
}
