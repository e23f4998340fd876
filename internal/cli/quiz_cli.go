package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/spacetimes/internal/mastery"
	"github.com/at-ishikawa/spacetimes/internal/session"
)

const (
	quitCommand   = "q"
	replayCommand = "r"
	hintPrefix    = "h"
)

// QuizCLI drives practice sessions from a line-oriented terminal.
// Input lines and timer callbacks are multiplexed on one goroutine.
type QuizCLI struct {
	store        mastery.Store
	learnerID    string
	tables       []int
	options      session.Options
	rng          *rand.Rand
	logger       *slog.Logger
	stdinReader  io.Reader
	stdoutWriter io.Writer
}

func NewQuizCLI(
	store mastery.Store,
	learnerID string,
	tables []int,
	options session.Options,
	logger *slog.Logger,
) *QuizCLI {
	return &QuizCLI{
		store:        store,
		learnerID:    learnerID,
		tables:       tables,
		options:      options,
		rng:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
		logger:       logger,
		stdinReader:  os.Stdin,
		stdoutWriter: os.Stdout,
	}
}

// WithIO replaces the terminal the quiz reads from and writes to
func (cli *QuizCLI) WithIO(stdin io.Reader, stdout io.Writer) *QuizCLI {
	cli.stdinReader = stdin
	cli.stdoutWriter = stdout
	return cli
}

// loopClock delivers timer callbacks to the driver loop instead of running them on timer goroutines
type loopClock struct {
	events chan<- func()
	done   <-chan struct{}
}

func (c *loopClock) Now() time.Time {
	return time.Now()
}

func (c *loopClock) AfterFunc(d time.Duration, f func()) session.Timer {
	return time.AfterFunc(d, func() {
		select {
		case c.events <- f:
		case <-c.done:
		}
	})
}

func (cli *QuizCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	done := make(chan struct{})
	defer close(done)
	events := make(chan func())
	lines := readLines(cli.stdinReader, done)

	presenter := newTerminalPresenter(cli.stdoutWriter)
	clock := &loopClock{events: events, done: done}
	engine := session.NewEngine(cli.store, clock, presenter, cli.rng, cli.logger)

	for {
		s, err := engine.Start(ctx, cli.learnerID, cli.tables, cli.options)
		if err != nil {
			return fmt.Errorf("engine.Start() > %w", err)
		}
		if err := cli.drive(ctx, s, events, lines, presenter); err != nil {
			if errors.Is(err, errEnd) {
				return nil
			}
			return err
		}

		if _, err := fmt.Fprintf(cli.stdoutWriter, "Type %s to replay the same tables, anything else to quit: ", replayCommand); err != nil {
			return fmt.Errorf("fmt.Fprintf() > %w", err)
		}
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok || strings.TrimSpace(line) != replayCommand {
				return nil
			}
		}
	}
}

var errEnd = errors.New("end")

// drive runs one session until it finishes. errEnd means the learner left.
func (cli *QuizCLI) drive(
	ctx context.Context,
	s *session.Session,
	events <-chan func(),
	lines <-chan string,
	presenter *terminalPresenter,
) error {
	for !s.Done() {
		select {
		case <-ctx.Done():
			s.Abort()
			if _, err := fmt.Fprintln(cli.stdoutWriter, "\nReceived interrupt signal, exiting..."); err != nil {
				return fmt.Errorf("fmt.Fprintln() > %w", err)
			}
			return errEnd
		case fn := <-events:
			fn()
			if err := s.Err(); err != nil {
				return fmt.Errorf("session > %w", err)
			}
		case line, ok := <-lines:
			if !ok {
				s.Abort()
				return errEnd
			}
			if err := cli.handleLine(ctx, s, line); err != nil {
				return err
			}
		}
		if presenter.err != nil {
			s.Abort()
			return fmt.Errorf("presenter > %w", presenter.err)
		}
	}
	return nil
}

func (cli *QuizCLI) handleLine(ctx context.Context, s *session.Session, line string) error {
	input := strings.TrimSpace(line)

	var err error
	switch {
	case input == quitCommand:
		s.Abort()
		if _, err := fmt.Fprintln(cli.stdoutWriter, "Session aborted"); err != nil {
			return fmt.Errorf("fmt.Fprintln() > %w", err)
		}
		return errEnd
	case strings.HasPrefix(input, hintPrefix):
		index, convErr := strconv.Atoi(strings.TrimPrefix(input, hintPrefix))
		if convErr != nil {
			err = session.ErrNoHint
			break
		}
		err = s.SelectHint(ctx, index-1)
	default:
		err = s.Submit(ctx, input)
	}

	if errors.Is(err, session.ErrValidation) {
		_, writeErr := color.New(color.FgRed).Fprintf(cli.stdoutWriter, "%s\n", validationMessage(err))
		if writeErr != nil {
			return fmt.Errorf("color.Fprintf() > %w", writeErr)
		}
		return nil
	}
	return err
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), session.ErrValidation.Error()+": ")
}

// readLines forwards stdin lines until EOF or until done is closed
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}
