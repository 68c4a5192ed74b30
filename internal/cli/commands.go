package cli

import (
	"bufio"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/weiawesome/wes-io-live/smallid/internal/generator"
	pkglog "github.com/weiawesome/wes-io-live/smallid/pkg/log"
)

// ErrInvalidIDs is returned by validate when at least one argument is invalid.
var ErrInvalidIDs = errors.New("invalid identifiers")

type generateCommand struct {
	app *App

	Count int `short:"n" long:"count" description:"Number of identifiers to print" default:"1"`
}

func (c *generateCommand) Execute(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("generate takes no arguments, got %d", len(args))
	}
	return c.app.printIDs(c.Count)
}

// printIDs writes count identifiers to stdout, one per line.
func (a *App) printIDs(count int) error {
	if count < 1 {
		return fmt.Errorf("%w: count must be at least 1, got %d", generator.ErrInvalidCount, count)
	}

	w := bufio.NewWriter(a.stdout)
	for i := 0; i < count; i++ {
		id, err := a.gen.Generate()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, id); err != nil {
			return fmt.Errorf("failed to write id: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write id: %w", err)
	}

	a.logger.Debug().Int(pkglog.FieldCount, count).Msg("printed ids")
	return nil
}

type validateCommand struct {
	app *App

	Args struct {
		IDs []string `positional-arg-name:"ID" required:"1"`
	} `positional-args:"yes"`
}

func (c *validateCommand) Execute(args []string) error {
	w := bufio.NewWriter(c.app.stdout)
	invalid := 0
	for _, id := range c.Args.IDs {
		valid, reason := c.app.gen.Validate(id)
		if valid {
			fmt.Fprintf(w, "%s\tvalid\n", id)
			continue
		}
		invalid++
		fmt.Fprintf(w, "%s\tinvalid: %s\n", id, reason)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInvalidIDs, invalid, len(c.Args.IDs))
	}
	return nil
}

type parseCommand struct {
	app *App

	Args struct {
		ID string `positional-arg-name:"ID" required:"yes"`
	} `positional-args:"yes"`
}

func (c *parseCommand) Execute(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("parse takes a single identifier, got %d extra", len(args))
	}

	result, err := c.app.gen.Parse(c.Args.ID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.app.stdout, "digits=%s letters=%s\n", result.Digits, result.Letters)
	return err
}

type statsCommand struct {
	app *App

	Count     int     `short:"n" long:"count" description:"Number of identifiers to sample" default:"10000"`
	Tolerance float64 `short:"k" long:"tolerance" description:"Standard deviations above the chi-square mean still accepted" default:"5"`
}

func (c *statsCommand) Execute(args []string) error {
	if c.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1, got %d", generator.ErrInvalidCount, c.Count)
	}

	tally := generator.NewTally()
	for i := 0; i < c.Count; i++ {
		id, err := c.app.gen.Generate()
		if err != nil {
			return err
		}
		if err := tally.Add(id); err != nil {
			return fmt.Errorf("generator produced %q: %w", id, err)
		}
	}

	tw := tabwriter.NewWriter(c.app.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "position\talphabet\tchi_square\tdf")
	for _, s := range tally.Stats() {
		name := "letters"
		if s.Alphabet == generator.DigitAlphabet {
			name = "digits"
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%d\n", s.Position, name, s.ChiSquare, s.DegreesOfFreedom)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	verdict := "no"
	if tally.Uniform(c.Tolerance) {
		verdict = "yes"
	}
	_, err := fmt.Fprintf(c.app.stdout, "uniform: %s (n=%d, k=%g)\n", verdict, tally.Total(), c.Tolerance)
	return err
}
