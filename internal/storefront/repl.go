package storefront

import (
	"bufio"
	"context"
	"errors"
	"io"
)

// Run reads commands from in until EOF, "quit" or ctx is done. Errors from
// individual commands have already been rendered, so the loop carries on.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	if err := a.Start(); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		if ctx.Err() != nil {
			return nil
		}

		a.view.Prompt()
		if !sc.Scan() {
			return sc.Err()
		}

		ev, err := ParseCommand(sc.Text())
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case errors.Is(err, ErrHelp):
			a.view.Notice(HelpText)
			continue
		case err != nil:
			a.view.Error(err.Error())
			continue
		}

		_ = a.Handle(ctx, ev)
	}
}
