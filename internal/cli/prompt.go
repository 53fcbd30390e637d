package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/grlm/internal/errors"
)

// isTerminal reports whether fd is a terminal. Replaced in tests.
var isTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}

// promptPassword asks for the basic auth password. Replaced in tests.
var promptPassword = func(login string) (string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub password for " + login).
				EchoMode(huh.EchoModePassword).
				Value(&password),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return password, nil
}

// writerIsTerminal reports whether w is a terminal file.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}

// readerIsTerminal reports whether r is a terminal file.
func readerIsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isTerminal(int(f.Fd()))
}

// resolvePassword prompts for the password when a login was given without
// one and no token overrides it. Without a terminal the config is left as
// is and validation reports the missing password.
func (a *app) resolvePassword(cmd *cobra.Command) error {
	cfg := a.cfg
	if cfg.AccessToken != "" || cfg.Login == "" || cfg.Password != "" {
		return nil
	}
	if !readerIsTerminal(cmd.InOrStdin()) {
		return nil
	}

	password, err := promptPassword(cfg.Login)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Password prompt cancelled",
			"Pass --password or use --access-token instead")
	}
	cfg.Password = password
	return nil
}
