package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewShowCmd создаёт команду вывода сохранённого токена.
//
// Печатает identity, срок действия и признак истечения. С --token-only
// выводит только сам токен (для подстановки в скрипты) и завершается ошибкой,
// если токен отсутствует или истёк.
//
//	chattoken show
func NewShowCmd(app *App) *cobra.Command {
	var tokenOnly bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Показать сохранённый токен",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.Token == "" {
				return errors.New("no saved token; run `chattoken fetch` first")
			}

			expired := app.Creds.Expired(Now())
			out := cmd.OutOrStdout()

			if tokenOnly {
				if expired {
					return errors.New("saved token has expired")
				}
				fmt.Fprintln(out, app.Creds.Token)
				return nil
			}

			expiresAt := "unknown"
			if !app.Creds.ExpiresAt.IsZero() {
				expiresAt = app.Creds.ExpiresAt.Format(time.RFC3339)
			}
			fmt.Fprintf(out, "identity=%s\nexpires_at=%s\nexpired=%t\n",
				app.Creds.Identity, expiresAt, expired)
			return nil
		},
	}

	cmd.Flags().BoolVar(&tokenOnly, "token-only", false, "print only the token")

	return cmd
}
