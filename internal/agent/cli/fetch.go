package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-chat-token/internal/agent/api"
	"github.com/IvanChernomyrdin/go-chat-token/internal/agent/config"
)

// NewFetchCmd создаёт CLI-команду получения токена у сервера.
//
// Команда отправляет тот же запрос, что и Parse Cloud Code, в POST /token,
// и сохраняет полученные identity, token и срок его действия в локальный файл.
// Если --webhook-key не указан, используется переменная окружения PARSE_WEBHOOK_KEY.
//
// Пример использования:
//
//	chattoken fetch --username alice --device phone1 --webhook-key secret
func NewFetchCmd(app *App) *cobra.Command {
	var username, device, webhookKey, header string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Получить токен у сервера (POST /token)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if webhookKey == "" {
				webhookKey = os.Getenv("PARSE_WEBHOOK_KEY")
			}

			c := NewAPIClient(app.ServerURL)
			resp, err := c.FetchToken(username, device, webhookKey, header)
			if err != nil {
				return err
			}

			creds, err := config.FromToken(resp.Success.Identity, resp.Success.Token)
			if err != nil {
				return fmt.Errorf("server returned malformed token: %w", err)
			}
			if err := config.Save(app.CredsPath, creds); err != nil {
				return err
			}
			app.Creds = creds

			fmt.Fprintf(cmd.OutOrStdout(), "identity=%s\nexpires_at=%s\n%s\n",
				creds.Identity, creds.ExpiresAt.Format(time.RFC3339), creds.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "user identity")
	cmd.Flags().StringVar(&device, "device", "", "device id")
	cmd.Flags().StringVar(&webhookKey, "webhook-key", "", "shared webhook secret (default $PARSE_WEBHOOK_KEY)")
	cmd.Flags().StringVar(&header, "webhook-header", api.DefaultWebhookHeader, "header carrying the webhook secret")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("device")

	return cmd
}
