package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/accesstoken"
)

// DefaultAppName — префикс endpoint id, совпадающий с серверным.
const DefaultAppName = "TwilioChat"

// NewMintCmd создаёт CLI-команду локального выпуска токена.
//
// Учётные данные берутся из окружения (и .env, если он есть):
// TWILIO_ACCOUNT_SID, TWILIO_API_KEY, TWILIO_API_SECRET, TWILIO_IPM_SERVICE_SID.
// Если TWILIO_API_SECRET не задан, секрет читается из терминала со скрытым вводом
// или из STDIN при --secret-stdin.
//
// Пример использования:
//
//	chattoken mint --identity alice --device phone1 --ttl 30m --alg HS384
func NewMintCmd() *cobra.Command {
	var (
		identity, device, alg, app string
		ttl                        time.Duration
		secretFromStdin            bool
	)

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Выпустить токен локально",
		RunE: func(cmd *cobra.Command, args []string) error {
			// .env опционален
			_ = godotenv.Load()

			secret := os.Getenv("TWILIO_API_SECRET")
			if secret == "" {
				s, err := ReadSecret(cmd, secretFromStdin)
				if err != nil {
					return err
				}
				secret = s
			}

			at, err := accesstoken.New(
				os.Getenv("TWILIO_ACCOUNT_SID"),
				os.Getenv("TWILIO_API_KEY"),
				[]byte(secret),
				ttl,
			)
			if err != nil {
				return err
			}
			at.Identity = identity
			at.Now = Now

			grant := accesstoken.IPMessagingGrantOptions{
				ServiceSID: os.Getenv("TWILIO_IPM_SERVICE_SID"),
			}
			if device != "" {
				grant.EndpointID = fmt.Sprintf("%s:%s:%s", app, identity, device)
			}
			at.AddGrant(accesstoken.NewIPMessagingGrant(grant))

			if profile := os.Getenv("TWILIO_CONFIGURATION_PROFILE_SID"); profile != "" {
				at.AddGrant(accesstoken.NewConversationsGrant(accesstoken.ConversationsGrantOptions{
					ConfigurationProfileSID: profile,
				}))
			}

			token, err := at.ToJWT(alg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&identity, "identity", "", "token identity")
	cmd.Flags().StringVar(&device, "device", "", "device id for the endpoint id")
	cmd.Flags().StringVar(&app, "app", DefaultAppName, "app name for the endpoint id")
	cmd.Flags().DurationVar(&ttl, "ttl", accesstoken.DefaultTTL, "token lifetime")
	cmd.Flags().StringVar(&alg, "alg", accesstoken.DefaultAlgorithm, "signing algorithm (HS256, HS384, HS512)")
	cmd.Flags().BoolVar(&secretFromStdin, "secret-stdin", false, "read API secret from stdin")
	cmd.MarkFlagRequired("identity")

	return cmd
}

// readSecret читает API secret.
//
// Режимы:
//   - fromStdin=true: читает секрет из STDIN полностью (удобно для скриптов/CI);
//   - fromStdin=false: читает секрет из терминала со скрытым вводом.
//
// Пустой секрет считается ошибкой.
func readSecret(cmd *cobra.Command, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read api secret from stdin: %w", err)
		}
		s := bytes.TrimRight(b, "\r\n")
		if len(s) == 0 {
			return "", errors.New("empty api secret on stdin")
		}
		return string(s), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; set TWILIO_API_SECRET or use --secret-stdin")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "API secret: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read api secret: %w", err)
	}

	s := strings.TrimSpace(string(b))
	if s == "" {
		return "", errors.New("empty api secret")
	}
	return s, nil
}
