// Package cli реализует командный интерфейс (CLI) клиента сервера выдачи токенов чата.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку локальных учётных данных (последний полученный токен);
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-chat-token/internal/agent/config"
)

// DefaultServerURL — адрес сервера по умолчанию.
const DefaultServerURL = "http://127.0.0.1:3000"

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера (например, "http://127.0.0.1:3000").
	ServerURL string

	// CredsPath — путь к файлу с сохранёнными учётными данными.
	CredsPath string
	// Creds — загруженные учётные данные.
	// Может быть nil, если загрузка не выполнялась.
	Creds *config.Credentials
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются командой version.
// В PersistentPreRunE определяется путь к файлу учётных данных и загружается его содержимое.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{
		ServerURL: DefaultServerURL,
	}

	cmd := &cobra.Command{
		Use:   "chattoken",
		Short: "chattoken — выдача и получение access-токенов чата",
		Long: `chattoken CLI.

Команды:
  mint     Выпустить токен локально по ключам из окружения/.env
  fetch    Получить токен у сервера через webhook POST /token
  show     Показать сохранённый токен и срок его действия
  version  Версия и дата сборки

Примеры:

Локальный выпуск:
  chattoken mint --identity alice --device phone1 --ttl 30m --alg HS512

Запрос к серверу:
  chattoken fetch --username alice --device phone1 --webhook-key $PARSE_WEBHOOK_KEY
  (сохраняет identity и token в ~/.chattoken/credentials.json)
`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.CredsPath = p

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", DefaultServerURL, "server base URL")

	cmd.AddCommand(NewMintCmd())
	cmd.AddCommand(NewFetchCmd(app))
	cmd.AddCommand(NewShowCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
