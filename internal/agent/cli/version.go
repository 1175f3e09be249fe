package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-chat-token/internal/shared/accesstoken"
)

// NewVersionCmd создаёт команду вывода информации о сборке.
//
// Помимо версии и даты сборки печатает поддерживаемые алгоритмы подписи
// и срок жизни токена по умолчанию.
//
//	chattoken version
func NewVersionCmd(buildVersion, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Показать версию, дату сборки и поддерживаемые алгоритмы",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(
				cmd.OutOrStdout(),
				"version=%s\nbuild_date=%s\nalgorithms=%s\ndefault_ttl=%s\n",
				buildVersion,
				buildDate,
				strings.Join(accesstoken.Algorithms(), ","),
				accesstoken.DefaultTTL,
			)
		},
	}
}
