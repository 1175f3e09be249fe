package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-chat-token/internal/agent/api"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadSecret   = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return readSecret(cmd, fromStdin)
	}
	Now = time.Now
)
