package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diogo/askbox/internal/credential"
	"github.com/diogo/askbox/internal/models"
)

// NewServeCmd creates the credential provider command
func NewServeCmd(deps *Dependencies) *cobra.Command {
	deps = deps.withDefaults()
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the credential provider",
		Long: `Serve the completion API key from the ` + models.CredentialEnvVar + ` environment
variable on GET ` + models.PathCredential + ` (also ` + models.PathCredentialNetlify + `).

The key is returned in cleartext to any caller that can reach the address.
Bind it to a trusted network only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(deps.Stderr)
			logger := newConsoleLogger(deps.Stderr, logLevel(cfg))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			handler := credential.NewHandler(credential.WithLogger(logger))
			return credential.NewServer(addr, handler, logger).Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8888", "Listen address")
	return cmd
}
