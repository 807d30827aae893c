package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AmzurATG/heatlhcare-demo/client"
	"github.com/AmzurATG/heatlhcare-demo/internal/config"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// app carries the persistent flags and the loaded configuration.
type app struct {
	apiURL  string
	envFile string
	debug   bool
	timeout time.Duration

	cfg *config.Config
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "healthctl",
		Short:         "healthctl talks to the healthcare demo backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.envFile)
			if err != nil {
				return err
			}
			cfg.Init(a.debug)
			a.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Backend base URL (default $HEALTHCARE_API_URL or "+client.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Optional dotenv file read before the environment")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "HTTP timeout (default $HEALTHCARE_TIMEOUT or 30s)")

	rootCmd.AddCommand(newPatientsCmd(a))
	rootCmd.AddCommand(newDocumentsCmd(a))
	rootCmd.AddCommand(newChatCmd(a))
	rootCmd.AddCommand(newHealthCmd(a))
	rootCmd.AddCommand(newFakeBackendCmd(a))

	return rootCmd
}

// newClient builds an SDK client; flags override the environment.
func (a *app) newClient() (*client.Client, error) {
	opts := a.cfg.Client.Options()
	if a.debug {
		opts = append(opts, client.WithDebugLogging(true))
	}
	if a.timeout > 0 {
		opts = append(opts, client.WithHTTPTimeout(a.timeout))
	}
	opts = append(opts, client.WithUserAgent("healthctl"))
	if a.cfg.Client.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(a.cfg.Client.UserAgent))
	}
	url := a.cfg.Client.APIURL
	if a.apiURL != "" {
		url = a.apiURL
	}
	return client.New(url, opts...)
}

// run opens a client, invokes fn and prints its result as indented JSON.
func (a *app) run(cmd *cobra.Command, op string, fn func(c *client.Client) (any, error)) error {
	c, err := a.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	start := time.Now()
	out, err := fn(c)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("op", op).Dur("elapsed", elapsed).Msg("request failed")
		return err
	}
	log.Debug().Str("op", op).Dur("elapsed", elapsed).Msg("request completed")
	return printJSON(cmd, out)
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}

func openFiles(paths []string) ([]client.File, error) {
	files := make([]client.File, 0, len(paths))
	for _, p := range paths {
		f, err := client.OpenFile(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend database connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "health", func(c *client.Client) (any, error) {
				return c.CheckHealth(cmd.Context())
			})
		},
	}
}
