package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/go-sharp/formtemplater"
	"github.com/go-sharp/formtemplater/config"
	"github.com/go-sharp/formtemplater/providers"
)

// Config configures the root command. The zero values of the optional
// fields fall back to the google endpoints, stdin/stdout and a logger
// built by NewLogger.
type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
	ErrWriter    io.Writer
	Input        io.Reader

	Endpoint   oauth2.Endpoint
	ProfileURL string
	HTTPClient *http.Client
	Prompter   formtemplater.Prompter
	Logger     *zap.Logger
}

// DefaultConfig returns the configuration used by the binary.
func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultPath(),
		OutputWriter: os.Stdout,
		ErrWriter:    os.Stderr,
		Input:        os.Stdin,
		Endpoint:     providers.GoogleEndpoint(),
		ProfileURL:   providers.GoogleUserInfoURL,
	}
}

// NewRootCommand returns the google-form-templater command.
func NewRootCommand(cfg Config) *cobra.Command {
	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	root := &cobra.Command{
		Use:          config.Name,
		Short:        "Authorize with google and print your user profile",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg, configPath)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", configPath, "path to the config file")

	if cfg.OutputWriter != nil {
		root.SetOut(cfg.OutputWriter)
	}
	if cfg.ErrWriter != nil {
		root.SetErr(cfg.ErrWriter)
	}

	return root
}

func run(ctx context.Context, cfg Config, configPath string) error {
	logger := cfg.Logger
	if logger == nil {
		l, err := NewLogger(debugEnabled())
		if err != nil {
			return fmt.Errorf("failed to set up logger: %w", err)
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}
	log := logger.Sugar()

	out := cfg.OutputWriter
	if out == nil {
		out = os.Stdout
	}
	in := cfg.Input
	if in == nil {
		in = os.Stdin
	}
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" || endpoint.TokenURL == "" {
		endpoint = providers.GoogleEndpoint()
	}
	profileURL := cfg.ProfileURL
	if profileURL == "" {
		profileURL = providers.GoogleUserInfoURL
	}

	settings, err := config.Decode(config.Load(log, configPath))
	if err != nil {
		return fmt.Errorf("config %v: %w", configPath, err)
	}
	if settings.Auth.Email != "" || settings.Auth.Password != "" {
		log.Debugw("Ignoring [auth] credentials, authorization uses the provider consent screen", "email", settings.Auth.Email)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: settings.CLI.Timeout}
	}
	prompter := cfg.Prompter
	if prompter == nil {
		prompter = &formtemplater.ConsolePrompter{
			In:          in,
			Out:         out,
			OpenBrowser: settings.CLI.OpenBrowser,
			Log:         log,
		}
	}

	session := formtemplater.NewSession(settings.Client.ID, settings.Client.Secret, settings.Client.RedirectURI,
		formtemplater.WithEndpoint(endpoint),
		formtemplater.WithHTTPClient(httpClient),
		formtemplater.WithPrompter(prompter),
		formtemplater.WithLogger(log),
	)
	defer session.Close()

	if err := session.Authorize(ctx); err != nil {
		return err
	}

	body, err := session.Get(ctx, profileURL)
	if err != nil {
		return err
	}

	if _, err := out.Write(body); err != nil {
		return err
	}
	if !bytes.HasSuffix(body, []byte("\n")) {
		_, err = fmt.Fprintln(out)
	}
	return err
}
