package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/libretranslator/internal"
	"codeberg.org/snonux/libretranslator/internal/language"
	"codeberg.org/snonux/libretranslator/internal/locale"
	"codeberg.org/snonux/libretranslator/internal/translation"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "libretranslator",
		Short: "Interactive text translator",
		Long: `libretranslator translates text through a DeepL-compatible endpoint
(or an OpenAI / Gemini model) and re-translates automatically while you type.

Examples:
  libretranslator                          # Launch the desktop GUI (default)
  libretranslator --tui                    # Launch the terminal UI
  libretranslator translate -t DE "Hello"  # Translate once and print
  libretranslator languages                # List language codes`,
		Args:         cobra.NoArgs,
		Version:      internal.Version,
		SilenceUsage: true,
	}

	setupFlags(rootCmd, flags)
	rootCmd.AddCommand(CreateLanguagesCommand())

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.libretranslator.yaml)")
	pf.StringVar(&flags.LogPath, "log-path", "", "Directory for diagnostics_log.txt (default: OS state dir)")
	pf.StringVar(&flags.URL, "url", "", "Translation endpoint base URL (requests go to <url>/v2/translate)")
	pf.StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: deepl, openai or gemini")
	pf.StringVar(&flags.Model, "model", "", "Chat model for the openai and gemini providers")
	pf.DurationVar(&flags.Timeout, "timeout", 0, "Transport timeout per request (0 waits for the transport)")
	pf.BoolVar(&flags.Breaker, "breaker", flags.Breaker, "Fail fast after repeated network failures")
	pf.StringVarP(&flags.Source, "source", "s", flags.Source, "Source language code (AUTO detects it)")
	pf.StringVarP(&flags.Target, "target", "t", flags.Target, "Target language code")

	// Local flags
	cmd.Flags().BoolVar(&flags.TUIMode, "tui", false, "Run the terminal UI instead of the GUI")
	cmd.Flags().BoolVar(&flags.Auto, "auto", flags.Auto, "Translate automatically while typing")
	cmd.Flags().StringVar(&flags.UILanguage, "ui-language", "", "Interface language: en, zh or de (default: system locale)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	viper.BindPFlag("log.path", pf.Lookup("log-path"))
	viper.BindPFlag("endpoint.url", pf.Lookup("url"))
	viper.BindPFlag("endpoint.provider", pf.Lookup("provider"))
	viper.BindPFlag("endpoint.model", pf.Lookup("model"))
	viper.BindPFlag("endpoint.timeout", pf.Lookup("timeout"))
	viper.BindPFlag("endpoint.breaker", pf.Lookup("breaker"))
	viper.BindPFlag("translate.source", pf.Lookup("source"))
	viper.BindPFlag("translate.target", pf.Lookup("target"))
	viper.BindPFlag("translate.auto", cmd.Flags().Lookup("auto"))
	viper.BindPFlag("ui.language", cmd.Flags().Lookup("ui-language"))
}

// CreateTranslateCommand creates the one-shot translate subcommand. The
// caller sets RunE.
func CreateTranslateCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate text once and print the result",
		Long: `Translate the given text and print the result.

Without arguments the text is read from --file or standard input; each
non-blank line is translated separately. A line of the form
"text => translation" is written as given without a request.`,
	}
	cmd.Flags().StringVarP(&flags.InputFile, "file", "f", "", "Translate the lines of this file")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", "", "Also save the result as translation.txt in this directory")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing translation.txt into <output>/archive first")
	return cmd
}

// CreateLanguagesCommand lists source and target language codes
func CreateLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := locale.New(GetUILanguage())
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Source languages:")
			for _, c := range language.Sources() {
				fmt.Fprintf(out, "  %-8s %s\n", c, p.LanguageName(c))
			}
			fmt.Fprintln(out, "\nTarget languages:")
			for _, c := range language.Targets() {
				fmt.Fprintf(out, "  %-8s %s\n", c, p.LanguageName(c))
			}
			return nil
		},
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".libretranslator" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".libretranslator")
	}

	// Environment variables, e.g. LIBRETRANSLATOR_ENDPOINT_URL
	viper.SetEnvPrefix("LIBRETRANSLATOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func envOrConfig(env, key string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return viper.GetString(key)
}

// GetEndpointURL retrieves the endpoint base URL from environment or config
func GetEndpointURL() string {
	return envOrConfig("LIBRETRANSLATOR_API_URL", "endpoint.url")
}

// GetAuthorization retrieves the Authorization header value
func GetAuthorization() string {
	return envOrConfig("LIBRETRANSLATOR_API_AUTHORIZATION", "endpoint.authorization")
}

// GetPassphrase retrieves the session passphrase. Empty disables the gate.
func GetPassphrase() string {
	return envOrConfig("LIBRETRANSLATOR_PASSWORD", "session.passphrase")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	return envOrConfig("OPENAI_API_KEY", "endpoint.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	return envOrConfig("GEMINI_API_KEY", "endpoint.gemini_key")
}

// GetUILanguage returns the configured UI language or the system one
func GetUILanguage() string {
	if l := viper.GetString("ui.language"); l != "" {
		return locale.Normalize(l)
	}
	return locale.Detect()
}

// GetPair returns the configured language pair
func GetPair() (language.Pair, error) {
	source := viper.GetString("translate.source")
	if source == "" {
		source = string(language.Auto)
	}
	target := viper.GetString("translate.target")
	if target == "" {
		target = "EN"
	}
	return language.NewPair(source, target)
}

// GetAutoTranslate reports whether auto-translation starts enabled
func GetAutoTranslate() bool {
	if !viper.IsSet("translate.auto") {
		return true
	}
	return viper.GetBool("translate.auto")
}

// TranslatorConfig assembles the provider configuration
func TranslatorConfig() translation.Config {
	cfg := translation.Config{
		Provider: viper.GetString("endpoint.provider"),
		Model:    viper.GetString("endpoint.model"),
		Timeout:  viper.GetDuration("endpoint.timeout"),
		Breaker:  viper.GetBool("endpoint.breaker"),
	}

	switch strings.ToLower(cfg.Provider) {
	case translation.ProviderOpenAI:
		cfg.APIKey = GetOpenAIKey()
		cfg.URL = viper.GetString("endpoint.url")
	case translation.ProviderGemini:
		cfg.APIKey = GetGeminiKey()
	default:
		cfg.URL = GetEndpointURL()
		cfg.Authorization = GetAuthorization()
	}
	return cfg
}
