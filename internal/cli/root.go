// Package cli implements moodctl, the operator command line for moodreact.
package cli

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pscheid92/moodreact/internal/platform/logging"
)

const (
	keyGCPKey          = "gcp_key"
	keySentimentAPIURL = "sentiment_api_url"
	keyEmojiTablePath  = "emoji_table_path"
	keyOutboundTimeout = "outbound_timeout"
	keyLogLevel        = "log_level"
)

// NewRootCmd builds the moodctl command tree. Settings resolve from flags
// first, then from the same environment variables the server reads.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`, `-`, `_`))
	v.AutomaticEnv()
	v.SetDefault(keySentimentAPIURL, "https://language.googleapis.com/v1/documents:analyzeSentiment")
	v.SetDefault(keyEmojiTablePath, "./emoji.json")
	v.SetDefault(keyOutboundTimeout, 10*time.Second)
	v.SetDefault(keyLogLevel, "warn")

	root := &cobra.Command{
		Use:   "moodctl",
		Short: "Operate the moodreact sentiment bot",
		Long: `moodctl classifies text against the sentiment service and validates
emoji tables, using the same configuration as the moodreact server.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), v.GetString(keyLogLevel), "text"))
		},
	}

	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (env LOG_LEVEL)")
	cobra.CheckErr(v.BindPFlag(keyLogLevel, root.PersistentFlags().Lookup("log-level")))

	root.AddCommand(newClassifyCmd(v))
	root.AddCommand(newTableCmd(v))
	root.AddCommand(newVersionCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
