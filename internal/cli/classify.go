package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pscheid92/moodreact/internal/adapter/language"
	"github.com/pscheid92/moodreact/internal/emoji"
	"github.com/pscheid92/moodreact/internal/sentiment"
)

func newClassifyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Classify text and show the emoji the bot would react with",
		Long: `classify sends text to the sentiment service, prints the score, the
magnitude and the derived class, and picks an emoji from the table.
All arguments are joined with spaces.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, v, strings.Join(args, " "))
		},
	}

	cmd.Flags().String("key", "", "Sentiment API key (env GCP_KEY)")
	cmd.Flags().String("api-url", "", "Sentiment API endpoint (env SENTIMENT_API_URL)")
	cmd.Flags().String("table", "", "Emoji table file (env EMOJI_TABLE_PATH)")
	cmd.Flags().Bool("no-emoji", false, "Skip loading the emoji table")
	cobra.CheckErr(v.BindPFlag(keyGCPKey, cmd.Flags().Lookup("key")))
	cobra.CheckErr(v.BindPFlag(keySentimentAPIURL, cmd.Flags().Lookup("api-url")))
	cobra.CheckErr(v.BindPFlag(keyEmojiTablePath, cmd.Flags().Lookup("table")))

	return cmd
}

func runClassify(cmd *cobra.Command, v *viper.Viper, text string) error {
	key := v.GetString(keyGCPKey)
	if key == "" {
		return errors.New("sentiment API key missing: set GCP_KEY or pass --key")
	}

	client := language.NewClient(v.GetString(keySentimentAPIURL), key, v.GetDuration(keyOutboundTimeout))
	s, err := client.AnalyzeSentiment(cmd.Context(), text)
	if err != nil {
		return fmt.Errorf("analyzing sentiment: %w", err)
	}
	class := sentiment.ClassOf(s)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "score:     %.3f\n", s.Score)
	fmt.Fprintf(out, "magnitude: %.3f\n", s.Magnitude)
	fmt.Fprintf(out, "class:     %s\n", class)

	if noEmoji, _ := cmd.Flags().GetBool("no-emoji"); noEmoji {
		return nil
	}

	table, err := emoji.Load(v.GetString(keyEmojiTablePath))
	if err != nil {
		return fmt.Errorf("loading emoji table: %w", err)
	}
	picked, err := table.Pick(class)
	if err != nil {
		return fmt.Errorf("picking emoji: %w", err)
	}
	fmt.Fprintf(out, "emoji:     :%s:\n", picked)
	return nil
}
