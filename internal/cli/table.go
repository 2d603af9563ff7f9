package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pscheid92/moodreact/internal/domain"
	"github.com/pscheid92/moodreact/internal/emoji"
)

func newTableCmd(v *viper.Viper) *cobra.Command {
	table := &cobra.Command{
		Use:   "table",
		Short: "Inspect emoji tables",
	}

	table.AddCommand(&cobra.Command{
		Use:   "validate [path]",
		Short: "Load an emoji table and summarize it",
		Long: `validate loads the table the way the server does at startup and prints
the emoji per class. It fails on unreadable files, unknown classes or
missing classes, and on classes without any emoji.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := v.GetString(keyEmojiTablePath)
			if len(args) == 1 {
				path = args[0]
			}
			return runTableValidate(cmd, path)
		},
	})

	return table
}

func runTableValidate(cmd *cobra.Command, path string) error {
	t, err := emoji.Load(path)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", path)
	for _, class := range domain.SentimentClasses {
		entries := t.Entries(class)
		fmt.Fprintf(out, "  %-14s %d  %s\n", class, len(entries), strings.Join(entries, " "))
	}

	if empty := t.EmptyClasses(); len(empty) > 0 {
		return fmt.Errorf("%s: classes without emoji: %v", path, empty)
	}
	return nil
}
