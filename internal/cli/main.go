package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "clipper <input>",
		Short:        "Cut viral-ready vertical clips from a local video",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "out", "Output directory")
	root.Flags().Int("clips", 5, "Number of clips")
	root.Flags().String("transcript", "", "Stored transcript JSON (skips the transcription API)")
	root.Flags().String("tuning", "", "YAML file with duration tuning")
	root.Flags().Bool("burn-subtitles", false, "Burn karaoke subtitles into the clips")
	root.Flags().Bool("verbose", false, "Debug logging")

	// Hidden tuning flags (internal)
	root.Flags().Int("min", 0, "Min clip duration seconds")
	root.Flags().Int("max", 0, "Max clip duration seconds")
	root.Flags().Int("ideal", 0, "Ideal clip duration seconds")
	root.Flags().Int64("seed", 0, "Review pool shuffle seed")
	for _, name := range []string{"min", "max", "ideal", "seed"} {
		_ = root.Flags().MarkHidden(name)
	}

	root.AddCommand(historyCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
