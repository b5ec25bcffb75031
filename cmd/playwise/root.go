package main

import (
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPaths []string
	catalogPath string
	jsonOut     bool

	// sampleOnly ignores any configured catalog
	sampleOnly bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:          "playwise",
		Short:        "In-memory music library engine",
		Long:         "PlayWise manages a playlist with undo, favorites, playback history and recommendations over a song catalog.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.jsonOut {
				text.DisableColors()
			}
		},
	}

	// Configuration: defaults → playwise.yaml → playwise.local.yaml → env vars
	root.PersistentFlags().StringSliceVar(&g.configPaths, "config", []string{"playwise.yaml", "playwise.local.yaml"}, "Config files, later ones override earlier ones")
	root.PersistentFlags().StringVar(&g.catalogPath, "catalog", "", "SQLite catalog path (overrides config)")
	root.PersistentFlags().BoolVar(&g.jsonOut, "json", false, "Output as JSON")

	root.AddCommand(
		newDemoCmd(g),
		newRecommendCmd(g),
		newShuffleCmd(g),
		newExploreCmd(g),
		newStatsCmd(g),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}
