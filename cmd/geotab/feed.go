package main

import (
	"github.com/spf13/cobra"

	"telematics-hq/mygeotab-go/geotab"
)

var flagFromVersion string

var feedCmd = &cobra.Command{
	Use:   "feed <TypeName>",
	Short: "Fetch records changed since the given feed version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, buildErr := buildClient()
		if buildErr != nil {
			return buildErr
		}

		feed, feedErr := client.GetFeed(cmd.Context(), geotab.ResolveTypeName(args[0]), geotab.NewSearch(), flagFromVersion)
		if feedErr != nil {
			return feedErr
		}

		if printErr := printEntities(cmd, feed.Results); printErr != nil {
			return printErr
		}

		cmd.Println("toVersion:", feed.ToVersion)

		return nil
	},
}

func init() {
	feedCmd.Flags().StringVar(&flagFromVersion, "from-version", "", "feed version token of the previous call")
	rootCmd.AddCommand(feedCmd)
}
