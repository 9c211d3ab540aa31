package main

import (
	"github.com/spf13/cobra"

	"telematics-hq/mygeotab-go/geotab"
)

var findCmd = &cobra.Command{
	Use:   "find <TypeName> <id>",
	Short: "Fetch a single record by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, buildErr := buildClient()
		if buildErr != nil {
			return buildErr
		}

		entity, found, findErr := client.Find(cmd.Context(), geotab.ResolveTypeName(args[0]), args[1])
		if findErr != nil {
			return findErr
		}

		if !found {
			cmd.Println("not found")
			return nil
		}

		cmd.Println(string(entity.Raw))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
