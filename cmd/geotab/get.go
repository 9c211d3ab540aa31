package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"telematics-hq/mygeotab-go/geotab"
)

var errMalformedCondition = errors.New("conditions must be given as key=value")

var flagWhere []string

var getCmd = &cobra.Command{
	Use:   "get <TypeName>",
	Short: "List records of a type matching the given conditions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, buildErr := buildClient()
		if buildErr != nil {
			return buildErr
		}

		search, searchErr := searchFromConditions(flagWhere)
		if searchErr != nil {
			return searchErr
		}

		entities, getErr := client.Get(cmd.Context(), geotab.ResolveTypeName(args[0]), search)
		if getErr != nil {
			return getErr
		}

		return printEntities(cmd, entities)
	},
}

func init() {
	getCmd.Flags().StringArrayVar(&flagWhere, "where", nil, "filter condition key=value (repeatable)")
	rootCmd.AddCommand(getCmd)
}

// searchFromConditions parses repeated key=value flags into a Search,
// merging them in flag order.
func searchFromConditions(conditions []string) (geotab.Search, error) {
	search := geotab.NewSearch()

	for _, condition := range conditions {
		key, value, found := strings.Cut(condition, "=")
		if !found || key == "" {
			return geotab.Search{}, fmt.Errorf("%w: %q", errMalformedCondition, condition)
		}

		search = search.Where(map[string]any{key: value})
	}

	return search, nil
}

func printEntities(cmd *cobra.Command, entities geotab.Entities) error {
	records := make([]json.RawMessage, 0, len(entities))
	for _, entity := range entities {
		records = append(records, entity.Raw)
	}

	output, marshalErr := json.MarshalIndent(records, "", "  ")
	if marshalErr != nil {
		return marshalErr
	}

	cmd.Println(string(output))

	return nil
}
