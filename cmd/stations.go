package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pathboard.dev/pathboard/stations"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Lists known stations and the routes serving them",
	RunE:  listStations,
}

func init() {
	rootCmd.AddCommand(stationsCmd)
}

func listStations(cmd *cobra.Command, args []string) error {
	for _, station := range stations.All() {
		lines := []string{}
		seen := map[string]bool{}
		for _, route := range stations.RoutesThrough(station.APIName) {
			if !seen[route.Line] {
				seen[route.Line] = true
				lines = append(lines, route.Line)
			}
		}

		fmt.Printf("%s: %s, %s (%s)\n",
			station.APIName,
			station.DisplayName,
			station.State,
			strings.Join(lines, ", "),
		)
	}

	return nil
}
