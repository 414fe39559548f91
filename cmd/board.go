package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"pathboard.dev/pathboard/stations"
)

var boardCmd = &cobra.Command{
	Use:   "board [station ...]",
	Short: "Shows departure boards",
	Long:  "Shows the backfilled departure board for the given stations (all reported stations if none given). Backfilled entries are marked with '*'.",
	RunE:  board,
}

var force bool

func init() {
	boardCmd.Flags().BoolVarP(&force, "force", "f", false, "Bypass the snapshot reuse window")
	rootCmd.AddCommand(boardCmd)
}

func board(cmd *cobra.Command, args []string) error {
	manager, err := buildManager()
	if err != nil {
		return err
	}

	departures, fetchedAt, err := manager.Board(context.Background(), force)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		for name := range departures {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	for _, name := range names {
		station, found := stations.ByAPIName(name)
		if !found {
			return fmt.Errorf("unknown station '%s'", name)
		}

		fmt.Printf("%s (%s)\n", station.DisplayName, station.APIName)
		for _, train := range departures[name] {
			mark := " "
			if train.Backfilled() {
				mark = "*"
			}
			delayed := ""
			if train.Delayed {
				delayed = " (delayed)"
			}
			fmt.Printf("  %s%s %s%s\n",
				train.ProjectedArrival.Local().Format("15:04"),
				mark,
				train.Headsign,
				delayed,
			)
		}
	}

	fmt.Printf("fetched at %s\n", fetchedAt.Local().Format("15:04:05"))

	return nil
}
