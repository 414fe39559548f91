package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pathboard.dev/pathboard"
	"pathboard.dev/pathboard/model"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts [station]",
	Short: "Lists service alerts",
	Long:  "Lists service alerts, optionally restricted to a station. Alerts active right now are marked with '!'.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  alerts,
}

func init() {
	rootCmd.AddCommand(alertsCmd)
}

func alerts(cmd *cobra.Command, args []string) error {
	manager, err := buildManager()
	if err != nil {
		return err
	}

	all, err := manager.Alerts(context.Background(), false)
	if err != nil {
		return err
	}

	location, err := time.LoadLocation(pathboard.ReferenceTimezone)
	if err != nil {
		return err
	}
	now := model.DateTimeOf(time.Now().In(location))

	for _, alert := range all {
		if len(args) == 1 && !covers(alert, args[0]) {
			continue
		}

		mark := " "
		if pathboard.IsActive(alert, now) {
			mark = "!"
		}

		message := ""
		if alert.Message != nil {
			message = alert.Message.En
		}
		fmt.Printf("%s %v: %s\n", mark, alert.Stations, message)
	}

	return nil
}

func covers(alert model.Alert, station string) bool {
	for _, s := range alert.Stations {
		if s == station {
			return true
		}
	}
	return false
}
