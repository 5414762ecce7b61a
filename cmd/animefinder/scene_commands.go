package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"animefinder/internal/core/scene"
	"animefinder/internal/core/validate"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <description>",
		Short: "List the scene keywords found in a description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			el := scene.Extract(strings.Join(args, " "))
			if ctx.jsonOut {
				return writeJSON(cmd, el)
			}
			rows := [][]string{
				{"characters", joinOrDash(el.Characters)},
				{"setting", joinOrDash(el.Setting)},
				{"actions", joinOrDash(el.Actions)},
				{"emotions", joinOrDash(el.Emotions)},
				{"visual style", joinOrDash(el.VisualStyle)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Category", "Terms"}, rows, nil))
			return nil
		},
	}
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <description>",
		Short: "Check a description against the length rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := validate.Description(strings.Join(args, " "))
			if ctx.jsonOut {
				if err := writeJSON(cmd, res); err != nil {
					return err
				}
			} else if res.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
			}
			return res.Err()
		},
	}
}
