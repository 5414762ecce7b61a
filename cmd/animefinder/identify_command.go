package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"animefinder/internal/platform/net/http/bind"
	"animefinder/internal/services/api/identify/domain"
	identifysvc "animefinder/internal/services/api/identify/service"
)

func newIdentifyCommand(ctx *commandContext) *cobra.Command {
	var info domain.AdditionalInfo
	var maxResults int

	cmd := &cobra.Command{
		Use:   "identify <description>",
		Short: "Ask the model which anime a scene is from",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completer, _ := ctx.clients()
			svc := identifysvc.New(completer, nil, identifysvc.ConfigFrom(ctx.cfg))

			req := domain.Request{Description: strings.Join(args, " ")}
			if info != (domain.AdditionalInfo{}) {
				req.AdditionalInfo = &info
			}
			if maxResults > 0 {
				req.Options = &domain.Options{MaxResults: maxResults}
			}

			if err := bind.Struct(req); err != nil {
				return err
			}
			res, err := svc.Identify(cmd.Context(), req)
			if err != nil {
				return err
			}
			if ctx.jsonOut {
				return writeJSON(cmd, res)
			}
			if !res.Success {
				return fmt.Errorf("identify: %s", res.Error)
			}

			rows := make([][]string, 0, len(res.Matches))
			for i, m := range res.Matches {
				year := "-"
				if m.Anime.SeasonYear != nil {
					year = strconv.Itoa(*m.Anime.SeasonYear)
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					m.Anime.Title.Display(),
					year,
					fmt.Sprintf("%.0f%%", m.Confidence*100),
					m.Reasoning,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Title", "Year", "Confidence", "Why"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "elements: %s (%d ms)\n", joinOrDash(res.Query.ExtractedElements.Labels()), res.SearchTime)
			return nil
		},
	}

	cmd.Flags().StringVar(&info.ApproximateYear, "year", "", "Approximate airing period, e.g. 2010s")
	cmd.Flags().StringVar(&info.Genre, "genre", "", "Genre hint")
	cmd.Flags().StringVar(&info.Style, "style", "", "Animation style hint")
	cmd.Flags().StringVar(&info.Language, "language", "", "Audio language: japanese, english or any")
	cmd.Flags().IntVarP(&maxResults, "max", "n", 0, "Maximum matches to return (1-10)")

	return cmd
}
