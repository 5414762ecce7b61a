package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	fandomdomain "animefinder/internal/services/api/fandom/domain"
	fandomsvc "animefinder/internal/services/api/fandom/service"
	recommenddomain "animefinder/internal/services/api/recommend/domain"
	recommendsvc "animefinder/internal/services/api/recommend/service"
	streamingdomain "animefinder/internal/services/api/streaming/domain"
	streamingsvc "animefinder/internal/services/api/streaming/service"
)

func newLinksCommand(ctx *commandContext) *cobra.Command {
	var in streamingdomain.LinksInput

	cmd := &cobra.Command{
		Use:   "links <title>",
		Short: "Print streaming provider search links for a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = strings.Join(args, " ")
			in.Region = strings.ToUpper(in.Region)
			res, err := streamingsvc.New(nil).Links(cmd.Context(), in)
			if err != nil {
				return err
			}
			if ctx.jsonOut {
				return writeJSON(cmd, res)
			}
			rows := make([][]string, 0, len(res.Links))
			for _, l := range res.Links {
				kind := l.Provider.Type
				if p := l.Provider.Price; p != nil {
					kind = fmt.Sprintf("%s %s %s", kind, p.Amount, p.Currency)
				}
				rows = append(rows, []string{l.Provider.Name, kind, l.URL})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Provider", "Type", "URL"}, rows, nil))
			fmt.Fprintln(out, res.Note)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Region, "region", "", "ISO 3166 alpha-2 region filter")
	cmd.Flags().BoolVar(&in.All, "all", false, "List every provider")

	return cmd
}

func newFandomCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "fandom <title>",
		Short: "Find key art for a title on fandom wikis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, looker := ctx.clients()
			res, err := fandomsvc.New(looker, nil, 0).Lookup(cmd.Context(), fandomdomain.LookupInput{Title: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			if ctx.jsonOut {
				return writeJSON(cmd, res)
			}
			image := "-"
			if res.ImageURL != nil {
				image = *res.ImageURL
			}
			rows := [][]string{
				{"wiki", res.Wiki},
				{"page", res.PageTitle},
				{"url", res.FandomURL},
				{"image", image},
				{"source", res.Source},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			return nil
		},
	}
}

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	var in recommenddomain.Request

	cmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Suggest anime similar to a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completer, _ := ctx.clients()
			in.Title = strings.Join(args, " ")
			res, err := recommendsvc.New(completer, recommendsvc.ConfigFrom(ctx.cfg)).Recommend(cmd.Context(), in)
			if err != nil {
				return err
			}
			if ctx.jsonOut {
				return writeJSON(cmd, res)
			}
			if !res.Success {
				return fmt.Errorf("recommend: %s", res.Error)
			}
			rows := make([][]string, 0, len(res.Recommendations))
			for _, r := range res.Recommendations {
				rows = append(rows, []string{r.Title, fmt.Sprintf("%.0f%%", r.Confidence*100), joinOrDash(r.Genres), r.Reasoning})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Title", "Confidence", "Genres", "Why"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&in.Genres, "genres", nil, "Genres of the seed title")
	cmd.Flags().StringSliceVar(&in.Likes, "likes", nil, "Things the viewer enjoys")
	cmd.Flags().StringSliceVar(&in.Dislikes, "dislikes", nil, "Things the viewer avoids")

	return cmd
}
