package main

import (
	"encoding/json"
	"sync"

	"github.com/spf13/cobra"

	"animefinder/internal/adapters/fandom"
	"animefinder/internal/adapters/llm"
	"animefinder/internal/platform/config"
	fandomdomain "animefinder/internal/services/api/fandom/domain"
	fandommod "animefinder/internal/services/api/fandom/module"
)

// commandContext carries flags and lazily built clients shared by subcommands
type commandContext struct {
	jsonOut bool

	cfg config.Conf

	once   sync.Once
	llm    llm.Completer
	looker fandomdomain.Looker
}

func newCommandContext() *commandContext {
	return &commandContext{cfg: config.New()}
}

// clients builds whatever tests did not inject, from SERVICE_* env
func (c *commandContext) clients() (llm.Completer, fandomdomain.Looker) {
	c.once.Do(func() {
		if c.llm == nil {
			c.llm = llm.NewClient(llm.ConfigFrom(c.cfg))
		}
		if c.looker == nil {
			o := fandommod.FromConfig(c.cfg)
			c.looker = fandom.NewClient(fandom.Options{UserAgent: o.UserAgent, Timeout: o.Timeout})
		}
	})
	return c.llm, c.looker
}

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "animefinder",
		Short:         "Identify anime from scene descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&ctx.jsonOut, "json", false, "Print results as JSON")

	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newValidateCommand(ctx))
	rootCmd.AddCommand(newIdentifyCommand(ctx))
	rootCmd.AddCommand(newLinksCommand(ctx))
	rootCmd.AddCommand(newFandomCommand(ctx))
	rootCmd.AddCommand(newRecommendCommand(ctx))

	return rootCmd
}

// writeJSON encodes v as indented JSON to the command's stdout
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
