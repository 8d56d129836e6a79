package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/plateforge/plateforge/pkg/pipeline"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	cap      int    // per-section element cap before density reduction
	refresh  bool   // regenerate even when cached
	noCache  bool   // disable caching
	redisURL string // Redis cache endpoint
}

// inspectCommand creates the inspect command for examining generation plans.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{cap: pipeline.DefaultMaxElements}

	cmd := &cobra.Command{
		Use:   "inspect [plate.toml]",
		Short: "Build the generation plan and show per-section statistics",
		Long: `Build the generation plan and show per-section statistics.

The inspect command resolves a plate file and builds the generation plan
without rendering any artifacts. It prints the per-section element counts
and flags sections whose density had to be reduced to stay under the cap.

Without a file argument it inspects the built-in default design.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runInspect(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().IntVar(&opts.cap, "cap", opts.cap, "per-section element cap before density reduction")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even when cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis cache URL (overrides "+envRedisURL+")")

	return cmd
}

// runInspect builds the plan and prints the section breakdown.
func (c *CLI) runInspect(ctx context.Context, input string, opts inspectOpts) error {
	doc, err := loadDocument(input)
	if err != nil {
		return err
	}
	p, configs, err := doc.Resolve()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Plate:       &p,
		Sections:    configs[:],
		MaxElements: opts.cap,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	}

	pl, cacheHit, err := runner.PlanWithCacheInfo(ctx, pipeOpts)
	if err != nil {
		return err
	}

	if doc.Name != "" {
		printKeyValue("Design", doc.Name)
	}
	printKeyValue("Plate", p.String())
	printKeyValue("Cap", strconv.Itoa(opts.cap))
	printNewline()

	fmt.Println(sectionTable(pl))
	for _, w := range pl.Warnings() {
		printWarning("%s", w)
	}
	printStats(pl.TotalElements(), pl.Reduced(), cacheHit)

	printNewline()
	next := "plateforge generate"
	if input != "" {
		next += " " + input
	}
	printNextStep("Render it", next)

	return nil
}
