package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/freshet/freshet/config"
	"github.com/freshet/freshet/graph"
	"github.com/freshet/freshet/parser"
	"github.com/freshet/freshet/physical"
	"github.com/freshet/freshet/physical/optimizer"
)

var (
	configPath   string
	describeOnly bool
	debug        bool
	outputDot    bool
)

var rootCmd = &cobra.Command{
	Use:   "freshet <plan.json>",
	Args:  cobra.ExactArgs(1),
	Short: "Optimize a dataflow query plan",
	Example: `freshet plan.json
freshet --describe-only plan.json
freshet --output-dot plan.json | dot -Tpng > plan.png`,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("couldn't read plan file: %w", err)
		}

		plan, err := parser.ParsePlan(data)
		if err != nil {
			return fmt.Errorf("couldn't parse plan: %w", err)
		}
		if debug {
			spew.Dump(plan)
		}

		if !describeOnly {
			if configPath == "" {
				configPath, err = config.DefaultPath()
				if err != nil {
					return fmt.Errorf("couldn't determine config path: %w", err)
				}
			}
			cfg, err := config.ReadConfig(configPath)
			if err != nil {
				return fmt.Errorf("couldn't read config: %w", err)
			}

			transformArgs := optimizer.TransformArgs{
				MaxIterations:      cfg.Optimizer.MaxIterations,
				DisabledTransforms: cfg.Optimizer.DisabledTransforms,
			}
			if err := optimizer.Optimize(&plan, transformArgs); err != nil {
				return fmt.Errorf("couldn't optimize plan: %w", err)
			}
		}

		if outputDot {
			fmt.Println(graph.Show(physical.DescribeNode(plan, false)).String())
			return nil
		}

		fmt.Print(plan.Describe())

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Column", "Type", "Nullable"})
		for _, field := range plan.Schema.Fields {
			table.Append([]string{field.Name, field.Type.String(), fmt.Sprint(field.Type.Nullable())})
		}
		table.Render()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&describeOnly, "describe-only", false, "print the plan without optimizing it")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "dump the decoded plan")
	rootCmd.Flags().BoolVar(&outputDot, "output-dot", false, "print the plan as graphviz dot")
}
