// Package cmd provides the root command and CLI setup for strokefix.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/strokefix/internal/adapter"
	"github.com/mouse-blink/strokefix/internal/config"
	"github.com/mouse-blink/strokefix/internal/controller"
	"github.com/mouse-blink/strokefix/internal/domain"
	m "github.com/mouse-blink/strokefix/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewReportStore(fsAdapter)
	workflow = domain.NewWorkflow(fsAdapter, reportStore, ui)
}

var configFlag string
var moduleFlag string
var attributeFlag string
var valueFlag string
var extFlags []string
var skipDirFlags []string
var parallelFlag int
var keepGoingFlag bool
var dryRunFlag bool
var gitignoreFlag bool
var reportFlag string

const rootLongDescription = `strokefix walks your project, finds the icons each component imports from
the icon library and adds the styling attribute to every tag that lacks it.

  strokefix                     rewrite everything under the current directory
  strokefix ./app ./components  rewrite selected roots
  strokefix -n ./app            show what would change without writing

Files under node_modules and .next are never touched. Running twice is safe:
tags that already carry the attribute are left as they are.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "strokefix [roots...]",
		Short:         "Add strokeWidth to lucide-react icons",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(args)
			if err != nil {
				return err
			}

			if cfg.DryRun {
				return workflow.Estimate(cmd.Context(), domain.EstimateArgs{
					Config: cfg,
					Report: m.Path(reportFlag),
				})
			}

			return workflow.Apply(cmd.Context(), domain.ApplyArgs{
				Config: cfg,
				Report: m.Path(reportFlag),
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "YAML configuration file")
	flags.StringVarP(&moduleFlag, "module", "m", "", "icon library import specifier (default \"lucide-react\")")
	flags.StringVarP(&attributeFlag, "attribute", "a", "", "attribute to add (default \"strokeWidth\")")
	flags.StringVarP(&valueFlag, "value", "v", "", "attribute value, inserted verbatim (default \"{1.5}\")")
	flags.StringArrayVarP(&extFlags, "ext", "e", nil, "file extension to scan (can be repeated, default .tsx and .ts)")
	flags.StringArrayVarP(&skipDirFlags, "skip-dir", "x", nil, "directory name to skip (can be repeated, default node_modules and .next)")
	flags.IntVarP(&parallelFlag, "parallel", "p", 0, "number of files processed concurrently (default 1)")
	flags.BoolVarP(&keepGoingFlag, "keep-going", "k", false, "report unreadable or unwritable files and continue")
	flags.BoolVar(&gitignoreFlag, "gitignore", false, "skip paths matched by each root's .gitignore")
	flags.StringVarP(&reportFlag, "report", "r", "", "write a YAML report of the run to this file")
	cmd.Flags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "list pending changes without writing")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers command line flags over the loaded configuration.
func resolveConfig(args []string) (config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return config.Config{}, err
	}

	return cfg.WithOverrides(config.Config{
		Roots:        args,
		Module:       moduleFlag,
		Attribute:    attributeFlag,
		Value:        valueFlag,
		Extensions:   extFlags,
		SkipDirs:     skipDirFlags,
		Parallel:     parallelFlag,
		KeepGoing:    keepGoingFlag,
		DryRun:       dryRunFlag,
		UseGitignore: gitignoreFlag,
	}), nil
}
