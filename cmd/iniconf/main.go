// Command iniconf is the CLI front end for the iniconf library: it dumps
// a parsed configuration, merges two documents, augments a base
// configuration with a snippet directory, and runs rule-based validation.
package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/ltick/iniconf"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "iniconf",
		Short:         "Inspect, merge, augment, and validate INI configuration files",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newDumpCmd(), newMergeCmd(), newAugmentCmd(), newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "iniconf: %v\n", err)
		os.Exit(1)
	}
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Parse a file and re-serialize it to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := iniconf.ParseFile(args[0], iniconf.DefaultParseOptions())
			if err != nil {
				return err
			}
			reportParseErrors(cfg)
			return iniconf.Serialize(cfg, os.Stdout)
		},
	}
	return cmd
}

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <acceptor> <donor>",
		Short: "Merge donor into acceptor and print the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			acceptor, err := iniconf.ParseFile(args[0], iniconf.DefaultParseOptions())
			if err != nil {
				return err
			}
			donor, err := iniconf.ParseFile(args[1], iniconf.DefaultParseOptions())
			if err != nil {
				return err
			}
			result := iniconf.Merge(acceptor, donor, iniconf.MSMerge, iniconf.MV2SOverwrite)
			return iniconf.Serialize(result, os.Stdout)
		},
	}
	return cmd
}

func newAugmentCmd() *cobra.Command {
	var include, exclude string

	cmd := &cobra.Command{
		Use:   "augment <base> <snippet-dir>",
		Short: "Augment a base configuration with a directory of snippet files",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			base, err := iniconf.ParseFile(args[0], iniconf.DefaultParseOptions())
			if err != nil {
				return err
			}

			opts := iniconf.AugmentOptions{
				Dir:       args[1],
				Collision: iniconf.DefaultCollisionFlags,
			}
			if include != "" {
				re, err := regexp.Compile(include)
				if err != nil {
					return fmt.Errorf("invalid --include pattern: %w", err)
				}
				opts.Include = re
			}
			if exclude != "" {
				re, err := regexp.Compile(exclude)
				if err != nil {
					return fmt.Errorf("invalid --exclude pattern: %w", err)
				}
				opts.Exclude = re
			}

			result := iniconf.Augment(base, opts)
			for _, e := range result.FileErrors {
				fmt.Fprintf(os.Stderr, "iniconf: augment: %v\n", e)
			}
			return iniconf.Serialize(result.Config, os.Stdout)
		},
	}

	cmd.Flags().StringVar(&include, "include", "", "regular expression snippet file names must match")
	cmd.Flags().StringVar(&exclude, "exclude", "", "regular expression snippet file names must not match")
	return cmd
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <rules> <file>",
		Short: "Run the rule/* validators of a rules document against a configuration",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			// Rules repeat attributes such as option/section, so keep duplicates.
			ruleOpts := iniconf.DefaultParseOptions()
			ruleOpts.Collision = iniconf.CollisionFlags(uint32(iniconf.MV1SAllow) | uint32(iniconf.MV2SAllow) | uint32(iniconf.MSMerge))
			rules, err := iniconf.ParseFile(args[0], ruleOpts)
			if err != nil {
				return err
			}
			cfg, err := iniconf.ParseFile(args[1], iniconf.DefaultParseOptions())
			if err != nil {
				return err
			}

			errs := iniconf.Validate(rules, cfg, nil)
			for _, msg := range errs.Messages() {
				fmt.Println(msg)
			}
			if errs.Count() > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	return cmd
}

func reportParseErrors(cfg *iniconf.Configuration) {
	for _, e := range cfg.Errors {
		fmt.Fprintf(os.Stderr, "iniconf: %v\n", e)
	}
}
