package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/compound-bind/binder"
	"github.com/wippyai/compound-bind/engine"
)

var (
	manifestPath string
	anonymous    bool
	verbose      bool

	backend *engine.MemoryBackend
	handles map[string]engine.Handle
	bnd     *binder.Binder
)

var rootCmd = &cobra.Command{
	Use:   "inspect <command>",
	Short: "Inspect compound type manifests and their record bindings",
	Long: `inspect loads a YAML type manifest, introspects the compound types it
declares, and shows the packed layouts and field bindings the library
infers for them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			engine.SetLogger(logger)
		}

		manifest, err := LoadManifest(manifestPath)
		if err != nil {
			return err
		}
		backend, handles, err = manifest.Build()
		if err != nil {
			return err
		}
		bnd = binder.New(engine.NewSession(backend))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if bnd != nil {
			bnd.Session().Close()
		}
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe <type>",
	Short: "Show the packed member layout of a compound type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, ok := handles[args[0]]
		if !ok {
			return fmt.Errorf("manifest does not declare type %q", args[0])
		}

		desc, err := bnd.Describe(h, !anonymous)
		if err != nil {
			return err
		}
		if sorted, _ := cmd.Flags().GetBool("sorted"); sorted {
			desc = desc.SortedByName()
		}

		fmt.Println(renderDescriptor(desc))
		return nil
	},
}

var bindCmd = &cobra.Command{
	Use:   "bind <type>",
	Short: "Show the field mappings inferred for a compound type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, ok := handles[args[0]]
		if !ok {
			return fmt.Errorf("manifest does not declare type %q", args[0])
		}

		desc, err := bnd.Describe(h, !anonymous)
		if err != nil {
			return err
		}
		mappings, err := bnd.Bind(desc, nil, nil)
		if err != nil {
			return err
		}

		fmt.Println(renderMappings(desc, mappings))
		return nil
	},
}

var enumsCmd = &cobra.Command{
	Use:   "enums",
	Short: "Show enumeration definitions registered while describing the manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		for name, h := range handles {
			if _, err := bnd.Describe(h, !anonymous); err != nil {
				return fmt.Errorf("describe %s: %w", name, err)
			}
		}
		fmt.Println(renderEnums(bnd.Enums()))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "types.yaml", "path to the YAML type manifest")
	rootCmd.PersistentFlags().BoolVar(&anonymous, "anonymous", false, "skip committed type names and variant metadata")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	describeCmd.Flags().Bool("sorted", false, "order members by name instead of declaration order")

	rootCmd.AddCommand(describeCmd, bindCmd, enumsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
