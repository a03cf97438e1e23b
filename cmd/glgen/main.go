// glgen generates graphics API bindings from a Khronos-style XML registry
// document for a requested namespace, profile, version and extension set.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"glgen/internal/config"
	"glgen/internal/generator"
	"glgen/internal/log"
	"glgen/internal/registry"
	"glgen/internal/typemap"
)

var (
	inputFile  string
	outputFile string
	configFile string
	namespace  string
	profile    string
	version    string
	extensions []string
	genStyle   string
	full       bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "glgen",
	Short: "Generate graphics API bindings from a registry document",
	Long: `glgen reads a Khronos-style XML registry document and emits Go bindings
for a requested (namespace, profile, version, extension set) selection.

Generator styles:
  static        - directly linked functions, no indirection (default)
  global        - free functions over loadable global function pointers
  struct        - a struct of loadable function pointer fields
  static_struct - a stub struct whose methods call linked symbols

Examples:
  glgen -i gl.xml -o gl.go
  glgen -i gl.xml --version 4.5 --profile core -g global -o gl.go
  glgen -i gl.xml --extension GL_EXT_texture_filter_anisotropic -g struct
  glgen -i gl.xml --full -o gl.go`,
	RunE: run,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.Initialize(verbose)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Registry XML document (required)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file (YAML/JSON/TOML)")
	rootCmd.Flags().StringVar(&namespace, "namespace", "", "API namespace: "+strings.Join(registry.Namespaces(), ", "))
	rootCmd.Flags().StringVar(&profile, "profile", "", "Profile: core or compatibility")
	rootCmd.Flags().StringVar(&version, "version", "", "Requested API version, e.g. 4.3")
	rootCmd.Flags().StringArrayVar(&extensions, "extension", nil, "Extension to include (repeatable)")
	rootCmd.Flags().StringVarP(&genStyle, "generator", "g", "", "Generator style: "+strings.Join(generator.Styles(), ", "))
	rootCmd.Flags().BoolVar(&full, "full", false, "Generate for all versions, profiles and extensions")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	_ = rootCmd.MarkFlagRequired("input")
}

func main() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	requestID := uuid.NewString()

	cfg := config.New()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return err
		}
	}

	// CLI flags override the config file.
	if namespace != "" {
		cfg.Namespace = namespace
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if version != "" {
		cfg.Version = version
	}
	if genStyle != "" {
		cfg.Generator = genStyle
	}
	if len(extensions) > 0 {
		cfg.Extensions = extensions
	}
	if full {
		cfg.Full = true
	}

	ns, err := registry.ParseNamespace(cfg.Namespace)
	if err != nil {
		return err
	}

	log.Logger.Debugw("generation request",
		"request_id", requestID,
		"namespace", cfg.Namespace,
		"profile", cfg.Profile,
		"version", cfg.Version,
		"generator", cfg.Generator,
		"extensions", cfg.Extensions,
		"full", cfg.Full)

	raw, err := registry.DecodeFile(inputFile, ns)
	if err != nil {
		return err
	}
	log.Logger.Debugw("registry decoded",
		"request_id", requestID,
		"enums", len(raw.Enums()),
		"commands", len(raw.Commands()),
		"extensions", len(raw.Extensions()))

	resolved, err := registry.Resolve(raw, cfg.Filter(), registry.ResolveOptions{
		StrictExtensions: cfg.Options.StrictExtensions,
	})
	if err != nil {
		return err
	}
	log.Logger.Infow("registry resolved",
		"request_id", requestID,
		"enums", len(resolved.Enums()),
		"commands", len(resolved.Commands()))

	table := typemap.ForNamespace(ns)
	table.Apply(cfg.TypeMappings)

	gen, err := generator.New(cfg.Generator, table)
	if err != nil {
		return err
	}
	fragments, err := gen.Write(resolved)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, frag := range fragments {
		if frag.Body == "" {
			continue
		}
		b.WriteString(frag.Body)
		b.WriteString("\n")
	}

	if outputFile == "" {
		fmt.Print(b.String())
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(b.String()), 0o644); err != nil {
		return err
	}
	log.Logger.Infow("bindings written",
		"request_id", requestID,
		"output", outputFile,
		"fragments", len(fragments))
	return nil
}
