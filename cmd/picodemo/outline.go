// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/picodemo/internal/blocks"
	"github.com/thatcatcamp/picodemo/internal/layout"
	"github.com/thatcatcamp/picodemo/internal/markup"
	"github.com/thatcatcamp/picodemo/internal/outline"
	"github.com/thatcatcamp/picodemo/internal/themes"
	"github.com/thatcatcamp/picodemo/web"
)

var (
	outlinePolicy   string
	outlineFragment bool
	outlinePalettes string
)

var outlineCmd = &cobra.Command{
	Use:   "outline",
	Short: "Work with outline pages",
	Long:  "Compile outline YAML files and inspect their heading anchors",
}

var outlineRenderCmd = &cobra.Command{
	Use:   "render <file.yaml>",
	Short: "Render an outline to HTML on stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}

		doc, err := readOutline(args[0])
		if err != nil {
			return err
		}
		compiler, err := compilerFromConfig(outlinePolicy)
		if err != nil {
			return err
		}
		env, err := outlineEnv()
		if err != nil {
			return err
		}

		main, err := compiler.CompileDocument(doc, env)
		if err != nil {
			return err
		}
		return writeOutline(cmd.OutOrStdout(), doc.Title, main)
	},
}

var outlineAnchorsCmd = &cobra.Command{
	Use:   "anchors <file.yaml>",
	Short: "List heading anchors and collisions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}

		doc, err := readOutline(args[0])
		if err != nil {
			return err
		}
		compiler, err := compilerFromConfig(outlinePolicy)
		if err != nil {
			return err
		}
		env, err := outlineEnv()
		if err != nil {
			return err
		}
		sections, err := doc.Descriptors(env)
		if err != nil {
			return err
		}

		entries, collisions, err := compiler.Anchors(sections)
		if err != nil {
			return err
		}
		printAnchors(cmd.OutOrStdout(), entries, collisions)
		return nil
	},
}

func readOutline(path string) (*outline.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := outline.ParseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// outlineEnv loads the palette table from --palettes, or the bundled one
func outlineEnv() (*blocks.Env, error) {
	env := &blocks.Env{Policy: blocks.DefaultPolicy()}

	if outlinePalettes != "" {
		f, err := os.Open(outlinePalettes)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		env.Palettes, err = themes.LoadPalettes(f)
		return env, err
	}

	content, err := web.ContentFS()
	if err != nil {
		return nil, err
	}
	env.Palettes, err = themes.LoadPaletteFile(content, "palettes.yaml")
	return env, err
}

func writeOutline(w io.Writer, title string, main markup.Node) error {
	if outlineFragment {
		if err := main.Render(w); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	}

	chrome, err := chromeFromConfig()
	if err != nil {
		return err
	}
	if err := layout.Write(w, chrome, title, main); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

func printAnchors(w io.Writer, entries []outline.Entry, collisions []outline.Collision) {
	for _, e := range entries {
		fmt.Fprintf(w, "%sh%d #%s  %s\n", strings.Repeat("  ", e.Depth), e.Level, e.Anchor, e.Title)
	}

	if len(collisions) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%d anchor collision(s):\n", len(collisions))
	for _, c := range collisions {
		fmt.Fprintf(w, "  %q wanted #%s, got #%s\n", c.Title, c.Slug, c.Anchor)
	}
}

func init() {
	outlineCmd.PersistentFlags().StringVar(&outlinePolicy, "policy", "", "anchor collision policy: ignore, suffix, or reject (default from outline.anchor_policy)")
	outlineCmd.PersistentFlags().StringVar(&outlinePalettes, "palettes", "", "palette table YAML (default: bundled palettes)")
	outlineRenderCmd.Flags().BoolVar(&outlineFragment, "fragment", false, "print only the <main> element")

	outlineCmd.AddCommand(outlineRenderCmd)
	outlineCmd.AddCommand(outlineAnchorsCmd)
	rootCmd.AddCommand(outlineCmd)
}
