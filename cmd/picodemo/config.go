// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/picodemo/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage picodemo configuration",
	Long: `View and modify picodemo configuration values.

The file lives at $PICODEMO_CONFIG or ~/.picodemo/config.yaml and is created
with defaults on first use. Every key can also be set from the environment,
e.g. PICODEMO_THEME_PALETTE=azure for theme.palette.

Common keys:
  content.dir               directory of <page>.yaml outlines (empty: bundled pages)
  outline.anchor_policy     repeated heading anchors: ignore, suffix, or reject
  theme.default             initial theme, light or dark
  theme.palette             palette served at /theme.css
  site.menu                 header links, a list of {label, href}
  server.trusted_proxies    peers whose X-Forwarded-For is believed

A running server picks up site.* and theme.* edits without a restart.`,
}

var configGetCmd = &cobra.Command{
	Use:     "get <key>",
	Short:   "Get a configuration value",
	Example: "  picodemo config get outline.anchor_policy\n  picodemo config get site.menu",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(formatValue(config.GetAll(), args[0]))
	},
}

var configSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "Set a configuration value",
	Example: "  picodemo config set outline.anchor_policy reject\n  picodemo config set theme.palette azure",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := config.Set(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting config: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Set %s = %s\n", args[0], args[1])
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values as dotted keys",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		all := config.GetAll()
		for _, key := range flattenKeys(all, "") {
			fmt.Printf("%s: %s\n", key, formatValue(all, key))
		}
	},
}

// flattenKeys returns the dotted paths of every leaf in settings, sorted
func flattenKeys(settings map[string]interface{}, prefix string) []string {
	var keys []string
	for k, v := range settings {
		key := prefix + k
		if nested, ok := v.(map[string]interface{}); ok {
			keys = append(keys, flattenKeys(nested, key+".")...)
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// formatValue renders the value at a dotted key. Lists of maps such as
// site.menu print one entry per line.
func formatValue(settings map[string]interface{}, key string) string {
	var value interface{} = settings
	for _, part := range strings.Split(strings.ToLower(key), ".") {
		m, ok := value.(map[string]interface{})
		if !ok {
			return ""
		}
		value = m[part]
	}

	switch v := value.(type) {
	case nil:
		return ""
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				parts = append(parts, "\n  - "+formatMap(m))
				continue
			}
			parts = append(parts, fmt.Sprint(item))
		}
		if len(parts) > 0 && strings.HasPrefix(parts[0], "\n") {
			return strings.Join(parts, "")
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case []map[string]string:
		var b strings.Builder
		for _, item := range v {
			m := make(map[string]interface{}, len(item))
			for k, val := range item {
				m[k] = val
			}
			b.WriteString("\n  - " + formatMap(m))
		}
		return b.String()
	case map[string]interface{}:
		return formatMap(v)
	default:
		return fmt.Sprint(v)
	}
}

func formatMap(m map[string]interface{}) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

// initConfig initializes the configuration system
func initConfig() error {
	configPath := os.Getenv("PICODEMO_CONFIG")
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".picodemo", "config.yaml")
	}

	return config.InitConfig(configPath)
}
