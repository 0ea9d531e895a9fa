package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/cssaudit"
)

var k = koanf.New(".")

// dashedKeys restores the dashes of multi-word keys after the env
// transform turned every underscore into a key separator
var dashedKeys = strings.NewReplacer(
	"output.format", "output-format",
	"report.dir", "report-dir",
	"print.linter.name", "print-linter-name",
	"max.same.issues", "max-same-issues",
	"max.issues", "max-issues",
	"allow.patterns", "allow-patterns",
	"framework.patterns", "framework-patterns",
	"responsive.patterns", "responsive-patterns",
)

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".cssaudit.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set
	// override keys already loaded)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSAUDIT_* prefix)
	if err := k.Load(env.Provider("CSSAUDIT_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	CSSAUDIT_PURGE_COMMAND -> purge.command
//	CSSAUDIT_OUTPUT_FORMAT -> output-format
//	CSSAUDIT_RULES_ALLOW_PATTERNS -> rules.allow-patterns
func envKey(s string) string {
	key := strings.ReplaceAll(
		strings.ToLower(strings.TrimPrefix(s, "CSSAUDIT_")),
		"_", ".",
	)
	return dashedKeys.Replace(key)
}

// buildAuditConfig constructs the library's Config struct from koanf state.
func buildAuditConfig(logger *slog.Logger) (cssaudit.Config, error) {
	config := cssaudit.DefaultConfig()
	config.Root = getStringWithFallback("root", "root", ".")
	config.Workers = getIntWithFallback("workers", "workers", 0)
	config.Logger = logger

	if css := getStringsWithFallback("css", "css"); len(css) > 0 {
		config.CSS = css
	}
	if sources := getStringsWithFallback("sources", "sources"); len(sources) > 0 {
		config.Sources = sources
	}

	// Built-in tables first, then the user's additions
	rules := cssaudit.RuleConfig{}
	if getBoolWithFallback("rules.builtin", "rules.builtin", true) {
		rules = cssaudit.DefaultRuleConfig()
	}
	config.Rules = rules.Extend(cssaudit.RuleConfig{
		Allow:              append(getStrings("rules.allow"), getStrings("allow")...),
		AllowPatterns:      getStrings("rules.allow-patterns"),
		FrameworkPatterns:  getStrings("rules.framework-patterns"),
		ResponsivePatterns: getStrings("rules.responsive-patterns"),
	})

	timeout := getDurationWithFallback("purge-timeout", "purge.timeout", cssaudit.DefaultPurgeTimeout)
	if timeout < 0 {
		return config, fmt.Errorf("purge timeout must not be negative, got %s", timeout)
	}
	config.PurgeTimeout = timeout

	if command := getStringWithFallback("purge-command", "purge.command", ""); command != "" {
		config.Purger = cssaudit.CommandPurger{
			Command: command,
			Args:    getStrings("purge.args"),
			Timeout: timeout,
		}
	}

	return config, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key.
func getStringsWithFallback(flagKey, configKey string) []string {
	if v := getStrings(flagKey); len(v) > 0 {
		return v
	}
	return getStrings(configKey)
}

// getStrings reads a list key. A plain string (from an env var) is split on
// commas.
func getStrings(key string) []string {
	if s, ok := k.Get(key).(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return k.Strings(key)
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getDurationWithFallback checks the flag key first, then the config file key,
// then returns the default. A zero duration counts as unset.
func getDurationWithFallback(flagKey, configKey string, defaultVal time.Duration) time.Duration {
	if v := k.Duration(flagKey); v != 0 {
		return v
	}
	if v := k.Duration(configKey); v != 0 {
		return v
	}
	return defaultVal
}
