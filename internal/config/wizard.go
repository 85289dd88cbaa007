package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectDocsRoot looks for generator output below the current directory and
// suggests the directory to scan.
func detectDocsRoot() string {
	for _, pattern := range []string{"firmware/projects", "projects", "docs"} {
		if matches, _ := filepath.Glob(pattern); len(matches) > 0 {
			return pattern
		}
	}
	return "."
}

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to doxynav! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	rootPrompt := promptui.Prompt{
		Label:   "Directory to scan for navigation data",
		Default: detectDocsRoot(),
	}
	rootDir, err := rootPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("root dir: %w", err)
	}
	cfg.RootDir = rootDir

	includePrompt := promptui.Prompt{
		Label:   "Include patterns (comma-separated globs)",
		Default: strings.Join(DefaultInclude, ","),
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	if include := splitAndTrim(includeStr); len(include) > 0 {
		cfg.Include = include
	}

	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = append(append([]string{}, DefaultExcludes...), splitAndTrim(excludeStr)...)

	levelPrompt := promptui.Select{
		Label: "Console log level",
		Items: []string{string(LogNormal), string(LogDebug), string(LogNone)},
	}
	_, level, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg.LogLevel = LogLevel(level)

	portPrompt := promptui.Prompt{
		Label:   "HTTP port for `doxynav serve`",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 0 || p > 65535 {
				return fmt.Errorf("invalid port")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
