package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabWidth    int    `toml:"tab-width"`
	LineNumbers string `toml:"line-numbers"`
}

type GuideOptions struct {
	Color            string   `toml:"color"`
	LineChar         string   `toml:"line-char"`
	RichGlyphs       bool     `toml:"rich-glyphs"`
	CharWidth        int      `toml:"char-width"`
	CharHeight       int      `toml:"char-height"`
	LeftMargin       int      `toml:"left-margin"`
	HeightAdjustment int      `toml:"height-adjustment"`
	DashLength       int      `toml:"dash-length"`
	Threshold        int      `toml:"threshold"`
	RedrawDelayMs    int      `toml:"redraw-delay-ms"`
	ExcludedContexts []string `toml:"excluded-contexts"`
}

type Theme struct {
	Foreground                 string `toml:"foreground"`
	Background                 string `toml:"background"`
	StatuslineForeground       string `toml:"statusline-foreground"`
	StatuslineBackground       string `toml:"statusline-background"`
	PromptForeground           string `toml:"prompt-foreground"`
	PromptBackground           string `toml:"prompt-background"`
	LineNumberForeground       string `toml:"line-number-foreground"`
	LineNumberActiveForeground string `toml:"line-number-active-foreground"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Guide  GuideOptions  `toml:"guide"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth:    4,
			LineNumbers: "absolute",
		},
		Guide: GuideOptions{
			Color:            "",
			LineChar:         "│",
			RichGlyphs:       false,
			CharWidth:        0,
			CharHeight:       0,
			LeftMargin:       0,
			HeightAdjustment: 0,
			DashLength:       0,
			Threshold:        0,
			RedrawDelayMs:    0,
			ExcludedContexts: nil,
		},
		Theme: Theme{
			Foreground:                 "#B3B1AD",
			Background:                 "#0A0E14",
			StatuslineForeground:       "#B3B1AD",
			StatuslineBackground:       "#0F1419",
			PromptForeground:           "#B3B1AD",
			PromptBackground:           "#0F1419",
			LineNumberForeground:       "#3E4B59",
			LineNumberActiveForeground: "#B3B1AD",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.LineNumbers != "" {
		cfg.Editor.LineNumbers = userCfg.Editor.LineNumbers
	}
	if userCfg.Guide.Color != "" {
		cfg.Guide.Color = userCfg.Guide.Color
	}
	if userCfg.Guide.LineChar != "" {
		cfg.Guide.LineChar = userCfg.Guide.LineChar
	}
	if userCfg.Guide.RichGlyphs {
		cfg.Guide.RichGlyphs = true
	}
	if userCfg.Guide.CharWidth > 0 {
		cfg.Guide.CharWidth = userCfg.Guide.CharWidth
	}
	if userCfg.Guide.CharHeight > 0 {
		cfg.Guide.CharHeight = userCfg.Guide.CharHeight
	}
	if userCfg.Guide.LeftMargin > 0 {
		cfg.Guide.LeftMargin = userCfg.Guide.LeftMargin
	}
	if userCfg.Guide.HeightAdjustment != 0 {
		cfg.Guide.HeightAdjustment = userCfg.Guide.HeightAdjustment
	}
	if userCfg.Guide.DashLength > 0 {
		cfg.Guide.DashLength = userCfg.Guide.DashLength
	}
	if userCfg.Guide.Threshold > 0 {
		cfg.Guide.Threshold = userCfg.Guide.Threshold
	}
	if userCfg.Guide.RedrawDelayMs > 0 {
		cfg.Guide.RedrawDelayMs = userCfg.Guide.RedrawDelayMs
	}
	if userCfg.Guide.ExcludedContexts != nil {
		cfg.Guide.ExcludedContexts = userCfg.Guide.ExcludedContexts
	}
	if userCfg.Theme.Foreground != "" {
		cfg.Theme.Foreground = userCfg.Theme.Foreground
	}
	if userCfg.Theme.Background != "" {
		cfg.Theme.Background = userCfg.Theme.Background
	}
	if userCfg.Theme.StatuslineForeground != "" {
		cfg.Theme.StatuslineForeground = userCfg.Theme.StatuslineForeground
	}
	if userCfg.Theme.StatuslineBackground != "" {
		cfg.Theme.StatuslineBackground = userCfg.Theme.StatuslineBackground
	}
	if userCfg.Theme.PromptForeground != "" {
		cfg.Theme.PromptForeground = userCfg.Theme.PromptForeground
	}
	if userCfg.Theme.PromptBackground != "" {
		cfg.Theme.PromptBackground = userCfg.Theme.PromptBackground
	}
	if userCfg.Theme.LineNumberForeground != "" {
		cfg.Theme.LineNumberForeground = userCfg.Theme.LineNumberForeground
	}
	if userCfg.Theme.LineNumberActiveForeground != "" {
		cfg.Theme.LineNumberActiveForeground = userCfg.Theme.LineNumberActiveForeground
	}

	return cfg, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QGUIDE_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qguide"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qguide"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
