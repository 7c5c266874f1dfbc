package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	InsertSpaces bool   `toml:"insert-spaces"`
	TabSize      int    `toml:"tab-size"`
	IgnoreTabKey bool   `toml:"ignore-tab-key"`
	Platform     string `toml:"platform"`
}

type LogOptions struct {
	Debug bool `toml:"debug"`
}

type Theme struct {
	Theme                string `toml:"theme"`
	Foreground           string `toml:"foreground"`
	Background           string `toml:"background"`
	StatuslineForeground string `toml:"statusline-foreground"`
	StatuslineBackground string `toml:"statusline-background"`
	SelectionForeground  string `toml:"selection-foreground"`
	SelectionBackground  string `toml:"selection-background"`
	SyntaxKeyword        string `toml:"syntax-keyword"`
	SyntaxString         string `toml:"syntax-string"`
	SyntaxComment        string `toml:"syntax-comment"`
	SyntaxType           string `toml:"syntax-type"`
	SyntaxFunction       string `toml:"syntax-function"`
	SyntaxNumber         string `toml:"syntax-number"`
	SyntaxConstant       string `toml:"syntax-constant"`
	SyntaxOperator       string `toml:"syntax-operator"`
	SyntaxPunctuation    string `toml:"syntax-punctuation"`
	SyntaxField          string `toml:"syntax-field"`
	SyntaxBuiltin        string `toml:"syntax-builtin"`
	SyntaxVariable       string `toml:"syntax-variable"`
	SyntaxParameter      string `toml:"syntax-parameter"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Log    LogOptions    `toml:"log"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			InsertSpaces: true,
			TabSize:      2,
			IgnoreTabKey: false,
		},
		Theme: Theme{
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			StatuslineForeground: "#B3B1AD",
			StatuslineBackground: "#0F1419",
			SelectionForeground:  "#B3B1AD",
			SelectionBackground:  "#27425A",
			SyntaxKeyword:        "#FFA759",
			SyntaxString:         "#BAE67E",
			SyntaxComment:        "#5C6773",
			SyntaxType:           "#5CCFE6",
			SyntaxFunction:       "#FFD173",
			SyntaxNumber:         "#D4BFFF",
			SyntaxConstant:       "#FFDD8E",
			SyntaxOperator:       "#F29668",
			SyntaxPunctuation:    "#C0C0C0",
			SyntaxField:          "#E6B673",
			SyntaxBuiltin:        "#73D0FF",
			SyntaxVariable:       "#B3B1AD",
			SyntaxParameter:      "#B3B1AD",
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
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	// Booleans default to true in places, so only keys present in the file override.
	if md.IsDefined("editor", "insert-spaces") {
		cfg.Editor.InsertSpaces = userCfg.Editor.InsertSpaces
	}
	if md.IsDefined("editor", "ignore-tab-key") {
		cfg.Editor.IgnoreTabKey = userCfg.Editor.IgnoreTabKey
	}
	if userCfg.Editor.TabSize > 0 {
		cfg.Editor.TabSize = userCfg.Editor.TabSize
	}
	if userCfg.Editor.Platform != "" {
		cfg.Editor.Platform = userCfg.Editor.Platform
	}
	if userCfg.Log.Debug {
		cfg.Log.Debug = true
	}

	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&dst.Foreground, src.Foreground)
	set(&dst.Background, src.Background)
	set(&dst.StatuslineForeground, src.StatuslineForeground)
	set(&dst.StatuslineBackground, src.StatuslineBackground)
	set(&dst.SelectionForeground, src.SelectionForeground)
	set(&dst.SelectionBackground, src.SelectionBackground)
	set(&dst.SyntaxKeyword, src.SyntaxKeyword)
	set(&dst.SyntaxString, src.SyntaxString)
	set(&dst.SyntaxComment, src.SyntaxComment)
	set(&dst.SyntaxType, src.SyntaxType)
	set(&dst.SyntaxFunction, src.SyntaxFunction)
	set(&dst.SyntaxNumber, src.SyntaxNumber)
	set(&dst.SyntaxConstant, src.SyntaxConstant)
	set(&dst.SyntaxOperator, src.SyntaxOperator)
	set(&dst.SyntaxPunctuation, src.SyntaxPunctuation)
	set(&dst.SyntaxField, src.SyntaxField)
	set(&dst.SyntaxBuiltin, src.SyntaxBuiltin)
	set(&dst.SyntaxVariable, src.SyntaxVariable)
	set(&dst.SyntaxParameter, src.SyntaxParameter)
}

// SyntaxColors maps highlight capture kinds to theme colours.
func (t Theme) SyntaxColors() map[string]string {
	return map[string]string{
		"keyword":     t.SyntaxKeyword,
		"string":      t.SyntaxString,
		"comment":     t.SyntaxComment,
		"type":        t.SyntaxType,
		"function":    t.SyntaxFunction,
		"number":      t.SyntaxNumber,
		"constant":    t.SyntaxConstant,
		"operator":    t.SyntaxOperator,
		"punctuation": t.SyntaxPunctuation,
		"field":       t.SyntaxField,
		"builtin":     t.SyntaxBuiltin,
		"variable":    t.SyntaxVariable,
		"parameter":   t.SyntaxParameter,
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, fmt.Errorf("theme %s: %w", name, err)
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QPAD_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qpad"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qpad"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
