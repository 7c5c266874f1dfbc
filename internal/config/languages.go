package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Language struct {
	Name      string   `toml:"name"`
	FileTypes []string `toml:"file-types"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

// DefaultLanguages covers the grammars the highlighter ships with.
func DefaultLanguages() Languages {
	return Languages{Languages: []Language{
		{Name: "go", FileTypes: []string{"go"}},
		{Name: "bash", FileTypes: []string{"sh", "bash", ".bashrc", ".profile"}},
		{Name: "yaml", FileTypes: []string{"yaml", "yml"}},
		{Name: "toml", FileTypes: []string{"toml"}},
		{Name: "json", FileTypes: []string{"json"}},
		{Name: "markdown", FileTypes: []string{"md", "markdown"}},
	}}
}

func (l Languages) Match(path string) *Language {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ft = strings.ToLower(ft)
			if ft == baseLower || (ext != "" && strings.TrimPrefix(ft, ".") == ext) {
				return lang
			}
		}
	}
	return nil
}

// LoadLanguages reads languages.toml. A missing file yields DefaultLanguages;
// entries in the file are tried before the defaults.
func LoadLanguages() (Languages, error) {
	defaults := DefaultLanguages()
	path, err := LanguagesPath()
	if err != nil {
		return defaults, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, err
	}

	var cfg Languages
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return defaults, err
	}
	cfg.Languages = append(cfg.Languages, defaults.Languages...)
	return cfg, nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
