package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Context struct {
	Name      string   `toml:"name"`
	FileTypes []string `toml:"file-types"`
}

type Contexts struct {
	Contexts []Context `toml:"context"`
}

// Match resolves the context name for a file path by extension or basename.
func (c Contexts) Match(path string) *Context {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range c.Contexts {
		ctx := &c.Contexts[i]
		for _, ft := range ctx.FileTypes {
			ftLower := strings.ToLower(ft)
			if ftLower == ext || ftLower == baseLower {
				return ctx
			}
			if strings.HasPrefix(ftLower, ".") && strings.TrimPrefix(ftLower, ".") == ext {
				return ctx
			}
		}
	}
	return nil
}

func DefaultContexts() Contexts {
	return Contexts{
		Contexts: []Context{
			{Name: "go", FileTypes: []string{"go", "go.mod", "go.sum"}},
			{Name: "python", FileTypes: []string{"py", "pyi"}},
			{Name: "yaml", FileTypes: []string{"yaml", "yml"}},
			{Name: "markdown", FileTypes: []string{"md", "markdown"}},
			{Name: "text", FileTypes: []string{"txt", "log"}},
		},
	}
}

func LoadContexts() (Contexts, error) {
	path, err := ContextsPath()
	if err != nil {
		return Contexts{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultContexts(), nil
		}
		return Contexts{}, err
	}

	var cfg Contexts
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Contexts{}, err
	}
	if len(cfg.Contexts) == 0 {
		return DefaultContexts(), nil
	}
	return cfg, nil
}

func ContextsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "contexts.toml"), nil
}
