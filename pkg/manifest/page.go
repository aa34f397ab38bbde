package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Page maps an exact path to a template file.
type Page struct {
	Path     string   `toml:"path"`
	Methods  []string `toml:"methods"`
	Template string   `toml:"template"`
}

// normalize path/methods
func (p *Page) normalize() error {
	if strings.TrimSpace(p.Path) == "" {
		return errors.New("path is required")
	}
	if !strings.HasPrefix(p.Path, "/") {
		p.Path = "/" + p.Path
	}
	if p.Path != "/" {
		p.Path = path.Clean(p.Path)
	}
	methods := p.Methods[:0]
	for _, m := range p.Methods {
		if m = strings.ToUpper(strings.TrimSpace(m)); m != "" {
			methods = append(methods, m)
		}
	}
	if len(methods) == 0 {
		methods = append(methods, "GET")
	}
	p.Methods = methods
	p.Template = strings.TrimSpace(p.Template)
	return nil
}

func (p *Page) validate() error {
	if p.Template == "" {
		return errors.New("template is required")
	}
	if strings.Contains(p.Template, "..") {
		return fmt.Errorf("template %q must stay inside the templates dir", p.Template)
	}
	return nil
}

// validatePages runs per-page checks and rejects duplicate paths early, so
// the failure names the manifest entry rather than the registry.
func (c *Config) validatePages() error {
	seen := make(map[string]int, len(c.Pages))
	for i := range c.Pages {
		if err := c.Pages[i].normalize(); err != nil {
			return fmt.Errorf("page %d: %w", i, err)
		}
		if err := c.Pages[i].validate(); err != nil {
			return fmt.Errorf("page %d (%s): %w", i, c.Pages[i].Path, err)
		}
		if j, dup := seen[c.Pages[i].Path]; dup {
			return fmt.Errorf("page %d: path %s already declared by page %d", i, c.Pages[i].Path, j)
		}
		seen[c.Pages[i].Path] = i
	}
	return nil
}
