package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Templates loads static template files from Dir into response bodies.
// Content is served as-is; no template language is evaluated.
type Templates struct {
	Dir    string
	Logger *zap.Logger
}

// Render builds a 200 response whose body is the content of the named file.
// An empty name, a name that is absolute or climbs out of Dir, or a missing
// file is an error. A read that fails after the
// file was found is logged and degrades to an empty body.
func (t Templates) Render(name string) (*Response, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTemplateName
	}
	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateOutsideDir, name)
	}
	p := filepath.Join(t.Dir, local)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("core: stat template %q: %w", name, err)
	}

	resp := NewResponse("")
	if ct := contentTypeFor(name); ct != "" {
		resp.SetHeaders(map[string]string{"Content-Type": ct})
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.logger().Error("template read failed", zap.String("template", name), zap.String("path", p), zap.Error(err))
		return resp, nil
	}
	resp.Body = b
	return resp, nil
}

func (t Templates) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".json":
		return "application/json"
	case ".css":
		return "text/css; charset=utf-8"
	default:
		return ""
	}
}
