// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package templates holds the prompt template registry. Built-in templates are
// always present; external YAML or TOML definitions are merged over them once
// at startup.
package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

// Built-in template identifiers.
const (
	RequirementGathering = "claude_requirement_gathering"
	DetailedSpec         = "openai_detailed_spec"
)

// ErrTemplateNotFound is returned by Get and Render for unknown identifiers.
var ErrTemplateNotFound = errors.New("template not found")

var builtins = map[string]string{
	RequirementGathering: "You are Claude, an AI design partner.\n" +
		"Context: Building \"{project_name}\".\n" +
		"Task: Gather requirements for UI/UX spec.\n" +
		"Deliverables: bullet list of features, constraints, personas.\n",
	DetailedSpec: "System: You are a technical specification writer.\n" +
		"User: Produce a Markdown document defining:\n" +
		"1. UI components (cards, buttons, inputs)\n" +
		"2. Tailwind CSS classes\n" +
		"3. Example React JSX snippets\n" +
		"Include ARIA roles for accessibility.\n",
}

// placeholderPattern matches {name} substitution placeholders.
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Registry maps template identifiers to prompt bodies. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	templates map[string]string
}

// New returns a registry seeded with the built-in templates and then each
// source in order. Later sources override earlier ones, including built-ins.
func New(sources ...map[string]string) *Registry {
	merged := make(map[string]string, len(builtins))
	for id, body := range builtins {
		merged[id] = body
	}
	for _, src := range sources {
		for id, body := range src {
			merged[id] = body
		}
	}
	return &Registry{templates: merged}
}

// Load reads every *.yaml, *.yml and *.toml file in dir and merges them over
// the built-ins. Files are merged in filename order so the last file wins on
// a shared identifier. A missing directory yields the built-ins alone.
func Load(dir string) (*Registry, error) {
	files, err := sourceFiles(dir)
	if err != nil {
		return nil, err
	}

	sources := make([]map[string]string, 0, len(files))
	for _, f := range files {
		src, err := readSource(f)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return New(sources...), nil
}

// sourceFiles returns the sorted template source paths in dir.
func sourceFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading templates directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".toml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// readSource decodes one template file as an identifier → body mapping.
func readSource(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file %s: %w", path, err)
	}

	src := map[string]string{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &src)
	} else {
		err = yaml.Unmarshal(data, &src)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing template file %s: %w", path, err)
	}
	return src, nil
}

// Get returns the prompt body for id.
func (r *Registry) Get(id string) (string, error) {
	body, ok := r.templates[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return body, nil
}

// Render returns the body for id with each {name} placeholder replaced by
// vars[name]. Placeholders without a value are left as written.
func (r *Registry) Render(id string, vars map[string]string) (string, error) {
	body, err := r.Get(id)
	if err != nil {
		return "", err
	}
	return substitute(body, vars), nil
}

func substitute(body string, vars map[string]string) string {
	if len(vars) == 0 {
		return body
	}
	return placeholderPattern.ReplaceAllStringFunc(body, func(m string) string {
		if v, ok := vars[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
