package llm

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var profileFiles embed.FS

// DefaultProfile is used when no profile is configured.
const DefaultProfile = "senior_reviewer"

// Profile is a named system instruction plus the template that wraps the
// user's code for each request.
type Profile struct {
	Name              string `yaml:"name" json:"name"`
	Description       string `yaml:"description" json:"description"`
	SystemInstruction string `yaml:"system_instruction" json:"system_instruction"`
	RequestTemplate   string `yaml:"request_template" json:"-"`

	tmpl *template.Template
}

// RequestData is the data passed to a profile's request template.
type RequestData struct {
	Code string
}

// RenderRequest builds the per-request payload for code.
func (p *Profile) RenderRequest(code string) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, RequestData{Code: code}); err != nil {
		return "", fmt.Errorf("failed to render request for profile '%s': %w", p.Name, err)
	}
	return buf.String(), nil
}

// ProfileRegistry holds the review profiles known to the process.
type ProfileRegistry struct {
	profiles map[string]*Profile
}

// NewProfileRegistry loads the built-in profiles. If dir is non-empty, every
// *.yaml file in it is loaded as well and replaces a built-in profile of the
// same name.
func NewProfileRegistry(dir string) (*ProfileRegistry, error) {
	r := &ProfileRegistry{profiles: make(map[string]*Profile)}

	if err := r.loadFS(profileFiles, "profiles"); err != nil {
		return nil, fmt.Errorf("failed to load embedded profiles: %w", err)
	}
	if dir != "" {
		if err := r.loadFS(os.DirFS(dir), "."); err != nil {
			return nil, fmt.Errorf("failed to load profiles from %s: %w", dir, err)
		}
	}
	return r, nil
}

func (r *ProfileRegistry) loadFS(fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		content, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(root, entry.Name())))
		if err != nil {
			return fmt.Errorf("failed to read profile file %s: %w", entry.Name(), err)
		}
		p, err := parseProfile(content)
		if err != nil {
			return fmt.Errorf("invalid profile file %s: %w", entry.Name(), err)
		}
		r.profiles[p.Name] = p
	}
	return nil
}

func parseProfile(content []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(content, &p); err != nil {
		return nil, fmt.Errorf("could not parse yaml: %w", err)
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	if strings.TrimSpace(p.SystemInstruction) == "" {
		return nil, fmt.Errorf("profile '%s' has no system_instruction", p.Name)
	}
	if strings.TrimSpace(p.RequestTemplate) == "" {
		p.RequestTemplate = "{{.Code}}"
	}
	tmpl, err := template.New(p.Name).Option("missingkey=error").Parse(p.RequestTemplate)
	if err != nil {
		return nil, fmt.Errorf("could not parse request_template: %w", err)
	}
	p.tmpl = tmpl
	return &p, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Get returns the profile registered under name.
func (r *ProfileRegistry) Get(name string) (*Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown review profile '%s' (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns the registered profile names in sorted order.
func (r *ProfileRegistry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns all profiles sorted by name.
func (r *ProfileRegistry) List() []*Profile {
	names := r.Names()
	out := make([]*Profile, 0, len(names))
	for _, name := range names {
		out = append(out, r.profiles[name])
	}
	return out
}
