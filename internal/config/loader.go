package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Loader handles loading and saving profile documents.
type Loader struct {
	profileDir string
}

// NewLoader creates a loader rooted at profileDir.
func NewLoader(profileDir string) *Loader {
	return &Loader{profileDir: profileDir}
}

// Load reads a profile from path. Missing keys keep their documented
// defaults; unknown keys are ignored. Environment variables in the document
// are expanded before parsing, supporting ${VAR} and ${VAR:-default}.
func (l *Loader) Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	data = ExpandEnvVarsBytes(data)

	p := DefaultProfile()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	if p.Steps == nil {
		p.Steps = []Step{}
	}

	return p, nil
}

// LoadAndValidate loads a profile and rejects it if validation fails.
func (l *Loader) LoadAndValidate(path string) (*Profile, error) {
	p, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	if err := ValidateProfile(p); err != nil {
		return nil, fmt.Errorf("profile validation failed for %s:\n%w", path, err)
	}

	return p, nil
}

// Save writes the profile to path atomically (tmp + fsync + rename) so a
// crash mid-save never corrupts an existing profile. Load → Save → Load
// round-trips losslessly.
func (l *Loader) Save(path string, p *Profile) error {
	out := *p
	if out.Steps == nil {
		out.Steps = []Step{}
	}

	data, err := json.MarshalIndent(&out, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp := fmt.Sprintf("%s.tmp.%d", path, time.Now().UnixNano())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// LoadDirectory scans a directory for JSON profiles and loads them all,
// keyed by file base name without the extension.
func (l *Loader) LoadDirectory(dir string) (map[string]*Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}

	profiles := make(map[string]*Profile)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		p, err := l.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", entry.Name(), err)
		}
		profiles[profileKey(path)] = p
	}

	return profiles, nil
}

// LoadDefault loads the default profile from the loader's directory.
func (l *Loader) LoadDefault() (*Profile, error) {
	return l.Load(filepath.Join(l.profileDir, "clickflow_default.json"))
}

func profileKey(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}
