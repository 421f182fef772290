// Package prompts provides a loader for externalized LLM prompt templates.
// Prompts are stored as JSON files of key/template pairs embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	loadOnce sync.Once
	library  map[string]map[string]string
	loadErr  error
)

// Get retrieves a prompt by filename and key, e.g. Get("advice.json", "suggest-improvements").
func Get(filename, key string) (string, error) {
	lib, err := load()
	if err != nil {
		return "", err
	}

	file, ok := lib[filename]
	if !ok {
		return "", fmt.Errorf("prompt file %s not found", filename)
	}
	prompt, ok := file[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts that are required at startup.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces {{.Key}} placeholders with values from data. Unknown placeholders are
// left in place.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Keys lists the prompt keys in a file in sorted order.
func Keys(filename string) ([]string, error) {
	lib, err := load()
	if err != nil {
		return nil, err
	}
	file, ok := lib[filename]
	if !ok {
		return nil, fmt.Errorf("prompt file %s not found", filename)
	}

	keys := make([]string, 0, len(file))
	for key := range file {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// load parses every embedded prompt file exactly once.
func load() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		library = make(map[string]map[string]string)
		loadErr = fs.WalkDir(promptFiles, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := promptFiles.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read prompt file %s: %w", path, err)
			}
			var prompts map[string]string
			if err := json.Unmarshal(data, &prompts); err != nil {
				return fmt.Errorf("failed to parse prompt file %s: %w", path, err)
			}
			library[path] = prompts
			return nil
		})
	})
	return library, loadErr
}
