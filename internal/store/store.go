// Package store loads the taxonomy documents that back the API: one root
// document plus a directory each of component and subcomponent files. Loads
// are tolerant; unreadable files become logged misses, never errors.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/alignscope/core/internal/models"
)

// Config locates the backing documents. Filenames minus extension are the
// canonical document IDs.
type Config struct {
	RootFile         string
	ComponentsDir    string
	SubcomponentsDir string
}

type Store struct {
	cfg   Config
	log   *slog.Logger
	cache *DocumentCache
}

func New(cfg Config, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		cfg: cfg,
		log: logger.With("component", "store"),
	}
}

// WithCache attaches an optional parsed-document cache. Without one, every
// read parses from disk.
func (s *Store) WithCache(cache *DocumentCache) *Store {
	s.cache = cache
	return s
}

// DefaultRoot returns the built-in root document used whenever the
// configured root file cannot be loaded. Callers get a fresh copy.
func DefaultRoot() models.Document {
	return models.Document{
		"id":          models.DefaultRootID,
		"name":        "AI Alignment",
		"description": "Methods to ensure AI systems remain aligned with human values and intentions.",
		"type":        "component_group",
		"components": []any{
			map[string]any{
				"id":          "technical-safeguards",
				"name":        "Technical Safeguards",
				"description": "Engineering approaches to ensure AI systems behave as intended",
			},
			map[string]any{
				"id":          "value-learning",
				"name":        "Value Learning",
				"description": "Systems that enable AI to learn and internalize human values",
			},
			map[string]any{
				"id":          "interpretability-tools",
				"name":        "Interpretability Tools",
				"description": "Methods to understand AI reasoning and decision-making",
			},
			map[string]any{
				"id":          "oversight-mechanisms",
				"name":        "Oversight Mechanisms",
				"description": "Systems for monitoring and evaluating AI behavior",
			},
		},
	}
}

// LoadRoot loads the root document, falling back to the built-in default on
// any miss. It never fails.
func (s *Store) LoadRoot() models.Document {
	v, err := s.readDocument(s.cfg.RootFile)
	if err != nil {
		s.log.Warn("root document unavailable, using built-in default", "file", s.cfg.RootFile, "error", err)
		return DefaultRoot()
	}

	doc, ok := models.AsDocument(v)
	if !ok {
		s.log.Warn("root document is not a JSON object, using built-in default", "file", s.cfg.RootFile)
		return DefaultRoot()
	}

	return doc
}

// LoadComponents returns the component documents keyed by filename minus
// extension. A missing components directory falls back to the root
// document's inline components list; an existing but empty directory yields
// an empty mapping.
func (s *Store) LoadComponents() map[string]any {
	docs, err := s.loadDir(s.cfg.ComponentsDir, false)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("components directory missing, using inline root components", "dir", s.cfg.ComponentsDir)
			return inlineComponents(s.LoadRoot())
		}

		s.log.Error("cannot enumerate components", "dir", s.cfg.ComponentsDir, "error", err)
		return map[string]any{}
	}

	return docs
}

// LoadSubcomponents returns the subcomponent documents keyed by filename
// minus extension. A parsed object document that lacks an id gets the
// filename-derived ID injected.
func (s *Store) LoadSubcomponents() map[string]any {
	docs, err := s.loadDir(s.cfg.SubcomponentsDir, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("subcomponents directory missing", "dir", s.cfg.SubcomponentsDir)
		} else {
			s.log.Error("cannot enumerate subcomponents", "dir", s.cfg.SubcomponentsDir, "error", err)
		}
		return map[string]any{}
	}

	return docs
}

func (s *Store) readDocument(path string) (any, error) {
	if s.cache != nil {
		return s.cache.Read(path)
	}
	return ReadDocument(path)
}

func (s *Store) loadDir(dir string, injectID bool) (map[string]any, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	docs := make(map[string]any, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !isDocumentFile(entry.Name()) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		path := filepath.Join(dir, entry.Name())

		v, err := s.readDocument(path)
		if err != nil {
			s.log.Error("skipping unreadable document", "file", path, "error", err)
			continue
		}

		if injectID {
			if doc, ok := models.AsDocument(v); ok && doc.ID() == "" {
				// Copy-on-write keeps cached documents immutable.
				clone := maps.Clone(doc)
				clone["id"] = id
				v = map[string]any(clone)
			}
		}

		docs[id] = v
	}

	return docs, nil
}

// inlineComponents keys the root document's fallback components list by id.
// Entries without an id cannot be addressed and are dropped.
func inlineComponents(root models.Document) map[string]any {
	comps := make(map[string]any)

	list, _ := root["components"].([]any)
	for _, item := range list {
		doc, ok := models.AsDocument(item)
		if !ok || doc.ID() == "" {
			continue
		}
		comps[doc.ID()] = item
	}

	return comps
}

func isDocumentFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}

type FileStatus struct {
	File   string `json:"file"`
	Loaded bool   `json:"loaded"`
	Error  string `json:"error,omitempty"`
}

type RootStatus struct {
	Path   string `json:"path"`
	Loaded bool   `json:"loaded"`
	Source string `json:"source"`
	Error  string `json:"error,omitempty"`
}

type DirStatus struct {
	Path   string       `json:"path"`
	Total  int          `json:"total"`
	Loaded int          `json:"loaded"`
	Failed int          `json:"failed"`
	Files  []FileStatus `json:"files"`
}

type LoadReport struct {
	Status        string     `json:"status"`
	Root          RootStatus `json:"root"`
	Components    DirStatus  `json:"components"`
	Subcomponents DirStatus  `json:"subcomponents"`
	Errors        []string   `json:"errors"`
}

// Report re-enumerates every backing document and returns the per-file
// breakdown consumed by the health endpoint and the diagnostic CLI.
func (s *Store) Report() LoadReport {
	report := LoadReport{
		Root:   RootStatus{Path: s.cfg.RootFile, Loaded: true, Source: "file"},
		Errors: []string{},
	}

	v, err := s.readDocument(s.cfg.RootFile)
	if err == nil {
		if _, ok := models.AsDocument(v); !ok {
			err = fmt.Errorf("root document %s is not a JSON object", s.cfg.RootFile)
		}
	}
	if err != nil {
		report.Root.Loaded = false
		report.Root.Source = "default"
		report.Root.Error = err.Error()
		report.Errors = append(report.Errors, err.Error())
	}

	var errs []string
	report.Components, errs = s.reportDir(s.cfg.ComponentsDir)
	report.Errors = append(report.Errors, errs...)

	report.Subcomponents, errs = s.reportDir(s.cfg.SubcomponentsDir)
	report.Errors = append(report.Errors, errs...)

	report.Status = "ok"
	if len(report.Errors) > 0 {
		report.Status = "error"
	}

	return report
}

func (s *Store) reportDir(dir string) (DirStatus, []string) {
	status := DirStatus{Path: dir, Files: []FileStatus{}}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return status, []string{fmt.Sprintf("cannot enumerate %s: %v", dir, err)}
	}

	var errs []string
	for _, entry := range entries {
		if entry.IsDir() || !isDocumentFile(entry.Name()) {
			continue
		}

		status.Total++
		file := FileStatus{File: entry.Name(), Loaded: true}

		if _, err := s.readDocument(filepath.Join(dir, entry.Name())); err != nil {
			file.Loaded = false
			file.Error = err.Error()
			status.Failed++
			errs = append(errs, err.Error())
		} else {
			status.Loaded++
		}

		status.Files = append(status.Files, file)
	}

	return status, errs
}
