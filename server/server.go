//go:build !js
// +build !js

package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/sprig"

	"github.com/simukka/pixel-sonify/sonify"
)

//go:embed index.html
var indexHTML string

// Config holds the server settings.
type Config struct {
	StaticDir string
	PresetDir string
	Image     string
	Script    string
}

// Server serves the player page, its static assets and a small JSON API.
type Server struct {
	cfg  Config
	page []byte
	mux  *http.ServeMux
}

// pageData feeds index.html.
type pageData struct {
	Title      string
	Background string
	Image      string
	Script     string
	Scales     []sonify.ScaleInfo
}

// NewServer renders the page once and registers the routes.
func NewServer(cfg Config) (*Server, error) {
	tmpl, err := template.New("index").Funcs(sprig.FuncMap()).Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("could not parse index template: %v", err)
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, pageData{
		Title:      "pixel sonify",
		Background: "#0e0e12",
		Image:      cfg.Image,
		Script:     cfg.Script,
		Scales:     sonify.ScaleInfos(),
	})
	if err != nil {
		return nil, fmt.Errorf("could not render index template: %v", err)
	}

	s := &Server{cfg: cfg, page: buf.Bytes(), mux: http.NewServeMux()}
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/api/scales", handleScales)
	s.mux.HandleFunc("/api/presets", s.handlePresets)
	s.mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" || r.URL.Path == "/index.html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(s.page)
		return
	}
	// Serve other static files from disk
	http.FileServer(http.Dir(s.cfg.StaticDir)).ServeHTTP(w, r)
}

// handleScales lists the scales in menu order.
func handleScales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"scales":  sonify.ScaleInfos(),
		"default": sonify.DefaultScale,
	})
}

// handlePresets returns every *.yaml preset in the preset directory keyed by
// file name. Presets that do not decode are skipped and logged.
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets, err := LoadPresets(s.cfg.PresetDir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"presets": presets,
	})
}

// Preset is a named set of playback settings.
type Preset struct {
	Name     string          `json:"name"`
	Settings sonify.Settings `json:"settings"`
}

// LoadPresets reads the presets in dir sorted by name. A missing directory
// yields no presets.
func LoadPresets(dir string) ([]Preset, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	presets := []Preset{}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		settings, err := sonify.LoadSettings(f)
		f.Close()
		if err != nil {
			log.Printf("Skipping preset %s: %v", path, err)
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		presets = append(presets, Preset{Name: name, Settings: settings})
	}
	return presets, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	json.NewEncoder(w).Encode(v)
}
