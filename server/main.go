//go:build !js
// +build !js

package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	staticDir := flag.String("static", ".", "Directory to serve static files from")
	presetDir := flag.String("presets", "presets", "Directory holding YAML playback presets")
	image := flag.String("image", "images/demo.jpg", "Image loaded when the page opens")
	script := flag.String("script", "pixel-sonify.js", "Compiled GopherJS bundle")
	flag.Parse()

	srv, err := NewServer(Config{
		StaticDir: *staticDir,
		PresetDir: *presetDir,
		Image:     *image,
		Script:    *script,
	})
	if err != nil {
		log.Fatal(err)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Pixel Sonify server starting on http://localhost%s", addr)
	log.Printf("Serving static files from: %s", *staticDir)
	log.Printf("Presets endpoint: /api/presets (from %s)", *presetDir)

	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Fatal(err)
	}
}
