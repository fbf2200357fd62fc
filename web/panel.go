//go:build js
// +build js

package web

import (
	"bytes"
	_ "embed"
	"strconv"
	"strings"
	"text/template"

	"github.com/gopherjs/gopherjs/js"

	"github.com/simukka/pixel-sonify/audio"
	"github.com/simukka/pixel-sonify/sonify"
)

//go:embed panel.gohtml
var panelHtml string

// PanelData holds all data needed to render the settings panel template.
type PanelData struct {
	Settings  sonify.Settings
	Sliders   []Slider
	Waveforms []Option
	Scales    []Option
}

// Slider describes one range input.
type Slider struct {
	ID    string
	Label string
	Min   float64
	Max   float64
	Step  float64
	Value string
}

// Option is one entry of a select.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Panel is the settings surface: sliders and selects bound to the playback
// parameters, the play checkbox, reset and image upload.
type Panel struct {
	el     *js.Object
	params *sonify.Parameters
	ctrl   *sonify.Controller
}

// NewPanel creates the panel element; Mount adds it to the page.
func NewPanel(params *sonify.Parameters) *Panel {
	doc := js.Global.Get("document")
	el := doc.Call("createElement", "div")
	el.Set("id", "settings-panel")
	el.Get("style").Set("cssText", `
		position: fixed;
		top: 16px;
		right: 16px;
		background: `+Theme.PanelBackground+`;
		border: 1px solid `+Theme.PanelBorder+`;
		border-radius: 6px;
		padding: 12px;
		color: `+Theme.PanelText+`;
		font: `+Theme.PanelFont+`;
		z-index: 1000;
		min-width: 260px;
	`)
	return &Panel{el: el, params: params}
}

// Mount renders the panel into parent and binds its buttons to ctrl.
func (p *Panel) Mount(parent *js.Object, ctrl *sonify.Controller) {
	p.ctrl = ctrl
	p.el.Set("innerHTML", p.buildHTML())
	parent.Call("appendChild", p.el)
	p.attachHandlers()
	p.params.OnChange(p.Refresh)
}

func (p *Panel) buildHTML() string {
	s := p.params.Settings()
	data := PanelData{
		Settings: s,
		Sliders: []Slider{
			{"ctrl-volume", "Volume", 0, 1, 0.01, formatValue(s.Volume)},
			{"ctrl-bpm", "BPM", sonify.MinBPM, sonify.MaxBPM, 1, formatValue(s.BPM)},
			{"ctrl-speed", "Speed", sonify.MinSpeed, sonify.MaxSpeed, 0.1, formatValue(s.Speed)},
			{"ctrl-step", "Pixel Step", 1, 8, 1, strconv.Itoa(s.PixelStep)},
		},
	}
	for _, w := range audio.Waveforms {
		data.Waveforms = append(data.Waveforms, Option{
			Value:    string(w),
			Label:    strings.ToUpper(string(w[:1])) + string(w[1:]),
			Selected: string(w) == s.Waveform,
		})
	}
	for _, info := range sonify.ScaleInfos() {
		data.Scales = append(data.Scales, Option{
			Value:    info.Name,
			Label:    info.Label,
			Selected: info.Name == s.Scale,
		})
	}

	tmpl, err := template.New("panel").Parse(panelHtml)
	if err != nil {
		return "<div style='color:red'>Template error: " + err.Error() + "</div>"
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "<div style='color:red'>Execute error: " + err.Error() + "</div>"
	}
	return buf.String()
}

func (p *Panel) attachHandlers() {
	attachSlider := func(id string, handler func(float64)) {
		slider := p.find(id)
		if slider == nil {
			return
		}
		slider.Call("addEventListener", "input", func(e *js.Object) {
			handler(e.Get("target").Get("value").Float())
		})
	}

	attachSlider("ctrl-volume", p.params.SetVolume)
	attachSlider("ctrl-bpm", p.params.SetBPM)
	attachSlider("ctrl-speed", p.params.SetSpeed)
	attachSlider("ctrl-step", func(v float64) { p.params.SetPixelStep(int(v)) })

	if sel := p.find("ctrl-wave"); sel != nil {
		sel.Call("addEventListener", "change", func(e *js.Object) {
			if err := p.params.SetWaveform(e.Get("target").Get("value").String()); err != nil {
				DebugError(err.Error())
			}
		})
	}
	if sel := p.find("ctrl-scale"); sel != nil {
		sel.Call("addEventListener", "change", func(e *js.Object) {
			p.params.SetScale(e.Get("target").Get("value").String())
		})
	}
	if box := p.find("ctrl-play"); box != nil {
		box.Call("addEventListener", "change", func(e *js.Object) {
			p.ctrl.SetPlaying(e.Get("target").Get("checked").Bool())
		})
	}
	if btn := p.find("ctrl-reset"); btn != nil {
		btn.Call("addEventListener", "click", func() {
			p.ctrl.Reset()
		})
	}
	if btn := p.find("ctrl-close"); btn != nil {
		btn.Call("addEventListener", "click", func() {
			p.Hide()
		})
	}
	if input := p.find("ctrl-upload"); input != nil {
		input.Call("addEventListener", "change", func(e *js.Object) {
			files := e.Get("target").Get("files")
			if files == nil || files == js.Undefined || files.Length() == 0 {
				return
			}
			reader := js.Global.Get("FileReader").New()
			reader.Set("onload", func() {
				p.ctrl.Load(reader.Get("result").String())
			})
			reader.Call("readAsDataURL", files.Index(0))
		})
	}
}

// Refresh copies the parameter values into the inputs.
func (p *Panel) Refresh() {
	s := p.params.Settings()
	p.setValue("ctrl-volume", formatValue(s.Volume))
	p.setValue("ctrl-bpm", formatValue(s.BPM))
	p.setValue("ctrl-speed", formatValue(s.Speed))
	p.setValue("ctrl-step", strconv.Itoa(s.PixelStep))
	p.setValue("ctrl-wave", s.Waveform)
	p.setValue("ctrl-scale", s.Scale)
	if box := p.find("ctrl-play"); box != nil {
		box.Set("checked", s.Play)
	}
}

// SetEnabled enables or disables every input of the panel.
func (p *Panel) SetEnabled(enabled bool) {
	inputs := p.el.Call("querySelectorAll", "input, select, button")
	for i := 0; i < inputs.Length(); i++ {
		inputs.Index(i).Set("disabled", !enabled)
	}
	if enabled {
		p.el.Get("style").Set("opacity", "1")
	} else {
		p.el.Get("style").Set("opacity", "0.5")
	}
}

// Toggle shows or hides the panel.
func (p *Panel) Toggle() {
	if p.el.Get("style").Get("display").String() == "none" {
		p.Show()
	} else {
		p.Hide()
	}
}

func (p *Panel) Show() { p.el.Get("style").Set("display", "block") }
func (p *Panel) Hide() { p.el.Get("style").Set("display", "none") }

func (p *Panel) find(id string) *js.Object {
	el := p.el.Call("querySelector", "#"+id)
	if el == nil || el == js.Undefined {
		return nil
	}
	return el
}

func (p *Panel) setValue(id, value string) {
	el := p.find(id)
	if el == nil {
		return
	}
	el.Set("value", value)
	if label := p.find(id + "-val"); label != nil {
		label.Set("textContent", value)
	}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
