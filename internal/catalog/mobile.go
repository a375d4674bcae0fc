package catalog

import (
	"fmt"
	"strings"

	"github.com/v0idhrt/boxdiagram/internal/diagram"
)

func init() {
	register(Diagram{
		Name:        "mobile-architecture",
		Title:       "Meelo Flutter App - System Architecture",
		Description: "Layered architecture of a mobile storytelling app: UI, services, backends and storage.",
		Build:       buildMobile,
	})
}

const (
	flutterColor  diagram.Color = "#02569B"
	supabaseColor diagram.Color = "#3ECF8E"
	aiColor       diagram.Color = "#FF6B35"
	storageColor  diagram.Color = "#6C63FF"
	authColor     diagram.Color = "#FF4757"
	databaseColor diagram.Color = "#34495E"
	filesColor    diagram.Color = "#16A085"
)

// 16in across ten data units, saved at 300 dpi.
const (
	mobileUnitSize = 16 * 72 / 10.0
	mobileDPI      = 300
)

var flowText = strings.Join([]string{
	"Key Data Flows:",
	"1. User authentication via Supabase Auth",
	"2. Story creation: User input → Mistral AI → Generated story → ElevenLabs → Audio file",
	"3. Real-time story synchronization across app instances",
	"4. Language preferences stored locally and synced with profile",
	"5. Audio files stored in Supabase Storage buckets",
}, "\n")

func buildMobile(b *diagram.Builder) (diagram.Canvas, error) {
	s := &sketch{b: b}

	s.text(diagram.Pt(5, 9.5), "Meelo Flutter App - System Architecture",
		diagram.TextStyle{Size: 20, Bold: true}, nil)

	mobileLayer(s)
	serviceLayer(s)
	backendLayer(s)
	dataLayer(s)
	connections(s)
	protocols(s)

	s.legend(diagram.Pt(0, 9.5), diagram.DefaultLegendStyle(),
		swatch{flutterColor, "Flutter Layer"},
		swatch{supabaseColor, "Supabase Backend"},
		swatch{aiColor, "External AI APIs"},
		swatch{storageColor, "Local Storage"},
		swatch{databaseColor, "Database"},
		swatch{filesColor, "File Storage"},
	)

	s.text(diagram.Pt(0.2, 0.5), flowText,
		diagram.TextStyle{Size: 8, HAlign: diagram.AlignLeft, VAlign: diagram.AlignTop},
		&diagram.Background{Style: diagram.Box("lightgray", diagram.NoColor, 0.05, 0.9), Padding: 4})

	if s.err != nil {
		return diagram.Canvas{}, fmt.Errorf("mobile-architecture: %w", s.err)
	}
	return diagram.NewCanvas(10, 10, diagram.White, diagram.WithUnitSize(mobileUnitSize), diagram.WithDPI(mobileDPI))
}

func mobileLayer(s *sketch) {
	r, st := padded(0.5, 7, 9, 1.5, 0.05, flutterColor, diagram.Black, 0.8)
	s.shape(r, st, label("Flutter Mobile Application", 14, true, diagram.White, at(5, 7.75)))

	screens := []string{"Auth Screens", "Home Dashboard", "Memories", "Profile", "Questionnaire", "Figures"}
	const width = 1.4
	for i, name := range screens {
		x := 0.8 + float64(i)*width
		r, st := padded(x, 6.2, width-0.1, 0.6, 0.02, diagram.White, flutterColor, 0.9)
		s.shape(r, st, label(name, 8, true, diagram.Black, at(x+(width-0.1)/2, 6.5)))
	}
}

func serviceLayer(s *sketch) {
	r, st := padded(0.5, 4.5, 9, 1.2, 0.05, "#E8F4FD", diagram.Black, 0.9)
	s.shape(r, st, label("Service Layer", 14, true, diagram.Black, at(5, 5.4)))

	services := []struct {
		name  string
		x     float64
		color diagram.Color
	}{
		{"AuthService", 1.2, authColor},
		{"StoryService", 2.6, flutterColor},
		{"LanguageService", 4.0, "#9B59B6"},
		{"MistralService", 5.4, aiColor},
		{"ElevenLabsService", 6.8, aiColor},
		{"UserPrefsService", 8.2, "#2ECC71"},
	}
	for _, svc := range services {
		r, st := padded(svc.x, 4.7, 1.2, 0.7, 0.02, svc.color, diagram.Black, 0.8)
		s.shape(r, st, label(svc.name, 8, true, diagram.White, at(svc.x+0.6, 5.05)))
	}
}

func backendLayer(s *sketch) {
	const y, h = 2.5, 1.5
	white := diagram.TextStyle{Size: 8, Color: diagram.White}

	r, st := padded(0.5, y, 3.5, h, 0.05, supabaseColor, diagram.Black, 0.8)
	s.shape(r, st, label("Supabase Backend", 12, true, diagram.White, at(2.25, y+h-0.3)))

	const compWidth = 0.8
	for i, name := range []string{"Authentication", "PostgreSQL DB", "Storage", "Real-time"} {
		x := 0.7 + float64(i)*compWidth
		r, st := padded(x, y+0.2, compWidth-0.05, 0.5, 0.02, diagram.White, supabaseColor, 0.9)
		s.shape(r, st, label(name, 7, true, diagram.Black, at(x+(compWidth-0.05)/2, y+0.45)))
	}

	r, st = padded(4.5, y, 2, h/2-0.1, 0.05, aiColor, diagram.Black, 0.8)
	s.shape(r, st, label("Mistral AI API", 10, true, diagram.White, at(5.5, y+0.25)))
	s.text(diagram.Pt(5.5, y+0.05), "Story Generation", white, nil)

	r, st = padded(4.5, y+h/2+0.1, 2, h/2-0.1, 0.05, aiColor, diagram.Black, 0.8)
	s.shape(r, st, label("ElevenLabs API", 10, true, diagram.White, at(5.5, y+h/2+0.35)))
	s.text(diagram.Pt(5.5, y+h/2+0.15), "Text-to-Speech", white, nil)

	r, st = padded(7, y, 2.5, h, 0.05, storageColor, diagram.Black, 0.8)
	s.shape(r, st, label("Local Storage", 12, true, diagram.White, at(8.25, y+h-0.3)))

	for i, name := range []string{"SharedPreferences", "Language Settings", "User Preferences"} {
		cy := y + 0.2 + float64(i)*0.3
		r, st := padded(7.2, cy, 2.1, 0.25, 0.02, diagram.White, storageColor, 0.9)
		s.shape(r, st, label(name, 7, true, diagram.Black, nil))
	}
}

func dataLayer(s *sketch) {
	const y, h = 0.8, 1.2
	desc := diagram.TextStyle{Size: 7}

	r, st := padded(0.5, y, 4.5, h, 0.05, databaseColor, diagram.Black, 0.8)
	s.shape(r, st, label("Database Schema (Supabase)", 12, true, diagram.White, at(2.75, y+h-0.2)))

	tables := []struct{ name, desc string }{
		{"profiles", "User profiles, settings,\nauthentication data"},
		{"stories", "AI-generated stories,\naudio URLs, metadata"},
	}
	for i, tbl := range tables {
		x := 0.8 + float64(i)*2.1
		r, st := padded(x, y+0.2, 1.8, 0.8, 0.02, diagram.White, databaseColor, 0.9)
		s.shape(r, st, label(tbl.name, 9, true, diagram.Black, at(x+0.9, y+0.8)))
		s.text(diagram.Pt(x+0.9, y+0.45), tbl.desc, desc, nil)
	}

	r, st = padded(5.5, y, 4, h, 0.05, filesColor, diagram.Black, 0.8)
	s.shape(r, st, label("File Storage (Supabase Storage)", 12, true, diagram.White, at(7.5, y+h-0.2)))

	r, st = padded(5.8, y+0.2, 3.4, 0.8, 0.02, diagram.White, filesColor, 0.9)
	s.shape(r, st, label("story_audio", 9, true, diagram.Black, at(7.5, y+0.8)))
	s.text(diagram.Pt(7.5, y+0.45), "MP3 audio files generated\nby ElevenLabs TTS", desc, nil)
}

func connections(s *sketch) {
	style := diagram.DefaultArrowStyle()
	style.HeadSize = 15

	links := [][4]float64{
		{5, 7, 5, 5.7},
		{1.8, 4.7, 2.25, 4},
		{3.2, 4.7, 2.25, 4},
		{6, 4.7, 5.5, 4},
		{7.4, 4.7, 5.5, 3.5},
		{8.8, 4.7, 8.25, 4},
		{2.25, 2.5, 2.75, 2},
		{4, 3.25, 5.5, 1.5},
	}
	for _, l := range links {
		s.arrow(diagram.At(l[0], l[1]), diagram.At(l[2], l[3]), style)
	}
}

func protocols(s *sketch) {
	bg := &diagram.Background{Style: diagram.Box("yellow", diagram.NoColor, 0.03, 0.7), Padding: 2.1}
	style := diagram.TextStyle{Size: 7}

	s.text(diagram.Pt(5.5, 4.3), "HTTPS/REST API", style, bg)
	s.text(diagram.Pt(3.5, 3.7), "WebSocket\n(Real-time)", style, bg)
	s.text(diagram.Pt(6.7, 4.3), "HTTP/JSON", style, bg)
	s.text(diagram.Pt(8.8, 3.7), "Local I/O", style, bg)
}
