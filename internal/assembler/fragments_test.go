package assembler_test

import (
	"strings"
	"testing"

	"artsync/internal/assembler"
	"artsync/internal/sidecar"
)

func TestDeriveTitleAndBodyFromCaption(t *testing.T) {
	title, body := assembler.DeriveTitleAndBody(
		"batman_profile.png",
		"Batman Profile Illustration — Batman is shown in a dynamic pose.",
		"Myles",
	)
	if title != "Batman Profile Illustration" {
		t.Fatalf("unexpected title: %q", title)
	}
	if body != "Batman Profile Illustration — Batman is shown in a dynamic pose." {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestDeriveTitleAndBodyWithoutCaption(t *testing.T) {
	title, body := assembler.DeriveTitleAndBody("young_hellboy.png", "", "Myles")
	if title != "Young Hellboy" {
		t.Fatalf("unexpected title: %q", title)
	}
	if body != "New artwork from Myles." {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestDeriveTitleAndBodyEscapes(t *testing.T) {
	title, body := assembler.DeriveTitleAndBody(
		"demon.png",
		`"Demon" <Study> — Ink & wash.`,
		"Myles",
	)
	if title != "&quot;Demon&quot; &lt;Study&gt;" {
		t.Fatalf("unexpected title: %q", title)
	}
	if !strings.Contains(body, "Ink &amp; wash.") {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestDataAttributesEmptyMetadata(t *testing.T) {
	if got := assembler.DataAttributes(sidecar.Metadata{}); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestDataAttributesEmitsOnlyPresentFields(t *testing.T) {
	got := assembler.DataAttributes(sidecar.Metadata{
		Slug: "batman-profile",
		Kind: "finished",
		Tags: []string{"a", "b"},
	})
	want := ` data-slug="batman-profile" data-kind="finished" data-tags="a,b"`
	if got != want {
		t.Fatalf("unexpected attributes:\n got %q\nwant %q", got, want)
	}
	if strings.Contains(got, "data-characters") {
		t.Fatalf("empty characters list leaked into attributes: %q", got)
	}
}

func TestBuildHeroNilItem(t *testing.T) {
	if got := assembler.BuildHero(nil); got != `<div class="hero-image"></div>` {
		t.Fatalf("unexpected empty hero: %q", got)
	}
}

func TestBuildHeroUsesCaptionAsAlt(t *testing.T) {
	item := &assembler.Item{
		Name:    "dragon.png",
		Caption: "Dragon Study — A coiled dragon in red ink.",
	}
	got := assembler.BuildHero(item)
	if !strings.Contains(got, `src="images/finished/dragon.png"`) {
		t.Fatalf("missing src: %q", got)
	}
	if !strings.Contains(got, `alt="Dragon Study — A coiled dragon in red ink."`) {
		t.Fatalf("missing alt: %q", got)
	}
	if !strings.Contains(got, `class="hero-art"`) {
		t.Fatalf("missing class: %q", got)
	}
}

func TestBuildGalleryEmpty(t *testing.T) {
	got := assembler.BuildGallery(nil, "finished", "Myles")
	if got != `<div class="card-grid gallery-grid"></div>` {
		t.Fatalf("unexpected empty gallery: %q", got)
	}
}

func TestBuildGalleryCardMarkup(t *testing.T) {
	items := []assembler.Item{{
		Name:    "robot.png",
		Caption: "Rust Robot — A weathered robot sketch.",
		Meta:    sidecar.Metadata{Slug: "rust-robot"},
		HasMeta: true,
	}}
	got := assembler.BuildGallery(items, "sketchbook", "Myles")
	for _, want := range []string{
		`<article class="card gallery-card" data-slug="rust-robot">`,
		`src="images/sketchbook/robot.png"`,
		`<h3>Rust Robot</h3>`,
		`<p>Rust Robot — A weathered robot sketch.</p>`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("gallery missing %q:\n%s", want, got)
		}
	}
}

func TestBuildSketchPreviewAlwaysFourCells(t *testing.T) {
	make_ := func(n int) []assembler.Item {
		items := make([]assembler.Item, n)
		for i := range items {
			items[i] = assembler.Item{Name: "s.png", Caption: "S — sketch."}
		}
		return items
	}

	for _, n := range []int{0, 1, 2, 4, 10} {
		got := assembler.BuildSketchPreview(make_(n), "Myles")
		cells := strings.Count(got, `<div class="sketch`)
		if cells != 4 {
			t.Fatalf("n=%d: expected 4 cells, got %d:\n%s", n, cells, got)
		}
		placeholders := strings.Count(got, "Future sketch")
		wantPlaceholders := 4 - n
		if wantPlaceholders < 0 {
			wantPlaceholders = 0
		}
		if placeholders != wantPlaceholders {
			t.Fatalf("n=%d: expected %d placeholders, got %d", n, wantPlaceholders, placeholders)
		}
	}
}
