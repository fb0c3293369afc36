package assembler

import (
	"strings"

	"artsync/internal/sidecar"
)

// sketchPreviewSlots is the fixed size of the home page sketch grid.
const sketchPreviewSlots = 4

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML escapes the characters that matter inside element text and
// double-quoted attribute values.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// DeriveTitleAndBody derives the card title and body text from a file name
// and its caption. With a caption, the title is the text before the first
// em dash (file-name-derived when that is blank) and the body is the full
// caption. Without one, the title is file-name-derived and the body is a
// placeholder. Both values come back HTML-escaped.
func DeriveTitleAndBody(fileName, caption, artist string) (title, body string) {
	if caption != "" {
		before, _, _ := strings.Cut(caption, "—")
		title = strings.TrimSpace(before)
		if title == "" {
			title = sidecar.TitleFromFileName(fileName)
		}
		body = caption
	} else {
		title = sidecar.TitleFromFileName(fileName)
		body = "New artwork from " + artist + "."
	}
	return EscapeHTML(title), EscapeHTML(body)
}

// DataAttributes renders the metadata data-* attributes for an element.
// Only non-empty fields are emitted; an item without a metadata sidecar
// yields an empty string. Every value is HTML-escaped.
func DataAttributes(meta sidecar.Metadata) string {
	var b strings.Builder
	if meta.Slug != "" {
		b.WriteString(` data-slug="`)
		b.WriteString(EscapeHTML(meta.Slug))
		b.WriteString(`"`)
	}
	if meta.Kind != "" {
		b.WriteString(` data-kind="`)
		b.WriteString(EscapeHTML(meta.Kind))
		b.WriteString(`"`)
	}
	if len(meta.Tags) > 0 {
		b.WriteString(` data-tags="`)
		b.WriteString(EscapeHTML(strings.Join(meta.Tags, ",")))
		b.WriteString(`"`)
	}
	if len(meta.Characters) > 0 {
		b.WriteString(` data-characters="`)
		b.WriteString(EscapeHTML(strings.Join(meta.Characters, ",")))
		b.WriteString(`"`)
	}
	return b.String()
}

func (item Item) attrs() string {
	if !item.HasMeta {
		return ""
	}
	return DataAttributes(item.Meta)
}

// BuildHero renders the home page hero block from the newest finished
// piece. A nil item yields an empty hero container.
func BuildHero(item *Item) string {
	if item == nil {
		return `<div class="hero-image"></div>`
	}

	alt := item.Caption
	if alt == "" {
		alt = sidecar.TitleFromFileName(item.Name)
	}

	var b strings.Builder
	b.WriteString("<div class=\"hero-image\">\n")
	b.WriteString(`  <img src="images/finished/`)
	b.WriteString(item.Name)
	b.WriteString(`" alt="`)
	b.WriteString(EscapeHTML(alt))
	b.WriteString(`" class="hero-art"`)
	b.WriteString(item.attrs())
	b.WriteString(" />\n</div>")
	return b.String()
}

// BuildFeatured renders the featured-piece card grid for the home page.
// Empty input yields an empty grid container.
func BuildFeatured(items []Item, artist string) string {
	if len(items) == 0 {
		return `<div class="card-grid"></div>`
	}

	cards := make([]string, 0, len(items))
	for _, item := range items {
		cards = append(cards, buildCard(item, "card", "images/finished/", artist))
	}
	return "<div class=\"card-grid\">\n" + strings.Join(cards, "\n\n") + "\n</div>"
}

// BuildGallery renders the full gallery grid for one collection.
func BuildGallery(items []Item, collection, artist string) string {
	if len(items) == 0 {
		return `<div class="card-grid gallery-grid"></div>`
	}

	prefix := "images/" + collection + "/"
	cards := make([]string, 0, len(items))
	for _, item := range items {
		cards = append(cards, buildCard(item, "card gallery-card", prefix, artist))
	}
	return "<div class=\"card-grid gallery-grid\">\n" + strings.Join(cards, "\n\n") + "\n</div>"
}

func buildCard(item Item, class, srcPrefix, artist string) string {
	title, body := DeriveTitleAndBody(item.Name, item.Caption, artist)

	var b strings.Builder
	b.WriteString(`  <article class="`)
	b.WriteString(class)
	b.WriteString(`"`)
	b.WriteString(item.attrs())
	b.WriteString(">\n")
	b.WriteString("    <div class=\"card-image\">\n")
	b.WriteString(`      <img src="`)
	b.WriteString(srcPrefix)
	b.WriteString(item.Name)
	b.WriteString(`" alt="`)
	b.WriteString(title)
	b.WriteString("\" />\n")
	b.WriteString("    </div>\n")
	b.WriteString("    <div class=\"card-body\">\n")
	b.WriteString("      <h3>")
	b.WriteString(title)
	b.WriteString("</h3>\n")
	b.WriteString("      <p>")
	b.WriteString(body)
	b.WriteString("</p>\n")
	b.WriteString("    </div>\n")
	b.WriteString("  </article>")
	return b.String()
}

// BuildSketchPreview renders the fixed 4-cell sketch grid for the home
// page. Cells beyond the available sketches are placeholders, so the grid
// always holds exactly four cells.
func BuildSketchPreview(items []Item, artist string) string {
	used := items
	if len(used) > sketchPreviewSlots {
		used = used[:sketchPreviewSlots]
	}

	cells := make([]string, 0, sketchPreviewSlots)
	for _, item := range used {
		title, _ := DeriveTitleAndBody(item.Name, item.Caption, artist)
		var b strings.Builder
		b.WriteString(`  <div class="sketch"`)
		b.WriteString(item.attrs())
		b.WriteString(">\n")
		b.WriteString(`    <img src="images/sketchbook/`)
		b.WriteString(item.Name)
		b.WriteString(`" alt="`)
		b.WriteString(title)
		b.WriteString("\" />\n  </div>")
		cells = append(cells, b.String())
	}
	for len(cells) < sketchPreviewSlots {
		cells = append(cells, `  <div class="sketch placeholder"><span>Future sketch</span></div>`)
	}

	return "<div class=\"sketch-preview-grid\">\n" + strings.Join(cells, "\n") + "\n</div>"
}
