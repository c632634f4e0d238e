// Package minutes renders the summary and transcript of one recording into
// a .docx document that can be attached to the result thread.
package minutes

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 12
)

var (
	reHeading   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet    = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reWhisperTS = regexp.MustCompile(`^\[\d{1,2}:\d{2}(?::\d{2})?\.\d{3}\s*-->\s*\d{1,2}:\d{2}(?::\d{2})?\.\d{3}\]\s*`)
)

// Render writes a document with title, the markdown summary and the
// transcript (timestamps stripped, repeated lines dropped) to outputPath.
func Render(outputPath, title, summary, transcript string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), title, 16, true)

	addRun(doc.AddParagraph(""), "Summary", 14, true)
	for _, line := range strings.Split(summary, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addRun(doc.AddParagraph(""), m[2], headingSize(len(m[1])), true)
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}

	addRun(doc.AddParagraph(""), "Transcript", 14, true)
	for _, t := range TranscriptLines(transcript) {
		addRun(doc.AddParagraph(""), t, fontSize, false)
	}

	return doc.SaveTo(outputPath)
}

// TranscriptLines strips whisper's "[00:00.000 --> 00:02.000]" prefixes
// and drops blank and repeated lines, keeping first occurrence order.
func TranscriptLines(transcript string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, line := range strings.Split(transcript, "\n") {
		text := strings.TrimSpace(reWhisperTS.ReplaceAllString(strings.TrimSpace(line), ""))
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		out = append(out, text)
	}
	return out
}

// headingSizes maps markdown heading depth to point size; deeper
// headings use the body size.
var headingSizes = map[int]uint64{1: 16, 2: 15, 3: 14}

func headingSize(level int) uint64 {
	if size, ok := headingSizes[level]; ok {
		return size
	}
	return fontSize
}

func addRun(p *docx.Paragraph, text string, size uint64, bold bool) {
	run := p.AddText(stripInlineMarks(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText renders **bold** spans as bold runs between plain runs
func addRichText(p *docx.Paragraph, text string) {
	last := 0
	for _, loc := range reBold.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			addRun(p, text[last:loc[0]], fontSize, false)
		}
		addRun(p, text[loc[2]:loc[3]], fontSize, true)
		last = loc[1]
	}
	if last < len(text) {
		addRun(p, text[last:], fontSize, false)
	}
}

var inlineMarks = strings.NewReplacer("**", "", "__", "", "`", "")

func stripInlineMarks(s string) string {
	return inlineMarks.Replace(s)
}
