package segmenter

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"docchat/internal/models"
)

// PDFSegmenter partitions a PDF into typed elements and chunks them by title.
type PDFSegmenter struct {
	cfg Config
}

func NewPDF(cfg Config) *PDFSegmenter {
	if cfg.MaxCharacters <= 0 {
		cfg = DefaultConfig()
	}
	return &PDFSegmenter{cfg: cfg}
}

func (s *PDFSegmenter) Segment(r io.ReaderAt, size int64) ([]models.Chunk, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var elements []Element
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		elements = append(elements, partitionPage(pageText, i)...)
	}

	chunks := ChunkByTitle(elements, s.cfg)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no extractable text in document")
	}
	log.Debug().Int("pages", numPages).Int("chunks", len(chunks)).Msg("segmented document")
	return chunks, nil
}

// partitionPage splits one page of plain text into typed elements. Blank
// lines separate paragraphs; short heading-like lines become title elements.
func partitionPage(pageText string, pageNum int) []Element {
	var elements []Element
	var para strings.Builder

	flushPara := func() {
		text := strings.TrimSpace(para.String())
		para.Reset()
		if text == "" {
			return
		}
		elements = append(elements, Element{
			Text: text,
			Type: models.ChunkTypeNarrativeText,
			Page: pageNum,
		})
	}

	for _, line := range strings.Split(pageText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flushPara()
			continue
		}
		if looksLikeTitle(line) {
			flushPara()
			elements = append(elements, Element{
				Text: line,
				Type: models.ChunkTypeTitle,
				Page: pageNum,
			})
			continue
		}
		if para.Len() > 0 {
			para.WriteString(" ")
		}
		para.WriteString(line)
	}
	flushPara()

	return elements
}

// looksLikeTitle flags short standalone lines without terminal punctuation
// that start with an uppercase letter or digit.
func looksLikeTitle(line string) bool {
	if len(line) == 0 || len(line) > 80 {
		return false
	}
	if strings.ContainsAny(string(line[len(line)-1]), ".,;:!?") {
		return false
	}
	first := []rune(line)[0]
	if !unicode.IsUpper(first) && !unicode.IsDigit(first) {
		return false
	}
	return len(strings.Fields(line)) <= 12
}
