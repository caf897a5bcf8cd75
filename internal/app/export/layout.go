// Package export draws rendered documents into raster images, paginates them into PDFs
// and hands them to a print device.
package export

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/yigit/schooldesk/internal/app/documents"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

// Body text metrics in CSS pixels
const (
	bodySize       = 16
	paragraphGap   = 16
	headingGap     = 8
	cellPadding    = 8
	keyColumnGap   = 24
	signatureGap   = 16
	maxFramePixels = 60_000_000
)

var headingSizes = map[int]int{1: 32, 2: 24, 3: 20, 4: 20}

// OpKind is a drawing primitive
type OpKind int

const (
	OpRect OpKind = iota
	OpText
)

// Op is one positioned drawing instruction in device pixels. For text, Y is the baseline.
type Op struct {
	Kind OpKind
	X, Y int
	W, H int
	Text string
	Bold bool
	Size int
}

// Frame is a laid out page ready to be drawn
type Frame struct {
	Width  int
	Height int
	Scale  int
	Ops    []Op
}

type fontSet struct {
	regular *opentype.Font
	bold    *opentype.Font
}

var (
	fontsOnce sync.Once
	fonts     *fontSet
	fontsErr  error
)

// loadFonts parses the embedded Go fonts once per process
func loadFonts() (*fontSet, error) {
	fontsOnce.Do(func() {
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			fontsErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			fontsErr = fmt.Errorf("parse bold font: %w", err)
			return
		}
		fonts = &fontSet{regular: regular, bold: bold}
	})
	return fonts, fontsErr
}

type faceKey struct {
	size int
	bold bool
}

// faceCache hands out sized faces for one capture. Faces are not safe for concurrent use.
type faceCache struct {
	fonts *fontSet
	faces map[faceKey]font.Face
}

func newFaceCache(fs *fontSet) *faceCache {
	return &faceCache{fonts: fs, faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) face(size int, bold bool) (font.Face, error) {
	k := faceKey{size: size, bold: bold}
	if f, ok := c.faces[k]; ok {
		return f, nil
	}
	src := c.fonts.regular
	if bold {
		src = c.fonts.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("create %dpx face: %w", size, err)
	}
	c.faces[k] = f
	return f, nil
}

func (c *faceCache) measure(text string, size int, bold bool) (int, error) {
	f, err := c.face(size, bold)
	if err != nil {
		return 0, err
	}
	return font.MeasureString(f, text).Ceil(), nil
}

func (c *faceCache) Close() {
	for _, f := range c.faces {
		_ = f.Close()
	}
	c.faces = nil
}

// segment is a run of one weight inside a word
type segment struct {
	text  string
	bold  bool
	width int
}

// word is an unbreakable run, possibly mixing weights, e.g. a bold name followed by a comma
type word struct {
	segs  []segment
	width int
}

type line struct {
	words []word
	width int
}

// layouter places blocks top to bottom inside the content box
type layouter struct {
	faces  *faceCache
	scale  int
	x0     int
	width  int
	y      int
	ops    []Op
	spaceW map[int]int
}

func (l *layouter) px(css int) int { return css * l.scale }

func (l *layouter) space(size int) (int, error) {
	if w, ok := l.spaceW[size]; ok {
		return w, nil
	}
	w, err := l.faces.measure(" ", size, false)
	if err != nil {
		return 0, err
	}
	l.spaceW[size] = w
	return w, nil
}

// words splits spans on whitespace. Text that touches across a span boundary stays one word.
func (l *layouter) words(spans []documents.Span, size int) ([]word, error) {
	var out []word
	var cur *word
	for _, sp := range spans {
		text := sp.Text
		for len(text) > 0 {
			if text[0] == ' ' || text[0] == '\t' || text[0] == '\n' {
				cur = nil
				text = text[1:]
				continue
			}
			end := strings.IndexAny(text, " \t\n")
			if end < 0 {
				end = len(text)
			}
			piece := text[:end]
			text = text[end:]

			w, err := l.faces.measure(piece, size, sp.Bold)
			if err != nil {
				return nil, err
			}
			if cur == nil {
				out = append(out, word{})
				cur = &out[len(out)-1]
			}
			cur.segs = append(cur.segs, segment{text: piece, bold: sp.Bold, width: w})
			cur.width += w
		}
	}
	return out, nil
}

func (l *layouter) wrap(spans []documents.Span, size, maxW int) ([]line, error) {
	ws, err := l.words(spans, size)
	if err != nil {
		return nil, err
	}
	sp, err := l.space(size)
	if err != nil {
		return nil, err
	}

	var lines []line
	var cur line
	for _, w := range ws {
		if len(cur.words) > 0 && cur.width+sp+w.width > maxW {
			lines = append(lines, cur)
			cur = line{}
		}
		if len(cur.words) > 0 {
			cur.width += sp
		}
		cur.words = append(cur.words, w)
		cur.width += w.width
	}
	if len(cur.words) > 0 {
		lines = append(lines, cur)
	}
	return lines, nil
}

// baseline returns the baseline offset of a line box of height lh
func (l *layouter) baseline(size, lh int) (int, error) {
	f, err := l.faces.face(size, false)
	if err != nil {
		return 0, err
	}
	m := f.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	return (lh-ascent-descent)/2 + ascent, nil
}

// drawLines emits text ops for lines starting at top within [x, x+maxW) and returns the height used
func (l *layouter) drawLines(lines []line, x, top, maxW, size, lh int, align documents.Align) (int, error) {
	sp, err := l.space(size)
	if err != nil {
		return 0, err
	}
	base, err := l.baseline(size, lh)
	if err != nil {
		return 0, err
	}
	for i, ln := range lines {
		cx := x
		if align == documents.AlignCenter && ln.width < maxW {
			cx += (maxW - ln.width) / 2
		}
		y := top + i*lh + base
		for j, w := range ln.words {
			if j > 0 {
				cx += sp
			}
			for _, s := range w.segs {
				l.ops = append(l.ops, Op{Kind: OpText, X: cx, Y: y, Text: s.text, Bold: s.bold, Size: size})
				cx += s.width
			}
		}
	}
	return len(lines) * lh, nil
}

func (l *layouter) rect(x, y, w, h int) {
	l.ops = append(l.ops, Op{Kind: OpRect, X: x, Y: y, W: w, H: h})
}

func lineHeight(size int, factor float64) int {
	return int(float64(size)*factor + 0.5)
}

func (l *layouter) text(b documents.Block, cssSize int, factor float64, defaultGap int) error {
	size := l.px(cssSize)
	lines, err := l.wrap(b.Spans, size, l.width)
	if err != nil {
		return err
	}
	h, err := l.drawLines(lines, l.x0, l.y, l.width, size, lineHeight(size, factor), b.Align)
	if err != nil {
		return err
	}
	l.y += h
	if b.Underline && len(lines) > 0 {
		thick := l.scale
		for i, ln := range lines {
			x := l.x0
			if b.Align == documents.AlignCenter {
				x += (l.width - ln.width) / 2
			}
			l.rect(x, l.y-h+(i+1)*lineHeight(size, factor)-thick*2, ln.width, thick)
		}
	}
	l.gap(b.MarginEnd, defaultGap)
	return nil
}

func (l *layouter) gap(margin, def int) {
	if margin > 0 {
		l.y += l.px(margin)
		return
	}
	l.y += l.px(def)
}

func blockSize(b documents.Block) int {
	if b.FontSize > 0 {
		return b.FontSize
	}
	return bodySize
}

func (l *layouter) keyValue(b documents.Block) error {
	size := l.px(blockSize(b))
	lh := lineHeight(size, 1.6)

	keyW := 0
	for _, r := range b.Rows {
		w, err := l.faces.measure(r.Key, size, true)
		if err != nil {
			return err
		}
		if w > keyW {
			keyW = w
		}
	}
	valueX := l.x0 + keyW + l.px(keyColumnGap)
	valueW := l.x0 + l.width - valueX

	for _, r := range b.Rows {
		if _, err := l.drawLines([]line{{words: []word{{segs: []segment{{text: r.Key, bold: true}}}}}}, l.x0, l.y, keyW, size, lh, documents.AlignLeft); err != nil {
			return err
		}
		lines, err := l.wrap([]documents.Span{{Text: r.Value}}, size, valueW)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			lines = []line{{}}
		}
		h, err := l.drawLines(lines, valueX, l.y, valueW, size, lh, documents.AlignLeft)
		if err != nil {
			return err
		}
		l.y += h
	}
	l.gap(b.MarginEnd, paragraphGap)
	return nil
}

func (l *layouter) table(b documents.Block) error {
	t := b.Table
	if t == nil || len(t.Header) == 0 {
		return nil
	}
	size := l.px(blockSize(b))
	lh := lineHeight(size, 1.5)
	pad := l.px(cellPadding)
	cols := len(t.Header)
	colW := l.width / cols
	rule := l.scale

	rows := make([][]string, 0, len(t.Rows)+2)
	boldRow := make([]bool, 0, cap(rows))
	rows, boldRow = append(rows, t.Header), append(boldRow, true)
	for _, r := range t.Rows {
		rows, boldRow = append(rows, r), append(boldRow, false)
	}
	if len(t.Total) > 0 {
		rows, boldRow = append(rows, t.Total), append(boldRow, true)
	}

	l.y += l.px(b.MarginTop)
	top := l.y
	for i, r := range rows {
		rowTop := l.y
		rowH := lh
		var cells [][]line
		for c := 0; c < cols; c++ {
			cell := ""
			if c < len(r) {
				cell = r[c]
			}
			lines, err := l.wrap([]documents.Span{{Text: cell, Bold: boldRow[i]}}, size, colW-2*pad)
			if err != nil {
				return err
			}
			cells = append(cells, lines)
			if h := len(lines) * lh; h > rowH {
				rowH = h
			}
		}
		for c, lines := range cells {
			if _, err := l.drawLines(lines, l.x0+c*colW+pad, rowTop+pad, colW-2*pad, size, lh, documents.AlignLeft); err != nil {
				return err
			}
		}
		l.y += rowH + 2*pad
		l.rect(l.x0, rowTop, colW*cols, rule)
	}
	l.rect(l.x0, l.y, colW*cols, rule)
	for c := 0; c <= cols; c++ {
		l.rect(l.x0+c*colW, top, rule, l.y-top+rule)
	}
	l.y += rule
	l.gap(b.MarginEnd, paragraphGap)
	return nil
}

func (l *layouter) signature(b documents.Block) error {
	s := b.Signature
	if s == nil {
		return nil
	}
	size := l.px(bodySize)
	lh := lineHeight(size, 1.5)
	step := lh + l.px(signatureGap)

	column := func(lines [][]documents.Span, right bool) error {
		for i, spans := range lines {
			wrapped, err := l.wrap(spans, size, l.width/2)
			if err != nil {
				return err
			}
			x := l.x0
			if right && len(wrapped) > 0 {
				x = l.x0 + l.width - wrapped[0].width
			}
			if _, err := l.drawLines(wrapped, x, l.y+i*step, l.width/2, size, lh, documents.AlignLeft); err != nil {
				return err
			}
		}
		return nil
	}
	if err := column(s.Left, false); err != nil {
		return err
	}
	if err := column(s.Right, true); err != nil {
		return err
	}

	n := len(s.Left)
	if len(s.Right) > n {
		n = len(s.Right)
	}
	l.y += n * step
	return nil
}

// Layout places every block of doc at the given pixel scale. It fails with ErrSurfaceMissing
// for a document without content.
func Layout(doc documents.Document, scale int, faces *faceCache) (Frame, error) {
	if len(doc.Blocks) == 0 || doc.Width <= 0 {
		return Frame{}, apperrors.ErrSurfaceMissing
	}
	if scale < 1 {
		scale = 1
	}

	border := doc.Border * scale
	inset := border + doc.Padding*scale
	l := &layouter{
		faces:  faces,
		scale:  scale,
		x0:     inset,
		width:  doc.Width*scale - 2*inset,
		y:      inset,
		spaceW: make(map[int]int),
	}
	if l.width <= 0 {
		return Frame{}, fmt.Errorf("%w: padding leaves no room for content", apperrors.ErrSurfaceMissing)
	}

	for _, b := range doc.Blocks {
		var err error
		switch b.Kind {
		case documents.BlockHeading:
			l.y += l.px(b.MarginTop)
			size := headingSizes[b.Level]
			if size == 0 {
				size = headingSizes[2]
			}
			err = l.text(b, size, 1.2, headingGap)
		case documents.BlockParagraph, documents.BlockPlaceholder:
			l.y += l.px(b.MarginTop)
			factor := 1.5
			if b.FontSize > 0 {
				factor = 1.8
			}
			err = l.text(b, blockSize(b), factor, paragraphGap)
		case documents.BlockKeyValue:
			l.y += l.px(b.MarginTop)
			err = l.keyValue(b)
		case documents.BlockTable:
			err = l.table(b)
		case documents.BlockSignature:
			l.y += l.px(b.MarginTop)
			err = l.signature(b)
		case documents.BlockSpacer:
			l.y += l.px(b.Space)
		}
		if err != nil {
			return Frame{}, err
		}
	}

	width := doc.Width * scale
	height := l.y + inset
	if minH := doc.MinHeight * scale; height < minH {
		height = minH
	}
	if width*height > maxFramePixels {
		return Frame{}, fmt.Errorf("%w: %dx%d frame is too large", apperrors.ErrRasterFailed, width, height)
	}

	if border > 0 {
		l.rect(0, 0, width, border)
		l.rect(0, height-border, width, border)
		l.rect(0, 0, border, height)
		l.rect(width-border, 0, border, height)
	}

	return Frame{Width: width, Height: height, Scale: scale, Ops: l.ops}, nil
}
