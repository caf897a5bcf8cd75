// Package documents renders certificates and marksheets into a fixed page layout tree.
package documents

import "github.com/yigit/schooldesk/internal/app/models"

// Page geometry in CSS pixels (A4 at 96 dpi)
const (
	PageWidth       = 794
	PageHeight      = 1123
	CertPadding     = 40
	CertBorder      = 5
	MarksheetBorder = 2
	MarksheetPad    = 24
)

// BlockKind is the type of a layout block
type BlockKind string

const (
	BlockHeading     BlockKind = "heading"
	BlockParagraph   BlockKind = "paragraph"
	BlockKeyValue    BlockKind = "keyValue"
	BlockTable       BlockKind = "table"
	BlockSignature   BlockKind = "signature"
	BlockSpacer      BlockKind = "spacer"
	BlockPlaceholder BlockKind = "placeholder"
)

// Align is horizontal text alignment
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Span is a run of text with one weight
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// KeyValue is one labelled row of a details table
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Table is a bordered grid with a header row and an optional emphasised total row
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
	Total  []string   `json:"total,omitempty"`
}

// Signature is a row with a left and a right column of lines
type Signature struct {
	Left  [][]Span `json:"left"`
	Right [][]Span `json:"right"`
}

// Block is one vertical element of a page
type Block struct {
	Kind      BlockKind  `json:"kind"`
	Level     int        `json:"level,omitempty"` // heading level 1..4
	Align     Align      `json:"align,omitempty"`
	Underline bool       `json:"underline,omitempty"`
	FontSize  int        `json:"fontSize,omitempty"` // css px, 0 means the body size
	Spans     []Span     `json:"spans,omitempty"`
	Rows      []KeyValue `json:"rows,omitempty"`
	Table     *Table     `json:"table,omitempty"`
	Signature *Signature `json:"signature,omitempty"`
	Space     int        `json:"space,omitempty"`        // spacer height
	MarginTop int        `json:"marginTop,omitempty"`    // extra gap before the block
	MarginEnd int        `json:"marginBottom,omitempty"` // extra gap after the block
}

// Text joins the spans of the block
func (b Block) Text() string {
	out := ""
	for _, s := range b.Spans {
		out += s.Text
	}
	return out
}

// Document is a rendered page ready for export
type Document struct {
	Kind      models.DocumentKind `json:"kind"`
	Title     string              `json:"title"`
	FileName  string              `json:"fileName"`
	Width     int                 `json:"width"`
	MinHeight int                 `json:"minHeight"`
	Padding   int                 `json:"padding"`
	Border    int                 `json:"border"`
	Blocks    []Block             `json:"blocks"`
}

// Find returns the first block of kind k
func (d Document) Find(k BlockKind) (Block, bool) {
	for _, b := range d.Blocks {
		if b.Kind == k {
			return b, true
		}
	}
	return Block{}, false
}

func heading(level int, text string) Block {
	return Block{Kind: BlockHeading, Level: level, Align: AlignCenter, Spans: []Span{{Text: text, Bold: true}}}
}

func paragraph(spans ...Span) Block {
	return Block{Kind: BlockParagraph, Align: AlignLeft, Spans: spans}
}

func plain(text string) Span { return Span{Text: text} }

func bold(text string) Span { return Span{Text: text, Bold: true} }

func spacer(px int) Block { return Block{Kind: BlockSpacer, Space: px} }
