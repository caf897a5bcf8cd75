package documents

import (
	"time"

	"github.com/yigit/schooldesk/internal/app/models"
)

const (
	notAvailable = "N/A"
	blank        = "__________"
	// PlaceholderText is shown for certificate types without a template
	PlaceholderText = "No certificate template available."
)

// School is the institution printed in every document header
type School struct {
	Name    string
	Address string
}

// Renderer builds documents. Rendering is deterministic for a given clock.
type Renderer struct {
	school School
	now    func() time.Time
}

// NewRenderer creates a renderer. A nil clock uses time.Now.
func NewRenderer(school School, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{school: school, now: now}
}

func (r *Renderer) header() []Block {
	name := heading(1, r.school.Name)
	name.MarginEnd = 10
	addr := Block{Kind: BlockParagraph, Align: AlignCenter, Spans: []Span{plain(r.school.Address)}, MarginEnd: 30}
	return []Block{name, addr}
}

func page(kind models.DocumentKind, title, fileName string) Document {
	return Document{
		Kind:      kind,
		Title:     title,
		FileName:  fileName,
		Width:     PageWidth,
		MinHeight: PageHeight,
		Padding:   CertPadding,
		Border:    CertBorder,
	}
}
