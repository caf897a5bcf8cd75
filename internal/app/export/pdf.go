package export

import (
	"bytes"
	"fmt"
	stdimage "image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

// A4 page in millimetres
const (
	A4WidthMM  = 210.0
	A4HeightMM = 297.0
)

// rowSlack keeps a full-height segment from spilling onto an extra page
const rowSlack = 0.01

// PDFWriter embeds a raster into A4 pages, one image segment per page
type PDFWriter struct {
	margin float64
}

// NewPDFWriter creates a writer with the given page margin in millimetres
func NewPDFWriter(margin float64) *PDFWriter {
	if margin < 0 {
		margin = 0
	}
	return &PDFWriter{margin: margin}
}

// Geometry returns the usable page area in millimetres
func (w *PDFWriter) Geometry() (width, height float64) {
	return A4WidthMM - 2*w.margin, A4HeightMM - 2*w.margin
}

// SegmentHeight is the number of source pixels that fit on one page when an image
// of the given pixel width is scaled to the page width
func (w *PDFWriter) SegmentHeight(pixelWidth int) int {
	width, height := w.Geometry()
	if pixelWidth <= 0 {
		return 0
	}
	mmPerPx := width / float64(pixelWidth)
	return int(math.Floor(height / mmPerPx))
}

// Write paginates img and returns the PDF bytes and the number of pages
func (w *PDFWriter) Write(img stdimage.Image) ([]byte, int, error) {
	if img == nil {
		return nil, 0, apperrors.ErrSurfaceMissing
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, 0, apperrors.ErrSurfaceMissing
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(w.margin).
		WithTopMargin(w.margin).
		WithRightMargin(w.margin).
		WithBottomMargin(w.margin).
		Build()
	m := maroto.New(cfg)

	width, _ := w.Geometry()
	mmPerPx := width / float64(b.Dx())
	segment := w.SegmentHeight(b.Dx())
	if segment <= 0 {
		return nil, 0, fmt.Errorf("%w: page holds no image rows", apperrors.ErrPDFFailed)
	}

	pages := 0
	for top := b.Min.Y; top < b.Max.Y; top += segment {
		bottom := top + segment
		if bottom > b.Max.Y {
			bottom = b.Max.Y
		}
		part := imaging.Crop(img, stdimage.Rect(b.Min.X, top, b.Max.X, bottom))

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, part, imaging.PNG); err != nil {
			return nil, 0, fmt.Errorf("%w: encode page %d: %v", apperrors.ErrPDFFailed, pages+1, err)
		}

		height := float64(bottom-top)*mmPerPx - rowSlack
		m.AddRow(height,
			col.New(12).Add(
				image.NewFromBytes(buf.Bytes(), extension.Png, props.Rect{
					Percent: 100,
				}),
			),
		)
		pages++
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrPDFFailed, err)
	}
	return doc.GetBytes(), pages, nil
}
