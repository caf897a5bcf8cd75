package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/yigit/schooldesk/internal/app/documents"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
)

// Rasterizer draws documents onto pixel canvases
type Rasterizer struct{}

// NewRasterizer creates a rasterizer
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Capture lays doc out at scale, waits for settle and draws the frame. The wait is
// cancelled with ctx.
func (r *Rasterizer) Capture(ctx context.Context, doc documents.Document, scale int, settle time.Duration) (img image.Image, err error) {
	if len(doc.Blocks) == 0 {
		return nil, apperrors.ErrSurfaceMissing
	}

	fs, err := loadFonts()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRasterFailed, err)
	}
	faces := newFaceCache(fs)
	defer faces.Close()

	frame, err := Layout(doc, scale, faces)
	if err != nil {
		return nil, err
	}

	if settle > 0 {
		timer := time.NewTimer(settle)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			img = nil
			err = fmt.Errorf("%w: %v", apperrors.ErrRasterFailed, rec)
		}
	}()
	return paint(frame, faces)
}

// paint executes the frame ops on a white canvas
func paint(f Frame, faces *faceCache) (*image.NRGBA, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("%w: empty frame", apperrors.ErrRasterFailed)
	}
	canvas := imaging.New(f.Width, f.Height, color.White)
	ink := image.NewUniform(color.Black)

	for _, op := range f.Ops {
		switch op.Kind {
		case OpRect:
			draw.Draw(canvas, image.Rect(op.X, op.Y, op.X+op.W, op.Y+op.H), ink, image.Point{}, draw.Src)
		case OpText:
			face, err := faces.face(op.Size, op.Bold)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", apperrors.ErrRasterFailed, err)
			}
			d := font.Drawer{Dst: canvas, Src: ink, Face: face, Dot: fixed.P(op.X, op.Y)}
			d.DrawString(op.Text)
		}
	}
	return canvas, nil
}
