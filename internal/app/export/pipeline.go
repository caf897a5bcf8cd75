package export

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/yigit/schooldesk/internal/app/documents"
	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/pkg/logger"
)

// Settle delays before capture, giving the layout time to complete
const (
	DefaultDownloadSettle = 300 * time.Millisecond
	DefaultPrintSettle    = 100 * time.Millisecond
)

// MaxExportDuration bounds a shared capture, which outlives any single caller's context
const MaxExportDuration = 30 * time.Second

// Options controls one capture
type Options struct {
	Scale  int
	Settle time.Duration
}

// Artifact is an exported PDF. Shared artifacts must be treated as read-only.
type Artifact struct {
	FileName string
	Kind     models.DocumentKind
	PDF      []byte
	Pages    int
}

// Pipeline turns documents into PDFs. Identical concurrent exports share one capture.
type Pipeline struct {
	raster *Rasterizer
	pdf    *PDFWriter
	group  singleflight.Group
}

// NewPipeline creates a pipeline
func NewPipeline(raster *Rasterizer, pdf *PDFWriter) *Pipeline {
	return &Pipeline{raster: raster, pdf: pdf}
}

// Export renders doc into a PDF artifact
func (p *Pipeline) Export(ctx context.Context, doc documents.Document, opts Options) (*Artifact, error) {
	key, err := exportKey(doc, opts)
	if err != nil {
		return nil, err
	}

	ch := p.group.DoChan(key, func() (interface{}, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), MaxExportDuration)
		defer cancel()
		return p.export(runCtx, doc, opts)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Debug().Str("file", doc.FileName).Msg("Export coalesced with an in-flight capture")
		}
		return res.Val.(*Artifact), nil
	}
}

func (p *Pipeline) export(ctx context.Context, doc documents.Document, opts Options) (*Artifact, error) {
	start := time.Now()
	img, err := p.raster.Capture(ctx, doc, opts.Scale, opts.Settle)
	if err != nil {
		return nil, err
	}

	data, pages, err := p.pdf.Write(img)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("file", doc.FileName).
		Str("kind", string(doc.Kind)).
		Int("pages", pages).
		Int("bytes", len(data)).
		Dur("took", time.Since(start)).
		Msg("Document exported")

	return &Artifact{FileName: doc.FileName, Kind: doc.Kind, PDF: data, Pages: pages}, nil
}

func exportKey(doc documents.Document, opts Options) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("hash document: %w", err)
	}
	h := fnv.New64a()
	_, _ = h.Write(raw)
	return fmt.Sprintf("%x@%d/%s", h.Sum64(), opts.Scale, opts.Settle), nil
}
