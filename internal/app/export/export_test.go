package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/yigit/schooldesk/internal/app/documents"
	"github.com/yigit/schooldesk/internal/app/ledger"
	"github.com/yigit/schooldesk/internal/app/models"
	"github.com/yigit/schooldesk/internal/pkg/apperrors"
	"github.com/yigit/schooldesk/internal/pkg/filestorage"
)

func testRenderer() *documents.Renderer {
	return documents.NewRenderer(documents.School{Name: "Test School", Address: "Main Road"}, func() time.Time {
		return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	})
}

func marksheet() documents.Document {
	return testRenderer().Marksheet(models.Result{
		Name:      "Rahul",
		ClassName: "7th",
		RollNo:    "12",
		Subjects: []models.Subject{
			{SubjectName: "Maths", MarksObtained: 80, MaxMarks: 100},
			{SubjectName: "Art", MarksObtained: 45, MaxMarks: 50},
		},
	})
}

func bonafide() documents.Document {
	return testRenderer().Certificate(models.Certificate{
		Student: models.StudentRef{ID: "s1", Student: &models.Student{Name: "Asha Patel", ParentName: "Ramesh", ClassName: "5th"}},
		Type:    models.CertificateBonafide,
	})
}

func layout(t *testing.T, doc documents.Document, scale int) Frame {
	t.Helper()
	fs, err := loadFonts()
	if err != nil {
		t.Fatalf("load fonts: %v", err)
	}
	faces := newFaceCache(fs)
	defer faces.Close()
	f, err := Layout(doc, scale, faces)
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	return f
}

func texts(f Frame) map[string]Op {
	out := make(map[string]Op)
	for _, op := range f.Ops {
		if op.Kind == OpText {
			if _, seen := out[op.Text]; !seen {
				out[op.Text] = op
			}
		}
	}
	return out
}

func TestLayout_EmptyDocument(t *testing.T) {
	fs, _ := loadFonts()
	faces := newFaceCache(fs)
	defer faces.Close()

	if _, err := Layout(documents.Document{Width: 794}, 1, faces); !errors.Is(err, apperrors.ErrSurfaceMissing) {
		t.Errorf("expected ErrSurfaceMissing, got %v", err)
	}
}

func TestLayout_Geometry(t *testing.T) {
	f := layout(t, marksheet(), 1)
	if f.Width != 794 || f.Height < 1123 {
		t.Errorf("frame = %dx%d", f.Width, f.Height)
	}

	f2 := layout(t, marksheet(), 2)
	if f2.Width != 1588 || f2.Height != f.Height*2 {
		t.Errorf("2x frame = %dx%d, 1x = %dx%d", f2.Width, f2.Height, f.Width, f.Height)
	}

	words := texts(f)
	for _, w := range []string{"Result", "Marksheet", "Maths", "125", "150", "83.33%"} {
		if _, ok := words[w]; !ok {
			t.Errorf("missing text op %q", w)
		}
	}
	if !words["Total"].Bold {
		t.Error("total row should be bold")
	}
	for _, op := range f.Ops {
		if op.Kind == OpText && (op.X < marksheetInset || op.X >= f.Width) {
			t.Errorf("text %q at x=%d outside the content box", op.Text, op.X)
		}
	}
}

const marksheetInset = documents.MarksheetBorder + documents.MarksheetPad

func TestLayout_WrapsLongParagraphs(t *testing.T) {
	f := layout(t, bonafide(), 1)
	rows := make(map[int]bool)
	for _, op := range f.Ops {
		if op.Kind == OpText && op.Size == 18 {
			rows[op.Y] = true
		}
	}
	if len(rows) < 4 {
		t.Errorf("narrative should wrap onto several lines, got %d", len(rows))
	}

	// "Asha Patel," keeps the comma glued to the bold name
	var name, comma Op
	for _, op := range f.Ops {
		if op.Text == "Patel" && op.Bold {
			name = op
		}
		if op.Text == "," && !op.Bold && name.Text != "" && comma.Text == "" {
			comma = op
		}
	}
	if comma.Text == "" || comma.Y != name.Y || comma.X <= name.X {
		t.Errorf("comma %+v should follow the name %+v on the same line", comma, name)
	}
}

func TestCapture_DrawsDocument(t *testing.T) {
	img, err := NewRasterizer().Capture(context.Background(), marksheet(), 1, 0)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 794 || b.Dy() < 1123 {
		t.Fatalf("bounds = %v", b)
	}

	if !isDark(img.At(0, 0)) {
		t.Error("page border should be drawn")
	}
	if isDark(img.At(b.Dx()/2, b.Dy()-100)) {
		t.Error("empty page area should stay white")
	}

	ink := 0
	for y := 0; y < 200; y++ {
		for x := 30; x < 760; x++ {
			if isDark(img.At(x, y)) {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("header text was not drawn")
	}
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r < 0x8000 && g < 0x8000 && b < 0x8000
}

func TestCapture_CancelledWhileSettling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRasterizer().Capture(ctx, marksheet(), 1, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCapture_MissingSurface(t *testing.T) {
	_, err := NewRasterizer().Capture(context.Background(), documents.Document{}, 1, 0)
	if !errors.Is(err, apperrors.ErrSurfaceMissing) {
		t.Errorf("expected ErrSurfaceMissing, got %v", err)
	}
}

func TestPDFWriter_SegmentHeight(t *testing.T) {
	w := NewPDFWriter(0)
	if got := w.SegmentHeight(794); got != 1122 {
		t.Errorf("SegmentHeight(794) = %d, want 1122", got)
	}
	if got := w.SegmentHeight(0); got != 0 {
		t.Errorf("SegmentHeight(0) = %d, want 0", got)
	}
}

func TestPDFWriter_Geometry(t *testing.T) {
	if w, h := NewPDFWriter(0).Geometry(); w != A4WidthMM || h != A4HeightMM {
		t.Errorf("no margin: geometry = %vx%v, want full A4", w, h)
	}
	if w, _ := NewPDFWriter(10).Geometry(); w != A4WidthMM-20 {
		t.Errorf("10mm margin: width = %v", w)
	}
}

func TestPDFWriter_SplitsTallImages(t *testing.T) {
	w := NewPDFWriter(10)
	segment := w.SegmentHeight(200)

	tests := []struct {
		name   string
		height int
		pages  int
	}{
		{"single page", segment / 2, 1},
		{"exactly one page", segment, 1},
		{"spills", segment + 1, 2},
		{"three pages", segment*2 + 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := imaging.New(200, tt.height, color.White)
			data, pages, err := w.Write(img)
			if err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if pages != tt.pages {
				t.Errorf("pages = %d, want %d", pages, tt.pages)
			}
			if !bytes.HasPrefix(data, []byte("%PDF")) {
				t.Error("output is not a PDF")
			}
		})
	}
}

func TestPDFWriter_EmptyImage(t *testing.T) {
	if _, _, err := NewPDFWriter(10).Write(image.NewNRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, apperrors.ErrSurfaceMissing) {
		t.Errorf("expected ErrSurfaceMissing, got %v", err)
	}
}

func newTestPipeline() *Pipeline {
	return NewPipeline(NewRasterizer(), NewPDFWriter(10))
}

func TestPipeline_Export(t *testing.T) {
	art, err := newTestPipeline().Export(context.Background(), bonafide(), Options{Scale: 1})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if art.FileName != "Bonafide_Certificate_Asha Patel.pdf" || art.Kind != models.KindBonafide {
		t.Errorf("artifact = %s %s", art.FileName, art.Kind)
	}
	if art.Pages != 1 || !bytes.HasPrefix(art.PDF, []byte("%PDF")) {
		t.Errorf("pages = %d", art.Pages)
	}
}

func TestPipeline_ConcurrentExports(t *testing.T) {
	p := newTestPipeline()
	doc := marksheet()

	var wg sync.WaitGroup
	errs := make([]error, 3)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = p.Export(context.Background(), doc, Options{Scale: 1, Settle: 20 * time.Millisecond})
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("export %d: %v", i, err)
		}
	}
}

func TestPipeline_CancelledCallerDoesNotFailOthers(t *testing.T) {
	p := newTestPipeline()
	doc := bonafide()
	opts := Options{Scale: 1, Settle: 300 * time.Millisecond}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := p.Export(firstCtx, doc, opts)
		firstErr <- err
	}()

	time.Sleep(20 * time.Millisecond)
	secondDone := make(chan struct{})
	var art *Artifact
	var secondErr error
	go func() {
		defer close(secondDone)
		art, secondErr = p.Export(context.Background(), doc, opts)
	}()

	time.Sleep(50 * time.Millisecond)
	cancelFirst()

	select {
	case err := <-firstErr:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("first caller error = %v, want context.Canceled", err)
		}
	case <-time.After(200 * time.Millisecond):
		t.Error("first caller did not return after its context was cancelled")
	}

	<-secondDone
	if secondErr != nil {
		t.Fatalf("second caller error = %v", secondErr)
	}
	if art == nil || art.Pages != 1 {
		t.Errorf("artifact = %+v", art)
	}

	if _, err := p.Export(context.Background(), doc, opts); err != nil {
		t.Errorf("export after cancellation: %v", err)
	}
}

func TestExportKey(t *testing.T) {
	a, _ := exportKey(marksheet(), Options{Scale: 2})
	b, _ := exportKey(marksheet(), Options{Scale: 2})
	c, _ := exportKey(marksheet(), Options{Scale: 3})
	d, _ := exportKey(bonafide(), Options{Scale: 2})
	download, _ := exportKey(marksheet(), Options{Scale: 2, Settle: DefaultDownloadSettle})
	printKey, _ := exportKey(marksheet(), Options{Scale: 2, Settle: DefaultPrintSettle})
	if a != b {
		t.Error("same document should share a key")
	}
	if a == c || a == d {
		t.Error("scale and content must change the key")
	}
	if download == printKey {
		t.Error("download and print captures must not share a key")
	}
}

type blockingPrinter struct {
	started chan struct{}
	release chan struct{}
	err     error
	jobs    []PrintJob
	mu      sync.Mutex
}

func (p *blockingPrinter) Name() string { return "test" }

func (p *blockingPrinter) Print(ctx context.Context, job PrintJob) error {
	if p.started != nil {
		close(p.started)
	}
	if p.release != nil {
		<-p.release
	}
	p.mu.Lock()
	p.jobs = append(p.jobs, job)
	p.mu.Unlock()
	return p.err
}

func TestPrintSession_RejectsDuplicateTrigger(t *testing.T) {
	printer := &blockingPrinter{started: make(chan struct{}), release: make(chan struct{})}
	s := NewPrintSession(newTestPipeline(), printer)

	done := make(chan error, 1)
	go func() {
		_, err := s.Print(context.Background(), bonafide(), Options{Scale: 1})
		done <- err
	}()
	<-printer.started

	if doc, ok := s.Selected(); !ok || doc.Kind != models.KindBonafide {
		t.Error("document should be selected while printing")
	}
	if _, err := s.Print(context.Background(), marksheet(), Options{Scale: 1}); !errors.Is(err, apperrors.ErrExportInProgress) {
		t.Errorf("expected ErrExportInProgress, got %v", err)
	}

	close(printer.release)
	if err := <-done; err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection should be cleared after printing")
	}
	if len(printer.jobs) != 1 || printer.jobs[0].FileName != "Bonafide_Certificate_Asha Patel.pdf" {
		t.Errorf("jobs = %+v", printer.jobs)
	}
}

func TestPrintSession_ClearsSelectionOnFailure(t *testing.T) {
	printer := &blockingPrinter{err: apperrors.ErrPrintFailed}
	s := NewPrintSession(newTestPipeline(), printer)

	if _, err := s.Print(context.Background(), marksheet(), Options{Scale: 1}); !errors.Is(err, apperrors.ErrPrintFailed) {
		t.Errorf("expected ErrPrintFailed, got %v", err)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection should be cleared after a failed job")
	}

	printer.err = nil
	job, err := s.Print(context.Background(), marksheet(), Options{Scale: 1})
	if err != nil || job == nil {
		t.Fatalf("session should be reusable, got %v", err)
	}
}

func TestPrintSession_ExportFailure(t *testing.T) {
	s := NewPrintSession(newTestPipeline(), &blockingPrinter{})
	if _, err := s.Print(context.Background(), documents.Document{}, Options{Scale: 1}); !errors.Is(err, apperrors.ErrSurfaceMissing) {
		t.Errorf("expected ErrSurfaceMissing, got %v", err)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection should be cleared")
	}
}

func TestSpoolPrinter(t *testing.T) {
	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir)
	if err != nil {
		t.Fatal(err)
	}

	p := NewSpoolPrinter(storage, "spool")
	if err := p.Print(context.Background(), PrintJob{FileName: "a.pdf", PDF: []byte("%PDF-1.3")}); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "spool", "*.pdf"))
	if len(matches) != 1 {
		t.Fatalf("spooled files = %v", matches)
	}
	data, _ := os.ReadFile(matches[0])
	if string(data) != "%PDF-1.3" {
		t.Errorf("content = %q", data)
	}
}

func TestCommandPrinter(t *testing.T) {
	job := PrintJob{FileName: "a.pdf", PDF: []byte("%PDF")}

	if err := NewCommandPrinter([]string{"cat"}).Print(context.Background(), job); err != nil {
		t.Errorf("cat: %v", err)
	}
	if err := NewCommandPrinter([]string{"false"}).Print(context.Background(), job); !errors.Is(err, apperrors.ErrPrintFailed) {
		t.Errorf("false: expected ErrPrintFailed, got %v", err)
	}
	if err := NewCommandPrinter(nil).Print(context.Background(), job); !errors.Is(err, apperrors.ErrPrintFailed) {
		t.Errorf("empty: expected ErrPrintFailed, got %v", err)
	}
	if got := NewCommandPrinter([]string{"/usr/bin/lp", "-d", "office"}).Name(); got != "command:lp" {
		t.Errorf("Name() = %q", got)
	}
}

func TestLedgerWorkbook(t *testing.T) {
	entries := []models.LedgerEntry{
		{Type: models.EntryIncome, Description: "Fees", Amount: decimal.RequireFromString("1500.50"), Date: models.NewDate(2024, time.March, 2)},
		{Type: models.EntryExpense, Description: "Chalk", Amount: decimal.NewFromInt(200), Date: models.NewDate(2024, time.March, 5)},
		{Type: models.EntryIncome, Description: "Donation", Amount: decimal.NewFromInt(100), Date: models.NewDate(2024, time.April, 1)},
	}
	report := ledger.Filter(entries, models.ReportQuery{Year: 2024, Month: 3, ReportType: models.ReportMonthly})

	buf, name, err := LedgerWorkbook(report)
	if err != nil {
		t.Fatalf("LedgerWorkbook() error = %v", err)
	}
	if name != "Cashbook_2024-03.xlsx" {
		t.Errorf("name = %q", name)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 3 || sheets[0] != SheetReport {
		t.Errorf("sheets = %v", sheets)
	}

	rows, err := f.GetRows(SheetReport)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) < 3 || rows[0][0] != "Date" || rows[1][2] != "Fees" || rows[2][2] != "Chalk" {
		t.Fatalf("rows = %v", rows)
	}
	balance, _ := f.GetCellValue(SheetReport, "C7")
	if balance != "Balance" {
		t.Errorf("C7 = %q, want Balance", balance)
	}

	incomes, _ := f.GetRows(SheetIncomes)
	if len(incomes) != 2 {
		t.Errorf("income rows = %v", incomes)
	}
}
