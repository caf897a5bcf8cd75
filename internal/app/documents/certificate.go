package documents

import (
	"strconv"

	"github.com/yigit/schooldesk/internal/app/models"
)

const defaultPurpose = "submission to concerned authorities"

// Certificate renders an issued certificate. Types without a template render a placeholder page.
func (r *Renderer) Certificate(c models.Certificate) Document {
	kind := models.KindForCertificate(c.Type)
	doc := page(kind, string(c.Type)+" Certificate", CertificateFileName(c))

	switch kind {
	case models.KindLeaving, models.KindTransfer:
		doc.Blocks = r.leavingBlocks(c)
	case models.KindBonafide:
		doc.Blocks = r.bonafideBlocks(c)
	default:
		doc.Title = "Certificate"
		doc.Blocks = []Block{{Kind: BlockPlaceholder, Align: AlignLeft, Spans: []Span{plain(PlaceholderText)}}}
	}
	return doc
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func certificateTitle(c models.Certificate) Block {
	b := heading(2, string(c.Type)+" Certificate")
	b.Underline = true
	b.MarginEnd = 30
	return b
}

func (r *Renderer) leavingBlocks(c models.Certificate) []Block {
	s := c.StudentOrEmpty()

	rows := []KeyValue{
		{Key: "Name:", Value: orDefault(s.Name, notAvailable)},
		{Key: "Date of Birth:", Value: s.DOB.Display(notAvailable)},
		{Key: "Class / Grade:", Value: orDefault(s.ClassName, notAvailable)},
		{Key: "Parent Name:", Value: orDefault(s.ParentName, notAvailable)},
		{Key: "Date of Admission:", Value: c.AdmissionDate.Display(notAvailable)},
		{Key: "Date of Leaving:", Value: c.LeavingDate.Display(notAvailable)},
	}
	if c.ReasonForLeaving != "" {
		rows = append(rows, KeyValue{Key: "Reason:", Value: c.ReasonForLeaving})
	}
	if c.Conduct != "" {
		rows = append(rows, KeyValue{Key: "Remarks:", Value: c.Conduct})
	}

	blocks := r.header()
	blocks = append(blocks,
		certificateTitle(c),
		paragraph(plain("This is to certify that the following student was enrolled at our school:")),
		Block{Kind: BlockKeyValue, FontSize: 18, Rows: rows, MarginEnd: 40},
		paragraph(plain("Date of Issue: "+models.DateOf(c.IssueDate).Display(notAvailable))),
		spacer(60),
		paragraph(plain("Signature: ___________________")),
	)
	return blocks
}

func (r *Renderer) bonafideBlocks(c models.Certificate) []Block {
	s := c.StudentOrEmpty()
	year := strconv.Itoa(r.now().Year())

	narrative := func(spans ...Span) Block {
		b := paragraph(spans...)
		b.FontSize = 18
		b.MarginTop = 20
		return b
	}

	intro := narrative(
		plain("This is to certify that "), bold(orDefault(s.Name, blank)),
		plain(", son/daughter of "), bold(orDefault(s.ParentName, blank)),
		plain(", is a bonafide student of our school. He/She is studying in class "),
		bold(orDefault(s.ClassName, blank)),
		plain(" during the academic year "), bold(year), plain("."),
	)
	intro.MarginTop = 0

	blocks := r.header()
	blocks = append(blocks,
		certificateTitle(c),
		intro,
		narrative(plain("His/Her date of birth as per school records is "), bold(s.DOB.Display(notAvailable)), plain(".")),
		narrative(
			plain("This certificate is issued on request for the purpose of "),
			bold(orDefault(c.ReasonForLeaving, defaultPurpose)), plain("."),
		),
		spacer(80),
		Block{Kind: BlockSignature, Signature: &Signature{
			Left: [][]Span{
				{plain("_________________________")},
				{bold("Principal / Headmaster")},
			},
			Right: [][]Span{
				{plain("Date: " + models.DateOf(c.IssueDate).Display(notAvailable))},
			},
		}},
	)
	return blocks
}
