package documents

import (
	"strings"
	"unicode"

	"github.com/yigit/schooldesk/internal/app/models"
)

const fallbackName = "student"

// CertificateFileName is "{type}_Certificate_{student name}.pdf"
func CertificateFileName(c models.Certificate) string {
	return string(c.Type) + "_Certificate_" + safeName(c.Student.Name()) + ".pdf"
}

// MarksheetFileName is "{student name}_Marksheet.pdf"
func MarksheetFileName(r models.Result) string {
	return safeName(r.Name) + "_Marksheet.pdf"
}

// safeName keeps the name readable but removes characters that cannot appear in a file name
func safeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallbackName
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '"':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
}
