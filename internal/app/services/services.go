// Package services holds the business operations behind the HTTP controllers.
//
// Services defined in this package:
// - AuthService: staff login and registration against the school API
// - StudentService: admission records, search and typed field edits
// - CertificateService: certificate issue and document rendering
// - ResultService: marksheet validation, grading and rendering
// - CashbookService: ledger entries, period reports and workbook export
// - ExportService: PDF downloads, printing and export history
package services
