package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository     IStudentRepository
	CertificateRepository ICertificateRepository
	CashbookRepository    ICashbookRepository
	ResultRepository      IResultRepository
	AuthRepository        IAuthRepository
	ExportRepository      IExportRepository
}

// NewRepositories initializes all repositories. Without a pool the export history is not kept.
func NewRepositories(api *APIClient, db *pgxpool.Pool) *Repositories {
	var exports IExportRepository = NoopExportRepository{}
	if db != nil {
		exports = NewExportRepository(db)
	}

	return &Repositories{
		StudentRepository:     NewStudentRepository(api),
		CertificateRepository: NewCertificateRepository(api),
		CashbookRepository:    NewCashbookRepository(api),
		ResultRepository:      NewResultRepository(api),
		AuthRepository:        NewAuthRepository(api),
		ExportRepository:      exports,
	}
}
