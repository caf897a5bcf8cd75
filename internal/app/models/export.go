package models

import (
	"time"

	"github.com/google/uuid"
)

// DocumentKind identifies which template produced a document
type DocumentKind string

const (
	KindLeaving   DocumentKind = "leaving"
	KindTransfer  DocumentKind = "transfer"
	KindBonafide  DocumentKind = "bonafide"
	KindMarksheet DocumentKind = "marksheet"
	KindUnknown   DocumentKind = "unknown"
)

// KindForCertificate maps a certificate type to its template kind
func KindForCertificate(t CertificateType) DocumentKind {
	switch t {
	case CertificateLeaving:
		return KindLeaving
	case CertificateTransfer:
		return KindTransfer
	case CertificateBonafide:
		return KindBonafide
	default:
		return KindUnknown
	}
}

// ExportChannel is how an exported PDF left the service
type ExportChannel string

const (
	ChannelDownload ExportChannel = "download"
	ChannelPrint    ExportChannel = "print"
)

// ExportRecord is one row of the export history
type ExportRecord struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	FileName  string        `json:"fileName" db:"file_name"`
	Kind      DocumentKind  `json:"kind" db:"kind"`
	Channel   ExportChannel `json:"channel" db:"channel"`
	ByteSize  int64         `json:"byteSize" db:"byte_size"`
	Pages     int           `json:"pages" db:"pages"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
}
