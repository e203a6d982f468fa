package entity

import (
	"database/sql"

	"github.com/moltfund/backend/pkg/enum"
)

type KYCStatus string

var (
	KYCNone     = enum.New(KYCStatus("none"))
	KYCPending  = enum.New(KYCStatus("pending"))
	KYCApproved = enum.New(KYCStatus("approved"))
	KYCRejected = enum.New(KYCStatus("rejected"))
)

// KYC review happens outside this service; the status and its timestamps
// are plain data here.
type Creator struct {
	Base

	Email          string `gorm:"uniqueIndex"`
	Name           string
	KYCStatus      KYCStatus
	KYCSubmittedAt sql.NullTime
	KYCReviewedAt  sql.NullTime
}
