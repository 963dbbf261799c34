package report

import (
	"time"
)

// Raisons de signalement acceptées.
const (
	ReasonInappropriate = "inappropriate"
	ReasonSpam          = "spam"
	ReasonCopyright     = "copyright"
	ReasonOther         = "other"
)

type Report struct {
	ID          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	ReporterID  string `gorm:"index;uniqueIndex:idx_reports_reporter_post"`
	PostID      string `gorm:"index;uniqueIndex:idx_reports_reporter_post"`
	Reason      string
	Description string
}

func (Report) TableName() string {
	return "reports"
}

func ValidReason(r string) bool {
	switch r {
	case ReasonInappropriate, ReasonSpam, ReasonCopyright, ReasonOther:
		return true
	}
	return false
}
