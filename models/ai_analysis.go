package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// AIAnalysis is one generated behavioral report. Created only by analysis
// generation, immutable thereafter.
type AIAnalysis struct {
	gorm.Model
	UserID          uint           `gorm:"index;not null" json:"userId"`
	StartDate       time.Time      `json:"startDate"`
	EndDate         time.Time      `json:"endDate"`
	Summary         string         `gorm:"type:text" json:"summary"`
	TriggerPatterns datatypes.JSON `gorm:"type:jsonb" json:"triggerPatterns"`
	Recommendations datatypes.JSON `gorm:"type:jsonb" json:"recommendations"`
	RiskLevel       RiskLevel      `gorm:"size:8;not null" json:"riskLevel"`
	GeneratedAt     time.Time      `gorm:"index;not null" json:"generatedAt"`
}
