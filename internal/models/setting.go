package models

// Setting is a process-wide key/value configuration row.
type Setting struct {
	Key   string `gorm:"primarykey;size:64" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

// Fallback policy for dates lacking an official schedule entry.
const (
	SettingFallbackMode    = "schedule_fallback_mode"
	SettingFallbackMinutes = "schedule_fallback_minutes"

	FallbackModeZero     = "zero"
	FallbackModeContract = "contract"

	DefaultFallbackMinutes = 480
)
