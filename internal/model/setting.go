package model

// Recognized setting keys.
const (
	SettingSelectedPDFID      = "selected_pdf_id"
	SettingCycleInterval      = "cycle_interval"
	SettingBackgroundColor    = "background_color"
	SettingProgressIndicator  = "progress_indicator"
	SettingAutoCleanupEnabled = "auto_cleanup_enabled"
	SettingAutoCleanupDays    = "auto_cleanup_days"
)

// SelectNewest is the selected_pdf_id value that tracks the newest document.
const SelectNewest = "0"

// Progress indicator values accepted by the display.
const (
	IndicatorCountdown = "countdown"
	IndicatorProgress  = "progress"
	IndicatorNone      = "none"
)

// DefaultSettings returns the value every recognized key starts with.
func DefaultSettings() map[string]string {
	return map[string]string{
		SettingSelectedPDFID:      SelectNewest,
		SettingCycleInterval:      "10",
		SettingBackgroundColor:    "#ffffff",
		SettingProgressIndicator:  IndicatorProgress,
		SettingAutoCleanupEnabled: "true",
		SettingAutoCleanupDays:    "180",
	}
}

// Settings is a typed snapshot of the settings table.
type Settings struct {
	SelectedPDFID      int64  `json:"selected_pdf_id"`
	CycleInterval      int    `json:"cycle_interval"`
	BackgroundColor    string `json:"background_color"`
	ProgressIndicator  string `json:"progress_indicator"`
	AutoCleanupEnabled bool   `json:"auto_cleanup_enabled"`
	AutoCleanupDays    int    `json:"auto_cleanup_days"`
}

// Display is what the public display needs to render the active document.
type Display struct {
	StoredName        string `json:"stored_name"`
	OriginalName      string `json:"original_name"`
	URL               string `json:"url"`
	CycleInterval     int    `json:"cycle_interval"`
	BackgroundColor   string `json:"background_color"`
	ProgressIndicator string `json:"progress_indicator"`
}
