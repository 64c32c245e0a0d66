package config

// BarConfig controls the geometry of task bars.
type BarConfig struct {
	Height       float64 `json:"height" yaml:"height"`               // Bar height in pixels
	CornerRadius float64 `json:"corner_radius" yaml:"corner_radius"` // Rounded corner radius for rendered bars
}

// ArrowConfig controls dependency connector routing.
type ArrowConfig struct {
	Curve float64 `json:"curve" yaml:"curve"` // Arc radius used at connector corners
}

// GanttConfig is the top-level configuration.
type GanttConfig struct {
	HeaderHeight    float64     `json:"header_height" yaml:"header_height"`         // Height of the date header in pixels
	ColumnWidth     float64     `json:"column_width" yaml:"column_width"`           // Overrides the per-mode minimum column width when > 0
	Step            float64     `json:"step" yaml:"step"`                           // Informational; the active step always comes from the view mode
	Bar             BarConfig   `json:"bar" yaml:"bar"`
	Arrow           ArrowConfig `json:"arrow" yaml:"arrow"`
	Padding         float64     `json:"padding" yaml:"padding"`                     // Vertical gap between rows
	ViewMode        string      `json:"view_mode" yaml:"view_mode"`                 // "Quarter Day", "Half Day", "Day", "Week" or "Month"
	DateFormat      string      `json:"date_format" yaml:"date_format"`             // Go time layout used in popups
	CustomPopupHTML string      `json:"custom_popup_html" yaml:"custom_popup_html"` // text/template rendered with the task
	LeftWidth       float64     `json:"left_width" yaml:"left_width"`               // Left margin before the first column
	Inline          bool        `json:"inline" yaml:"inline"`                       // Compact row packing instead of one row per task
	Projection      bool        `json:"projection" yaml:"projection"`               // Synthesize lateness bars for late projects
	EditMode        bool        `json:"edit_mode" yaml:"edit_mode"`                 // Enable drag, resize and progress bindings
	FontSize        float64     `json:"font_size" yaml:"font_size"`                 // Used to estimate label widths
	AvailableWidth  float64     `json:"available_width" yaml:"available_width"`     // Width the columns are spread over
	Language        string      `json:"language" yaml:"language"`
}
