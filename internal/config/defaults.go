package config

// DefaultConfig returns the default chart configuration.
func DefaultConfig() *GanttConfig {
	return &GanttConfig{
		HeaderHeight: 50,
		ColumnWidth:  0,
		Step:         24,
		Bar: BarConfig{
			Height:       20,
			CornerRadius: 3,
		},
		Arrow: ArrowConfig{
			Curve: 5,
		},
		Padding:        18,
		ViewMode:       "Day",
		DateFormat:     "2006-01-02",
		LeftWidth:      0,
		Inline:         true,
		Projection:     false,
		EditMode:       true,
		FontSize:       12,
		AvailableWidth: 1200,
		Language:       "en",
	}
}
