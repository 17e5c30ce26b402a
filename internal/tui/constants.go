package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin  = 6 // Standard horizontal margin (m.width - 6)
	ModalHeightMargin = 3 // Standard vertical margin (m.height - 3)

	// Form modal sizing
	FormModalWidth    = 56 // Fixed width for account/tab/login forms
	ConfirmModalWidth = 50 // Fixed width for confirmation dialogs

	// Content Area Offsets
	ContentOffsetStandard = 7 // m.height - 7 for standard viewports
	SidebarWidthPercent   = 40

	// Footer truncation
	StatusMessageMaxLength = 100

	// Status toast lifetime in seconds
	StatusClearSeconds = 4

	// Quick jump result cap
	QuickJumpMaxResults = 12

	// History modal page size
	HistoryPageLimit = 100
)
