package tui

// UI Text Constants
const (
	// Footer
	TextFooterInput    = "Type a URL and press Enter | Ctrl+C to quit"
	TextFooterChecking = "Waiting for the model... | Ctrl+C to quit"
	TextFooterDone     = "Press any key to check another URL | 'q' or Ctrl+C to quit"
)
