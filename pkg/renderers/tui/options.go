package tui

// Option configures the Filler.
type Option func(*Filler)

// WithPromptDriver overrides the prompt driver used by the filler.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithDraftSaving controls whether the action prompt offers a "Save draft"
// choice. Enabled by default.
func WithDraftSaving(enabled bool) Option {
	return func(f *Filler) {
		f.allowDraft = enabled
	}
}

// WithPageSize sets the page size for select and multi-select prompts.
func WithPageSize(size int) Option {
	return func(f *Filler) {
		if size > 0 {
			f.pageSize = size
		}
	}
}
