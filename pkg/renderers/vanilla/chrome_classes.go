package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "formflow-form"
	ClassHeader  ChromeClass = "formflow-header"
	ClassSection ChromeClass = "formflow-section"
	ClassGrid    ChromeClass = "formflow-grid"
	ClassField   ChromeClass = "formflow-field"
	ClassError   ChromeClass = "formflow-error"
	ClassActions ChromeClass = "formflow-actions"
)
