package ir

// Version constants for the Operation Tree schema and the translator.
const (
	// IRVersion is the semantic version of the Operation Tree dump schema.
	// Recorded snapshots from a different major version are not comparable.
	IRVersion = "1.0.0"

	// TranslatorVersion is the opflow translator version.
	TranslatorVersion = "0.1.0"
)
