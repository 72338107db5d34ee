package config

// Application identity
const (
	// AppID identifies the structured settings schema and the Fyne application
	AppID = "org.md-wr.com"

	// AppNamespace is the directory under the platform config root holding flat-file settings
	AppNamespace = "md-wr"
)

// Settings keys
const (
	KeyNavigationPanelVisible = "navigation-panel-visible"
	KeyPanedPosition          = "paned-position"
	KeyUserNotes              = "user-notes"
	KeyHomeURL                = "home-url"
	KeyLanguage               = "app-language"
)

// FileExtension is appended to the key to form the fallback file name
const FileExtension = ".txt"

// ValueType is the stored type of a settings key, using schema type codes
type ValueType string

const (
	TypeBool   ValueType = "b"
	TypeInt    ValueType = "i"
	TypeString ValueType = "s"
)

// String returns a readable type name
func (t ValueType) String() string {
	switch t {
	case TypeBool:
		return "boolean"
	case TypeInt:
		return "integer"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Valid reports whether t is a known type code
func (t ValueType) Valid() bool {
	return t == TypeBool || t == TypeInt || t == TypeString
}

// TypeOf returns the value type for a key. Only the navigation keys are typed,
// everything else is an opaque string.
func TypeOf(key string) ValueType {
	switch key {
	case KeyNavigationPanelVisible:
		return TypeBool
	case KeyPanedPosition:
		return TypeInt
	default:
		return TypeString
	}
}
