package errz

// Code is a stable identifier for an error kind. Codes are in the E4xxx
// range and never change meaning once published.
type Code string

const (
	E4001 Code = "E4001" // Invalid configuration
	E4002 Code = "E4002" // Type mismatch
	E4003 Code = "E4003" // Undeclared slot
	E4004 Code = "E4004" // No policy
	E4005 Code = "E4005" // Missing clone capability
	E4006 Code = "E4006" // Reserved slot
)

var kindCodes = map[Kind]Code{
	InvalidConfiguration:   E4001,
	TypeMismatch:           E4002,
	UndeclaredSlot:         E4003,
	NoPolicy:               E4004,
	MissingCloneCapability: E4005,
	ReservedSlot:           E4006,
}

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[Code]string{
	E4001: "the configuration is not a well-formed record",
	E4002: "a policy was applied to a value of the wrong kind",
	E4003: "a slot was written before being declared with slot()",
	E4004: "no per-slot, per-type or default policy applies to a slot",
	E4005: "a value has no clone operation",
	E4006: "the name is reserved for an object operation",
}

// Description returns the short description of an error code.
func (c Code) Description() string {
	return codeDescriptions[c]
}
