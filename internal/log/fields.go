package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldDirectory  = "directory"
	FieldFile       = "file"
	FieldKind       = "kind"
	FieldEntityKind = "entity_kind"
	FieldCode       = "code"
	FieldAmount     = "amount"
	FieldTotal      = "total"
	FieldCount      = "count"
	FieldDuration   = "duration_ms"
	FieldPublisher  = "publisher"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"
)

// Components defines standard component names
const (
	ComponentApp         = "app"
	ComponentDefinitions = "definitions"
	ComponentSequence    = "sequence"
	ComponentAggregate   = "aggregate"
	ComponentReport      = "report"
	ComponentPublish     = "publish"
	ComponentLedger      = "ledger"
	ComponentAMQP        = "amqp"
	ComponentSheets      = "sheets"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpDiscover = "discover"
	OpApply    = "apply"
	OpWrite    = "write"
	OpPublish  = "publish"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithFile adds the file being processed
func (f LogFields) WithFile(name string) LogFields {
	f[FieldFile] = name
	return f
}

// WithPosting adds the code, amount and resulting total of one applied record
func (f LogFields) WithPosting(kind, code string, amount, total int64) LogFields {
	f[FieldEntityKind] = kind
	f[FieldCode] = code
	f[FieldAmount] = amount
	f[FieldTotal] = total
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
