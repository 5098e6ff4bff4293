package classfile

// Package classfile decodes the compiled JVM class format (constant pool,
// access flags, member descriptors, a fixed set of attributes) into the
// normalized internal/class.Class record, built directly on
// encoding/binary and bytes.Reader (DESIGN.md records the stdlib
// justification).

// ErrorKind is the closed sum of class-loader failures.
type ErrorKind int

const (
	ErrParse ErrorKind = iota
	ErrUnknownClassName
	ErrUnknownClassPath
	ErrNoModuleAttribute
	ErrPrivate
)

// Error is the class-loader error type. It never carries a message string
// in the common case; Kind alone is enough to render a diagnostic.
type Error struct {
	Kind ErrorKind
	// Detail is only set for genuinely unexpected malformed input (a
	// truncated stream, a bad magic number); it exists for logging, not
	// for program logic to switch on.
	Detail string
}

func (e Error) Error() string {
	switch e.Kind {
	case ErrParse:
		msg := "class file parse error"
		if e.Detail != "" {
			msg += ": " + e.Detail
		}
		return msg
	case ErrUnknownClassName:
		return "unknown class name"
	case ErrUnknownClassPath:
		return "unknown class path"
	case ErrNoModuleAttribute:
		return "no module attribute"
	case ErrPrivate:
		return "class is private"
	}
	return "classfile error"
}
