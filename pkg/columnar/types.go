package columnar

import "time"

// Kind enumerates the closed set of value kinds a column may hold.
// The zero value is KindString, which is also the fallback for unknown
// type tokens.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindDouble
	KindBoolean
	KindCategory
	KindTimestamp
)

var kindDescriptions = [...]string{
	KindString:    "String",
	KindInt:       "Int",
	KindDouble:    "Double",
	KindBoolean:   "Boolean",
	KindCategory:  "Category",
	KindTimestamp: "Timestamp",
}

var kindsByDescription = func() map[string]Kind {
	m := make(map[string]Kind, len(kindDescriptions))
	for k, desc := range kindDescriptions {
		m[desc] = Kind(k)
	}
	return m
}()

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindString, KindInt, KindDouble, KindBoolean, KindCategory, KindTimestamp}
}

// ByDescription resolves a type token such as "Int" or "Timestamp".
// Tokens are case-sensitive; anything unrecognized resolves to KindString.
func ByDescription(token string) Kind {
	if k, ok := kindsByDescription[token]; ok {
		return k
	}
	return KindString
}

// IsKnownDescription reports whether token names one of the closed set of kinds.
func IsKnownDescription(token string) bool {
	_, ok := kindsByDescription[token]
	return ok
}

// Description returns the canonical token for k.
func (k Kind) Description() string {
	if int(k) < len(kindDescriptions) {
		return kindDescriptions[k]
	}
	return kindDescriptions[KindString]
}

func (k Kind) String() string { return k.Description() }

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Description()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails:
// unknown tokens decode as KindString.
func (k *Kind) UnmarshalText(text []byte) error {
	*k = ByDescription(string(text))
	return nil
}

// ColumnType binds a Kind to the native Go type T of its values.
// The set of values is closed; use the package-level variables.
type ColumnType[T any] struct {
	kind Kind
}

// Kind returns the kind tagged by t.
func (t ColumnType[T]) Kind() Kind { return t.kind }

// Description returns the canonical token for t.
func (t ColumnType[T]) Description() string { return t.kind.Description() }

func (t ColumnType[T]) String() string { return t.kind.Description() }

var (
	Int       = ColumnType[int64]{kind: KindInt}
	Double    = ColumnType[float64]{kind: KindDouble}
	Boolean   = ColumnType[bool]{kind: KindBoolean}
	String    = ColumnType[string]{kind: KindString}
	Category  = ColumnType[string]{kind: KindCategory}
	Timestamp = ColumnType[time.Time]{kind: KindTimestamp}
)
