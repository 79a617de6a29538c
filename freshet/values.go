package freshet

import (
	"fmt"
	"strings"
	"time"
)

var ZeroValue = Value{}

type Value struct {
	Type     Type
	Int      int
	Float    float64
	Boolean  bool
	Str      string
	Time     time.Time
	Duration time.Duration
	List     []Value
	Struct   []Value
}

func NewNull() Value {
	return Value{
		Type: Type{TypeID: TypeIDNull},
	}
}

func NewInt(value int) Value {
	return Value{
		Type: Type{TypeID: TypeIDInt},
		Int:  value,
	}
}

func NewFloat(value float64) Value {
	return Value{
		Type:  Type{TypeID: TypeIDFloat},
		Float: value,
	}
}

func NewBoolean(value bool) Value {
	return Value{
		Type:    Type{TypeID: TypeIDBoolean},
		Boolean: value,
	}
}

func NewString(value string) Value {
	return Value{
		Type: Type{TypeID: TypeIDString},
		Str:  value,
	}
}

func NewTime(value time.Time) Value {
	return Value{
		Type: Type{TypeID: TypeIDTime},
		Time: value,
	}
}

func NewDuration(value time.Duration) Value {
	return Value{
		Type:     Type{TypeID: TypeIDDuration},
		Duration: value,
	}
}

func NewList(value []Value) Value {
	return Value{
		Type: Type{TypeID: TypeIDList},
		List: value,
	}
}

func (value Value) IsNull() bool {
	return value.Type.TypeID == TypeIDNull
}

func (value Value) Compare(other Value) int {
	// The runtime types may be different for a union.
	// The concrete instance type will be present.
	if value.Type.TypeID != other.Type.TypeID {
		if value.Type.TypeID < other.Type.TypeID {
			return -1
		} else {
			return 1
		}
	}

	switch value.Type.TypeID {
	case TypeIDNull:
		return 0

	case TypeIDInt:
		if value.Int < other.Int {
			return -1
		} else if value.Int > other.Int {
			return 1
		} else {
			return 0
		}

	case TypeIDFloat:
		if value.Float < other.Float {
			return -1
		} else if value.Float > other.Float {
			return 1
		} else {
			return 0
		}

	case TypeIDBoolean:
		if value.Boolean == other.Boolean {
			return 0
		} else if !value.Boolean {
			return -1
		} else {
			return 1
		}

	case TypeIDString:
		return strings.Compare(value.Str, other.Str)

	case TypeIDTime:
		if value.Time.Before(other.Time) {
			return -1
		} else if value.Time.After(other.Time) {
			return 1
		} else {
			return 0
		}

	case TypeIDDuration:
		if value.Duration < other.Duration {
			return -1
		} else if value.Duration > other.Duration {
			return 1
		} else {
			return 0
		}

	case TypeIDList:
		for i := 0; i < len(value.List) && i < len(other.List); i++ {
			if rel := value.List[i].Compare(other.List[i]); rel != 0 {
				return rel
			}
		}
		if len(value.List) < len(other.List) {
			return -1
		} else if len(value.List) > len(other.List) {
			return 1
		}
		return 0

	case TypeIDStruct:
		for i := 0; i < len(value.Struct) && i < len(other.Struct); i++ {
			if rel := value.Struct[i].Compare(other.Struct[i]); rel != 0 {
				return rel
			}
		}
		if len(value.Struct) < len(other.Struct) {
			return -1
		} else if len(value.Struct) > len(other.Struct) {
			return 1
		}
		return 0
	}

	panic(fmt.Sprintf("unexhaustive value type match: %d", value.Type.TypeID))
}

func (value Value) String() string {
	builder := &strings.Builder{}
	value.append(builder)
	return builder.String()
}

func (value Value) append(builder *strings.Builder) {
	switch value.Type.TypeID {
	case TypeIDNull:
		builder.WriteString("<null>")
	case TypeIDInt:
		builder.WriteString(fmt.Sprint(value.Int))
	case TypeIDFloat:
		builder.WriteString(fmt.Sprint(value.Float))
	case TypeIDBoolean:
		builder.WriteString(fmt.Sprint(value.Boolean))
	case TypeIDString:
		builder.WriteString(fmt.Sprintf("'%s'", value.Str))
	case TypeIDTime:
		builder.WriteString(value.Time.Format(time.RFC3339Nano))
	case TypeIDDuration:
		builder.WriteString(value.Duration.String())
	case TypeIDList:
		builder.WriteString("[")
		for i, element := range value.List {
			if i != 0 {
				builder.WriteString(", ")
			}
			element.append(builder)
		}
		builder.WriteString("]")
	case TypeIDStruct:
		builder.WriteString("{")
		for i, field := range value.Struct {
			if i != 0 {
				builder.WriteString(", ")
			}
			field.append(builder)
		}
		builder.WriteString("}")
	default:
		panic(fmt.Sprintf("unexhaustive value type match: %d", value.Type.TypeID))
	}
}
