package physical

import (
	"fmt"
	"strings"

	"github.com/freshet/freshet/freshet"
)

// Record is a single row of a constant collection together with its
// multiplicity. Negative multiplicities represent retractions.
type Record struct {
	Values       []freshet.Value
	Multiplicity int
}

func NewRecord(values []freshet.Value, multiplicity int) Record {
	return Record{
		Values:       values,
		Multiplicity: multiplicity,
	}
}

func (record Record) String() string {
	valueStrings := make([]string, len(record.Values))
	for i, value := range record.Values {
		valueStrings[i] = value.String()
	}
	return fmt.Sprintf("(%s)x%d", strings.Join(valueStrings, ", "), record.Multiplicity)
}
