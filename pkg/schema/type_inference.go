package schema

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/tabula/pkg/columnar"
)

// TypeInferenceEngine proposes a Schema for delimited text that has a name
// row but no type row. Every cell of a column is examined up to the sample
// size, and the narrowest kind that accepts all sampled cells wins.
type TypeInferenceEngine struct {
	logger *zap.Logger

	sampleSize int
	// categoryRatio is the maximum distinct/total ratio for a text column
	// to be proposed as a Category.
	categoryRatio float64
	// minCategoryRows avoids calling every tiny text column a category.
	minCategoryRows int
}

// NewTypeInferenceEngine creates a new type inference engine
func NewTypeInferenceEngine(logger *zap.Logger) *TypeInferenceEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TypeInferenceEngine{
		logger:          logger,
		sampleSize:      1000,
		categoryRatio:   0.5,
		minCategoryRows: 10,
	}
}

// SetSampleSize limits how many rows are examined per column.
func (e *TypeInferenceEngine) SetSampleSize(n int) {
	if n > 0 {
		e.sampleSize = n
	}
}

// Infer proposes a schema for rows under the given column names. Rows that
// are shorter than names simply contribute no cells to the missing columns.
func (e *TypeInferenceEngine) Infer(dataFileName string, names []string, rows [][]string) *Schema {
	if len(rows) > e.sampleSize {
		rows = rows[:e.sampleSize]
	}

	fields := make([]Field, len(names))
	for i, name := range names {
		cells := make([]string, 0, len(rows))
		for _, row := range rows {
			if i < len(row) {
				cells = append(cells, row[i])
			}
		}
		kind := e.InferKind(cells)
		fields[i] = NewField(name, kind)
		e.logger.Debug("inferred column type",
			zap.String("column", name),
			zap.Stringer("type", kind),
			zap.Int("samples", len(cells)))
	}
	return New(dataFileName, fields...)
}

// InferKind returns the narrowest kind that accepts every cell. An empty
// cell rules out Int, Double and Timestamp because those kinds cannot
// decode it. It is skipped when choosing between Boolean, Category and
// String, which all decode it cleanly.
func (e *TypeInferenceEngine) InferKind(cells []string) columnar.Kind {
	isInt, isDouble, isBool, isTime := true, true, true, true
	distinct := make(map[string]struct{})
	filled := 0
	for _, c := range cells {
		if c == "" {
			isInt, isDouble, isTime = false, false, false
			continue
		}
		filled++
		distinct[c] = struct{}{}
		if isInt {
			_, err := strconv.ParseInt(c, 10, 64)
			isInt = err == nil
		}
		if isDouble {
			_, err := strconv.ParseFloat(c, 64)
			isDouble = err == nil
		}
		if isBool {
			isBool = strings.EqualFold(c, "true") || strings.EqualFold(c, "false")
		}
		if isTime {
			_, err := time.Parse(time.RFC3339Nano, c)
			isTime = err == nil
		}
	}

	switch {
	case filled == 0:
		return columnar.KindString
	case isInt:
		return columnar.KindInt
	case isDouble:
		return columnar.KindDouble
	case isBool:
		return columnar.KindBoolean
	case isTime:
		return columnar.KindTimestamp
	case filled >= e.minCategoryRows &&
		float64(len(distinct))/float64(filled) <= e.categoryRatio:
		return columnar.KindCategory
	default:
		return columnar.KindString
	}
}
