// Package sqlpatch turns tri-state patches into PostgreSQL UPDATE statements.
//
// Absent columns are left out of the SET list, Null columns are set to NULL
// and Present columns are bound as parameters.
package sqlpatch

import (
	"encoding/json"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/tidwall/gjson"

	"github.com/tansive/tristate/internal/mergepatch"
	"github.com/tansive/tristate/pkg/tristate"
)

// Statement is a parameterized SQL statement.
type Statement struct {
	SQL  string
	Args []any
}

// Column is one entry of a patch: a column name and its tri-state value.
type Column struct {
	Name  string
	Value tristate.Field
}

// Columns extracts the db tagged tri-state fields of patch, a struct or a
// pointer to one, in declaration order. Fields tagged db:"-" or without a
// db tag are skipped.
func Columns(patch any) ([]Column, error) {
	rv := reflect.ValueOf(patch)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, ErrInvalidPatch
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, ErrInvalidPatch
	}
	rt := rv.Type()
	var cols []Column
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("db"), ",")
		if name == "" || name == "-" {
			continue
		}
		f, ok := rv.Field(i).Interface().(tristate.Field)
		if !ok {
			return nil, ErrInvalidPatch.At(sf.Name)
		}
		cols = append(cols, Column{Name: name, Value: f})
	}
	return cols, nil
}

// FromJSON reads the top-level members of a JSON merge patch as columns.
// Members that are objects or arrays are bound as their JSON text, suitable
// for json and jsonb columns. Columns come out sorted by name.
func FromJSON(doc []byte) ([]Column, error) {
	members := mergepatch.Members(doc, "")
	m, ok := members.Get()
	if !ok || !gjson.ParseBytes(doc).IsObject() {
		return nil, mergepatch.ErrInvalidPatch
	}
	cols := make([]Column, 0, len(m))
	for name, v := range m {
		cols = append(cols, Column{Name: name, Value: tristate.Map(v, columnValue)})
	}
	slices.SortFunc(cols, func(a, b Column) int {
		return strings.Compare(a.Name, b.Name)
	})
	return cols, nil
}

func columnValue(r gjson.Result) any {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.True, gjson.False:
		return r.Bool()
	case gjson.Number:
		if i, err := json.Number(r.Raw).Int64(); err == nil {
			return i
		}
		return r.Num
	default:
		return r.Raw
	}
}

// Cond is an equality condition of the WHERE clause.
type Cond struct {
	Column string
	Value  any
}

// Options restricts what Build accepts.
type Options struct {
	// Allowed lists the columns a patch may touch. Empty allows all.
	Allowed []string
}

// Build renders an UPDATE of table that applies cols to the rows matching
// every condition in where.
func Build(table string, cols []Column, where []Cond, opts ...Options) (Statement, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}
	if len(where) == 0 {
		return Statement{}, ErrNoCondition
	}
	qtable, err := quoteQualified(table)
	if err != nil {
		return Statement{}, err
	}

	var (
		sets []string
		args []any
	)
	for _, c := range cols {
		if c.Value.IsAbsent() {
			continue
		}
		if err := checkName(c.Name); err != nil {
			return Statement{}, err
		}
		if len(opt.Allowed) > 0 && !slices.Contains(opt.Allowed, c.Name) {
			return Statement{}, ErrColumnDenied.At(c.Name)
		}
		if c.Value.IsNull() {
			sets = append(sets, pq.QuoteIdentifier(c.Name)+" = NULL")
			continue
		}
		args = append(args, c.Value.Any())
		sets = append(sets, pq.QuoteIdentifier(c.Name)+" = $"+strconv.Itoa(len(args)))
	}
	if len(sets) == 0 {
		return Statement{}, ErrEmptyPatch
	}

	conds := make([]string, 0, len(where))
	for _, w := range where {
		if err := checkName(w.Column); err != nil {
			return Statement{}, err
		}
		if w.Value == nil {
			conds = append(conds, pq.QuoteIdentifier(w.Column)+" IS NULL")
			continue
		}
		args = append(args, w.Value)
		conds = append(conds, pq.QuoteIdentifier(w.Column)+" = $"+strconv.Itoa(len(args)))
	}

	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(qtable)
	b.WriteString(" SET ")
	b.WriteString(strings.Join(sets, ", "))
	b.WriteString(" WHERE ")
	b.WriteString(strings.Join(conds, " AND "))
	return Statement{SQL: b.String(), Args: args}, nil
}

// BuildStruct is Build over the columns of a tagged struct.
func BuildStruct(table string, patch any, where []Cond, opts ...Options) (Statement, error) {
	cols, err := Columns(patch)
	if err != nil {
		return Statement{}, err
	}
	return Build(table, cols, where, opts...)
}

// ParseCond parses a column=value condition. The value is taken as a JSON
// literal when it parses as one and as a plain string otherwise, so id=42
// binds a number, name=bob a string and owner=null tests for NULL.
func ParseCond(s string) (Cond, error) {
	col, raw, ok := strings.Cut(s, "=")
	col = strings.TrimSpace(col)
	if !ok || col == "" {
		return Cond{}, ErrInvalidName.At(s)
	}
	raw = strings.TrimSpace(raw)
	if gjson.Valid(raw) {
		r := gjson.Parse(raw)
		if r.Type == gjson.Null {
			return Cond{Column: col}, nil
		}
		return Cond{Column: col, Value: columnValue(r)}, nil
	}
	return Cond{Column: col, Value: raw}, nil
}

func quoteQualified(name string) (string, error) {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if err := checkName(p); err != nil {
			return "", err
		}
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, "."), nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsRune(name, 0) {
		return ErrInvalidName.At(name)
	}
	return nil
}
