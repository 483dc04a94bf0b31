package access

import (
	"strconv"
	"strings"
)

// Filter accumulates SQL conditions with ? placeholders. Repositories
// render it once with Clause, which renumbers the placeholders into pgx's
// positional $N form. Filters are value types; And returns a new Filter so
// a base filter can be scoped without mutating the original.
type Filter struct {
	conds []string
	args  []any
}

func NewFilter() Filter {
	return Filter{}
}

// And appends a condition. The condition must use one ? per argument.
func (f Filter) And(cond string, args ...any) Filter {
	conds := make([]string, len(f.conds), len(f.conds)+1)
	copy(conds, f.conds)
	fargs := make([]any, len(f.args), len(f.args)+len(args))
	copy(fargs, f.args)

	return Filter{
		conds: append(conds, cond),
		args:  append(fargs, args...),
	}
}

// DenyAll appends a condition no row satisfies. Used to fail closed.
func (f Filter) DenyAll() Filter {
	return f.And("FALSE")
}

// IsEmpty reports whether no conditions have been added.
func (f Filter) IsEmpty() bool {
	return len(f.conds) == 0
}

// Len returns the number of bound arguments, so callers can continue
// numbering ($Len+1, ...) for LIMIT/OFFSET and the like.
func (f Filter) Len() int {
	return len(f.args)
}

// Clause renders "WHERE ..." with $1..$N placeholders, or "" when empty.
func (f Filter) Clause() (string, []any) {
	if len(f.conds) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("WHERE ")
	n := 0
	for i, cond := range f.conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		for _, ch := range cond {
			if ch == '?' {
				n++
				sb.WriteString("$")
				sb.WriteString(strconv.Itoa(n))
			} else {
				sb.WriteRune(ch)
			}
		}
	}
	return sb.String(), f.args
}
