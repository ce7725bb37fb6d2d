package rules

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/mangle/ast"
)

// ErrNotProperList is returned when a binding is not a nil-terminated list
// of identifier constants.
var ErrNotProperList = errors.New("not a proper list")

// DecodeIDList peels cons cells off a Mangle list constant until the empty
// list, converting each head to an identifier.
func DecodeIDList(term ast.BaseTerm) ([]string, error) {
	c, ok := term.(ast.Constant)
	if !ok {
		return nil, fmt.Errorf("%w: binding is %T", ErrNotProperList, term)
	}

	var ids []string
	for {
		if c.Type != ast.ListShape {
			return nil, fmt.Errorf("%w: tail is %v", ErrNotProperList, c)
		}
		if c.IsListNil() {
			return ids, nil
		}
		head, tail, err := c.ConsValue()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotProperList, err)
		}
		id, err := identifier(head)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		c = tail
	}
}

// identifier returns strings verbatim, names with their leading slash and
// numbers in decimal.
func identifier(c ast.Constant) (string, error) {
	switch c.Type {
	case ast.StringType, ast.NameType:
		return c.Symbol, nil
	case ast.NumberType:
		return strconv.FormatInt(c.NumValue, 10), nil
	}
	return "", fmt.Errorf("%w: element %v is not an identifier", ErrNotProperList, c)
}
