package query

import (
	"fmt"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"strings"
)

type FilterExpression interface {
	Applies(node *osm.Node) bool
	String() string
}

type BinaryOperator int

const (
	BinOpEqual BinaryOperator = iota
	BinOpNotEqual
)

func (o BinaryOperator) string() string {
	switch o {
	case BinOpEqual:
		return "="
	case BinOpNotEqual:
		return "!="
	}
	return fmt.Sprintf("[!UNKNOWN BinaryOperator %d]", o)
}

// TagFilterExpression compares the value of a tag. Nodes without the key never match, not even for "!=".
type TagFilterExpression struct {
	key      string
	value    string
	operator BinaryOperator
}

func NewTagFilterExpression(key string, value string, operator BinaryOperator) *TagFilterExpression {
	return &TagFilterExpression{
		key:      key,
		value:    value,
		operator: operator,
	}
}

func (f TagFilterExpression) Applies(node *osm.Node) bool {
	if sigolo.ShouldLogTrace() {
		sigolo.Tracef("TagFilterExpression: %s for node %d", f.String(), node.ID)
	}

	if !node.Tags.HasTag(f.key) {
		return false
	}

	switch f.operator {
	case BinOpEqual:
		return node.Tags.Find(f.key) == f.value
	case BinOpNotEqual:
		return node.Tags.Find(f.key) != f.value
	}
	return false
}

func (f TagFilterExpression) String() string {
	return f.key + f.operator.string() + f.value
}

// KeyFilterExpression checks whether the key is set, regardless of its value.
type KeyFilterExpression struct {
	key         string
	shouldBeSet bool
}

func NewKeyFilterExpression(key string, shouldBeSet bool) *KeyFilterExpression {
	return &KeyFilterExpression{
		key:         key,
		shouldBeSet: shouldBeSet,
	}
}

func (f KeyFilterExpression) Applies(node *osm.Node) bool {
	if sigolo.ShouldLogTrace() {
		sigolo.Tracef("KeyFilterExpression: HasKey(%s)=%v for node %d", f.key, f.shouldBeSet, node.ID)
	}

	return node.Tags.HasTag(f.key) == f.shouldBeSet
}

func (f KeyFilterExpression) String() string {
	if f.shouldBeSet {
		return f.key + "=*"
	}
	return f.key + "!=*"
}

// AndFilterExpression applies when all of its expressions apply. Without any expressions it always applies.
type AndFilterExpression struct {
	expressions []FilterExpression
}

func NewAndFilterExpression(expressions ...FilterExpression) *AndFilterExpression {
	return &AndFilterExpression{
		expressions: expressions,
	}
}

func (f AndFilterExpression) Applies(node *osm.Node) bool {
	for _, expression := range f.expressions {
		if !expression.Applies(node) {
			return false
		}
	}
	return true
}

func (f AndFilterExpression) String() string {
	var parts []string
	for _, expression := range f.expressions {
		parts = append(parts, expression.String())
	}
	return strings.Join(parts, " AND ")
}

// ParseFilter parses "key=value", "key!=value", "key=*" (key is set) and "key!=*" (key is not set).
func ParseFilter(filterString string) (FilterExpression, error) {
	operator := BinOpEqual
	key, value, found := strings.Cut(filterString, "!=")
	if found {
		operator = BinOpNotEqual
	} else {
		key, value, found = strings.Cut(filterString, "=")
	}
	if !found {
		return nil, errors.Errorf("Expected '=' or '!=' in filter '%s'", filterString)
	}

	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return nil, errors.Errorf("Key and value of filter '%s' must not be empty", filterString)
	}

	if value == "*" {
		return NewKeyFilterExpression(key, operator == BinOpEqual), nil
	}
	return NewTagFilterExpression(key, value, operator), nil
}

// ParseFilters combines all given filters, see ParseFilter, into one expression.
func ParseFilters(filterStrings ...string) (FilterExpression, error) {
	var expressions []FilterExpression
	for _, filterString := range filterStrings {
		expression, err := ParseFilter(filterString)
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expression)
	}
	return NewAndFilterExpression(expressions...), nil
}
