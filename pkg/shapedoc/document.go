// Package shapedoc reads documents that describe expected exception shapes,
// raised exception trees and suites of cases.
//
// Documents are YAML, JSON or TOML. They are checked against an embedded JSON
// schema, decoded into [Document] and validated structurally before being
// compiled into shapes and trees.
//
//	types:
//	  - name: AppError
//	    parents: [ValueError]
//	shape: ExceptionGroup(AppError, Matcher(KeyError, match='id'))
//	raised:
//	  exceptions:
//	    - {type: KeyError, message: "missing id"}
//	    - {type: AppError, message: "bad input"}
package shapedoc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDocument reports a document that does not satisfy the schema or
// the structural rules.
var ErrInvalidDocument = errors.New("invalid shape document")

// Want values of a [Case].
const (
	WantMatch    = "match"
	WantMismatch = "mismatch"
)

// Document is a decoded shape document.
type Document struct {
	Types  []TypeDecl `json:"types,omitempty"  validate:"dive"`
	Shape  *ShapeNode `json:"shape,omitempty"`
	Raised *Raised    `json:"raised,omitempty"`
	Cases  []Case     `json:"cases,omitempty"  validate:"dive"`
}

// TypeDecl declares a custom exception class.
type TypeDecl struct {
	Name    string   `json:"name"    validate:"required"`
	Parents []string `json:"parents" validate:"required,min=1,dive,required"`
}

// ShapeNode is an expected shape. It is either a canonical expression such
// as "ExceptionGroup(ValueError)" or exactly one of Type, Matcher and Group.
type ShapeNode struct {
	Expr    string       `json:"-"`
	Type    string       `json:"type,omitempty"`
	Matcher *MatcherNode `json:"matcher,omitempty"`
	Group   *GroupNode   `json:"group,omitempty"`
}

// UnmarshalJSON accepts either an expression string or an object.
func (n *ShapeNode) UnmarshalJSON(data []byte) error {
	var expr string

	if json.Unmarshal(data, &expr) == nil {
		*n = ShapeNode{Expr: expr}

		return nil
	}

	type plain ShapeNode

	var p plain

	err := json.Unmarshal(data, &p)
	if err != nil {
		return fmt.Errorf("decode shape: %w", err)
	}

	*n = ShapeNode(p)

	return nil
}

// MatcherNode is the structured form of a Matcher.
type MatcherNode struct {
	Type  string  `json:"type,omitempty"`
	Match *string `json:"match,omitempty"`
	Check string  `json:"check,omitempty"`
}

// GroupNode is the structured form of a group shape.
type GroupNode struct {
	Children         []ShapeNode `json:"children"                    validate:"required,min=1,dive"`
	FlattenSubgroups bool        `json:"flatten_subgroups,omitempty"`
	AllowUnwrapped   bool        `json:"allow_unwrapped,omitempty"`
	Match            *string     `json:"match,omitempty"`
	Check            string      `json:"check,omitempty"`
}

// Raised describes a raised exception. It is a group when Exceptions is set
// or Type names a group class.
type Raised struct {
	Type       string   `json:"type,omitempty"`
	Message    string   `json:"message,omitempty"`
	Notes      []string `json:"notes,omitempty"`
	Exceptions []Raised `json:"exceptions,omitempty" validate:"dive"`
}

// Case is one entry of a suite. A nil Raised means nothing was raised.
// Diagnostic, when set on a mismatch case, is the exact expected report.
type Case struct {
	Name       string    `json:"name"                 validate:"required"`
	Shape      ShapeNode `json:"shape"`
	Raised     *Raised   `json:"raised,omitempty"`
	Want       string    `json:"want"                 validate:"required,oneof=match mismatch"`
	Diagnostic *string   `json:"diagnostic,omitempty"`
}

var validate = validator.New()

// Validate checks the structural rules that do not depend on the schema, so
// documents built in Go are held to the same rules as decoded ones.
func (d *Document) Validate() error {
	err := validate.Struct(d)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if d.Shape == nil && len(d.Cases) == 0 {
		return fmt.Errorf("%w: a document needs a shape or cases", ErrInvalidDocument)
	}

	return nil
}
