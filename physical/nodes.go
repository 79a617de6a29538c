package physical

import (
	"fmt"

	"github.com/freshet/freshet/freshet"
)

type Node struct {
	Schema Schema

	NodeType NodeType
	// Only one of the below may be non-null.
	Constant  *Constant
	Get       *Get
	Let       *Let
	Project   *Project
	Map       *Map
	FlatMap   *FlatMap
	Filter    *Filter
	Join      *Join
	Reduce    *Reduce
	TopK      *TopK
	Negate    *Negate
	Threshold *Threshold
	Union     *Union
	ArrangeBy *ArrangeBy
}

type Schema struct {
	Fields []SchemaField
}

func NewSchema(fields []SchemaField) Schema {
	return Schema{
		Fields: fields,
	}
}

type SchemaField struct {
	Name string
	Type freshet.Type
}

type NodeType int

const (
	NodeTypeConstant NodeType = iota
	NodeTypeGet
	NodeTypeLet
	NodeTypeProject
	NodeTypeMap
	NodeTypeFlatMap
	NodeTypeFilter
	NodeTypeJoin
	NodeTypeReduce
	NodeTypeTopK
	NodeTypeNegate
	NodeTypeThreshold
	NodeTypeUnion
	NodeTypeArrangeBy
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeConstant:
		return "constant"
	case NodeTypeGet:
		return "get"
	case NodeTypeLet:
		return "let"
	case NodeTypeProject:
		return "project"
	case NodeTypeMap:
		return "map"
	case NodeTypeFlatMap:
		return "flat_map"
	case NodeTypeFilter:
		return "filter"
	case NodeTypeJoin:
		return "join"
	case NodeTypeReduce:
		return "reduce"
	case NodeTypeTopK:
		return "top_k"
	case NodeTypeNegate:
		return "negate"
	case NodeTypeThreshold:
		return "threshold"
	case NodeTypeUnion:
		return "union"
	case NodeTypeArrangeBy:
		return "arrange_by"
	}
	return "unknown"
}

// Constant is an explicit collection of records with multiplicities.
type Constant struct {
	Records []Record
}

// Get references a bound collection, either a local Let binding or a
// globally installed collection.
type Get struct {
	ID BindingID
}

// Let binds Value under a local index which Gets inside Body may reference.
// The only construct that introduces sharing.
type Let struct {
	LocalIndex int
	Value      Node
	Body       Node
}

type BindingScope int

const (
	BindingScopeLocal BindingScope = iota
	BindingScopeGlobal
)

type BindingID struct {
	Scope BindingScope
	Index int
}

func (id BindingID) String() string {
	switch id.Scope {
	case BindingScopeLocal:
		return fmt.Sprintf("l%d", id.Index)
	case BindingScopeGlobal:
		return fmt.Sprintf("g%d", id.Index)
	}
	panic("unexhaustive binding scope match")
}

// Project reorders and subsets the source columns; Outputs[i] is the source
// column placed at output position i.
type Project struct {
	Source  Node
	Outputs []int
}

// Map appends one computed column per expression after the source columns.
// An expression may reference earlier appended columns.
type Map struct {
	Source      Node
	Expressions []Expression
}

// FlatMap appends the columns produced by a table valued function applied
// to the argument expressions.
type FlatMap struct {
	Source     Node
	Name       string
	Descriptor TableValuedFunctionDescriptor
	Arguments  []Expression
}

// Filter keeps records for which every predicate evaluates to true.
// A predicate evaluating to false or null drops the record.
type Filter struct {
	Source     Node
	Predicates []Expression
}

// Join is an n-ary join; the output columns are the concatenation of all
// input columns in order. Each equivalence class asserts its member
// expressions equal for matched records.
type Join struct {
	Inputs       []Node
	Equivalences [][]Expression
}

// Reduce groups records by Key, producing one output column per key
// expression followed by one output column per aggregate.
type Reduce struct {
	Source               Node
	Key                  []Expression
	Aggregates           []Aggregate
	AggregateExpressions []Expression
}

type Aggregate struct {
	Name       string
	OutputType freshet.Type
}

type TopK struct {
	Source                      Node
	GroupKey                    []int
	OrderByKey                  []Expression
	OrderByDirectionMultipliers []int
	Limit                       *Expression
}

type Negate struct {
	Source Node
}

type Threshold struct {
	Source Node
}

type Union struct {
	Base   Node
	Inputs []Node
}

type ArrangeBy struct {
	Source Node
	Keys   [][]Expression
}

// Arity is the number of output columns of this node.
func (node *Node) Arity() int {
	return len(node.Schema.Fields)
}

// Typ is the output schema of this node.
func (node *Node) Typ() Schema {
	return node.Schema
}

// TakeSafely replaces the node in place with an empty constant collection
// of the same schema.
func (node *Node) TakeSafely() {
	*node = Node{
		Schema:   node.Schema,
		NodeType: NodeTypeConstant,
		Constant: &Constant{},
	}
}
