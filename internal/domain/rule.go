package domain

// RuleField identifies the garment attribute a rule tests.
// The set is closed; it is part of the contract with the UI.
type RuleField string

// Valid rule fields.
const (
	FieldCategory RuleField = "category"
	FieldColor    RuleField = "color"
	FieldBrand    RuleField = "brand"
	FieldMaterial RuleField = "material"
	FieldStatus   RuleField = "status"
	FieldTags     RuleField = "tags"
)

// ParseRuleField converts a string to a RuleField.
// Returns false if the string is not a known field.
func ParseRuleField(s string) (RuleField, bool) {
	switch RuleField(s) {
	case FieldCategory, FieldColor, FieldBrand, FieldMaterial, FieldStatus, FieldTags:
		return RuleField(s), true
	}
	return "", false
}

// String returns the wire representation of the field.
func (f RuleField) String() string {
	return string(f)
}

// RuleOperator is the comparison a rule applies to its field.
// EQUALS and NOT_EQUALS are exact-match; all other operators compare
// case-insensitively.
type RuleOperator string

// Valid rule operators.
const (
	OpEquals      RuleOperator = "EQUALS"
	OpNotEquals   RuleOperator = "NOT_EQUALS"
	OpContains    RuleOperator = "CONTAINS"
	OpNotContains RuleOperator = "NOT_CONTAINS"
	OpStartsWith  RuleOperator = "STARTS_WITH"
	OpEndsWith    RuleOperator = "ENDS_WITH"
	OpIn          RuleOperator = "IN"
)

// ParseRuleOperator converts a string to a RuleOperator.
// Returns false if the string is not a known operator.
func ParseRuleOperator(s string) (RuleOperator, bool) {
	switch RuleOperator(s) {
	case OpEquals, OpNotEquals, OpContains, OpNotContains, OpStartsWith, OpEndsWith, OpIn:
		return RuleOperator(s), true
	}
	return "", false
}

// String returns the wire representation of the operator.
func (o RuleOperator) String() string {
	return string(o)
}

// CollectionRule is one predicate contributing to a smart collection's
// membership criteria. Rules have no identity of their own: the whole set
// is replaced on update, never patched row by row. For the IN operator,
// Value is a comma-separated list.
type CollectionRule struct {
	CollectionID string       `json:"-"`
	Field        RuleField    `json:"field"`
	Operator     RuleOperator `json:"operator"`
	Value        string       `json:"value"`
	Position     int          `json:"-"`
}
