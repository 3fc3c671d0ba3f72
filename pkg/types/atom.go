package types

// Fallback strings used by every formatting path. The fallback order is
// fixed: label, then raw data, then one of these.
const (
	// UnknownLabel stands in for a missing subject, object, or atom label.
	UnknownLabel = "Unknown"
	// DefaultPredicateLabel stands in for a missing predicate label.
	DefaultPredicateLabel = "relates to"
)

// AtomType discriminates the value variant of an atom. It is set by the
// graph backend and is immutable once retrieved.
type AtomType string

const (
	// AtomTypeThing represents a generic entity.
	AtomTypeThing AtomType = "thing"
	// AtomTypeAccount represents an on-graph account.
	AtomTypeAccount AtomType = "account"
	// AtomTypePerson represents a person.
	AtomTypePerson AtomType = "person"
	// AtomTypeOrganization represents an organization.
	AtomTypeOrganization AtomType = "organization"
	// AtomTypeUnknown is returned when no value variant is populated.
	AtomTypeUnknown AtomType = "unknown"
)

// Atom represents a node in the knowledge graph.
type Atom struct {
	ID    string     `json:"id" mapstructure:"id"`
	Label string     `json:"label,omitempty" mapstructure:"label"`
	Data  string     `json:"data,omitempty" mapstructure:"data"`
	Type  AtomType   `json:"type,omitempty" mapstructure:"type"`
	Value *AtomValue `json:"value,omitempty" mapstructure:"value"`
}

// AtomValue is the tagged union of type-specific descriptive fields.
// Exactly one variant is populated per atom.
type AtomValue struct {
	Thing        *ThingValue        `json:"thing,omitempty" mapstructure:"thing"`
	Account      *AccountValue      `json:"account,omitempty" mapstructure:"account"`
	Person       *PersonValue       `json:"person,omitempty" mapstructure:"person"`
	Organization *OrganizationValue `json:"organization,omitempty" mapstructure:"organization"`
}

// ThingValue holds descriptive fields for generic entities.
type ThingValue struct {
	Name        string `json:"name,omitempty" mapstructure:"name"`
	Description string `json:"description,omitempty" mapstructure:"description"`
	URL         string `json:"url,omitempty" mapstructure:"url"`
}

// AccountValue holds descriptive fields for account atoms.
type AccountValue struct {
	ID    string `json:"id,omitempty" mapstructure:"id"`
	Label string `json:"label,omitempty" mapstructure:"label"`
	Image string `json:"image,omitempty" mapstructure:"image"`
}

// PersonValue holds descriptive fields for person atoms.
type PersonValue struct {
	Name        string `json:"name,omitempty" mapstructure:"name"`
	Description string `json:"description,omitempty" mapstructure:"description"`
	Email       string `json:"email,omitempty" mapstructure:"email"`
	URL         string `json:"url,omitempty" mapstructure:"url"`
}

// OrganizationValue holds descriptive fields for organization atoms.
type OrganizationValue struct {
	Name        string `json:"name,omitempty" mapstructure:"name"`
	Description string `json:"description,omitempty" mapstructure:"description"`
	Email       string `json:"email,omitempty" mapstructure:"email"`
	URL         string `json:"url,omitempty" mapstructure:"url"`
}

// Resolve returns the discriminant for the populated variant. This is the
// single place the variant is inspected; callers must not probe the
// variant pointers directly.
func (v *AtomValue) Resolve() AtomType {
	switch {
	case v == nil:
		return AtomTypeUnknown
	case v.Account != nil:
		return AtomTypeAccount
	case v.Person != nil:
		return AtomTypePerson
	case v.Organization != nil:
		return AtomTypeOrganization
	case v.Thing != nil:
		return AtomTypeThing
	default:
		return AtomTypeUnknown
	}
}

// ResolvedType returns the atom's type discriminant, falling back to
// value-variant resolution when the backend omitted the type field.
func (a *Atom) ResolvedType() AtomType {
	if a == nil {
		return AtomTypeUnknown
	}
	if a.Type != "" {
		return a.Type
	}
	return a.Value.Resolve()
}

// LabelOr resolves the atom's display label using the canonical fallback
// order: label, then raw data, then the supplied fallback. Safe on nil.
func (a *Atom) LabelOr(fallback string) string {
	if a == nil {
		return fallback
	}
	if a.Label != "" {
		return a.Label
	}
	if a.Data != "" {
		return a.Data
	}
	return fallback
}

// Triple represents a directed (subject, predicate, object) edge over
// three atoms. The triple is itself addressable as a term; CounterTermID
// identifies the paired term holding the opposite stance.
type Triple struct {
	TermID        string `json:"term_id" mapstructure:"term_id"`
	CounterTermID string `json:"counter_term_id" mapstructure:"counter_term_id"`
	Subject       *Atom  `json:"subject,omitempty" mapstructure:"subject"`
	Predicate     *Atom  `json:"predicate,omitempty" mapstructure:"predicate"`
	Object        *Atom  `json:"object,omitempty" mapstructure:"object"`
}
