package types

import "testing"

func TestAtomValueResolve(t *testing.T) {
	tests := []struct {
		name  string
		value *AtomValue
		want  AtomType
	}{
		{"nil union", nil, AtomTypeUnknown},
		{"empty union", &AtomValue{}, AtomTypeUnknown},
		{"thing", &AtomValue{Thing: &ThingValue{Name: "toaster"}}, AtomTypeThing},
		{"account", &AtomValue{Account: &AccountValue{ID: "0xabc"}}, AtomTypeAccount},
		{"person", &AtomValue{Person: &PersonValue{Name: "Ada"}}, AtomTypePerson},
		{"organization", &AtomValue{Organization: &OrganizationValue{Name: "ACME"}}, AtomTypeOrganization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Resolve(); got != tt.want {
				t.Errorf("Resolve() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAtomResolvedTypePrefersDiscriminant(t *testing.T) {
	a := &Atom{
		Type:  AtomTypePerson,
		Value: &AtomValue{Organization: &OrganizationValue{Name: "ACME"}},
	}
	if got := a.ResolvedType(); got != AtomTypePerson {
		t.Errorf("ResolvedType() = %s, want %s", got, AtomTypePerson)
	}

	a.Type = ""
	if got := a.ResolvedType(); got != AtomTypeOrganization {
		t.Errorf("ResolvedType() without discriminant = %s, want %s", got, AtomTypeOrganization)
	}

	var nilAtom *Atom
	if got := nilAtom.ResolvedType(); got != AtomTypeUnknown {
		t.Errorf("ResolvedType() on nil atom = %s, want %s", got, AtomTypeUnknown)
	}
}

func TestAtomLabelOr(t *testing.T) {
	tests := []struct {
		name string
		atom *Atom
		want string
	}{
		{"label present", &Atom{Label: "Alice", Data: "raw"}, "Alice"},
		{"data fallback", &Atom{Data: "ipfs://Qm123"}, "ipfs://Qm123"},
		{"terminal fallback", &Atom{}, UnknownLabel},
		{"nil atom", nil, UnknownLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.atom.LabelOr(UnknownLabel); got != tt.want {
				t.Errorf("LabelOr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAtomLabelOrPredicateFallback(t *testing.T) {
	var missing *Atom
	if got := missing.LabelOr(DefaultPredicateLabel); got != DefaultPredicateLabel {
		t.Errorf("LabelOr() = %q, want %q", got, DefaultPredicateLabel)
	}
}
