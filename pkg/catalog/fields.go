package catalog

// Field is a canonical specification field name. The set of fields is a
// closed, versioned vocabulary: brand mappings may only target fields listed
// here, and a mapping that references anything else is rejected at
// configuration load.
//
// Field names are the Dutch retail vocabulary the master dataset has always
// used; renaming them would orphan the history attached to existing exports.
type Field string

// The specification vocabulary.
const (
	FieldFrame           Field = "Frame"
	FieldFork            Field = "Voorvork"
	FieldChain           Field = "Ketting"
	FieldCassette        Field = "Cassette"
	FieldRearDerailleur  Field = "Achterderailleur"
	FieldFrontDerailleur Field = "Voorderailleur"
	FieldCrankset        Field = "Crankstel"
	FieldChainring       Field = "Voortandwiel"
	FieldShifter         Field = "Shifter"
	FieldShifterSpeed    Field = "Shifter_speed"
	FieldBottomBracket   Field = "Bottom bracket"
	FieldFrameFit        Field = "Framefit"
	FieldWeight          Field = "Gewicht"
	FieldWeightLimit     Field = "Gewichtslimiet"
)

// vocabulary lists every canonical field in its fixed export order.
// Reconciled records expose their keys in this order, so the order is part
// of the schema contract, not a presentation detail.
var vocabulary = []Field{
	FieldFrame,
	FieldFork,
	FieldChain,
	FieldCassette,
	FieldRearDerailleur,
	FieldFrontDerailleur,
	FieldCrankset,
	FieldChainring,
	FieldShifter,
	FieldShifterSpeed,
	FieldBottomBracket,
	FieldFrameFit,
	FieldWeight,
	FieldWeightLimit,
}

// vocabularyIndex maps each field to its position in the fixed order.
var vocabularyIndex = func() map[Field]int {
	idx := make(map[Field]int, len(vocabulary))
	for i, f := range vocabulary {
		idx[f] = i
	}
	return idx
}()

// Vocabulary returns the closed specification vocabulary in its fixed order.
// The returned slice is a copy; callers may not grow the vocabulary.
func Vocabulary() []Field {
	out := make([]Field, len(vocabulary))
	copy(out, vocabulary)
	return out
}

// KnownField reports whether f belongs to the closed vocabulary.
func KnownField(f Field) bool {
	_, ok := vocabularyIndex[f]
	return ok
}

// OrderFields returns the given field set sorted into the fixed vocabulary
// order. Unknown fields are dropped.
func OrderFields(set map[Field]struct{}) []Field {
	out := make([]Field, 0, len(set))
	for _, f := range vocabulary {
		if _, ok := set[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Provenance records whether a specification value came from source data or
// was filled in by the inference engine.
type Provenance string

// Provenance values.
const (
	// Observed means the value (or its absence) came from the brand's
	// source data unmodified.
	Observed Provenance = "observed"

	// Inferred means the value was produced by an inference rule.
	Inferred Provenance = "inferred"
)

// SpecValue is one specification value with its provenance. An empty Value
// with provenance Observed means "no data available", which is distinct from
// an inferred value.
type SpecValue struct {
	Value      string     `json:"value" yaml:"value"`
	Provenance Provenance `json:"provenance" yaml:"provenance"`
}

// ObservedValue builds an observed SpecValue.
func ObservedValue(v string) SpecValue {
	return SpecValue{Value: v, Provenance: Observed}
}

// InferredValue builds an inferred SpecValue.
func InferredValue(v string) SpecValue {
	return SpecValue{Value: v, Provenance: Inferred}
}

// IsEmpty reports whether the value carries no data.
func (s SpecValue) IsEmpty() bool {
	return s.Value == ""
}
