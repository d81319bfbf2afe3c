package record

// Section names a content section of a MedicalRecord.
type Section string

// Content sections in traversal order.  Insured Info is structural and is
// never flattened into entries.
const (
	SectionLab                Section = "Lab"
	SectionTest               Section = "Test"
	SectionLifestyleCondition Section = "Lifestyle/Condition"
	SectionRx                 Section = "Rx"
)

// Sections lists the content sections in the order Entries visits them.
var Sections = []Section{SectionLab, SectionTest, SectionLifestyleCondition, SectionRx}

// rxTab and rxFeatureType label prescription entries, which carry no tab
// or feature type of their own.
const (
	rxTab         = "rx"
	rxFeatureType = "rx"
)

// Entry is one value-bearing line item, the unit checked against the
// requirement cache.  Index is the item's position inside its section.
type Entry struct {
	Section        Section
	Index          int
	Tab            string
	Impairment     string
	FeatureType    string
	Feature        string
	ValueType      string
	Value          string
	SecondaryValue string
}

func fromBase(s Section, i int, b *BaseRecord) Entry {
	return Entry{
		Section:        s,
		Index:          i,
		Tab:            b.Tab,
		Impairment:     b.Impairment,
		FeatureType:    b.FeatureType,
		Feature:        b.Feature,
		ValueType:      b.ValueType,
		Value:          b.Value,
		SecondaryValue: b.SecondaryValue,
	}
}

// SectionEntries flattens one section.  Unknown sections yield nil.
func (m *MedicalRecord) SectionEntries(s Section) []Entry {
	var out []Entry
	switch s {
	case SectionLab:
		out = make([]Entry, 0, len(m.Lab))
		for i := range m.Lab {
			out = append(out, fromBase(s, i, &m.Lab[i].BaseRecord))
		}
	case SectionTest:
		out = make([]Entry, 0, len(m.Test))
		for i := range m.Test {
			out = append(out, fromBase(s, i, &m.Test[i].BaseRecord))
		}
	case SectionLifestyleCondition:
		out = make([]Entry, 0, len(m.LifestyleCondition))
		for i := range m.LifestyleCondition {
			out = append(out, fromBase(s, i, &m.LifestyleCondition[i].BaseRecord))
		}
	case SectionRx:
		// A prescription is checked as feature = RX Type, value = Rx Name.
		out = make([]Entry, 0, len(m.Rx))
		for i, rx := range m.Rx {
			out = append(out, Entry{
				Section:     s,
				Index:       i,
				Tab:         rxTab,
				Impairment:  rx.Impairment,
				FeatureType: rxFeatureType,
				Feature:     rx.RxType,
				Value:       rx.RxName,
			})
		}
	}
	return out
}

// Entries flattens every content section in traversal order.
func (m *MedicalRecord) Entries() []Entry {
	n := len(m.Lab) + len(m.Test) + len(m.LifestyleCondition) + len(m.Rx)
	out := make([]Entry, 0, n)
	for _, s := range Sections {
		out = append(out, m.SectionEntries(s)...)
	}
	return out
}
