package shop

import "sort"

// PurchaseRecord is the set of item names ever bought. Selling an item does not remove
// its name; only a reset clears the record.
type PurchaseRecord map[string]bool

// NewPurchaseRecord creates an empty record
func NewPurchaseRecord() PurchaseRecord {
	return make(PurchaseRecord)
}

// Has reports whether the name was purchased
func (r PurchaseRecord) Has(name string) bool {
	return r[name]
}

// Add records a purchase
func (r PurchaseRecord) Add(name string) {
	r[name] = true
}

// Clear empties the record in place
func (r PurchaseRecord) Clear() {
	clear(r)
}

// Names returns the recorded names in sorted order
func (r PurchaseRecord) Names() []string {
	names := make([]string, 0, len(r))
	for name, bought := range r {
		if bought {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy
func (r PurchaseRecord) Clone() PurchaseRecord {
	out := make(PurchaseRecord, len(r))
	for name, bought := range r {
		out[name] = bought
	}
	return out
}
