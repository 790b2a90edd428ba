package models

// Batch is an ordered group of locations sharing one region code, bounded in
// size by the distance service's matrix limit. Batches are built once,
// rendered once and discarded.
type Batch struct {
	Region    string     `json:"region"`
	Locations []Location `json:"locations"`
}

// Size returns the number of locations in the batch.
func (b Batch) Size() int { return len(b.Locations) }

// Addresses returns the formatted address of every location, in batch order.
func (b Batch) Addresses() []string {
	out := make([]string, 0, len(b.Locations))
	for _, loc := range b.Locations {
		out = append(out, loc.FormattedAddress)
	}
	return out
}
