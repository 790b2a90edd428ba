package partition

import "store-locator/internal/models"

// MaxBatchSize caps a batch at 9 locations. The distance service supports a
// 10x10 matrix at most, and one slot of margin is reserved.
const MaxBatchSize = 9

// State is the accumulator of the partitioning state machine. The zero value
// is the empty state; a non-empty buffer means we are accumulating locations
// under Region.
type State struct {
	Region string
	buffer []models.Location
}

// Empty reports whether no locations are buffered.
func (s State) Empty() bool { return len(s.buffer) == 0 }

// Len returns the number of buffered locations.
func (s State) Len() int { return len(s.buffer) }

// Step is the pure transition function of the partitioner. Given the current
// state and the next location it returns the successor state and, when a
// batch boundary was crossed, the completed batch.
//
// A boundary occurs when the buffer is already at MaxBatchSize (the size cap
// wins over region continuity, so two consecutive batches may share a region)
// or when the incoming region code differs from the buffered one.
func Step(s State, loc models.Location) (State, *models.Batch) {
	if s.Empty() {
		return accumulate(loc), nil
	}

	if len(s.buffer) == MaxBatchSize || loc.RegionCode != s.Region {
		emitted := s.batch()
		return accumulate(loc), emitted
	}

	// Copy the buffer so successor states never alias the caller's slice.
	buf := make([]models.Location, 0, MaxBatchSize)
	buf = append(buf, s.buffer...)
	buf = append(buf, loc)
	return State{Region: s.Region, buffer: buf}, nil
}

// Flush emits whatever is buffered as the final batch, or nil when the state
// is empty.
func Flush(s State) *models.Batch {
	if s.Empty() {
		return nil
	}
	return s.batch()
}

// Partition splits locations, pre-sorted by region code, into batches of
// 1..MaxBatchSize elements. Concatenating the batches reproduces the input
// exactly; an empty input yields no batches. A single location flows through
// the same transitions and yields one batch of size one.
func Partition(locations []models.Location) []models.Batch {
	var (
		state   State
		batches []models.Batch
	)

	for _, loc := range locations {
		next, emitted := Step(state, loc)
		if emitted != nil {
			batches = append(batches, *emitted)
		}
		state = next
	}

	if final := Flush(state); final != nil {
		batches = append(batches, *final)
	}

	return batches
}

func accumulate(loc models.Location) State {
	buf := make([]models.Location, 1, MaxBatchSize)
	buf[0] = loc
	return State{Region: loc.RegionCode, buffer: buf}
}

func (s State) batch() *models.Batch {
	return &models.Batch{Region: s.Region, Locations: s.buffer}
}
