package distance

// Element is one origin->destination measurement as reported by the distance
// service, already formatted for display.
type Element struct {
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

// Matrix is the full pairwise distance/duration relation for one batch.
//
// Rows are ordered like DestinationAddresses, and each row's elements are
// ordered like DestinationAddresses as well. The service keys rows by the
// canonical address string only; nothing guarantees that order matches the
// originating batch, so consumers must match rows back by address.
type Matrix struct {
	DestinationAddresses []string
	Rows                 [][]Element
}
