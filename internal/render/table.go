package render

import (
	"fmt"

	"store-locator/internal/distance"
	"store-locator/internal/models"

	"github.com/rs/zerolog/log"
)

// MissPolicy decides what happens when a location's formatted address is not
// found among the matrix's destination addresses.
type MissPolicy int

const (
	// MissPlaceholder renders the row with placeholder cells.
	MissPlaceholder MissPolicy = iota
	// MissSkip omits the row from the table.
	MissSkip
	// MissFail aborts the whole batch.
	MissFail
)

// placeholder fills cells whose measurement could not be resolved.
const placeholder = "n/a"

// Options controls matching behavior.
type Options struct {
	OnMiss MissPolicy
	// AllowDuplicateAddresses downgrades duplicate formatted addresses within
	// one batch from a hard error to a logged warning with first-match row
	// selection. Off by default: first-match silently renders the same row
	// for both locations.
	AllowDuplicateAddresses bool
}

// DuplicateAddressError reports that two locations in one batch resolved to
// the same formatted address, making row matching ambiguous.
type DuplicateAddressError struct {
	Address string
}

func (e *DuplicateAddressError) Error() string {
	return fmt.Sprintf("render: ambiguous formatted address %q appears more than once in batch", e.Address)
}

// HeaderCell labels one table column.
type HeaderCell struct {
	SiteID  string `json:"site_id"`
	Address string `json:"address"`
}

// Cell is one rendered distance/duration measurement.
type Cell struct {
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

// Row is one origin's rendered measurements, ordered like the batch.
type Row struct {
	SiteID  string `json:"site_id"`
	Address string `json:"address"`
	Cells   []Cell `json:"cells"`
	Matched bool   `json:"matched"`
}

// Table is the rendered report body for one batch.
type Table struct {
	Region    string       `json:"region"`
	Header    []HeaderCell `json:"header"`
	Rows      []Row        `json:"rows"`
	RouteLink string       `json:"route_link"`
}

// BuildTable matches each matrix row back to the location that originated it
// and renders one table row per location, in batch order.
//
// Matching goes through a single address -> row index map built up front, so
// a duplicate address is detected before any row is rendered instead of
// silently selecting the first match twice. Column order is the batch's own
// location order; the element picked for each column is resolved through the
// same map, independently of the row lookup.
func BuildTable(batch models.Batch, matrix distance.Matrix, opts Options) (Table, error) {
	rowIndex := make(map[string]int, len(matrix.DestinationAddresses))
	for i, addr := range matrix.DestinationAddresses {
		if _, seen := rowIndex[addr]; seen {
			continue // first occurrence wins
		}
		rowIndex[addr] = i
	}

	// Two locations mapping to the same row is ambiguous regardless of how
	// the service ordered its response.
	seen := make(map[string]string, batch.Size())
	for _, loc := range batch.Locations {
		if prev, ok := seen[loc.FormattedAddress]; ok {
			if !opts.AllowDuplicateAddresses {
				return Table{}, &DuplicateAddressError{Address: loc.FormattedAddress}
			}
			log.Warn().
				Str("region", batch.Region).
				Str("address", loc.FormattedAddress).
				Str("first_site", prev).
				Str("second_site", loc.SiteID).
				Msg("duplicate formatted address in batch; rows will share one matrix row")
		} else {
			seen[loc.FormattedAddress] = loc.SiteID
		}
	}

	table := Table{
		Region:    batch.Region,
		Header:    make([]HeaderCell, 0, batch.Size()),
		Rows:      make([]Row, 0, batch.Size()),
		RouteLink: RouteLink(matrix.DestinationAddresses),
	}

	for _, loc := range batch.Locations {
		table.Header = append(table.Header, HeaderCell{SiteID: loc.SiteID, Address: loc.FormattedAddress})
	}

	for _, origin := range batch.Locations {
		ri, ok := rowIndex[origin.FormattedAddress]
		if !ok {
			log.Warn().
				Str("region", batch.Region).
				Str("site_id", origin.SiteID).
				Str("address", origin.FormattedAddress).
				Strs("destinations", matrix.DestinationAddresses).
				Msg("address not found in matrix destinations")

			switch opts.OnMiss {
			case MissFail:
				return Table{}, fmt.Errorf("render: no matrix row for address %q", origin.FormattedAddress)
			case MissSkip:
				continue
			default:
				table.Rows = append(table.Rows, placeholderRow(origin, batch.Size()))
				continue
			}
		}

		row := Row{
			SiteID:  origin.SiteID,
			Address: origin.FormattedAddress,
			Cells:   make([]Cell, 0, batch.Size()),
			Matched: true,
		}

		for _, dest := range batch.Locations {
			ci, ok := rowIndex[dest.FormattedAddress]
			if !ok {
				row.Cells = append(row.Cells, Cell{Distance: placeholder, Duration: placeholder})
				continue
			}
			el := matrix.Rows[ri][ci]
			row.Cells = append(row.Cells, Cell{Distance: el.Distance, Duration: el.Duration})
		}

		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func placeholderRow(origin models.Location, size int) Row {
	row := Row{
		SiteID:  origin.SiteID,
		Address: origin.FormattedAddress,
		Cells:   make([]Cell, size),
	}
	for i := range row.Cells {
		row.Cells[i] = Cell{Distance: placeholder, Duration: placeholder}
	}
	return row
}
