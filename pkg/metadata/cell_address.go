package metadata

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	// MaxColumns is the number of single-letter column labels (A..Z).
	MaxColumns = 26
	// MaxDesignations is the number of sections a container can hold.
	MaxDesignations = 26
	// SecondaryPrefix marks the second partition of the old dual-type containers.
	SecondaryPrefix = "BIG"
)

var (
	ErrUnparseableAddress = errors.New("unparseable cell address")
	ErrColumnOutOfRange   = fmt.Errorf("column index must be between 0 and %d", MaxColumns-1)
	ErrRowOutOfRange      = errors.New("row must be at least 1")
	ErrInvalidDesignation = errors.New("designation must be a single letter A-Z")
	ErrNoDesignationLeft  = fmt.Errorf("no designation letters left, a container holds at most %d sections", MaxDesignations)
)

var addressPattern = regexp.MustCompile(`^(?:(BIG|[A-Z])-)?([1-9][0-9]*)([A-Z])$`)

// CellAddress is a decoded grid position. Row is 1-based, Col is 0-based.
type CellAddress struct {
	Designation string `json:"designation,omitempty"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Secondary   bool   `json:"secondary,omitempty"`
}

func (a CellAddress) String() string {
	cell := strconv.Itoa(a.Row) + string(rune('A'+a.Col))
	switch {
	case a.Secondary:
		return SecondaryPrefix + "-" + cell
	case a.Designation != "":
		return a.Designation + "-" + cell
	default:
		return cell
	}
}

func ColumnLetter(col int) (string, error) {
	if col < 0 || col >= MaxColumns {
		return "", ErrColumnOutOfRange
	}
	return string(rune('A' + col)), nil
}

func Encode(designation string, row, col int) (string, error) {
	if !isDesignation(designation) {
		return "", ErrInvalidDesignation
	}
	if err := checkCell(row, col); err != nil {
		return "", err
	}

	return CellAddress{Designation: designation, Row: row, Col: col}.String(), nil
}

// EncodeSecondary renders the BIG-{row}{col} form.
func EncodeSecondary(row, col int) (string, error) {
	if err := checkCell(row, col); err != nil {
		return "", err
	}

	return CellAddress{Row: row, Col: col, Secondary: true}.String(), nil
}

func Decode(address string) (CellAddress, error) {
	match := addressPattern.FindStringSubmatch(address)
	if match == nil {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrUnparseableAddress, address)
	}

	row, err := strconv.Atoi(match[2])
	if err != nil {
		return CellAddress{}, fmt.Errorf("%w: %q", ErrUnparseableAddress, address)
	}

	decoded := CellAddress{
		Row: row,
		Col: int(match[3][0] - 'A'),
	}
	if match[1] == SecondaryPrefix {
		decoded.Secondary = true
	} else {
		decoded.Designation = match[1]
	}

	return decoded, nil
}

// DesignationFor maps a zero-based section index to its letter.
func DesignationFor(index int) (string, error) {
	if index < 0 || index >= MaxDesignations {
		return "", ErrNoDesignationLeft
	}
	return string(rune('A' + index)), nil
}

// CellAddresses lists every address of a rows x cols grid in row-major order.
func CellAddresses(designation string, rows, cols int) ([]string, error) {
	if cols > MaxColumns {
		return nil, ErrColumnOutOfRange
	}
	addresses := make([]string, 0, rows*cols)
	for row := 1; row <= rows; row++ {
		for col := 0; col < cols; col++ {
			address, err := Encode(designation, row, col)
			if err != nil {
				return nil, err
			}
			addresses = append(addresses, address)
		}
	}
	return addresses, nil
}

func isDesignation(value string) bool {
	return len(value) == 1 && value[0] >= 'A' && value[0] <= 'Z'
}

func checkCell(row, col int) error {
	if row < 1 {
		return ErrRowOutOfRange
	}
	if col < 0 || col >= MaxColumns {
		return ErrColumnOutOfRange
	}
	return nil
}
