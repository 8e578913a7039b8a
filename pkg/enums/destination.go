package enums

import "fmt"

// Destination describes where a scanned photo code sends the buyer.
type Destination string

const (
	DestinationProduct  Destination = "product"
	DestinationCheckout Destination = "checkout"
)

var validDestinations = []Destination{
	DestinationProduct,
	DestinationCheckout,
}

// IsValid reports whether the value matches the canonical destination enum.
func (d Destination) IsValid() bool {
	for _, candidate := range validDestinations {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDestination converts the raw string to Destination.
func ParseDestination(value string) (Destination, error) {
	for _, candidate := range validDestinations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid destination %q", value)
}
