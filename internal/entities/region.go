package entities

import (
	"fmt"
	"strings"
)

// Zone: макрорегион страны. Код региона имеет вид "<ZONE>-<PROVINCE>", например "N-HN", "S-HCM".
type Zone string

const (
	ZoneNorth   Zone = "N"
	ZoneCentral Zone = "C"
	ZoneSouth   Zone = "S"
)

var zoneOrder = map[Zone]int{
	ZoneNorth:   0,
	ZoneCentral: 1,
	ZoneSouth:   2,
}

type Region struct {
	Zone     Zone
	Province string
}

func (r Region) Code() string {
	return string(r.Zone) + "-" + r.Province
}

func ParseRegion(code string) (Region, error) {
	zone, province, ok := strings.Cut(strings.TrimSpace(code), "-")
	if !ok || province == "" {
		return Region{}, fmt.Errorf("%w: malformed region code %q", ErrValidation, code)
	}
	z := Zone(strings.ToUpper(zone))
	if _, known := zoneOrder[z]; !known {
		return Region{}, fmt.Errorf("%w: unknown zone in region code %q", ErrValidation, code)
	}
	return Region{Zone: z, Province: strings.ToUpper(province)}, nil
}

// RegionClass: классификация пары регионов для тарифа.
type RegionClass string

const (
	IntraCity   RegionClass = "intra_city"
	IntraRegion RegionClass = "intra_region"
	NearRegion  RegionClass = "near_region"
	InterRegion RegionClass = "inter_region"
)

func (c RegionClass) String() string {
	return string(c)
}

func Classify(origin, dest Region) RegionClass {
	switch {
	case origin.Zone == dest.Zone && origin.Province == dest.Province:
		return IntraCity
	case origin.Zone == dest.Zone:
		return IntraRegion
	}

	distance := zoneOrder[origin.Zone] - zoneOrder[dest.Zone]
	if distance == 1 || distance == -1 {
		return NearRegion
	}
	return InterRegion
}
