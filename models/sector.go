package models

// Sector is the closed set of portfolio sector classifications. Positions
// keep SectorUnknown until the category lookup resolves; once resolved the
// sector never changes for the remainder of the position's lifetime.
type Sector string

const (
	SectorTechnology    Sector = "Technology"
	SectorFinancial     Sector = "Financial Services"
	SectorEnergy        Sector = "Energy"
	SectorHealthcare    Sector = "Healthcare"
	SectorIndustrials   Sector = "Industrials"
	SectorConsumer      Sector = "Consumer"
	SectorRealEstate    Sector = "Real Estate"
	SectorCommunication Sector = "Communication Services"
	SectorOther         Sector = "Other"
	SectorUnknown       Sector = "Unknown"
)

// AllSectors lists every valid sector value.
var AllSectors = []Sector{
	SectorTechnology,
	SectorFinancial,
	SectorEnergy,
	SectorHealthcare,
	SectorIndustrials,
	SectorConsumer,
	SectorRealEstate,
	SectorCommunication,
	SectorOther,
	SectorUnknown,
}

// Valid reports whether s is a member of the closed sector set.
func (s Sector) Valid() bool {
	for _, known := range AllSectors {
		if s == known {
			return true
		}
	}
	return false
}
