package services

import (
	"testing"

	"stockfolio/models"
)

func TestMapIndustry(t *testing.T) {
	tests := []struct {
		industry string
		want     models.Sector
	}{
		{"Software - Infrastructure", models.SectorTechnology},
		{"Semiconductors", models.SectorTechnology},
		{"Banks - Diversified", models.SectorFinancial},
		{"Insurance Brokers", models.SectorFinancial},
		{"Oil & Gas Integrated", models.SectorEnergy},
		{"Biotechnology", models.SectorHealthcare},
		{"Drug Manufacturers - Pharmaceutical", models.SectorHealthcare},
		{"Specialty Industrial Machinery", models.SectorIndustrials},
		{"Real Estate Services", models.SectorRealEstate},
		{"Telecom Services", models.SectorCommunication},
		{"Consumer Electronics", models.SectorConsumer},
		{"Discount Retail", models.SectorConsumer},
		{"Gold Mining", models.SectorUnknown},
		{"", models.SectorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.industry, func(t *testing.T) {
			if got := MapIndustry(tt.industry); got != tt.want {
				t.Errorf("MapIndustry(%q) = %v, want %v", tt.industry, got, tt.want)
			}
		})
	}
}

func TestMapIndustry_RuleOrder(t *testing.T) {
	// "Oil & Gas" contains both "oil" and "gas"; rule order decides the
	// match but both map to energy. A string hitting rules of different
	// sectors must resolve to the first rule in the list.
	if got := MapIndustry("Software for Banks"); got != models.SectorTechnology {
		t.Errorf("MapIndustry should prefer the earlier rule, got %v", got)
	}
}

func TestMapSector(t *testing.T) {
	tests := []struct {
		sector string
		want   models.Sector
	}{
		{"Technology", models.SectorTechnology},
		{"Financial Services", models.SectorFinancial},
		{"Consumer Cyclical", models.SectorConsumer},
		{"Consumer Defensive", models.SectorConsumer},
		{"Communication Services", models.SectorCommunication},
		{"Utilities", models.SectorOther},
		{"Basic Materials", models.SectorOther},
		{"", models.SectorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.sector, func(t *testing.T) {
			if got := MapSector(tt.sector); got != tt.want {
				t.Errorf("MapSector(%q) = %v, want %v", tt.sector, got, tt.want)
			}
		})
	}
}
