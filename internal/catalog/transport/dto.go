// Package transport defines request/response DTOs for the catalog module.
package transport

// CreatePackageRequest creates a new forestry mulching tier.
type CreatePackageRequest struct {
	Slug          string `json:"slug" validate:"required,min=2,max=50"`
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Description   string `json:"description" validate:"max=500"`
	MaxDiameterIn int    `json:"maxDiameterIn" validate:"required,gt=0,lte=36"`
	PricePerAcre  int64  `json:"pricePerAcre" validate:"required,gt=0"`
	BasePrice     int64  `json:"basePrice" validate:"required,gt=0"`
}

// UpdatePackageRequest updates a tier. Nil fields are unchanged.
type UpdatePackageRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description   *string `json:"description" validate:"omitempty,max=500"`
	MaxDiameterIn *int    `json:"maxDiameterIn" validate:"omitempty,gt=0,lte=36"`
	PricePerAcre  *int64  `json:"pricePerAcre" validate:"omitempty,gt=0"`
	BasePrice     *int64  `json:"basePrice" validate:"omitempty,gt=0"`
}

// SetPackageActiveRequest toggles a tier.
type SetPackageActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// UpdateRateSettingsRequest replaces the land clearing and deposit rates.
type UpdateRateSettingsRequest struct {
	DaysPerQuarterAcre    float64 `json:"daysPerQuarterAcre" validate:"required,gt=0"`
	EquipmentDayRate      int64   `json:"equipmentDayRate" validate:"required,gt=0"`
	AvgDebrisYardsPerAcre float64 `json:"avgDebrisYardsPerAcre" validate:"required,gt=0"`
	DebrisRatePerYard     int64   `json:"debrisRatePerYard" validate:"required,gt=0"`
	DepositPercent        float64 `json:"depositPercent" validate:"required,gt=0,lte=1"`
	DepositMinimum        int64   `json:"depositMinimum" validate:"required,gte=0"`
}
