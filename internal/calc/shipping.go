package calc

import (
	"fmt"
	"sort"
	"strings"

	"pixweight-backend/internal/reference"
)

// DefaultVolumetricDivisor applies when a carrier has none configured.
const DefaultVolumetricDivisor = 5000

// Dimensions of a package in centimeters.
type Dimensions struct {
	LengthCm float64 `json:"length_cm"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
}

// Complete reports whether all three sides are known.
func (d Dimensions) Complete() bool {
	return d.LengthCm != 0 && d.WidthCm != 0 && d.HeightCm != 0
}

// CarrierQuote is the price of one carrier service.
type CarrierQuote struct {
	Carrier           string  `json:"carrier"`
	Service           string  `json:"service"`
	Cost              float64 `json:"cost"`
	MaxWeightKg       float64 `json:"max_weight_kg"`
	ChargeableWeightG float64 `json:"chargeable_weight_g"`
	EstimatedDays     string  `json:"estimated_days,omitempty"`
}

// ShippingResult is the package enrichment.
type ShippingResult struct {
	Dimensions        Dimensions         `json:"dimensions"`
	ActualWeightG     float64            `json:"actual_weight_g"`
	VolumetricWeightG *float64           `json:"volumetric_weight_g"`
	ChargeableWeightG float64            `json:"chargeable_weight_g"`
	DestinationType   string             `json:"destination_type"`
	ShippingCosts     map[string]float64 `json:"shipping_costs"`
	CarrierDetails    []CarrierQuote     `json:"carrier_details"`
	CheapestOption    *CarrierQuote      `json:"cheapest_option"`
}

// VolumetricWeight returns (L×W×H)/divisor kilograms, in grams.
func VolumetricWeight(lengthCm, widthCm, heightCm float64, divisor int) float64 {
	if divisor <= 0 {
		divisor = DefaultVolumetricDivisor
	}
	volume := lengthCm * widthCm * heightCm
	return volume / float64(divisor) * 1000
}

// Shipping prices the package with every active carrier serving the
// destination. Volumetric weight is only considered when dims are complete,
// and is computed with each carrier's own divisor. Services whose max weight
// is below the chargeable weight are left out. Quotes are sorted by cost.
func Shipping(weightGrams float64, dims Dimensions, destination string, carriers []reference.ShippingCarrier) ShippingResult {
	if strings.TrimSpace(destination) == "" {
		destination = "Domestic"
	}
	international := strings.EqualFold(strings.TrimSpace(destination), "international")

	chargeable := func(divisor int) (float64, *float64) {
		if !dims.Complete() {
			return weightGrams, nil
		}
		vol := VolumetricWeight(dims.LengthCm, dims.WidthCm, dims.HeightCm, divisor)
		if vol > weightGrams {
			return vol, &vol
		}
		return weightGrams, &vol
	}

	res := ShippingResult{
		Dimensions:      dims,
		ActualWeightG:   weightGrams,
		DestinationType: destination,
		ShippingCosts:   map[string]float64{},
		CarrierDetails:  []CarrierQuote{},
	}
	res.ChargeableWeightG, res.VolumetricWeightG = chargeable(DefaultVolumetricDivisor)

	for _, c := range carriers {
		if !c.IsActive || c.IsInternational != international {
			continue
		}
		chargeableG, _ := chargeable(c.VolumetricDivisor)
		chargeableKg := chargeableG / 1000.0
		if chargeableKg > c.MaxWeightKg {
			continue
		}
		cost := round2(c.BaseRate + chargeableKg*c.RatePerKg)
		res.ShippingCosts[fmt.Sprintf("%s - %s", c.Name, c.ServiceType)] = cost
		res.CarrierDetails = append(res.CarrierDetails, CarrierQuote{
			Carrier:           c.Name,
			Service:           c.ServiceType,
			Cost:              cost,
			MaxWeightKg:       c.MaxWeightKg,
			ChargeableWeightG: chargeableG,
			EstimatedDays:     c.EstimatedDays,
		})
	}

	sort.SliceStable(res.CarrierDetails, func(i, j int) bool {
		return res.CarrierDetails[i].Cost < res.CarrierDetails[j].Cost
	})
	if len(res.CarrierDetails) > 0 {
		cheapest := res.CarrierDetails[0]
		res.CheapestOption = &cheapest
	}
	return res
}
