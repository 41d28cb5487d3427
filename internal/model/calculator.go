package model

import "math"

// LoadEstimate holds the results of a pre-pack container estimate. It is a
// quick volumetric quote; the real answer comes from the packing engine.
type LoadEstimate struct {
	TotalVolume        float64 `json:"total_volume"`         // m³ of declared cargo
	TotalWeight        float64 `json:"total_weight"`         // kg of declared cargo
	ContainerVolume    float64 `json:"container_volume"`     // m³ interior of the chosen type
	ContainersExact    float64 `json:"containers_exact"`     // fractional containers by volume
	ContainersByVolume int     `json:"containers_by_volume"` // ceiling with broken stowage applied
	ContainersByWeight int     `json:"containers_by_weight"` // ceiling by payload cap
	ContainersMin      int     `json:"containers_min"`       // max of the two bounds
	StowagePercent     float64 `json:"stowage_percent"`      // broken-stowage factor applied
	WeightLimited      bool    `json:"weight_limited"`       // weight, not volume, drives the count
}

// EstimateContainers computes how many containers of the given type a cargo
// list needs, before packing. Broken stowage (the void fraction a heuristic
// load inevitably leaves) is applied as a percentage on top of raw volume.
func EstimateContainers(specs []CargoSpec, container ContainerSpec, stowagePercent float64) LoadEstimate {
	var totalVolume, totalWeight float64
	for _, s := range specs {
		totalVolume += s.UnitVolume() * float64(s.Quantity)
		totalWeight += s.Weight * float64(s.Quantity)
	}

	est := LoadEstimate{
		TotalVolume:     totalVolume,
		TotalWeight:     totalWeight,
		ContainerVolume: container.InteriorVolume(),
		StowagePercent:  stowagePercent,
	}
	if est.ContainerVolume <= 0 {
		return est
	}

	est.ContainersExact = totalVolume / est.ContainerVolume
	stowageFactor := 1.0 + stowagePercent/100.0
	est.ContainersByVolume = int(math.Ceil(est.ContainersExact * stowageFactor))

	if container.MaxWeight > 0 {
		est.ContainersByWeight = int(math.Ceil(totalWeight / container.MaxWeight))
	}

	est.ContainersMin = est.ContainersByVolume
	if est.ContainersByWeight > est.ContainersMin {
		est.ContainersMin = est.ContainersByWeight
		est.WeightLimited = true
	}
	return est
}
