package model

import "testing"

func TestEstimateContainersByVolume(t *testing.T) {
	c, _ := GetContainer("20GP")
	// 40 pallets of 1.2 m³ = 48 m³; a 20GP holds ~32.6 m³.
	specs := []CargoSpec{{Length: 120, Width: 100, Height: 100, Weight: 100, Quantity: 40}}

	est := EstimateContainers(specs, c, 0)
	if est.TotalVolume != 48 {
		t.Errorf("TotalVolume = %g, want 48", est.TotalVolume)
	}
	if est.ContainersByVolume != 2 {
		t.Errorf("ContainersByVolume = %d, want 2", est.ContainersByVolume)
	}
	if est.WeightLimited {
		t.Error("4000 kg should not be weight limited")
	}
}

func TestEstimateContainersStowageFactor(t *testing.T) {
	c, _ := GetContainer("20GP")
	// 31 m³ fits one container exactly; 15% broken stowage tips it to two.
	specs := []CargoSpec{{Length: 100, Width: 100, Height: 100, Weight: 10, Quantity: 31}}

	if est := EstimateContainers(specs, c, 0); est.ContainersMin != 1 {
		t.Errorf("without stowage factor: %d containers, want 1", est.ContainersMin)
	}
	if est := EstimateContainers(specs, c, 15); est.ContainersMin != 2 {
		t.Errorf("with 15%% stowage factor: %d containers, want 2", est.ContainersMin)
	}
}

func TestEstimateContainersWeightLimited(t *testing.T) {
	c, _ := GetContainer("20GP")
	// 60 t of dense cargo in under 3 m³: weight drives the count.
	specs := []CargoSpec{{Length: 60, Width: 60, Height: 60, Weight: 5000, Quantity: 12}}

	est := EstimateContainers(specs, c, 0)
	if !est.WeightLimited {
		t.Fatal("expected a weight-limited estimate")
	}
	if est.ContainersMin != 3 {
		t.Errorf("ContainersMin = %d, want 3 (60000 kg / 28000 kg cap)", est.ContainersMin)
	}
}

func TestEstimateContainersEmpty(t *testing.T) {
	c, _ := GetContainer("40HQ")
	est := EstimateContainers(nil, c, 15)
	if est.ContainersMin != 0 || est.TotalVolume != 0 {
		t.Errorf("empty cargo estimate = %+v", est)
	}
}
