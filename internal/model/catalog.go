package model

// Catalog returns the four built-in truck types, sorted largest-capacity
// first. The reducer relies on this ordering: it always reaches for
// Catalog()[0] as "the" large truck.
func Catalog(scaleFactor int64) []TruckType {
	speed := 40.0 / 3.6 // 40 km/h in m/s, shared by every type

	types := []TruckType{
		{
			ID:             165,
			InnerLength:    16.1,
			InnerWidth:     2.5,
			WeightCapacity: 27000 * scaleFactor,
			Speed:          speed,
			CostPerKM:      10,
		},
		{
			ID:             125,
			InnerLength:    12.1,
			InnerWidth:     2.5,
			WeightCapacity: 24000 * scaleFactor,
			Speed:          speed,
			CostPerKM:      9,
		},
		{
			ID:             96,
			InnerLength:    9.1,
			InnerWidth:     2.3,
			WeightCapacity: 14000 * scaleFactor,
			Speed:          speed,
			CostPerKM:      6.5,
		},
		{
			ID:             76,
			InnerLength:    7.2,
			InnerWidth:     2.3,
			WeightCapacity: 8000 * scaleFactor,
			Speed:          speed,
			CostPerKM:      5.5,
		},
	}

	for i := range types {
		types[i].AreaCapacity = int64(types[i].InnerLength * types[i].InnerWidth * float64(scaleFactor))
	}

	return types
}
