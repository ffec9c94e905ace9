package domain

// ShadedCell is one 10-degree grid cell carrying shading. Ring is set when
// the cell's latitude band contains a visible ring/both marker, Stripe when
// its longitude band contains a visible stripe/both marker. At least one of
// the two holds for every emitted cell; unshaded cells are omitted.
type ShadedCell struct {
	LatBin int  `json:"lat_bin"`
	LonBin int  `json:"lon_bin"`
	Ring   bool `json:"ring"`
	Stripe bool `json:"stripe"`
}

// GridLines returns the fixed 10-degree lattice edges: latitude edges -90..90
// and longitude edges -180..180 inclusive. Clients draw the grid from these
// instead of hard-coding the lattice.
func GridLines() (latEdges, lonEdges []int) {
	for lat := -90; lat <= 90; lat += 10 {
		latEdges = append(latEdges, lat)
	}
	for lon := -180; lon <= 180; lon += 10 {
		lonEdges = append(lonEdges, lon)
	}
	return latEdges, lonEdges
}

// ShadeCells derives the shaded-cell set from resolved markers under the
// active category filter. Markers whose category the filter excludes
// contribute nothing. Cost is O(markers + grid cells); the grid is the fixed
// 18x36 sphere covering.
func ShadeCells(markers []Marker, filter Filter) []ShadedCell {
	shadedLat := make(map[int]bool)
	shadedLon := make(map[int]bool)

	for _, m := range markers {
		if !filter.Pass(m.Category) {
			continue
		}
		switch m.Category {
		case CategoryRing:
			shadedLat[m.LatBin] = true
		case CategoryStripe:
			shadedLon[m.LonBin] = true
		case CategoryBoth:
			shadedLat[m.LatBin] = true
			shadedLon[m.LonBin] = true
		}
	}

	var cells []ShadedCell
	for latBin := -90; latBin < 90; latBin += 10 {
		for lonBin := -180; lonBin < 180; lonBin += 10 {
			ring := shadedLat[latBin]
			stripe := shadedLon[lonBin]
			if !ring && !stripe {
				continue
			}
			cells = append(cells, ShadedCell{LatBin: latBin, LonBin: lonBin, Ring: ring, Stripe: stripe})
		}
	}
	return cells
}
