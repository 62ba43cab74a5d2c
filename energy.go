package seamcarve

// squaredDifference returns the squared color distance between two pixels.
// The division by 100 keeps the cumulative cost values small.
func squaredDifference(p1, p2 Pixel) int {
	dr := p2.R - p1.R
	dg := p2.G - p1.G
	db := p2.B - p1.B

	return (dr*dr + dg*dg + db*db) / 100
}

// ComputeEnergyMatrix returns the energy map of img: for every interior pixel the
// sum of the squared differences between its vertical and its horizontal neighbors.
// Border cells get the largest interior energy, so that seams stay away from the
// image edges unless there is no other choice.
//
// Images narrower or shorter than 3 pixels have no interior; their energy map is all zero.
func ComputeEnergyMatrix(img *Image) *Matrix {
	energy := NewMatrix(img.width, img.height)

	var maxEnergy int
	for row := 1; row < img.height-1; row++ {
		for col := 1; col < img.width-1; col++ {
			north := img.Pixel(row-1, col)
			south := img.Pixel(row+1, col)
			west := img.Pixel(row, col-1)
			east := img.Pixel(row, col+1)

			e := squaredDifference(north, south) + squaredDifference(west, east)
			energy.data[row*energy.width+col] = e
			if e > maxEnergy {
				maxEnergy = e
			}
		}
	}
	energy.FillBorder(maxEnergy)

	return energy
}
