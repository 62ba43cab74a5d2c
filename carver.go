package seamcarve

// Seam is a top-to-bottom path through an image: it holds one column index per row,
// starting with the top row. Adjacent entries differ by at most one.
type Seam []int

// check panics unless the seam fits an image of the given size.
func (s Seam) check(width, height int) {
	precondition(len(s) == height, "seam has %d entries, expected %d", len(s), height)
	for row, col := range s {
		precondition(col >= 0 && col < width, "seam column %d at row %d out of range [0, %d)", col, row, width)
	}
}

// ComputeVerticalCostMatrix fills cost with the cumulative minimal energy of any
// vertical path ending at each cell. The first row is a copy of the energy map;
// every other cell adds its own energy to the cheapest of the (up to three)
// neighboring cells in the row above.
//
// energy and cost must be distinct matrices of the same size.
func ComputeVerticalCostMatrix(energy, cost *Matrix) {
	precondition(energy != cost, "energy and cost must not be the same matrix")
	precondition(energy.width == cost.width && energy.height == cost.height,
		"cost matrix %dx%d does not match energy matrix %dx%d",
		cost.width, cost.height, energy.width, energy.height)

	width := energy.width
	copy(cost.data[:width], energy.data[:width])

	for row := 1; row < energy.height; row++ {
		prev := cost.data[(row-1)*width : row*width]
		curr := cost.data[row*width : (row+1)*width]
		e := energy.data[row*width : (row+1)*width]

		for col := range curr {
			best := prev[col]
			if col > 0 && prev[col-1] < best {
				best = prev[col-1]
			}
			if col < width-1 && prev[col+1] < best {
				best = prev[col+1]
			}
			curr[col] = e[col] + best
		}
	}
}

// VerticalCostMatrix allocates and returns the cost matrix of the energy map.
func VerticalCostMatrix(energy *Matrix) *Matrix {
	cost := NewMatrix(energy.width, energy.height)
	ComputeVerticalCostMatrix(energy, cost)
	return cost
}

// FindMinimalVerticalSeam walks the cost matrix from the bottom row up and
// returns the vertical seam with the lowest total cost. The seam starts at the
// cheapest cell of the last row; on every row above, the cheapest of the three
// cells adjacent to the column chosen below is selected. Ties go to the leftmost column.
//
// The three cell window matches the neighbors considered by ComputeVerticalCostMatrix.
func FindMinimalVerticalSeam(cost *Matrix) Seam {
	seam := make(Seam, cost.height)

	last := cost.height - 1
	seam[last] = cost.ColumnOfMinValueInRow(last, 0, cost.width)

	for row := last - 1; row >= 0; row-- {
		below := seam[row+1]
		start := max(0, below-1)
		end := min(cost.width, below+2)
		seam[row] = cost.ColumnOfMinValueInRow(row, start, end)
	}
	return seam
}

// RemoveVerticalSeam removes from every row the pixel at column seam[row].
// The narrower image is built in a separate buffer and then replaces img.
func RemoveVerticalSeam(img *Image, seam Seam) {
	precondition(img.width >= 2, "cannot remove a seam from an image of width %d", img.width)
	*img = *fromChannels(
		img.red.RemoveVerticalSeam(seam),
		img.green.RemoveVerticalSeam(seam),
		img.blue.RemoveVerticalSeam(seam),
	)
}

// Carver runs the seam carving loop. The zero value is ready to use.
type Carver struct {
	// Energy and Cost hold the maps computed during the last iteration.
	Energy *Matrix
	Cost   *Matrix
	// Seam is the last seam found.
	Seam Seam

	// Mask, when set, is added to the energy map before the cost is computed.
	// It must have the same size as the image being carved and it is carved
	// (and rotated) along with it.
	Mask *Matrix

	// OnSeam is invoked with every seam right before it is removed.
	OnSeam func(Seam)
}

// NewCarver returns a Carver which protects the cells weighted by mask.
// A nil mask carves on the image energy only.
func NewCarver(mask *Matrix) *Carver {
	return &Carver{Mask: mask}
}

// ComputeSeams computes the energy and cost maps of img and
// returns the vertical seam with the lowest cost.
func (c *Carver) ComputeSeams(img *Image) Seam {
	c.Energy = ComputeEnergyMatrix(img)
	if c.Mask != nil {
		precondition(c.Mask.width == img.width && c.Mask.height == img.height,
			"mask %dx%d does not match image %dx%d", c.Mask.width, c.Mask.height, img.width, img.height)
		for i, w := range c.Mask.data {
			c.Energy.data[i] += w
		}
	}
	c.Cost = NewMatrix(img.width, img.height)
	ComputeVerticalCostMatrix(c.Energy, c.Cost)
	c.Seam = FindMinimalVerticalSeam(c.Cost)

	return c.Seam
}

// shrink removes the lowest cost seam from img, making it one column narrower.
func (c *Carver) shrink(img *Image) {
	seam := c.ComputeSeams(img)
	if c.OnSeam != nil {
		c.OnSeam(seam)
	}
	RemoveVerticalSeam(img, seam)
	if c.Mask != nil {
		c.Mask = c.Mask.RemoveVerticalSeam(seam)
	}
}

// CarveWidth reduces the width of img to newWidth, one seam at a time.
func (c *Carver) CarveWidth(img *Image, newWidth int) {
	precondition(newWidth > 0 && newWidth <= img.width,
		"new width %d out of range (0, %d]", newWidth, img.width)

	for img.width != newWidth {
		c.shrink(img)
	}
}

// CarveHeight reduces the height of img to newHeight. The image is rotated to
// the left, carved horizontally and rotated back.
func (c *Carver) CarveHeight(img *Image, newHeight int) {
	precondition(newHeight > 0 && newHeight <= img.height,
		"new height %d out of range (0, %d]", newHeight, img.height)

	img.RotateLeft()
	if c.Mask != nil {
		c.Mask = c.Mask.RotateLeft()
	}

	c.CarveWidth(img, newHeight)

	img.RotateRight()
	if c.Mask != nil {
		c.Mask = c.Mask.RotateRight()
	}
}

// Carve reduces the width and then the height of img.
// Both targets are checked against the original dimensions.
func (c *Carver) Carve(img *Image, newWidth, newHeight int) {
	precondition(newWidth > 0 && newWidth <= img.width,
		"new width %d out of range (0, %d]", newWidth, img.width)
	precondition(newHeight > 0 && newHeight <= img.height,
		"new height %d out of range (0, %d]", newHeight, img.height)

	c.CarveWidth(img, newWidth)
	c.CarveHeight(img, newHeight)
}
