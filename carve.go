package seamcarve

// SeamCarveWidth shrinks img to newWidth columns by repeatedly removing the
// vertical seam of lowest energy. It requires 0 < newWidth <= img.Width().
func SeamCarveWidth(img *Image, newWidth int) {
	new(Carver).CarveWidth(img, newWidth)
}

// SeamCarveHeight shrinks img to newHeight rows. It requires 0 < newHeight <= img.Height().
func SeamCarveHeight(img *Image, newHeight int) {
	new(Carver).CarveHeight(img, newHeight)
}

// SeamCarve shrinks img to newWidth x newHeight, width first.
func SeamCarve(img *Image, newWidth, newHeight int) {
	new(Carver).Carve(img, newWidth, newHeight)
}
