/*
Package seamcarve is a content aware image shrinking library. It reduces the
width and the height of an image by repeatedly removing the connected path of
pixels (seam) with the lowest energy, so that the important parts of the image
are preserved.

The package provides a command line interface, supporting various flags for different types of rescaling operations.
To check the supported commands type:

	$ seamcarve --help

The carving engine works on the package's own Image type:

	img := seamcarve.FromImage(src)
	seamcarve.SeamCarve(img, 400, 300)
	dst := img.NRGBA()

In case you wish to integrate the whole pipeline (decoding, face and mask
protection, encoding) in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/seamkit/seamcarve"
	)

	func main() {
		p := &seamcarve.Processor{
			NewWidth: 400,
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error rescaling image: %s", err.Error())
		}
	}
*/
package seamcarve
