package raster

import (
	"github.com/lestrrat-go/dax/node"
	"github.com/srwiley/rasterx"
)

// addPath feeds path commands to a. Relative coordinates are made
// absolute against the current point.
func addPath(a rasterx.Adder, cmds []node.PathCommand) {
	var x, y, startX, startY float64
	open := false

	stop := func(closed bool) {
		if open {
			a.Stop(closed)
			open = false
		}
	}

	for _, c := range cmds {
		var dx, dy float64
		if c.IsRelative() {
			dx, dy = x, y
		}
		args := c.Args

		switch c.Op {
		case 'M', 'm':
			stop(false)
			x, y = args[0]+dx, args[1]+dy
			startX, startY = x, y
			a.Start(rasterx.ToFixedP(x, y))
			open = true
		case 'L', 'l':
			x, y = args[0]+dx, args[1]+dy
			a.Line(rasterx.ToFixedP(x, y))
		case 'H', 'h':
			x = args[0] + dx
			a.Line(rasterx.ToFixedP(x, y))
		case 'V', 'v':
			y = args[0] + dy
			a.Line(rasterx.ToFixedP(x, y))
		case 'C', 'c':
			a.CubeBezier(
				rasterx.ToFixedP(args[0]+dx, args[1]+dy),
				rasterx.ToFixedP(args[2]+dx, args[3]+dy),
				rasterx.ToFixedP(args[4]+dx, args[5]+dy),
			)
			x, y = args[4]+dx, args[5]+dy
		case 'Q', 'q':
			a.QuadBezier(
				rasterx.ToFixedP(args[0]+dx, args[1]+dy),
				rasterx.ToFixedP(args[2]+dx, args[3]+dy),
			)
			x, y = args[2]+dx, args[3]+dy
		case 'Z', 'z':
			stop(true)
			x, y = startX, startY
		}
	}
	stop(false)
}
