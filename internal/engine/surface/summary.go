package surface

import (
	"fmt"
	"io"
)

// WriteSummary prints the sampling grid and mesh statistics, one per line.
func WriteSummary(w io.Writer, p Params, m *Mesh) error {
	na, nb := p.GridSize()
	c := m.Bounds.Center()
	_, err := fmt.Fprintf(w,
		"r1=%g r2=%g b=%g\n"+
			"grid: %d alpha x %d beta samples (step %g, %g deg)\n"+
			"vertices: %d (%d segments)\n"+
			"bounds: min (%.4f, %.4f, %.4f) max (%.4f, %.4f, %.4f)\n"+
			"center: (%.4f, %.4f, %.4f)\n",
		p.R1, p.R2, p.B,
		na, nb, p.StepAlpha, p.StepBeta,
		m.VertexCount, m.VertexCount/2,
		m.Bounds.Min[0], m.Bounds.Min[1], m.Bounds.Min[2],
		m.Bounds.Max[0], m.Bounds.Max[1], m.Bounds.Max[2],
		c.X, c.Y, c.Z,
	)
	return err
}
