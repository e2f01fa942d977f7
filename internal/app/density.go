package app

import (
	"context"
	"fmt"

	"github.com/skirt-tools/cutviz/internal/domain"
	"github.com/skirt-tools/cutviz/internal/ports"
	"github.com/skirt-tools/cutviz/internal/render"
)

// MediaDensityCuts plots the theoretical and gridded density cuts of every
// media density cuts probe of sim, one figure per medium and coordinate
// plane. A cut is plotted only when exactly one theoretical and one gridded
// file exist for it. Simulations without such probes yield no figures.
func (p *Plotter) MediaDensityCuts(ctx context.Context, sim ports.Simulation) ([]Figure, error) {
	var figures []Figure
	for _, probe := range sim.Probes() {
		if !domain.IsDensityProbe(probe.Type()) {
			continue
		}
		for _, medium := range domain.DensityMedia {
			for _, cut := range domain.AllCuts {
				if err := ctx.Err(); err != nil {
					return figures, err
				}
				fig, ok, err := p.densityCut(sim, probe, medium, cut)
				if err != nil {
					return figures, err
				}
				if ok {
					figures = append(figures, fig)
				}
			}
		}
	}
	return figures, nil
}

func (p *Plotter) densityCut(sim ports.Simulation, probe ports.Probe, medium domain.Medium, cut domain.Cut) (Figure, bool, error) {
	tPaths, err := probe.OutFilePaths(fmt.Sprintf("%s_t_%s.fits", medium, cut))
	if err != nil {
		return Figure{}, false, err
	}
	gPaths, err := probe.OutFilePaths(fmt.Sprintf("%s_g_%s.fits", medium, cut))
	if err != nil {
		return Figure{}, false, err
	}
	if len(tPaths) != 1 || len(gPaths) != 1 {
		return Figure{}, false, nil
	}

	fig := Figure{
		Probe:  probe.Name(),
		Medium: medium,
		Cut:    cut,
		Inputs: []string{tPaths[0], gPaths[0]},
	}
	settings := p.config.densitySettings()
	skip, err := p.target(sim, &fig, string(cut), settings)
	if err != nil {
		return Figure{}, false, err
	}
	if skip {
		return fig, true, nil
	}

	theory, err := p.load(tPaths[0])
	if err != nil {
		return Figure{}, false, err
	}
	gridded, err := p.load(gPaths[0])
	if err != nil {
		return Figure{}, false, err
	}
	// Both panels share the extent of the theoretical frame.
	gridded.X, gridded.Y = theory.X, theory.Y

	vmax := domain.MaxOf(theory, gridded)
	vmin := DisplayFloor(vmax, p.config.Decades)
	theory.ClipBelow(vmin)
	gridded.ClipBelow(vmin)

	size := p.config.densitySize()
	spec := render.Spec{
		Panels: []render.Panel{
			{Frame: theory, Cut: cut},
			{Frame: gridded, Cut: cut},
		},
		Norm:     render.NewNorm(vmin, vmax),
		Colormap: render.Gnuplot,
		BarLabel: domain.Label("density", theory.Unit),
		Width:    size[0],
		Height:   size[1],
		DPI:      p.config.DPI,
	}
	if err := p.finish(&fig, spec, settings); err != nil {
		return Figure{}, false, err
	}
	return fig, true, nil
}
