package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/skirt-tools/cutviz/internal/domain"
	"github.com/skirt-tools/cutviz/internal/ports"
	"github.com/skirt-tools/cutviz/internal/render"
)

// maxTemperatureCuts is the largest number of cuts one temperature figure holds.
const maxTemperatureCuts = 3

// TemperatureCuts plots the temperature cuts of every temperature cuts probe
// of sim side by side on a linear scale from zero. When a probe has no
// temperature files, or more than three, plotting stops: no further probes
// are processed and the figures made so far are returned.
func (p *Plotter) TemperatureCuts(ctx context.Context, sim ports.Simulation) ([]Figure, error) {
	var figures []Figure
	for _, probe := range sim.Probes() {
		if !domain.IsTemperatureProbe(probe.Type()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return figures, err
		}

		medium := domain.TemperatureMedium(probe.Type())
		inputs, err := probe.OutFilePaths(fmt.Sprintf("%s_T_*.fits", medium))
		if err != nil {
			return figures, err
		}
		if len(inputs) < 1 || len(inputs) > maxTemperatureCuts {
			p.logger.Debug("unexpected number of temperature cuts",
				ports.String("probe", probe.Name()),
				ports.Int("files", len(inputs)),
			)
			return figures, nil
		}

		fig := Figure{Probe: probe.Name(), Medium: medium, Inputs: inputs}
		settings := p.config.temperatureSettings()
		skip, err := p.target(sim, &fig, "T", settings)
		if err != nil {
			return figures, err
		}
		if skip {
			figures = append(figures, fig)
			continue
		}

		panels := make([]render.Panel, 0, len(inputs))
		frames := make([]domain.Frame, 0, len(inputs))
		for _, path := range inputs {
			frame, err := p.load(path)
			if err != nil {
				return figures, err
			}
			frames = append(frames, frame)
			panels = append(panels, render.Panel{Frame: frame, Cut: CutName(path)})
		}

		tmax := domain.MaxOf(frames...)
		size := p.config.temperatureSize(len(panels))
		spec := render.Spec{
			Panels:   panels,
			Norm:     render.LinearNorm{Vmin: 0, Vmax: tmax},
			Colormap: render.Gnuplot,
			BarLabel: domain.Label("T", frames[0].Unit),
			Width:    size[0],
			Height:   size[1],
			DPI:      p.config.DPI,
		}
		if err := p.finish(&fig, spec, settings); err != nil {
			return figures, err
		}
		figures = append(figures, fig)
	}
	return figures, nil
}

// CutName returns the cut indicator of an output file: the last
// underscore-separated segment of its name without extension.
func CutName(path string) domain.Cut {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return domain.Cut(stem[strings.LastIndex(stem, "_")+1:])
}
