package starmap

// StarView is a star as clients see it
type StarView struct {
	X     int32  `json:"x"`
	Y     int32  `json:"y"`
	Name  string `json:"name"`
	Size  uint8  `json:"size"`
	Color uint8  `json:"color"`
	Plot  string `json:"plot,omitempty"`
}

type PlotView struct {
	Plot string `json:"plot"`
	X    int32  `json:"x"`
	Y    int32  `json:"y"`
	Star int    `json:"star"`
}

type PortalView struct {
	Hyper Point  `json:"hyper"`
	Quasi Point  `json:"quasi"`
	Star  string `json:"star"`
}

// Preview is the serialisable form of a seeded galaxy
type Preview struct {
	Seed      uint32       `json:"seed"`
	Requested uint32       `json:"requested"`
	Type      string       `json:"type"`
	Attempts  int          `json:"attempts"`
	Stars     []StarView   `json:"stars"`
	Plots     []PlotView   `json:"plots"`
	Portals   []PortalView `json:"portals"`
}

func NewPreview(res *Result) *Preview {
	g := res.Galaxy
	pv := &Preview{
		Seed:      g.Seed,
		Requested: res.Requested,
		Type:      g.Type,
		Attempts:  res.Attempts,
		Stars:     make([]StarView, len(g.Stars)),
		Plots:     make([]PlotView, 0, NumPlots),
		Portals:   make([]PortalView, 0, NumPortals),
	}
	for i, s := range g.Stars {
		sv := StarView{X: s.X, Y: s.Y, Name: s.Name(), Size: s.Size(), Color: s.Color()}
		if s.HasPlot() {
			sv.Plot = s.Index.String()
		}
		pv.Stars[i] = sv
	}
	for p := Plot(0); p < NumPlots; p++ {
		loc := g.Plots[p]
		if !loc.At.Valid {
			continue
		}
		pv.Plots = append(pv.Plots, PlotView{Plot: p.String(), X: loc.At.X, Y: loc.At.Y, Star: int(loc.Star)})
	}
	for _, pt := range g.Portals {
		v := PortalView{Hyper: pt.Hyper, Quasi: pt.Quasi}
		if pt.Star.Valid() && int(pt.Star) < len(g.Stars) {
			v.Star = g.Stars[pt.Star].Name()
		}
		pv.Portals = append(pv.Portals, v)
	}
	return pv
}
