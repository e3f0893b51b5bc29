package starmap

// specialColors lists the colours a plot's star may take. The galaxy seed
// picks one, so a seed always shows the same sky.
var specialColors = map[Plot][]uint8{
	Sol:      {YellowBody},
	Samatra:  {RedBody, OrangeBody},
	Rainbow0: {BlueBody, WhiteBody, YellowBody, GreenBody},
	Chmmr:    {BlueBody, WhiteBody},
}

func seededColor(p Plot, seed uint32) (uint8, bool) {
	cs, ok := specialColors[p]
	if !ok {
		return 0, false
	}
	return cs[seed%uint32(len(cs))], true
}

func (s *Solver) Plotify(p Plot) {
	Plotify(s.Galaxy, p)
}

// Plotify restores the look of the star p landed on: its reference size,
// any special colour, and the Alpha designation for homeworlds. Rainbow
// worlds all share the colour of the first one.
func Plotify(g *Galaxy, p Plot) {
	star, ok := g.StarAt(p)
	if !ok {
		return
	}

	c := canon[p]
	color := star.Color()
	if p.IsMelnorme() {
		color = c.Color
	}
	if sc, ok := seededColor(p, g.Seed); ok {
		color = sc
	}
	if p.IsRainbow() {
		color, _ = seededColor(Rainbow0, g.Seed)
	}
	star.Type = MakeStar(c.Size, color, star.Owner())

	if isHomeworld(p) {
		claimAlpha(g, g.Plots[p].Star)
	}
}

// claimAlpha swaps designations with the Alpha of the star's constellation,
// unless that Alpha already hosts a homeworld.
func claimAlpha(g *Galaxy, ref StarRef) {
	star := &g.Stars[ref]
	if star.Prefix <= 1 {
		return
	}
	for i := range g.Stars {
		alpha := &g.Stars[i]
		if alpha.Postfix != star.Postfix || alpha.Prefix != 1 {
			continue
		}
		if alpha.Index != NoPlot && isHomeworld(alpha.Index) {
			return
		}
		alpha.Prefix, star.Prefix = star.Prefix, 1
		return
	}
}
