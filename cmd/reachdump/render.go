package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gookit/color"

	"github.com/udisondev/tilereach/internal/game/geo"
)

var (
	styleOrigin      = color.Style{color.FgGreen, color.OpBold}
	stylePath        = color.Style{color.FgYellow, color.OpBold}
	styleReachable   = color.Style{color.FgGreen}
	styleBlocked     = color.Style{color.FgGray}
	styleUnreachable = color.Style{color.FgRed}
)

// query is one reachdump request.
type query struct {
	from   geo.Tile
	to     geo.Tile
	hasTo  bool
	radius int
}

// sceneMap is the data needed to draw the area around a query origin.
type sceneMap struct {
	view  *geo.View
	reach *geo.ReachableSet
	path  []geo.Tile
}

// renderMap draws the square of side 2*radius+1 centred on q.from, north up.
// Tiles outside the loaded region are left blank.
func renderMap(w io.Writer, m sceneMap, q query, colored bool) error {
	onPath := make(map[geo.Tile]bool, len(m.path))
	for _, t := range m.path {
		onPath[t] = true
	}

	paint := func(s color.Style, ch string) string {
		if !colored {
			return ch
		}
		return s.Sprint(ch)
	}

	var b strings.Builder
	for y := q.from.Y + q.radius; y >= q.from.Y-q.radius; y-- {
		for x := q.from.X - q.radius; x <= q.from.X+q.radius; x++ {
			t := geo.Tile{X: x, Y: y, Plane: q.from.Plane}
			local, err := m.view.Local(t)
			switch {
			case err != nil:
				b.WriteString(" ")
			case t == q.from:
				b.WriteString(paint(styleOrigin, "@"))
			case onPath[t]:
				b.WriteString(paint(stylePath, "*"))
			case m.reach.Contains(t):
				b.WriteString(paint(styleReachable, "."))
			case m.view.Flags(local.X, local.Y).Has(geo.BlockMovementFull):
				b.WriteString(paint(styleBlocked, "#"))
			default:
				b.WriteString(paint(styleUnreachable, ","))
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// dump answers q against the engines and writes the report to w.
func dump(w io.Writer, acc *geo.Accessor, reach *geo.ReachEngine, paths *geo.PathEngine, q query, colored bool) error {
	view, err := acc.View(q.from.Plane)
	if err != nil {
		return fmt.Errorf("resolving plane %d: %w", q.from.Plane, err)
	}

	set := reach.ReachableTiles(q.from)
	m := sceneMap{view: view, reach: set}

	var report []string
	report = append(report, fmt.Sprintf("origin %s tick %d: %d reachable tiles", q.from, set.Tick(), set.Len()))

	if q.hasTo {
		report = append(report,
			fmt.Sprintf("target %s reachable: %t", q.to, reach.IsReachable(q.from, q.to)),
			fmt.Sprintf("quick distance: %d", geo.QuickDistance(q.from, q.to)),
		)

		path, err := paths.Resolve(q.from, q.to, true)
		if err != nil {
			report = append(report, "path: "+geo.Outcome(err))
		} else {
			m.path = path
			report = append(report, fmt.Sprintf("path: %d tiles", len(path)))
		}

		dist, err := paths.Measure(q.from, q.to)
		if err != nil {
			report = append(report, "walk distance: "+geo.Outcome(err))
		} else {
			report = append(report, "walk distance: "+strconv.Itoa(dist))
		}
	}

	if err := renderMap(w, m, q, colored); err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.Join(report, "\n")+"\n")
	return err
}

// parseXY parses "x,y" into a tile on plane.
func parseXY(s string, plane int) (geo.Tile, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geo.Tile{}, fmt.Errorf("coordinate %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return geo.Tile{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return geo.Tile{}, fmt.Errorf("coordinate %q: %w", s, err)
	}
	t := geo.NewTile(x, y, plane)
	if !t.InDomain() {
		return geo.Tile{}, fmt.Errorf("coordinate %q outside the world", s)
	}
	return t, nil
}
