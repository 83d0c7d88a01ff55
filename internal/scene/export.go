package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/levinmathewabraham/orrery/internal/astro"
)

// SnapshotExport is the JSON-serializable representation of the scene.
type SnapshotExport struct {
	ExportedAt time.Time    `json:"exported_at"`
	Tick       uint64       `json:"tick"`
	Bodies     []BodyExport `json:"bodies"`
}

// BodyExport is a JSON-friendly body representation.
type BodyExport struct {
	Name        string       `json:"name"`
	Kind        string       `json:"kind"`
	Description string       `json:"description"`
	Parent      string       `json:"parent,omitempty"`
	Position    [3]float64   `json:"position"`
	Distance    float64      `json:"distance"`
	Radius      float64      `json:"radius"`
	RotationDeg float64      `json:"rotation_deg"`
	Orbit       *OrbitExport `json:"orbit,omitempty"`
}

// OrbitExport describes a Keplerian orbit.
type OrbitExport struct {
	SemiMajorAxis  float64 `json:"semi_major_axis"`
	Eccentricity   float64 `json:"eccentricity"`
	InclinationDeg float64 `json:"inclination_deg"`
	PhaseDeg       float64 `json:"true_anomaly_deg"`
	Periapsis      float64 `json:"periapsis"`
	Apoapsis       float64 `json:"apoapsis"`
}

// ExportSnapshot converts the registry to an exportable format.
func ExportSnapshot(reg *Registry, tick uint64, exportedAt time.Time) *SnapshotExport {
	export := &SnapshotExport{
		ExportedAt: exportedAt,
		Tick:       tick,
	}
	if reg == nil {
		return export
	}

	bodies := reg.All()
	names := make(map[Handle]string, len(bodies))
	for _, b := range bodies {
		names[b.Handle] = b.Name
	}

	for _, b := range bodies {
		be := BodyExport{
			Name:        b.Name,
			Kind:        b.Kind.String(),
			Description: b.Description,
			Position:    [3]float64{b.Position.X, b.Position.Y, b.Position.Z},
			Distance:    b.Distance(),
			Radius:      b.Radius,
			RotationDeg: astro.RadToDeg(b.Rotation),
		}
		if b.HasParent() {
			be.Parent = names[b.Parent]
		}
		if b.Orbit != nil {
			be.Orbit = &OrbitExport{
				SemiMajorAxis:  b.Orbit.SemiMajorAxis,
				Eccentricity:   b.Orbit.Eccentricity,
				InclinationDeg: b.Orbit.InclinationDeg(),
				PhaseDeg:       astro.RadToDeg(b.Orbit.Phase),
				Periapsis:      b.Orbit.Periapsis(),
				Apoapsis:       b.Orbit.Apoapsis(),
			}
		}
		export.Bodies = append(export.Bodies, be)
	}
	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSummaryTable writes a text table of every body to w.
func WriteSummaryTable(w io.Writer, bodies []Body, tick uint64) {
	fmt.Fprintf(w, "Orrery @ tick %d\n", tick)
	fmt.Fprintln(w, strings.Repeat("─", 86))

	if len(bodies) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-10s %-19s %9s %9s %9s %8s %6s %6s %7s\n",
		"Name", "Kind", "X", "Y", "Z", "Dist", "a", "e", "ν°")
	fmt.Fprintln(w, strings.Repeat("─", 86))

	for _, b := range bodies {
		a, e, nu := "-", "-", "-"
		if b.Orbit != nil {
			a = fmt.Sprintf("%.1f", b.Orbit.SemiMajorAxis)
			e = fmt.Sprintf("%.2f", b.Orbit.Eccentricity)
			nu = fmt.Sprintf("%.1f", astro.RadToDeg(b.Orbit.Phase))
		}
		fmt.Fprintf(w, "%-10s %-19s %9.2f %9.2f %9.2f %8.2f %6s %6s %7s\n",
			truncateStr(b.Name, 10),
			b.Kind,
			b.Position.X, b.Position.Y, b.Position.Z,
			b.Distance(),
			a, e, nu,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(bodies))
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
