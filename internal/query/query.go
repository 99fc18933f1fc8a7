package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/frostline-io/logvault/internal/window"
)

const sqlTimeLayout = "2006-01-02 15:04:05"

// Builder renders the export query for one day window. The table name is an
// operator-supplied identifier and is interpolated verbatim; it must never
// come from external input.
type Builder struct {
	Table string

	// NoiseApp, when non-empty, excludes rows whose embedded application
	// name matches this value.
	NoiseApp string
}

// Build renders a single SELECT over [w.Start, w.End) returning one JSON
// object per line, ordered by timestamp ascending.
func (b Builder) Build(w window.Window) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "SELECT timestamp, raw FROM %s", b.Table)
	fmt.Fprintf(&sb, " WHERE timestamp >= %s AND timestamp < %s", sqlTime(w.Start), sqlTime(w.End))
	if b.NoiseApp != "" {
		fmt.Fprintf(&sb, " AND JSONExtractString(raw, 'app') != '%s'", b.NoiseApp)
	}
	sb.WriteString(" ORDER BY timestamp ASC FORMAT JSONEachRow")

	return sb.String()
}

func sqlTime(t time.Time) string {
	return fmt.Sprintf("toDateTime('%s', 'UTC')", t.UTC().Format(sqlTimeLayout))
}
