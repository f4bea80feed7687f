package render

// Stage is a step of the per-render state machine. Steps only move forward by one.
type Stage int

const (
	StageInit Stage = iota
	StageFontsResolved
	StagePageOpened
	StageNodesPainted
	StagePageClosed
	StageRasterized
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageFontsResolved:
		return "fonts_resolved"
	case StagePageOpened:
		return "page_opened"
	case StageNodesPainted:
		return "nodes_painted"
	case StagePageClosed:
		return "page_closed"
	case StageRasterized:
		return "rasterized"
	default:
		return "unknown"
	}
}

type machine struct {
	stage Stage
}

func (m *machine) advance(to Stage) error {
	if to != m.stage+1 {
		return &StageError{From: m.stage, To: to}
	}
	m.stage = to
	return nil
}
