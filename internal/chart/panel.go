package chart

import "github.com/dtobolski/portfolio/internal/yearly"

// Key names recognised by HandleKey.
const (
	KeyEnter  = "Enter"
	KeySpace  = " "
	KeyEscape = "Escape"
)

// Panel holds the single open chart, if any.
type Panel struct {
	stats   yearly.Stats
	current *Chart
}

// NewPanel returns a closed panel over stats.
func NewPanel(stats yearly.Stats) *Panel {
	return &Panel{stats: stats}
}

// Activate opens the chart for metricKey, replacing any open chart.
// On error the open chart is left as it was.
func (p *Panel) Activate(metricKey string) (*Chart, error) {
	c, err := Build(metricKey, p.stats)
	if err != nil {
		return nil, err
	}
	p.current = c
	return c, nil
}

// HandleKey applies a key press while metricKey has focus. It reports
// whether the key was consumed.
func (p *Panel) HandleKey(metricKey, keyName string) (bool, error) {
	switch keyName {
	case KeyEnter, KeySpace, "Space", "Spacebar":
		if _, err := p.Activate(metricKey); err != nil {
			return false, err
		}
		return true, nil
	case KeyEscape, "Esc":
		if p.current == nil {
			return false, nil
		}
		p.Close()
		return true, nil
	}
	return false, nil
}

// Close hides the open chart.
func (p *Panel) Close() {
	p.current = nil
}

// Current returns the open chart, or nil.
func (p *Panel) Current() *Chart {
	return p.current
}

// IsOpen reports whether a chart is open.
func (p *Panel) IsOpen() bool {
	return p.current != nil
}
