package stats

import (
	"context"

	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions    []model.SessionAggregate
	HistoryBest int
}

// BuildReport loads sessions matching cfg and the all-time best WPM.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	best, err := st.BestWPM(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{Sessions: sessions, HistoryBest: best}, nil
}
