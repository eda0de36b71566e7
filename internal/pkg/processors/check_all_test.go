package processors

import (
	"context"
	"errors"
	"fmt"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/config"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAllKeepsInputOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	cfg := config.Default()
	cfg.Workers = 4
	c, err := NewChecker(cfg)
	require.NoError(t, err)

	var matches []*typed.Match
	for i := 0; i < 40; i++ {
		arms := []*typed.Arm{arm(typed.Int(int64(i)))}
		if i%2 == 0 {
			arms = append(arms, arm(typed.Wild()))
		}
		matches = append(matches, typed.NewMatch(typed.TInt{}, arms...))
	}
	reports, err := c.CheckAll(context.Background(), matches)
	require.NoError(t, err)
	require.Len(t, reports, len(matches))
	for i, r := range reports {
		assert.Same(t, matches[i], r.Match)
		assert.Equal(t, i%2 == 0, r.Exhaustive, fmt.Sprint(i))
	}
}

func TestCheckAllReportsFirstFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	c := newTestChecker(t)
	matches := []*typed.Match{
		typed.NewMatch(typed.TBool{}, arm(typed.Wild())),
		typed.NewMatch(typed.TBool{}, arm(typed.Int(1))),
		typed.NewMatch(typed.TBool{}, arm(typed.Str("x"))),
	}
	_, err := c.CheckAll(context.Background(), matches)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match 1")
}

func TestCheckAllCancelled(t *testing.T) {
	c := newTestChecker(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.CheckAll(ctx, []*typed.Match{typed.NewMatch(typed.TBool{}, arm(typed.Wild()))})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
