package clip

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/store"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.NewDiskv(t.TempDir())
	require.NoError(t, err)
	return app.New(p, zaptest.NewLogger(t))
}

func TestCopy(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	b, _, err := svc.AddBlock(ctx, app.NewBlock{Title: "greet", Content: "const x = 1;\nfunction f() {}"})
	require.NoError(t, err)

	tests := map[string]struct {
		unfence bool
		want    string
	}{
		"whole content": {
			want: "```javascript\nconst x = 1;\nfunction f() {}\n```",
		},
		"unfenced": {
			unfence: true,
			want:    "const x = 1;\nfunction f() {}",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var got string
			out := &bytes.Buffer{}
			r := Copy{
				ID:      b.ID,
				Unfence: tc.unfence,
				Write:   func(s string) error { got = s; return nil },
				Service: svc,
				Out:     out,
			}
			require.NoError(t, r.Do(ctx))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "copied \"greet\"\n", out.String())
		})
	}
}

func TestCopyErrors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	r := Copy{ID: "missing", Write: func(string) error { return nil }, Service: svc, Out: &bytes.Buffer{}}
	assert.Error(t, r.Do(ctx))

	b, _, err := svc.AddBlock(ctx, app.NewBlock{Title: "t", Content: "hello"})
	require.NoError(t, err)
	boom := errors.New("no clipboard")
	r = Copy{ID: b.ID, Write: func(string) error { return boom }, Service: svc, Out: &bytes.Buffer{}}
	assert.ErrorIs(t, r.Do(ctx), boom)
}
