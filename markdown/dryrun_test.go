package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/docs/v1"
)

func TestDryRunDocument_PredictsTableStart(t *testing.T) {
	doc := NewDryRunDocument()
	ctx := context.Background()

	require.NoError(t, doc.BatchUpdate(ctx, []*docs.Request{insertTextRequest(1, "a\n")}))
	require.NoError(t, doc.BatchUpdate(ctx, []*docs.Request{insertTableRequest(3, 2, 2)}))

	start, err := doc.LastTableStart(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), start)

	assert.Len(t, doc.Batches(), 2)
	assert.Len(t, doc.Requests(), 2)
}
