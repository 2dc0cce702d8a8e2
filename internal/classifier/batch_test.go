package classifier

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/model"
	"github.com/Veraticus/spamsift/internal/rules"
)

func TestClassifyBatch_PreservesOrder(t *testing.T) {
	c, _, _ := newStubbed("ham")

	texts := []string{
		"Your account will be suspended. Verify your bank details immediately.",
		"Hey, are we still meeting for coffee tomorrow?",
		"Congratulations! You have won a brand new iPhone 15. Click the link to claim your prize.",
		"",
		"Call now to hear more.",
	}
	for i := range 20 {
		texts = append(texts, fmt.Sprintf("note %d about dinner", i))
	}

	for _, workers := range []int{0, 1, 4, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			var calls atomic.Int32
			verdicts, err := c.ClassifyBatch(context.Background(), texts, workers, func(done int) {
				calls.Add(1)
				assert.LessOrEqual(t, done, len(texts))
			})
			require.NoError(t, err)
			require.Len(t, verdicts, len(texts))
			assert.Equal(t, int32(len(texts)), calls.Load())

			for i, text := range texts {
				want, err := c.Classify(context.Background(), text)
				require.NoError(t, err)
				assert.Equal(t, want, verdicts[i], "message %d", i)
			}
			assert.Equal(t, model.LabelSpam, verdicts[0].Label)
			assert.Equal(t, model.LabelHam, verdicts[1].Label)
			assert.Equal(t, model.LabelSpam, verdicts[2].Label)
		})
	}
}

func TestClassifyBatch_Empty(t *testing.T) {
	c, _, _ := newStubbed("ham")

	verdicts, err := c.ClassifyBatch(context.Background(), nil, 4, nil)
	require.NoError(t, err)
	assert.Empty(t, verdicts)
}

func TestClassifyBatch_FailsWithoutModel(t *testing.T) {
	c := New(rules.MustNewRegistry(rules.DefaultGroups()))

	verdicts, err := c.ClassifyBatch(context.Background(), []string{
		"Verify your account now",
		"lunch?",
	}, 2, nil)
	assert.Nil(t, verdicts)
	assert.ErrorIs(t, err, common.ErrModelUnavailable)
	assert.Contains(t, err.Error(), "message 2")
}

func TestClassifyBatch_CanceledContext(t *testing.T) {
	c, _, _ := newStubbed("ham")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ClassifyBatch(ctx, []string{"a", "b"}, 2, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
